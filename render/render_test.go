package render_test

import (
	"bytes"
	"strings"
	"testing"

	"git.fiblab.net/sim/itinerary/render"
	"git.fiblab.net/sim/itinerary/router/algo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteDOT(t *testing.T) {
	g := algo.NewGraph()
	require.NoError(t, g.AddEdge("A", algo.Edge{To: "B", Duration: 2, Cost: 3000}))
	require.NoError(t, g.AddEdge("B", algo.Edge{To: "C", Duration: 1.5, Cost: 2000}))
	require.NoError(t, g.AddEdge("A", algo.Edge{To: "C", Duration: 5, Cost: 100}))

	var buf bytes.Buffer
	require.NoError(t, render.WriteDOT(&buf, g, algo.Path{"A", "B", "C"}))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "digraph routes {\n"))
	assert.True(t, strings.HasSuffix(out, "}\n"))
	assert.Contains(t, out, `"A" -> "B" [label="2", fontcolor=red, color=green, penwidth=3];`)
	assert.Contains(t, out, `"B" -> "C" [label="1.5", fontcolor=red, color=green, penwidth=3];`)
	assert.Contains(t, out, `"A" -> "C" [label="5", fontcolor=red];`)
	assert.Contains(t, out, `"A" [fillcolor=palegreen];`)
}

func TestWriteDOTWithoutPath(t *testing.T) {
	g := algo.NewGraph()
	require.NoError(t, g.AddEdge("A", algo.Edge{To: "B", Duration: 2}))

	var buf bytes.Buffer
	require.NoError(t, render.WriteDOT(&buf, g, nil))
	assert.NotContains(t, buf.String(), "green")
	assert.Contains(t, buf.String(), `"B";`)
}
