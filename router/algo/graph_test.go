package algo_test

import (
	"math"
	"testing"

	"git.fiblab.net/sim/itinerary/router/algo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEdge struct {
	from     algo.NodeID
	to       algo.NodeID
	duration float64
	cost     float64
}

func buildGraph(t *testing.T, nodes []algo.NodeID, edges []testEdge) *algo.Graph {
	t.Helper()
	g := algo.NewGraph()
	for _, n := range nodes {
		require.NoError(t, g.AddNode(n))
	}
	for _, e := range edges {
		require.NoError(t, g.AddEdge(e.from, algo.Edge{To: e.to, Duration: e.duration, Cost: e.cost}))
	}
	return g
}

// 五个印度城市的示例航线
func cityGraph(t *testing.T) *algo.Graph {
	return buildGraph(t,
		[]algo.NodeID{"Delhi", "Mumbai", "Bengaluru", "Chennai", "Kolkata"},
		[]testEdge{
			{"Delhi", "Mumbai", 2, 3000},
			{"Delhi", "Bengaluru", 3, 4500},
			{"Mumbai", "Bengaluru", 1, 2000},
			{"Mumbai", "Chennai", 3, 2500},
			{"Bengaluru", "Chennai", 2, 1500},
			{"Bengaluru", "Kolkata", 4, 4000},
			{"Chennai", "Kolkata", 3, 3000},
		})
}

func TestShortestPathChain(t *testing.T) {
	g := buildGraph(t, []algo.NodeID{"A", "B", "C"}, []testEdge{
		{"A", "B", 2, 3000},
		{"B", "C", 1, 2000},
	})

	dist, prev, err := algo.ShortestPath(g, "A", "C", algo.DURATION)
	require.NoError(t, err)
	assert.Equal(t, algo.Distances{"A": 0, "B": 2, "C": 3}, dist)
	assert.Equal(t, algo.Predecessors{"A": algo.NoNode, "B": "A", "C": "B"}, prev)

	path := algo.ReconstructPath(prev, "A", "C")
	assert.Equal(t, algo.Path{"A", "B", "C"}, path)

	totalDuration, totalCost, err := algo.Aggregate(g, path)
	require.NoError(t, err)
	assert.Equal(t, 3.0, totalDuration)
	assert.Equal(t, 5000.0, totalCost)
}

func TestShortestPathUnreachable(t *testing.T) {
	g := buildGraph(t, []algo.NodeID{"A", "B"}, nil)

	dist, prev, err := algo.ShortestPath(g, "A", "B", algo.DURATION)
	require.NoError(t, err)
	assert.True(t, math.IsInf(dist["B"], 1))
	assert.False(t, dist.Reachable("B"))
	assert.Equal(t, algo.NoNode, prev["B"])
	assert.True(t, dist.Reachable("A"))
}

func TestShortestPathTieBreak(t *testing.T) {
	g := buildGraph(t, []algo.NodeID{"A", "B", "C", "D"}, []testEdge{
		{"A", "B", 1, 1},
		{"A", "C", 1, 1},
		{"B", "D", 1, 1},
		{"C", "D", 1, 1},
	})

	dist, prev, err := algo.ShortestPath(g, "A", "D", algo.DURATION)
	require.NoError(t, err)
	assert.Equal(t, 2.0, dist["D"])
	assert.Equal(t, algo.Path{"A", "B", "D"}, algo.ReconstructPath(prev, "A", "D"))

	// 交换A的出边顺序后选择随之改变
	g = buildGraph(t, []algo.NodeID{"A", "B", "C", "D"}, []testEdge{
		{"A", "C", 1, 1},
		{"A", "B", 1, 1},
		{"B", "D", 1, 1},
		{"C", "D", 1, 1},
	})
	_, prev, err = algo.ShortestPath(g, "A", "D", algo.DURATION)
	require.NoError(t, err)
	assert.Equal(t, algo.Path{"A", "C", "D"}, algo.ReconstructPath(prev, "A", "D"))
}

func TestShortestPathObjective(t *testing.T) {
	g := cityGraph(t)

	dist, prev, err := algo.ShortestPath(g, "Delhi", "Kolkata", algo.DURATION)
	require.NoError(t, err)
	assert.Equal(t, 7.0, dist["Kolkata"])
	path := algo.ReconstructPath(prev, "Delhi", "Kolkata")
	assert.Equal(t, algo.Path{"Delhi", "Bengaluru", "Kolkata"}, path)
	totalDuration, totalCost, err := algo.Aggregate(g, path)
	require.NoError(t, err)
	assert.Equal(t, 7.0, totalDuration)
	assert.Equal(t, 8500.0, totalCost)

	// 按价格两条路径同为8500，保留先发现的Delhi->Bengaluru->Kolkata
	dist, prev, err = algo.ShortestPath(g, "Delhi", "Kolkata", algo.COST)
	require.NoError(t, err)
	assert.Equal(t, 8500.0, dist["Kolkata"])
	assert.Equal(t, algo.Path{"Delhi", "Bengaluru", "Kolkata"}, algo.ReconstructPath(prev, "Delhi", "Kolkata"))

	// 直飞快但贵，转机慢但便宜
	g = buildGraph(t, nil, []testEdge{
		{"A", "B", 1, 500},
		{"A", "C", 2, 100},
		{"C", "B", 2, 100},
	})
	_, prev, err = algo.ShortestPath(g, "A", "B", algo.DURATION)
	require.NoError(t, err)
	assert.Equal(t, algo.Path{"A", "B"}, algo.ReconstructPath(prev, "A", "B"))
	dist, prev, err = algo.ShortestPath(g, "A", "B", algo.COST)
	require.NoError(t, err)
	path = algo.ReconstructPath(prev, "A", "B")
	assert.Equal(t, algo.Path{"A", "C", "B"}, path)
	totalDuration, totalCost, err = algo.Aggregate(g, path)
	require.NoError(t, err)
	assert.Equal(t, dist["B"], totalCost)
	assert.Equal(t, 4.0, totalDuration)
}

func TestShortestPathSourceIsTarget(t *testing.T) {
	g := cityGraph(t)

	dist, prev, err := algo.ShortestPath(g, "Chennai", "Chennai", algo.COST)
	require.NoError(t, err)
	assert.Equal(t, 0.0, dist["Chennai"])
	path := algo.ReconstructPath(prev, "Chennai", "Chennai")
	assert.Equal(t, algo.Path{"Chennai"}, path)
	totalDuration, totalCost, err := algo.Aggregate(g, path)
	require.NoError(t, err)
	assert.Equal(t, 0.0, totalDuration)
	assert.Equal(t, 0.0, totalCost)
}

func TestShortestPathInvalidSource(t *testing.T) {
	g := cityGraph(t)

	_, _, err := algo.ShortestPath(g, "Goa", "Delhi", algo.DURATION)
	assert.ErrorIs(t, err, algo.ErrInvalidQuery)
}

func TestShortestPathEdgeOnlyDestination(t *testing.T) {
	// Z只作为边的终点出现
	g := algo.NewGraph()
	require.NoError(t, g.AddNode("A"))
	require.NoError(t, g.AddEdge("A", algo.Edge{To: "Z", Duration: 5, Cost: 10}))

	assert.Equal(t, []algo.NodeID{"A", "Z"}, g.Nodes())
	assert.Empty(t, g.Edges("Z"))

	dist, prev, err := algo.ShortestPath(g, "A", "Z", algo.COST)
	require.NoError(t, err)
	assert.Equal(t, 10.0, dist["Z"])
	assert.Equal(t, algo.NodeID("A"), prev["Z"])
}

func TestShortestPathIdempotent(t *testing.T) {
	g := cityGraph(t)

	dist1, prev1, err := algo.ShortestPath(g, "Delhi", "Chennai", algo.COST)
	require.NoError(t, err)
	dist2, prev2, err := algo.ShortestPath(g, "Delhi", "Chennai", algo.COST)
	require.NoError(t, err)
	assert.Equal(t, dist1, dist2)
	assert.Equal(t, prev1, prev2)
}

func TestShortestPathEarlyExitMatchesFull(t *testing.T) {
	g := cityGraph(t)

	// 以不存在出边的Kolkata为目标时会遍历全图
	full, _, err := algo.ShortestPath(g, "Delhi", "Kolkata", algo.DURATION)
	require.NoError(t, err)
	for _, target := range g.Nodes() {
		dist, prev, err := algo.ShortestPath(g, "Delhi", target, algo.DURATION)
		require.NoError(t, err)
		assert.Equal(t, full[target], dist[target], "target %s", target)

		// 路径上的目标权重之和等于最短距离
		totalDuration, _, err := algo.Aggregate(g, algo.ReconstructPath(prev, "Delhi", target))
		require.NoError(t, err)
		assert.Equal(t, dist[target], totalDuration, "target %s", target)
	}
}

func TestShortestPathMatchesBruteForce(t *testing.T) {
	g := cityGraph(t)
	for _, objective := range []algo.Objective{algo.DURATION, algo.COST} {
		for _, source := range g.Nodes() {
			// Bellman-Ford作为对照
			want := make(map[algo.NodeID]float64)
			for _, n := range g.Nodes() {
				want[n] = math.Inf(1)
			}
			want[source] = 0
			for i := 0; i < len(g.Nodes()); i++ {
				for _, u := range g.Nodes() {
					for _, e := range g.Edges(u) {
						if d := want[u] + objective.Weight(e); d < want[e.To] {
							want[e.To] = d
						}
					}
				}
			}
			for _, target := range g.Nodes() {
				dist, _, err := algo.ShortestPath(g, source, target, objective)
				require.NoError(t, err)
				assert.Equal(t, want[target], dist[target], "%v %s->%s", objective, source, target)
			}
		}
	}
}

func TestAggregateBrokenPath(t *testing.T) {
	g := cityGraph(t)

	_, _, err := algo.Aggregate(g, algo.Path{"Kolkata", "Delhi"})
	assert.ErrorIs(t, err, algo.ErrBrokenPath)
}

func TestGraphRejectsInvalidInput(t *testing.T) {
	g := algo.NewGraph()
	assert.ErrorIs(t, g.AddNode(""), algo.ErrInvalidGraph)
	assert.ErrorIs(t, g.AddEdge("A", algo.Edge{To: "B", Duration: -1}), algo.ErrInvalidGraph)
	assert.ErrorIs(t, g.AddEdge("A", algo.Edge{To: "", Duration: 1}), algo.ErrInvalidGraph)
}

func TestGraphEdgeLookup(t *testing.T) {
	g := buildGraph(t, nil, []testEdge{
		{"A", "B", 2, 20},
		{"A", "B", 1, 10},
	})

	// 平行边时取列表中的第一条
	e, ok := g.Edge("A", "B")
	assert.True(t, ok)
	assert.Equal(t, 2.0, e.Duration)
	_, ok = g.Edge("B", "A")
	assert.False(t, ok)
	assert.Equal(t, 2, g.NumEdges())
}

func TestParseObjective(t *testing.T) {
	o, err := algo.ParseObjective(" Time ")
	require.NoError(t, err)
	assert.Equal(t, algo.DURATION, o)
	o, err = algo.ParseObjective("cost")
	require.NoError(t, err)
	assert.Equal(t, algo.COST, o)
	_, err = algo.ParseObjective("distance")
	assert.ErrorIs(t, err, algo.ErrInvalidQuery)
	assert.Equal(t, "cost", algo.COST.String())
}
