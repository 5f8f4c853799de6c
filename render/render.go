// Package render draws the flight network as a Graphviz DOT document.
package render

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"git.fiblab.net/sim/itinerary/router/algo"
	"github.com/samber/lo"
)

type pair struct {
	from, to algo.NodeID
}

// WriteDOT 输出整张航线图，边上标注飞行时长；path非空时高亮路径上的边
func WriteDOT(w io.Writer, g *algo.Graph, path algo.Path) error {
	onPath := make(map[pair]bool, len(path))
	for i := 0; i+1 < len(path); i++ {
		onPath[pair{path[i], path[i+1]}] = true
	}
	pathNodes := lo.Associate(path, func(n algo.NodeID) (algo.NodeID, bool) {
		return n, true
	})

	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "digraph routes {")
	fmt.Fprintln(bw, `  label="Flight Routes";`)
	fmt.Fprintln(bw, `  node [shape=circle, style=filled, fillcolor=lightblue, fontname="bold"];`)
	for _, n := range g.Nodes() {
		if pathNodes[n] {
			fmt.Fprintf(bw, "  %s [fillcolor=palegreen];\n", strconv.Quote(string(n)))
		} else {
			fmt.Fprintf(bw, "  %s;\n", strconv.Quote(string(n)))
		}
	}
	for _, n := range g.Nodes() {
		for _, e := range g.Edges(n) {
			attrs := fmt.Sprintf(`label="%s", fontcolor=red`, strconv.FormatFloat(e.Duration, 'f', -1, 64))
			if onPath[pair{n, e.To}] {
				attrs += ", color=green, penwidth=3"
			}
			fmt.Fprintf(bw, "  %s -> %s [%s];\n", strconv.Quote(string(n)), strconv.Quote(string(e.To)), attrs)
		}
	}
	fmt.Fprintln(bw, "}")
	return bw.Flush()
}
