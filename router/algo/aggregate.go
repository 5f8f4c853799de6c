package algo

import "fmt"

// Aggregate 沿路径重新累加两种边权，不依赖搜索过程中的记录
func Aggregate(g *Graph, path Path) (totalDuration, totalCost float64, err error) {
	for i := 0; i+1 < len(path); i++ {
		e, ok := g.Edge(path[i], path[i+1])
		if !ok {
			return 0, 0, fmt.Errorf("%w: no edge %s->%s", ErrBrokenPath, path[i], path[i+1])
		}
		totalDuration += e.Duration
		totalCost += e.Cost
	}
	return totalDuration, totalCost, nil
}
