package algo

import (
	"container/heap"
	"fmt"
	"math"

	"github.com/samber/lo"
)

// Graph 邻接表表示的航线图
// 查询期间只读，可被多个并发查询共享；构建（AddNode/AddEdge）不是并发安全的
type Graph struct {
	// 按插入顺序排列的全部节点，包含只作为边终点出现的节点
	nodes []NodeID
	// 节点 -> 出边（保持插入顺序，决定同代价时的选择）
	edges map[NodeID][]Edge
}

func NewGraph() *Graph {
	return &Graph{
		nodes: make([]NodeID, 0),
		edges: make(map[NodeID][]Edge),
	}
}

// AddNode 加入节点，已存在时不做任何事
func (g *Graph) AddNode(n NodeID) error {
	if n == NoNode {
		return fmt.Errorf("%w: empty node id", ErrInvalidGraph)
	}
	if _, ok := g.edges[n]; !ok {
		g.nodes = append(g.nodes, n)
		g.edges[n] = make([]Edge, 0)
	}
	return nil
}

// AddEdge 加入一条from->to的有向边，两端节点不存在时自动加入
func (g *Graph) AddEdge(from NodeID, e Edge) error {
	if e.Duration < 0 || e.Cost < 0 || math.IsNaN(e.Duration) || math.IsNaN(e.Cost) {
		return fmt.Errorf("%w: edge %s->%s has invalid weight (%v, %v)",
			ErrInvalidGraph, from, e.To, e.Duration, e.Cost)
	}
	if err := g.AddNode(from); err != nil {
		return err
	}
	if err := g.AddNode(e.To); err != nil {
		return err
	}
	g.edges[from] = append(g.edges[from], e)
	return nil
}

func (g *Graph) HasNode(n NodeID) bool {
	_, ok := g.edges[n]
	return ok
}

// Nodes 返回全部节点（插入顺序），调用者不应修改
func (g *Graph) Nodes() []NodeID {
	return g.nodes
}

// Edges 返回节点的出边（插入顺序），调用者不应修改
func (g *Graph) Edges(n NodeID) []Edge {
	return g.edges[n]
}

// Edge 返回from的出边列表中第一条终点为to的边
func (g *Graph) Edge(from, to NodeID) (Edge, bool) {
	return lo.Find(g.edges[from], func(e Edge) bool {
		return e.To == to
	})
}

func (g *Graph) NumEdges() int {
	return lo.SumBy(g.nodes, func(n NodeID) int {
		return len(g.edges[n])
	})
}

// ShortestPath Dijkstra求source出发的最短路，弹出target后提前结束
//
// 只有严格更优的松弛才会覆盖记录，优先级相同的节点按入队顺序出队，
// 因此同代价时保留最先发现的路径。
func ShortestPath(g *Graph, source, target NodeID, objective Objective) (Distances, Predecessors, error) {
	if !g.HasNode(source) {
		return nil, nil, fmt.Errorf("%w: source %q is not in graph", ErrInvalidQuery, source)
	}
	dist := make(Distances, len(g.nodes))
	prev := make(Predecessors, len(g.nodes))
	for _, n := range g.nodes {
		dist[n] = math.Inf(1)
		prev[n] = NoNode
	}
	dist[source] = 0

	var seq uint64
	visited := make(map[NodeID]bool, len(g.nodes))
	openSet := make(PriorityQueue, 0, len(g.nodes))
	heap.Push(&openSet, &Item{Value: source, Priority: 0, Seq: seq})
	for openSet.Len() > 0 {
		cur := heap.Pop(&openSet).(*Item)
		// 过期的堆元素
		if visited[cur.Value] || cur.Priority > dist[cur.Value] {
			continue
		}
		visited[cur.Value] = true
		if cur.Value == target {
			break
		}
		for _, e := range g.edges[cur.Value] {
			tentative := dist[cur.Value] + objective.Weight(e)
			if tentative < dist[e.To] {
				dist[e.To] = tentative
				prev[e.To] = cur.Value
				seq++
				heap.Push(&openSet, &Item{Value: e.To, Priority: tentative, Seq: seq})
			}
		}
	}
	return dist, prev, nil
}

// ReconstructPath 沿前驱回溯得到source到target的路径
// 调用前必须确认target可达（dist.Reachable(target)），否则结果无意义
func ReconstructPath(prev Predecessors, source, target NodeID) Path {
	pathBeforeReversed := Path{target}
	for cur := target; cur != source; {
		from := prev[cur]
		if from == NoNode {
			break
		}
		pathBeforeReversed = append(pathBeforeReversed, from)
		cur = from
	}
	return lo.Reverse(pathBeforeReversed)
}
