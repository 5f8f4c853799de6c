package algo

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// NodeID 地点标识（如机场或城市代码）
type NodeID string

// Objective 单次查询使用的边权
type Objective int

const (
	DURATION Objective = iota
	COST
)

func (o Objective) String() string {
	switch o {
	case DURATION:
		return "duration"
	case COST:
		return "cost"
	default:
		return fmt.Sprintf("Objective(%d)", int(o))
	}
}

// Weight 返回边在该目标下的权重
func (o Objective) Weight(e Edge) float64 {
	if o == COST {
		return e.Cost
	}
	return e.Duration
}

// ParseObjective accepts "time", "duration" and "cost" (case-insensitive).
func ParseObjective(s string) (Objective, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "time", "duration":
		return DURATION, nil
	case "cost":
		return COST, nil
	}
	return 0, fmt.Errorf("%w: unknown objective %q", ErrInvalidQuery, s)
}

// Edge 有向边，Duration单位为小时
type Edge struct {
	To       NodeID
	Duration float64
	Cost     float64
}

// Distances 每个节点到起点的最优累计权重，不可达为+Inf
type Distances map[NodeID]float64

func (d Distances) Reachable(n NodeID) bool {
	v, ok := d[n]
	return ok && !math.IsInf(v, 1)
}

// Predecessors 最优路径上的前驱节点，起点与不可达节点为NoNode
type Predecessors map[NodeID]NodeID

// Path 从起点到终点的节点序列（含两端）
type Path []NodeID

func (p Path) String() string {
	parts := make([]string, len(p))
	for i, n := range p {
		parts[i] = string(n)
	}
	return strings.Join(parts, " -> ")
}

// ScheduleEntry 行程中的一段航班
type ScheduleEntry struct {
	From      NodeID
	To        NodeID
	Departure time.Time // in From's zone
	Arrival   time.Time // in To's zone
}
