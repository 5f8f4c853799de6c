package algo

import (
	"fmt"
	"time"
)

// ZoneLookup 节点 -> 时区
type ZoneLookup interface {
	Location(n NodeID) (*time.Location, error)
}

// ZoneMap 以IANA时区名表示的ZoneLookup
type ZoneMap map[NodeID]string

func (z ZoneMap) Location(n NodeID) (*time.Location, error) {
	name, ok := z[n]
	if !ok {
		return nil, fmt.Errorf("%w: no zone for %q", ErrUnknownZone, n)
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: zone %q of %q: %v", ErrUnknownZone, name, n, err)
	}
	return loc, nil
}

// BuildTimeline 按路径顺序依次排出每段航班的本地出发、到达时间
// 上一段的到达时刻即下一段的出发时刻；时长按实际经过时间计算，与跨时区无关
func BuildTimeline(g *Graph, path Path, start time.Time, zones ZoneLookup) ([]ScheduleEntry, error) {
	if len(path) < 2 {
		return []ScheduleEntry{}, nil
	}
	entries := make([]ScheduleEntry, 0, len(path)-1)
	cur := start
	for i := 0; i+1 < len(path); i++ {
		u, v := path[i], path[i+1]
		e, ok := g.Edge(u, v)
		if !ok {
			return nil, fmt.Errorf("%w: no edge %s->%s", ErrBrokenPath, u, v)
		}
		fromLoc, err := zones.Location(u)
		if err != nil {
			return nil, err
		}
		toLoc, err := zones.Location(v)
		if err != nil {
			return nil, err
		}
		departure := cur.In(fromLoc)
		arrival := departure.Add(HoursToDuration(e.Duration))
		entries = append(entries, ScheduleEntry{
			From:      u,
			To:        v,
			Departure: departure,
			Arrival:   arrival.In(toLoc),
		})
		cur = arrival
	}
	return entries, nil
}
