package router

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"git.fiblab.net/sim/itinerary/router/algo"
	"github.com/puzpuzpuz/xsync/v3"
	"github.com/samber/lo"
)

// CurrencyConverter 货币转换，失败时必须原样返回amount
type CurrencyConverter interface {
	Convert(ctx context.Context, amount float64, from, to string) float64
}

type Router struct {
	// 搜索图在查询期间只读，Reload时整体替换
	graph        *algo.Graph
	zones        algo.ZoneMap
	baseCurrency string

	converter CurrencyConverter

	mu *xsync.RBMutex
}

func New(network *Network, converter CurrencyConverter) (*Router, error) {
	g, zones, currency, err := initGraph(network)
	if err != nil {
		return nil, err
	}
	log.Infof("network loaded: %d airports, %d flights, prices in %s", len(g.Nodes()), g.NumEdges(), currency)
	return &Router{
		graph:        g,
		zones:        zones,
		baseCurrency: currency,
		converter:    converter,
		mu:           xsync.NewRBMutex(),
	}, nil
}

// Reload 用新的航线网络替换当前的图，进行中的查询继续使用旧图
func (r *Router) Reload(network *Network) error {
	g, zones, currency, err := initGraph(network)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.graph, r.zones, r.baseCurrency = g, zones, currency
	log.Infof("network reloaded: %d airports, %d flights", len(g.Nodes()), g.NumEdges())
	return nil
}

// Validate 检查查询的起终点是否在图中，并规范化货币代码
func (r *Router) Validate(q *Query) error {
	q.Source = strings.TrimSpace(q.Source)
	q.Target = strings.TrimSpace(q.Target)
	q.Currency = strings.ToUpper(strings.TrimSpace(q.Currency))
	if q.Objective != algo.DURATION && q.Objective != algo.COST {
		return fmt.Errorf("%w: invalid objective %v", algo.ErrInvalidQuery, q.Objective)
	}
	token := r.mu.RLock()
	defer r.mu.RUnlock(token)
	if !r.graph.HasNode(algo.NodeID(q.Source)) {
		return fmt.Errorf("%w: invalid source %q", algo.ErrInvalidQuery, q.Source)
	}
	if !r.graph.HasNode(algo.NodeID(q.Target)) {
		return fmt.Errorf("%w: invalid target %q", algo.ErrInvalidQuery, q.Target)
	}
	return nil
}

// Search 求最优行程并生成时刻表
// 终点不可达时返回Found=false的行程而不是错误
func (r *Router) Search(ctx context.Context, q Query) (*Itinerary, error) {
	if err := r.Validate(&q); err != nil {
		return nil, err
	}
	token := r.mu.RLock()
	g, zones, baseCurrency := r.graph, r.zones, r.baseCurrency
	r.mu.RUnlock(token)

	source, target := algo.NodeID(q.Source), algo.NodeID(q.Target)
	ret := &Itinerary{
		Source:       source,
		Target:       target,
		Objective:    q.Objective,
		BaseCurrency: baseCurrency,
		Currency:     lo.Ternary(q.Currency == "", baseCurrency, q.Currency),
	}
	dist, prev, err := algo.ShortestPath(g, source, target, q.Objective)
	if err != nil {
		return nil, err
	}
	if !dist.Reachable(target) {
		log.Debugf("routing failed, no path between %v and %v", source, target)
		return ret, nil
	}
	ret.Found = true
	ret.Total = dist[target]
	ret.Path = algo.ReconstructPath(prev, source, target)
	ret.TotalDuration, ret.TotalCost, err = algo.Aggregate(g, ret.Path)
	if err != nil {
		return nil, err
	}
	ret.ConvertedCost = ret.TotalCost
	if ret.Currency != baseCurrency && r.converter != nil {
		ret.ConvertedCost = r.converter.Convert(ctx, ret.TotalCost, baseCurrency, ret.Currency)
	}
	ret.Schedule, ret.ScheduleErr = algo.BuildTimeline(g, ret.Path, q.Start, zones)
	if ret.ScheduleErr != nil {
		if !errors.Is(ret.ScheduleErr, algo.ErrUnknownZone) {
			return nil, ret.ScheduleErr
		}
		log.Warnf("no schedule for %v: %v", ret.Path, ret.ScheduleErr)
	}
	log.Debugf("Search %v route from %v to %v: %v", q.Objective, source, target, ret.Path)
	return ret, nil
}

// getter

func (r *Router) Graph() *algo.Graph {
	token := r.mu.RLock()
	defer r.mu.RUnlock(token)
	return r.graph
}

func (r *Router) Nodes() []algo.NodeID {
	return r.Graph().Nodes()
}

func (r *Router) HasNode(id string) bool {
	return r.Graph().HasNode(algo.NodeID(id))
}

func (r *Router) Zone(id string) (string, bool) {
	token := r.mu.RLock()
	defer r.mu.RUnlock(token)
	zone, ok := r.zones[algo.NodeID(id)]
	return zone, ok
}

func (r *Router) BaseCurrency() string {
	token := r.mu.RLock()
	defer r.mu.RUnlock(token)
	return r.baseCurrency
}

// close
func (r *Router) Close() {}
