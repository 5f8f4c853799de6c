package router

import (
	"fmt"
	"strings"

	"git.fiblab.net/sim/itinerary/router/algo"
)

const DEFAULT_CURRENCY = "INR"

// 将Network转换为搜索图与时区表
func initGraph(network *Network) (*algo.Graph, algo.ZoneMap, string, error) {
	g := algo.NewGraph()
	zones := make(algo.ZoneMap, len(network.Airports))
	// 先加入全部节点，保证节点顺序与输入一致
	for _, a := range network.Airports {
		id := algo.NodeID(strings.TrimSpace(a.ID))
		if g.HasNode(id) {
			return nil, nil, "", fmt.Errorf("%w: duplicated airport %q", algo.ErrInvalidGraph, id)
		}
		if err := g.AddNode(id); err != nil {
			return nil, nil, "", err
		}
		if a.Zone != "" {
			zones[id] = a.Zone
		}
	}
	for _, a := range network.Airports {
		from := algo.NodeID(strings.TrimSpace(a.ID))
		for _, f := range a.Flights {
			err := g.AddEdge(from, algo.Edge{
				To:       algo.NodeID(strings.TrimSpace(f.To)),
				Duration: f.Hours,
				Cost:     f.Cost,
			})
			if err != nil {
				return nil, nil, "", err
			}
		}
	}
	currency := strings.ToUpper(strings.TrimSpace(network.Currency))
	if currency == "" {
		currency = DEFAULT_CURRENCY
	}
	return g, zones, currency, nil
}

// DefaultNetwork 五个印度城市间的示例航线
func DefaultNetwork() *Network {
	const zone = "Asia/Kolkata"
	return &Network{
		Currency: DEFAULT_CURRENCY,
		Airports: []Airport{
			{ID: "Delhi", Zone: zone, Flights: []Flight{{"Mumbai", 2, 3000}, {"Bengaluru", 3, 4500}}},
			{ID: "Mumbai", Zone: zone, Flights: []Flight{{"Bengaluru", 1, 2000}, {"Chennai", 3, 2500}}},
			{ID: "Bengaluru", Zone: zone, Flights: []Flight{{"Chennai", 2, 1500}, {"Kolkata", 4, 4000}}},
			{ID: "Chennai", Zone: zone, Flights: []Flight{{"Kolkata", 3, 3000}}},
			{ID: "Kolkata", Zone: zone},
		},
	}
}
