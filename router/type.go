package router

import (
	"time"

	"git.fiblab.net/sim/itinerary/router/algo"
)

// Flight 一条航线，Hours为飞行时长，Cost以Network.Currency计价
type Flight struct {
	To    string  `yaml:"to" json:"to" bson:"to"`
	Hours float64 `yaml:"hours" json:"hours" bson:"hours"`
	Cost  float64 `yaml:"cost" json:"cost" bson:"cost"`
}

// Airport 一个地点及其出发航线
type Airport struct {
	ID      string   `yaml:"id" json:"id" bson:"_id"`
	Zone    string   `yaml:"zone" json:"zone" bson:"zone"`
	Flights []Flight `yaml:"flights" json:"flights" bson:"flights"`
}

// Network 航线网络的输入格式
type Network struct {
	// 航线价格使用的货币，为空时为DEFAULT_CURRENCY
	Currency string    `yaml:"currency" json:"currency" bson:"currency"`
	Airports []Airport `yaml:"airports" json:"airports" bson:"airports"`
}

type Query struct {
	Source    string
	Target    string
	Objective algo.Objective
	// 报告价格使用的货币，为空时不转换
	Currency string
	// 第一段航班的出发时刻
	Start time.Time
}

type Itinerary struct {
	Source    algo.NodeID
	Target    algo.NodeID
	Objective algo.Objective
	// 是否存在可行路径，为false时其余字段无意义
	Found bool
	Path  algo.Path
	// 优化目标上的最短距离
	Total         float64
	TotalDuration float64
	// 以BaseCurrency计价
	TotalCost     float64
	BaseCurrency  string
	Currency      string
	ConvertedCost float64
	Schedule      []algo.ScheduleEntry
	// 时刻表构建失败的原因，不影响路径与总计
	ScheduleErr error
}
