package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"connectrpc.com/connect"
	"git.fiblab.net/sim/itinerary/router"
	"git.fiblab.net/sim/itinerary/router/algo"
	"github.com/samber/lo"
)

const (
	ItineraryServiceName = "itinerary.v1.ItineraryService"

	ItineraryServiceGetItineraryProcedure = "/" + ItineraryServiceName + "/GetItinerary"
	ItineraryServiceListAirportsProcedure = "/" + ItineraryServiceName + "/ListAirports"
)

// jsonCodec 以encoding/json编解码普通的Go结构体，替换connect默认的protojson
type jsonCodec struct{}

func (jsonCodec) Name() string { return "json" }

func (jsonCodec) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

func (jsonCodec) Unmarshal(b []byte, v any) error { return json.Unmarshal(b, v) }

type GetItineraryRequest struct {
	Source string `json:"source"`
	Target string `json:"target"`
	// time/duration 或 cost
	Objective string `json:"objective"`
	Currency  string `json:"currency,omitempty"`
	// RFC3339，为空时为起点当地今天08:00
	Start string `json:"start,omitempty"`
}

type Leg struct {
	From      string `json:"from"`
	To        string `json:"to"`
	Departure string `json:"departure"`
	Arrival   string `json:"arrival"`
}

type GetItineraryResponse struct {
	Found         bool     `json:"found"`
	Objective     string   `json:"objective"`
	Path          []string `json:"path,omitempty"`
	Total         float64  `json:"total,omitempty"`
	TotalHours    float64  `json:"total_hours,omitempty"`
	TotalCost     float64  `json:"total_cost,omitempty"`
	BaseCurrency  string   `json:"base_currency"`
	Currency      string   `json:"currency"`
	ConvertedCost float64  `json:"converted_cost,omitempty"`
	Legs          []Leg    `json:"legs,omitempty"`
	ScheduleError string   `json:"schedule_error,omitempty"`
}

type ListAirportsRequest struct{}

type AirportInfo struct {
	ID      string `json:"id"`
	Zone    string `json:"zone,omitempty"`
	Flights int    `json:"flights"`
}

type ListAirportsResponse struct {
	Airports     []AirportInfo `json:"airports"`
	BaseCurrency string        `json:"base_currency"`
}

// NewItineraryServiceHandler 返回挂载路径与处理全部procedure的handler
func NewItineraryServiceHandler(s *ItineraryServer, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(jsonCodec{})}, opts...)
	mux := http.NewServeMux()
	mux.Handle(ItineraryServiceGetItineraryProcedure, connect.NewUnaryHandler(
		ItineraryServiceGetItineraryProcedure, s.GetItinerary, opts...,
	))
	mux.Handle(ItineraryServiceListAirportsProcedure, connect.NewUnaryHandler(
		ItineraryServiceListAirportsProcedure, s.ListAirports, opts...,
	))
	return "/" + ItineraryServiceName + "/", mux
}

type ItineraryServer struct {
	router *router.Router
	now    func() time.Time

	// 接口开启true或关闭false
	ok bool
	// 条件变量
	cond *sync.Cond
}

func NewItineraryServer(r *router.Router) *ItineraryServer {
	return &ItineraryServer{
		router: r,
		now:    time.Now,
		ok:     true, cond: sync.NewCond(&sync.Mutex{})}
}

func (s *ItineraryServer) wait() {
	// 暂停-恢复机制
	s.cond.L.Lock()
	for !s.ok {
		// 暂停中
		s.cond.Wait()
	}
	s.cond.L.Unlock()
}

func (s *ItineraryServer) GetItinerary(
	ctx context.Context,
	req *connect.Request[GetItineraryRequest],
) (*connect.Response[GetItineraryResponse], error) {
	s.wait()
	in := req.Msg
	objective, err := algo.ParseObjective(in.Objective)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}
	if !s.router.HasNode(in.Source) {
		return nil, connect.NewError(
			connect.CodeInvalidArgument,
			fmt.Errorf("no source airport: %v", in.Source),
		)
	}
	var start time.Time
	if in.Start == "" {
		zone, _ := s.router.Zone(in.Source)
		start = defaultStart(s.now(), zone)
	} else if start, err = time.Parse(time.RFC3339, in.Start); err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("invalid start: %w", err))
	}
	log.Debugf("Search %v itinerary from %v to %v", objective, in.Source, in.Target)
	it, err := s.router.Search(ctx, router.Query{
		Source:    in.Source,
		Target:    in.Target,
		Objective: objective,
		Currency:  in.Currency,
		Start:     start,
	})
	if err != nil {
		if errors.Is(err, algo.ErrInvalidQuery) {
			return nil, connect.NewError(connect.CodeInvalidArgument, err)
		}
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	return connect.NewResponse(newItineraryResponse(it)), nil
}

func newItineraryResponse(it *router.Itinerary) *GetItineraryResponse {
	ret := &GetItineraryResponse{
		Found:        it.Found,
		Objective:    it.Objective.String(),
		BaseCurrency: it.BaseCurrency,
		Currency:     it.Currency,
	}
	if !it.Found {
		// 无法找到通路，返回空行程
		return ret
	}
	ret.Path = lo.Map(it.Path, func(n algo.NodeID, _ int) string { return string(n) })
	ret.Total = it.Total
	ret.TotalHours = it.TotalDuration
	ret.TotalCost = it.TotalCost
	ret.ConvertedCost = it.ConvertedCost
	ret.Legs = lo.Map(it.Schedule, func(e algo.ScheduleEntry, _ int) Leg {
		return Leg{
			From:      string(e.From),
			To:        string(e.To),
			Departure: e.Departure.Format(time.RFC3339),
			Arrival:   e.Arrival.Format(time.RFC3339),
		}
	})
	if it.ScheduleErr != nil {
		ret.ScheduleError = it.ScheduleErr.Error()
	}
	return ret
}

func (s *ItineraryServer) ListAirports(
	ctx context.Context,
	req *connect.Request[ListAirportsRequest],
) (*connect.Response[ListAirportsResponse], error) {
	s.wait()
	g := s.router.Graph()
	airports := lo.Map(g.Nodes(), func(n algo.NodeID, _ int) AirportInfo {
		zone, _ := s.router.Zone(string(n))
		return AirportInfo{ID: string(n), Zone: zone, Flights: len(g.Edges(n))}
	})
	return connect.NewResponse(&ListAirportsResponse{
		Airports:     airports,
		BaseCurrency: s.router.BaseCurrency(),
	}), nil
}

// 暂停服务
func (s *ItineraryServer) Suspend() {
	s.cond.L.Lock()
	defer s.cond.L.Unlock()
	s.ok = false
}

// 恢复服务
func (s *ItineraryServer) Resume() {
	s.cond.L.Lock()
	defer s.cond.L.Unlock()
	s.ok = true
	s.cond.Broadcast()
}

// 关闭服务
func (s *ItineraryServer) Close() {
	s.router.Close()
}

// defaultStart 起点当地时间今天08:00，时区未知时使用UTC
func defaultStart(now time.Time, zone string) time.Time {
	loc := time.UTC
	if zone != "" {
		if l, err := time.LoadLocation(zone); err == nil {
			loc = l
		}
	}
	now = now.In(loc)
	return time.Date(now.Year(), now.Month(), now.Day(), 8, 0, 0, 0, loc)
}
