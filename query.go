package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"git.fiblab.net/sim/itinerary/render"
	"git.fiblab.net/sim/itinerary/router"
	"git.fiblab.net/sim/itinerary/router/algo"
)

var (
	// 单次查询
	querySource    = flag.String("source", "", "source airport, non-empty means one-shot query mode")
	queryTarget    = flag.String("target", "", "target airport")
	queryObjective = flag.String("objective", "time", "optimize by [time, cost]")
	queryCurrency  = flag.String("currency", "", "preferred currency (e.g. USD, EUR, INR)")
	queryStart     = flag.String("start", "", "first departure in RFC3339, empty means 08:00 today at the source")
	dotPath        = flag.String("dot", "", "write the route network with the itinerary highlighted as Graphviz DOT")
)

func runQuery(ctx context.Context, r *router.Router, w io.Writer) error {
	objective, err := algo.ParseObjective(*queryObjective)
	if err != nil {
		return err
	}
	if !r.HasNode(*querySource) {
		return fmt.Errorf("invalid source city: %q", *querySource)
	}
	if !r.HasNode(*queryTarget) {
		return fmt.Errorf("invalid target city: %q", *queryTarget)
	}
	start := time.Time{}
	if *queryStart == "" {
		zone, _ := r.Zone(*querySource)
		start = defaultStart(time.Now(), zone)
	} else if start, err = time.Parse(time.RFC3339, *queryStart); err != nil {
		return fmt.Errorf("invalid start: %w", err)
	}
	it, err := r.Search(ctx, router.Query{
		Source:    *querySource,
		Target:    *queryTarget,
		Objective: objective,
		Currency:  *queryCurrency,
		Start:     start,
	})
	if err != nil {
		return err
	}
	printItinerary(w, it)
	if *dotPath != "" {
		f, err := os.Create(*dotPath)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := render.WriteDOT(f, r.Graph(), it.Path); err != nil {
			return err
		}
		log.Infof("route network written to %s", *dotPath)
	}
	return nil
}

func printItinerary(w io.Writer, it *router.Itinerary) {
	if !it.Found {
		fmt.Fprintf(w, "No path found from %s to %s.\n", it.Source, it.Target)
		return
	}
	fmt.Fprintf(w, "Optimal itinerary: %s\n", it.Path)
	fmt.Fprintf(w, "Total %s: %v\n", it.Objective, it.Total)
	fmt.Fprintf(w, "Total travel time: %v hours\n", it.TotalDuration)
	fmt.Fprintf(w, "Total cost: %.2f %s\n", it.ConvertedCost, it.Currency)
	if it.ScheduleErr != nil {
		fmt.Fprintf(w, "\nNo flight schedule: %v\n", it.ScheduleErr)
		return
	}
	fmt.Fprintln(w, "\nFlight Schedule:")
	for _, e := range it.Schedule {
		fmt.Fprintf(w, "Flight from %s to %s:\n", e.From, e.To)
		fmt.Fprintf(w, "  Departure: %s\n", e.Departure.Format("2006-01-02 15:04 MST"))
		fmt.Fprintf(w, "  Arrival: %s\n", e.Arrival.Format("2006-01-02 15:04 MST"))
	}
}
