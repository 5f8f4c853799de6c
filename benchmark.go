package main

import (
	"context"
	"errors"
	"flag"
	"math/rand"
	"runtime"
	"sync/atomic"
	"time"

	"git.fiblab.net/sim/itinerary/router"
	"git.fiblab.net/sim/itinerary/router/algo"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

var (
	benchmarkCount = flag.Int("benchmark.count", 1000, "the random query count for benchmark")
	benchmarkSeed  = flag.Int64("benchmark.seed", 0, "the seed for benchmark")
	benchmarkCPU   = flag.Int("benchmark.cpu", 1, "the cpu count for benchmark")
)

type benchmarkResult struct {
	Count   int
	Found   int32
	Elapsed time.Duration
}

// runBenchmark 随机生成查询，多个goroutine共享同一张只读的图
func runBenchmark(ctx context.Context, r *router.Router, count int, seed int64, cpu int) (*benchmarkResult, error) {
	log.Logger.SetLevel(logrus.WarnLevel)
	// 设置随机种子
	e := rand.New(rand.NewSource(seed))
	nodes := r.Nodes()
	if len(nodes) == 0 {
		return nil, errors.New("empty network")
	}
	queries := make([]router.Query, count)
	start := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	for i := range queries {
		queries[i] = router.Query{
			Source:    string(nodes[e.Intn(len(nodes))]),
			Target:    string(nodes[e.Intn(len(nodes))]),
			Objective: algo.Objective(e.Intn(2)),
			Start:     start,
		}
	}

	// 开始benchmark
	defer runtime.GOMAXPROCS(runtime.GOMAXPROCS(cpu))
	var found atomic.Int32
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cpu)
	begin := time.Now()
	for _, q := range queries {
		q := q
		g.Go(func() error {
			it, err := r.Search(ctx, q)
			if err != nil {
				return err
			}
			if it.Found {
				found.Add(1)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &benchmarkResult{Count: count, Found: found.Load(), Elapsed: time.Since(begin)}, nil
}
