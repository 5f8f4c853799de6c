package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"git.fiblab.net/sim/itinerary/currency"
	"git.fiblab.net/sim/itinerary/router"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

var (
	// 性能测试
	benchmark = flag.Bool("benchmark", false, "benchmark mode")
	pprofAddr = flag.String("pprof", "localhost:52102", "pprof listening address")
)

func newConverter(c *Config) router.CurrencyConverter {
	if c.Offline {
		return currency.Static(c.Rates)
	}
	return currency.NewHTTPConverter(c.RateEndpoint, currency.WithTTL(c.rateTTL()))
}

func main() {
	flag.Parse()
	config, err := configFromFlags()
	if err != nil {
		logrus.Fatalf("invalid config: %s", err)
	}
	config.setupLogger()

	networkPath, err := NewPath(config.Network)
	if err != nil {
		log.Fatalf("invalid network path: %s", err)
	}
	loadNetwork := func() (*router.Network, error) {
		return LoadNetwork(context.Background(), config.MongoURI, networkPath, config.BaseCurrency)
	}
	network, err := loadNetwork()
	if err != nil {
		log.Fatal(err)
	}
	r, err := router.New(network, newConverter(config))
	if err != nil {
		log.Fatalf("invalid network: %s", err)
	}

	if *querySource != "" {
		if err := runQuery(context.Background(), r, os.Stdout); err != nil {
			log.Fatal(err)
		}
		return
	}

	if *pprofAddr != "" {
		// 启动pprof
		startHTTPDebugger(*pprofAddr)
	}

	if *benchmark {
		// 性能测试
		res, err := runBenchmark(context.Background(), r, *benchmarkCount, *benchmarkSeed, *benchmarkCPU)
		if err != nil {
			log.Fatalf("benchmark failed: %v", err)
		}
		log.Warnf("benchmark finished, count: %d, found: %d, time: %v, avg: %v",
			res.Count, res.Found, res.Elapsed, res.Elapsed/time.Duration(res.Count))
		return
	}

	// 初始化connect服务端
	server := NewItineraryServer(r)
	mux := http.NewServeMux()
	mux.Handle(NewItineraryServiceHandler(server))

	// 使用HTTP/2 w.o. TLS
	s := &http.Server{
		Addr:    config.Listen,
		Handler: h2c.NewHandler(mux, &http2.Server{}),
	}

	// SIGHUP重新加载航线网络，SIGINT/SIGTERM优雅退出
	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	go func() {
		for sig := range signalCh {
			if sig == syscall.SIGHUP {
				server.Suspend()
				if network, err := loadNetwork(); err != nil {
					log.Errorf("reload failed: %v", err)
				} else if err := r.Reload(network); err != nil {
					log.Errorf("reload failed: %v", err)
				}
				server.Resume()
				continue
			}
			log.Info("stopping...")
			go func() {
				<-signalCh
				os.Exit(1) // 强制结束
			}()
			s.Close()
			server.Close()
			return
		}
	}()

	log.Infof("server listening at %v", s.Addr)
	if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("failed to serve: %v", err)
	}
	time.Sleep(1 * time.Second) // 延迟等待"优雅退出"
	log.Info("itinerary server closes")
}
