// Copyright 2025 Esteban Alvarez. All Rights Reserved.
//
// Created: October 2025
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Overview:
//
//	filterdemo is a synthetic traffic generator and soak tool for the
//	compression core. It produces a configurable stream of (measurement,
//	field, tags, time, value) samples across many series, routes them
//	through a sharded executor into one tag-indexed FilterTree per shard,
//	and logs the total number of emitted points on exit. Each shard's goroutine owns
//	its FilterTree exclusively, so no tree is ever touched from more than
//	one goroutine. It exposes Prometheus metrics so the compression ratio
//	and flush behaviour can be measured on your own hardware rather than
//	taken on faith.
//
// Usage (quick start):
//
//	go run ./cmd/filterdemo -http :8080 -algorithm sdt -threshold 2.0 \
//	    -max_interval 60 -series 500 -qps 2000 -duration 30s
//	Observe metrics at GET /metrics (Prometheus exposition).
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"dbfilter/pkg/filter"
	"dbfilter/pkg/metrics"
	"dbfilter/pkg/sharding"
	"dbfilter/pkg/tree"
)

func main() {
	algorithm := flag.String("algorithm", "sdt", "compressor: deadband, hysteresis, or sdt")
	threshold := flag.Float64("threshold", 2.0, "per-filter threshold (deadband half-width, hysteresis span, or SDT deviation)")
	maxInterval := flag.Float64("max_interval", 60, "max seconds between emitted points regardless of value")
	series := flag.Int("series", 200, "number of distinct (measurement,field,host) series to simulate")
	qps := flag.Int("qps", 2000, "target samples per second across all series")
	shards := flag.Int("shards", 8, "executor shard count")
	duration := flag.Duration("duration", 30*time.Second, "run duration; 0 for forever")
	httpAddr := flag.String("http", ":8080", "HTTP listen address for /metrics")
	flag.Parse()

	if *shards <= 0 {
		*shards = 8
	}
	if *series <= 0 {
		*series = 200
	}
	if *qps <= 0 {
		*qps = 2000
	}

	reg := prometheus.DefaultRegisterer
	recorder := metrics.NewPrometheus(reg)

	factory, err := factoryFor(*algorithm, filter.Parameters{Threshold: *threshold, MaxInterval: *maxInterval}, filter.WithRecorder(recorder))
	if err != nil {
		log.Fatalf("factory: %v", err)
	}

	inputTotal := prometheus.NewCounter(prometheus.CounterOpts{Name: "filterdemo_input_samples_total", Help: "Total synthetic samples generated"})
	reg.MustRegister(inputTotal)

	// Every shard gets its own FilterTree: the executor guarantees a given
	// host always lands on the same shard, and that shard's goroutine is
	// the only one that ever calls Walk or Flush on its tree, so no tree's
	// internal maps are ever written from two goroutines at once.
	exec := sharding.NewExecutor(*shards, 1024)
	trees := make([]*tree.FilterTree, exec.ShardCount())
	for i := range trees {
		t, err := tree.New(factory, tree.WithRecorder(recorder))
		if err != nil {
			log.Fatalf("tree.New: %v", err)
		}
		trees[i] = t
	}

	http.Handle("/metrics", promhttp.Handler())
	go func() {
		log.Printf("filterdemo listening on %s", *httpAddr)
		if err := http.ListenAndServe(*httpAddr, nil); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http: %v", err)
		}
	}()

	hosts := make([]string, *series)
	for i := range hosts {
		hosts[i] = fmt.Sprintf("host-%d", i)
	}

	var emittedTotal int64

	rng := rand.New(rand.NewSource(1))
	stop := make(chan struct{})
	go func() {
		interval := time.Second / time.Duration(maxInt(1, *qps))
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		base := make([]float64, *series)
		clock := make([]float64, *series)
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				i := rng.Intn(*series)
				host := hosts[i]
				clock[i] += 1 + rng.Float64()
				base[i] += rng.NormFloat64()
				t, v := clock[i], base[i]

				tags := tree.SortTags([]tree.Tag{{Name: "host", Value: host}})
				inputTotal.Inc()
				shardTree := trees[exec.ShardFor(host)]
				exec.Submit(host, func() {
					node := shardTree.Walk(tags)
					emitted, err := node.FilterPoint(t, v)
					if err != nil {
						return
					}
					atomic.AddInt64(&emittedTotal, int64(len(emitted)))
				})
			}
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	var endTimer <-chan time.Time
	if *duration > 0 {
		endTimer = time.After(*duration)
	}
	select {
	case <-sigCh:
	case <-endTimer:
	}
	close(stop)
	time.Sleep(100 * time.Millisecond)

	for _, shardTree := range trees {
		for _, pn := range shardTree.GetAllChildren(nil) {
			exec.Submit(pn.Path[len(pn.Path)-1].Value, func(n *tree.Node) func() {
				return func() {
					emitted := n.Flush()
					atomic.AddInt64(&emittedTotal, int64(len(emitted)))
				}
			}(pn.Node))
		}
	}
	exec.Close()

	log.Printf("emitted %d points", atomic.LoadInt64(&emittedTotal))
}

func factoryFor(algorithm string, params filter.Parameters, opts ...filter.Option) (tree.Factory, error) {
	switch algorithm {
	case "deadband":
		return func() (filter.Filter, error) { return filter.NewDeadbandFilter(params, opts...) }, nil
	case "hysteresis":
		return func() (filter.Filter, error) { return filter.NewHysteresisFilter(params, opts...) }, nil
	case "sdt":
		return func() (filter.Filter, error) { return filter.NewSdtFilter(params, opts...) }, nil
	default:
		return nil, fmt.Errorf("unknown algorithm: %s", algorithm)
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
