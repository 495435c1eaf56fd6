// Command bench runs a synthetic workload against the key index and exposes optional pprof/Prometheus endpoints.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	_ "net/http/pprof" // registers /debug/pprof/* on DefaultServeMux
	"os"
	"runtime"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	flag "github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/IvanBrykalov/vmindex/index"
	pmet "github.com/IvanBrykalov/vmindex/metrics/prom"
)

// blob stands in for a value-store handle.
type blob struct{ size int }

func main() {
	// ---- Flags ----
	var (
		keys     = flag.Int("keys", 100_000, "keyspace size")
		workers  = flag.Int("workers", 2*runtime.GOMAXPROCS(0), "number of worker goroutines")
		duration = flag.Duration("duration", 10*time.Second, "benchmark duration")
		getPct   = flag.Int("gets", 80, "lookup percentage [0..100]")
		rmPct    = flag.Int("removes", 10, "remove percentage [0..100]; the rest are inserts")
		largePct = flag.Int("large-pct", 5, "percentage of keys longer than the inline probe buffer")
		hold     = flag.Duration("hold", 0, "how long a looked-up reference is held before release")
		seed     = flag.Int64("seed", time.Now().UnixNano(), "random seed")
		verbose  = flag.BoolP("verbose", "v", false, "debug logging")

		pprofAddr   = flag.String("pprof", "", "serve pprof at addr (e.g. :6060); empty = disabled")
		metricsAddr = flag.String("http", ":8080", "serve Prometheus metrics at addr; empty = disabled")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if *getPct+*rmPct > 100 || *getPct < 0 || *rmPct < 0 {
		log.Error("invalid mix", slog.Int("gets", *getPct), slog.Int("removes", *rmPct))
		os.Exit(2)
	}
	if *keys <= 0 {
		log.Error("keyspace must be positive", slog.Int("keys", *keys))
		os.Exit(2)
	}

	// ---- pprof server (on DefaultServeMux) ----
	if *pprofAddr != "" {
		go func() {
			log.Info("pprof: serving", slog.String("addr", *pprofAddr))
			log.Error("pprof server stopped", slog.Any("err", http.ListenAndServe(*pprofAddr, nil)))
		}()
	}

	// ---- Prometheus metrics (on DefaultServeMux) ----
	var metrics index.Metrics = index.NoopMetrics{}
	if *metricsAddr != "" {
		metrics = pmet.New(nil, "vmindex", "bench", nil)
		http.Handle("/metrics", promhttp.Handler())
		go func() {
			log.Info("metrics: serving", slog.String("addr", *metricsAddr))
			log.Error("metrics server stopped", slog.Any("err", http.ListenAndServe(*metricsAddr, nil)))
		}()
	}

	// ---- Build index ----
	var freed atomic.Int64
	idx := index.New[blob](index.Options[blob]{
		Metrics:    metrics,
		Logger:     log,
		OnFinalize: func(*index.Entry[blob]) { freed.Add(1) },
	})

	// ---- Load generation ----
	var gets, hits, inserts, dups, removes, notFound, total atomic.Uint64
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	pad := make([]byte, index.InlineKeyMax)
	for i := range pad {
		pad[i] = '.'
	}
	keyOf := func(r *rand.Rand) []byte {
		k := []byte("k:" + strconv.Itoa(r.Intn(*keys)))
		if r.Intn(100) < *largePct {
			k = append(append(k, pad...), k...)
		}
		return k
	}

	workersN := max(*workers, 1)
	start := time.Now()
	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < workersN; w++ {
		g.Go(func() error {
			// Each worker gets its own RNG (rand.Rand is NOT goroutine-safe).
			r := rand.New(rand.NewSource(*seed + int64(w)*9973))
			for ctx.Err() == nil {
				total.Add(1)
				k := keyOf(r)
				switch op := r.Intn(100); {
				case op < *getPct:
					gets.Add(1)
					ref, ok := idx.Get(k)
					if !ok {
						continue
					}
					hits.Add(1)
					if *hold > 0 {
						time.Sleep(*hold)
					}
					ref.Release()
				case op < *getPct+*rmPct:
					removes.Add(1)
					if err := idx.RemoveKey(k); errors.Is(err, index.ErrNotIndexed) {
						notFound.Add(1)
					} else if err != nil {
						return err
					}
				default:
					inserts.Add(1)
					err := idx.Insert(index.NewEntry(k, blob{size: len(k)}))
					switch {
					case errors.Is(err, index.ErrDuplicateKey):
						dups.Add(1)
					case err != nil:
						return err
					}
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Error("worker failed", slog.Any("err", err))
		os.Exit(1)
	}
	elapsed := time.Since(start)
	resident := idx.Len()
	_ = idx.Close()

	// ---- Report ----
	ops := total.Load()
	hitRate := 0.0
	if n := gets.Load(); n > 0 {
		hitRate = float64(hits.Load()) / float64(n) * 100
	}

	fmt.Printf("workers=%d keys=%d large=%d%% dur=%v seed=%d\n",
		workersN, *keys, *largePct, elapsed, *seed)
	fmt.Printf("ops=%d (%.0f ops/s)  gets=%d  inserts=%d (dup %d)  removes=%d (absent %d)\n",
		ops, float64(ops)/elapsed.Seconds(), gets.Load(), inserts.Load(), dups.Load(), removes.Load(), notFound.Load())
	fmt.Printf("hits=%d  hit-rate=%.2f%%  finalized=%d  Len()=%d\n",
		hits.Load(), hitRate, freed.Load(), resident)
}
