// cmd/bench.go

package main

import (
	"fmt"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"AveView/pkg/chunk"
	"AveView/pkg/utils"
	"AveView/pkg/vfs"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func benchFlags() *cli.Command {
	return &cli.Command{
		Name:      "bench",
		Usage:     "issue random concurrent slices against one file and report cache behaviour",
		ArgsUsage: "PATH",
		Action:    bench,
		Flags: append(storageFlags(),
			&cli.IntFlag{
				Name:  "requests",
				Value: 1000,
				Usage: "number of slices",
			},
			&cli.IntFlag{
				Name:    "workers",
				Aliases: []string{"p"},
				Value:   8,
				Usage:   "number of concurrent workers",
			},
			&cli.Int64Flag{
				Name:  "max-length",
				Value: 64 << 10,
				Usage: "maximum length of one slice in bytes",
			},
			&cli.Int64Flag{
				Name:  "seed",
				Usage: "seed of the random offsets (0 uses the clock)",
			},
			&cli.StringFlag{
				Name:  "metrics",
				Usage: "address to export prometheus metrics, e.g. 127.0.0.1:9567",
			},
		),
	}
}

type sliceReq struct {
	start, end int64
}

func exposeMetrics(addr string) {
	reg := prometheus.NewRegistry()
	if err := chunk.RegisterMetrics(reg); err != nil {
		logger.Warnf("register metrics: %s", err)
		return
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{
		Addr:     addr,
		Handler:  mux,
		ErrorLog: utils.GetStdLogger(logger, logrus.WarnLevel),
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Errorf("metrics server: %s", err)
		}
	}()
	logger.Infof("Prometheus metrics listening on %s", addr)
}

func bench(ctx *cli.Context) error {
	if ctx.Args().Len() != 1 {
		return fmt.Errorf("PATH is needed")
	}
	if addr := ctx.String("metrics"); addr != "" {
		exposeMetrics(addr)
	}
	path := ctx.Args().First()
	store, release, err := openStore(ctx, path)
	if err != nil {
		return err
	}
	defer release()

	buf, err := vfs.NewBuffer(store, nil)
	if err != nil {
		return err
	}
	size := buf.ByteLength()
	requests, workers := ctx.Int("requests"), ctx.Int("workers")
	maxLength := ctx.Int64("max-length")
	if size == 0 || requests <= 0 || workers <= 0 || maxLength <= 0 {
		return fmt.Errorf("nothing to do for %s (size %d, %d requests, %d workers)", path, size, requests, workers)
	}
	seed := ctx.Int64("seed")
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rnd := rand.New(rand.NewSource(seed))

	logger.Infof("start %d slices of %s with %d workers", requests, path, workers)
	progress, bar := utils.NewDynProgressBar("slices: ", ctx.Bool("quiet"))
	bar.SetTotal(int64(requests), false)

	start := time.Now()
	todo := make(chan sliceReq, 10240)
	var wg sync.WaitGroup
	var mu sync.Mutex
	var failed int
	var bytes int64
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for r := range todo {
				data, err := buf.Slice(ctx.Context, r.start, r.end)
				mu.Lock()
				if err != nil {
					failed++
					logger.Errorf("slice (%d,%d): %s", r.start, r.end, err)
				} else {
					bytes += int64(len(data))
				}
				mu.Unlock()
				bar.Increment()
			}
		}()
	}
	for i := 0; i < requests; i++ {
		off := rnd.Int63n(size)
		todo <- sliceReq{off, off + 1 + rnd.Int63n(maxLength)}
	}
	close(todo)
	wg.Wait()
	bar.SetTotal(-1, true)
	progress.Wait()
	used := time.Since(start)

	st := store.Stats()
	fmt.Printf("%d slices (%d failed), %d bytes in %s\n", requests, failed, bytes, used)
	fmt.Printf("chunks: %d hits, %d misses, %d joined, %d evicted, %d errors, %d fetched bytes\n",
		st.Hits, st.Misses, st.Joins, st.Evictions, st.Errors, st.FetchedBytes)
	fmt.Printf("cache: %d chunks, %d bytes\n", st.Cached, st.UsedMemory)
	fmt.Printf("process: %s, up %s\n", utils.GetRusage(), utils.Clock().Round(time.Millisecond))
	if failed > 0 {
		return fmt.Errorf("%d slices failed", failed)
	}
	return nil
}
