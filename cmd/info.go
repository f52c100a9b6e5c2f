// cmd/info.go

package main

import (
	"encoding/json"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v2"
)

type fileInfo struct {
	Path            string
	Storage         string
	Size            int64
	HumanSize       string
	ChunkSize       int
	MaxCachedChunks int
	Chunks          int64
	Eviction        string
}

func printJson(v interface{}) {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		logger.Fatalf("json: %s", err)
	}
	fmt.Println(string(output))
}

func infoFlags() *cli.Command {
	return &cli.Command{
		Name:      "info",
		Usage:     "show size and chunk strategy of files",
		ArgsUsage: "PATH ...",
		Action:    info,
		Flags: append(storageFlags(),
			&cli.BoolFlag{
				Name:  "json",
				Usage: "print the result as JSON",
			},
		),
	}
}

func info(ctx *cli.Context) error {
	if ctx.Args().Len() < 1 {
		return fmt.Errorf("PATH is needed")
	}
	var failed int
	for i := 0; i < ctx.Args().Len(); i++ {
		path := ctx.Args().Get(i)
		store, release, err := openStore(ctx, path)
		if err != nil {
			logger.Errorf("%s", err)
			failed++
			continue
		}
		strategy := store.Strategy()
		size := store.FileSize()
		fi := &fileInfo{
			Path:            path,
			Storage:         ctx.String("storage"),
			Size:            size,
			HumanSize:       humanize.IBytes(uint64(size)),
			ChunkSize:       strategy.ChunkSize,
			MaxCachedChunks: strategy.MaxCachedChunks,
			Chunks:          (size + int64(strategy.ChunkSize) - 1) / int64(strategy.ChunkSize),
			Eviction:        ctx.String("eviction"),
		}
		release()

		if ctx.Bool("json") {
			printJson(fi)
			continue
		}
		fmt.Printf("%s :\n", path)
		fmt.Printf("  size: %s (%d bytes)\n", fi.HumanSize, fi.Size)
		fmt.Printf("  chunks: %d x %s, up to %d cached (%s)\n",
			fi.Chunks, humanize.IBytes(uint64(fi.ChunkSize)), fi.MaxCachedChunks, fi.Eviction)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d paths failed", failed, ctx.Args().Len())
	}
	return nil
}
