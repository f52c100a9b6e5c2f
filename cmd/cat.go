// cmd/cat.go

package main

import (
	"fmt"
	"os"

	"AveView/pkg/utils"
	"AveView/pkg/vfs"

	"github.com/urfave/cli/v2"
)

func catFlags() *cli.Command {
	return &cli.Command{
		Name:      "cat",
		Usage:     "write a byte range of a file to stdout through the chunk cache",
		ArgsUsage: "PATH",
		Action:    cat,
		Flags: append(storageFlags(),
			&cli.Int64Flag{
				Name:  "offset",
				Usage: "first byte to write",
			},
			&cli.Int64Flag{
				Name:  "length",
				Usage: "number of bytes to write (0 means up to the end)",
			},
		),
	}
}

func cat(ctx *cli.Context) error {
	if ctx.Args().Len() != 1 {
		return fmt.Errorf("PATH is needed")
	}
	store, release, err := openStore(ctx, ctx.Args().First())
	if err != nil {
		return err
	}
	defer release()

	buf, err := vfs.NewBuffer(store, nil)
	if err != nil {
		return err
	}
	start := ctx.Int64("offset")
	end := buf.ByteLength()
	if l := ctx.Int64("length"); l > 0 && start+l < end {
		end = start + l
	}
	if start < 0 || start > end {
		return fmt.Errorf("offset %d is out of range [0, %d]", start, end)
	}

	progress, bar := utils.NewDynProgressBar("cat: ", ctx.Bool("quiet"))
	bar.SetTotal(end-start, false)
	block := int64(store.Strategy().ChunkSize)
	for off := start; off < end; off += block {
		data, err := buf.Slice(ctx.Context, off, min(off+block, end))
		if err != nil {
			bar.Abort(false)
			progress.Wait()
			return err
		}
		if _, err := os.Stdout.Write(data); err != nil {
			bar.Abort(false)
			progress.Wait()
			return err
		}
		bar.IncrBy(len(data))
	}
	bar.SetTotal(-1, true)
	progress.Wait()
	logger.Debugf("cat %s: %+v", ctx.Args().First(), store.Stats())
	return nil
}
