// cmd/storage.go

package main

import (
	"io"

	"AveView/pkg/chunk"
	"AveView/pkg/object"
	"AveView/pkg/version"

	"github.com/urfave/cli/v2"
)

func storageFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "storage",
			Value:   "file",
			EnvVars: []string{"AVEVIEW_STORAGE"},
			Usage:   "storage type (file, sftp, redis, http, s3)",
		},
		&cli.StringFlag{
			Name:    "bucket",
			EnvVars: []string{"AVEVIEW_BUCKET"},
			Usage:   "root directory, URL or bucket the PATH is relative to",
		},
		&cli.StringFlag{
			Name:    "access-key",
			EnvVars: []string{"ACCESS_KEY"},
			Usage:   "access key or user name for the storage",
		},
		&cli.StringFlag{
			Name:    "secret-key",
			EnvVars: []string{"SECRET_KEY"},
			Usage:   "secret key or password for the storage",
		},
		&cli.Int64Flag{
			Name:  "download-limit",
			Value: 0,
			Usage: "bandwidth limit for download in Mbps",
		},
		&cli.DurationFlag{
			Name:  "timeout",
			Usage: "timeout for every backend request (0 means none)",
		},
		&cli.StringFlag{
			Name:  "eviction",
			Value: "lru",
			Usage: "cache eviction policy (lru, lowest-index)",
		},
		&cli.IntFlag{
			Name:  "chunk-size",
			Usage: "chunk size in KiB (0 picks it from the file size)",
		},
		&cli.IntFlag{
			Name:  "max-chunks",
			Usage: "number of cached chunks (0 picks it from the file size)",
		},
	}
}

func createStorage(c *cli.Context) (object.Backend, error) {
	object.UserAgent = version.UserAgent()
	return object.CreateStorage(c.String("storage"), c.String("bucket"), c.String("access-key"), c.String("secret-key"))
}

func storeConfig(c *cli.Context) (*chunk.Config, error) {
	eviction, err := chunk.ParseEvictionPolicy(c.String("eviction"))
	if err != nil {
		return nil, err
	}
	conf := &chunk.Config{Eviction: eviction}
	if c.Int("chunk-size") > 0 || c.Int("max-chunks") > 0 {
		s := chunk.DefaultStrategy
		if c.Int("chunk-size") > 0 {
			s.ChunkSize = c.Int("chunk-size") * chunk.KiB
		}
		if c.Int("max-chunks") > 0 {
			s.MaxCachedChunks = c.Int("max-chunks")
		}
		conf.Strategy = &s
	}
	return conf, nil
}

// openStore returns an initialized store for path and a function releasing it.
func openStore(c *cli.Context, path string) (*chunk.Store, func(), error) {
	conf, err := storeConfig(c)
	if err != nil {
		return nil, nil, err
	}
	raw, err := createStorage(c)
	if err != nil {
		return nil, nil, err
	}
	closeStorage := func() {
		if cl, ok := raw.(io.Closer); ok {
			_ = cl.Close()
		}
	}
	blob := object.WithTimeout(raw, c.Duration("timeout"))
	blob = object.NewLimited(blob, c.Int64("download-limit")*1e6/8)
	logger.Debugf("Data uses %s", blob)

	store := chunk.NewStore(blob, path, conf)
	if err := store.Initialize(c.Context); err != nil {
		closeStorage()
		return nil, nil, err
	}
	return store, func() {
		store.Dispose()
		closeStorage()
	}, nil
}
