// pkg/chunk/strategy.go

package chunk

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

const (
	KiB = 1 << 10
	MiB = 1 << 20
)

// Strategy fixes the chunk size and the cache bound of a store.
type Strategy struct {
	ChunkSize       int
	MaxCachedChunks int
}

// DefaultStrategy is active until the file size is known.
var DefaultStrategy = Strategy{ChunkSize: 1 * MiB, MaxCachedChunks: 20}

// SelectStrategy picks larger chunks and fewer of them as the file grows,
// so the cache stays around 20-25 MiB for any file.
func SelectStrategy(fileSize int64) Strategy {
	switch {
	case fileSize > 100*MiB:
		return Strategy{ChunkSize: 2 * MiB, MaxCachedChunks: 10}
	case fileSize > 50*MiB:
		return Strategy{ChunkSize: 1 * MiB, MaxCachedChunks: 20}
	default:
		return Strategy{ChunkSize: 512 * KiB, MaxCachedChunks: 50}
	}
}

func (s Strategy) valid() bool {
	return s.ChunkSize > 0 && s.MaxCachedChunks > 0
}

func (s Strategy) String() string {
	return fmt.Sprintf("%s chunks, up to %d cached", humanize.IBytes(uint64(s.ChunkSize)), s.MaxCachedChunks)
}
