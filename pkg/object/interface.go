// pkg/object/interface.go

package object

import (
	"context"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
)

// ErrNotFound is wrapped by drivers when the path does not exist.
var ErrNotFound = errors.New("not found")

// FileInfo is the result of a size probe.
type FileInfo struct {
	Size      int64
	HumanSize string
}

func newFileInfo(size int64) FileInfo {
	return FileInfo{Size: size, HumanSize: humanize.IBytes(uint64(max(size, 0)))}
}

// Backend reads byte ranges of files it can reach.
type Backend interface {
	String() string
	// Info returns the current size of path.
	Info(ctx context.Context, path string) (FileInfo, error)
	// ReadRange returns at most chunkSize bytes at offset, fewer only at the end of the file.
	ReadRange(ctx context.Context, path string, chunkSize int, offset int64) ([]byte, error)
}
