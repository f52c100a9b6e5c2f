// pkg/chunk/errors.go

package chunk

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrNotInitialized = errors.New("chunk store is not initialized")
	ErrPayloadSize    = errors.New("payload is larger than the requested chunk")
	ErrInvalidOffset  = errors.New("invalid offset")
)

// FileInfoError means the size probe failed and the store can not be used.
type FileInfoError struct {
	Path string
	Err  error
}

func (e *FileInfoError) Error() string {
	return fmt.Sprintf("get file info of %s: %s", e.Path, e.Err)
}

func (e *FileInfoError) Unwrap() error { return e.Err }

// ChunkReadError is returned to every caller waiting on a failed chunk load.
type ChunkReadError struct {
	Path   string
	Index  uint64
	Offset int64
	Err    error
}

func (e *ChunkReadError) Error() string {
	return fmt.Sprintf("read chunk %d (offset %d) of %s: %s", e.Index, e.Offset, e.Path, e.Err)
}

func (e *ChunkReadError) Unwrap() error { return e.Err }
