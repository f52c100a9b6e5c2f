// pkg/vfs/buffer.go

package vfs

import (
	"context"
	"io"
	"time"

	"AveView/pkg/chunk"
	"AveView/pkg/utils"

	"github.com/pkg/errors"
)

var logger = utils.GetLogger("aveview")

// Loader is the range source behind a Buffer, usually a *chunk.Store.
type Loader interface {
	Ready() bool
	FileSize() int64
	GetRange(ctx context.Context, start, length int64) ([]byte, error)
}

// Config for virtual buffers.
type Config struct {
	SlowSlice time.Duration // slices taking longer are logged, 0 means 10s
}

// Buffer exposes a file of fixed length for random access. It does not own
// the loader and must not be used after the loader is disposed.
//
// Data is only available by waiting for the backend: SliceSync can not be
// served and always returns an empty buffer.
type Buffer struct {
	loader     Loader
	byteLength int64
	slow       time.Duration
}

// NewBuffer captures the current file size of loader, it never changes afterwards.
// The loader must be initialized.
func NewBuffer(loader Loader, conf *Config) (*Buffer, error) {
	if !loader.Ready() {
		return nil, chunk.ErrNotInitialized
	}
	b := &Buffer{
		loader:     loader,
		byteLength: loader.FileSize(),
		slow:       time.Second * 10,
	}
	if conf != nil && conf.SlowSlice > 0 {
		b.slow = conf.SlowSlice
	}
	return b, nil
}

func (b *Buffer) ByteLength() int64 {
	return b.byteLength
}

// Slice returns a copy of [start, min(end, ByteLength)), empty when the range is empty or inverted.
func (b *Buffer) Slice(ctx context.Context, start, end int64) ([]byte, error) {
	if start < 0 {
		return nil, errors.Errorf("invalid slice start %d", start)
	}
	if end > b.byteLength {
		end = b.byteLength
	}
	length := end - start
	if length <= 0 {
		return []byte{}, nil
	}
	begin := utils.Now()
	data, err := b.loader.GetRange(ctx, start, length)
	logit(begin, b.slow, "slice (%d,%d): %d bytes, err: %v", start, end, len(data), err)
	if err != nil {
		return nil, err
	}
	// GetRange already assembled a fresh buffer, nothing aliases the chunk cache
	return data, nil
}

// SliceFrom returns a copy of [start, ByteLength).
func (b *Buffer) SliceFrom(ctx context.Context, start int64) ([]byte, error) {
	return b.Slice(ctx, start, b.byteLength)
}

// SliceSync exists for consumers expecting synchronous access. It can not
// produce data without waiting for the backend, so it returns an empty buffer.
func (b *Buffer) SliceSync(start, end int64) []byte {
	logger.Warnf("synchronous slice (%d,%d) is not supported, returning empty buffer", start, end)
	return []byte{}
}

// ReadAt implements io.ReaderAt, blocking until the range is loaded.
func (b *Buffer) ReadAt(p []byte, off int64) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if off < 0 {
		return 0, errors.Errorf("invalid offset %d", off)
	}
	if off >= b.byteLength {
		return 0, io.EOF
	}
	data, err := b.Slice(context.Background(), off, off+int64(len(p)))
	n := copy(p, data)
	if err != nil {
		return n, err
	}
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

// NewReader returns a sequential reader over the whole buffer.
func (b *Buffer) NewReader() *io.SectionReader {
	return io.NewSectionReader(b, 0, b.byteLength)
}
