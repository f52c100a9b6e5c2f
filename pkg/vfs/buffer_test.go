// pkg/vfs/buffer_test.go

package vfs

import (
	"context"
	"io"
	"math/rand"
	"sync"
	"testing"

	"AveView/pkg/chunk"
	"AveView/pkg/object"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memBackend struct {
	sync.Mutex
	data []byte
}

func (m *memBackend) String() string { return "mem://" }

func (m *memBackend) Info(ctx context.Context, path string) (object.FileInfo, error) {
	m.Lock()
	defer m.Unlock()
	return object.FileInfo{Size: int64(len(m.data))}, nil
}

func (m *memBackend) ReadRange(ctx context.Context, path string, chunkSize int, offset int64) ([]byte, error) {
	m.Lock()
	defer m.Unlock()
	end := min(offset+int64(chunkSize), int64(len(m.data)))
	return append([]byte(nil), m.data[offset:end]...), nil
}

// countingLoader records GetRange calls without loading anything.
type countingLoader struct {
	size  int64
	calls int
}

func (c *countingLoader) Ready() bool     { return true }
func (c *countingLoader) FileSize() int64 { return c.size }

func (c *countingLoader) GetRange(ctx context.Context, start, length int64) ([]byte, error) {
	c.calls++
	return make([]byte, length), nil
}

func newTestBuffer(t *testing.T, size int) (*Buffer, *chunk.Store, *memBackend) {
	data := make([]byte, size)
	rand.New(rand.NewSource(1)).Read(data)
	backend := &memBackend{data: data}
	store := chunk.NewStore(backend, "doc.pdf", &chunk.Config{
		Strategy: &chunk.Strategy{ChunkSize: 1000, MaxCachedChunks: 4},
	})
	require.NoError(t, store.Initialize(context.Background()))
	t.Cleanup(store.Dispose)
	buf, err := NewBuffer(store, nil)
	require.NoError(t, err)
	return buf, store, backend
}

func TestSlice(t *testing.T) {
	buf, _, backend := newTestBuffer(t, 10000)
	ctx := context.Background()
	assert.Equal(t, int64(10000), buf.ByteLength())

	data, err := buf.Slice(ctx, 1500, 4200)
	require.NoError(t, err)
	assert.Equal(t, backend.data[1500:4200], data)

	data, err = buf.Slice(ctx, 9000, 20000)
	require.NoError(t, err)
	assert.Equal(t, backend.data[9000:], data)
}

func TestSliceFrom(t *testing.T) {
	buf, store, _ := newTestBuffer(t, 5555)
	ctx := context.Background()

	for _, start := range []int64{0, 999, 1000, 5554, 5555, 6000} {
		data, err := buf.SliceFrom(ctx, start)
		require.NoError(t, err)
		want, err := store.GetRange(ctx, start, buf.ByteLength()-start)
		require.NoError(t, err)
		assert.Equal(t, want, data, "start %d", start)
	}
}

func TestSliceEmptyRange(t *testing.T) {
	loader := &countingLoader{size: 100}
	buf, err := NewBuffer(loader, nil)
	require.NoError(t, err)
	ctx := context.Background()

	for _, r := range [][2]int64{{10, 10}, {50, 20}, {100, 200}, {150, 160}} {
		data, err := buf.Slice(ctx, r[0], r[1])
		require.NoError(t, err)
		assert.NotNil(t, data)
		assert.Empty(t, data)
	}
	assert.Equal(t, 0, loader.calls)

	_, err = buf.Slice(ctx, -1, 10)
	assert.Error(t, err)
	assert.Equal(t, 0, loader.calls)

	data, err := buf.Slice(ctx, 90, 1000)
	require.NoError(t, err)
	assert.Len(t, data, 10)
	assert.Equal(t, 1, loader.calls)
}

func TestByteLengthIsFixed(t *testing.T) {
	buf, _, backend := newTestBuffer(t, 3000)
	backend.Lock()
	backend.data = append(backend.data, make([]byte, 5000)...)
	backend.Unlock()

	assert.Equal(t, int64(3000), buf.ByteLength())
	data, err := buf.SliceFrom(context.Background(), 2500)
	require.NoError(t, err)
	assert.Len(t, data, 500)
}

func TestSliceSync(t *testing.T) {
	loader := &countingLoader{size: 100}
	buf, err := NewBuffer(loader, nil)
	require.NoError(t, err)
	data := buf.SliceSync(0, 50)
	assert.NotNil(t, data)
	assert.Empty(t, data)
	assert.Equal(t, 0, loader.calls)
}

func TestSliceError(t *testing.T) {
	buf, store, _ := newTestBuffer(t, 3000)
	store.Dispose()
	broken := chunk.NewStore(&failingBackend{}, "doc.pdf", nil)
	var infoErr *chunk.FileInfoError
	require.True(t, errors.As(broken.Initialize(context.Background()), &infoErr))
	_, err := NewBuffer(broken, nil)
	assert.True(t, errors.Is(err, chunk.ErrNotInitialized))
	_, err = NewBuffer(chunk.NewStore(&memBackend{}, "doc.pdf", nil), nil)
	assert.True(t, errors.Is(err, chunk.ErrNotInitialized))

	// a disposed store is still usable
	data, err := buf.Slice(context.Background(), 0, 10)
	require.NoError(t, err)
	assert.Len(t, data, 10)
}

type failingBackend struct{ memBackend }

func (f *failingBackend) Info(ctx context.Context, path string) (object.FileInfo, error) {
	return object.FileInfo{}, errors.New("no such file")
}

func TestReadAt(t *testing.T) {
	buf, _, backend := newTestBuffer(t, 3000)

	p := make([]byte, 1200)
	n, err := buf.ReadAt(p, 500)
	require.NoError(t, err)
	assert.Equal(t, 1200, n)
	assert.Equal(t, backend.data[500:1700], p)

	n, err = buf.ReadAt(p, 2500)
	assert.Equal(t, io.EOF, err)
	assert.Equal(t, 500, n)
	assert.Equal(t, backend.data[2500:], p[:n])

	n, err = buf.ReadAt(p, 3000)
	assert.Equal(t, io.EOF, err)
	assert.Equal(t, 0, n)

	_, err = buf.ReadAt(p, -1)
	assert.Error(t, err)
}

func TestNewReader(t *testing.T) {
	buf, _, backend := newTestBuffer(t, 7777)
	data, err := io.ReadAll(buf.NewReader())
	require.NoError(t, err)
	assert.Equal(t, backend.data, data)
}
