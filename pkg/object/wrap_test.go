// pkg/object/wrap_test.go

package object

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type slowStore struct {
	Backend
	delay time.Duration
}

func (s *slowStore) ReadRange(ctx context.Context, key string, chunkSize int, offset int64) ([]byte, error) {
	select {
	case <-time.After(s.delay):
		return s.Backend.ReadRange(ctx, key, chunkSize, offset)
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func TestWithTimeout(t *testing.T) {
	mem := newMemStore(map[string][]byte{"a": testData(100)})
	assert.Same(t, mem, WithTimeout(mem, 0))

	b := WithTimeout(&slowStore{mem, time.Second}, 20*time.Millisecond)
	_, err := b.ReadRange(context.Background(), "a", 10, 0)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	fi, err := b.Info(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, int64(100), fi.Size)
}

func TestLimited(t *testing.T) {
	mem := newMemStore(map[string][]byte{"a": testData(4000)})
	assert.Same(t, mem, NewLimited(mem, 0))

	b := NewLimited(mem, 1000)
	assert.Contains(t, b.String(), "limited to 1000 B/s")
	start := time.Now()
	for i := 0; i < 3; i++ {
		_, err := b.ReadRange(context.Background(), "a", 1000, int64(i)*1000)
		require.NoError(t, err)
	}
	// the bucket starts full, the rest is paced at 850 B/s
	assert.Greater(t, time.Since(start), time.Second)
}

type memStore struct {
	files map[string][]byte
}

func newMemStore(files map[string][]byte) *memStore {
	return &memStore{files: files}
}

func (m *memStore) String() string { return "mem://" }

func (m *memStore) Info(ctx context.Context, key string) (FileInfo, error) {
	data, ok := m.files[key]
	if !ok {
		return FileInfo{}, ErrNotFound
	}
	return newFileInfo(int64(len(data))), nil
}

func (m *memStore) ReadRange(ctx context.Context, key string, chunkSize int, offset int64) ([]byte, error) {
	data, ok := m.files[key]
	if !ok {
		return nil, ErrNotFound
	}
	if offset >= int64(len(data)) {
		return []byte{}, nil
	}
	end := min(offset+int64(chunkSize), int64(len(data)))
	return data[offset:end], nil
}
