// pkg/object/timeout.go

package object

import (
	"context"
	"time"
)

type withTimeout struct {
	Backend
	timeout time.Duration
}

// WithTimeout bounds every call to b by d.
func WithTimeout(b Backend, d time.Duration) Backend {
	if d <= 0 {
		return b
	}
	return &withTimeout{b, d}
}

func (t *withTimeout) Info(ctx context.Context, key string) (FileInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.Backend.Info(ctx, key)
}

func (t *withTimeout) ReadRange(ctx context.Context, key string, chunkSize int, offset int64) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.Backend.ReadRange(ctx, key, chunkSize, offset)
}
