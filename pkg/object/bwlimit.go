// pkg/object/bwlimit.go

package object

import (
	"context"
	"fmt"

	"github.com/juju/ratelimit"
)

type bwlimit struct {
	Backend
	downLimit *ratelimit.Bucket
}

// NewLimited caps the download rate of b to down bytes per second.
func NewLimited(b Backend, down int64) Backend {
	if down <= 0 {
		return b
	}
	// there are overheads coming from HTTP/TCP/IP
	return &bwlimit{b, ratelimit.NewBucketWithRate(float64(down)*0.85, down)}
}

func (p *bwlimit) String() string {
	return fmt.Sprintf("%s (limited to %d B/s)", p.Backend, p.downLimit.Capacity())
}

func (p *bwlimit) ReadRange(ctx context.Context, key string, chunkSize int, offset int64) ([]byte, error) {
	data, err := p.Backend.ReadRange(ctx, key, chunkSize, offset)
	if len(data) > 0 {
		p.downLimit.Wait(int64(len(data)))
	}
	return data, err
}
