// pkg/chunk/singleflight.go

package chunk

import "context"

// request is one in-flight chunk load. Every caller asking for the same
// index while it runs waits on done and gets the same val and err.
type request struct {
	done    chan struct{}
	val     *Page
	err     error
	waiters int
}

func newRequest() *request {
	return &request{done: make(chan struct{}), waiters: 1}
}

func (r *request) finish(val *Page, err error) {
	r.val, r.err = val, err
	close(r.done)
}

// wait returns early with ctx.Err() if ctx ends first, the load keeps running.
func (r *request) wait(ctx context.Context) (*Page, error) {
	select {
	case <-r.done:
		return r.val, r.err
	default:
	}
	select {
	case <-r.done:
		return r.val, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
