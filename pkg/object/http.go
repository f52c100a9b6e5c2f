// pkg/object/http.go

package object

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/pkg/errors"
	"github.com/psanford/httpreadat"
)

// httpStore reads files below a base URL with Range requests.
type httpStore struct {
	base      string
	transport http.RoundTripper
}

func (h *httpStore) String() string {
	return h.base
}

func (h *httpStore) url(key string) string {
	if h.base == "" {
		return key
	}
	return h.base + "/" + strings.TrimLeft(key, "/")
}

// reader returns a range reader whose requests carry ctx.
func (h *httpStore) reader(ctx context.Context, key string) (*httpreadat.RangeReader, *rangeTransport) {
	t := &rangeTransport{ctx: ctx, base: h.transport, length: -1}
	return httpreadat.New(h.url(key), httpreadat.WithRoundTripper(t)), t
}

// Info probes with a one byte range and reads the total from Content-Range.
// Servers ignoring Range answer 200 and the size is their Content-Length.
func (h *httpStore) Info(ctx context.Context, key string) (FileInfo, error) {
	rr, t := h.reader(ctx, key)
	size, err := rr.Size()
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return FileInfo{}, err
		}
		if t.status == http.StatusOK && t.length >= 0 {
			return newFileInfo(t.length), nil
		}
		return FileInfo{}, errors.Wrapf(err, "size of %s", h.url(key))
	}
	return newFileInfo(size), nil
}

func (h *httpStore) ReadRange(ctx context.Context, key string, chunkSize int, offset int64) ([]byte, error) {
	rr, _ := h.reader(ctx, key)
	buf := make([]byte, chunkSize)
	n, err := rr.ReadAt(buf, offset)
	if err != nil && err != io.EOF {
		if errors.Is(err, ErrNotFound) {
			return nil, err
		}
		return nil, errors.Wrapf(err, "read %s at %d", h.url(key), offset)
	}
	return buf[:n], nil
}

// rangeTransport binds the requests of one call to its context and turns the
// answers of servers into what a range reader expects: 404 is ErrNotFound,
// 416 has an empty body and a 200 ignoring Range is skipped to the requested offset.
type rangeTransport struct {
	ctx    context.Context
	base   http.RoundTripper
	status int
	length int64
}

func (t *rangeTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(t.ctx)
	req.Header.Set("User-Agent", UserAgent)
	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	t.status, t.length = resp.StatusCode, resp.ContentLength

	switch resp.StatusCode {
	case http.StatusPartialContent:
	case http.StatusOK:
		var first, last int64
		if _, err := fmt.Sscanf(req.Header.Get("Range"), "bytes=%d-%d", &first, &last); err == nil && first > 0 {
			if _, err := io.CopyN(io.Discard, resp.Body, first); err != nil {
				resp.Body.Close()
				if err == io.EOF {
					resp.Body = http.NoBody
					return resp, nil
				}
				return nil, errors.Wrapf(err, "skip %d bytes of %s", first, req.URL)
			}
		}
	case http.StatusRequestedRangeNotSatisfiable:
		_, _ = io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		resp.Body = http.NoBody
	case http.StatusNotFound:
		resp.Body.Close()
		return nil, errors.Wrapf(ErrNotFound, "%s", req.URL)
	default:
		resp.Body.Close()
		return nil, errors.Errorf("%s: unexpected status %s", req.URL, resp.Status)
	}
	return resp, nil
}

func newHTTP(base, accessKey, secretKey string) (Backend, error) {
	return &httpStore{base: strings.TrimRight(base, "/"), transport: http.DefaultTransport}, nil
}

func init() {
	Register("http", newHTTP)
}
