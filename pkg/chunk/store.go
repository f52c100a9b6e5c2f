// pkg/chunk/store.go

package chunk

import (
	"context"
	"sync"
	"time"

	"AveView/pkg/object"
	"AveView/pkg/utils"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var logger = utils.GetLogger("aveview")

// Stats is a snapshot of the counters of one Store.
type Stats struct {
	Cached       int
	InFlight     int
	UsedMemory   int64
	Hits         uint64
	Misses       uint64
	Joins        uint64
	Evictions    uint64
	Errors       uint64
	FetchedBytes uint64
}

// Store caches the chunks of one file. All fields below mu are guarded by it,
// so a chunk index moves from inflight to pages in a single critical section.
type Store struct {
	id      string
	path    string
	backend object.Backend
	conf    Config

	mu       sync.Mutex
	ready    bool
	size     int64
	strategy Strategy
	gen      uint64 // bumped by Dispose, fetches from older generations are dropped
	pages    memCache
	inflight map[uint64]*request
	stats    Stats
}

// NewStore creates a store for path. Initialize must succeed before it is used.
func NewStore(backend object.Backend, path string, conf *Config) *Store {
	s := &Store{
		id:       uuid.New().String(),
		path:     path,
		backend:  backend,
		strategy: DefaultStrategy,
		inflight: make(map[uint64]*request),
	}
	if conf != nil {
		s.conf = *conf
	}
	return s
}

func (s *Store) ID() string   { return s.id }
func (s *Store) Path() string { return s.path }

// FileSize is the size seen by Initialize, later changes of the file are ignored.
func (s *Store) FileSize() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.size
}

// Ready reports whether Initialize has succeeded.
func (s *Store) Ready() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ready
}

func (s *Store) Strategy() Strategy {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.strategy
}

// Initialize asks the backend for the file size once and picks the strategy.
// On failure nothing is changed and the store stays unusable.
func (s *Store) Initialize(ctx context.Context) error {
	fi, err := s.backend.Info(ctx, s.path)
	if err != nil {
		return &FileInfoError{Path: s.path, Err: err}
	}
	if fi.Size < 0 {
		return &FileInfoError{Path: s.path, Err: errors.Errorf("negative size %d", fi.Size)}
	}
	strategy := SelectStrategy(fi.Size)
	if s.conf.Strategy != nil {
		if !s.conf.Strategy.valid() {
			return errors.Errorf("invalid strategy: %+v", *s.conf.Strategy)
		}
		strategy = *s.conf.Strategy
	}

	s.mu.Lock()
	s.size = fi.Size
	s.strategy = strategy
	s.pages = newMemCache(s.conf.Eviction, strategy.MaxCachedChunks)
	s.inflight = make(map[uint64]*request)
	s.gen++
	s.ready = true
	s.mu.Unlock()

	logger.Infof("%s: %s from %s, %s, %s eviction", s.path, fi.HumanSize, s.backend, strategy, s.conf.Eviction)
	return nil
}

// LoadChunk returns chunk index, fetching it from the backend at most once
// while a load for the same index is running. The fetch is not tied to ctx:
// a caller whose ctx ends stops waiting, the other waiters still get the result.
func (s *Store) LoadChunk(ctx context.Context, index uint64) (*Page, error) {
	s.mu.Lock()
	if !s.ready {
		s.mu.Unlock()
		return nil, ErrNotInitialized
	}
	if p, ok := s.pages.get(index); ok {
		s.stats.Hits++
		s.mu.Unlock()
		cacheHits.Inc()
		return p, nil
	}
	if r, ok := s.inflight[index]; ok {
		r.waiters++
		s.stats.Joins++
		s.mu.Unlock()
		cacheJoins.Inc()
		return r.wait(ctx)
	}
	r := newRequest()
	s.inflight[index] = r
	s.stats.Misses++
	gen, strategy, size := s.gen, s.strategy, s.size
	s.mu.Unlock()
	cacheMisses.Inc()

	go s.fetch(context.WithoutCancel(ctx), gen, index, r, strategy.ChunkSize, size)
	return r.wait(ctx)
}

func (s *Store) fetch(ctx context.Context, gen, index uint64, r *request, chunkSize int, size int64) {
	p, err := s.doLoadChunk(ctx, index, chunkSize, size)

	s.mu.Lock()
	if err != nil {
		s.stats.Errors++
	} else {
		s.stats.FetchedBytes += uint64(p.Len())
	}
	if s.gen == gen && s.inflight[index] == r {
		delete(s.inflight, index)
		if err == nil {
			evicted := s.pages.add(index, p)
			s.stats.Evictions += uint64(len(evicted))
			cacheEvicts.Add(float64(len(evicted)))
			for _, idx := range evicted {
				logger.Debugf("remove chunk %d of %s from cache", idx, s.path)
			}
		}
		if r.waiters > 1 {
			logger.Debugf("chunk %d of %s shared by %d waiters", index, s.path, r.waiters)
		}
	} else {
		logger.Debugf("drop chunk %d of %s loaded after dispose", index, s.path)
	}
	s.mu.Unlock()

	r.finish(p, err)
}

func (s *Store) doLoadChunk(ctx context.Context, index uint64, chunkSize int, size int64) (*Page, error) {
	if size <= 0 || index > uint64(size-1)/uint64(chunkSize) {
		return NewPage(index, nil), nil
	}
	offset := int64(index) * int64(chunkSize)

	start := time.Now()
	data, err := s.backend.ReadRange(ctx, s.path, chunkSize, offset)
	fetchDurations.Observe(time.Since(start).Seconds())
	if err != nil {
		fetchErrors.Inc()
		logger.Warnf("load chunk %d of %s: %s", index, s.path, err)
		return nil, &ChunkReadError{Path: s.path, Index: index, Offset: offset, Err: err}
	}
	fetchBytes.Add(float64(len(data)))

	if len(data) > chunkSize {
		fetchErrors.Inc()
		return nil, &ChunkReadError{Path: s.path, Index: index, Offset: offset,
			Err: errors.Wrapf(ErrPayloadSize, "got %d bytes, asked for %d", len(data), chunkSize)}
	}
	expected := min(int64(chunkSize), size-offset)
	switch {
	case int64(len(data)) > expected:
		// the file grew, keep the size seen by Initialize
		logger.Debugf("chunk %d of %s: truncate %d bytes to %d", index, s.path, len(data), expected)
		data = data[:expected]
	case int64(len(data)) < expected:
		logger.Warnf("chunk %d of %s: got %d bytes, expected %d, file may be truncated", index, s.path, len(data), expected)
	}
	logger.Debugf("load chunk %d of %s (%d bytes) in %s", index, s.path, len(data), time.Since(start))
	return NewPage(index, data), nil
}

// Dispose forgets all cached chunks and in-flight loads. Loads already issued
// are not cancelled, their results are discarded. The store stays initialized.
func (s *Store) Dispose() {
	s.mu.Lock()
	if s.pages != nil {
		s.pages.purge()
	}
	s.inflight = make(map[uint64]*request)
	s.gen++
	s.mu.Unlock()
	logger.Debugf("store %s for %s disposed", s.id, s.path)
}

func (s *Store) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.stats
	st.InFlight = len(s.inflight)
	if s.pages != nil {
		st.Cached = s.pages.len()
		st.UsedMemory = s.pages.usedMemory()
	}
	return st
}
