// pkg/chunk/range.go

package chunk

import (
	"context"

	"github.com/pkg/errors"
)

// GetRange returns up to length bytes starting at start. A range running past
// the end of the file is cut short without error, backend failures are returned.
// The result never aliases cached chunk data.
func (s *Store) GetRange(ctx context.Context, start, length int64) ([]byte, error) {
	if start < 0 {
		return nil, errors.Wrapf(ErrInvalidOffset, "%d", start)
	}
	if length <= 0 {
		return []byte{}, nil
	}
	s.mu.Lock()
	ready, chunkSize, size := s.ready, int64(s.strategy.ChunkSize), s.size
	s.mu.Unlock()
	if !ready {
		return nil, ErrNotInitialized
	}

	hint := length
	if left := size - start; left < hint {
		hint = max(left, 0)
	}
	result := make([]byte, 0, hint)
	var resultOffset int64
	for resultOffset < length {
		currentPos := start + resultOffset
		index := uint64(currentPos / chunkSize)
		chunkOffset := currentPos % chunkSize

		page, err := s.LoadChunk(ctx, index)
		if err != nil {
			return nil, err
		}
		copyLength := min(int64(page.Len())-chunkOffset, length-resultOffset)
		if copyLength <= 0 {
			break // end of file
		}
		result = append(result, page.Slice(chunkOffset, copyLength)...)
		resultOffset += copyLength
	}
	return result, nil
}
