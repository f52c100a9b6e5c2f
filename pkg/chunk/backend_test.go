// pkg/chunk/backend_test.go

package chunk

import (
	"context"
	"math/rand"
	"sync"

	"AveView/pkg/object"
)

// fakeBackend serves data from memory and counts the calls it gets.
type fakeBackend struct {
	sync.Mutex
	data      []byte
	infoCalls int
	reads     map[int64]int
	infoErr   error
	readErr   error
	padding   int           // extra bytes appended to every payload
	gate      chan struct{} // when set, reads block until it is closed
	started   chan int64    // when set, receives the offset of every read
}

func newFakeBackend(size int) *fakeBackend {
	data := make([]byte, size)
	rand.New(rand.NewSource(int64(size))).Read(data)
	return &fakeBackend{data: data, reads: make(map[int64]int)}
}

func (f *fakeBackend) String() string { return "fake://" }

func (f *fakeBackend) Info(ctx context.Context, path string) (object.FileInfo, error) {
	f.Lock()
	defer f.Unlock()
	f.infoCalls++
	if f.infoErr != nil {
		return object.FileInfo{}, f.infoErr
	}
	return object.FileInfo{Size: int64(len(f.data)), HumanSize: "fake"}, nil
}

func (f *fakeBackend) ReadRange(ctx context.Context, path string, chunkSize int, offset int64) ([]byte, error) {
	f.Lock()
	f.reads[offset]++
	gate, started, err, padding := f.gate, f.started, f.readErr, f.padding
	f.Unlock()

	if started != nil {
		started <- offset
	}
	if gate != nil {
		<-gate
	}
	if err != nil {
		return nil, err
	}
	end := min(offset+int64(chunkSize), int64(len(f.data)))
	out := make([]byte, end-offset, int(end-offset)+padding)
	copy(out, f.data[offset:end])
	return append(out, make([]byte, padding)...), nil
}

func (f *fakeBackend) totalReads() int {
	f.Lock()
	defer f.Unlock()
	var n int
	for _, c := range f.reads {
		n += c
	}
	return n
}

func (f *fakeBackend) readsAt(offset int64) int {
	f.Lock()
	defer f.Unlock()
	return f.reads[offset]
}

func (f *fakeBackend) set(fn func(f *fakeBackend)) {
	f.Lock()
	defer f.Unlock()
	fn(f)
}
