// pkg/chunk/page.go

package chunk

// Page is one loaded chunk. Data is shared with the cache and must not be modified.
type Page struct {
	Index uint64
	Data  []byte
}

// NewPage create a new page.
func NewPage(index uint64, data []byte) *Page {
	if data == nil {
		data = []byte{}
	}
	return &Page{Index: index, Data: data}
}

func (p *Page) Len() int {
	return len(p.Data)
}

// Slice returns off..off+n of the page, cut short at the end of the data.
func (p *Page) Slice(off, n int64) []byte {
	if off >= int64(len(p.Data)) || n <= 0 {
		return nil
	}
	end := off + n
	if end > int64(len(p.Data)) {
		end = int64(len(p.Data))
	}
	return p.Data[off:end]
}
