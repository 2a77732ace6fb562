package scanner

// Buffer is a bounded byte accumulator. Appends beyond the capacity are
// refused; the caller decides how to report that.
type Buffer struct {
	data []byte
	max  int
}

// NewBuffer returns an empty buffer holding at most max bytes.
func NewBuffer(max int) *Buffer {
	return &Buffer{data: make([]byte, 0, max), max: max}
}

// Add appends c and reports whether it fit.
func (b *Buffer) Add(c byte) bool {
	if len(b.data) >= b.max {
		return false
	}
	b.data = append(b.data, c)
	return true
}

// Append appends as much of p as fits and returns the number of bytes
// that were refused.
func (b *Buffer) Append(p []byte) int {
	room := b.max - len(b.data)
	if room >= len(p) {
		b.data = append(b.data, p...)
		return 0
	}
	b.data = append(b.data, p[:room]...)
	return len(p) - room
}

func (b *Buffer) Len() int       { return len(b.data) }
func (b *Buffer) Cap() int       { return b.max }
func (b *Buffer) Bytes() []byte  { return b.data }
func (b *Buffer) String() string { return string(b.data) }
func (b *Buffer) Reset()         { b.data = b.data[:0] }
