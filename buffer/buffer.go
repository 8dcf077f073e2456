package buffer

import (
	"io"
	"iter"

	"github.com/wippyai/textcore"
	"github.com/wippyai/textcore/errors"
)

// chunk is one fixed-capacity segment; 0 < used <= len(data) once linked.
type chunk struct {
	data []textcore.Char
	used int
}

func (c *chunk) full() bool {
	return c.used == len(c.data)
}

// Buffer is an append-only sequence of decoded characters stored in chunks.
type Buffer struct {
	chunks   []*chunk
	capacity int

	// characters in every chunk except the last one
	finished int

	// read cursor, independent of the append position
	rchunk int
	roff   int
}

// Option configures a Buffer.
type Option func(*Buffer)

// WithChunkCapacity sets the number of characters per chunk.
// Non-positive values select textcore.DefaultChunkCapacity.
func WithChunkCapacity(n int) Option {
	return func(b *Buffer) {
		if n > 0 {
			b.capacity = n
		}
	}
}

// New creates an empty buffer.
func New(opts ...Option) *Buffer {
	b := &Buffer{capacity: textcore.DefaultChunkCapacity}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// ChunkCapacity returns the capacity of every chunk.
func (b *Buffer) ChunkCapacity() int {
	return b.capacity
}

// Chunks returns the number of allocated chunks.
func (b *Buffer) Chunks() int {
	return len(b.chunks)
}

// Len returns the number of characters appended so far.
func (b *Buffer) Len() int {
	if len(b.chunks) == 0 {
		return 0
	}
	return b.finished + b.chunks[len(b.chunks)-1].used
}

// Append adds c at the end, linking a new chunk when the last one is full.
func (b *Buffer) Append(c textcore.Char) {
	var last *chunk
	if n := len(b.chunks); n > 0 {
		last = b.chunks[n-1]
	}
	if last == nil || last.full() {
		if last != nil {
			b.finished += last.used
		}
		last = getChunk(b.capacity)
		b.chunks = append(b.chunks, last)
	}
	last.data[last.used] = c
	last.used++
}

// AppendChars appends every character of cs in order.
func (b *Buffer) AppendChars(cs ...textcore.Char) {
	for len(cs) > 0 {
		var last *chunk
		if n := len(b.chunks); n > 0 {
			last = b.chunks[n-1]
		}
		if last == nil || last.full() {
			b.Append(cs[0])
			cs = cs[1:]
			continue
		}
		n := copy(last.data[last.used:], cs)
		last.used += n
		cs = cs[n:]
	}
}

// Reset drops every character and releases chunk storage.
// Iterators obtained before Reset must not be used afterwards.
func (b *Buffer) Reset() {
	for i, c := range b.chunks {
		putChunk(c)
		b.chunks[i] = nil
	}
	b.chunks = b.chunks[:0]
	b.finished = 0
	b.rchunk, b.roff = 0, 0
}

// Begin returns an iterator at the first character.
// On an empty buffer Begin equals End.
func (b *Buffer) Begin() Iterator {
	return Iterator{b: b}
}

// End returns the past-the-end iterator. It sits on the next free slot,
// so after further appends it addresses the first appended character.
func (b *Buffer) End() Iterator {
	n := len(b.chunks)
	if n > 0 && !b.chunks[n-1].full() {
		return Iterator{b: b, chunk: n - 1, off: b.chunks[n-1].used}
	}
	return Iterator{b: b, chunk: n}
}

// At returns an iterator at absolute offset n, with n == Len() giving End.
func (b *Buffer) At(n int) (Iterator, error) {
	if n < 0 || n > b.Len() {
		return b.End(), errors.OutOfBounds(errors.PhaseBuffer, []string{"at"}, n, b.Len())
	}
	it := b.Begin()
	it.Seek(n)
	return it, nil
}

// Chars returns a cursor over the whole buffer.
func (b *Buffer) Chars() textcore.Chars {
	it := b.Begin()
	return &it
}

// All yields every character from first to last.
func (b *Buffer) All() iter.Seq[textcore.Char] {
	return func(yield func(textcore.Char) bool) {
		for it := b.Begin(); !it.Done(); it.Next() {
			if !yield(it.Value()) {
				return
			}
		}
	}
}

// Backward yields every character from last to first.
func (b *Buffer) Backward() iter.Seq[textcore.Char] {
	return func(yield func(textcore.Char) bool) {
		it := b.End()
		for it.Prev() {
			if !yield(it.Value()) {
				return
			}
		}
	}
}

// Slice copies the buffer into a new contiguous slice.
func (b *Buffer) Slice() []textcore.Char {
	out := make([]textcore.Char, 0, b.Len())
	for _, c := range b.chunks {
		out = append(out, c.data[:c.used]...)
	}
	return out
}

// ReadChar returns the next character after the read cursor.
// It returns io.EOF once the cursor has caught up with the appended data;
// a later Append makes more characters available.
func (b *Buffer) ReadChar() (textcore.Char, error) {
	for b.rchunk < len(b.chunks) {
		c := b.chunks[b.rchunk]
		if b.roff < c.used {
			ch := c.data[b.roff]
			b.roff++
			return ch, nil
		}
		if !c.full() {
			break
		}
		b.rchunk++
		b.roff = 0
	}
	return 0, io.EOF
}

// Read copies unread characters into p and advances the read cursor.
func (b *Buffer) Read(p []textcore.Char) (int, error) {
	n := 0
	for n < len(p) && b.rchunk < len(b.chunks) {
		c := b.chunks[b.rchunk]
		if b.roff < c.used {
			k := copy(p[n:], c.data[b.roff:c.used])
			b.roff += k
			n += k
			continue
		}
		if !c.full() {
			break
		}
		b.rchunk++
		b.roff = 0
	}
	if n == 0 && len(p) > 0 {
		return 0, io.EOF
	}
	return n, nil
}

// UnreadChar moves the read cursor back by one character.
func (b *Buffer) UnreadChar() error {
	if b.roff > 0 {
		b.roff--
		return nil
	}
	if b.rchunk == 0 {
		return errors.OutOfBounds(errors.PhaseBuffer, []string{"unread"}, -1, b.Len())
	}
	b.rchunk--
	b.roff = b.chunks[b.rchunk].used - 1
	return nil
}

// Unread returns the number of characters the read cursor has not reached.
func (b *Buffer) Unread() int {
	return b.Len() - b.readPos()
}

// Rewind moves the read cursor back to the first character.
func (b *Buffer) Rewind() {
	b.rchunk, b.roff = 0, 0
}

func (b *Buffer) readPos() int {
	return b.rchunk*b.capacity + b.roff
}
