package buffer

import "github.com/wippyai/textcore"

// Iterator is a bidirectional cursor into a Buffer.
//
// Iterators are small values: copying one yields an independent cursor.
// An iterator only moves to the next chunk once the current one is full,
// so a position past the last character stays in the open chunk and
// addresses whatever is appended there next.
type Iterator struct {
	b     *Buffer
	chunk int
	off   int
}

var _ textcore.Chars = (*Iterator)(nil)

// Done reports whether the iterator is past the last character.
func (it *Iterator) Done() bool {
	return it.b == nil || it.chunk >= len(it.b.chunks) || it.off >= it.b.chunks[it.chunk].used
}

// Valid reports whether Value may be called.
func (it *Iterator) Valid() bool {
	return !it.Done()
}

// Value returns the character under the iterator.
// It must not be called on an iterator that is Done.
func (it *Iterator) Value() textcore.Char {
	return it.b.chunks[it.chunk].data[it.off]
}

// Set overwrites the character under the iterator.
func (it *Iterator) Set(c textcore.Char) {
	it.b.chunks[it.chunk].data[it.off] = c
}

// Next advances by one character. It is a no-op at End.
func (it *Iterator) Next() {
	if it.Done() {
		return
	}
	it.off++
	if c := it.b.chunks[it.chunk]; it.off == len(c.data) {
		it.chunk++
		it.off = 0
	}
}

// Prev moves back by one character and reports whether it moved.
// Stepping back from the first slot of a chunk lands on the last used
// slot of the previous chunk.
func (it *Iterator) Prev() bool {
	if it.off > 0 {
		it.off--
		return true
	}
	if it.b == nil || it.chunk == 0 {
		return false
	}
	it.chunk--
	it.off = it.b.chunks[it.chunk].used - 1
	return true
}

// Seek moves by delta characters, forward when positive. The walk is
// linear in the number of chunks crossed. When the target lies outside
// the buffer the iterator stops at Begin or End and Seek returns false.
func (it *Iterator) Seek(delta int) bool {
	if it.b == nil {
		return delta == 0
	}
	chunks := it.b.chunks
	if delta >= 0 {
		for delta > 0 {
			if it.chunk >= len(chunks) {
				return false
			}
			c := chunks[it.chunk]
			remain := c.used - it.off
			if delta < remain {
				it.off += delta
				return true
			}
			delta -= remain
			if !c.full() {
				it.off = c.used
				return delta == 0
			}
			it.chunk++
			it.off = 0
		}
		return true
	}

	delta = -delta
	for delta > 0 {
		if delta <= it.off {
			it.off -= delta
			return true
		}
		delta -= it.off
		if it.chunk == 0 {
			it.off = 0
			return false
		}
		it.chunk--
		it.off = chunks[it.chunk].used
	}
	return true
}

// Pos returns the absolute offset of the iterator; End reports Len.
func (it *Iterator) Pos() int {
	if it.b == nil {
		return 0
	}
	// every chunk before the last is full
	return it.chunk*it.b.capacity + it.off
}

// Equal reports whether both iterators address the same position.
func (it *Iterator) Equal(other *Iterator) bool {
	return it.b == other.b && it.chunk == other.chunk && it.off == other.off
}

// Clone returns an independent copy.
func (it *Iterator) Clone() textcore.Chars {
	cp := *it
	return &cp
}
