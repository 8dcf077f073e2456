package charset

import "github.com/wippyai/textcore"

// DecodeIterator presents a slice of code units as a sequence of characters.
type DecodeIterator[U Unit] struct {
	form Form[U]
	src  []U
	pos  int

	// decoded character at pos; width == 0 until decoded
	c     textcore.Char
	width int
	ok    bool
}

var _ textcore.Chars = (*DecodeIterator[byte])(nil)

// NewDecodeIterator returns an iterator over src, which spans the whole
// range from begin to end.
func NewDecodeIterator[U Unit](form Form[U], src []U) *DecodeIterator[U] {
	return &DecodeIterator[U]{form: form, src: src}
}

func (it *DecodeIterator[U]) decode() {
	if it.width != 0 || it.pos >= len(it.src) {
		return
	}
	it.c, it.width, it.ok = it.form.Decode(it.src[it.pos:])
	if it.width < 1 {
		it.width = 1
	}
}

// Done reports whether every unit has been consumed.
func (it *DecodeIterator[U]) Done() bool {
	return it.pos >= len(it.src)
}

// Value returns the character at the cursor, consuming as many units as
// the form requires. Malformed or truncated input yields
// textcore.ReplacementChar.
func (it *DecodeIterator[U]) Value() textcore.Char {
	if it.Done() {
		return textcore.ReplacementChar
	}
	it.decode()
	return it.c
}

// Invalid reports whether the character at the cursor was malformed.
func (it *DecodeIterator[U]) Invalid() bool {
	if it.Done() {
		return false
	}
	it.decode()
	return !it.ok
}

// Width returns the number of units of the character at the cursor.
func (it *DecodeIterator[U]) Width() int {
	if it.Done() {
		return 0
	}
	it.decode()
	return it.width
}

// Next moves past the character at the cursor.
func (it *DecodeIterator[U]) Next() {
	if it.Done() {
		return
	}
	it.decode()
	it.pos += it.width
	it.width = 0
}

// Pos returns the unit offset of the cursor.
func (it *DecodeIterator[U]) Pos() int {
	return it.pos
}

// Equal reports whether both iterators sit at the same unit offset.
func (it *DecodeIterator[U]) Equal(other *DecodeIterator[U]) bool {
	return it.pos == other.pos
}

// Clone returns an independent copy.
func (it *DecodeIterator[U]) Clone() textcore.Chars {
	cp := *it
	return &cp
}

// CodeUnits walks a slice of code units one unit at a time while tracking
// where each character ends.
type CodeUnits[U Unit] struct {
	form Form[U]
	src  []U
	pos  int

	// one past the last unit of the character containing pos
	charEnd int
}

var _ Wide = (*CodeUnits[uint32])(nil)

// NewCodeUnits returns a unit cursor over src.
func NewCodeUnits[U Unit](form Form[U], src []U) *CodeUnits[U] {
	return &CodeUnits[U]{form: form, src: src}
}

func (cu *CodeUnits[U]) boundary() {
	if cu.pos < cu.charEnd || cu.pos >= len(cu.src) {
		return
	}
	_, n, _ := cu.form.Decode(cu.src[cu.pos:])
	if n < 1 {
		n = 1
	}
	cu.charEnd = cu.pos + n
}

// Done reports whether every unit has been consumed.
func (cu *CodeUnits[U]) Done() bool {
	return cu.pos >= len(cu.src)
}

// Unit returns the unit at the cursor.
func (cu *CodeUnits[U]) Unit() U {
	return cu.src[cu.pos]
}

// Code returns the unit at the cursor widened to 32 bits.
func (cu *CodeUnits[U]) Code() uint32 {
	return uint32(cu.src[cu.pos])
}

// IsEndOfCharacter reports whether the cursor is on the last unit of the
// character it belongs to.
func (cu *CodeUnits[U]) IsEndOfCharacter() bool {
	if cu.Done() {
		return false
	}
	cu.boundary()
	return cu.pos == cu.charEnd-1
}

// Next advances by one unit.
func (cu *CodeUnits[U]) Next() {
	if cu.Done() {
		return
	}
	cu.boundary()
	cu.pos++
}

// Pos returns the unit offset of the cursor.
func (cu *CodeUnits[U]) Pos() int {
	return cu.pos
}

// Remaining is always zero: units are read in place, not buffered.
func (cu *CodeUnits[U]) Remaining() int {
	return 0
}

// Clone returns an independent copy.
func (cu *CodeUnits[U]) Clone() Wide {
	cp := *cu
	return &cp
}
