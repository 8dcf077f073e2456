package charset

import "github.com/wippyai/textcore"

// Wide is a unit-level cursor over wide code units, as consumed by the
// locale encoder. It reports character boundaries so a consumer can copy
// one whole character without decoding it.
type Wide interface {
	Done() bool
	Code() uint32
	IsEndOfCharacter() bool
	Next()

	// Pos and Remaining together identify a position: the source
	// position and the units of the current character not yet emitted.
	Pos() int
	Remaining() int

	Clone() Wide
}

// EncodeIterator presents a sequence of characters as code units of form U.
type EncodeIterator[U Unit] struct {
	form Form[U]
	src  textcore.Chars

	// units of the current character; buf[off:n] are still to be emitted
	buf [MaxFormUnits]U
	n   int
	off int

	substituted int
}

var _ Wide = (*EncodeIterator[uint32])(nil)

// NewEncodeIterator returns an iterator over the units encoding src.
// The iterator takes ownership of src.
func NewEncodeIterator[U Unit](form Form[U], src textcore.Chars) *EncodeIterator[U] {
	return &EncodeIterator[U]{form: form, src: src}
}

// WideChars returns the Wide view of src.
func WideChars(src textcore.Chars) Wide {
	return NewEncodeIterator(WChar, src)
}

// WideUnits returns a Wide cursor over raw wide units.
func WideUnits(units []uint32) Wide {
	return NewCodeUnits(WChar, units)
}

// UTF16Units returns a Wide cursor over UTF-16 units, for platforms whose
// wide characters are 16-bit.
func UTF16Units(units []uint16) Wide {
	return NewCodeUnits(UTF16, units)
}

// fill loads the next character once the lookahead is drained.
func (it *EncodeIterator[U]) fill() {
	if it.off < it.n {
		return
	}
	it.n, it.off = 0, 0
	if it.src.Done() {
		return
	}
	n, ok := it.form.Encode(it.buf[:], it.src.Value())
	if !ok {
		it.substituted++
	}
	it.src.Next()
	it.n = n
}

// Done reports whether every unit has been emitted.
func (it *EncodeIterator[U]) Done() bool {
	it.fill()
	return it.off >= it.n
}

// Unit returns the unit at the cursor.
func (it *EncodeIterator[U]) Unit() U {
	it.fill()
	return it.buf[it.off]
}

// Code returns the unit at the cursor widened to 32 bits.
func (it *EncodeIterator[U]) Code() uint32 {
	return uint32(it.Unit())
}

// IsEndOfCharacter reports whether the cursor is on the last unit of the
// current character.
func (it *EncodeIterator[U]) IsEndOfCharacter() bool {
	it.fill()
	return it.n > 0 && it.off == it.n-1
}

// Next advances by one unit.
func (it *EncodeIterator[U]) Next() {
	it.fill()
	if it.off < it.n {
		it.off++
	}
}

// Pos returns the position of the underlying character source.
func (it *EncodeIterator[U]) Pos() int {
	it.fill()
	return it.src.Pos()
}

// Remaining returns the units of the current character not yet emitted.
func (it *EncodeIterator[U]) Remaining() int {
	it.fill()
	return it.n - it.off
}

// Substituted returns how many characters the form could not represent.
func (it *EncodeIterator[U]) Substituted() int {
	return it.substituted
}

// Equal reports whether both iterators are at the same source position
// with the same number of buffered units left.
func (it *EncodeIterator[U]) Equal(other *EncodeIterator[U]) bool {
	return it.Pos() == other.Pos() && it.Remaining() == other.Remaining()
}

// Clone returns an independent copy; the source cursor is cloned too.
func (it *EncodeIterator[U]) Clone() Wide {
	return it.clone()
}

func (it *EncodeIterator[U]) clone() *EncodeIterator[U] {
	cp := *it
	cp.src = it.src.Clone()
	return &cp
}
