package encoder

import (
	"go.uber.org/zap"

	"github.com/wippyai/textcore"
	"github.com/wippyai/textcore/charset"
	"github.com/wippyai/textcore/locale"
)

const (
	// maxWideUnitsPerChar is the most wide units one character occupies:
	// two with 16-bit wide characters.
	maxWideUnitsPerChar = 2

	outBufferSize = maxWideUnitsPerChar * textcore.MBLenMax * 2
)

// Stats counts lossy conversions performed by one iterator.
type Stats struct {
	// Replaced characters were encoded as U+FFFD.
	Replaced int
	// Substituted characters were encoded as '?'.
	Substituted int
	// Dropped characters produced no bytes at all.
	Dropped int
}

// Lossy reports whether any character was not encoded exactly.
func (s Stats) Lossy() bool {
	return s.Replaced+s.Substituted+s.Dropped > 0
}

// encodeState exists while an iterator has bytes to yield.
// Invariant: 0 <= pos <= avail <= len(out).
type encodeState struct {
	state     locale.State
	out       [outBufferSize]byte
	avail     int
	pos       int
	unshifted bool
}

// Iterator yields the encoded bytes one at a time.
//
// An iterator is Uninitialized until first used, Filled while it holds
// bytes, and Exhausted once the source and the pending bytes are spent.
type Iterator struct {
	codec locale.Codec
	src   charset.Wide
	st    *encodeState
	stats Stats
	log   *zap.Logger
	end   bool
}

// materialize performs the deferred first fill.
func (it *Iterator) materialize() {
	if it.end || it.st != nil || it.src.Done() {
		return
	}
	it.fill()
}

func (it *Iterator) exhausted() bool {
	if it.end {
		return true
	}
	it.materialize()
	return it.st == nil
}

// fill converts source characters until at least one byte is available.
// It returns false once the source is exhausted and no bytes remain.
func (it *Iterator) fill() bool {
	if it.st == nil {
		it.st = &encodeState{state: it.codec.NewState()}
	}
	st := it.st
	st.avail, st.pos = 0, 0

	for !it.src.Done() {
		var units [maxWideUnitsPerChar]uint32
		n := 0
		for !it.src.Done() {
			last := it.src.IsEndOfCharacter()
			if n < len(units) {
				units[n] = it.src.Code()
				n++
			}
			it.src.Next()
			if last {
				break
			}
		}

		st.avail = it.encodeChar(units[:n])
		if st.avail > 0 {
			return true
		}
	}

	if !st.unshifted {
		st.unshifted = true
		if res, n := it.codec.Unshift(st.state, st.out[:]); res == locale.OK && n > 0 {
			st.avail = n
			return true
		}
	}
	it.st = nil
	return false
}

// encodeChar runs the three-step fallback for one character.
func (it *Iterator) encodeChar(units []uint32) int {
	out := it.st.out[:]
	state := it.st.state

	if n, ok := callCodecOut(it.codec, state, units, out); ok {
		return n
	}
	if n, ok := callCodecOut(it.codec, state, []uint32{uint32(textcore.ReplacementChar)}, out); ok {
		it.stats.Replaced++
		return n
	}
	n, _ := callCodecOut(it.codec, state, []uint32{uint32(textcore.QuestionMark)}, out)
	if n > 0 {
		it.stats.Substituted++
		return n
	}
	it.stats.Dropped++
	it.log.Debug("character dropped",
		zap.Uint32("char", units[0]),
		zap.String("codec", it.codec.Name()))
	return 0
}

// Done reports whether no bytes remain.
func (it *Iterator) Done() bool {
	return it.exhausted()
}

// Value returns the current byte. It panics on an exhausted iterator.
func (it *Iterator) Value() byte {
	if it.exhausted() {
		panic("encoder: Value called on exhausted iterator")
	}
	return it.st.out[it.st.pos]
}

// Next advances by one byte, converting the next character when the
// current one is drained. It is a no-op on an exhausted iterator.
func (it *Iterator) Next() {
	if it.exhausted() {
		return
	}
	it.st.pos++
	if it.st.pos >= it.st.avail {
		it.fill()
	}
}

// remaining returns the bytes of the current character not yet yielded.
func (it *Iterator) remaining() int {
	if it.st == nil {
		return 0
	}
	return it.st.avail - it.st.pos
}

// Equal reports whether both iterators are at the same position: the
// same source position with the same number of pending bytes. Any
// exhausted iterator equals End.
func (it *Iterator) Equal(other *Iterator) bool {
	if it.end || other.end {
		return it.exhausted() && other.exhausted()
	}
	it.materialize()
	other.materialize()
	return it.src.Pos() == other.src.Pos() &&
		it.src.Remaining() == other.src.Remaining() &&
		it.remaining() == other.remaining()
}

// Clone returns an independent iterator at the same position. Codec
// state and pending bytes are deep-copied.
func (it *Iterator) Clone() *Iterator {
	cp := *it
	if it.end {
		return &cp
	}
	cp.src = it.src.Clone()
	if it.st != nil {
		st := *it.st
		st.state = it.st.state.Clone()
		cp.st = &st
	}
	return &cp
}

// Stats returns the lossy conversions performed so far.
func (it *Iterator) Stats() Stats {
	return it.stats
}
