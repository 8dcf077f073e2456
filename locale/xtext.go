package locale

import (
	"bytes"
	"slices"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

// xtextCodec adapts a golang.org/x/text encoding to the Codec contract.
type xtextCodec struct {
	name     string
	enc      encoding.Encoding
	maxLen   int
	stateful bool

	// shiftOut returns to the initial state for encoders that write
	// nothing at end of input; escape is an ASCII character the encoder
	// writes without leaving its shifted state.
	shiftOut []byte
	escape   rune

	// bytes that legitimately decode to U+FFFD, nil if unencodable
	replacement []byte
}

// NewCodec wraps an x/text encoding. maxLen is the longest byte sequence
// one character can produce, shift sequences included. A stateful codec
// must return to its initial state after encoding any ASCII character,
// as the ISO-2022 family does.
func NewCodec(name string, enc encoding.Encoding, maxLen int, stateful bool) Codec {
	return newXTextCodec(name, enc, maxLen, stateful)
}

func newXTextCodec(name string, enc encoding.Encoding, maxLen int, stateful bool) *xtextCodec {
	c := &xtextCodec{name: name, enc: enc, maxLen: maxLen, stateful: stateful}
	if b, err := enc.NewEncoder().Bytes([]byte(string(utf8.RuneError))); err == nil {
		c.replacement = b
	}
	return c
}

func (c *xtextCodec) Name() string   { return c.name }
func (c *xtextCodec) MaxLength() int { return c.maxLen }

func (c *xtextCodec) NewState() State {
	return &xtextState{
		codec: c,
		enc:   c.enc.NewEncoder(),
		dec:   c.enc.NewDecoder(),
	}
}

// xtextState holds live x/text transformers. Transformers cannot be
// copied, so a stateful encoder records the UTF-8 it was fed since it last
// left the initial state and Clone replays that log into a fresh one.
type xtextState struct {
	codec *xtextCodec
	enc   *encoding.Encoder
	dec   *encoding.Decoder

	log     []byte
	shifted bool
}

func (s *xtextState) Initial() bool {
	return !s.shifted
}

func (s *xtextState) Clone() State {
	cp := s.codec.NewState().(*xtextState)
	cp.shifted = s.shifted
	if len(s.log) > 0 {
		cp.log = slices.Clone(s.log)
		sink := make([]byte, len(cp.log)*2+s.codec.maxLen)
		_, _, _ = cp.enc.Transform(sink, cp.log, false)
	}
	return cp
}

func (s *xtextState) track(r rune, b []byte) {
	c := s.codec
	if !c.stateful {
		return
	}
	switch {
	case c.escape != 0 && r == c.escape:
		if s.shifted {
			s.log = append(s.log, b...)
		}
	case r < utf8.RuneSelf:
		s.log = s.log[:0]
		s.shifted = false
	default:
		s.log = append(s.log, b...)
		s.shifted = true
	}
}

func (c *xtextCodec) Out(st State, src []uint32, dst []byte) (Result, int, int) {
	s := st.(*xtextState)
	var buf [utf8.UTFMax]byte
	nSrc, nDst := 0, 0
	for nSrc < len(src) {
		r, n, res := nextRune(src[nSrc:])
		if res != OK {
			return res, nSrc, nDst
		}
		k := utf8.EncodeRune(buf[:], r)
		nd, ns, err := s.enc.Transform(dst[nDst:], buf[:k], false)
		switch {
		case err == nil && ns == k:
		case err == transform.ErrShortDst, err == transform.ErrShortSrc:
			return Partial, nSrc, nDst
		default:
			return Error, nSrc, nDst
		}
		s.track(r, buf[:k])
		nSrc += n
		nDst += nd
	}
	return OK, nSrc, nDst
}

func (c *xtextCodec) Unshift(st State, dst []byte) (Result, int) {
	s := st.(*xtextState)
	if !s.shifted {
		return OK, 0
	}
	nd, _, err := s.enc.Transform(dst, nil, true)
	if err == transform.ErrShortDst {
		return Partial, 0
	}
	if err != nil {
		return Error, 0
	}
	if nd == 0 && len(c.shiftOut) > 0 {
		if len(dst) < len(c.shiftOut) {
			return Partial, 0
		}
		nd = copy(dst, c.shiftOut)
		s.enc.Reset()
	}
	s.log = s.log[:0]
	s.shifted = false
	return OK, nd
}

// In decodes one character per decoder call so that every U+FFFD can be
// traced to the bytes it stands for. x/text decoders substitute U+FFFD
// for invalid input instead of failing; such a character is reported as
// Error unless its bytes are the codeset's own encoding of U+FFFD.
func (c *xtextCodec) In(st State, src []byte, dst []uint32) (Result, int, int) {
	s := st.(*xtextState)
	var buf [utf8.UTFMax]byte
	nSrc, nDst := 0, 0
	for nSrc < len(src) && nDst < len(dst) {
		var (
			nd, ns int
			err    error
		)
		// the smallest dst that fits the next character holds only it
		for size := 1; size <= len(buf); size++ {
			nd, ns, err = s.dec.Transform(buf[:size], src[nSrc:], false)
			if err != transform.ErrShortDst || nd > 0 || ns > 0 {
				break
			}
		}

		if nd == 0 {
			nSrc += ns
			switch {
			case ns > 0:
				// shift sequence only
				continue
			case err == transform.ErrShortSrc:
				return Partial, nSrc, nDst
			}
			return Error, nSrc, nDst
		}

		r, _ := utf8.DecodeRune(buf[:nd])
		if r == utf8.RuneError && !c.isReplacement(src[nSrc:nSrc+ns]) {
			// leave src[nSrc] on the last rejected byte so that skipping
			// one byte resumes after the whole sequence
			return Error, nSrc + ns - 1, nDst
		}
		dst[nDst] = uint32(r)
		nDst++
		nSrc += ns
	}
	if nSrc < len(src) {
		return Partial, nSrc, nDst
	}
	return OK, nSrc, nDst
}

func (c *xtextCodec) isReplacement(b []byte) bool {
	return len(c.replacement) > 0 && bytes.HasSuffix(b, c.replacement)
}
