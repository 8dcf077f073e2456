package locale

import (
	"unicode/utf16"
	"unicode/utf8"
)

// Result is the outcome of one codec conversion call.
type Result int

const (
	OK Result = iota
	Partial
	Error
)

func (r Result) String() string {
	switch r {
	case OK:
		return "ok"
	case Partial:
		return "partial"
	case Error:
		return "error"
	}
	return "unknown"
}

// State is mutable per-cursor conversion state.
type State interface {
	// Clone returns a deep copy that evolves independently.
	Clone() State

	// Initial reports whether the state is in its initial shift state.
	Initial() bool
}

// Codec converts between wide code units and multibyte bytes.
type Codec interface {
	// Name returns the codeset name.
	Name() string

	// MaxLength returns the maximum number of bytes produced for one
	// wide character.
	MaxLength() int

	// NewState returns a state in the initial shift state.
	NewState() State

	// Out converts wide units in src to bytes in dst.
	Out(st State, src []uint32, dst []byte) (res Result, nSrc, nDst int)

	// Unshift writes the bytes that return st to the initial shift state.
	Unshift(st State, dst []byte) (res Result, nDst int)

	// In converts bytes in src to wide units in dst. On Error src[nSrc]
	// is the last byte of the rejected sequence; skipping one byte
	// resumes after it.
	In(st State, src []byte, dst []uint32) (res Result, nSrc, nDst int)
}

var (
	// ASCII is the codec of the "C" and "POSIX" locales.
	ASCII Codec = asciiCodec{}

	// UTF8 is the UTF-8 codec.
	UTF8 Codec = utf8Codec{}
)

// stateless is the State of codecs without shift states.
type stateless struct{}

func (stateless) Clone() State  { return stateless{} }
func (stateless) Initial() bool { return true }

// nextRune decodes one wide character from src, joining UTF-16 surrogate
// pairs for platforms with 16-bit wide characters.
func nextRune(src []uint32) (rune, int, Result) {
	u := src[0]
	switch {
	case u >= 0xD800 && u <= 0xDBFF:
		if len(src) < 2 {
			return 0, 0, Partial
		}
		if lo := src[1]; lo >= 0xDC00 && lo <= 0xDFFF {
			return utf16.DecodeRune(rune(u), rune(lo)), 2, OK
		}
		return 0, 0, Error
	case u >= 0xDC00 && u <= 0xDFFF, u > utf8.MaxRune:
		return 0, 0, Error
	}
	return rune(u), 1, OK
}

type asciiCodec struct{}

func (asciiCodec) Name() string    { return "ANSI_X3.4-1968" }
func (asciiCodec) MaxLength() int  { return 1 }
func (asciiCodec) NewState() State { return stateless{} }

func (asciiCodec) Out(_ State, src []uint32, dst []byte) (Result, int, int) {
	n := 0
	for n < len(src) {
		if src[n] >= utf8.RuneSelf {
			return Error, n, n
		}
		if n >= len(dst) {
			return Partial, n, n
		}
		dst[n] = byte(src[n])
		n++
	}
	return OK, n, n
}

func (asciiCodec) Unshift(State, []byte) (Result, int) {
	return OK, 0
}

func (asciiCodec) In(_ State, src []byte, dst []uint32) (Result, int, int) {
	n := 0
	for n < len(src) {
		if src[n] >= utf8.RuneSelf {
			return Error, n, n
		}
		if n >= len(dst) {
			return Partial, n, n
		}
		dst[n] = uint32(src[n])
		n++
	}
	return OK, n, n
}

type utf8Codec struct{}

func (utf8Codec) Name() string    { return "UTF-8" }
func (utf8Codec) MaxLength() int  { return utf8.UTFMax }
func (utf8Codec) NewState() State { return stateless{} }

func (utf8Codec) Out(_ State, src []uint32, dst []byte) (Result, int, int) {
	nSrc, nDst := 0, 0
	for nSrc < len(src) {
		r, n, res := nextRune(src[nSrc:])
		if res != OK {
			return res, nSrc, nDst
		}
		if len(dst)-nDst < utf8.RuneLen(r) {
			return Partial, nSrc, nDst
		}
		nDst += utf8.EncodeRune(dst[nDst:], r)
		nSrc += n
	}
	return OK, nSrc, nDst
}

func (utf8Codec) Unshift(State, []byte) (Result, int) {
	return OK, 0
}

func (utf8Codec) In(_ State, src []byte, dst []uint32) (Result, int, int) {
	nSrc, nDst := 0, 0
	for nSrc < len(src) {
		if nDst >= len(dst) {
			return Partial, nSrc, nDst
		}
		if !utf8.FullRune(src[nSrc:]) {
			return Partial, nSrc, nDst
		}
		r, n := utf8.DecodeRune(src[nSrc:])
		if r == utf8.RuneError && n == 1 {
			return Error, nSrc, nDst
		}
		dst[nDst] = uint32(r)
		nSrc += n
		nDst++
	}
	return OK, nSrc, nDst
}
