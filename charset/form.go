package charset

import (
	"unicode/utf16"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/wippyai/textcore"
)

// MaxFormUnits bounds Form.MaxUnits for every form usable with EncodeIterator.
const MaxFormUnits = 8

// Unit is the storage type of one code unit.
type Unit interface {
	~uint8 | ~uint16 | ~uint32
}

// Form is a fixed encoding of characters as code units of type U.
type Form[U Unit] interface {
	// Name returns the encoding name.
	Name() string

	// MaxUnits returns the maximum number of units per character.
	MaxUnits() int

	// Decode decodes the character starting at src[0].
	// It returns the character and the number of units it occupies; n is
	// at least 1 when src is not empty. Malformed or truncated input
	// yields textcore.ReplacementChar with ok == false.
	Decode(src []U) (c textcore.Char, n int, ok bool)

	// Encode writes c into dst, which holds at least MaxUnits units.
	// A character the form cannot represent is written as a substitute
	// and reported with ok == false.
	Encode(dst []U, c textcore.Char) (n int, ok bool)
}

var (
	// UTF8 is the UTF-8 form.
	UTF8 Form[byte] = utf8Form{}

	// UTF16 is the UTF-16 form in native unit order.
	UTF16 Form[uint16] = utf16Form{}

	// UTF32 is the UTF-32 form; every 32-bit value passes through.
	UTF32 Form[uint32] = utf32Form{name: "UTF-32"}

	// WChar is the platform wide-character form.
	WChar Form[uint32] = utf32Form{name: "WCHAR_T"}
)

type utf8Form struct{}

func (utf8Form) Name() string  { return "UTF-8" }
func (utf8Form) MaxUnits() int { return utf8.UTFMax }

func (utf8Form) Decode(src []byte) (textcore.Char, int, bool) {
	if len(src) == 0 {
		return textcore.ReplacementChar, 0, false
	}
	if src[0] < utf8.RuneSelf {
		return textcore.Char(src[0]), 1, true
	}
	if !utf8.FullRune(src) {
		// valid prefix cut short by the end of input
		return textcore.ReplacementChar, len(src), false
	}
	r, n := utf8.DecodeRune(src)
	if r == utf8.RuneError && n == 1 {
		return textcore.ReplacementChar, 1, false
	}
	return textcore.Char(r), n, true
}

func (utf8Form) Encode(dst []byte, c textcore.Char) (int, bool) {
	if !c.Valid() {
		return utf8.EncodeRune(dst, utf8.RuneError), false
	}
	return utf8.EncodeRune(dst, rune(c)), true
}

type utf16Form struct{}

func (utf16Form) Name() string  { return "UTF-16" }
func (utf16Form) MaxUnits() int { return 2 }

func (utf16Form) Decode(src []uint16) (textcore.Char, int, bool) {
	if len(src) == 0 {
		return textcore.ReplacementChar, 0, false
	}
	u := src[0]
	switch {
	case u < 0xD800 || u > 0xDFFF:
		return textcore.Char(u), 1, true
	case u <= 0xDBFF && len(src) > 1:
		r := utf16.DecodeRune(rune(u), rune(src[1]))
		if r != utf8.RuneError {
			return textcore.Char(r), 2, true
		}
	}
	return textcore.ReplacementChar, 1, false
}

func (utf16Form) Encode(dst []uint16, c textcore.Char) (int, bool) {
	if !c.Valid() {
		dst[0] = uint16(textcore.ReplacementChar)
		return 1, false
	}
	if c < 0x10000 {
		dst[0] = uint16(c)
		return 1, true
	}
	r1, r2 := utf16.EncodeRune(rune(c))
	dst[0], dst[1] = uint16(r1), uint16(r2)
	return 2, true
}

type utf32Form struct {
	name string
}

func (f utf32Form) Name() string  { return f.name }
func (utf32Form) MaxUnits() int { return 1 }

func (utf32Form) Decode(src []uint32) (textcore.Char, int, bool) {
	if len(src) == 0 {
		return textcore.ReplacementChar, 0, false
	}
	return textcore.Char(src[0]), 1, true
}

func (utf32Form) Encode(dst []uint32, c textcore.Char) (int, bool) {
	dst[0] = uint32(c)
	return 1, true
}

// SingleByte returns the form of a legacy single-byte charmap.
func SingleByte(cm *charmap.Charmap) Form[byte] {
	return singleByteForm{cm: cm}
}

type singleByteForm struct {
	cm *charmap.Charmap
}

func (f singleByteForm) Name() string { return f.cm.String() }
func (singleByteForm) MaxUnits() int  { return 1 }

func (f singleByteForm) Decode(src []byte) (textcore.Char, int, bool) {
	if len(src) == 0 {
		return textcore.ReplacementChar, 0, false
	}
	r := f.cm.DecodeByte(src[0])
	return textcore.Char(r), 1, r != utf8.RuneError
}

func (f singleByteForm) Encode(dst []byte, c textcore.Char) (int, bool) {
	if c.Valid() {
		if b, ok := f.cm.EncodeRune(rune(c)); ok {
			dst[0] = b
			return 1, true
		}
	}
	dst[0] = byte(textcore.QuestionMark)
	return 1, false
}
