// Package ustring provides String, a Unicode string stored as decoded
// characters that materializes encoded forms on demand.
//
// Encoded forms are cached until the next mutation. A String is not safe
// for concurrent use when any goroutine mutates it.
package ustring

import (
	"iter"

	"github.com/wippyai/textcore"
	"github.com/wippyai/textcore/buffer"
	"github.com/wippyai/textcore/charset"
	"github.com/wippyai/textcore/encoder"
	"github.com/wippyai/textcore/errors"
	"github.com/wippyai/textcore/locale"
)

// String is a mutable sequence of decoded characters.
type String struct {
	buf     *buffer.Buffer
	invalid int

	utf8    *string
	utf16   []uint16
	utf32   []uint32
	encoded map[encodedKey]encoded
}

type encodedKey struct {
	locale string
	codec  string
}

type encoded struct {
	data  []byte
	stats encoder.Stats
}

// New returns an empty String.
func New(opts ...buffer.Option) *String {
	return &String{buf: buffer.New(opts...)}
}

// FromUnits decodes src in the given form. Malformed sequences are stored
// as textcore.ReplacementChar and counted by Invalid.
func FromUnits[U charset.Unit](form charset.Form[U], src []U, opts ...buffer.Option) *String {
	s := New(opts...)
	s.invalid = charset.DecodeAll(form, src, s.buf)
	return s
}

// FromUTF8 decodes a Go string.
func FromUTF8(str string, opts ...buffer.Option) *String {
	return FromUnits(charset.UTF8, []byte(str), opts...)
}

// FromUTF16 decodes UTF-16 units.
func FromUTF16(units []uint16, opts ...buffer.Option) *String {
	return FromUnits(charset.UTF16, units, opts...)
}

// FromUTF32 stores UTF-32 units as they are.
func FromUTF32(units []uint32, opts ...buffer.Option) *String {
	return FromUnits(charset.UTF32, units, opts...)
}

// FromBytes decodes serialized Unicode text.
func FromBytes(enc charset.Encoding, data []byte, opts ...buffer.Option) (*String, error) {
	s := New(opts...)
	invalid, err := charset.DecodeBytes(enc, data, s.buf)
	if err != nil {
		return nil, err
	}
	s.invalid = invalid
	return s, nil
}

// FromLocale decodes data in the locale's multibyte encoding.
func FromLocale(data []byte, loc locale.Locale, opts ...buffer.Option) (*String, error) {
	s := New(opts...)
	invalid, err := locale.Decode(loc, data, s.buf)
	if err != nil {
		return nil, err
	}
	s.invalid = invalid
	return s, nil
}

// Invalid returns how many malformed sequences were replaced while the
// String was decoded.
func (s *String) Invalid() int {
	return s.invalid
}

// Len returns the number of characters.
func (s *String) Len() int {
	return s.buf.Len()
}

// At returns the character at index i.
func (s *String) At(i int) (textcore.Char, error) {
	if i < 0 || i >= s.buf.Len() {
		return 0, errors.OutOfBounds(errors.PhaseBuffer, []string{"string"}, i, s.buf.Len())
	}
	it, err := s.buf.At(i)
	if err != nil {
		return 0, err
	}
	return it.Value(), nil
}

// Chars returns a cursor at the first character.
func (s *String) Chars() textcore.Chars {
	return s.buf.Chars()
}

// All yields every character in order.
func (s *String) All() iter.Seq[textcore.Char] {
	return s.buf.All()
}

// Append adds characters at the end.
func (s *String) Append(cs ...textcore.Char) {
	s.buf.AppendChars(cs...)
	s.invalidate()
}

// AppendString decodes str as UTF-8 and adds its characters at the end.
func (s *String) AppendString(str string) {
	s.invalid += charset.DecodeAll(charset.UTF8, []byte(str), s.buf)
	s.invalidate()
}

// Clone returns a String with its own storage.
func (s *String) Clone() *String {
	cp := New(buffer.WithChunkCapacity(s.buf.ChunkCapacity()))
	cp.buf.AppendChars(s.buf.Slice()...)
	cp.invalid = s.invalid
	return cp
}

// Equal reports whether both strings hold the same characters.
func (s *String) Equal(other *String) bool {
	if s.Len() != other.Len() {
		return false
	}
	a, b := s.Chars(), other.Chars()
	for ; !a.Done(); a.Next() {
		if a.Value() != b.Value() {
			return false
		}
		b.Next()
	}
	return true
}

func (s *String) invalidate() {
	s.utf8 = nil
	s.utf16 = nil
	s.utf32 = nil
	clear(s.encoded)
}

// String returns the UTF-8 form.
func (s *String) String() string {
	return s.UTF8()
}

// UTF8 returns the UTF-8 form. Values that are not scalar values are
// written as U+FFFD.
func (s *String) UTF8() string {
	if s.utf8 == nil {
		str := string(charset.EncodeAll(charset.UTF8, s.Chars()))
		s.utf8 = &str
	}
	return *s.utf8
}

// UTF16 returns the UTF-16 form. The slice is cached and must not be
// modified.
func (s *String) UTF16() []uint16 {
	if s.utf16 == nil {
		s.utf16 = charset.EncodeAll(charset.UTF16, s.Chars())
	}
	return s.utf16
}

// UTF32 returns the UTF-32 form. The slice is cached and must not be
// modified.
func (s *String) UTF32() []uint32 {
	if s.utf32 == nil {
		s.utf32 = charset.EncodeAll(charset.UTF32, s.Chars())
	}
	return s.utf32
}

// Bytes serializes the string in a Unicode encoding.
func (s *String) Bytes(enc charset.Encoding) ([]byte, error) {
	return charset.EncodeBytes(enc, s.Chars())
}

// Encode returns the string in the locale's multibyte encoding, together
// with the lossy conversions performed. The result is cached per locale
// and must not be modified.
func (s *String) Encode(loc locale.Locale, opts ...encoder.Option) ([]byte, encoder.Stats, error) {
	codec := loc.Codec()
	if codec == nil {
		return nil, encoder.Stats{}, errors.NilCodec(errors.PhaseEncode, loc.Name())
	}
	key := encodedKey{locale: loc.Name(), codec: codec.Name()}
	if e, ok := s.encoded[key]; ok {
		return e.data, e.stats, nil
	}

	enc, err := encoder.New(charset.WideChars(s.Chars()), loc, opts...)
	if err != nil {
		return nil, encoder.Stats{}, err
	}
	data, stats := enc.Encode()
	if s.encoded == nil {
		s.encoded = make(map[encodedKey]encoded)
	}
	s.encoded[key] = encoded{data: data, stats: stats}
	return data, stats, nil
}
