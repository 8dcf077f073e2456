package charset

import (
	"encoding/binary"
	"strings"

	"github.com/wippyai/textcore"
	"github.com/wippyai/textcore/buffer"
	"github.com/wippyai/textcore/errors"
)

// Encoding names a Unicode byte serialization.
type Encoding byte

const (
	EncodingUTF8 Encoding = iota
	EncodingUTF16LE
	EncodingUTF16BE
	EncodingUTF32LE
	EncodingUTF32BE
)

var encodingNames = map[Encoding]string{
	EncodingUTF8:    "utf-8",
	EncodingUTF16LE: "utf-16le",
	EncodingUTF16BE: "utf-16be",
	EncodingUTF32LE: "utf-32le",
	EncodingUTF32BE: "utf-32be",
}

func (e Encoding) String() string {
	if name, ok := encodingNames[e]; ok {
		return name
	}
	return "unknown"
}

// ParseEncoding resolves a name such as "UTF-8", "utf16le" or "UTF-32".
// Unqualified UTF-16 and UTF-32 are little-endian.
func ParseEncoding(name string) (Encoding, error) {
	key := strings.ToLower(strings.NewReplacer("-", "", "_", "").Replace(name))
	switch key {
	case "utf8":
		return EncodingUTF8, nil
	case "utf16", "utf16le":
		return EncodingUTF16LE, nil
	case "utf16be":
		return EncodingUTF16BE, nil
	case "utf32", "utf32le":
		return EncodingUTF32LE, nil
	case "utf32be":
		return EncodingUTF32BE, nil
	}
	return 0, errors.New(errors.PhaseDecode, errors.KindUnsupported).
		Encoding(name).
		Detail("unknown Unicode encoding").
		Build()
}

func (e Encoding) order() binary.ByteOrder {
	if e == EncodingUTF16BE || e == EncodingUTF32BE {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// DecodeAll decodes src and appends the characters to dst.
// It returns the number of malformed or truncated sequences, each of which
// was stored as textcore.ReplacementChar.
func DecodeAll[U Unit](form Form[U], src []U, dst *buffer.Buffer) (invalid int) {
	it := NewDecodeIterator(form, src)
	for !it.Done() {
		if it.Invalid() {
			invalid++
		}
		dst.Append(it.Value())
		it.Next()
	}
	return invalid
}

// EncodeAll encodes every character of src in form U.
// The first pass counts units on a clone so the result is allocated once;
// src itself is not advanced.
func EncodeAll[U Unit](form Form[U], src textcore.Chars) []U {
	count := 0
	for it := NewEncodeIterator(form, src.Clone()); !it.Done(); it.Next() {
		count++
	}
	out := make([]U, 0, count)
	for it := NewEncodeIterator(form, src.Clone()); !it.Done(); it.Next() {
		out = append(out, it.Unit())
	}
	return out
}

// DecodeBytes decodes serialized Unicode text into dst.
// A trailing partial unit counts as one truncated character.
func DecodeBytes(enc Encoding, data []byte, dst *buffer.Buffer) (invalid int, err error) {
	order := enc.order()
	switch enc {
	case EncodingUTF8:
		return DecodeAll(UTF8, data, dst), nil

	case EncodingUTF16LE, EncodingUTF16BE:
		units := make([]uint16, len(data)/2)
		for i := range units {
			units[i] = order.Uint16(data[2*i:])
		}
		invalid = DecodeAll(UTF16, units, dst)
		if len(data)%2 != 0 {
			dst.Append(textcore.ReplacementChar)
			invalid++
		}
		return invalid, nil

	case EncodingUTF32LE, EncodingUTF32BE:
		units := make([]uint32, len(data)/4)
		for i := range units {
			units[i] = order.Uint32(data[4*i:])
		}
		invalid = DecodeAll(UTF32, units, dst)
		if len(data)%4 != 0 {
			dst.Append(textcore.ReplacementChar)
			invalid++
		}
		return invalid, nil
	}
	return 0, errors.Unsupported(errors.PhaseDecode, "encoding "+enc.String())
}

// EncodeBytes serializes src in the given encoding.
func EncodeBytes(enc Encoding, src textcore.Chars) ([]byte, error) {
	order := enc.order()
	switch enc {
	case EncodingUTF8:
		return EncodeAll(UTF8, src), nil

	case EncodingUTF16LE, EncodingUTF16BE:
		units := EncodeAll(UTF16, src)
		out := make([]byte, 2*len(units))
		for i, u := range units {
			order.PutUint16(out[2*i:], u)
		}
		return out, nil

	case EncodingUTF32LE, EncodingUTF32BE:
		units := EncodeAll(UTF32, src)
		out := make([]byte, 4*len(units))
		for i, u := range units {
			order.PutUint32(out[4*i:], u)
		}
		return out, nil
	}
	return nil, errors.Unsupported(errors.PhaseEncode, "encoding "+enc.String())
}
