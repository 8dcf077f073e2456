package encoder

import (
	"bytes"
	stderrors "errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/wippyai/textcore"
	"github.com/wippyai/textcore/buffer"
	"github.com/wippyai/textcore/charset"
	"github.com/wippyai/textcore/errors"
	"github.com/wippyai/textcore/locale"
)

// asciiLike delegates everything but Out to ASCII.
type asciiLike struct{}

func (asciiLike) MaxLength() int         { return 1 }
func (asciiLike) NewState() locale.State { return locale.ASCII.NewState() }
func (asciiLike) Unshift(st locale.State, dst []byte) (locale.Result, int) {
	return locale.ASCII.Unshift(st, dst)
}
func (asciiLike) In(st locale.State, src []byte, dst []uint32) (locale.Result, int, int) {
	return locale.ASCII.In(st, src, dst)
}

// nulCodec reports NUL input as res without consuming it.
type nulCodec struct {
	asciiLike
	res locale.Result
}

func (c nulCodec) Name() string { return "nul-" + c.res.String() }

func (c nulCodec) Out(st locale.State, src []uint32, dst []byte) (locale.Result, int, int) {
	if len(src) > 0 && src[0] == 0 {
		return c.res, 0, 0
	}
	return locale.ASCII.Out(st, src, dst)
}

// stuckCodec reports 'x' as partial without consuming it.
type stuckCodec struct{ asciiLike }

func (stuckCodec) Name() string { return "stuck" }

func (stuckCodec) Out(st locale.State, src []uint32, dst []byte) (locale.Result, int, int) {
	if len(src) > 0 && src[0] == 'x' {
		return locale.Partial, 0, 0
	}
	return locale.ASCII.Out(st, src, dst)
}

// digitsCodec encodes nothing but ASCII digits.
type digitsCodec struct{ asciiLike }

func (digitsCodec) Name() string { return "digits" }

func (digitsCodec) Out(st locale.State, src []uint32, dst []byte) (locale.Result, int, int) {
	if len(src) > 0 && (src[0] < '0' || src[0] > '9') {
		return locale.Error, 0, 0
	}
	return locale.ASCII.Out(st, src, dst)
}

// scriptedCodec returns a fixed result.
type scriptedCodec struct {
	asciiLike
	res        locale.Result
	nSrc, nDst int
}

func (scriptedCodec) Name() string { return "scripted" }

func (c scriptedCodec) Out(locale.State, []uint32, []byte) (locale.Result, int, int) {
	return c.res, c.nSrc, c.nDst
}

func init() {
	locale.Register("x-nul-ok", nulCodec{res: locale.OK})
	locale.Register("x-nul-partial", nulCodec{res: locale.Partial})
	locale.Register("x-stuck", stuckCodec{})
	locale.Register("x-digits", digitsCodec{})
}

func mustLocale(t *testing.T, name string) locale.Locale {
	t.Helper()
	loc, err := locale.Parse(name)
	require.NoError(t, err)
	return loc
}

func wide(s string) charset.Wide {
	b := buffer.New(buffer.WithChunkCapacity(4))
	for _, r := range s {
		b.Append(textcore.Char(r))
	}
	return charset.WideChars(b.Chars())
}

func mustEncoder(t *testing.T, src charset.Wide, locName string, opts ...Option) *Encoder {
	t.Helper()
	enc, err := New(src, mustLocale(t, locName), opts...)
	require.NoError(t, err)
	return enc
}

func drain(it *Iterator) []byte {
	out := []byte{}
	for ; !it.Done(); it.Next() {
		out = append(out, it.Value())
	}
	return out
}

func TestCallCodecOut(t *testing.T) {
	tests := []struct {
		name   string
		codec  scriptedCodec
		src    []uint32
		dstLen int
		wantN  int
		wantOK bool
		want0  byte
	}{
		{"ok with progress", scriptedCodec{res: locale.OK, nSrc: 1, nDst: 2}, []uint32{'a'}, 4, 2, true, 0},
		{"ok stuck copies unit through", scriptedCodec{res: locale.OK}, []uint32{0}, 4, 1, true, 0},
		{"ok stuck on non-NUL copies too", scriptedCodec{res: locale.OK}, []uint32{'z'}, 4, 1, true, 'z'},
		{"ok without room is not corrected", scriptedCodec{res: locale.OK}, []uint32{0}, 0, 0, true, 0},
		{"partial stuck on NUL emits NUL", scriptedCodec{res: locale.Partial}, []uint32{0}, 4, 1, true, 0},
		{"partial stuck on other input is error", scriptedCodec{res: locale.Partial}, []uint32{'x'}, 4, 0, false, 0},
		{"partial with progress", scriptedCodec{res: locale.Partial, nSrc: 1, nDst: 1}, []uint32{'a', 'b'}, 4, 1, true, 0},
		{"error", scriptedCodec{res: locale.Error}, []uint32{'a'}, 4, 0, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dst := make([]byte, tt.dstLen)
			n, ok := callCodecOut(tt.codec, tt.codec.NewState(), tt.src, dst)
			assert.Equal(t, tt.wantN, n)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantN == 1 && tt.dstLen > 0 {
				assert.Equal(t, tt.want0, dst[0])
			}
		})
	}
}

func TestEncode_RoundTrip(t *testing.T) {
	tests := []struct {
		locale string
		text   string
	}{
		{"en_US.UTF-8", "añ中😀"},
		{"de_DE.ISO-8859-1", "Grüße"},
		{"ja_JP.SJIS", "日本語テキスト"},
		{"ja_JP.eucJP", "日本語"},
		{"ja_JP.ISO-2022-JP", "abc日本語xyz"},
		{"ja_JP.csISO2022JP", "abc日本語"},
		{"zh_CN.HZ-GB-2312", "a中文~b"},
		{"ko_KR.EUC-KR", "한국어"},
		{"zh_CN.GBK", "中文"},
		{"zh_CN.GB18030", "中文😀"},
		{"zh_TW.BIG5", "中文"},
		{"ru_RU.KOI8-R", "Привет"},
		{"C", "plain ascii"},
	}

	for _, tt := range tests {
		t.Run(tt.locale, func(t *testing.T) {
			enc := mustEncoder(t, wide(tt.text), tt.locale)
			data, stats := enc.Encode()
			assert.False(t, stats.Lossy())

			b := buffer.New()
			invalid, err := locale.Decode(enc.Locale(), data, b)
			require.NoError(t, err)
			assert.Equal(t, 0, invalid)

			var sb strings.Builder
			for c := range b.All() {
				sb.WriteRune(rune(c))
			}
			assert.Equal(t, tt.text, sb.String())
		})
	}
}

func TestEncode_Degradation(t *testing.T) {
	t.Run("CJK in C locale", func(t *testing.T) {
		data, stats := mustEncoder(t, wide("a中b"), "C").Encode()
		assert.Equal(t, []byte("a?b"), data)
		assert.Equal(t, Stats{Substituted: 1}, stats)
	})

	t.Run("lone surrogate in UTF-8", func(t *testing.T) {
		data, stats := mustEncoder(t, charset.WideUnits([]uint32{'a', 0xD800}), "en_US.UTF-8").Encode()
		assert.Equal(t, []byte("a�"), data)
		assert.Equal(t, Stats{Replaced: 1}, stats)
	})

	t.Run("out of range value", func(t *testing.T) {
		data, stats := mustEncoder(t, charset.WideUnits([]uint32{0x110000}), "en_US.ISO-8859-1").Encode()
		assert.Equal(t, []byte("?"), data)
		assert.Equal(t, 1, stats.Substituted)
	})

	t.Run("partial without progress is an error", func(t *testing.T) {
		data, stats := mustEncoder(t, wide("axb"), "xx.x-stuck").Encode()
		assert.Equal(t, []byte("a?b"), data)
		assert.Equal(t, Stats{Substituted: 1}, stats)
	})
}

func TestEncode_DropsWhenQuestionMarkFails(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	enc := mustEncoder(t, wide("1x2"), "xx.x-digits", WithLogger(zap.New(core)))

	data, stats := enc.Encode()
	assert.Equal(t, []byte("12"), data)
	assert.Equal(t, Stats{Dropped: 1}, stats)
	assert.Equal(t, 1, logs.FilterMessage("character dropped").Len())
	assert.Equal(t, 1, logs.FilterMessage("lossy encode").Len())
}

func TestEncode_DropsEveryCharacter(t *testing.T) {
	enc := mustEncoder(t, wide("abc"), "xx.x-digits")
	assert.True(t, enc.Begin().Equal(enc.End()))
	assert.Equal(t, 0, enc.Len())
}

func TestEncode_EmbeddedNUL(t *testing.T) {
	for _, name := range []string{"xx.x-nul-ok", "xx.x-nul-partial", "C", "en_US.UTF-8"} {
		t.Run(name, func(t *testing.T) {
			data, stats := mustEncoder(t, wide("a\x00b"), name).Encode()
			assert.Equal(t, []byte{'a', 0, 'b'}, data)
			assert.False(t, stats.Lossy())
		})
	}
}

func TestIterator_EndAfterLastByte(t *testing.T) {
	enc := mustEncoder(t, wide("é"), "en_US.UTF-8")
	it, end := enc.Begin(), enc.End()

	derefs := 0
	for !it.Equal(end) {
		_ = it.Value()
		derefs++
		it.Next()
	}
	assert.Equal(t, 2, derefs)
}

func TestIterator_SourceAtEndIsNotExhausted(t *testing.T) {
	enc := mustEncoder(t, wide("é"), "en_US.UTF-8")

	drained := enc.Begin()
	drain(drained)

	it := enc.Begin()
	assert.Equal(t, byte(0xC3), it.Value())
	it.Next()

	// the source is consumed but one byte of the character is pending
	assert.True(t, it.src.Done())
	assert.False(t, it.Equal(enc.End()))
	assert.False(t, it.Equal(drained))
	assert.Equal(t, byte(0xA9), it.Value())

	it.Next()
	assert.True(t, it.Equal(enc.End()))
	assert.True(t, it.Equal(drained))
}

func TestIterator_EmptySource(t *testing.T) {
	for _, name := range []string{"C", "en_US.UTF-8", "ja_JP.ISO-2022-JP", "xx.x-digits"} {
		t.Run(name, func(t *testing.T) {
			enc := mustEncoder(t, wide(""), name)
			assert.True(t, enc.Begin().Equal(enc.End()))
			assert.True(t, enc.End().Equal(enc.Begin()))
			assert.True(t, enc.Begin().Equal(enc.Begin()))
			assert.Equal(t, 0, enc.Len())
		})
	}
}

func TestIterator_CloneIsMultiPass(t *testing.T) {
	jis := []byte{'a', 0x1B, '$', 'B', 0x46, 0x7C, 0x4B, 0x5C, 0x1B, '(', 'B', 'b'}
	tests := []struct {
		locale string
		text   string
		want   []byte
	}{
		{"ja_JP.ISO-2022-JP", "a日本b", jis},
		{"ja_JP.csISO2022JP", "a日本b", jis},
		{"zh_CN.HZ-GB-2312", "a日本b", []byte("a~{HU1>~}b")},
		{"zh_CN.HZ-GB-2312", "a日~本", []byte("a~{HU~~1>~}")},
	}

	for _, tt := range tests {
		t.Run(tt.locale+"/"+tt.text, func(t *testing.T) {
			enc := mustEncoder(t, wide(tt.text), tt.locale)
			require.Equal(t, tt.want, drain(enc.Begin()))

			for k := 0; k <= len(tt.want); k++ {
				it := enc.Begin()
				for i := 0; i < k; i++ {
					it.Next()
				}
				cp := it.Clone()
				assert.True(t, cp.Equal(it))
				assert.Equal(t, tt.want[k:], drain(it), "original after %d steps", k)
				assert.Equal(t, tt.want[k:], drain(cp), "clone after %d steps", k)
			}
		})
	}
}

func TestIterator_UnshiftAtEnd(t *testing.T) {
	tests := []struct {
		locale string
		want   []byte
	}{
		{"ja_JP.ISO-2022-JP", []byte{0x1B, '$', 'B', 0x46, 0x7C, 0x4B, 0x5C, 0x1B, '(', 'B'}},
		{"ja_JP.csISO2022JP", []byte{0x1B, '$', 'B', 0x46, 0x7C, 0x4B, 0x5C, 0x1B, '(', 'B'}},
		{"zh_CN.HZ-GB-2312", []byte("~{HU1>~}")},
	}

	for _, tt := range tests {
		t.Run(tt.locale, func(t *testing.T) {
			enc := mustEncoder(t, wide("日本"), tt.locale)
			data, _ := enc.Encode()
			assert.Equal(t, tt.want, data)
			assert.Equal(t, len(data), enc.Len())
		})
	}
}

func TestIterator_UTF16Source(t *testing.T) {
	src := charset.UTF16Units([]uint16{'a', 0xD83D, 0xDE00})
	data, stats := mustEncoder(t, src, "en_US.UTF-8").Encode()
	assert.Equal(t, []byte("a😀"), data)
	assert.False(t, stats.Lossy())
}

func TestIterator_ValuePanicsWhenExhausted(t *testing.T) {
	enc := mustEncoder(t, wide(""), "C")
	assert.Panics(t, func() { enc.Begin().Value() })
}

func TestEncoder_DoesNotAdvanceSource(t *testing.T) {
	enc := mustEncoder(t, wide("abc"), "C")
	first, _ := enc.Encode()
	second, _ := enc.Encode()
	assert.Equal(t, first, second)
	assert.Equal(t, []byte("abc"), first)
}

func TestEncoder_WriteTo(t *testing.T) {
	enc := mustEncoder(t, wide(strings.Repeat("é", 3000)), "en_US.UTF-8")

	var out bytes.Buffer
	n, err := enc.WriteTo(&out)
	require.NoError(t, err)
	assert.Equal(t, int64(6000), n)

	data, _ := enc.Encode()
	assert.Equal(t, data, out.Bytes())
}

func TestNew_Errors(t *testing.T) {
	_, err := New(wide("a"), locale.Locale{})
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, &errors.Error{Phase: errors.PhaseEncode, Kind: errors.KindNilCodec}))

	_, err = New(nil, mustLocale(t, "C"))
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, &errors.Error{Phase: errors.PhaseEncode, Kind: errors.KindInvalidRange}))
}
