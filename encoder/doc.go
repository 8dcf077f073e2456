// Package encoder lazily re-encodes characters into a locale's multibyte
// encoding.
//
// An Encoder pairs a wide-unit source with a locale. Its iterators convert
// one source character at a time through the locale's codec, buffering the
// bytes of that character:
//
//	enc, err := encoder.New(charset.WideChars(buf.Chars()), loc)
//	if err != nil {
//		return err
//	}
//	for it, end := enc.Begin(), enc.End(); !it.Equal(end); it.Next() {
//		out = append(out, it.Value())
//	}
//
// # Fallback
//
// A character the codec cannot convert is retried as U+FFFD, then as '?'.
// If even '?' fails the character produces no bytes. Every outcome is
// counted in Stats; encoding never fails once the Encoder exists.
//
// # Codec Corrections
//
// Some codecs misreport NUL handling. A call that consumes and produces
// nothing despite room on both sides is corrected before the fallback
// runs:
//
//	ok       zero consumed              copy the input through as one byte
//	partial  zero consumed, NUL input   emit NUL, treat as ok
//	partial  zero consumed, other input treat as error
//
// # Iterators
//
// Iterators are lazy: Begin does no conversion work until the first
// Value, Next or Equal. Clone deep-copies the codec state and pending
// bytes so both copies advance independently. When the source is
// exhausted the bytes returning a stateful codec to its initial shift
// state are emitted before the iterator reaches End.
package encoder
