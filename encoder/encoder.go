package encoder

import (
	"io"

	"go.uber.org/zap"

	"github.com/wippyai/textcore/charset"
	"github.com/wippyai/textcore/errors"
	"github.com/wippyai/textcore/locale"
)

const writeChunk = 4096

// Encoder re-encodes a wide-unit source into a locale's encoding.
// It holds its own copy of the locale; the source is never advanced,
// every iterator works on a clone of it.
type Encoder struct {
	src   charset.Wide
	loc   locale.Locale
	codec locale.Codec
	log   *zap.Logger
}

// Option configures an Encoder.
type Option func(*Encoder)

// WithLogger sets the logger used for dropped characters.
func WithLogger(l *zap.Logger) Option {
	return func(e *Encoder) {
		e.log = l
	}
}

// New creates an encoder over src. It fails if src is nil or the locale
// has no codec.
func New(src charset.Wide, loc locale.Locale, opts ...Option) (*Encoder, error) {
	if src == nil {
		return nil, errors.InvalidRange(errors.PhaseEncode, "nil source")
	}
	codec := loc.Codec()
	if codec == nil {
		return nil, errors.NilCodec(errors.PhaseEncode, loc.Name())
	}

	e := &Encoder{src: src, loc: loc, codec: codec}
	for _, opt := range opts {
		opt(e)
	}
	if e.log == nil {
		e.log = Logger()
	}
	return e, nil
}

// Locale returns the encoder's locale.
func (e *Encoder) Locale() locale.Locale {
	return e.loc
}

// Begin returns an iterator at the first byte. No conversion happens
// until the iterator is used.
func (e *Encoder) Begin() *Iterator {
	return &Iterator{codec: e.codec, src: e.src.Clone(), log: e.log}
}

// End returns the past-the-end sentinel.
func (e *Encoder) End() *Iterator {
	return &Iterator{codec: e.codec, end: true}
}

// Len returns the number of encoded bytes. The counting pass does not log.
func (e *Encoder) Len() int {
	it := e.Begin()
	it.log = zap.NewNop()
	n := 0
	for ; !it.Done(); it.Next() {
		n++
	}
	return n
}

// Encode returns the whole encoded byte sequence. A counting pass sizes
// the result so it is allocated once.
func (e *Encoder) Encode() ([]byte, Stats) {
	out := make([]byte, 0, e.Len())
	it := e.Begin()
	for ; !it.Done(); it.Next() {
		out = append(out, it.Value())
	}
	stats := it.Stats()
	if stats.Lossy() {
		e.log.Debug("lossy encode",
			zap.String("locale", e.loc.Name()),
			zap.Int("replaced", stats.Replaced),
			zap.Int("substituted", stats.Substituted),
			zap.Int("dropped", stats.Dropped))
	}
	return out, stats
}

// WriteTo streams the encoded bytes to w.
func (e *Encoder) WriteTo(w io.Writer) (int64, error) {
	var buf [writeChunk]byte
	var total int64
	n := 0
	for it := e.Begin(); !it.Done(); it.Next() {
		buf[n] = it.Value()
		n++
		if n == len(buf) {
			m, err := w.Write(buf[:n])
			total += int64(m)
			if err != nil {
				return total, err
			}
			n = 0
		}
	}
	if n > 0 {
		m, err := w.Write(buf[:n])
		total += int64(m)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
