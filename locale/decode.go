package locale

import (
	"github.com/wippyai/textcore"
	"github.com/wippyai/textcore/buffer"
	"github.com/wippyai/textcore/errors"
)

const decodeChunk = 64

// Decode converts data from the locale's encoding and appends the
// characters to dst. Bytes that do not form a character, including a
// truncated trailing sequence, are stored as textcore.ReplacementChar and
// counted in invalid.
func Decode(loc Locale, data []byte, dst *buffer.Buffer) (invalid int, err error) {
	c := loc.Codec()
	if c == nil {
		return 0, errors.NilCodec(errors.PhaseDecode, loc.Name())
	}

	st := c.NewState()
	var units [decodeChunk]uint32
	for len(data) > 0 {
		res, nSrc, nDst := c.In(st, data, units[:])
		for _, u := range units[:nDst] {
			dst.Append(textcore.Char(u))
		}
		data = data[nSrc:]

		switch res {
		case Error:
			dst.Append(textcore.ReplacementChar)
			invalid++
			if len(data) > 0 {
				data = data[1:]
			}
		case Partial:
			if nSrc == 0 && nDst == 0 {
				// every remaining byte is available, so this is truncation
				dst.Append(textcore.ReplacementChar)
				invalid++
				return invalid, nil
			}
		}
	}
	return invalid, nil
}
