package encoder

import "github.com/wippyai/textcore/locale"

// callCodecOut converts one character and repairs known codec misbehavior.
// It returns the bytes written to dst and whether conversion succeeded.
//
// Corrections apply only when the codec consumed and produced nothing
// although src and dst are both non-empty:
//
//   - OK: the codec skipped a NUL input; the unit is copied through.
//   - Partial on NUL input: NUL is emitted and the call succeeds.
//   - Partial on any other input: reclassified as an error.
func callCodecOut(c locale.Codec, st locale.State, src []uint32, dst []byte) (int, bool) {
	res, nSrc, nDst := c.Out(st, src, dst)
	stuck := nSrc == 0 && nDst == 0 && len(src) > 0 && len(dst) > 0

	switch res {
	case locale.OK:
		if stuck {
			dst[0] = byte(src[0])
			return 1, true
		}
		return nDst, true

	case locale.Partial:
		if !stuck {
			return nDst, true
		}
		if src[0] == 0 {
			dst[0] = 0
			return 1, true
		}
		return 0, false
	}
	return 0, false
}
