package textcore

// Char is a decoded character: one 32-bit code point value.
//
// Values are not validated against the Unicode codespace. Any 32-bit
// value is stored and passed through mechanically; only the encoders
// that cannot represent a value substitute it.
type Char uint32

const (
	// ReplacementChar is U+FFFD, substituted for undecodable input and
	// tried first when a character cannot be encoded.
	ReplacementChar Char = 0xFFFD

	// QuestionMark is the last-resort substitute when even
	// ReplacementChar cannot be encoded.
	QuestionMark Char = '?'

	// MBLenMax is the maximum number of bytes a multibyte codec may emit
	// for a single wide code unit.
	MBLenMax = 16

	// DefaultChunkCapacity is the number of characters per buffer chunk.
	DefaultChunkCapacity = 128
)

// Chars is a forward, multi-pass cursor over decoded characters.
//
// A cursor knows the end of its own range: Done reports whether it has
// reached it. Pos is a monotone position within the range; two cursors
// over the same range are at the same place iff their positions match.
// Clone returns an independent cursor: advancing the clone never moves
// the original.
type Chars interface {
	Done() bool
	Value() Char
	Next()
	Pos() int
	Clone() Chars
}

// Valid reports whether c is a Unicode scalar value.
func (c Char) Valid() bool {
	return c < 0xD800 || (c > 0xDFFF && c <= 0x10FFFF)
}
