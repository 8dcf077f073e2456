// Package charset provides lazy iterators between code-unit sequences and
// decoded characters.
//
// # Forms
//
// A Form describes one fixed encoding of code units of type U:
//
//	Form        Unit     Units per character
//	──────────────────────────────────────────
//	UTF8        byte     1..4
//	UTF16       uint16   1..2
//	UTF32       uint32   1
//	WChar       uint32   1 (wchar_t is 32-bit on supported targets)
//	SingleByte  byte     1 (legacy charmaps from golang.org/x/text)
//
// # Iterators
//
//	DecodeIterator[U]   []U      → characters   (implements textcore.Chars)
//	CodeUnits[U]        []U      → units with character boundaries (Wide)
//	EncodeIterator[U]   Chars    → units of U   (Wide)
//
// All iterators are multi-pass: Clone returns a cursor that advances
// independently of the original. None of them reads past the end of its
// input; a character truncated by the end of input decodes to
// textcore.ReplacementChar.
//
// # Equality
//
// EncodeIterator emits a character's units from a small lookahead buffer.
// Two encode iterators are equal only when their source positions AND the
// number of units left in the lookahead match, so an iterator still
// draining the last character is not equal to the end iterator.
package charset
