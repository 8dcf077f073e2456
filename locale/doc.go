// Package locale resolves locale names to multibyte codecs.
//
// # Codec Contract
//
// A Codec converts between wide code units and the bytes of one multibyte
// encoding. Its shape follows the classic codecvt contract: every call
// converts as much as it can and reports one of
//
//	OK       everything consumed
//	Partial  ran out of input (incomplete character) or output room
//	Error    a character cannot be converted
//
// together with the number of source units consumed and destination units
// produced. Conversion state lives in a State owned by the caller, so two
// cursors never share mutable codec memory; State.Clone deep-copies it.
//
// # Codecs
//
// ASCII and UTF-8 are built in. Legacy encodings (ISO-8859-x, windows-125x,
// KOI8, Shift_JIS, EUC-JP, ISO-2022-JP, EUC-KR, GBK, GB18030, HZ-GB-2312,
// Big5, UTF-16) are provided by golang.org/x/text. Names that are not in
// the built-in table are looked up through the IANA and WHATWG indexes.
// Applications may Register their own codecs.
//
// # Locale Names
//
// Names follow the POSIX pattern
//
//	language[_territory][.codeset][@modifier]
//
// "C" and "POSIX" select ASCII. A name without a codeset selects UTF-8.
// FromEnvironment consults LC_ALL, LC_CTYPE and LANG, in that order.
//
// WithForceUTF8 bypasses codec resolution entirely and always uses UTF-8,
// for platforms whose native codecs are known to be broken.
package locale
