package locale

import (
	"slices"
	"strings"
	"sync"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/encoding/unicode"
	"go.uber.org/zap"

	"github.com/wippyai/textcore"
)

type builtin struct {
	name     string
	enc      encoding.Encoding
	maxLen   int
	stateful bool
}

// builtins maps normalized glibc codeset names to x/text encodings.
var builtins = map[string]builtin{
	"iso88591":  {"ISO-8859-1", charmap.ISO8859_1, 1, false},
	"iso88592":  {"ISO-8859-2", charmap.ISO8859_2, 1, false},
	"iso88593":  {"ISO-8859-3", charmap.ISO8859_3, 1, false},
	"iso88594":  {"ISO-8859-4", charmap.ISO8859_4, 1, false},
	"iso88595":  {"ISO-8859-5", charmap.ISO8859_5, 1, false},
	"iso88596":  {"ISO-8859-6", charmap.ISO8859_6, 1, false},
	"iso88597":  {"ISO-8859-7", charmap.ISO8859_7, 1, false},
	"iso88598":  {"ISO-8859-8", charmap.ISO8859_8, 1, false},
	"iso88599":  {"ISO-8859-9", charmap.ISO8859_9, 1, false},
	"iso885910": {"ISO-8859-10", charmap.ISO8859_10, 1, false},
	"iso885913": {"ISO-8859-13", charmap.ISO8859_13, 1, false},
	"iso885914": {"ISO-8859-14", charmap.ISO8859_14, 1, false},
	"iso885915": {"ISO-8859-15", charmap.ISO8859_15, 1, false},
	"iso885916": {"ISO-8859-16", charmap.ISO8859_16, 1, false},
	"koi8r":     {"KOI8-R", charmap.KOI8R, 1, false},
	"koi8u":     {"KOI8-U", charmap.KOI8U, 1, false},
	"cp1250":    {"windows-1250", charmap.Windows1250, 1, false},
	"cp1251":    {"windows-1251", charmap.Windows1251, 1, false},
	"cp1252":    {"windows-1252", charmap.Windows1252, 1, false},
	"cp1253":    {"windows-1253", charmap.Windows1253, 1, false},
	"cp1254":    {"windows-1254", charmap.Windows1254, 1, false},
	"cp1255":    {"windows-1255", charmap.Windows1255, 1, false},
	"cp1256":    {"windows-1256", charmap.Windows1256, 1, false},
	"cp1257":    {"windows-1257", charmap.Windows1257, 1, false},
	"cp1258":    {"windows-1258", charmap.Windows1258, 1, false},
	"cp437":     {"IBM437", charmap.CodePage437, 1, false},
	"cp850":     {"IBM850", charmap.CodePage850, 1, false},
	"cp866":     {"IBM866", charmap.CodePage866, 1, false},
	"eucjp":     {"EUC-JP", japanese.EUCJP, 3, false},
	"ujis":      {"EUC-JP", japanese.EUCJP, 3, false},
	"sjis":      {"Shift_JIS", japanese.ShiftJIS, 2, false},
	"shiftjis":  {"Shift_JIS", japanese.ShiftJIS, 2, false},
	"pck":       {"Shift_JIS", japanese.ShiftJIS, 2, false},
	"iso2022jp": {"ISO-2022-JP", japanese.ISO2022JP, 8, true},
	"euckr":     {"EUC-KR", korean.EUCKR, 2, false},
	"cp949":     {"EUC-KR", korean.EUCKR, 2, false},
	"gbk":       {"GBK", simplifiedchinese.GBK, 2, false},
	"cp936":     {"GBK", simplifiedchinese.GBK, 2, false},
	"gb2312":    {"GBK", simplifiedchinese.GBK, 2, false},
	"euccn":     {"GBK", simplifiedchinese.GBK, 2, false},
	"gb18030":   {"GB18030", simplifiedchinese.GB18030, 4, false},
	"hzgb2312":  {"HZ-GB-2312", simplifiedchinese.HZGB2312, 6, true},
	"big5":      {"Big5", traditionalchinese.Big5, 2, false},
	"big5hkscs": {"Big5", traditionalchinese.Big5, 2, false},
	"cp950":     {"Big5", traditionalchinese.Big5, 2, false},
	"utf16le":   {"UTF-16LE", unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM), 4, false},
	"utf16be":   {"UTF-16BE", unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM), 4, false},
}

// codec builds the codec for a built-in entry.
func (b builtin) codec() Codec {
	c := newXTextCodec(b.name, b.enc, b.maxLen, b.stateful)
	if b.name == "HZ-GB-2312" {
		// the x/text encoder never writes "~}" at end of input and
		// escapes '~' as "~~" without leaving GB mode
		c.shiftOut = []byte("~}")
		c.escape = '~'
	}
	return c
}

var (
	registryMu sync.RWMutex
	registry   = map[string]Codec{
		"ansix341968": ASCII,
		"ascii":       ASCII,
		"usascii":     ASCII,
		"646":         ASCII,
		"utf8":        UTF8,
	}
)

// normalize folds a codeset name the way glibc does: lowercase, with
// punctuation removed.
func normalize(name string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(name) {
		switch r {
		case '-', '_', '.', ':', ' ':
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// Register makes a codec available under the given codeset name,
// replacing any previous registration.
func Register(charset string, c Codec) {
	registryMu.Lock()
	registry[normalize(charset)] = c
	registryMu.Unlock()
}

// Lookup resolves a codeset name. Resolved x/text codecs are cached in
// the registry.
func Lookup(charset string) (Codec, bool) {
	key := normalize(charset)
	if key == "" {
		return nil, false
	}

	registryMu.RLock()
	c, ok := registry[key]
	registryMu.RUnlock()
	if ok {
		return c, true
	}

	c = resolve(charset, key)
	if c == nil {
		return nil, false
	}
	Register(charset, c)
	return c, true
}

func resolve(charset, key string) Codec {
	if b, ok := builtins[key]; ok {
		return b.codec()
	}

	// ianaindex returns a nil encoding without an error for names it
	// knows but x/text does not implement
	if enc, err := ianaindex.IANA.Encoding(charset); err == nil && enc != nil {
		name, _ := ianaindex.IANA.Name(enc)
		if name == "" {
			name = charset
		}
		Logger().Debug("codeset resolved through IANA index",
			zap.String("codeset", charset), zap.String("name", name))
		return indexed(name, enc)
	}

	if enc, err := htmlindex.Get(charset); err == nil {
		name, _ := htmlindex.Name(enc)
		if name == "" {
			name = charset
		}
		Logger().Debug("codeset resolved through WHATWG index",
			zap.String("codeset", charset), zap.String("name", name))
		return indexed(name, enc)
	}
	return nil
}

// indexed builds the codec for an encoding found through an index. A
// canonical name that is also a built-in keeps the built-in's length and
// shift handling; anything else is assumed stateless.
func indexed(name string, enc encoding.Encoding) Codec {
	if b, ok := builtins[normalize(name)]; ok {
		return b.codec()
	}
	return NewCodec(name, enc, textcore.MBLenMax, false)
}

// Codesets returns the registered codeset names and every built-in name,
// sorted and without duplicates.
func Codesets() []string {
	registryMu.RLock()
	names := make([]string, 0, len(registry)+len(builtins))
	for _, c := range registry {
		names = append(names, c.Name())
	}
	registryMu.RUnlock()
	for _, b := range builtins {
		names = append(names, b.name)
	}
	slices.Sort(names)
	return slices.Compact(names)
}
