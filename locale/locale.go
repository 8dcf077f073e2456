package locale

import (
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/wippyai/textcore/errors"
)

// Environment variables consulted by FromEnvironment, highest priority first.
var EnvVars = []string{"LC_ALL", "LC_CTYPE", "LANG"}

// Locale is a parsed locale name bound to its codec. It is a value:
// copying a Locale shares only the immutable codec.
type Locale struct {
	name      string
	language  string
	territory string
	codeset   string
	modifier  string
	codec     Codec
}

type options struct {
	forceUTF8 bool
}

// Option configures locale construction.
type Option func(*options)

// WithForceUTF8 bypasses codec resolution and always uses UTF-8.
func WithForceUTF8() Option {
	return func(o *options) {
		o.forceUTF8 = true
	}
}

// Parse parses a name of the form language[_territory][.codeset][@modifier]
// and resolves its codec. The empty name, "C" and "POSIX" select ASCII
// unless a codeset is given. A name without a codeset selects UTF-8.
func Parse(name string, opts ...Option) (Locale, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	loc := Locale{name: name}
	rest := name
	if i := strings.IndexByte(rest, '@'); i >= 0 {
		loc.modifier = rest[i+1:]
		rest = rest[:i]
	}
	if i := strings.IndexByte(rest, '.'); i >= 0 {
		loc.codeset = rest[i+1:]
		rest = rest[:i]
		if loc.codeset == "" {
			return Locale{}, errors.InvalidLocale(name, "empty codeset")
		}
	}
	if i := strings.IndexByte(rest, '_'); i >= 0 {
		loc.territory = rest[i+1:]
		rest = rest[:i]
		if loc.territory == "" {
			return Locale{}, errors.InvalidLocale(name, "empty territory")
		}
	}
	loc.language = rest

	switch loc.language {
	case "", "C", "POSIX":
		if loc.territory != "" {
			return Locale{}, errors.InvalidLocale(name, "territory without language")
		}
		if loc.name == "" {
			loc.name = "C"
		}
		loc.language = "C"
		if loc.codeset == "" {
			loc.codeset = ASCII.Name()
		}
	default:
		if !validLanguage(loc.language) {
			return Locale{}, errors.InvalidLocale(name, "language must be letters")
		}
		if loc.codeset == "" {
			loc.codeset = UTF8.Name()
		}
	}

	if o.forceUTF8 {
		loc.codec = UTF8
		return loc, nil
	}

	c, ok := Lookup(loc.codeset)
	if !ok {
		return Locale{}, errors.UnknownCodeset(name, loc.codeset)
	}
	loc.codec = c
	Logger().Debug("locale resolved",
		zap.String("locale", name), zap.String("codec", c.Name()))
	return loc, nil
}

func validLanguage(s string) bool {
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return true
}

// FromEnvironment parses the first non-empty value among LC_ALL, LC_CTYPE
// and LANG, falling back to the "C" locale.
func FromEnvironment(opts ...Option) (Locale, error) {
	for _, key := range EnvVars {
		if v := os.Getenv(key); v != "" {
			return Parse(v, opts...)
		}
	}
	return Parse("C", opts...)
}

// Name returns the name the locale was parsed from.
func (l Locale) Name() string { return l.name }

// Language returns the language part, "C" for the C locale.
func (l Locale) Language() string { return l.language }

// Territory returns the territory part, if any.
func (l Locale) Territory() string { return l.territory }

// Codeset returns the codeset part, or the implied default.
func (l Locale) Codeset() string { return l.codeset }

// Modifier returns the modifier part, if any.
func (l Locale) Modifier() string { return l.modifier }

// Codec returns the resolved codec. It is nil for the zero Locale.
func (l Locale) Codec() Codec { return l.codec }

func (l Locale) String() string { return l.name }
