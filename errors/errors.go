package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseDecode Phase = "decode" // foreign units to characters
	PhaseEncode Phase = "encode" // characters to foreign units
	PhaseLocale Phase = "locale" // locale and codec resolution
	PhaseBuffer Phase = "buffer" // character storage
	PhaseConfig Phase = "config" // configuration loading
)

// Kind categorizes the error
type Kind string

const (
	KindInvalidInput Kind = "invalid_input"
	KindOutOfBounds  Kind = "out_of_bounds"
	KindUnsupported  Kind = "unsupported"
	KindNotFound     Kind = "not_found"
	KindInvalidRange Kind = "invalid_range"
	KindNilCodec     Kind = "nil_codec"
)

// Error is the structured error type used throughout the module
type Error struct {
	Value    any
	Cause    error
	Phase    Phase
	Kind     Kind
	Encoding string
	Locale   string
	Detail   string
	Path     []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.Encoding != "" || e.Locale != "" {
		b.WriteString(": ")
		if e.Encoding != "" && e.Locale != "" {
			b.WriteString("locale ")
			b.WriteString(e.Locale)
			b.WriteString(", encoding ")
			b.WriteString(e.Encoding)
		} else if e.Locale != "" {
			b.WriteString("locale ")
			b.WriteString(e.Locale)
		} else {
			b.WriteString("encoding ")
			b.WriteString(e.Encoding)
		}
	}

	if e.Detail != "" {
		if e.Encoding != "" || e.Locale != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the field path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Encoding sets the encoding name
func (b *Builder) Encoding(name string) *Builder {
	b.err.Encoding = name
	return b
}

// Locale sets the locale name
func (b *Builder) Locale(name string) *Builder {
	b.err.Locale = name
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// UnknownCodeset creates an error for a codeset no codec is registered for
func UnknownCodeset(localeName, codeset string) *Error {
	return &Error{
		Phase:    PhaseLocale,
		Kind:     KindNotFound,
		Locale:   localeName,
		Encoding: codeset,
		Detail:   "no codec registered for codeset",
	}
}

// InvalidLocale creates an error for a malformed locale name
func InvalidLocale(name, detail string) *Error {
	return &Error{
		Phase:  PhaseLocale,
		Kind:   KindInvalidInput,
		Locale: name,
		Detail: detail,
	}
}

// NilCodec creates an error for a locale that has no resolved codec
func NilCodec(phase Phase, localeName string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNilCodec,
		Locale: localeName,
		Detail: "locale has no codec",
	}
}

// OutOfBounds creates an out of bounds error
func OutOfBounds(phase Phase, path []string, index, length int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfBounds,
		Path:   path,
		Detail: fmt.Sprintf("index %d out of bounds (length %d)", index, length),
		Value:  index,
	}
}

// InvalidRange creates an error for an iterator range that cannot be used
func InvalidRange(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidRange,
		Detail: detail,
	}
}

// Unsupported creates an unsupported operation error
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: what,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
