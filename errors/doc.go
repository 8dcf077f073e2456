// Package errors provides structured error types for the textcore library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type includes rich context: field path, encoding and locale names, and cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseLocale, errors.KindNotFound).
//		Locale("ja_JP.EUC-JP").
//		Encoding("EUC-JP").
//		Detail("no codec registered for codeset").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.UnknownCodeset("xx_XX.FOO", "FOO")
//	err := errors.OutOfBounds(errors.PhaseBuffer, path, 10, 5)
//
// Only precondition violations are reported as errors. Characters that a
// codec cannot represent are substituted, never reported.
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
