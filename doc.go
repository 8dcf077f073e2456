// Package textcore is the storage and encoding core of a Unicode string
// library.
//
// Text is held as decoded 32-bit characters and converted to byte
// encodings lazily, one character at a time, when output is needed.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	textcore/           Root package with Char, the Chars cursor and Config
//	├── buffer/         Chunked character storage with stable iterators
//	├── charset/        UTF-8/16/32 decode and encode iterators
//	├── locale/         Locale names, codec contract and x/text codecs
//	├── encoder/        Lazy locale encoder with fallback and codec fixes
//	├── ustring/        String facade with cached encoded forms
//	├── errors/         Structured error types for debugging
//	└── cmd/transcode/  Command-line encoder, decoder and inspector
//
// # Data Flow
//
//	bytes ──charset/locale decode──▶ buffer.Buffer ──encoder──▶ bytes
//	                                       ▲
//	                                 ustring.String
//
// # Quick Start
//
//	s := ustring.FromUTF8("日本語 text")
//
//	loc, err := locale.Parse("ja_JP.SJIS")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	data, stats, err := s.Encode(loc)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("% x (lossy: %v)\n", data, stats.Lossy())
//
// # Error Policy
//
// Data problems never fail an operation. Undecodable input becomes
// ReplacementChar; characters a target encoding cannot represent become
// ReplacementChar, then QuestionMark, and are dropped only if neither can
// be encoded. Misuse, such as an unknown codeset or a locale without a
// codec, is reported as an *errors.Error at construction.
//
// # Thread Safety
//
// Buffers and strings are NOT thread-safe; mutation must be serialized by
// the owner. Iterators own their codec state and never share it, so
// independent iterators may run on separate goroutines while nobody
// mutates the underlying storage.
package textcore
