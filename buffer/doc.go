// Package buffer provides Buffer, a chunked store of decoded characters.
//
// A Buffer grows by appending fixed-capacity chunks. Storage of an existing
// chunk is never reallocated, so appending never moves characters that an
// Iterator already points at:
//
//	┌──────────┐   ┌──────────┐   ┌──────────┐
//	│ chunk 0  │ → │ chunk 1  │ → │ chunk 2  │  (open, used < capacity)
//	│ 128/128  │   │ 128/128  │   │  64/128  │
//	└──────────┘   └──────────┘   └──────────┘
//
// Only the last chunk may be partially filled and no chunk is ever empty.
//
// # Cursors
//
// Iterator is a bidirectional cursor with linear Seek. The buffer also
// keeps a read cursor (ReadChar, Read) that scans characters while a
// writer keeps appending; the read cursor and the append position never
// disturb each other.
//
// # Invalidation
//
// Append keeps every iterator valid except End iterators taken while the
// last chunk was partially filled. Reset invalidates all iterators; using
// one afterwards is a precondition violation.
//
// # Thread Safety
//
// Buffer is NOT thread-safe. Writes must be serialized by the owner, and
// reading while another goroutine appends requires external locking.
package buffer
