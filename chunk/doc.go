// SPDX-License-Identifier: EPL-2.0

// Package chunk defines the data model shared by the IFF-85 and RIFF
// iterators: chunk headers, the descriptor exposed at each iteration step,
// the scoped payload reader, parse options, and the iterator contract.
//
// # Chunk Descriptors
//
// Each iteration step exposes an Info value:
//
//	it, _ := iff.GetIterator(f, nil)
//	for it.HasNext() {
//	    cur := it.Current()
//	    if !cur.Header.IsContainer {
//	        data, _ := cur.Reader.ReadAll()
//	        // interpret data
//	    }
//	    if err := it.Advance(); err != nil {
//	        // handle err
//	    }
//	}
//
// An Info and the Reader it carries are valid only until the iterator
// advances; advancing finalizes the payload and repositions the cursor.
//
// # Scoped Payload Reading
//
// Reader bounds all payload I/O to the chunk's declared size. Reads past
// the remaining byte count return 0 with a nil error, and the trailing
// alignment byte of an odd-sized chunk is never visible; the iterator
// consumes it when advancing. After every operation the invariant
// Offset() + Remaining() == Size() holds.
//
// # Options and Warnings
//
// Options hardens parsing with a maximum chunk size, a maximum container
// nesting depth, and a strict/lenient switch. In strict mode (the default)
// a breach fails the parse; in lenient mode the parser emits a warning
// through OnWarning and recovers conservatively: oversize chunks are
// clamped, over-deep containers are skipped, and mid-stream read failures
// pop container frames until parsing can resume. Warning categories form
// the closed set WarnSizeLimit, WarnDepthLimit, WarnTruncated; additions
// are additive only.
//
// # Error Taxonomy
//
// Failures are either I/O errors (the byte source failed; they wrap
// chunkio.ErrIO) or parse errors (the structure is malformed; they wrap
// ErrParse). Error messages name the offending chunk identifier, the byte
// offset where the condition was detected, and the violated expectation.
// End-of-source is not an error.
package chunk
