// SPDX-License-Identifier: EPL-2.0

// Package chunkio provides the positionable byte-source abstraction the
// chunk parsers read from.
//
// This package contains the low-level input building blocks:
//   - Source interface for positionable byte input
//   - Reader over any io.ReadSeeker
//   - SubReader presenting a bounded window over a parent Source
//   - ByteOrder and scalar read helpers
//
// # Source Interface
//
// The Source interface is the foundation of all parsing I/O:
//
//	type Source interface {
//	    Read(p []byte) (int, error)
//	    Seek(offset int64, whence int) (uint64, error)
//	    Tell() uint64
//	    Size() uint64
//	}
//
// Read fills as much of p as the source can supply and returns the count;
// a short count signals end-of-data, never an error. Seek accepts
// io.SeekStart, io.SeekCurrent and io.SeekEnd; seeking past the end fails
// without moving the cursor.
//
// # Bounded Windows
//
// SubReader restricts a parent Source to a window [start, start+size):
//
//	sub := chunkio.NewSubReader(parent, parent.Tell(), 16)
//	n, _ := sub.Read(buf) // never reads past the window
//
// At the window end, Read returns 0 with a nil error rather than
// propagating EOF. SubReaders compose; the chunk iterators use them to
// enforce chunk payload bounds.
//
// # Byte Order
//
// Multi-byte scalars are read with an explicit ByteOrder:
//
//	size, err := chunkio.ReadUint32(src, chunkio.BigEndian)
//
// IFF-85 and RIFX use BigEndian; RIFF, RF64 and BW64 use LittleEndian.
//
// # Error Handling
//
// Short reads at positions where complete data is required (chunk headers,
// scalar fields) and out-of-range seeks surface as errors wrapping ErrIO.
// A short read in the middle of free-form payload data is not an error;
// the caller sees the reduced count.
package chunkio
