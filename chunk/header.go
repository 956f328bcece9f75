// SPDX-License-Identifier: EPL-2.0

package chunk

import "github.com/devbrain/libiff/fourcc"

// HeaderSize is the fixed on-disk size of a chunk header: a four-byte
// identifier followed by a four-byte size.
const HeaderSize = 8

// Header describes one chunk as read from the source.
type Header struct {
	// ID is the chunk identifier.
	ID fourcc.FourCC
	// Size is the payload size in bytes, excluding the trailing
	// alignment byte of odd-sized chunks. For RF64/BW64 files this is
	// the resolved 64-bit size, never the 0xFFFFFFFF sentinel when an
	// override was available.
	Size uint64
	// FileOffset is the absolute offset of the header in the source.
	FileOffset uint64
	// IsContainer reports whether the payload is a sequence of child
	// chunks (FORM/LIST/CAT/PROP, RIFF-family roots, RIFF LIST).
	IsContainer bool
	// Type is the container type tag; meaningful only when HasType is
	// set. CAT containers and data chunks carry none.
	Type fourcc.FourCC
	// HasType reports whether Type is present.
	HasType bool
}

// PaddedSize returns the payload size plus the alignment byte of odd-sized
// chunks: the distance from the end of the header to the next sibling.
func (h Header) PaddedSize() uint64 {
	return h.Size + h.Size&1
}

// Info is the descriptor exposed at each iterator step. It, and the Reader
// it carries, are valid only until the iterator advances.
type Info struct {
	// Header describes the current chunk.
	Header Header
	// Reader scopes payload I/O for data chunks; nil for containers.
	Reader *Reader
	// Form is the type tag of the innermost enclosing FORM-family
	// container, when HasForm is set (e.g. WAVE inside a RIFF root).
	Form fourcc.FourCC
	// HasForm reports whether Form is present.
	HasForm bool
	// Container is the identifier of the innermost enclosing
	// LIST/CAT/PROP container, when HasContainer is set.
	Container fourcc.FourCC
	// HasContainer reports whether Container is present.
	HasContainer bool
	// Depth is the nesting level; 0 for the outermost chunk.
	Depth int
	// PaddedSize is the payload size including the alignment byte; the
	// iterator resumes at FileOffset + HeaderSize + PaddedSize.
	PaddedSize uint64
	// InListWithProps reports that the innermost enclosing LIST has seen
	// a PROP child (IFF-85 only). No default merging is performed.
	InListWithProps bool
	// IsProp reports that this chunk is itself a PROP container.
	IsProp bool
}

// Iterator is the capability every format iterator provides: depth-first,
// source-order traversal with one current descriptor. Construction reads
// the first chunk; Advance moves to the next one or ends the iteration.
// Advancing an ended iterator is a no-op returning nil.
type Iterator interface {
	// Current returns the descriptor of the chunk the iterator is
	// positioned at. Undefined once HasNext reports false.
	Current() *Info
	// Advance finalizes the current chunk (seeking past unconsumed
	// payload and padding) and parses the next header.
	Advance() error
	// HasNext reports whether the iterator is positioned at a chunk.
	HasNext() bool
}
