// SPDX-License-Identifier: EPL-2.0

package iff

import (
	"fmt"
	"io"

	"github.com/devbrain/libiff/chunk"
	"github.com/devbrain/libiff/chunkio"
	"github.com/devbrain/libiff/formats/iff85"
	"github.com/devbrain/libiff/formats/riff"
	"github.com/devbrain/libiff/fourcc"
)

// GetIterator detects the container format of src and returns the matching
// iterator, positioned at the outermost chunk. FORM, LIST and CAT roots
// select the IFF-85 iterator; RIFF, RIFX, RF64 and BW64 select the RIFF
// iterator. Any other root identifier is a parse error naming the observed
// bytes.
//
// Detection peeks four bytes and seeks back to the starting offset; this
// is the only backward seek performed. A source that cannot seek backward
// must be buffered by the caller. opts may be nil for the defaults.
func GetIterator(src io.ReadSeeker, opts *chunk.Options) (chunk.Iterator, error) {
	r, err := chunkio.NewReader(src)
	if err != nil {
		return nil, err
	}

	start := r.Tell()
	id, err := chunkio.ReadFourCC(r)
	if err != nil {
		return nil, err
	}
	if _, err := r.Seek(int64(start), io.SeekStart); err != nil {
		return nil, err
	}

	switch {
	case id == fourcc.FORM || id == fourcc.LIST || id == fourcc.CAT:
		return iff85.New(r, opts)
	case id.IsRIFFRoot():
		return riff.New(r, opts)
	}
	return nil, fmt.Errorf("%w: %v at offset %d", chunk.ErrUnknownFormat, id, start)
}
