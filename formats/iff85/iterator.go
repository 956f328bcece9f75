// SPDX-License-Identifier: EPL-2.0

package iff85

import (
	"fmt"
	"io"

	"github.com/devbrain/libiff/chunk"
	"github.com/devbrain/libiff/chunkio"
	"github.com/devbrain/libiff/fourcc"
)

// frame tracks one open container on the traversal stack.
type frame struct {
	id       fourcc.FourCC
	typ      fourcc.FourCC
	hasType  bool
	end      uint64 // absolute offset of the first byte past the last child's padding
	depth    int
	oddSize  bool // container's own payload size is odd; one pad byte follows end
	hasProps bool // LIST only: a PROP child has been seen
}

// Iterator walks an IFF-85 stream depth-first. Create one with New, or via
// the format-detecting factory in the root package.
type Iterator struct {
	src   *chunkio.Reader
	opts  chunk.Options
	cur   chunk.Info
	stack []frame
	ended bool
}

// New builds an iterator over src, whose cursor must sit at the first byte
// of the outer container. Construction peeks four bytes and rewinds — the
// only backward seek performed — then reads the first chunk. A root
// identifier other than FORM, LIST or CAT is a parse error.
func New(src *chunkio.Reader, opts *chunk.Options) (*Iterator, error) {
	it := &Iterator{src: src, opts: chunk.Normalize(opts)}

	start := src.Tell()
	root, err := chunkio.ReadFourCC(src)
	if err != nil {
		return nil, err
	}
	if _, err := src.Seek(int64(start), io.SeekStart); err != nil {
		return nil, err
	}
	if root != fourcc.FORM && root != fourcc.LIST && root != fourcc.CAT {
		return nil, fmt.Errorf("%w: root %v at offset %d is not FORM, LIST or CAT",
			chunk.ErrUnknownFormat, root, start)
	}

	ok, err := it.readNext()
	if err != nil {
		return nil, err
	}
	it.ended = !ok
	return it, nil
}

// Current returns the descriptor of the chunk the iterator is positioned
// at. The descriptor and its reader stay valid until the next Advance.
func (it *Iterator) Current() *chunk.Info { return &it.cur }

// HasNext reports whether the iterator is positioned at a chunk.
func (it *Iterator) HasNext() bool { return !it.ended }

// Advance finalizes the current chunk and moves to the next one in
// depth-first source order. Advancing an ended iterator is a no-op.
func (it *Iterator) Advance() error {
	if it.ended {
		return nil
	}

	if it.cur.Reader != nil {
		it.cur.Reader = nil
		next := it.cur.Header.FileOffset + chunk.HeaderSize + it.cur.PaddedSize
		if _, err := it.src.Seek(int64(next), io.SeekStart); err != nil {
			// The final chunk ran past the end of the source; there is
			// nothing left to iterate.
			it.ended = true
			return nil
		}
	}

	ok, err := it.readNext()
	if err != nil {
		return err
	}
	if !ok {
		it.ended = true
	}
	return nil
}

// popExited removes every frame whose extent the cursor has passed and
// steps over the frame's own alignment byte where one exists.
func (it *Iterator) popExited() {
	for len(it.stack) > 0 {
		top := &it.stack[len(it.stack)-1]
		if it.src.Tell() < top.end {
			return
		}
		if top.oddSize && it.src.Tell() == top.end {
			it.src.Seek(int64(top.end+1), io.SeekStart)
		}
		it.stack = it.stack[:len(it.stack)-1]
	}
}

// readNext parses the chunk at the cursor. It returns false with a nil
// error on a clean end of iteration.
func (it *Iterator) readNext() (bool, error) {
	it.popExited()

	start := it.src.Tell()
	if len(it.stack) > 0 {
		if rem := it.stack[len(it.stack)-1].end - start; rem < chunk.HeaderSize {
			return it.recoverTruncated(start,
				fmt.Errorf("%d bytes left in container, a chunk header needs %d", rem, chunk.HeaderSize))
		}
	}
	id, err := chunkio.ReadFourCC(it.src)
	if err != nil {
		return it.recoverTruncated(start, err)
	}
	size32, err := chunkio.ReadUint32(it.src, chunkio.BigEndian)
	if err != nil {
		return it.recoverTruncated(start, err)
	}

	size := uint64(size32)
	if size > it.opts.MaxChunkSize {
		if it.opts.Strict {
			return false, fmt.Errorf("%w: chunk %v at offset %d declares %d bytes, maximum is %d",
				chunk.ErrSizeLimit, id, start, size, it.opts.MaxChunkSize)
		}
		it.opts.Warn(start, chunk.WarnSizeLimit,
			fmt.Sprintf("chunk %v size %d exceeds maximum %d, clamping to limit",
				id, size, it.opts.MaxChunkSize))
		size = it.opts.MaxChunkSize
	}

	isContainer := id == fourcc.FORM || id == fourcc.LIST || id == fourcc.CAT || id == fourcc.PROP

	it.cur = chunk.Info{
		Header: chunk.Header{
			ID:          id,
			Size:        size,
			FileOffset:  start,
			IsContainer: isContainer,
		},
		Depth:      it.nextDepth(),
		PaddedSize: size + size&1,
	}
	it.applyContext()

	if isContainer {
		return it.enterContainer()
	}

	// Data chunk: scope a reader over the padded payload, clamped to what
	// the source still holds; the reader itself clamps at the declared
	// size so the pad byte stays hidden.
	window := it.cur.PaddedSize
	if avail := it.src.Size() - it.src.Tell(); window > avail {
		window = avail
	}
	it.cur.Reader = chunk.NewReader(it.src.SubReader(window), size)
	return true, nil
}

// enterContainer reads the type tag where the container kind carries one
// and pushes a frame. CAT has no tag; its children follow the header
// directly.
func (it *Iterator) enterContainer() (bool, error) {
	h := &it.cur.Header

	if it.cur.Depth >= it.opts.MaxDepth {
		if it.opts.Strict {
			return false, fmt.Errorf("%w: container %v at offset %d would exceed maximum nesting depth %d (current depth %d)",
				chunk.ErrDepthLimit, h.ID, h.FileOffset, it.opts.MaxDepth, it.cur.Depth)
		}
		it.opts.Warn(h.FileOffset, chunk.WarnDepthLimit,
			fmt.Sprintf("container %v would exceed maximum nesting depth %d, skipping",
				h.ID, it.opts.MaxDepth))
		if _, err := it.src.Seek(int64(h.FileOffset+chunk.HeaderSize+h.PaddedSize()), io.SeekStart); err != nil {
			return false, nil
		}
		return it.readNext()
	}

	if h.ID != fourcc.CAT {
		typ, err := chunkio.ReadFourCC(it.src)
		if err != nil {
			if it.opts.Strict {
				return false, fmt.Errorf("%w: container %v at offset %d: type tag cut short",
					chunk.ErrTruncated, h.ID, h.FileOffset)
			}
			return it.recoverTruncated(h.FileOffset, err)
		}
		h.Type, h.HasType = typ, true
	}

	end := h.FileOffset + chunk.HeaderSize + h.Size
	if end > it.src.Size() {
		if it.opts.Strict {
			return false, fmt.Errorf("%w: container %v at offset %d declares %d bytes but the source ends at %d",
				chunk.ErrTruncated, h.ID, h.FileOffset, h.Size, it.src.Size())
		}
		it.opts.Warn(h.FileOffset, chunk.WarnTruncated,
			fmt.Sprintf("container %v declares %d bytes past end of source, clamping", h.ID, end-it.src.Size()))
		end = it.src.Size()
	}

	if h.ID == fourcc.PROP {
		it.cur.IsProp = true
		for i := len(it.stack) - 1; i >= 0; i-- {
			if it.stack[i].id == fourcc.LIST {
				it.stack[i].hasProps = true
				break
			}
		}
	}

	it.stack = append(it.stack, frame{
		id:      h.ID,
		typ:     h.Type,
		hasType: h.HasType,
		end:     end,
		depth:   it.cur.Depth,
		oddSize: h.Size&1 == 1,
	})
	it.applyContext()
	it.cur.Reader = nil
	return true, nil
}

// recoverTruncated handles a header read failure. At depth 0 it is a clean
// end of the source; inside a container it is a truncation, fatal in
// strict mode and a pop-and-resume in lenient mode.
func (it *Iterator) recoverTruncated(start uint64, cause error) (bool, error) {
	if len(it.stack) == 0 {
		return false, nil
	}
	top := it.stack[len(it.stack)-1]
	if it.opts.Strict {
		return false, fmt.Errorf("%w: %v container short of declared size: header read at offset %d failed: %v",
			chunk.ErrTruncated, top.id, start, cause)
	}
	it.opts.Warn(start, chunk.WarnTruncated,
		fmt.Sprintf("read failed inside %v container, resuming past it", top.id))
	it.stack = it.stack[:len(it.stack)-1]
	resume := top.end
	if size := it.src.Size(); resume > size {
		resume = size
	}
	if _, err := it.src.Seek(int64(resume), io.SeekStart); err != nil {
		return false, nil
	}
	return it.readNext()
}

func (it *Iterator) nextDepth() int {
	if len(it.stack) == 0 {
		return 0
	}
	return it.stack[len(it.stack)-1].depth + 1
}

// applyContext recomputes the descriptor's ancestral FORM type, innermost
// container kind and PROP flags from the frame stack.
func (it *Iterator) applyContext() {
	it.cur.HasForm = false
	it.cur.HasContainer = false
	it.cur.InListWithProps = false

	for i := len(it.stack) - 1; i >= 0; i-- {
		f := &it.stack[i]
		if f.id == fourcc.FORM && !it.cur.HasForm {
			it.cur.Form, it.cur.HasForm = f.typ, true
		}
		if (f.id == fourcc.LIST || f.id == fourcc.CAT || f.id == fourcc.PROP) && !it.cur.HasContainer {
			it.cur.Container, it.cur.HasContainer = f.id, true
		}
	}
	for i := len(it.stack) - 1; i >= 0; i-- {
		if it.stack[i].id == fourcc.LIST {
			it.cur.InListWithProps = it.stack[i].hasProps
			break
		}
	}
}
