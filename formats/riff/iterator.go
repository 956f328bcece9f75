// SPDX-License-Identifier: EPL-2.0

package riff

import (
	"fmt"
	"io"

	"github.com/devbrain/libiff/chunk"
	"github.com/devbrain/libiff/chunkio"
	"github.com/devbrain/libiff/fourcc"
)

// sizeSentinel is the 32-bit size value that defers to the ds64 overrides
// in RF64/BW64 files.
const sizeSentinel = 0xffffffff

// frame tracks one open container on the traversal stack.
type frame struct {
	id      fourcc.FourCC
	typ     fourcc.FourCC
	end     uint64 // absolute offset of the first byte past the last child's padding
	depth   int
	oddSize bool
}

// Iterator walks a RIFF-family stream depth-first. Create one with New, or
// via the format-detecting factory in the root package.
type Iterator struct {
	src   *chunkio.Reader
	opts  chunk.Options
	bo    chunkio.ByteOrder
	is64  bool // RF64/BW64: ds64 protocol active
	ds64  ds64State
	cur   chunk.Info
	stack []frame
	ended bool
}

// New builds an iterator over src, whose cursor must sit at the first byte
// of the root chunk. Construction peeks four bytes and rewinds — the only
// backward seek performed — then reads the root. RIFX switches the whole
// parse to big-endian; RF64 and BW64 activate the ds64 protocol. A root
// identifier outside the RIFF family is a parse error, as is an RF64/BW64
// root when opts.AllowRF64 is false.
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

	switch root {
	case fourcc.RIFF:
		it.bo = chunkio.LittleEndian
	case fourcc.RIFX:
		it.bo = chunkio.BigEndian
	case fourcc.RF64, fourcc.BW64:
		if !it.opts.AllowRF64 {
			return nil, fmt.Errorf("%w: root %v at offset %d", chunk.ErrRF64Disabled, root, start)
		}
		it.bo = chunkio.LittleEndian
		it.is64 = true
	default:
		return nil, fmt.Errorf("%w: root %v at offset %d is not RIFF, RIFX, RF64 or BW64",
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
	size32, err := chunkio.ReadUint32(it.src, it.bo)
	if err != nil {
		return it.recoverTruncated(start, err)
	}

	isRoot := id.IsRIFFRoot()
	size := uint64(size32)
	if it.is64 && size32 == sizeSentinel {
		if isRoot && !it.ds64.parsed {
			// Temporarily unbounded until the ds64 supplies the real
			// size; bound by what the source holds.
			size = it.src.Size() - start - chunk.HeaderSize
		} else {
			size = it.ds64.resolve(id, size32)
		}
	}

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

	isContainer := isRoot || id == fourcc.LIST

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

	window := it.cur.PaddedSize
	if avail := it.src.Size() - it.src.Tell(); window > avail {
		window = avail
	}
	it.cur.Reader = chunk.NewReader(it.src.SubReader(window), size)
	return true, nil
}

// enterContainer reads the type tag, pushes a frame and, for an RF64/BW64
// root, consumes the mandatory ds64 chunk before yielding the root
// descriptor with its authoritative size.
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

	typ, err := chunkio.ReadFourCC(it.src)
	if err != nil {
		if it.opts.Strict {
			return false, fmt.Errorf("%w: container %v at offset %d: type tag cut short",
				chunk.ErrTruncated, h.ID, h.FileOffset)
		}
		return it.recoverTruncated(h.FileOffset, err)
	}
	h.Type, h.HasType = typ, true

	end := h.FileOffset + chunk.HeaderSize + h.Size
	isUnboundedRoot := it.is64 && h.ID.IsRIFFRoot() && !it.ds64.parsed
	if end > it.src.Size() {
		if it.opts.Strict && !isUnboundedRoot {
			return false, fmt.Errorf("%w: container %v at offset %d declares %d bytes but the source ends at %d",
				chunk.ErrTruncated, h.ID, h.FileOffset, h.Size, it.src.Size())
		}
		if !isUnboundedRoot {
			it.opts.Warn(h.FileOffset, chunk.WarnTruncated,
				fmt.Sprintf("container %v declares %d bytes past end of source, clamping", h.ID, end-it.src.Size()))
		}
		end = it.src.Size()
	}

	it.stack = append(it.stack, frame{
		id:      h.ID,
		typ:     typ,
		end:     end,
		depth:   it.cur.Depth,
		oddSize: h.Size&1 == 1,
	})
	it.applyContext()
	it.cur.Reader = nil

	if it.is64 && h.ID.IsRIFFRoot() && !it.ds64.parsed {
		if err := it.consumeDS64(); err != nil {
			return false, err
		}
		// The ds64 root size is authoritative from here on.
		h.Size = it.ds64.riffSize
		it.cur.PaddedSize = h.PaddedSize()
		top := &it.stack[len(it.stack)-1]
		top.end = h.FileOffset + chunk.HeaderSize + it.ds64.riffSize
		top.oddSize = it.ds64.riffSize&1 == 1
		if size := it.src.Size(); top.end > size {
			top.end = size
		}
	}
	return true, nil
}

// consumeDS64 reads the chunk at the cursor, which must be the ds64
// metadata chunk, and leaves the cursor at the first real child. The
// chunk is never exposed to callers.
func (it *Iterator) consumeDS64() error {
	start := it.src.Tell()
	id, err := chunkio.ReadFourCC(it.src)
	if err != nil {
		return fmt.Errorf("%w: at offset %d: %v", ErrMissingDS64, start, err)
	}
	if id != fourcc.DS64 {
		return fmt.Errorf("%w: first chunk at offset %d is %v", ErrMissingDS64, start, id)
	}
	size32, err := chunkio.ReadUint32(it.src, it.bo)
	if err != nil {
		return fmt.Errorf("%w: size field at offset %d: %v", ErrInvalidDS64, start, err)
	}
	if err := it.ds64.parse(it.src, start, uint64(size32)); err != nil {
		return err
	}
	// Skip whatever tail of the chunk parse left unread, plus padding.
	next := start + chunk.HeaderSize + uint64(size32) + uint64(size32&1)
	if size := it.src.Size(); next > size {
		next = size
	}
	if _, err := it.src.Seek(int64(next), io.SeekStart); err != nil {
		return fmt.Errorf("%w: cannot step past chunk at offset %d: %v", ErrInvalidDS64, start, err)
	}
	return nil
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

// applyContext recomputes the descriptor's ancestral form type and
// innermost LIST context from the frame stack. RIFF-family roots play the
// FORM role; LIST is the only other container kind.
func (it *Iterator) applyContext() {
	it.cur.HasForm = false
	it.cur.HasContainer = false

	for i := len(it.stack) - 1; i >= 0; i-- {
		f := &it.stack[i]
		if f.id.IsRIFFRoot() && !it.cur.HasForm {
			it.cur.Form, it.cur.HasForm = f.typ, true
		}
		if f.id == fourcc.LIST && !it.cur.HasContainer {
			it.cur.Container, it.cur.HasContainer = f.id, true
		}
	}
}
