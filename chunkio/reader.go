// SPDX-License-Identifier: EPL-2.0

package chunkio

import (
	"fmt"
	"io"

	"github.com/devbrain/libiff/fourcc"
)

// Source is a positionable byte source. Read fills as much of p as the
// source can supply at the cursor and advances by the returned count; a
// short count signals end-of-data, not an error. Seek interprets whence as
// io.SeekStart, io.SeekCurrent or io.SeekEnd and fails without moving the
// cursor when the target lies outside [0, Size()].
type Source interface {
	Read(p []byte) (int, error)
	Seek(offset int64, whence int) (uint64, error)
	Tell() uint64
	Size() uint64
}

// Reader adapts an io.ReadSeeker into a Source. It measures the total size
// once at construction and tracks the cursor itself, so Tell never touches
// the underlying stream.
type Reader struct {
	src  io.ReadSeeker
	pos  uint64
	size uint64
}

// NewReader wraps src. The current stream position is preserved; the total
// size is measured with a seek to the end and back.
func NewReader(src io.ReadSeeker) (*Reader, error) {
	cur, err := src.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, fmt.Errorf("%w: tell failed: %v", ErrIO, err)
	}
	end, err := src.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, fmt.Errorf("%w: size probe failed: %v", ErrIO, err)
	}
	if _, err := src.Seek(cur, io.SeekStart); err != nil {
		return nil, fmt.Errorf("%w: seek to offset %d failed: %v", ErrIO, cur, err)
	}
	return &Reader{src: src, pos: uint64(cur), size: uint64(end)}, nil
}

// Read fills p with as many bytes as the source can supply at the cursor.
// End-of-data yields a short count with a nil error.
func (r *Reader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	total := 0
	for total < len(p) {
		n, err := r.src.Read(p[total:])
		total += n
		if err == io.EOF {
			break
		}
		if err != nil {
			r.pos += uint64(total)
			return total, fmt.Errorf("%w: read of %d bytes at offset %d: %v",
				ErrIO, len(p), r.pos, err)
		}
		if n == 0 {
			break
		}
	}
	r.pos += uint64(total)
	return total, nil
}

// Seek moves the cursor. The target must lie within [0, Size()]; an
// out-of-range target fails with ErrSeekOutOfRange and leaves the cursor
// where it was.
func (r *Reader) Seek(offset int64, whence int) (uint64, error) {
	target, err := resolveSeek(offset, whence, r.pos, r.size)
	if err != nil {
		return r.pos, err
	}
	if _, err := r.src.Seek(int64(target), io.SeekStart); err != nil {
		return r.pos, fmt.Errorf("%w: seek to offset %d: %v", ErrIO, target, err)
	}
	r.pos = target
	return r.pos, nil
}

// Tell reports the cursor position.
func (r *Reader) Tell() uint64 { return r.pos }

// Size reports the total size of the source.
func (r *Reader) Size() uint64 { return r.size }

// SubReader presents the bounded window [start, start+size) of a parent
// Source. Positions are relative to the window; reads never cross its end
// and return 0 with a nil error once the window is exhausted. SubReaders
// compose: a SubReader is itself a Source.
type SubReader struct {
	parent Source
	start  uint64
	size   uint64
	pos    uint64
}

// NewSubReader builds a window of size bytes starting at the absolute
// parent offset start. The parent cursor is not moved until the first read.
func NewSubReader(parent Source, start, size uint64) *SubReader {
	return &SubReader{parent: parent, start: start, size: size}
}

// SubReader builds a window of size bytes starting at the current cursor.
func (r *Reader) SubReader(size uint64) *SubReader {
	return NewSubReader(r, r.pos, size)
}

// Read fills p from the window, never past its end. At the window end it
// returns 0 with a nil error.
func (s *SubReader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	avail := s.size - s.pos
	if avail == 0 {
		return 0, nil
	}
	if uint64(len(p)) > avail {
		p = p[:avail]
	}
	if _, err := s.parent.Seek(int64(s.start+s.pos), io.SeekStart); err != nil {
		return 0, err
	}
	n, err := s.parent.Read(p)
	s.pos += uint64(n)
	return n, err
}

// Seek moves the window cursor. The target is relative to the window start
// and must lie within [0, Size()].
func (s *SubReader) Seek(offset int64, whence int) (uint64, error) {
	target, err := resolveSeek(offset, whence, s.pos, s.size)
	if err != nil {
		return s.pos, err
	}
	s.pos = target
	return s.pos, nil
}

// Tell reports the cursor position relative to the window start.
func (s *SubReader) Tell() uint64 { return s.pos }

// Size reports the window size.
func (s *SubReader) Size() uint64 { return s.size }

// Remaining reports the bytes left in the window.
func (s *SubReader) Remaining() uint64 { return s.size - s.pos }

// Start reports the absolute offset of the window in the parent.
func (s *SubReader) Start() uint64 { return s.start }

// resolveSeek maps (offset, whence) onto an absolute target and validates
// it against [0, size].
func resolveSeek(offset int64, whence int, pos, size uint64) (uint64, error) {
	var target int64
	switch whence {
	case io.SeekStart:
		target = offset
	case io.SeekCurrent:
		target = int64(pos) + offset
	case io.SeekEnd:
		target = int64(size) + offset
	default:
		return 0, fmt.Errorf("%w: %d", ErrInvalidWhence, whence)
	}
	if target < 0 || uint64(target) > size {
		return 0, fmt.Errorf("%w: target %d, size %d", ErrSeekOutOfRange, target, size)
	}
	return uint64(target), nil
}

// ReadFourCC reads four bytes from s as a FourCC. A short read is an I/O
// error: identifiers are only read where complete data is required.
func ReadFourCC(s Source) (fourcc.FourCC, error) {
	var b [4]byte
	off := s.Tell()
	n, err := s.Read(b[:])
	if err != nil {
		return fourcc.FourCC{}, err
	}
	if n != 4 {
		return fourcc.FourCC{}, fmt.Errorf("%w: FourCC at offset %d: got %d of 4 bytes",
			ErrShortRead, off, n)
	}
	return fourcc.FourCC(b), nil
}

// ReadUint16 reads a 16-bit scalar in the given byte order.
func ReadUint16(s Source, bo ByteOrder) (uint16, error) {
	var b [2]byte
	if err := readFull(s, b[:]); err != nil {
		return 0, err
	}
	return bo.Uint16(b[:]), nil
}

// ReadUint32 reads a 32-bit scalar in the given byte order.
func ReadUint32(s Source, bo ByteOrder) (uint32, error) {
	var b [4]byte
	if err := readFull(s, b[:]); err != nil {
		return 0, err
	}
	return bo.Uint32(b[:]), nil
}

// ReadUint64 reads a 64-bit scalar in the given byte order.
func ReadUint64(s Source, bo ByteOrder) (uint64, error) {
	var b [8]byte
	if err := readFull(s, b[:]); err != nil {
		return 0, err
	}
	return bo.Uint64(b[:]), nil
}

func readFull(s Source, p []byte) error {
	off := s.Tell()
	n, err := s.Read(p)
	if err != nil {
		return err
	}
	if n != len(p) {
		return fmt.Errorf("%w: scalar at offset %d: got %d of %d bytes",
			ErrShortRead, off, n, len(p))
	}
	return nil
}
