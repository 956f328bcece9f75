// SPDX-License-Identifier: EPL-2.0

package chunk

import (
	"bytes"
	"fmt"
	"io"

	"github.com/devbrain/libiff/chunkio"
	"github.com/devbrain/libiff/fourcc"
)

// Reader is the scoped view over one data chunk's payload. All reads are
// bounded by the chunk's declared size: the trailing alignment byte of an
// odd-sized chunk is inside the underlying window but never visible here.
// Reads past the remaining byte count return 0 with a nil error; genuine
// byte-source failures surface as I/O errors.
type Reader struct {
	src  *chunkio.SubReader
	size uint64
	read uint64
}

// NewReader scopes a payload of size bytes backed by src. The window of
// src covers the padded payload; the Reader clamps at size.
func NewReader(src *chunkio.SubReader, size uint64) *Reader {
	return &Reader{src: src, size: size}
}

// Read fills dst with at most Remaining() bytes and advances the offset by
// the returned count. It returns 0 with a nil error once the payload is
// exhausted.
func (r *Reader) Read(dst []byte) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}
	avail := r.size - r.read
	if avail == 0 {
		return 0, nil
	}
	if uint64(len(dst)) > avail {
		dst = dst[:avail]
	}
	n, err := r.src.Read(dst)
	r.read += uint64(n)
	return n, err
}

// Skip advances the offset by n bytes. It reports false, leaving the
// offset unchanged, when n exceeds Remaining().
func (r *Reader) Skip(n uint64) bool {
	if n > r.size-r.read {
		return false
	}
	if _, err := r.src.Seek(int64(r.src.Tell()+n), io.SeekStart); err != nil {
		return false
	}
	r.read += n
	return true
}

// Remaining reports the unread payload bytes.
func (r *Reader) Remaining() uint64 { return r.size - r.read }

// Offset reports the current position within the payload; 0 is the first
// payload byte.
func (r *Reader) Offset() uint64 { return r.read }

// Size reports the payload size, excluding any alignment byte.
func (r *Reader) Size() uint64 { return r.size }

// ReadString reads n bytes and decodes them as a string, truncated at the
// first NUL if one is present. It fails when fewer than n bytes remain.
func (r *Reader) ReadString(n uint64) (string, error) {
	buf := make([]byte, n)
	got, err := r.Read(buf)
	if err != nil {
		return "", err
	}
	if uint64(got) != n {
		return "", fmt.Errorf("%w: string of %d bytes at payload offset %d: got %d",
			chunkio.ErrShortRead, n, r.read-uint64(got), got)
	}
	if i := bytes.IndexByte(buf, 0); i >= 0 {
		buf = buf[:i]
	}
	return string(buf), nil
}

// ReadFourCC reads four bytes as a FourCC.
func (r *Reader) ReadFourCC() (fourcc.FourCC, error) {
	var b [4]byte
	if err := r.readFull(b[:]); err != nil {
		return fourcc.FourCC{}, err
	}
	return fourcc.FourCC(b), nil
}

// ReadUint16 reads a 16-bit scalar in the given byte order.
func (r *Reader) ReadUint16(bo chunkio.ByteOrder) (uint16, error) {
	var b [2]byte
	if err := r.readFull(b[:]); err != nil {
		return 0, err
	}
	return bo.Uint16(b[:]), nil
}

// ReadUint32 reads a 32-bit scalar in the given byte order.
func (r *Reader) ReadUint32(bo chunkio.ByteOrder) (uint32, error) {
	var b [4]byte
	if err := r.readFull(b[:]); err != nil {
		return 0, err
	}
	return bo.Uint32(b[:]), nil
}

// ReadUint64 reads a 64-bit scalar in the given byte order.
func (r *Reader) ReadUint64(bo chunkio.ByteOrder) (uint64, error) {
	var b [8]byte
	if err := r.readFull(b[:]); err != nil {
		return 0, err
	}
	return bo.Uint64(b[:]), nil
}

// ReadAll reads the remaining payload into a freshly allocated buffer.
// The buffer may be shorter than Remaining() reported beforehand when the
// source itself is truncated.
func (r *Reader) ReadAll() ([]byte, error) {
	return r.ReadBytes(r.Remaining())
}

// ReadBytes reads up to n bytes into a freshly allocated buffer, clamped
// at Remaining().
func (r *Reader) ReadBytes(n uint64) ([]byte, error) {
	if avail := r.Remaining(); n > avail {
		n = avail
	}
	buf := make([]byte, n)
	got, err := r.Read(buf)
	if err != nil {
		return nil, err
	}
	return buf[:got], nil
}

func (r *Reader) readFull(p []byte) error {
	off := r.read
	n, err := r.Read(p)
	if err != nil {
		return err
	}
	if n != len(p) {
		return fmt.Errorf("%w: scalar of %d bytes at payload offset %d: got %d",
			chunkio.ErrShortRead, len(p), off, n)
	}
	return nil
}
