// SPDX-License-Identifier: EPL-2.0

package chunkio

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/devbrain/libiff/fourcc"
)

func newTestReader(t *testing.T, data []byte) *Reader {
	t.Helper()

	r, err := NewReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("NewReader() error = %v", err)
	}
	return r
}

func TestReader_ReadAndTell(t *testing.T) {
	t.Parallel()

	r := newTestReader(t, []byte("abcdefgh"))

	buf := make([]byte, 3)
	n, err := r.Read(buf)
	if err != nil || n != 3 {
		t.Fatalf("Read() = (%d, %v), want (3, nil)", n, err)
	}
	if string(buf) != "abc" {
		t.Errorf("Read() content = %q, want %q", buf, "abc")
	}
	if r.Tell() != 3 {
		t.Errorf("Tell() = %d, want 3", r.Tell())
	}
	if r.Size() != 8 {
		t.Errorf("Size() = %d, want 8", r.Size())
	}
}

func TestReader_ShortReadAtEnd(t *testing.T) {
	t.Parallel()

	r := newTestReader(t, []byte("abc"))

	buf := make([]byte, 10)
	n, err := r.Read(buf)
	if err != nil {
		t.Fatalf("Read() error = %v, want nil", err)
	}
	if n != 3 {
		t.Errorf("Read() = %d, want 3", n)
	}

	// Exhausted source keeps returning zero without error.
	n, err = r.Read(buf)
	if n != 0 || err != nil {
		t.Errorf("Read() at EOF = (%d, %v), want (0, nil)", n, err)
	}
}

func TestReader_Seek(t *testing.T) {
	t.Parallel()

	r := newTestReader(t, []byte("abcdefgh"))

	if _, err := r.Seek(4, io.SeekStart); err != nil {
		t.Fatalf("Seek(4, start) error = %v", err)
	}
	if r.Tell() != 4 {
		t.Errorf("Tell() = %d, want 4", r.Tell())
	}

	if _, err := r.Seek(2, io.SeekCurrent); err != nil {
		t.Fatalf("Seek(2, current) error = %v", err)
	}
	if r.Tell() != 6 {
		t.Errorf("Tell() = %d, want 6", r.Tell())
	}

	if _, err := r.Seek(-3, io.SeekEnd); err != nil {
		t.Fatalf("Seek(-3, end) error = %v", err)
	}
	if r.Tell() != 5 {
		t.Errorf("Tell() = %d, want 5", r.Tell())
	}

	// Seeking exactly to the end is allowed.
	if _, err := r.Seek(0, io.SeekEnd); err != nil {
		t.Fatalf("Seek(0, end) error = %v", err)
	}
}

func TestReader_SeekPastEnd(t *testing.T) {
	t.Parallel()

	r := newTestReader(t, []byte("abcd"))
	if _, err := r.Seek(1, io.SeekStart); err != nil {
		t.Fatal(err)
	}

	_, err := r.Seek(100, io.SeekStart)
	if !errors.Is(err, ErrSeekOutOfRange) {
		t.Fatalf("Seek(100) error = %v, want ErrSeekOutOfRange", err)
	}
	if !errors.Is(err, ErrIO) {
		t.Error("seek error should classify as an I/O error")
	}

	// Cursor unchanged: the next read still delivers from offset 1.
	buf := make([]byte, 1)
	if n, _ := r.Read(buf); n != 1 || buf[0] != 'b' {
		t.Errorf("read after failed seek = %q, want %q", buf[:n], "b")
	}

	if _, err := r.Seek(-1, io.SeekStart); !errors.Is(err, ErrSeekOutOfRange) {
		t.Errorf("Seek(-1) error = %v, want ErrSeekOutOfRange", err)
	}
	if _, err := r.Seek(0, 42); !errors.Is(err, ErrInvalidWhence) {
		t.Errorf("Seek with bad whence error = %v, want ErrInvalidWhence", err)
	}
}

func TestReader_PreservesStartOffset(t *testing.T) {
	t.Parallel()

	br := bytes.NewReader([]byte("abcdefgh"))
	if _, err := br.Seek(2, io.SeekStart); err != nil {
		t.Fatal(err)
	}

	r, err := NewReader(br)
	if err != nil {
		t.Fatal(err)
	}
	if r.Tell() != 2 {
		t.Errorf("Tell() = %d, want 2 (construction keeps the stream position)", r.Tell())
	}

	buf := make([]byte, 1)
	if n, _ := r.Read(buf); n != 1 || buf[0] != 'c' {
		t.Errorf("first read = %q, want %q", buf[:n], "c")
	}
}

func TestSubReader_Window(t *testing.T) {
	t.Parallel()

	r := newTestReader(t, []byte("abcdefghij"))
	sub := NewSubReader(r, 2, 5) // window over "cdefg"

	buf := make([]byte, 3)
	n, err := sub.Read(buf)
	if err != nil || n != 3 || string(buf) != "cde" {
		t.Fatalf("Read() = (%d, %q, %v), want (3, %q, nil)", n, buf[:n], err, "cde")
	}
	if sub.Tell() != 3 {
		t.Errorf("Tell() = %d, want 3", sub.Tell())
	}
	if sub.Remaining() != 2 {
		t.Errorf("Remaining() = %d, want 2", sub.Remaining())
	}

	// Read clamps at the window end, then returns zero without error.
	big := make([]byte, 10)
	n, err = sub.Read(big)
	if err != nil || n != 2 || string(big[:n]) != "fg" {
		t.Fatalf("Read() = (%d, %q, %v), want (2, %q, nil)", n, big[:n], err, "fg")
	}
	n, err = sub.Read(big)
	if n != 0 || err != nil {
		t.Errorf("Read() at window end = (%d, %v), want (0, nil)", n, err)
	}
}

func TestSubReader_Seek(t *testing.T) {
	t.Parallel()

	r := newTestReader(t, []byte("abcdefghij"))
	sub := NewSubReader(r, 2, 5)

	if _, err := sub.Seek(4, io.SeekStart); err != nil {
		t.Fatal(err)
	}
	buf := make([]byte, 1)
	if n, _ := sub.Read(buf); n != 1 || buf[0] != 'g' {
		t.Errorf("read after seek = %q, want %q", buf[:n], "g")
	}

	if _, err := sub.Seek(6, io.SeekStart); !errors.Is(err, ErrSeekOutOfRange) {
		t.Errorf("Seek(6) error = %v, want ErrSeekOutOfRange", err)
	}
	if _, err := sub.Seek(-1, io.SeekEnd); err != nil {
		t.Errorf("Seek(-1, end) error = %v", err)
	}
	if sub.Tell() != 4 {
		t.Errorf("Tell() = %d, want 4", sub.Tell())
	}
}

func TestSubReader_Compose(t *testing.T) {
	t.Parallel()

	r := newTestReader(t, []byte("abcdefghij"))
	outer := NewSubReader(r, 2, 6)     // "cdefgh"
	inner := NewSubReader(outer, 1, 3) // "def"

	buf := make([]byte, 10)
	n, err := inner.Read(buf)
	if err != nil || n != 3 || string(buf[:n]) != "def" {
		t.Fatalf("nested Read() = (%d, %q, %v), want (3, %q, nil)", n, buf[:n], err, "def")
	}
	if inner.Size() != 3 || inner.Start() != 1 {
		t.Errorf("inner window = (start %d, size %d), want (1, 3)", inner.Start(), inner.Size())
	}
}

func TestSubReader_IndependentOfParentCursor(t *testing.T) {
	t.Parallel()

	r := newTestReader(t, []byte("abcdefghij"))
	sub := NewSubReader(r, 4, 4)

	// Move the parent elsewhere; the subreader still reads its own window.
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		t.Fatal(err)
	}
	buf := make([]byte, 2)
	if n, _ := sub.Read(buf); n != 2 || string(buf) != "ef" {
		t.Errorf("Read() = %q, want %q", buf[:n], "ef")
	}
}

func TestReadFourCC(t *testing.T) {
	t.Parallel()

	r := newTestReader(t, []byte("FORMxyz"))
	id, err := ReadFourCC(r)
	if err != nil {
		t.Fatalf("ReadFourCC() error = %v", err)
	}
	if id != fourcc.FORM {
		t.Errorf("ReadFourCC() = %v, want FORM", id)
	}

	short := newTestReader(t, []byte("AB"))
	if _, err := ReadFourCC(short); !errors.Is(err, ErrShortRead) {
		t.Errorf("ReadFourCC() on 2 bytes error = %v, want ErrShortRead", err)
	}
}

func TestReadScalars(t *testing.T) {
	t.Parallel()

	r := newTestReader(t, []byte{0x12, 0x34, 0x56, 0x78, 0x9a, 0xbc, 0xde, 0xf0, 0x11, 0x22, 0x33, 0x44, 0x55, 0x66})

	v16, err := ReadUint16(r, BigEndian)
	if err != nil || v16 != 0x1234 {
		t.Errorf("ReadUint16 = (%#x, %v), want (0x1234, nil)", v16, err)
	}
	v32, err := ReadUint32(r, LittleEndian)
	if err != nil || v32 != 0xbc9a7856 {
		t.Errorf("ReadUint32 = (%#x, %v), want (0xbc9a7856, nil)", v32, err)
	}
	v64, err := ReadUint64(r, BigEndian)
	if err != nil || v64 != 0xdef0112233445566 {
		t.Errorf("ReadUint64 = (%#x, %v), want (0xdef0112233445566, nil)", v64, err)
	}

	if _, err := ReadUint32(r, LittleEndian); !errors.Is(err, ErrShortRead) {
		t.Errorf("ReadUint32 past end error = %v, want ErrShortRead", err)
	}
}
