// SPDX-License-Identifier: EPL-2.0

// Package ifftest builds binary IFF/RIFF fixtures for tests. Builders
// return raw byte slices that compose with Concat, so a test can assemble
// a whole file in a few lines without hand-counting sizes.
package ifftest

import (
	"bytes"
	"encoding/binary"
)

// SizeSentinel is the 32-bit size value RF64/BW64 files use to defer to
// the ds64 override table.
const SizeSentinel = 0xffffffff

// id4 pads id with spaces to four bytes.
func id4(id string) []byte {
	b := []byte{' ', ' ', ' ', ' '}
	copy(b, id)
	return b
}

// Chunk builds a data chunk: header, payload, and the alignment byte when
// the payload size is odd.
func Chunk(bo binary.ByteOrder, id string, payload []byte) []byte {
	buf := new(bytes.Buffer)
	buf.Write(id4(id))
	binary.Write(buf, bo, uint32(len(payload)))
	buf.Write(payload)
	if len(payload)%2 != 0 {
		buf.WriteByte(0)
	}
	return buf.Bytes()
}

// RawChunk builds a chunk with an explicit size field, independent of the
// actual payload length. Tests use it for sentinel sizes and deliberately
// broken declarations. No alignment byte is appended.
func RawChunk(bo binary.ByteOrder, id string, size uint32, payload []byte) []byte {
	buf := new(bytes.Buffer)
	buf.Write(id4(id))
	binary.Write(buf, bo, size)
	buf.Write(payload)
	return buf.Bytes()
}

// Container builds a typed container chunk (FORM/LIST/PROP, RIFF-family
// roots, RIFF LIST): header, type tag, then the children verbatim.
func Container(bo binary.ByteOrder, id, typ string, children ...[]byte) []byte {
	body := Concat(children...)
	buf := new(bytes.Buffer)
	buf.Write(id4(id))
	binary.Write(buf, bo, uint32(4+len(body)))
	buf.Write(id4(typ))
	buf.Write(body)
	if len(body)%2 != 0 {
		buf.WriteByte(0)
	}
	return buf.Bytes()
}

// Cat builds an IFF-85 CAT container: big-endian, no type tag, children
// concatenated directly after the header.
func Cat(children ...[]byte) []byte {
	body := Concat(children...)
	buf := new(bytes.Buffer)
	buf.Write(id4("CAT"))
	binary.Write(buf, binary.BigEndian, uint32(len(body)))
	buf.Write(body)
	return buf.Bytes()
}

// TableEntry is one per-identifier override of a ds64 table.
type TableEntry struct {
	ID   string
	Size uint64
}

// DS64 builds a ds64 chunk. The fixed fields and the table are always
// little-endian. When table is empty and withCount is false, the chunk is
// the minimal 24-byte form.
func DS64(riffSize, dataSize, sampleCount uint64, withCount bool, table ...TableEntry) []byte {
	body := new(bytes.Buffer)
	binary.Write(body, binary.LittleEndian, riffSize)
	binary.Write(body, binary.LittleEndian, dataSize)
	binary.Write(body, binary.LittleEndian, sampleCount)
	if withCount || len(table) > 0 {
		binary.Write(body, binary.LittleEndian, uint32(len(table)))
		for _, e := range table {
			body.Write(id4(e.ID))
			binary.Write(body, binary.LittleEndian, e.Size)
		}
	}
	return Chunk(binary.LittleEndian, "ds64", body.Bytes())
}

// RawDS64 builds a ds64 chunk from a raw payload, for validation tests
// that need undersized or self-contradicting chunks.
func RawDS64(payload []byte) []byte {
	return Chunk(binary.LittleEndian, "ds64", payload)
}

// Concat joins fixture fragments.
func Concat(parts ...[]byte) []byte {
	buf := new(bytes.Buffer)
	for _, p := range parts {
		buf.Write(p)
	}
	return buf.Bytes()
}

// MinimalWAV is the canonical 16-byte-fmt, 4-byte-data RIFF WAVE fixture
// used across the end-to-end tests.
func MinimalWAV() []byte {
	return Container(binary.LittleEndian, "RIFF", "WAVE",
		Chunk(binary.LittleEndian, "fmt", make([]byte, 16)),
		Chunk(binary.LittleEndian, "data", []byte{0, 0, 0, 0}),
	)
}
