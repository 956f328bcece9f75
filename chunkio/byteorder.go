// SPDX-License-Identifier: EPL-2.0

package chunkio

import (
	"encoding/binary"
	"math"
)

// ByteOrder selects the byte order multi-byte scalars are decoded with.
type ByteOrder int

const (
	// LittleEndian is used by RIFF, RF64 and BW64.
	LittleEndian ByteOrder = iota
	// BigEndian is used by IFF-85 and RIFX.
	BigEndian
)

func (bo ByteOrder) String() string {
	if bo == BigEndian {
		return "big-endian"
	}
	return "little-endian"
}

// order returns the encoding/binary implementation for bo.
func (bo ByteOrder) order() binary.ByteOrder {
	if bo == BigEndian {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// Uint16 decodes the first two bytes of b.
func (bo ByteOrder) Uint16(b []byte) uint16 { return bo.order().Uint16(b) }

// Uint32 decodes the first four bytes of b.
func (bo ByteOrder) Uint32(b []byte) uint32 { return bo.order().Uint32(b) }

// Uint64 decodes the first eight bytes of b.
func (bo ByteOrder) Uint64(b []byte) uint64 { return bo.order().Uint64(b) }

// PutUint16 encodes v into the first two bytes of b.
func (bo ByteOrder) PutUint16(b []byte, v uint16) { bo.order().PutUint16(b, v) }

// PutUint32 encodes v into the first four bytes of b.
func (bo ByteOrder) PutUint32(b []byte, v uint32) { bo.order().PutUint32(b, v) }

// PutUint64 encodes v into the first eight bytes of b.
func (bo ByteOrder) PutUint64(b []byte, v uint64) { bo.order().PutUint64(b, v) }

// Float32 decodes an IEEE 754 single from the first four bytes of b.
func (bo ByteOrder) Float32(b []byte) float32 {
	return math.Float32frombits(bo.Uint32(b))
}

// Float64 decodes an IEEE 754 double from the first eight bytes of b.
func (bo ByteOrder) Float64(b []byte) float64 {
	return math.Float64frombits(bo.Uint64(b))
}

// NativeOrder reports the byte order of the host, detected at runtime
// through the encoding/binary native view. Parsing never depends on it;
// it exists for callers that hand payload buffers to native-order
// consumers.
func NativeOrder() ByteOrder {
	var b [2]byte
	binary.NativeEndian.PutUint16(b[:], 1)
	if b[0] == 1 {
		return LittleEndian
	}
	return BigEndian
}

// IsNative reports whether bo matches the host byte order.
func (bo ByteOrder) IsNative() bool {
	return bo == NativeOrder()
}

// Swap16 reverses the byte order of x.
func Swap16(x uint16) uint16 {
	return x<<8 | x>>8
}

// Swap32 reverses the byte order of x.
func Swap32(x uint32) uint32 {
	return x<<24 | x<<8&0x00ff0000 | x>>8&0x0000ff00 | x>>24
}

// Swap64 reverses the byte order of x.
func Swap64(x uint64) uint64 {
	return x<<56 |
		x<<40&0x00ff000000000000 |
		x<<24&0x0000ff0000000000 |
		x<<8&0x000000ff00000000 |
		x>>8&0x00000000ff000000 |
		x>>24&0x0000000000ff0000 |
		x>>40&0x000000000000ff00 |
		x>>56
}

// SwapFloat32 reverses the byte order of the IEEE 754 representation of x.
func SwapFloat32(x float32) float32 {
	return math.Float32frombits(Swap32(math.Float32bits(x)))
}

// SwapFloat64 reverses the byte order of the IEEE 754 representation of x.
func SwapFloat64(x float64) float64 {
	return math.Float64frombits(Swap64(math.Float64bits(x)))
}
