// SPDX-License-Identifier: EPL-2.0

package riff

import (
	"fmt"

	"github.com/devbrain/libiff/chunkio"
	"github.com/devbrain/libiff/fourcc"
)

// ds64State holds the 64-bit size overrides of an RF64/BW64 file. The
// fixed fields carry the authoritative sizes of the root container and the
// principal data chunk; the optional table queues further per-identifier
// overrides, consumed in source order.
type ds64State struct {
	parsed      bool
	riffSize    uint64
	dataSize    uint64
	sampleCount uint64
	overrides   map[fourcc.FourCC][]uint64
}

// parse reads the ds64 payload. start is the offset of the chunk header,
// size its declared payload size; the cursor sits at the first payload
// byte. All fields are little-endian regardless of the file's byte order.
func (d *ds64State) parse(src chunkio.Source, start, size uint64) error {
	if size < 24 {
		return fmt.Errorf("%w: at offset %d: size %d is below the 24-byte fixed fields",
			ErrInvalidDS64, start, size)
	}

	var err error
	if d.riffSize, err = chunkio.ReadUint64(src, chunkio.LittleEndian); err != nil {
		return fmt.Errorf("%w: at offset %d: %v", ErrInvalidDS64, start, err)
	}
	if d.dataSize, err = chunkio.ReadUint64(src, chunkio.LittleEndian); err != nil {
		return fmt.Errorf("%w: at offset %d: %v", ErrInvalidDS64, start, err)
	}
	if d.sampleCount, err = chunkio.ReadUint64(src, chunkio.LittleEndian); err != nil {
		return fmt.Errorf("%w: at offset %d: %v", ErrInvalidDS64, start, err)
	}

	if size >= 28 {
		count, err := chunkio.ReadUint32(src, chunkio.LittleEndian)
		if err != nil {
			return fmt.Errorf("%w: table count at offset %d: %v", ErrInvalidDS64, start, err)
		}
		// Each entry is a FourCC plus a 64-bit size.
		need := 24 + 4 + uint64(count)*12
		if size < need {
			return fmt.Errorf("%w: at offset %d: %d table entries need %d bytes, chunk holds %d",
				ErrInvalidDS64, start, count, need, size)
		}
		for i := uint32(0); i < count; i++ {
			id, err := chunkio.ReadFourCC(src)
			if err != nil {
				return fmt.Errorf("%w: table entry %d at offset %d: %v", ErrInvalidDS64, i, start, err)
			}
			sz, err := chunkio.ReadUint64(src, chunkio.LittleEndian)
			if err != nil {
				return fmt.Errorf("%w: table entry %d at offset %d: %v", ErrInvalidDS64, i, start, err)
			}
			if d.overrides == nil {
				d.overrides = make(map[fourcc.FourCC][]uint64)
			}
			d.overrides[id] = append(d.overrides[id], sz)
		}
	}

	d.parsed = true
	return nil
}

// resolve maps a sentinel 32-bit size onto its 64-bit override: the
// authoritative root size for root identifiers, the authoritative data
// size for a data chunk when non-zero, otherwise the next queued override
// for the identifier. Without a match the sentinel value is kept.
func (d *ds64State) resolve(id fourcc.FourCC, size32 uint32) uint64 {
	if !d.parsed || size32 != sizeSentinel {
		return uint64(size32)
	}
	if id.IsRIFFRoot() {
		return d.riffSize
	}
	if id == fourcc.Data && d.dataSize > 0 {
		return d.dataSize
	}
	if q := d.overrides[id]; len(q) > 0 {
		v := q[0]
		d.overrides[id] = q[1:]
		return v
	}
	return uint64(size32)
}
