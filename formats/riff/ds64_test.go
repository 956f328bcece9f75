// SPDX-License-Identifier: EPL-2.0

package riff

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/devbrain/libiff/chunkio"
	"github.com/devbrain/libiff/fourcc"
	"github.com/devbrain/libiff/internal/ifftest"
)

// ds64Payload builds just the payload of a ds64 chunk.
func ds64Payload(riffSize, dataSize, sampleCount uint64, table ...ifftest.TableEntry) []byte {
	buf := new(bytes.Buffer)
	binary.Write(buf, binary.LittleEndian, riffSize)
	binary.Write(buf, binary.LittleEndian, dataSize)
	binary.Write(buf, binary.LittleEndian, sampleCount)
	if len(table) > 0 {
		binary.Write(buf, binary.LittleEndian, uint32(len(table)))
		for _, e := range table {
			id := fourcc.FromString(e.ID)
			buf.Write(id[:])
			binary.Write(buf, binary.LittleEndian, e.Size)
		}
	}
	return buf.Bytes()
}

func parsePayload(t *testing.T, payload []byte) (*ds64State, error) {
	t.Helper()

	src, err := chunkio.NewReader(bytes.NewReader(payload))
	if err != nil {
		t.Fatal(err)
	}
	var d ds64State
	return &d, d.parse(src, 0, uint64(len(payload)))
}

func TestDS64_FixedFields(t *testing.T) {
	t.Parallel()

	d, err := parsePayload(t, ds64Payload(5000, 4000, 123))
	if err != nil {
		t.Fatalf("parse() error = %v", err)
	}
	if d.riffSize != 5000 || d.dataSize != 4000 || d.sampleCount != 123 {
		t.Errorf("fields = (%d, %d, %d), want (5000, 4000, 123)",
			d.riffSize, d.dataSize, d.sampleCount)
	}
	if !d.parsed {
		t.Error("parsed flag not set")
	}
}

func TestDS64_TooSmall(t *testing.T) {
	t.Parallel()

	_, err := parsePayload(t, make([]byte, 23))
	if !errors.Is(err, ErrInvalidDS64) {
		t.Fatalf("parse() error = %v, want ErrInvalidDS64", err)
	}
}

func TestDS64_Resolve(t *testing.T) {
	t.Parallel()

	d, err := parsePayload(t, ds64Payload(5000, 0, 0,
		ifftest.TableEntry{ID: "ovr1", Size: 111},
		ifftest.TableEntry{ID: "ovr1", Size: 222},
		ifftest.TableEntry{ID: "data", Size: 4000},
	))
	if err != nil {
		t.Fatalf("parse() error = %v", err)
	}

	if got := d.resolve(fourcc.RF64, 0xffffffff); got != 5000 {
		t.Errorf("root override = %d, want 5000", got)
	}
	// dataSize is zero, so data falls back to the FIFO.
	if got := d.resolve(fourcc.Data, 0xffffffff); got != 4000 {
		t.Errorf("data override = %d, want 4000 from the table", got)
	}
	// Same identifier consumes the FIFO in source order.
	if got := d.resolve(fourcc.FromString("ovr1"), 0xffffffff); got != 111 {
		t.Errorf("first ovr1 = %d, want 111", got)
	}
	if got := d.resolve(fourcc.FromString("ovr1"), 0xffffffff); got != 222 {
		t.Errorf("second ovr1 = %d, want 222", got)
	}
	// Exhausted FIFO keeps the sentinel.
	if got := d.resolve(fourcc.FromString("ovr1"), 0xffffffff); got != 0xffffffff {
		t.Errorf("exhausted ovr1 = %d, want the sentinel kept", got)
	}
	// Unknown identifiers keep the sentinel too.
	if got := d.resolve(fourcc.FromString("none"), 0xffffffff); got != 0xffffffff {
		t.Errorf("unknown id = %d, want the sentinel kept", got)
	}
}

func TestDS64_AuthoritativeDataPreferred(t *testing.T) {
	t.Parallel()

	d, err := parsePayload(t, ds64Payload(5000, 4000, 0,
		ifftest.TableEntry{ID: "data", Size: 9999},
	))
	if err != nil {
		t.Fatalf("parse() error = %v", err)
	}
	// The non-zero fixed field wins over the table.
	if got := d.resolve(fourcc.Data, 0xffffffff); got != 4000 {
		t.Errorf("data override = %d, want the authoritative 4000", got)
	}
}

func TestDS64_NonSentinelSizesUntouched(t *testing.T) {
	t.Parallel()

	d, err := parsePayload(t, ds64Payload(5000, 4000, 0))
	if err != nil {
		t.Fatalf("parse() error = %v", err)
	}
	if got := d.resolve(fourcc.Data, 1234); got != 1234 {
		t.Errorf("resolve of ordinary size = %d, want 1234", got)
	}
}
