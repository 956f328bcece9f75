// SPDX-License-Identifier: EPL-2.0

package iff

import (
	"testing"

	"github.com/devbrain/libiff/chunk"
	"github.com/devbrain/libiff/fourcc"
)

func testEvent(id string, form, container string) *Event {
	ev := &Event{
		Type:   EventBegin,
		Header: &chunk.Header{ID: fourcc.FromString(id)},
	}
	if form != "" {
		ev.Form, ev.HasForm = fourcc.FromString(form), true
	}
	if container != "" {
		ev.Container, ev.HasContainer = fourcc.FromString(container), true
	}
	return ev
}

func TestRegistry_RegistrationOrderWithinTier(t *testing.T) {
	t.Parallel()

	var order []int
	reg := NewHandlerRegistry()
	id := fourcc.FromString("fmt ")
	for i := 1; i <= 3; i++ {
		n := i
		reg.OnChunk(id, func(ev *Event) { order = append(order, n) })
	}

	reg.Emit(testEvent("fmt ", "", ""))

	if len(order) != 3 || order[0] != 1 || order[1] != 2 || order[2] != 3 {
		t.Errorf("order = %v, want [1 2 3]", order)
	}
}

func TestRegistry_ScopedHandlersNeedMatchingContext(t *testing.T) {
	t.Parallel()

	reg := NewHandlerRegistry()
	var fired []string
	reg.OnChunkInForm(fourcc.FromString("WAVE"), fourcc.Data, func(ev *Event) {
		fired = append(fired, "form")
	})
	reg.OnChunkInContainer(fourcc.LIST, fourcc.Data, func(ev *Event) {
		fired = append(fired, "container")
	})

	// No context at all: neither scoped handler fires.
	reg.Emit(testEvent("data", "", ""))
	if len(fired) != 0 {
		t.Fatalf("fired = %v, want none without context", fired)
	}

	// Wrong form type: still nothing.
	reg.Emit(testEvent("data", "AIFF", ""))
	if len(fired) != 0 {
		t.Fatalf("fired = %v, want none for a different form", fired)
	}

	// Matching form only.
	reg.Emit(testEvent("data", "WAVE", ""))
	if len(fired) != 1 || fired[0] != "form" {
		t.Fatalf("fired = %v, want [form]", fired)
	}

	// Matching both.
	fired = nil
	reg.Emit(testEvent("data", "WAVE", "LIST"))
	if len(fired) != 2 || fired[0] != "form" || fired[1] != "container" {
		t.Fatalf("fired = %v, want [form container]", fired)
	}
}

func TestRegistry_KeysCompareByBytes(t *testing.T) {
	t.Parallel()

	reg := NewHandlerRegistry()
	hits := 0
	// Register with a FourCC built from a word; match one built from a
	// string. Both must hash and compare over the same four bytes.
	reg.OnChunk(fourcc.FromUint32(fourcc.FromString("fmt ").Uint32()), func(ev *Event) {
		hits++
	})
	reg.Emit(testEvent("fmt ", "", ""))
	if hits != 1 {
		t.Errorf("hits = %d, want 1", hits)
	}
}

func TestRegistry_UnmatchedChunkIsSilent(t *testing.T) {
	t.Parallel()

	reg := NewHandlerRegistry()
	reg.OnChunk(fourcc.Data, func(ev *Event) {
		t.Error("handler for data must not fire for fmt")
	})
	reg.Emit(testEvent("fmt ", "WAVE", "LIST"))
}
