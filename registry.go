// SPDX-License-Identifier: EPL-2.0

package iff

import (
	"github.com/devbrain/libiff/chunk"
	"github.com/devbrain/libiff/fourcc"
)

// EventType distinguishes the two notifications emitted per data chunk.
type EventType int

const (
	// EventBegin fires before any payload consumption; the event carries
	// a reader positioned at the first payload byte.
	EventBegin EventType = iota
	// EventEnd fires after the chunk has been processed; the reader is
	// absent.
	EventEnd
)

func (t EventType) String() string {
	if t == EventEnd {
		return "end"
	}
	return "begin"
}

// Event is the notification passed to chunk handlers. The header and
// reader are valid only for the duration of the handler call.
type Event struct {
	Type   EventType
	Header *chunk.Header
	// Reader scopes the chunk payload; nil on end events.
	Reader *chunk.Reader
	// Form is the enclosing FORM-family type tag, when HasForm is set.
	Form    fourcc.FourCC
	HasForm bool
	// Container is the innermost enclosing LIST/CAT/PROP identifier,
	// when HasContainer is set.
	Container    fourcc.FourCC
	HasContainer bool
	// Depth is the chunk's nesting level.
	Depth int
}

// Handler processes chunk events.
type Handler func(ev *Event)

// scopeKey pairs a scope identifier (FORM type or container kind) with a
// chunk identifier. FourCC arrays hash by their four bytes, so handlers
// keyed by printable strings compare the way callers expect.
type scopeKey struct {
	scope fourcc.FourCC
	id    fourcc.FourCC
}

// HandlerRegistry routes chunk events to handlers with three-tier
// precedence: FORM-scoped handlers fire first, then container-scoped
// handlers, then global handlers. Within a tier, handlers fire in
// registration order; multiple handlers may share a key.
type HandlerRegistry struct {
	form      map[scopeKey][]Handler
	container map[scopeKey][]Handler
	global    map[fourcc.FourCC][]Handler
}

// NewHandlerRegistry returns an empty registry.
func NewHandlerRegistry() *HandlerRegistry {
	return &HandlerRegistry{
		form:      make(map[scopeKey][]Handler),
		container: make(map[scopeKey][]Handler),
		global:    make(map[fourcc.FourCC][]Handler),
	}
}

// OnChunkInForm registers h for chunks with identifier id inside a
// FORM-family container of type formType.
func (r *HandlerRegistry) OnChunkInForm(formType, id fourcc.FourCC, h Handler) {
	k := scopeKey{scope: formType, id: id}
	r.form[k] = append(r.form[k], h)
}

// OnChunkInContainer registers h for chunks with identifier id inside a
// container of kind containerType (LIST, CAT or PROP).
func (r *HandlerRegistry) OnChunkInContainer(containerType, id fourcc.FourCC, h Handler) {
	k := scopeKey{scope: containerType, id: id}
	r.container[k] = append(r.container[k], h)
}

// OnChunk registers h for every chunk with identifier id, regardless of
// scope.
func (r *HandlerRegistry) OnChunk(id fourcc.FourCC, h Handler) {
	r.global[id] = append(r.global[id], h)
}

// Emit dispatches ev to every matching handler: FORM-scoped first, then
// container-scoped, then global, preserving registration order within
// each tier.
func (r *HandlerRegistry) Emit(ev *Event) {
	if ev.HasForm {
		for _, h := range r.form[scopeKey{scope: ev.Form, id: ev.Header.ID}] {
			h(ev)
		}
	}
	if ev.HasContainer {
		for _, h := range r.container[scopeKey{scope: ev.Container, id: ev.Header.ID}] {
			h(ev)
		}
	}
	for _, h := range r.global[ev.Header.ID] {
		h(ev)
	}
}
