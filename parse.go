// SPDX-License-Identifier: EPL-2.0

package iff

import (
	"io"

	"github.com/devbrain/libiff/chunk"
)

// ForEachChunk walks src depth-first and invokes fn on every data chunk
// descriptor. Container chunks are traversed but not passed to fn. A
// non-nil error from fn stops the iteration and is returned. opts may be
// nil for the defaults.
func ForEachChunk(src io.ReadSeeker, fn func(*chunk.Info) error, opts *chunk.Options) error {
	it, err := GetIterator(src, opts)
	if err != nil {
		return err
	}

	for it.HasNext() {
		cur := it.Current()
		if !cur.Header.IsContainer {
			if err := fn(cur); err != nil {
				return err
			}
		}
		if err := it.Advance(); err != nil {
			return err
		}
	}
	return nil
}

// Parse walks src depth-first and dispatches begin/end events for every
// data chunk to the handlers registered in reg. For each chunk the begin
// event is delivered strictly before the end event, and both before any
// later chunk's begin. Container chunks emit no events; they only shape
// the FORM and container context their children's events carry. opts may
// be nil for the defaults.
func Parse(src io.ReadSeeker, reg *HandlerRegistry, opts *chunk.Options) error {
	it, err := GetIterator(src, opts)
	if err != nil {
		return err
	}

	for it.HasNext() {
		cur := it.Current()
		if cur.Header.IsContainer {
			if err := it.Advance(); err != nil {
				return err
			}
			continue
		}

		ev := Event{
			Type:         EventBegin,
			Header:       &cur.Header,
			Reader:       cur.Reader,
			Form:         cur.Form,
			HasForm:      cur.HasForm,
			Container:    cur.Container,
			HasContainer: cur.HasContainer,
			Depth:        cur.Depth,
		}
		reg.Emit(&ev)

		ev.Type = EventEnd
		ev.Reader = nil
		reg.Emit(&ev)

		if err := it.Advance(); err != nil {
			return err
		}
	}
	return nil
}
