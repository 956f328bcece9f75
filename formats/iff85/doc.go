// SPDX-License-Identifier: EPL-2.0

// Package iff85 parses the original big-endian IFF-85 container format
// (EA IFF 85: FORM, LIST, CAT and PROP containers).
//
// The Iterator walks chunks depth-first in source order, maintaining an
// explicit container-frame stack rather than recursing, so nesting depth
// is bounded by Options.MaxDepth and never by the call stack. Container
// chunks are yielded as descriptors without readers; data chunks carry a
// scoped chunk.Reader bounded to the declared payload size.
//
// PROP containers are surfaced structurally only: when a LIST's first
// child is a PROP, the LIST frame is flagged and descriptors inside it
// report InListWithProps, but no PROP defaults are merged into sibling
// FORMs. Default inheritance is a payload-level concern left to callers.
//
// Most callers construct iterators through the format-detecting factory in
// the root package rather than using New directly.
package iff85
