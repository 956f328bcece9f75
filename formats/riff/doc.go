// SPDX-License-Identifier: EPL-2.0

// Package riff parses the RIFF family of chunk container formats: RIFF
// (little-endian), RIFX (big-endian) and the 64-bit RF64/BW64 extensions.
//
// The Iterator walks chunks depth-first in source order with an explicit
// container-frame stack. Only the root and LIST chunks are containers;
// both carry a four-byte type tag. Data chunks carry a scoped
// chunk.Reader bounded to the declared payload size.
//
// # RF64 and BW64
//
// RF64 and BW64 files escape the 32-bit size field through a hidden ds64
// metadata chunk that must be the first child of the root. The iterator
// consumes it while entering the root — it never surfaces as a descriptor
// — and records the authoritative 64-bit sizes of the root container and
// the principal data chunk, plus a per-identifier FIFO of overrides.
// Whenever a later chunk's 32-bit size field reads 0xFFFFFFFF, the
// recorded sizes resolve it. The ds64 fields themselves are always
// little-endian, regardless of the file's byte order.
//
// Most callers construct iterators through the format-detecting factory in
// the root package rather than using New directly.
package riff
