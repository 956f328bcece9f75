// SPDX-License-Identifier: EPL-2.0

// Package iff parses the IFF/RIFF family of chunk-structured binary
// container formats: the original big-endian IFF-85 (FORM, LIST, CAT,
// PROP), little-endian RIFF and its 64-bit RF64/BW64 extensions, and the
// big-endian RIFX variant. WAV, AIFF, AVI, ILBM and BWF are concrete
// applications of these containers; this module parses the container
// layer and exposes chunks to callers who interpret the payloads.
//
// # Supported Formats
//
// The format is auto-detected from the first four bytes of the source:
//   - FORM / LIST / CAT  — IFF-85, big-endian sizes
//   - RIFF               — little-endian sizes
//   - RIFX               — big-endian sizes
//   - RF64 / BW64        — little-endian with the hidden ds64 64-bit
//     size-override protocol
//
// # Quick Start
//
// The simplest way to walk a file is ForEachChunk:
//
//	f, _ := os.Open("audio.wav")
//	err := iff.ForEachChunk(f, func(info *chunk.Info) error {
//	    fmt.Printf("%v %d bytes at depth %d\n",
//	        info.Header.ID, info.Header.Size, info.Depth)
//	    return nil
//	}, nil)
//
// Data chunks carry a scoped reader bounded to the declared payload size;
// container chunks are traversed but not passed to the callback.
//
// # Iterating Manually
//
// GetIterator returns a depth-first iterator for the detected format:
//
//	it, err := iff.GetIterator(f, nil)
//	for it.HasNext() {
//	    cur := it.Current()
//	    // inspect cur.Header, cur.Depth, cur.Form, cur.Reader
//	    if err := it.Advance(); err != nil {
//	        return err
//	    }
//	}
//
// The iterator owns the cursor of the source for its lifetime and is
// forward-only; a descriptor and its reader are valid until the next
// Advance. Unconsumed payload bytes are skipped automatically.
//
// # Event-Driven Parsing
//
// Parse dispatches begin/end events to handlers registered in a
// HandlerRegistry, with three-tier precedence: handlers scoped to the
// current FORM type fire first, then handlers scoped to the enclosing
// container kind, then global handlers:
//
//	reg := iff.NewHandlerRegistry()
//	reg.OnChunkInForm(fourcc.FromString("WAVE"), fourcc.FromString("fmt "),
//	    func(ev *iff.Event) {
//	        if ev.Type == iff.EventBegin {
//	            tag, _ := ev.Reader.ReadUint16(chunkio.LittleEndian)
//	            _ = tag
//	        }
//	    })
//	err := iff.Parse(f, reg, nil)
//
// # Hardening
//
// chunk.Options caps chunk sizes and nesting depth and selects strict or
// lenient handling of malformed files; lenient mode reports recoveries
// through a warning callback. Passing a nil options pointer selects the
// documented defaults.
//
// # Sources
//
// Any io.ReadSeeker works as input. Detection peeks four bytes and seeks
// back to the starting offset; that construction-time rewind is the only
// backward seek the parser ever performs.
package iff
