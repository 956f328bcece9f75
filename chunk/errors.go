// SPDX-License-Identifier: EPL-2.0

package chunk

import (
	"errors"
	"fmt"
)

// ErrParse is the umbrella error for malformed container structure. Every
// format-level failure wraps it, so errors.Is(err, ErrParse) distinguishes
// a bad file from a failing byte source (chunkio.ErrIO).
var ErrParse = errors.New("iff: parse error")

var (
	// ErrUnknownFormat indicates a root identifier that is neither an
	// IFF-85 container nor a RIFF-family root.
	ErrUnknownFormat = fmt.Errorf("%w: unknown container format", ErrParse)

	// ErrSizeLimit indicates a chunk whose declared size exceeds
	// Options.MaxChunkSize (strict mode only).
	ErrSizeLimit = fmt.Errorf("%w: chunk size exceeds limit", ErrParse)

	// ErrDepthLimit indicates container nesting beyond Options.MaxDepth
	// (strict mode only).
	ErrDepthLimit = fmt.Errorf("%w: container nesting too deep", ErrParse)

	// ErrTruncated indicates a container whose declared extent runs past
	// the end of the source, or a header cut short inside a container
	// (strict mode only).
	ErrTruncated = fmt.Errorf("%w: truncated container", ErrParse)

	// ErrRF64Disabled indicates an RF64 or BW64 root encountered while
	// Options.AllowRF64 is false.
	ErrRF64Disabled = fmt.Errorf("%w: RF64 support disabled", ErrParse)
)
