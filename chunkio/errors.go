// SPDX-License-Identifier: EPL-2.0

package chunkio

import (
	"errors"
	"fmt"
)

// ErrIO is the umbrella error for byte-source failures. Every error
// returned by this package wraps it, so errors.Is(err, ErrIO) classifies a
// failure as an I/O error rather than a format error.
var ErrIO = errors.New("chunkio: I/O error")

var (
	// ErrShortRead indicates a short read at a position where complete
	// data was required, such as a chunk header or a scalar field.
	ErrShortRead = fmt.Errorf("%w: short read", ErrIO)

	// ErrSeekOutOfRange indicates a seek before the start or past the end
	// of the source. The cursor is left unchanged.
	ErrSeekOutOfRange = fmt.Errorf("%w: seek out of range", ErrIO)

	// ErrInvalidWhence indicates a whence value other than io.SeekStart,
	// io.SeekCurrent or io.SeekEnd.
	ErrInvalidWhence = fmt.Errorf("%w: invalid whence", ErrIO)
)
