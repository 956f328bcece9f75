// SPDX-License-Identifier: EPL-2.0

package riff

import (
	"fmt"

	"github.com/devbrain/libiff/chunk"
)

var (
	// ErrMissingDS64 indicates an RF64/BW64 root whose first chunk is not
	// the mandatory ds64 metadata chunk.
	ErrMissingDS64 = fmt.Errorf("%w: RF64/BW64 root without leading ds64 chunk", chunk.ErrParse)

	// ErrInvalidDS64 indicates a ds64 chunk smaller than its 24-byte
	// fixed fields, or one whose declared table count cannot fit inside
	// its own size.
	ErrInvalidDS64 = fmt.Errorf("%w: invalid ds64 chunk", chunk.ErrParse)
)
