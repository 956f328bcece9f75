// SPDX-License-Identifier: EPL-2.0

package chunk

// Warning categories passed to WarningFunc. The set is closed; new
// categories may be added but existing ones never change meaning.
const (
	// WarnSizeLimit reports a chunk clamped to Options.MaxChunkSize.
	WarnSizeLimit = "size_limit"
	// WarnDepthLimit reports a container skipped for exceeding
	// Options.MaxDepth.
	WarnDepthLimit = "depth_limit"
	// WarnTruncated reports data cut short: a container clamped to the
	// end of the source, or frames popped after a mid-stream read failure.
	WarnTruncated = "truncated"
)

// WarningFunc receives non-fatal diagnostics in lenient mode. offset is the
// file offset where the condition was detected, category one of the Warn*
// constants.
type WarningFunc func(offset uint64, category, message string)

// Options controls parsing hardening. Use DefaultOptions as the starting
// point; passing a nil *Options to any constructor selects the defaults.
type Options struct {
	// Strict fails the parse on the first limit breach or malformed
	// structure. When false, recoverable conditions become warnings and
	// parsing continues conservatively: oversize chunks are clamped,
	// over-deep containers skipped, frames popped on mid-stream failures.
	Strict bool

	// MaxChunkSize bounds any single chunk's declared payload size.
	// Zero selects the default of 1<<32 bytes.
	MaxChunkSize uint64

	// MaxDepth bounds container nesting. Zero selects the default of 64.
	MaxDepth int

	// AllowRF64 permits RF64/BW64 roots. DefaultOptions enables it;
	// when false such roots fail with ErrRF64Disabled.
	AllowRF64 bool

	// OnWarning, if set, receives lenient-mode diagnostics. Unset
	// warnings are dropped.
	OnWarning WarningFunc
}

// DefaultOptions returns the documented defaults: strict parsing, a 4 GiB
// chunk size cap, 64 levels of nesting, RF64 allowed.
func DefaultOptions() Options {
	return Options{
		Strict:       true,
		MaxChunkSize: 1 << 32,
		MaxDepth:     64,
		AllowRF64:    true,
	}
}

// Normalize resolves a possibly-nil Options pointer into a concrete value,
// filling zero limits with their defaults.
func Normalize(opts *Options) Options {
	if opts == nil {
		return DefaultOptions()
	}
	o := *opts
	if o.MaxChunkSize == 0 {
		o.MaxChunkSize = 1 << 32
	}
	if o.MaxDepth == 0 {
		o.MaxDepth = 64
	}
	return o
}

// Warn invokes the warning callback if one is set.
func (o *Options) Warn(offset uint64, category, message string) {
	if o.OnWarning != nil {
		o.OnWarning(offset, category, message)
	}
}
