package bgen

import "github.com/mewkiz/bgen/internal/errs"

// Kind classifies a failure by cause; see IsKind.
type Kind = errs.Kind

// The error kinds named in the container format's error taxonomy.
const (
	KindIO          = errs.IO
	KindCorrupt     = errs.Corrupt
	KindUnsupported = errs.Unsupported
	KindFilter      = errs.Filter
	KindConfig      = errs.Config
)

// IsKind reports whether err (or something it wraps) carries the given
// Kind. Useful at the CLI boundary to choose an exit code or message.
func IsKind(err error, k Kind) bool { return errs.Is(err, k) }
