package bridge

import "errors"

// Sentinel errors for category checks (spec.md §7: host errors from
// bridged calls are reported as a plain error, but callers that need to
// distinguish "library not found" from "symbol not found" can match
// against these with errors.Is).
var (
	ErrLibraryNotFound = errors.New("bridge: external library not found")
	ErrSymbolNotFound  = errors.New("bridge: external symbol not found")
	ErrUnsupportedType = errors.New("bridge: unsupported argument or result type for native call")
	ErrTooManyArgs     = errors.New("bridge: native call exceeds the supported integer/float argument count")
)
