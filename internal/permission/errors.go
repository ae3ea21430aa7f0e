package permission

import (
	"errors"
	"fmt"
)

// Errors returned by the holder store's setters/unsetters. Both are
// caller-recoverable: the caller asked for something that was already
// true (AlreadyHas) or that was never true (Lacks).
var (
	ErrAlreadyHas = errors.New("node already present")
	ErrLacks      = errors.New("node not present")
)

// invariantf panics on a violation of a core invariant — a programmer
// error, never a recoverable condition. Comparator inconsistency and
// malformed nodes fall in this bucket per the error-handling design.
func invariantf(format string, args ...interface{}) {
	panic(fmt.Sprintf("permission: invariant violated: "+format, args...))
}
