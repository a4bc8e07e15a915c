package sat

import "fmt"

// InputError reports a malformed problem definition: a clause that refers
// to a variable index that was never registered, or similar caller misuse
// of the public API. It is always recoverable: the solver's state is left
// unchanged and the caller may retry with corrected input.
type InputError struct {
	Op  string
	Msg string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("sat: %s: %s", e.Op, e.Msg)
}

// CapacityExceededError reports that an internal structure hit a hard
// architectural limit, such as the number of variables the dense
// conflict-set matrix can address. Unlike InputError this is not a mistake
// in the caller's problem, just a problem too large for this solver's
// fixed-size internals.
type CapacityExceededError struct {
	Component string
	Limit     int
}

func (e *CapacityExceededError) Error() string {
	return fmt.Sprintf("sat: %s: capacity exceeded (limit %d)", e.Component, e.Limit)
}

// invariant panics on violation of an internal invariant: a bug in the
// solver itself, never a consequence of caller input, and therefore never
// worth returning as an error.
func invariant(cond bool, format string, args ...any) {
	if !cond {
		panic("sat: internal invariant violated: " + fmt.Sprintf(format, args...))
	}
}
