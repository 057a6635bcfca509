package ir

import "strconv"

// Local identifies an SSA-form local variable within the body of a method.
type Local uint64

// String returns the local's textual representation, e.g. "%12".
func (l Local) String() string {
	return "%" + strconv.FormatUint(uint64(l), 10)
}
