package plan

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by stores when no plan or task matches.
var ErrNotFound = errors.New("not found")

// FieldError reports a raw task field that has no numeric or typed
// interpretation and therefore cannot be repaired by normalization.
// The caller decides whether to abort plan creation or substitute.
type FieldError struct {
	Index int    // 0-based index of the offending task
	Field string // raw field name, e.g. "estimated_hours"
	Value any    // the value that could not be coerced
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("task %d: field %q: cannot interpret %v (%T)", e.Index, e.Field, e.Value, e.Value)
}
