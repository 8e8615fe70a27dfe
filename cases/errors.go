package cases

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ecovigia/wildlife-case-api/models"
)

// ValidationError carries the full field->message map for a rejected
// draft. It is returned, never panicked, and lists every violation.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return fmt.Sprintf("draft validation failed: %s", strings.Join(keys, ", "))
}

// NotFoundError indicates the referenced case id does not exist
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("case %s not found", e.ID)
}

// PersistenceError indicates the store was unreachable or rejected a
// write. Callers may retry; the engine never does.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("store %s failed: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// TimeoutError indicates a store call exceeded its bounded deadline
type TimeoutError struct {
	Op  string
	Err error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("store %s timed out: %v", e.Op, e.Err)
}

func (e *TimeoutError) Unwrap() error { return e.Err }

// IllegalTransitionError indicates a status change that violates the
// lifecycle state machine
type IllegalTransitionError struct {
	From models.ProcessStatus
	To   models.ProcessStatus
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("illegal status transition %s -> %s", e.From, e.To)
}

// ConflictError indicates the updatedAt precondition on a mutation did
// not match, i.e. the case changed since the caller last read it
type ConflictError struct {
	ID string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("case %s was modified concurrently", e.ID)
}
