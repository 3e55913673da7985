package task

import "fmt"

// ValidationError reports rejected input. No change was made.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NotFoundError reports a reference that matches no task.
type NotFoundError struct {
	Ref    string
	Reason string // optional detail, e.g. an ambiguous prefix
}

func (e *NotFoundError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("task not found: %s (%s)", e.Ref, e.Reason)
	}
	return fmt.Sprintf("task not found: %s", e.Ref)
}

// PersistenceError reports a storage failure. When returned from a mutating
// operation the change has been applied in memory but may not survive a
// restart.
type PersistenceError struct {
	Op  string // "load" or "save"
	Key string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Key, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func emptyTextError() error {
	return &ValidationError{Field: "text", Reason: "must not be empty"}
}
