package storage

import "fmt"

// PersistenceError reports that the task file could not be read, parsed or
// written. Op is one of "read", "parse", "validate", "encode" or "write".
type PersistenceError struct {
	Path string
	Op   string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// ValidationError is returned by Add when strict validation is enabled and a
// field is rejected. Without strict validation titles and priorities are
// accepted as given.
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}
