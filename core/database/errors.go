package database

import "fmt"

// ConnectionError reports that the backing store is absent or unreachable.
// Callers match it with errors.As instead of inspecting driver errors.
type ConnectionError struct {
	Driver string
	Err    error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("%s store unavailable: %v", e.Driver, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}
