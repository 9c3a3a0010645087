package backend

import (
	"errors"
	"fmt"
)

// ErrNoAPIKey is returned by provider constructors when no credential was
// supplied. Construction-time, never retried.
var ErrNoAPIKey = errors.New("backend: api key is required")

// Error is a transport, quota or malformed-payload failure from a backend.
// The core never retries these; callers may wrap stages with their own
// retry policy.
type Error struct {
	Provider string
	Op       string
	Err      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Provider, e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// SchemaError means the model's response could not be parsed into the
// requested schema. Never silently coerced into a default value.
type SchemaError struct {
	Raw string
	Err error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("response does not match schema: %v", e.Err)
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}
