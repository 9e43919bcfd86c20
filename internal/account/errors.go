package account

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrBadCredentials covers both an unknown email and a wrong password so
	// that callers cannot probe which accounts exist.
	ErrBadCredentials = errors.New("bad credentials")

	// ErrNotFound is returned by repositories when no record matches.
	ErrNotFound = errors.New("account not found")

	// ErrEmailTaken is returned by repositories on a duplicate email within a
	// role's record set.
	ErrEmailTaken = errors.New("email already taken")
)

// ValidationError carries one message per rejected field.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return fmt.Sprintf("validation failed: %s", strings.Join(names, ", "))
}

func emailTakenValidation() *ValidationError {
	return &ValidationError{Fields: map[string]string{
		"email": "email is already registered",
	}}
}
