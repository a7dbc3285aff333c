package members

import (
	"errors"
	"fmt"
)

var (
	// ErrMemberNotFound is returned when a member lookup finds no matching record
	ErrMemberNotFound = errors.New("member not found")

	// ErrEmailAlreadyTaken is returned when provisioning a member with an email in use
	ErrEmailAlreadyTaken = errors.New("email already taken")
)

// InvalidMemberError reports a malformed member provisioning request
type InvalidMemberError struct {
	Field  string
	Reason string
}

func (e *InvalidMemberError) Error() string {
	return fmt.Sprintf("invalid member %s: %s", e.Field, e.Reason)
}
