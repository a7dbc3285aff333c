package board

import "errors"

// Failure kinds. Every error returned by the Service that is not an
// infrastructure failure matches exactly one of these with errors.Is.
var (
	ErrNotFound         = errors.New("not found")
	ErrForbidden        = errors.New("forbidden")
	ErrInvalidOperation = errors.New("invalid operation")
	ErrConflict         = errors.New("conflict")
)

var (
	// ErrPostNotFound is returned when a post id does not resolve
	ErrPostNotFound = newError(ErrNotFound, "post not found")

	// ErrCommentNotFound is returned when a comment id does not resolve,
	// or resolves to a comment of a different post
	ErrCommentNotFound = newError(ErrNotFound, "comment not found")

	// ErrNotPostOwner is returned when the acting member does not own the post
	ErrNotPostOwner = newError(ErrForbidden, "only the post author can do this")

	// ErrNotCommentOwner is returned when the acting member does not own the comment
	ErrNotCommentOwner = newError(ErrForbidden, "only the comment author can do this")

	// ErrNotQnAPost is returned when selecting an answer on a non-QNA post
	ErrNotQnAPost = newError(ErrInvalidOperation, "only QNA posts can have a selected answer")

	// ErrAnswerAlreadySelected is returned when the post already has a selected answer
	ErrAnswerAlreadySelected = newError(ErrConflict, "an answer has already been selected")

	// ErrVoteConflict is returned when a concurrent vote on the same (post, member) won the race
	ErrVoteConflict = newError(ErrConflict, "vote was modified concurrently")
)

type boardError struct {
	kind error
	msg  string
}

func newError(kind error, msg string) error {
	return &boardError{kind: kind, msg: msg}
}

func (e *boardError) Error() string { return e.msg }

func (e *boardError) Unwrap() error { return e.kind }

// IsNotFound checks if an error is a "not found" error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsForbidden checks if an error is an ownership failure
func IsForbidden(err error) bool {
	return errors.Is(err, ErrForbidden)
}

// IsInvalidOperation checks if an error is an unsupported-operation failure
func IsInvalidOperation(err error) bool {
	return errors.Is(err, ErrInvalidOperation)
}

// IsConflict checks if an error is an invariant conflict
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}
