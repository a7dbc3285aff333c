package comments

import "errors"

var (
	// ErrCommentNotFound indicates the requested comment doesn't exist
	ErrCommentNotFound = errors.New("comment not found")

	// ErrContentTooLong indicates comment content exceeds MaxContentGraphemes
	ErrContentTooLong = errors.New("comment content exceeds 10000 graphemes")

	// ErrContentEmpty indicates comment content is empty
	ErrContentEmpty = errors.New("comment content is required")
)

// MaxContentGraphemes is the maximum comment length in grapheme clusters
const MaxContentGraphemes = 10000

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrContentTooLong) ||
		errors.Is(err, ErrContentEmpty)
}
