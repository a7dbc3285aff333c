package votes

import "errors"

var (
	// ErrVoteNotFound indicates the member has no vote on the post
	ErrVoteNotFound = errors.New("vote not found")

	// ErrVoteAlreadyExists indicates a vote for this (post, member) pair already exists
	ErrVoteAlreadyExists = errors.New("vote already exists")
)
