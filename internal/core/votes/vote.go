package votes

import "time"

// Vote records one member's upvote on one post.
// (PostID, MemberID) is unique.
type Vote struct {
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	ID        int64     `json:"id" db:"id"`
	PostID    int64     `json:"postId" db:"post_id"`
	MemberID  int64     `json:"memberId" db:"member_id"`
}

// VoteView is returned after a toggle: the post and its new upvote count
type VoteView struct {
	PostID      int64 `json:"postId"`
	UpvoteCount int   `json:"upvoteCount"`
}
