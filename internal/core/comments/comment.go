package comments

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"Coveloper/internal/core/members"

	"github.com/rivo/uniseg"
)

// Comment is a reply attached to exactly one post.
// Selected marks the accepted answer of a QNA post.
type Comment struct {
	CreatedAt time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time      `json:"updatedAt" db:"updated_at"`
	Author    members.Member `json:"author" db:"-"`
	Content   string         `json:"content" db:"content"`
	ID        int64          `json:"id" db:"id"`
	PostID    int64          `json:"postId" db:"post_id"`
	Selected  bool           `json:"selected" db:"selected"`
}

// CommentInput carries the client-editable fields of a comment
type CommentInput struct {
	Content string `json:"content"`
}

// Validate checks that content is present and within MaxContentGraphemes
func (in CommentInput) Validate() error {
	if strings.TrimSpace(in.Content) == "" {
		return ErrContentEmpty
	}
	if uniseg.GraphemeClusterCount(in.Content) > MaxContentGraphemes {
		return ErrContentTooLong
	}
	return nil
}

// CommentView is the externally visible shape of a comment
type CommentView struct {
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
	Content        string    `json:"content"`
	AuthorNickname string    `json:"authorNickname"`
	ID             int64     `json:"id"`
	PostID         int64     `json:"postId"`
	Selected       bool      `json:"selected"`
}

// ToView projects a comment into its external shape
func (c *Comment) ToView() *CommentView {
	return &CommentView{
		ID:             c.ID,
		Content:        c.Content,
		AuthorNickname: c.Author.Nickname,
		PostID:         c.PostID,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
		Selected:       c.Selected,
	}
}

// SortNewestFirst orders comments by creation time descending.
// Comments created in the same instant fall back to id descending.
func SortNewestFirst(list []*Comment) {
	slices.SortStableFunc(list, func(a, b *Comment) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
}
