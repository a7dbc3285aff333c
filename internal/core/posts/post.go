package posts

import (
	"fmt"
	"strings"
	"time"

	"Coveloper/internal/core/members"
)

// Category is the board a post belongs to
type Category string

const (
	CategoryGeneral     Category = "GENERAL"
	CategoryRecruitment Category = "RECRUITMENT"
	CategoryQnA         Category = "QNA"
)

// ParseCategory validates a category name received from a client.
// Matching is case-insensitive; the canonical upper-case value is returned.
func ParseCategory(s string) (Category, error) {
	switch c := Category(strings.ToUpper(strings.TrimSpace(s))); c {
	case CategoryGeneral, CategoryRecruitment, CategoryQnA:
		return c, nil
	default:
		return "", NewValidationError("category", fmt.Sprintf("unknown category %q", s))
	}
}

// Valid reports whether c is one of the known categories
func (c Category) Valid() bool {
	switch c {
	case CategoryGeneral, CategoryRecruitment, CategoryQnA:
		return true
	}
	return false
}

// Post is a persisted board item.
// ProjectType, TeamSize and CurrentMembers are only stored for RECRUITMENT posts.
type Post struct {
	CreatedAt      time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time      `json:"updatedAt" db:"updated_at"`
	ProjectType    *string        `json:"projectType,omitempty" db:"project_type"`
	TeamSize       *int           `json:"teamSize,omitempty" db:"team_size"`
	CurrentMembers *int           `json:"currentMembers,omitempty" db:"current_members"`
	Author         members.Member `json:"author" db:"-"`
	Title          string         `json:"title" db:"title"`
	Content        string         `json:"content" db:"content"`
	Category       Category       `json:"category" db:"category"`
	ID             int64          `json:"id" db:"id"`
	UpvoteCount    int            `json:"upvoteCount" db:"upvote_count"`
}

// PostInput carries the client-editable fields of a post
type PostInput struct {
	ProjectType    *string  `json:"projectType,omitempty"`
	TeamSize       *int     `json:"teamSize,omitempty"`
	CurrentMembers *int     `json:"currentMembers,omitempty"`
	Title          string   `json:"title"`
	Content        string   `json:"content"`
	Category       Category `json:"category"`
}

// ApplyRecruitment copies the recruitment-only fields from in when the post is a
// RECRUITMENT post and clears them otherwise
func (p *Post) ApplyRecruitment(in PostInput) {
	if p.Category != CategoryRecruitment {
		p.ProjectType = nil
		p.TeamSize = nil
		p.CurrentMembers = nil
		return
	}
	p.ProjectType = in.ProjectType
	p.TeamSize = in.TeamSize
	p.CurrentMembers = in.CurrentMembers
}

// PostView is the externally visible shape of a post
type PostView struct {
	CreatedAt      time.Time    `json:"createdAt"`
	UpdatedAt      time.Time    `json:"updatedAt"`
	ProjectType    *string      `json:"projectType,omitempty"`
	TeamSize       *int         `json:"teamSize,omitempty"`
	CurrentMembers *int         `json:"currentMembers,omitempty"`
	Viewer         *ViewerState `json:"viewer,omitempty"`
	Title          string       `json:"title"`
	Content        string       `json:"content"`
	AuthorNickname string       `json:"authorNickname"`
	Category       Category     `json:"category"`
	ID             int64        `json:"id"`
	UpvoteCount    int          `json:"upvoteCount"`
}

// ViewerState carries caller-specific state, set only for authenticated reads
type ViewerState struct {
	Upvoted bool `json:"upvoted"`
}

// ToView projects a post into its external shape
func (p *Post) ToView() *PostView {
	return &PostView{
		ID:             p.ID,
		Title:          p.Title,
		Content:        p.Content,
		AuthorNickname: p.Author.Nickname,
		UpvoteCount:    p.UpvoteCount,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
		Category:       p.Category,
		ProjectType:    p.ProjectType,
		TeamSize:       p.TeamSize,
		CurrentMembers: p.CurrentMembers,
	}
}
