package post

import (
	"fmt"

	"Coveloper/internal/api/handlers"
	"Coveloper/internal/core/posts"
)

// PostInput is the request body of create and update.
// Category is read on create only; an update never changes it.
type PostInput struct {
	ProjectType    *string `json:"projectType,omitempty"`
	TeamSize       *int    `json:"teamSize,omitempty"`
	CurrentMembers *int    `json:"currentMembers,omitempty"`
	Title          string  `json:"title"`
	Content        string  `json:"content"`
	Category       string  `json:"category,omitempty"`
}

func (in PostInput) validate() error {
	if err := handlers.CheckText("title", in.Title, handlers.MaxTitleGraphemes); err != nil {
		return err
	}
	if err := handlers.CheckText("content", in.Content, handlers.MaxPostContentGraphemes); err != nil {
		return err
	}
	if in.ProjectType != nil {
		if err := handlers.CheckText("projectType", *in.ProjectType, handlers.MaxTitleGraphemes); err != nil {
			return err
		}
	}
	if in.TeamSize != nil && *in.TeamSize < 1 {
		return fmt.Errorf("teamSize must be at least 1")
	}
	if in.CurrentMembers != nil && *in.CurrentMembers < 0 {
		return fmt.Errorf("currentMembers must not be negative")
	}
	if in.TeamSize != nil && in.CurrentMembers != nil && *in.CurrentMembers > *in.TeamSize {
		return fmt.Errorf("currentMembers must not exceed teamSize")
	}
	return nil
}

func (in PostInput) toCore(category posts.Category) posts.PostInput {
	return posts.PostInput{
		Title:          in.Title,
		Content:        in.Content,
		Category:       category,
		ProjectType:    in.ProjectType,
		TeamSize:       in.TeamSize,
		CurrentMembers: in.CurrentMembers,
	}
}
