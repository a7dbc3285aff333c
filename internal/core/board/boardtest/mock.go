// Package boardtest provides a testify mock of board.Service for transport tests
package boardtest

import (
	"context"

	"Coveloper/internal/core/board"
	"Coveloper/internal/core/comments"
	"Coveloper/internal/core/members"
	"Coveloper/internal/core/posts"
	"Coveloper/internal/core/votes"

	"github.com/stretchr/testify/mock"
)

// MockService is a mock implementation of board.Service
type MockService struct {
	mock.Mock
}

var _ board.Service = (*MockService)(nil)

func (m *MockService) CreatePost(ctx context.Context, in posts.PostInput, actor members.Member) (*posts.PostView, error) {
	args := m.Called(ctx, in, actor)
	return postView(args.Get(0)), args.Error(1)
}

func (m *MockService) UpdatePost(ctx context.Context, postID int64, in posts.PostInput, actor members.Member) (*posts.PostView, error) {
	args := m.Called(ctx, postID, in, actor)
	return postView(args.Get(0)), args.Error(1)
}

func (m *MockService) GetPost(ctx context.Context, postID int64) (*posts.PostView, error) {
	args := m.Called(ctx, postID)
	return postView(args.Get(0)), args.Error(1)
}

func (m *MockService) ListPosts(ctx context.Context) ([]*posts.PostView, error) {
	args := m.Called(ctx)
	return postViews(args.Get(0)), args.Error(1)
}

func (m *MockService) DeletePost(ctx context.Context, postID int64, actor members.Member) error {
	args := m.Called(ctx, postID, actor)
	return args.Error(0)
}

func (m *MockService) ListPostsByMember(ctx context.Context, member members.Member) ([]*posts.PostView, error) {
	args := m.Called(ctx, member)
	return postViews(args.Get(0)), args.Error(1)
}

func (m *MockService) AddComment(ctx context.Context, postID int64, in comments.CommentInput, actor members.Member) (*comments.CommentView, error) {
	args := m.Called(ctx, postID, in, actor)
	return commentView(args.Get(0)), args.Error(1)
}

func (m *MockService) ListComments(ctx context.Context, postID int64) ([]*comments.CommentView, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*comments.CommentView), args.Error(1)
}

func (m *MockService) GetComment(ctx context.Context, commentID int64) (*comments.CommentView, error) {
	args := m.Called(ctx, commentID)
	return commentView(args.Get(0)), args.Error(1)
}

func (m *MockService) UpdateComment(ctx context.Context, commentID int64, in comments.CommentInput, actor members.Member) (*comments.CommentView, error) {
	args := m.Called(ctx, commentID, in, actor)
	return commentView(args.Get(0)), args.Error(1)
}

func (m *MockService) DeleteComment(ctx context.Context, commentID int64, actor members.Member) error {
	args := m.Called(ctx, commentID, actor)
	return args.Error(0)
}

func (m *MockService) SelectAnswer(ctx context.Context, postID, commentID int64, actor members.Member) error {
	args := m.Called(ctx, postID, commentID, actor)
	return args.Error(0)
}

func (m *MockService) VoteOnPost(ctx context.Context, postID int64, actor members.Member) (*votes.VoteView, error) {
	args := m.Called(ctx, postID, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*votes.VoteView), args.Error(1)
}

func (m *MockService) HasVoted(ctx context.Context, postID int64, member members.Member) (bool, error) {
	args := m.Called(ctx, postID, member)
	return args.Bool(0), args.Error(1)
}

func postView(v any) *posts.PostView {
	if v == nil {
		return nil
	}
	return v.(*posts.PostView)
}

func postViews(v any) []*posts.PostView {
	if v == nil {
		return nil
	}
	return v.([]*posts.PostView)
}

func commentView(v any) *comments.CommentView {
	if v == nil {
		return nil
	}
	return v.(*comments.CommentView)
}
