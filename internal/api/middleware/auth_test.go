package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"Coveloper/internal/auth"
	"Coveloper/internal/core/members"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

type MockMemberService struct {
	mock.Mock
}

func (m *MockMemberService) GetMember(ctx context.Context, id int64) (*members.Member, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*members.Member), args.Error(1)
}

func (m *MockMemberService) GetMemberByEmail(ctx context.Context, email string) (*members.Member, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*members.Member), args.Error(1)
}

func (m *MockMemberService) CreateMember(ctx context.Context, req members.CreateMemberRequest) (*members.Member, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*members.Member), args.Error(1)
}

func newTestMiddleware(svc members.Service) *MemberAuthMiddleware {
	return NewMemberAuthMiddleware(auth.NewVerifier(testSecret, "coveloper"), svc, nil)
}

func issue(t *testing.T, memberID int64) string {
	t.Helper()
	token, err := auth.Issue(testSecret, "coveloper", memberID, time.Hour)
	require.NoError(t, err)
	return token
}

// echoMember writes the resolved member id, or 0 for anonymous requests
var echoMember = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	var id int64
	if m := GetMember(r); m != nil {
		id = m.ID
	}
	_ = json.NewEncoder(w).Encode(map[string]int64{"member": id})
})

func TestRequireAuth_ValidToken(t *testing.T) {
	svc := new(MockMemberService)
	alice := &members.Member{ID: 7, Email: "alice@example.com", Nickname: "alice"}
	svc.On("GetMember", mock.Anything, int64(7)).Return(alice, nil)

	handler := newTestMiddleware(svc).RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, alice, GetMember(r))
		require.NotNil(t, GetJWTClaims(r))
		assert.Equal(t, "7", GetJWTClaims(r).Subject)
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/posts", nil)
	req.Header.Set("Authorization", "Bearer "+issue(t, 7))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	svc.AssertExpectations(t)
}

func TestRequireAuth_Rejections(t *testing.T) {
	svc := new(MockMemberService)
	svc.On("GetMember", mock.Anything, int64(99)).Return(nil, members.ErrMemberNotFound)

	tests := []struct {
		name   string
		header string
	}{
		{name: "missing header", header: ""},
		{name: "wrong scheme", header: "Basic abc"},
		{name: "garbage token", header: "Bearer abc.def.ghi"},
		{name: "unknown member", header: "Bearer " + issue(t, 99)},
	}

	handler := newTestMiddleware(svc).RequireAuth(echoMember)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/posts", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Body.String(), "AuthRequired")
		})
	}
}

func TestOptionalAuth(t *testing.T) {
	svc := new(MockMemberService)
	svc.On("GetMember", mock.Anything, int64(3)).Return(&members.Member{ID: 3}, nil)

	handler := newTestMiddleware(svc).OptionalAuth(echoMember)

	tests := []struct {
		name   string
		header string
		want   string
	}{
		{name: "anonymous", header: "", want: `{"member":0}`},
		{name: "invalid token continues anonymously", header: "Bearer nope", want: `{"member":0}`},
		{name: "authenticated", header: "Bearer " + issue(t, 3), want: `{"member":3}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/posts/1", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.JSONEq(t, tt.want, w.Body.String())
		})
	}
}
