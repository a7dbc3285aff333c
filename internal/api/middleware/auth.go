package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"Coveloper/internal/auth"
	"Coveloper/internal/core/members"
)

type contextKey string

const (
	MemberKey    contextKey = "member"
	JWTClaimsKey contextKey = "jwt_claims"
)

// MemberAuthMiddleware authenticates bearer tokens and resolves them to members
type MemberAuthMiddleware struct {
	verifier *auth.Verifier
	members  members.Service
	logger   *slog.Logger
}

// NewMemberAuthMiddleware creates the bearer-token auth middleware
func NewMemberAuthMiddleware(verifier *auth.Verifier, memberService members.Service, logger *slog.Logger) *MemberAuthMiddleware {
	if logger == nil {
		logger = slog.Default()
	}
	return &MemberAuthMiddleware{
		verifier: verifier,
		members:  memberService,
		logger:   logger,
	}
}

// RequireAuth rejects requests without a valid token for an existing member with 401.
// On success the member and claims are injected into the request context.
func (m *MemberAuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeAuthError(w, "Missing Authorization header")
			return
		}
		if !strings.HasPrefix(authHeader, "Bearer ") {
			writeAuthError(w, "Invalid Authorization header format. Expected: Bearer <token>")
			return
		}

		ctx, err := m.authenticate(r.Context(), authHeader)
		if err != nil {
			m.logger.Warn("authentication failed",
				"ip", r.RemoteAddr,
				"method", r.Method,
				"path", r.URL.Path,
				"error", err)
			if errors.Is(err, members.ErrMemberNotFound) {
				writeAuthError(w, "Unknown member")
				return
			}
			if errors.Is(err, auth.ErrInvalidToken) || errors.Is(err, auth.ErrMissingSubject) {
				writeAuthError(w, "Invalid or expired token")
				return
			}
			writeJSONError(w, http.StatusInternalServerError, "InternalServerError", "Failed to authenticate")
			return
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OptionalAuth loads the member when a valid token is present and otherwise
// continues anonymously
func (m *MemberAuthMiddleware) OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			next.ServeHTTP(w, r)
			return
		}

		ctx, err := m.authenticate(r.Context(), authHeader)
		if err != nil {
			m.logger.Debug("optional auth failed", "error", err)
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *MemberAuthMiddleware) authenticate(ctx context.Context, token string) (context.Context, error) {
	claims, err := m.verifier.Verify(token)
	if err != nil {
		return nil, err
	}

	memberID, err := claims.MemberID()
	if err != nil {
		return nil, err
	}

	member, err := m.members.GetMember(ctx, memberID)
	if err != nil {
		return nil, err
	}

	ctx = context.WithValue(ctx, MemberKey, member)
	ctx = context.WithValue(ctx, JWTClaimsKey, claims)
	return ctx, nil
}

// GetMember returns the authenticated member, or nil for anonymous requests
func GetMember(r *http.Request) *members.Member {
	member, _ := r.Context().Value(MemberKey).(*members.Member)
	return member
}

// GetJWTClaims returns the verified token claims, or nil
func GetJWTClaims(r *http.Request) *auth.Claims {
	claims, _ := r.Context().Value(JWTClaimsKey).(*auth.Claims)
	return claims
}

// SetTestMember injects a member into ctx the way RequireAuth does
func SetTestMember(ctx context.Context, member *members.Member) context.Context {
	return context.WithValue(ctx, MemberKey, member)
}

func writeAuthError(w http.ResponseWriter, message string) {
	writeJSONError(w, http.StatusUnauthorized, "AuthRequired", message)
}

func writeJSONError(w http.ResponseWriter, status int, errorType, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(map[string]string{
		"error":   errorType,
		"message": message,
	}); err != nil {
		slog.Error("failed to encode error response", "error", err)
	}
}
