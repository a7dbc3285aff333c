package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"Coveloper/internal/api/middleware"
	"Coveloper/internal/core/members"

	"github.com/go-chi/chi/v5"
	"github.com/rivo/uniseg"
)

const (
	MaxTitleGraphemes       = 200
	MaxPostContentGraphemes = 20000

	maxBodyBytes = 1 << 20
)

// PathID reads a positive integer URL parameter
func PathID(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer", name)
	}
	return id, nil
}

// DecodeJSON decodes a size-limited request body into v
func DecodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

// CheckText rejects blank values and values longer than max grapheme clusters
func CheckText(field, value string, max int) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s is required", field)
	}
	if n := uniseg.GraphemeClusterCount(value); n > max {
		return fmt.Errorf("%s exceeds %d characters (got %d)", field, max, n)
	}
	return nil
}

// RequireMember returns the authenticated member or writes a 401
func RequireMember(w http.ResponseWriter, r *http.Request) (members.Member, bool) {
	member := middleware.GetMember(r)
	if member == nil {
		WriteError(w, http.StatusUnauthorized, "AuthRequired", "Authentication required")
		return members.Member{}, false
	}
	return *member, true
}
