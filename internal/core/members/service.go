package members

import (
	"context"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

const (
	// DefaultCacheSize bounds the number of members held by the lookup cache
	DefaultCacheSize = 1000

	// DefaultCacheTTL is how long a cached member is trusted before re-reading it
	DefaultCacheTTL = 5 * time.Minute

	maxNicknameLength = 64
)

type cachedMember struct {
	expiresAt time.Time
	member    Member
}

type memberService struct {
	repo   Repository
	cache  *lru.Cache[int64, cachedMember]
	logger *slog.Logger
	ttl    time.Duration
	now    func() time.Time
}

// NewMemberService creates a member service backed by a bounded LRU cache.
// Every authenticated request resolves its member here, so lookups by id are cached.
func NewMemberService(repo Repository, cacheSize int, ttl time.Duration, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}

	cache, err := lru.New[int64, cachedMember](cacheSize)
	if err != nil {
		logger.Warn("failed to create member cache, falling back to minimal cache", "error", err)
		cache, _ = lru.New[int64, cachedMember](1)
	}

	return &memberService{
		repo:   repo,
		cache:  cache,
		logger: logger,
		ttl:    ttl,
		now:    time.Now,
	}
}

// GetMember returns the member with the given id
func (s *memberService) GetMember(ctx context.Context, id int64) (*Member, error) {
	if id <= 0 {
		return nil, ErrMemberNotFound
	}

	if entry, ok := s.cache.Get(id); ok {
		if s.now().Before(entry.expiresAt) {
			m := entry.member
			return &m, nil
		}
		s.cache.Remove(id)
	}

	member, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.cache.Add(id, cachedMember{member: *member, expiresAt: s.now().Add(s.ttl)})
	return member, nil
}

// GetMemberByEmail looks up a member by email; results are not cached
func (s *memberService) GetMemberByEmail(ctx context.Context, email string) (*Member, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, ErrMemberNotFound
	}
	return s.repo.GetByEmail(ctx, email)
}

// CreateMember validates and provisions a member
func (s *memberService) CreateMember(ctx context.Context, req CreateMemberRequest) (*Member, error) {
	email := normalizeEmail(req.Email)
	nickname := strings.TrimSpace(req.Nickname)

	if email == "" {
		return nil, &InvalidMemberError{Field: "email", Reason: "required"}
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, &InvalidMemberError{Field: "email", Reason: "malformed address"}
	}
	if nickname == "" {
		return nil, &InvalidMemberError{Field: "nickname", Reason: "required"}
	}
	if len(nickname) > maxNicknameLength {
		return nil, &InvalidMemberError{Field: "nickname", Reason: fmt.Sprintf("must be at most %d bytes", maxNicknameLength)}
	}

	member, err := s.repo.Create(ctx, &Member{Email: email, Nickname: nickname})
	if err != nil {
		return nil, err
	}

	s.logger.Info("member provisioned", "member_id", member.ID)
	return member, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
