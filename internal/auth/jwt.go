package auth

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AlgorithmHS256 is the only signing method accepted for member tokens
const AlgorithmHS256 = "HS256"

var (
	// ErrInvalidToken covers malformed, expired and badly signed tokens
	ErrInvalidToken = errors.New("invalid token")

	// ErrMissingSubject is returned when a token carries no usable member id
	ErrMissingSubject = errors.New("token subject is not a member id")
)

// Claims are the JWT claims of a member token. Subject holds the member id.
type Claims struct {
	jwt.RegisteredClaims
}

// MemberID parses the subject claim
func (c *Claims) MemberID() (int64, error) {
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrMissingSubject
	}
	return id, nil
}

// Verifier checks HS256 member tokens against a shared secret
type Verifier struct {
	secret []byte
	issuer string
}

// NewVerifier creates a verifier. An empty issuer disables the issuer check.
func NewVerifier(secret []byte, issuer string) *Verifier {
	return &Verifier{secret: secret, issuer: issuer}
}

// Verify validates the signature and expiry of a token and returns its claims
func (v *Verifier) Verify(tokenString string) (*Claims, error) {
	tokenString = stripBearerPrefix(tokenString)

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{AlgorithmHS256}),
		jwt.WithExpirationRequired(),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.secret, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	if _, err := claims.MemberID(); err != nil {
		return nil, err
	}

	return claims, nil
}

// Issue signs a token for memberID valid for ttl
func Issue(secret []byte, issuer string, memberID int64, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(memberID, 10),
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func stripBearerPrefix(tokenString string) string {
	tokenString = strings.TrimPrefix(tokenString, "Bearer ")
	return strings.TrimSpace(tokenString)
}
