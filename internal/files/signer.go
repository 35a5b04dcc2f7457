package files

import (
	"crypto/rand"
	"fmt"
	"net/url"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const tokenAudience = "files"

// Claims is the payload of a file download token. Subject is the file id.
type Claims struct {
	jwt.RegisteredClaims
}

// Signer issues and verifies HS256 download tokens bound to a file id.
type Signer struct {
	secret   []byte
	ttl      time.Duration
	basePath string
	now      func() time.Time
}

// NewSigner creates a Signer. An empty secret is replaced by 32 random
// bytes, so tokens only verify within the current process. Signed URLs are
// rooted at basePath.
func NewSigner(secret string, ttl time.Duration, basePath string) (*Signer, error) {
	key := []byte(secret)
	if len(key) == 0 {
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			return nil, fmt.Errorf("generate signing secret: %w", err)
		}
	}

	return &Signer{
		secret:   key,
		ttl:      ttl,
		basePath: basePath,
		now:      time.Now,
	}, nil
}

// WithClock returns a copy of s that reads the current time from now.
func (s *Signer) WithClock(now func() time.Time) *Signer {
	c := *s
	c.now = now
	return &c
}

// Token issues a token for id that expires after the signer TTL.
func (s *Signer) Token(id uuid.UUID) (string, error) {
	now := s.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.String(),
			Audience:  jwt.ClaimStrings{tokenAudience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign file token: %w", err)
	}
	return signed, nil
}

// URL returns the signed download path for id.
func (s *Signer) URL(id uuid.UUID) (string, error) {
	token, err := s.Token(id)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/files/%s?token=%s", s.basePath, id, url.QueryEscape(token)), nil
}

// Verify returns ErrInvalidToken unless token is an unexpired HS256 token
// issued for id.
func (s *Signer) Verify(id uuid.UUID, token string) error {
	if token == "" {
		return ErrInvalidToken
	}

	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithAudience(tokenAudience),
		jwt.WithSubject(id.String()),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !parsed.Valid {
		return fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return nil
}
