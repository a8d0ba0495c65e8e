package account

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/riskibarqy/footmate/internal/domain/user"
	"github.com/riskibarqy/footmate/internal/platform/cache"
	"github.com/riskibarqy/footmate/internal/usecase"
)

type TokenConfig struct {
	Secret        string
	Issuer        string
	TTL           time.Duration
	CacheTTL      time.Duration
	CacheMaxItems int
}

type claims struct {
	Email      string `json:"email"`
	Role       string `json:"role"`
	MemberType string `json:"member_type"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256 access tokens.
type TokenService struct {
	secret []byte
	issuer string
	ttl    time.Duration
	cache  *cache.Store // nil disables caching
	now    func() time.Time
}

func NewTokenService(cfg TokenConfig) (*TokenService, error) {
	if strings.TrimSpace(cfg.Secret) == "" {
		return nil, errors.New("jwt secret is required")
	}
	if cfg.TTL <= 0 {
		cfg.TTL = 24 * time.Hour
	}
	svc := &TokenService{
		secret: []byte(cfg.Secret),
		issuer: cfg.Issuer,
		ttl:    cfg.TTL,
		now:    time.Now,
	}
	if cfg.CacheTTL > 0 {
		// Verified principals are kept no longer than the token itself.
		svc.cache = cache.NewStore(cfg.CacheTTL,
			cache.WithMaxEntries(cfg.CacheMaxItems),
			cache.WithClock(func() time.Time { return svc.now() }),
		)
	}
	return svc, nil
}

func (s *TokenService) Issue(principal user.Principal) (string, time.Time, error) {
	now := s.now().UTC()
	expiresAt := now.Add(s.ttl)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Email:      principal.Email,
		Role:       string(principal.Role),
		MemberType: string(principal.MemberType),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   principal.UserID,
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign access token: %w", err)
	}
	return signed, expiresAt, nil
}

func (s *TokenService) VerifyAccessToken(ctx context.Context, raw string) (user.Principal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return user.Principal{}, fmt.Errorf("%w: token is required", usecase.ErrUnauthorized)
	}

	key := hashToken(raw)
	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx, key); ok {
			if principal, ok := cached.(user.Principal); ok {
				return principal, nil
			}
		}
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}
	var parsed claims
	if _, err := jwt.ParseWithClaims(raw, &parsed, func(*jwt.Token) (any, error) {
		return s.secret, nil
	}, opts...); err != nil {
		return user.Principal{}, fmt.Errorf("%w: %v", usecase.ErrUnauthorized, err)
	}
	if strings.TrimSpace(parsed.Subject) == "" {
		return user.Principal{}, fmt.Errorf("%w: token subject is empty", usecase.ErrUnauthorized)
	}

	principal := user.Principal{
		UserID:     parsed.Subject,
		Email:      parsed.Email,
		Role:       user.Role(parsed.Role),
		MemberType: user.MemberType(parsed.MemberType),
	}
	if s.cache != nil {
		var expiry time.Time
		if parsed.ExpiresAt != nil {
			expiry = parsed.ExpiresAt.Time
		}
		s.cache.SetUntil(ctx, key, principal, expiry)
	}
	return principal, nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
