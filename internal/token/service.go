package token

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	valuePrefix     = "auth:token:"
	principalPrefix = "auth:principal:"
)

// ErrInvalidToken covers unknown, expired and revoked tokens alike.
var ErrInvalidToken = errors.New("invalid or revoked token")

// Principal is the identity a valid token resolves to.
type Principal struct {
	Role      string
	AccountID string
}

// Service issues and revokes opaque bearer tokens backed by Redis. Every token
// value maps to its principal, and each principal keeps a set of its live
// token values so logout can revoke them all at once.
type Service struct {
	cache *redis.Client
	ttl   time.Duration
}

// New creates a token service. A zero ttl means tokens live until revoked.
func New(cache *redis.Client, ttl time.Duration) *Service {
	return &Service{cache: cache, ttl: ttl}
}

// Issue mints a new opaque token bound to (role, accountID). Concurrent logins
// each get an independent token.
func (s *Service) Issue(ctx context.Context, role, accountID string) (string, error) {
	value, err := newValue()
	if err != nil {
		return "", err
	}

	if err := s.cache.Set(ctx, valuePrefix+value, role+"|"+accountID, s.ttl).Err(); err != nil {
		return "", err
	}
	if err := s.cache.SAdd(ctx, principalKey(role, accountID), value).Err(); err != nil {
		// Roll back the value key so no half-issued token survives.
		s.cache.Del(ctx, valuePrefix+value)
		return "", err
	}

	return value, nil
}

// Validate resolves a presented token to its principal.
func (s *Service) Validate(ctx context.Context, value string) (Principal, error) {
	stored, err := s.cache.Get(ctx, valuePrefix+value).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Principal{}, ErrInvalidToken
		}
		return Principal{}, err
	}

	role, accountID, ok := strings.Cut(stored, "|")
	if !ok {
		return Principal{}, ErrInvalidToken
	}
	return Principal{Role: role, AccountID: accountID}, nil
}

// RevokeAll destroys every token bound to the principal and returns how many
// were dropped. Revoking a principal with no tokens is not an error.
func (s *Service) RevokeAll(ctx context.Context, role, accountID string) (int, error) {
	setKey := principalKey(role, accountID)

	values, err := s.cache.SMembers(ctx, setKey).Result()
	if err != nil {
		return 0, err
	}
	if len(values) == 0 {
		return 0, nil
	}

	keys := make([]string, 0, len(values)+1)
	for _, v := range values {
		keys = append(keys, valuePrefix+v)
	}
	keys = append(keys, setKey)

	if err := s.cache.Del(ctx, keys...).Err(); err != nil {
		return 0, err
	}
	return len(values), nil
}

func principalKey(role, accountID string) string {
	return principalPrefix + role + ":" + accountID
}

func newValue() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
