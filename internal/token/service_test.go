package token

import (
	"context"
	"errors"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func setupService(t *testing.T, ttl time.Duration) (*Service, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		cache.Close()
		mr.Close()
	})
	return New(cache, ttl), mr
}

func TestIssueAndValidate(t *testing.T) {
	svc, _ := setupService(t, 0)
	ctx := context.Background()

	value, err := svc.Issue(ctx, "student", "id-1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if value == "" {
		t.Fatal("expected non-empty token value")
	}

	principal, err := svc.Validate(ctx, value)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if principal.Role != "student" || principal.AccountID != "id-1" {
		t.Fatalf("unexpected principal %+v", principal)
	}
}

func TestValidateUnknownToken(t *testing.T) {
	svc, _ := setupService(t, 0)

	if _, err := svc.Validate(context.Background(), "never-issued"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestConcurrentTokensAreIndependent(t *testing.T) {
	svc, _ := setupService(t, 0)
	ctx := context.Background()

	first, err := svc.Issue(ctx, "teacher", "id-2")
	if err != nil {
		t.Fatalf("issue first: %v", err)
	}
	second, err := svc.Issue(ctx, "teacher", "id-2")
	if err != nil {
		t.Fatalf("issue second: %v", err)
	}
	if first == second {
		t.Fatal("expected distinct token values")
	}

	if _, err := svc.Validate(ctx, first); err != nil {
		t.Fatalf("validate first: %v", err)
	}
	if _, err := svc.Validate(ctx, second); err != nil {
		t.Fatalf("validate second: %v", err)
	}
}

func TestRevokeAllDropsEveryToken(t *testing.T) {
	svc, _ := setupService(t, 0)
	ctx := context.Background()

	first, _ := svc.Issue(ctx, "student", "id-3")
	second, _ := svc.Issue(ctx, "student", "id-3")
	other, _ := svc.Issue(ctx, "student", "id-4")

	count, err := svc.RevokeAll(ctx, "student", "id-3")
	if err != nil {
		t.Fatalf("revoke all: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 revoked tokens, got %d", count)
	}

	for _, value := range []string{first, second} {
		if _, err := svc.Validate(ctx, value); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("token %s should be revoked, got %v", value, err)
		}
	}

	// Other principals keep their tokens.
	if _, err := svc.Validate(ctx, other); err != nil {
		t.Fatalf("unrelated token revoked: %v", err)
	}
}

func TestRevokeAllWithNoTokens(t *testing.T) {
	svc, _ := setupService(t, 0)

	count, err := svc.RevokeAll(context.Background(), "admin", "nobody")
	if err != nil {
		t.Fatalf("revoke all: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected 0 revoked tokens, got %d", count)
	}
}

func TestTokenExpiry(t *testing.T) {
	svc, mr := setupService(t, time.Minute)
	ctx := context.Background()

	value, err := svc.Issue(ctx, "student", "id-5")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	mr.FastForward(2 * time.Minute)

	if _, err := svc.Validate(ctx, value); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken after expiry, got %v", err)
	}
}
