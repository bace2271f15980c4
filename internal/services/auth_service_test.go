package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"qual-store/internal/apperr"
	"qual-store/internal/models"
)

func TestRegisterLoginParse(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	user, err := h.auth.Register(ctx, models.RegisterRequest{Username: "alice", Password: "s3cret!", Email: "alice@example.com"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.Role != models.RoleUser || user.PasswordHash == "" || user.PasswordHash == "s3cret!" {
		t.Fatalf("unexpected registered user: role=%s", user.Role)
	}

	token, err := h.auth.Login(ctx, "alice", "s3cret!")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	caller, err := h.auth.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if caller.Username != "alice" || caller.Role != models.RoleUser {
		t.Fatalf("unexpected caller: %+v", caller)
	}
}

func TestRegisterErrors(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	if _, err := h.auth.Register(ctx, models.RegisterRequest{Username: "bob", Password: "password"}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := h.auth.Register(ctx, models.RegisterRequest{Username: "bob", Password: "password"}); !errors.Is(err, apperr.ErrConflict) {
		t.Fatalf("duplicate username: expected ErrConflict, got %v", err)
	}
	if _, err := h.auth.Register(ctx, models.RegisterRequest{Username: "x", Password: "password"}); !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("short username: expected ErrValidation, got %v", err)
	}
	if _, err := h.auth.Register(ctx, models.RegisterRequest{Username: "carol", Password: "password", Email: "nope"}); !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("bad email: expected ErrValidation, got %v", err)
	}
}

func TestLoginFailures(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	if _, err := h.auth.Register(ctx, models.RegisterRequest{Username: "alice", Password: "s3cret!"}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	if _, err := h.auth.Login(ctx, "alice", "wrong"); !errors.Is(err, apperr.ErrUnauthorized) {
		t.Fatalf("wrong password: expected ErrUnauthorized, got %v", err)
	}
	if _, err := h.auth.Login(ctx, "nobody", "s3cret!"); !errors.Is(err, apperr.ErrUnauthorized) {
		t.Fatalf("unknown user: expected ErrUnauthorized, got %v", err)
	}
}

func TestParseTokenRejects(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	if _, err := h.auth.Register(ctx, models.RegisterRequest{Username: "alice", Password: "s3cret!"}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	issued := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	h.auth.now = func() time.Time { return issued }
	token, err := h.auth.Login(ctx, "alice", "s3cret!")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	h.auth.now = func() time.Time { return issued.Add(2 * time.Hour) }
	if _, err := h.auth.ParseToken(token); !errors.Is(err, apperr.ErrUnauthorized) {
		t.Fatalf("expired token: expected ErrUnauthorized, got %v", err)
	}

	h.auth.now = func() time.Time { return issued.Add(time.Minute) }
	other := NewAuthService(h.auth.log, h.users, h.auth.validator, "another-secret", time.Hour)
	other.now = h.auth.now
	if _, err := other.ParseToken(token); !errors.Is(err, apperr.ErrUnauthorized) {
		t.Fatalf("foreign signature: expected ErrUnauthorized, got %v", err)
	}
	if _, err := h.auth.ParseToken("not-a-token"); !errors.Is(err, apperr.ErrUnauthorized) {
		t.Fatalf("garbage: expected ErrUnauthorized, got %v", err)
	}
	if _, err := h.auth.ParseToken(token); err != nil {
		t.Fatalf("fresh token rejected: %v", err)
	}
}

func TestEnsureAdmin(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	if err := h.auth.EnsureAdmin(ctx, "", ""); err != nil {
		t.Fatalf("empty username must be a no-op, got %v", err)
	}
	if err := h.auth.EnsureAdmin(ctx, "root", ""); err == nil {
		t.Fatal("expected error for a new admin without password")
	}
	if err := h.auth.EnsureAdmin(ctx, "root", "rootpass"); err != nil {
		t.Fatalf("EnsureAdmin(create): %v", err)
	}
	u, err := h.users.FindUserByUsername(ctx, nil, "root")
	if err != nil || u.Role != models.RoleAdmin {
		t.Fatalf("bootstrap admin: user=%+v err=%v", u, err)
	}
	if err := h.auth.EnsureAdmin(ctx, "root", "rootpass"); err != nil {
		t.Fatalf("EnsureAdmin must be idempotent, got %v", err)
	}

	if _, err := h.auth.Register(ctx, models.RegisterRequest{Username: "promoteme", Password: "password"}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := h.auth.EnsureAdmin(ctx, "promoteme", ""); err != nil {
		t.Fatalf("EnsureAdmin(promote): %v", err)
	}
	u, _ = h.users.FindUserByUsername(ctx, nil, "promoteme")
	if u.Role != models.RoleAdmin {
		t.Fatalf("expected promotion to ADMIN, got %s", u.Role)
	}
}
