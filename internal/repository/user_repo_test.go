package repository

import (
	"context"
	"errors"
	"testing"

	"qual-store/internal/apperr"
	"qual-store/internal/models"
	"qual-store/internal/repository/testutil"
)

func TestUserRepo(t *testing.T) {
	db := testutil.DB(t)
	repo := NewUserRepo(db, testutil.Logger(t))
	ctx := context.Background()

	user := &models.AppUser{Username: "dave", PasswordHash: "hash", Role: models.RoleUser}
	if err := repo.Create(ctx, nil, user); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := repo.Create(ctx, nil, &models.AppUser{Username: "dave", PasswordHash: "other", Role: models.RoleUser}); !errors.Is(err, apperr.ErrConflict) {
		t.Fatalf("duplicate username: expected ErrConflict, got %v", err)
	}

	if err := repo.UpdateRole(ctx, nil, user.ID, models.RoleAdmin); err != nil {
		t.Fatalf("UpdateRole: %v", err)
	}
	got, err := repo.FindUserByUsername(ctx, nil, "dave")
	if err != nil {
		t.Fatalf("FindUserByUsername: %v", err)
	}
	if got.Role != models.RoleAdmin {
		t.Fatalf("role not updated: %s", got.Role)
	}

	if _, err := repo.FindUserByUsername(ctx, nil, "nobody"); !errors.Is(err, apperr.ErrUserNotFound) {
		t.Fatalf("missing user: expected ErrUserNotFound, got %v", err)
	}
}

func TestProductRepo(t *testing.T) {
	db := testutil.DB(t)
	repo := NewProductRepo(db, testutil.Logger(t))
	ctx := context.Background()

	p := &models.Product{Name: "Blanket", Price: 120}
	if err := repo.Create(ctx, nil, p); err != nil {
		t.Fatalf("Create: %v", err)
	}
	got, err := repo.FindByID(ctx, nil, p.ID)
	if err != nil || got.Name != "Blanket" {
		t.Fatalf("FindByID: got=%+v err=%v", got, err)
	}
	if _, err := repo.FindByID(ctx, nil, p.ID+100); !errors.Is(err, apperr.ErrProductNotFound) {
		t.Fatalf("missing product: expected ErrProductNotFound, got %v", err)
	}
}
