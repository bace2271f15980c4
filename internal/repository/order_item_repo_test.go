package repository

import (
	"context"
	"errors"
	"testing"

	"qual-store/internal/apperr"
	"qual-store/internal/models"
	"qual-store/internal/repository/testutil"
)

func TestOrderItemRepo(t *testing.T) {
	db := testutil.DB(t)
	repo := NewOrderItemRepo(db, testutil.Logger(t))
	ctx := context.Background()

	product := testutil.SeedProduct(t, db, "Hat", 10)

	item := &models.OrderItem{ProductID: product.ID, Quantity: 2}
	if err := repo.Save(ctx, nil, item); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if item.ID == 0 {
		t.Fatalf("Save: expected generated id")
	}

	got, err := repo.FindByID(ctx, nil, item.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if got.Product == nil || got.Product.ID != product.ID {
		t.Fatalf("FindByID: product not preloaded: %+v", got)
	}

	got.Quantity = 5
	if err := repo.SaveAll(ctx, nil, []models.OrderItem{*got}); err != nil {
		t.Fatalf("SaveAll: %v", err)
	}
	all, err := repo.FindAll(ctx, nil)
	if err != nil || len(all) != 1 || all[0].Quantity != 5 {
		t.Fatalf("FindAll: got=%+v err=%v", all, err)
	}

	if err := repo.Delete(ctx, nil, got); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.FindByID(ctx, nil, item.ID); !errors.Is(err, apperr.ErrOrderItemNotFound) {
		t.Fatalf("FindByID after delete: expected ErrOrderItemNotFound, got %v", err)
	}
	if err := repo.Delete(ctx, nil, got); !errors.Is(err, apperr.ErrOrderItemNotFound) {
		t.Fatalf("repeat Delete: expected ErrOrderItemNotFound, got %v", err)
	}
}

func TestOrderItemRepoDeleteByOrderID(t *testing.T) {
	db := testutil.DB(t)
	repo := NewOrderItemRepo(db, testutil.Logger(t))
	ctx := context.Background()

	user := testutil.SeedUser(t, db, "carol", models.RoleUser)
	product := testutil.SeedProduct(t, db, "Mittens", 8)
	attached := testutil.SeedItem(t, db, product.ID, 1)
	loose := testutil.SeedItem(t, db, product.ID, 4)
	order := testutil.SeedOrder(t, db, user.ID, models.OrderStatusActive, attached)

	if err := repo.DeleteByOrderID(ctx, nil, order.ID); err != nil {
		t.Fatalf("DeleteByOrderID: %v", err)
	}
	if _, err := repo.FindByID(ctx, nil, attached.ID); !errors.Is(err, apperr.ErrOrderItemNotFound) {
		t.Fatalf("attached item should be gone, got %v", err)
	}
	if _, err := repo.FindByID(ctx, nil, loose.ID); err != nil {
		t.Fatalf("unattached item should remain: %v", err)
	}
}
