package validation

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"

	"qual-store/internal/apperr"
	"qual-store/internal/models"
)

func TestValidateOrderItem(t *testing.T) {
	v := New()

	if err := v.Validate(&models.OrderItem{Quantity: 2, ProductID: 7}); err != nil {
		t.Fatalf("valid item rejected: %v", err)
	}

	err := v.Validate(&models.OrderItem{Quantity: 0, ProductID: 7})
	if !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		t.Fatalf("expected the validator's own errors to stay reachable, got %T", err)
	}
	if fieldErrs[0].Field() != "Quantity" {
		t.Fatalf("unexpected failing field: %s", fieldErrs[0].Field())
	}

	if err := v.Validate(&models.OrderItem{Quantity: 1}); !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("missing product reference should fail, got %v", err)
	}
}

func TestValidateProduct(t *testing.T) {
	v := New()
	if err := v.Validate(&models.Product{Name: "Scarf", Price: -1}); !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("negative price should fail, got %v", err)
	}
}
