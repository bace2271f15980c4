package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"order missing", fmt.Errorf("%w: id 3", ErrOrderNotFound), http.StatusNotFound, "order_not_found"},
		{"item missing", ErrOrderItemNotFound, http.StatusNotFound, "order_item_not_found"},
		{"bad status", fmt.Errorf("%w: %q", ErrInvalidOrderStatus, "FAKE"), http.StatusBadRequest, "invalid_order_status"},
		{"wrong state", ErrUpdateOrderStatus, http.StatusBadRequest, "update_order_status"},
		{"conflict", ErrConflict, http.StatusConflict, "conflict"},
		{"explicit", New(http.StatusTeapot, "teapot", errors.New("short and stout")), http.StatusTeapot, "teapot"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "internal"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, code := Classify(tc.err)
			if status != tc.status || code != tc.code {
				t.Fatalf("Classify: got=(%d,%q) want=(%d,%q)", status, code, tc.status, tc.code)
			}
		})
	}
}

func TestInvalidAndUpdateStatusAreDistinct(t *testing.T) {
	if errors.Is(ErrInvalidOrderStatus, ErrUpdateOrderStatus) || errors.Is(ErrUpdateOrderStatus, ErrInvalidOrderStatus) {
		t.Fatalf("status errors must be distinguishable")
	}
}

func TestIsNotFound(t *testing.T) {
	if !IsNotFound(fmt.Errorf("wrapped: %w", ErrProductNotFound)) {
		t.Fatalf("expected product not found to be in the not-found family")
	}
	if IsNotFound(ErrConflict) {
		t.Fatalf("conflict is not a not-found error")
	}
}
