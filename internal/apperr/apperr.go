package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrOrderItemNotFound = errors.New("order item not found")
	ErrProductNotFound   = errors.New("product not found")
	ErrUserNotFound      = errors.New("user not found")

	// ErrInvalidOrderStatus covers both unknown status names and statuses the
	// caller's role may not set.
	ErrInvalidOrderStatus = errors.New("invalid order status")
	// ErrUpdateOrderStatus means the target is allowed but the order is in the wrong state.
	ErrUpdateOrderStatus = errors.New("order status cannot be updated from current state")

	ErrValidation   = errors.New("validation failed")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)

type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

type mapping struct {
	target error
	status int
	code   string
}

var mappings = []mapping{
	{ErrOrderNotFound, http.StatusNotFound, "order_not_found"},
	{ErrOrderItemNotFound, http.StatusNotFound, "order_item_not_found"},
	{ErrProductNotFound, http.StatusNotFound, "product_not_found"},
	{ErrUserNotFound, http.StatusNotFound, "user_not_found"},
	{ErrInvalidOrderStatus, http.StatusBadRequest, "invalid_order_status"},
	{ErrUpdateOrderStatus, http.StatusBadRequest, "update_order_status"},
	{ErrValidation, http.StatusBadRequest, "validation_failed"},
	{ErrConflict, http.StatusConflict, "conflict"},
	{ErrUnauthorized, http.StatusUnauthorized, "unauthorized"},
	{ErrForbidden, http.StatusForbidden, "forbidden"},
}

// Classify resolves err to an HTTP status and a stable machine-readable code.
func Classify(err error) (int, string) {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Status != 0 {
		code := apiErr.Code
		if code == "" {
			code = http.StatusText(apiErr.Status)
		}
		return apiErr.Status, code
	}
	for _, m := range mappings {
		if errors.Is(err, m.target) {
			return m.status, m.code
		}
	}
	return http.StatusInternalServerError, "internal"
}

// IsNotFound reports whether err belongs to the not-found family.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrOrderNotFound) ||
		errors.Is(err, ErrOrderItemNotFound) ||
		errors.Is(err, ErrProductNotFound) ||
		errors.Is(err, ErrUserNotFound)
}
