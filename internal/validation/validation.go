package validation

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"qual-store/internal/apperr"
)

// Validator checks structural rules declared on entity struct tags.
type Validator interface {
	Validate(entity any) error
}

type structValidator struct {
	v *validator.Validate
}

func New() Validator {
	return &structValidator{v: validator.New(validator.WithRequiredStructEnabled())}
}

// Validate returns an error matching both apperr.ErrValidation and the
// underlying validator.ValidationErrors.
func (s *structValidator) Validate(entity any) error {
	if err := s.v.Struct(entity); err != nil {
		return fmt.Errorf("%w: %w", apperr.ErrValidation, err)
	}
	return nil
}
