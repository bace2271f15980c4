package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"qual-store/internal/apperr"
)

func pick(db, tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return db
}

// translate maps gorm sentinels onto the application taxonomy.
func translate(err error, notFound error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return notFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %w", apperr.ErrConflict, err)
	default:
		return err
	}
}
