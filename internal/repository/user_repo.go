package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"qual-store/internal/apperr"
	"qual-store/internal/logger"
	"qual-store/internal/models"
)

type UserRepo interface {
	FindUserByUsername(ctx context.Context, tx *gorm.DB, username string) (*models.AppUser, error)
	Create(ctx context.Context, tx *gorm.DB, user *models.AppUser) error
	UpdateRole(ctx context.Context, tx *gorm.DB, userID uint, role models.RoleName) error
}

type userRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo {
	return &userRepo{db: db, log: baseLog.With("repo", "UserRepo")}
}

func (r *userRepo) FindUserByUsername(ctx context.Context, tx *gorm.DB, username string) (*models.AppUser, error) {
	var user models.AppUser
	err := pick(r.db, tx).WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		return nil, translate(err, fmt.Errorf("%w: %s", apperr.ErrUserNotFound, username))
	}
	return &user, nil
}

// Create fails with apperr.ErrConflict when the username is taken.
func (r *userRepo) Create(ctx context.Context, tx *gorm.DB, user *models.AppUser) error {
	return translate(pick(r.db, tx).WithContext(ctx).Create(user).Error, apperr.ErrUserNotFound)
}

func (r *userRepo) UpdateRole(ctx context.Context, tx *gorm.DB, userID uint, role models.RoleName) error {
	res := pick(r.db, tx).WithContext(ctx).
		Model(&models.AppUser{}).
		Where("id = ?", userID).
		Update("role", role)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: id %d", apperr.ErrUserNotFound, userID)
	}
	return nil
}
