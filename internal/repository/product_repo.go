package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"qual-store/internal/apperr"
	"qual-store/internal/logger"
	"qual-store/internal/models"
)

type ProductRepo interface {
	FindByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Product, error)
	Create(ctx context.Context, tx *gorm.DB, product *models.Product) error
}

type productRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProductRepo(db *gorm.DB, baseLog *logger.Logger) ProductRepo {
	return &productRepo{db: db, log: baseLog.With("repo", "ProductRepo")}
}

func (r *productRepo) FindByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Product, error) {
	var product models.Product
	if err := pick(r.db, tx).WithContext(ctx).First(&product, id).Error; err != nil {
		return nil, translate(err, fmt.Errorf("%w: id %d", apperr.ErrProductNotFound, id))
	}
	return &product, nil
}

func (r *productRepo) Create(ctx context.Context, tx *gorm.DB, product *models.Product) error {
	return translate(pick(r.db, tx).WithContext(ctx).Create(product).Error, apperr.ErrProductNotFound)
}
