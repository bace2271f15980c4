package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"qual-store/internal/apperr"
	"qual-store/internal/logger"
	"qual-store/internal/models"
)

type OrderItemRepo interface {
	FindByID(ctx context.Context, tx *gorm.DB, id uint) (*models.OrderItem, error)
	FindAll(ctx context.Context, tx *gorm.DB) ([]models.OrderItem, error)
	Save(ctx context.Context, tx *gorm.DB, item *models.OrderItem) error
	SaveAll(ctx context.Context, tx *gorm.DB, items []models.OrderItem) error
	Delete(ctx context.Context, tx *gorm.DB, item *models.OrderItem) error
	DeleteByOrderID(ctx context.Context, tx *gorm.DB, orderID uint) error
}

type orderItemRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewOrderItemRepo(db *gorm.DB, baseLog *logger.Logger) OrderItemRepo {
	return &orderItemRepo{db: db, log: baseLog.With("repo", "OrderItemRepo")}
}

func (r *orderItemRepo) FindByID(ctx context.Context, tx *gorm.DB, id uint) (*models.OrderItem, error) {
	var item models.OrderItem
	err := pick(r.db, tx).WithContext(ctx).Preload("Product").First(&item, id).Error
	if err != nil {
		return nil, translate(err, fmt.Errorf("%w: id %d", apperr.ErrOrderItemNotFound, id))
	}
	return &item, nil
}

func (r *orderItemRepo) FindAll(ctx context.Context, tx *gorm.DB) ([]models.OrderItem, error) {
	var items []models.OrderItem
	if err := pick(r.db, tx).WithContext(ctx).Preload("Product").Order("id").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *orderItemRepo) Save(ctx context.Context, tx *gorm.DB, item *models.OrderItem) error {
	err := pick(r.db, tx).WithContext(ctx).Omit(clause.Associations).Save(item).Error
	return translate(err, apperr.ErrOrderItemNotFound)
}

func (r *orderItemRepo) SaveAll(ctx context.Context, tx *gorm.DB, items []models.OrderItem) error {
	transaction := pick(r.db, tx).WithContext(ctx)
	for i := range items {
		if err := transaction.Omit(clause.Associations).Save(&items[i]).Error; err != nil {
			return translate(err, apperr.ErrOrderItemNotFound)
		}
	}
	return nil
}

// Delete removes the item row; deleting a row that is already gone is ErrOrderItemNotFound.
func (r *orderItemRepo) Delete(ctx context.Context, tx *gorm.DB, item *models.OrderItem) error {
	res := pick(r.db, tx).WithContext(ctx).Delete(&models.OrderItem{}, item.ID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: id %d", apperr.ErrOrderItemNotFound, item.ID)
	}
	return nil
}

func (r *orderItemRepo) DeleteByOrderID(ctx context.Context, tx *gorm.DB, orderID uint) error {
	return pick(r.db, tx).WithContext(ctx).
		Where("order_id = ?", orderID).
		Delete(&models.OrderItem{}).Error
}
