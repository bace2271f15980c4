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

type OrderRepo interface {
	FindByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Order, error)
	FindAllWithOrderItems(ctx context.Context, tx *gorm.DB) ([]models.Order, error)
	FindByUser(ctx context.Context, tx *gorm.DB, userID uint) ([]models.Order, error)
	FindActiveByUser(ctx context.Context, tx *gorm.DB, userID uint) (*models.Order, error)
	Create(ctx context.Context, tx *gorm.DB, order *models.Order) error
	Save(ctx context.Context, tx *gorm.DB, order *models.Order) error
	DeleteByID(ctx context.Context, tx *gorm.DB, id uint) error
}

type orderRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewOrderRepo(db *gorm.DB, baseLog *logger.Logger) OrderRepo {
	return &orderRepo{db: db, log: baseLog.With("repo", "OrderRepo")}
}

func withItems(q *gorm.DB) *gorm.DB {
	return q.Preload("OrderItems", func(db *gorm.DB) *gorm.DB {
		return db.Order("order_items.id")
	}).Preload("OrderItems.Product")
}

// FindByID loads the order with its items and their products.
func (r *orderRepo) FindByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Order, error) {
	var order models.Order
	err := withItems(pick(r.db, tx).WithContext(ctx)).First(&order, id).Error
	if err != nil {
		return nil, translate(err, fmt.Errorf("%w: id %d", apperr.ErrOrderNotFound, id))
	}
	return &order, nil
}

func (r *orderRepo) FindAllWithOrderItems(ctx context.Context, tx *gorm.DB) ([]models.Order, error) {
	var orders []models.Order
	if err := withItems(pick(r.db, tx).WithContext(ctx)).Order("id").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepo) FindByUser(ctx context.Context, tx *gorm.DB, userID uint) ([]models.Order, error) {
	var orders []models.Order
	if err := withItems(pick(r.db, tx).WithContext(ctx)).
		Where("user_id = ?", userID).
		Order("id").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepo) FindActiveByUser(ctx context.Context, tx *gorm.DB, userID uint) (*models.Order, error) {
	var order models.Order
	err := withItems(pick(r.db, tx).WithContext(ctx)).
		Where("user_id = ? AND status = ?", userID, models.OrderStatusActive).
		First(&order).Error
	if err != nil {
		return nil, translate(err, fmt.Errorf("%w: no active order for user %d", apperr.ErrOrderNotFound, userID))
	}
	return &order, nil
}

// Create inserts the order row only; items are persisted through OrderItemRepo.
// A second ACTIVE order for the same user yields apperr.ErrConflict.
func (r *orderRepo) Create(ctx context.Context, tx *gorm.DB, order *models.Order) error {
	err := pick(r.db, tx).WithContext(ctx).Omit(clause.Associations).Create(order).Error
	return translate(err, apperr.ErrOrderNotFound)
}

func (r *orderRepo) Save(ctx context.Context, tx *gorm.DB, order *models.Order) error {
	err := pick(r.db, tx).WithContext(ctx).Omit(clause.Associations).Save(order).Error
	return translate(err, apperr.ErrOrderNotFound)
}

func (r *orderRepo) DeleteByID(ctx context.Context, tx *gorm.DB, id uint) error {
	res := pick(r.db, tx).WithContext(ctx).Delete(&models.Order{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: id %d", apperr.ErrOrderNotFound, id)
	}
	return nil
}
