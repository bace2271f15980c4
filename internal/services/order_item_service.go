package services

import (
	"context"

	"gorm.io/gorm"

	"qual-store/internal/logger"
	"qual-store/internal/metrics"
	"qual-store/internal/models"
	"qual-store/internal/repository"
	"qual-store/internal/validation"
)

// OrderItemService owns quantity and price rules for single line items.
type OrderItemService struct {
	db        *gorm.DB
	items     repository.OrderItemRepo
	products  repository.ProductRepo
	validator validation.Validator
	metrics   *metrics.Metrics
	log       *logger.Logger
}

func NewOrderItemService(
	db *gorm.DB,
	log *logger.Logger,
	items repository.OrderItemRepo,
	products repository.ProductRepo,
	validator validation.Validator,
	m *metrics.Metrics,
) *OrderItemService {
	return &OrderItemService{
		db:        db,
		items:     items,
		products:  products,
		validator: validator,
		metrics:   m,
		log:       log.With("service", "OrderItemService"),
	}
}

// AddItem binds item to productID and persists it. The item is not attached
// to any order; CartService does that.
func (s *OrderItemService) AddItem(ctx context.Context, productID uint, item *models.OrderItem) (*models.OrderItem, error) {
	item.ID = 0
	item.OrderID = nil
	item.ProductID = productID
	if err := s.validator.Validate(item); err != nil {
		return nil, err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		product, err := s.products.FindByID(ctx, tx, productID)
		if err != nil {
			return err
		}
		if err := s.items.Save(ctx, tx, item); err != nil {
			return err
		}
		item.Product = product
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Debug("Order item added", "order_item_id", item.ID, "product_id", productID, "quantity", item.Quantity)
	return item, nil
}

// ModifyQuantity sets the quantity, or deletes the item when newQuantity < 1.
func (s *OrderItemService) ModifyQuantity(ctx context.Context, orderItemID uint, newQuantity int) error {
	removed := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		item, err := s.items.FindByID(ctx, tx, orderItemID)
		if err != nil {
			return err
		}
		if newQuantity >= 1 {
			item.Quantity = newQuantity
			return s.items.Save(ctx, tx, item)
		}
		removed = true
		return s.items.Delete(ctx, tx, item)
	})
	if err != nil {
		return err
	}
	if removed {
		s.metrics.OrderItemRemoved()
		s.log.Info("Order item removed on zero quantity", "order_item_id", orderItemID, "requested_quantity", newQuantity)
	}
	return nil
}

// PriceOf recomputes quantity × product price on every call.
func (s *OrderItemService) PriceOf(ctx context.Context, orderItemID uint) (float64, error) {
	item, err := s.items.FindByID(ctx, nil, orderItemID)
	if err != nil {
		return 0, err
	}
	return item.Price(), nil
}

func (s *OrderItemService) RemoveByID(ctx context.Context, orderItemID uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		item, err := s.items.FindByID(ctx, tx, orderItemID)
		if err != nil {
			return err
		}
		return s.items.Delete(ctx, tx, item)
	})
	if err != nil {
		return err
	}
	s.metrics.OrderItemRemoved()
	return nil
}

func (s *OrderItemService) FindByID(ctx context.Context, orderItemID uint) (*models.OrderItem, error) {
	return s.items.FindByID(ctx, nil, orderItemID)
}

func (s *OrderItemService) GetAll(ctx context.Context) ([]models.OrderItem, error) {
	return s.items.FindAll(ctx, nil)
}

// attach places item into order inside tx. If the order already holds an item
// for the same product the quantities are merged into that item and the
// incoming one is deleted, so an order never carries a product twice.
func (s *OrderItemService) attach(ctx context.Context, tx *gorm.DB, order *models.Order, item *models.OrderItem) (*models.OrderItem, error) {
	if existing, ok := order.ItemForProduct(item.ProductID); ok && existing.ID != item.ID {
		existing.Quantity += item.Quantity
		if err := s.items.Save(ctx, tx, existing); err != nil {
			return nil, err
		}
		if err := s.items.Delete(ctx, tx, item); err != nil {
			return nil, err
		}
		s.log.Debug("Order item merged", "order_id", order.ID, "kept", existing.ID, "merged", item.ID)
		return existing, nil
	}
	order.AddOrderItem(item)
	if err := s.items.Save(ctx, tx, item); err != nil {
		return nil, err
	}
	return item, nil
}
