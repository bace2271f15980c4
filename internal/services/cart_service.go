package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"qual-store/internal/apperr"
	"qual-store/internal/identity"
	"qual-store/internal/logger"
	"qual-store/internal/metrics"
	"qual-store/internal/models"
	"qual-store/internal/repository"
	"qual-store/internal/validation"
)

// CartService attaches order items to the caller's ACTIVE order, creating
// that order on first use.
type CartService struct {
	db                   *gorm.DB
	orders               repository.OrderRepo
	items                repository.OrderItemRepo
	users                repository.UserRepo
	ledger               *OrderItemService
	validator            validation.Validator
	defaultDeliveryPrice float64
	metrics              *metrics.Metrics
	log                  *logger.Logger
}

func NewCartService(
	db *gorm.DB,
	log *logger.Logger,
	orders repository.OrderRepo,
	items repository.OrderItemRepo,
	users repository.UserRepo,
	ledger *OrderItemService,
	validator validation.Validator,
	defaultDeliveryPrice float64,
	m *metrics.Metrics,
) *CartService {
	return &CartService{
		db:                   db,
		orders:               orders,
		items:                items,
		users:                users,
		ledger:               ledger,
		validator:            validator,
		defaultDeliveryPrice: defaultDeliveryPrice,
		metrics:              m,
		log:                  log.With("service", "CartService"),
	}
}

// AddToOrder moves an order item into the caller's active order and returns
// the order as persisted.
func (s *CartService) AddToOrder(ctx context.Context, caller identity.Caller, orderItemID uint) (*models.Order, error) {
	var (
		result  *models.Order
		created bool
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		item, err := s.items.FindByID(ctx, tx, orderItemID)
		if err != nil {
			return err
		}
		user, err := s.users.FindUserByUsername(ctx, tx, caller.Username)
		if err != nil {
			return err
		}
		if err := s.validator.Validate(item); err != nil {
			return err
		}

		order, isNew, err := s.activeOrder(ctx, tx, user.ID)
		if err != nil {
			return err
		}
		created = isNew
		if item.Attached() && *item.OrderID != order.ID {
			return fmt.Errorf("%w: order item %d already belongs to order %d", apperr.ErrConflict, item.ID, *item.OrderID)
		}

		if err := s.orders.Save(ctx, tx, order); err != nil {
			return err
		}
		if _, err := s.ledger.attach(ctx, tx, order, item); err != nil {
			return err
		}

		result, err = s.orders.FindByID(ctx, tx, order.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	if created {
		s.metrics.CartCreated()
	}
	s.log.Info("Order item added to order", "order_id", result.ID, "order_item_id", orderItemID, "username", caller.Username, "new_order", created)
	return result, nil
}

// activeOrder finds or creates the user's ACTIVE order. The insert runs in a
// savepoint; losing a concurrent first-add race trips the unique index and the
// winner's order is loaded instead.
func (s *CartService) activeOrder(ctx context.Context, tx *gorm.DB, userID uint) (*models.Order, bool, error) {
	order, err := s.orders.FindActiveByUser(ctx, tx, userID)
	if err == nil {
		return order, false, nil
	}
	if !errors.Is(err, apperr.ErrOrderNotFound) {
		return nil, false, err
	}

	order = &models.Order{
		UserID:        userID,
		Status:        models.OrderStatusActive,
		DeliveryPrice: s.defaultDeliveryPrice,
		OrderItems:    []models.OrderItem{},
	}
	err = tx.Transaction(func(sp *gorm.DB) error {
		return s.orders.Create(ctx, sp, order)
	})
	if errors.Is(err, apperr.ErrConflict) {
		s.log.Info("Active order created concurrently, reusing it", "user_id", userID)
		existing, findErr := s.orders.FindActiveByUser(ctx, tx, userID)
		return existing, false, findErr
	}
	if err != nil {
		return nil, false, err
	}
	return order, true, nil
}
