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
)

type OrderService struct {
	db      *gorm.DB
	orders  repository.OrderRepo
	items   repository.OrderItemRepo
	users   repository.UserRepo
	machine *StatusMachine
	metrics *metrics.Metrics
	log     *logger.Logger
}

func NewOrderService(
	db *gorm.DB,
	log *logger.Logger,
	orders repository.OrderRepo,
	items repository.OrderItemRepo,
	users repository.UserRepo,
	machine *StatusMachine,
	m *metrics.Metrics,
) *OrderService {
	if machine == nil {
		machine = NewStatusMachine(nil)
	}
	return &OrderService{
		db:      db,
		orders:  orders,
		items:   items,
		users:   users,
		machine: machine,
		metrics: m,
		log:     log.With("service", "OrderService"),
	}
}

func (s *OrderService) FindOrderByID(ctx context.Context, orderID uint) (*models.Order, error) {
	return s.orders.FindByID(ctx, nil, orderID)
}

func (s *OrderService) GetAllOrders(ctx context.Context) ([]models.Order, error) {
	return s.orders.FindAllWithOrderItems(ctx, nil)
}

func (s *OrderService) GetAllOrdersByUser(ctx context.Context, caller identity.Caller) ([]models.Order, error) {
	user, err := s.users.FindUserByUsername(ctx, nil, caller.Username)
	if err != nil {
		return nil, err
	}
	return s.orders.FindByUser(ctx, nil, user.ID)
}

// UpdateOrderStatus moves the order to statusName if the caller's stored role
// permits that status and the order's current status satisfies the transition.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, caller identity.Caller, orderID uint, statusName string) (*models.Order, error) {
	var (
		order *models.Order
		role  models.RoleName
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		order, err = s.orders.FindByID(ctx, tx, orderID)
		if err != nil {
			return err
		}
		user, err := s.users.FindUserByUsername(ctx, tx, caller.Username)
		if err != nil {
			return err
		}
		role = user.Role

		from := order.Status
		if err := s.machine.Apply(order, role, statusName); err != nil {
			return err
		}
		if err := s.orders.Save(ctx, tx, order); err != nil {
			return err
		}
		s.log.Info("Order status updated", "order_id", order.ID, "from", from, "to", order.Status, "username", caller.Username, "role", role)
		return nil
	})
	s.metrics.ObserveTransition(string(role), statusLabel(statusName), transitionResult(err))
	if err != nil {
		return nil, err
	}
	return order, nil
}

// DeleteOrderByID persists the order's items, then removes the items and the
// order, all in one transaction. Only the owner or an ADMIN may delete.
func (s *OrderService) DeleteOrderByID(ctx context.Context, caller identity.Caller, orderID uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order, err := s.orders.FindByID(ctx, tx, orderID)
		if err != nil {
			return err
		}
		user, err := s.users.FindUserByUsername(ctx, tx, caller.Username)
		if err != nil {
			return err
		}
		if user.Role != models.RoleAdmin && order.UserID != user.ID {
			return fmt.Errorf("%w: order %d belongs to another user", apperr.ErrForbidden, order.ID)
		}
		if err := s.items.SaveAll(ctx, tx, order.OrderItems); err != nil {
			return err
		}
		if err := s.items.DeleteByOrderID(ctx, tx, order.ID); err != nil {
			return err
		}
		return s.orders.DeleteByID(ctx, tx, order.ID)
	})
	if err != nil {
		return err
	}
	s.log.Info("Order deleted", "order_id", orderID, "username", caller.Username)
	return nil
}

// ProductsQuantity reports total requested quantity per product across all orders.
func (s *OrderService) ProductsQuantity(ctx context.Context) (map[uint]int, error) {
	orders, err := s.orders.FindAllWithOrderItems(ctx, nil)
	if err != nil {
		return nil, err
	}
	return ProductsQuantity(orders), nil
}

// statusLabel keeps caller-supplied names out of metric labels.
func statusLabel(name string) string {
	if s, ok := models.ParseOrderStatus(name); ok {
		return string(s)
	}
	return "unknown"
}

func transitionResult(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, apperr.ErrInvalidOrderStatus):
		return "invalid_status"
	case errors.Is(err, apperr.ErrUpdateOrderStatus):
		return "wrong_state"
	case apperr.IsNotFound(err):
		return "not_found"
	default:
		return "error"
	}
}
