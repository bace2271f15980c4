package services

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"

	"qual-store/internal/identity"
	"qual-store/internal/metrics"
	"qual-store/internal/models"
	"qual-store/internal/repository"
	"qual-store/internal/repository/testutil"
	"qual-store/internal/validation"
)

type harness struct {
	db       *gorm.DB
	metrics  *metrics.Metrics
	orders   repository.OrderRepo
	items    repository.OrderItemRepo
	products repository.ProductRepo
	users    repository.UserRepo

	ledger  *OrderItemService
	cart    *CartService
	order   *OrderService
	product *ProductService
	auth    *AuthService
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)
	v := validation.New()
	m := metrics.New(prometheus.NewRegistry())

	h := &harness{
		db:       db,
		metrics:  m,
		orders:   repository.NewOrderRepo(db, log),
		items:    repository.NewOrderItemRepo(db, log),
		products: repository.NewProductRepo(db, log),
		users:    repository.NewUserRepo(db, log),
	}
	h.ledger = NewOrderItemService(db, log, h.items, h.products, v, m)
	h.cart = NewCartService(db, log, h.orders, h.items, h.users, h.ledger, v, 0, m)
	h.order = NewOrderService(db, log, h.orders, h.items, h.users, NewStatusMachine(nil), m)
	h.product = NewProductService(log, h.products, v)
	h.auth = NewAuthService(log, h.users, v, "test-secret", time.Hour)
	return h
}

func (h *harness) user(t *testing.T, username string, role models.RoleName) identity.Caller {
	t.Helper()
	u := testutil.SeedUser(t, h.db, username, role)
	return identity.Caller{Username: u.Username, Role: u.Role}
}
