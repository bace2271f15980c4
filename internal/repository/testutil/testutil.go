package testutil

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"qual-store/internal/database"
	"qual-store/internal/logger"
	"qual-store/internal/models"
)

var (
	logOnce sync.Once
	logg    *logger.Logger
	logErr  error
)

func Logger(tb testing.TB) *logger.Logger {
	tb.Helper()
	logOnce.Do(func() {
		logg, logErr = logger.New("test")
	})
	if logErr != nil {
		tb.Fatalf("failed to init logger: %v", logErr)
	}
	return logg
}

// DB opens a private in-memory SQLite database with the full schema applied.
func DB(tb testing.TB) *gorm.DB {
	tb.Helper()

	name := strings.ReplaceAll(uuid.NewString(), "-", "")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormLogger.Default.LogMode(gormLogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		tb.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		tb.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxIdleConns(4)
	tb.Cleanup(func() { _ = sqlDB.Close() })

	if err := database.AutoMigrateAll(db); err != nil {
		tb.Fatalf("migrate: %v", err)
	}
	return db
}

func SeedUser(tb testing.TB, db *gorm.DB, username string, role models.RoleName) *models.AppUser {
	tb.Helper()
	u := &models.AppUser{Username: username, PasswordHash: "x", Role: role}
	if err := db.Create(u).Error; err != nil {
		tb.Fatalf("seed user %s: %v", username, err)
	}
	return u
}

func SeedProduct(tb testing.TB, db *gorm.DB, name string, price float64) *models.Product {
	tb.Helper()
	p := &models.Product{Name: name, Price: price}
	if err := db.Create(p).Error; err != nil {
		tb.Fatalf("seed product %s: %v", name, err)
	}
	return p
}

// SeedItem inserts a free-standing order item (not yet attached to an order).
func SeedItem(tb testing.TB, db *gorm.DB, productID uint, quantity int) *models.OrderItem {
	tb.Helper()
	item := &models.OrderItem{ProductID: productID, Quantity: quantity}
	if err := db.Omit("Product").Create(item).Error; err != nil {
		tb.Fatalf("seed item: %v", err)
	}
	return item
}

func SeedOrder(tb testing.TB, db *gorm.DB, userID uint, status models.OrderStatus, items ...*models.OrderItem) *models.Order {
	tb.Helper()
	order := &models.Order{UserID: userID, Status: status}
	if err := db.Omit("OrderItems", "User").Create(order).Error; err != nil {
		tb.Fatalf("seed order: %v", err)
	}
	for _, item := range items {
		id := order.ID
		item.OrderID = &id
		if err := db.Omit("Product").Save(item).Error; err != nil {
			tb.Fatalf("attach item %d: %v", item.ID, err)
		}
	}
	return order
}
