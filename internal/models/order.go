package models

import (
	"strings"
	"time"
)

type OrderStatus string

const (
	OrderStatusActive    OrderStatus = "ACTIVE"
	OrderStatusCheckout  OrderStatus = "CHECKOUT"
	OrderStatusPlaced    OrderStatus = "PLACED"
	OrderStatusDelivered OrderStatus = "DELIVERED"
)

// OrderStatuses lists every status in lifecycle order.
var OrderStatuses = []OrderStatus{
	OrderStatusActive,
	OrderStatusCheckout,
	OrderStatusPlaced,
	OrderStatusDelivered,
}

// ParseOrderStatus matches name against the enumeration. Matching is exact
// (after trimming surrounding whitespace).
func ParseOrderStatus(name string) (OrderStatus, bool) {
	name = strings.TrimSpace(name)
	for _, s := range OrderStatuses {
		if string(s) == name {
			return s, true
		}
	}
	return "", false
}

type Order struct {
	ID            uint        `gorm:"primaryKey" json:"id"`
	Status        OrderStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	DeliveryPrice float64     `gorm:"not null;default:0" json:"delivery_price" validate:"gte=0"`
	UserID        uint        `gorm:"not null;index" json:"user_id"`
	User          *AppUser    `json:"-"`
	OrderItems    []OrderItem `gorm:"foreignKey:OrderID" json:"order_items"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

// AddOrderItem sets the item's back-reference and adds it to the item set.
// An item already present (same id) is replaced rather than duplicated.
func (o *Order) AddOrderItem(item *OrderItem) {
	id := o.ID
	item.OrderID = &id
	for i := range o.OrderItems {
		if item.ID != 0 && o.OrderItems[i].ID == item.ID {
			o.OrderItems[i] = *item
			return
		}
	}
	o.OrderItems = append(o.OrderItems, *item)
}

// ItemForProduct returns the order's item referencing productID, if any.
func (o *Order) ItemForProduct(productID uint) (*OrderItem, bool) {
	for i := range o.OrderItems {
		if o.OrderItems[i].ProductID == productID {
			return &o.OrderItems[i], true
		}
	}
	return nil, false
}

type OrderItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Quantity  int       `gorm:"not null" json:"quantity" validate:"gte=1"`
	ProductID uint      `gorm:"not null;index" json:"product_id" validate:"required"`
	Product   *Product  `json:"product,omitempty" validate:"-"`
	OrderID   *uint     `gorm:"index" json:"order_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Price is quantity × product price; the product must be loaded.
func (i *OrderItem) Price() float64 {
	if i.Product == nil {
		return 0
	}
	return float64(i.Quantity) * i.Product.Price
}

func (i *OrderItem) Attached() bool { return i.OrderID != nil }
