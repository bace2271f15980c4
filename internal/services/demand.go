package services

import (
	"sort"

	"qual-store/internal/models"
)

// ProductsQuantity sums item quantities per product across every order,
// whatever the order's status.
func ProductsQuantity(orders []models.Order) map[uint]int {
	totals := make(map[uint]int)
	for _, order := range orders {
		for _, item := range order.OrderItems {
			if item.Quantity < 1 {
				continue
			}
			totals[item.ProductID] += item.Quantity
		}
	}
	return totals
}

// SortedProductQuantities flattens totals ordered by product id.
func SortedProductQuantities(totals map[uint]int) []models.ProductQuantity {
	out := make([]models.ProductQuantity, 0, len(totals))
	for id, qty := range totals {
		out = append(out, models.ProductQuantity{ProductID: id, Quantity: qty})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductID < out[j].ProductID })
	return out
}
