package handlers

import (
	"github.com/gin-gonic/gin"

	"qual-store/api/response"
	"qual-store/internal/services"
)

type CartHandler struct {
	cartService *services.CartService
}

func NewCartHandler(cartService *services.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// POST /api/orders/items/:orderItemId
// Puts the item into the caller's ACTIVE order, opening one if needed.
func (h *CartHandler) AddToOrder(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	orderItemID, ok := idParam(c, "orderItemId")
	if !ok {
		return
	}
	order, err := h.cartService.AddToOrder(c.Request.Context(), caller, orderItemID)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"data": order})
}
