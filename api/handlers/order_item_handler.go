package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"qual-store/api/response"
	"qual-store/internal/models"
	"qual-store/internal/services"
)

type OrderItemHandler struct {
	orderItemService *services.OrderItemService
}

func NewOrderItemHandler(orderItemService *services.OrderItemService) *OrderItemHandler {
	return &OrderItemHandler{orderItemService: orderItemService}
}

// POST /api/orderItems/:productId
func (h *OrderItemHandler) AddItem(c *gin.Context) {
	productID, ok := idParam(c, "productId")
	if !ok {
		return
	}
	var req models.AddOrderItemRequest
	if !bindJSON(c, &req) {
		return
	}
	item, err := h.orderItemService.AddItem(c.Request.Context(), productID, &models.OrderItem{Quantity: req.Quantity})
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"data": item})
}

// GET /api/orderItems
func (h *OrderItemHandler) GetAll(c *gin.Context) {
	items, err := h.orderItemService.GetAll(c.Request.Context())
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"data": items})
}

// GET /api/orderItems/:id
func (h *OrderItemHandler) GetByID(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	item, err := h.orderItemService.FindByID(c.Request.Context(), id)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"data": item})
}

// GET /api/orderItems/:id/price
func (h *OrderItemHandler) Price(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	price, err := h.orderItemService.PriceOf(c.Request.Context(), id)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"order_item_id": id, "price": price})
}

// PUT /api/orderItems/:id/quantity?quantity=N
// A quantity below one removes the item.
func (h *OrderItemHandler) ModifyQuantity(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var q models.UpdateQuantityQuery
	if !bindQuery(c, &q) {
		return
	}
	if err := h.orderItemService.ModifyQuantity(c.Request.Context(), id, *q.Quantity); err != nil {
		response.RespondAppError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DELETE /api/orderItems/:id
func (h *OrderItemHandler) Remove(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.orderItemService.RemoveByID(c.Request.Context(), id); err != nil {
		response.RespondAppError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
