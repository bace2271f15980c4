package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"qual-store/api/response"
	"qual-store/internal/models"
	"qual-store/internal/services"
)

type OrderHandler struct {
	orderService *services.OrderService
}

func NewOrderHandler(orderService *services.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// GET /api/orders
func (h *OrderHandler) GetAll(c *gin.Context) {
	orders, err := h.orderService.GetAllOrders(c.Request.Context())
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"data": orders})
}

// GET /api/orders/mine
func (h *OrderHandler) GetMine(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	orders, err := h.orderService.GetAllOrdersByUser(c.Request.Context(), caller)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"data": orders})
}

// GET /api/orders/:id
func (h *OrderHandler) GetByID(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	order, err := h.orderService.FindOrderByID(c.Request.Context(), id)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"data": order})
}

// PUT /api/orders/:id/status?status=X
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var q models.UpdateStatusQuery
	if !bindQuery(c, &q) {
		return
	}
	order, err := h.orderService.UpdateOrderStatus(c.Request.Context(), caller, id, q.Status)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"data": order})
}

// DELETE /api/orders/:id
func (h *OrderHandler) Delete(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.orderService.DeleteOrderByID(c.Request.Context(), caller, id); err != nil {
		response.RespondAppError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GET /api/orders/products-quantity
func (h *OrderHandler) ProductsQuantity(c *gin.Context) {
	totals, err := h.orderService.ProductsQuantity(c.Request.Context())
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"data": services.SortedProductQuantities(totals)})
}
