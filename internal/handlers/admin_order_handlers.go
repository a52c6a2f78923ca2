package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/boostbay/boostbay-golang/internal/models"
	"github.com/boostbay/boostbay-golang/internal/orders"
)

//
// --- Order Handlers (Admin-Only) ---
//

// AdminGetOrders is the handler for GET /v1/admin/orders. Supports ?status=
// and page/page_size pagination; customer emails are resolved for display.
func (h *Handlers) AdminGetOrders(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	filter := orders.ListFilter{
		Page:         page,
		PageSize:     pageSize,
		ResolveEmail: true,
	}

	if raw := c.Query("status"); raw != "" {
		status, ok := orders.ParseStatus(raw)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown status filter: " + raw})
			return
		}
		filter.Status = &status
	}

	list, total, err := h.Orders.List(c.Request.Context(), filter)
	if err != nil {
		if errors.Is(err, orders.ErrStoreNotConfigured) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "The order database is not configured"})
			return
		}
		h.Log.WithError(err).Error("admin order listing failed")
		list = []models.Order{}
		total = 0
	}

	c.JSON(http.StatusOK, gin.H{
		"orders":   list,
		"total":    total,
		"page":     page,
		"pageSize": pageSize,
	})
}

// AdminGetOrderDetails is the handler for GET /v1/admin/orders/:id. The
// response includes the full status history alongside the order.
func (h *Handlers) AdminGetOrderDetails(c *gin.Context) {
	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order id"})
		return
	}

	order, err := h.Orders.Get(c.Request.Context(), orderID)
	if err != nil {
		if errors.Is(err, orders.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
		return
	}

	history, err := h.Orders.History(c.Request.Context(), orderID)
	if err != nil {
		// History is advisory; the order itself is still useful.
		h.Log.WithError(err).WithField("order_id", orderID).Warn("failed to load status history")
		history = []models.OrderStatusEntry{}
	}

	c.JSON(http.StatusOK, gin.H{
		"order":   order,
		"history": history,
	})
}

// UpdateOrderStatusInput is the JSON body for PATCH /v1/admin/orders/:id/status.
type UpdateOrderStatusInput struct {
	Status string `json:"status" binding:"required"`
}

// AdminUpdateOrderStatus is the handler for PATCH /v1/admin/orders/:id/status.
// Transitions are validated server-side; an illegal move is rejected with the
// allowed options rather than applied.
func (h *Handlers) AdminUpdateOrderStatus(c *gin.Context) {
	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order id"})
		return
	}

	var input UpdateOrderStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	next, ok := orders.ParseStatus(input.Status)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown status: " + input.Status})
		return
	}

	err = h.Orders.UpdateStatus(c.Request.Context(), orderID, next)
	if err != nil {
		switch {
		case errors.Is(err, orders.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		case errors.Is(err, orders.ErrInvalidTransition):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, orders.ErrStatusConflict):
			c.JSON(http.StatusConflict, gin.H{"error": "Order status changed concurrently; reload and retry"})
		case errors.Is(err, orders.ErrStoreNotConfigured):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "The order database is not configured"})
		default:
			h.Log.WithError(err).WithField("order_id", orderID).Error("status update failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order status"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order status updated",
		"orderId": orderID,
		"status":  next,
	})
}
