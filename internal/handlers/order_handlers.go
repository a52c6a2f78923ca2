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
// --- Order Retrieval Handlers (Customer-Only) ---
//

// GetMyOrders is the handler for GET /v1/orders.
func (h *Handlers) GetMyOrders(c *gin.Context) {
	userID := currentUserID(c)

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	list, total, err := h.Orders.List(c.Request.Context(), orders.ListFilter{
		UserID:   &userID,
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		if errors.Is(err, orders.ErrStoreNotConfigured) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "The order database is not configured"})
			return
		}
		// Read failures degrade to an empty listing rather than a blocking
		// error.
		h.Log.WithError(err).Error("failed to list orders")
		list = []models.Order{}
		total = 0
	}

	c.JSON(http.StatusOK, gin.H{
		"orders": list,
		"total":  total,
	})
}

// GetOrderDetails is the handler for GET /v1/orders/:id.
func (h *Handlers) GetOrderDetails(c *gin.Context) {
	userID := currentUserID(c)

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

	// Ownership check: customers only ever see their own orders.
	if order.UserID != userID {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	order.CustomerEmail = nil // not part of the customer view

	c.JSON(http.StatusOK, gin.H{"order": order})
}
