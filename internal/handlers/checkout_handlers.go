package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/boostbay/boostbay-golang/internal/orders"
)

// CheckoutInput defines the customer details collected by the checkout form.
// Validation failures are caught here, before any write.
type CheckoutInput struct {
	FullName string `json:"fullName" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone"`
}

// Checkout is the handler for POST /v1/checkout. It snapshots the cart,
// delegates to the order service, and clears the cart only after the order
// has been persisted.
func (h *Handlers) Checkout(c *gin.Context) {
	// 1. --- Get Customer ID ---
	userID := currentUserID(c)

	// 2. --- Bind & Validate Customer Details ---
	var input CheckoutInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// 3. --- Snapshot the Cart ---
	snapshot := h.Cart.Get(userID)

	// 4. --- Submit the Order ---
	order, err := h.Orders.Checkout(c.Request.Context(), orders.CheckoutInput{
		UserID:        userID,
		CustomerName:  input.FullName,
		CustomerEmail: input.Email,
		Items:         snapshot.Items,
	})
	if err != nil {
		switch {
		case errors.Is(err, orders.ErrEmptyCart):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Your cart is empty"})
		case errors.Is(err, orders.ErrNotAuthenticated):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Please log in to check out"})
		case errors.Is(err, orders.ErrStoreNotConfigured):
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"error": "The order database is not configured. Run the migrations or use the admin debug page to create the order tables.",
			})
		default:
			h.Log.WithError(err).Error("checkout failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
		}
		return
	}

	// 5. --- Clear the Cart & Respond ---
	h.Cart.Clear(userID)

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Order placed successfully",
		"orderId":     order.ID,
		"reference":   order.Reference,
		"status":      order.Status,
		"totalAmount": order.TotalAmount,
	})
}
