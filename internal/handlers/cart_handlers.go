package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/boostbay/boostbay-golang/internal/cart"
)

//
// --- Cart Handlers (Customer-Only) ---
//
// The cart is session-scoped in-memory state: it is never persisted and a
// server restart empties it, matching browser-session semantics.

// GetCart is the handler for GET /v1/cart.
func (h *Handlers) GetCart(c *gin.Context) {
	userID := currentUserID(c)

	current := h.Cart.Get(userID)
	c.JSON(http.StatusOK, gin.H{
		"items":       current.Items,
		"totalItems":  current.TotalItems(),
		"totalAmount": current.TotalAmount(),
	})
}

// AddToCartInput defines the JSON for adding an item to the cart.
type AddToCartInput struct {
	ID          string  `json:"id" binding:"required"`
	Name        string  `json:"name" binding:"required"`
	UnitPrice   float64 `json:"unitPrice" binding:"gte=0"`
	Quantity    int     `json:"quantity" binding:"required,gt=0"`
	ServiceType string  `json:"serviceType"`
	ServiceURL  string  `json:"serviceUrl"`
}

// AddToCart is the handler for POST /v1/cart/items. Adding an id that is
// already in the cart merges into the existing line.
func (h *Handlers) AddToCart(c *gin.Context) {
	userID := currentUserID(c)

	var input AddToCartInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	h.Cart.Add(userID, cart.Item{
		ID:          input.ID,
		Name:        input.Name,
		UnitPrice:   input.UnitPrice,
		Quantity:    input.Quantity,
		ServiceType: input.ServiceType,
		ServiceURL:  input.ServiceURL,
	})

	current := h.Cart.Get(userID)
	c.JSON(http.StatusCreated, gin.H{
		"message":     "Item added to cart",
		"totalItems":  current.TotalItems(),
		"totalAmount": current.TotalAmount(),
	})
}

// UpdateCartItemInput defines the JSON for updating an item's quantity.
type UpdateCartItemInput struct {
	Quantity int `json:"quantity" binding:"required"`
}

// UpdateCartItem is the handler for PUT /v1/cart/items/:id. The quantity is
// clamped to >= 1 here; removal is an explicit DELETE, never a zero write.
func (h *Handlers) UpdateCartItem(c *gin.Context) {
	userID := currentUserID(c)
	itemID := c.Param("id")

	var input UpdateCartItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !h.Cart.UpdateQuantity(userID, itemID, cart.ClampQuantity(input.Quantity)) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found in cart"})
		return
	}

	current := h.Cart.Get(userID)
	c.JSON(http.StatusOK, gin.H{
		"message":     "Cart item quantity updated",
		"totalItems":  current.TotalItems(),
		"totalAmount": current.TotalAmount(),
	})
}

// DeleteCartItem is the handler for DELETE /v1/cart/items/:id.
func (h *Handlers) DeleteCartItem(c *gin.Context) {
	userID := currentUserID(c)
	itemID := c.Param("id")

	if !h.Cart.Remove(userID, itemID) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found in cart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Cart item removed"})
}

// ClearCart is the handler for DELETE /v1/cart. Idempotent.
func (h *Handlers) ClearCart(c *gin.Context) {
	h.Cart.Clear(currentUserID(c))
	c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
}
