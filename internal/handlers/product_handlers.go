package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gosimple/slug"

	"github.com/boostbay/boostbay-golang/internal/models"
)

//
// --- Product Handlers (Public + Admin) ---
//

// GetProducts is the handler for GET /v1/products.
func (h *Handlers) GetProducts(c *gin.Context) {
	products := []models.Product{}
	query := `
		SELECT id, name, slug, description, price, discounted_price, is_featured,
		       created_at, updated_at
		FROM products ORDER BY is_featured DESC, name`
	if err := h.DB.Select(&products, query); err != nil {
		h.Log.WithError(err).Error("failed to list products")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load products"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"products": products})
}

// GetProductBySlug is the handler for GET /v1/products/:slug.
func (h *Handlers) GetProductBySlug(c *gin.Context) {
	var product models.Product
	query := `
		SELECT id, name, slug, description, price, discounted_price, is_featured,
		       created_at, updated_at
		FROM products WHERE slug = $1`
	if err := h.DB.Get(&product, query, c.Param("slug")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"product": product})
}

// ProductInput is the JSON body for creating or updating a product. The slug
// is always derived from the name, never accepted from the client.
type ProductInput struct {
	Name            string   `json:"name" binding:"required"`
	Description     string   `json:"description"`
	Price           float64  `json:"price" binding:"required,gt=0"`
	DiscountedPrice *float64 `json:"discountedPrice"`
	IsFeatured      bool     `json:"isFeatured"`
}

// AdminCreateProduct is the handler for POST /v1/admin/products.
func (h *Handlers) AdminCreateProduct(c *gin.Context) {
	var input ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var product models.Product
	query := `
		INSERT INTO products (name, slug, description, price, discounted_price, is_featured)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, name, slug, description, price, discounted_price, is_featured, created_at, updated_at`

	err := h.DB.Get(&product, query,
		input.Name, slug.Make(input.Name), input.Description,
		input.Price, input.DiscountedPrice, input.IsFeatured)
	if err != nil {
		h.Log.WithError(err).Error("failed to create product")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Product created", "product": product})
}

// AdminUpdateProduct is the handler for PUT /v1/admin/products/:id.
func (h *Handlers) AdminUpdateProduct(c *gin.Context) {
	var input ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	query := `
		UPDATE products
		SET name = $1, slug = $2, description = $3, price = $4,
		    discounted_price = $5, is_featured = $6, updated_at = now()
		WHERE id = $7`

	result, err := h.DB.Exec(query,
		input.Name, slug.Make(input.Name), input.Description,
		input.Price, input.DiscountedPrice, input.IsFeatured, c.Param("id"))
	if err != nil {
		h.Log.WithError(err).Error("failed to update product")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
		return
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product updated"})
}

// AdminDeleteProduct is the handler for DELETE /v1/admin/products/:id.
func (h *Handlers) AdminDeleteProduct(c *gin.Context) {
	result, err := h.DB.Exec("DELETE FROM products WHERE id = $1", c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
		return
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
}
