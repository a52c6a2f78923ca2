package handlers

import (
	"database/sql"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/boostbay/boostbay-golang/internal/models"
)

//
// --- Package Handlers (Public + Admin) ---
//

// GetPackages is the handler for GET /v1/packages. Accepts ?service_type= to
// filter by platform. Never returns an empty storefront: the built-in
// defaults are served when the catalog is unreachable or unseeded.
func (h *Handlers) GetPackages(c *gin.Context) {
	serviceType := strings.ToLower(strings.TrimSpace(c.Query("service_type")))

	pkgs, err := h.Catalog.ListPackages(c.Request.Context(), serviceType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load packages"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"packages": pkgs})
}

// GetPackage is the handler for GET /v1/packages/:id.
func (h *Handlers) GetPackage(c *gin.Context) {
	id := c.Param("id")

	var pkg models.Package
	query := `
		SELECT id, name, description, service_type, service_id, units, price,
		       discounted_price, discount_percentage, is_featured, is_active,
		       created_at, updated_at
		FROM packages WHERE id = $1`
	if err := h.DB.Get(&pkg, query, id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Package not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"package": pkg})
}

// PackageInput is the JSON body for creating or updating a package.
type PackageInput struct {
	ID                 string   `json:"id" binding:"required"`
	Name               string   `json:"name" binding:"required"`
	Description        string   `json:"description"`
	ServiceType        string   `json:"serviceType" binding:"required"`
	ServiceID          string   `json:"serviceId"`
	Units              int      `json:"units" binding:"required,gt=0"`
	Price              float64  `json:"price" binding:"required,gt=0"`
	DiscountedPrice    *float64 `json:"discountedPrice"`
	DiscountPercentage float64  `json:"discountPercentage" binding:"gte=0,lte=100"`
	IsFeatured         bool     `json:"isFeatured"`
	IsActive           *bool    `json:"isActive"`
}

// AdminCreatePackage is the handler for POST /v1/admin/packages.
func (h *Handlers) AdminCreatePackage(c *gin.Context) {
	var input PackageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	query := `
		INSERT INTO packages (id, name, description, service_type, service_id, units,
		                      price, discounted_price, discount_percentage, is_featured, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := h.DB.Exec(query,
		input.ID, input.Name, input.Description, input.ServiceType, input.ServiceID,
		input.Units, input.Price, input.DiscountedPrice, input.DiscountPercentage,
		input.IsFeatured, isActive)
	if err != nil {
		if strings.Contains(err.Error(), "packages_pkey") {
			c.JSON(http.StatusConflict, gin.H{"error": "A package with this id already exists"})
			return
		}
		h.Log.WithError(err).Error("failed to create package")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create package"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Package created", "id": input.ID})
}

// AdminUpdatePackage is the handler for PUT /v1/admin/packages/:id.
func (h *Handlers) AdminUpdatePackage(c *gin.Context) {
	id := c.Param("id")

	var input PackageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	query := `
		UPDATE packages
		SET name = $1, description = $2, service_type = $3, service_id = $4,
		    units = $5, price = $6, discounted_price = $7, discount_percentage = $8,
		    is_featured = $9, is_active = $10, updated_at = now()
		WHERE id = $11`

	result, err := h.DB.Exec(query,
		input.Name, input.Description, input.ServiceType, input.ServiceID,
		input.Units, input.Price, input.DiscountedPrice, input.DiscountPercentage,
		input.IsFeatured, isActive, id)
	if err != nil {
		h.Log.WithError(err).Error("failed to update package")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update package"})
		return
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Package not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Package updated", "id": id})
}

// AdminDeletePackage is the handler for DELETE /v1/admin/packages/:id.
// Packages referenced by order items stay in place to keep order history
// intact; they are deactivated instead of deleted.
func (h *Handlers) AdminDeletePackage(c *gin.Context) {
	id := c.Param("id")

	var referenced bool
	err := h.DB.Get(&referenced, "SELECT EXISTS (SELECT 1 FROM order_items WHERE package_id = $1)", id)
	if err != nil && err != sql.ErrNoRows {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete package"})
		return
	}

	if referenced {
		result, err := h.DB.Exec("UPDATE packages SET is_active = false, updated_at = now() WHERE id = $1", id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to deactivate package"})
			return
		}
		if rows, _ := result.RowsAffected(); rows == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Package not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Package is referenced by orders and was deactivated instead"})
		return
	}

	result, err := h.DB.Exec("DELETE FROM packages WHERE id = $1", id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete package"})
		return
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Package not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Package deleted"})
}
