package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/boostbay/boostbay-golang/internal/database"
)

//
// --- Debug Handlers (Admin-Only) ---
//
// Recovery tools for a misconfigured deployment. Both are destructive and
// live behind the admin middleware.

// AdminReseedPackages is the handler for POST /v1/admin/debug/reseed-packages.
// Wipes the catalog and reinstalls the built-in default packages.
func (h *Handlers) AdminReseedPackages(c *gin.Context) {
	count, err := h.Catalog.ForceReseed(c.Request.Context())
	if err != nil {
		h.Log.WithError(err).Error("force reseed failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reseed packages"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Package catalog reseeded",
		"count":   count,
	})
}

// AdminRecreateOrderTables is the handler for
// POST /v1/admin/debug/recreate-order-tables. Drops and recreates the order
// tables; all existing orders are lost.
func (h *Handlers) AdminRecreateOrderTables(c *gin.Context) {
	if err := database.RecreateOrderTables(c.Request.Context(), h.DB); err != nil {
		h.Log.WithError(err).Error("recreate order tables failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to recreate order tables"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Order tables recreated"})
}
