package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/boostbay/boostbay-golang/internal/models"
)

//
// --- Payment Handlers (Admin-Only, Read-Only) ---
//
// Payment rows are written by the gateway integration, never here. The admin
// panel reads them to reconcile against orders.

// AdminGetPayments is the handler for GET /v1/admin/payments.
func (h *Handlers) AdminGetPayments(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	payments := []models.Payment{}
	query := `
		SELECT id, order_id, reference, provider, amount, status, created_at
		FROM payments ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	if err := h.DB.Select(&payments, query, pageSize, (page-1)*pageSize); err != nil {
		h.Log.WithError(err).Error("failed to list payments")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load payments"})
		return
	}

	var total int
	if err := h.DB.Get(&total, "SELECT count(*) FROM payments"); err != nil {
		total = len(payments)
	}

	c.JSON(http.StatusOK, gin.H{
		"payments": payments,
		"total":    total,
		"page":     page,
		"pageSize": pageSize,
	})
}
