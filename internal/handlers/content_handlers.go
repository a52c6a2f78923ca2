package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/boostbay/boostbay-golang/internal/models"
)

//
// --- Policy & Contact Handlers (Public + Admin) ---
//

// GetPolicy is the handler for GET /v1/policies/:slug (terms, privacy, refund).
func (h *Handlers) GetPolicy(c *gin.Context) {
	var policy models.Policy
	query := `SELECT id, slug, title, body, updated_at FROM policies WHERE slug = $1`
	if err := h.DB.Get(&policy, query, c.Param("slug")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Policy not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"policy": policy})
}

// PolicyInput is the JSON body for updating a policy page.
type PolicyInput struct {
	Title string `json:"title" binding:"required"`
	Body  string `json:"body" binding:"required"`
}

// AdminUpsertPolicy is the handler for PUT /v1/admin/policies/:slug. Creates
// the page on first write, updates it afterwards.
func (h *Handlers) AdminUpsertPolicy(c *gin.Context) {
	var input PolicyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var policy models.Policy
	query := `
		INSERT INTO policies (slug, title, body)
		VALUES ($1, $2, $3)
		ON CONFLICT (slug) DO UPDATE SET title = EXCLUDED.title, body = EXCLUDED.body, updated_at = now()
		RETURNING id, slug, title, body, updated_at`

	if err := h.DB.Get(&policy, query, c.Param("slug"), input.Title, input.Body); err != nil {
		h.Log.WithError(err).Error("failed to save policy")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save policy"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Policy saved", "policy": policy})
}

// GetContactInfo is the handler for GET /v1/contact.
func (h *Handlers) GetContactInfo(c *gin.Context) {
	var info models.ContactInfo
	query := `SELECT id, email, phone, address, updated_at FROM contact_info ORDER BY id LIMIT 1`
	if err := h.DB.Get(&info, query); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Contact information is not set"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"contact": info})
}

// ContactInfoInput is the JSON body for updating contact details.
type ContactInfoInput struct {
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// AdminUpdateContactInfo is the handler for PUT /v1/admin/contact. The table
// holds a single row; the first write creates it.
func (h *Handlers) AdminUpdateContactInfo(c *gin.Context) {
	var input ContactInfoInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var info models.ContactInfo
	query := `
		INSERT INTO contact_info (id, email, phone, address)
		VALUES (1, $1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET email = EXCLUDED.email, phone = EXCLUDED.phone,
		                               address = EXCLUDED.address, updated_at = now()
		RETURNING id, email, phone, address, updated_at`

	if err := h.DB.Get(&info, query, input.Email, input.Phone, input.Address); err != nil {
		h.Log.WithError(err).Error("failed to save contact info")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save contact information"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Contact information updated", "contact": info})
}
