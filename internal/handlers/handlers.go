package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"

	"github.com/boostbay/boostbay-golang/internal/auth"
	"github.com/boostbay/boostbay-golang/internal/cart"
	"github.com/boostbay/boostbay-golang/internal/catalog"
	"github.com/boostbay/boostbay-golang/internal/orders"
)

// Handlers holds all dependencies for the HTTP layer.
type Handlers struct {
	DB      *sqlx.DB
	Tokens  *auth.Manager
	Cart    *cart.Store
	Orders  *orders.Service
	Catalog *catalog.Service
	Log     *logrus.Logger
}

// currentUserID reads the user ID placed on the context by AuthMiddleware.
func currentUserID(c *gin.Context) int64 {
	v, ok := c.Get("userID")
	if !ok {
		return 0
	}
	id, _ := v.(int64)
	return id
}
