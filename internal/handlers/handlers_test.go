package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boostbay/boostbay-golang/internal/cart"
	"github.com/boostbay/boostbay-golang/internal/models"
	"github.com/boostbay/boostbay-golang/internal/orders"
)

// memOrderRepo is an in-memory orders.Repository so the cart and checkout
// handlers can be exercised over HTTP without a database.
type memOrderRepo struct {
	nextID  int64
	orders  map[int64]*models.Order
	items   map[int64][]models.OrderItem
	history map[int64][]orders.Status
}

func newMemOrderRepo() *memOrderRepo {
	return &memOrderRepo{
		nextID:  1,
		orders:  make(map[int64]*models.Order),
		items:   make(map[int64][]models.OrderItem),
		history: make(map[int64][]orders.Status),
	}
}

func (r *memOrderRepo) CreateOrder(_ context.Context, order *models.Order, items []models.OrderItem) error {
	order.ID = r.nextID
	r.nextID++
	for i := range items {
		items[i].OrderID = order.ID
	}
	stored := *order
	r.orders[order.ID] = &stored
	r.items[order.ID] = append([]models.OrderItem(nil), items...)
	return nil
}

func (r *memOrderRepo) AppendStatusHistory(_ context.Context, orderID int64, status orders.Status) error {
	r.history[orderID] = append(r.history[orderID], status)
	return nil
}

func (r *memOrderRepo) OrderStatus(_ context.Context, orderID int64) (orders.Status, error) {
	order, ok := r.orders[orderID]
	if !ok {
		return "", orders.ErrOrderNotFound
	}
	return orders.Status(order.Status), nil
}

func (r *memOrderRepo) SetOrderStatus(_ context.Context, orderID int64, from, to orders.Status) error {
	order, ok := r.orders[orderID]
	if !ok || orders.Status(order.Status) != from {
		return orders.ErrStatusConflict
	}
	order.Status = string(to)
	return nil
}

func (r *memOrderRepo) ListOrders(_ context.Context, f orders.ListFilter) ([]models.Order, int, error) {
	var list []models.Order
	for _, order := range r.orders {
		if f.UserID != nil && order.UserID != *f.UserID {
			continue
		}
		if f.Status != nil && order.Status != string(*f.Status) {
			continue
		}
		list = append(list, *order)
	}
	return list, len(list), nil
}

func (r *memOrderRepo) ItemsForOrders(_ context.Context, orderIDs []int64) (map[int64][]models.OrderItem, error) {
	grouped := make(map[int64][]models.OrderItem)
	for _, id := range orderIDs {
		if items, ok := r.items[id]; ok {
			grouped[id] = items
		}
	}
	return grouped, nil
}

func (r *memOrderRepo) GetOrder(_ context.Context, orderID int64) (*models.Order, error) {
	order, ok := r.orders[orderID]
	if !ok {
		return nil, orders.ErrOrderNotFound
	}
	copied := *order
	return &copied, nil
}

func (r *memOrderRepo) StatusHistory(_ context.Context, orderID int64) ([]models.OrderStatusEntry, error) {
	var entries []models.OrderStatusEntry
	for i, status := range r.history[orderID] {
		entries = append(entries, models.OrderStatusEntry{
			ID:      int64(i + 1),
			OrderID: orderID,
			Status:  string(status),
		})
	}
	return entries, nil
}

// newTestRouter wires the cart, checkout and order handlers onto a router
// that stamps every request with the given user id, standing in for the auth
// middleware.
func newTestRouter(t *testing.T, userID int64) (*gin.Engine, *memOrderRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := logrus.New()
	log.SetOutput(io.Discard)

	repo := newMemOrderRepo()
	h := &Handlers{
		Cart:   cart.NewStore(),
		Orders: orders.NewService(repo, log.WithField("component", "orders")),
		Log:    log,
	}

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("userID", userID)
		c.Next()
	})
	router.GET("/cart", h.GetCart)
	router.POST("/cart/items", h.AddToCart)
	router.PUT("/cart/items/:id", h.UpdateCartItem)
	router.DELETE("/cart/items/:id", h.DeleteCartItem)
	router.DELETE("/cart", h.ClearCart)
	router.POST("/checkout", h.Checkout)
	router.GET("/orders", h.GetMyOrders)
	router.GET("/orders/:id", h.GetOrderDetails)

	return router, repo
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestCartFlow(t *testing.T) {
	router, _ := newTestRouter(t, 7)

	w := doJSON(t, router, http.MethodPost, "/cart/items", gin.H{
		"id": "yt-sub-500", "name": "500 YouTube Subscribers", "unitPrice": 24.99, "quantity": 2,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// Same id again merges into the existing line.
	w = doJSON(t, router, http.MethodPost, "/cart/items", gin.H{
		"id": "yt-sub-500", "name": "500 YouTube Subscribers", "unitPrice": 24.99, "quantity": 1,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	body := decodeBody(t, doJSON(t, router, http.MethodGet, "/cart", nil))
	assert.Equal(t, float64(3), body["totalItems"])
	assert.InDelta(t, 74.97, body["totalAmount"].(float64), 0.001)

	w = doJSON(t, router, http.MethodPut, "/cart/items/yt-sub-500", gin.H{"quantity": 1})
	require.Equal(t, http.StatusOK, w.Code)

	body = decodeBody(t, doJSON(t, router, http.MethodGet, "/cart", nil))
	assert.Equal(t, float64(1), body["totalItems"])

	w = doJSON(t, router, http.MethodDelete, "/cart/items/yt-sub-500", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body = decodeBody(t, doJSON(t, router, http.MethodGet, "/cart", nil))
	assert.Equal(t, float64(0), body["totalItems"])
}

func TestCartUpdateMissingItem(t *testing.T) {
	router, _ := newTestRouter(t, 7)

	w := doJSON(t, router, http.MethodPut, "/cart/items/nope", gin.H{"quantity": 2})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, router, http.MethodDelete, "/cart/items/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCheckoutHappyPath(t *testing.T) {
	router, repo := newTestRouter(t, 7)

	doJSON(t, router, http.MethodPost, "/cart/items", gin.H{
		"id": "ig-fol-1000", "name": "1000 Instagram Followers", "unitPrice": 12.50, "quantity": 2,
	})

	w := doJSON(t, router, http.MethodPost, "/checkout", gin.H{
		"fullName": "Ada Lovelace", "email": "ada@example.com",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "pending", body["status"])
	assert.InDelta(t, 25.0, body["totalAmount"].(float64), 0.001)

	require.Len(t, repo.orders, 1)
	require.Len(t, repo.items[1], 1)
	assert.Equal(t, []orders.Status{orders.StatusPending}, repo.history[1])

	// The cart is emptied only after the order is persisted.
	cartBody := decodeBody(t, doJSON(t, router, http.MethodGet, "/cart", nil))
	assert.Equal(t, float64(0), cartBody["totalItems"])
}

func TestCheckoutEmptyCart(t *testing.T) {
	router, repo := newTestRouter(t, 7)

	w := doJSON(t, router, http.MethodPost, "/checkout", gin.H{
		"fullName": "Ada Lovelace", "email": "ada@example.com",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, repo.orders)
}

func TestCheckoutInvalidInput(t *testing.T) {
	router, repo := newTestRouter(t, 7)

	w := doJSON(t, router, http.MethodPost, "/checkout", gin.H{"fullName": "No Email"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, repo.orders)
}

func TestGetOrderDetailsOwnership(t *testing.T) {
	router, repo := newTestRouter(t, 7)

	doJSON(t, router, http.MethodPost, "/cart/items", gin.H{
		"id": "tt-fol-1000", "name": "1000 TikTok Followers", "unitPrice": 9.99, "quantity": 1,
	})
	w := doJSON(t, router, http.MethodPost, "/checkout", gin.H{
		"fullName": "Ada Lovelace", "email": "ada@example.com",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, http.MethodGet, "/orders/1", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// Another user's view of the same order: indistinguishable from absent.
	otherRouter, otherRepo := newTestRouter(t, 8)
	otherRepo.orders = repo.orders
	otherRepo.items = repo.items
	w = doJSON(t, otherRouter, http.MethodGet, "/orders/1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetMyOrdersFiltersByUser(t *testing.T) {
	router, repo := newTestRouter(t, 7)

	doJSON(t, router, http.MethodPost, "/cart/items", gin.H{
		"id": "fb-like-1000", "name": "1000 Facebook Likes", "unitPrice": 7.99, "quantity": 1,
	})
	doJSON(t, router, http.MethodPost, "/checkout", gin.H{
		"fullName": "Ada Lovelace", "email": "ada@example.com",
	})

	// A second user's order must not leak into the first user's listing.
	repo.orders[99] = &models.Order{ID: 99, UserID: 8, Status: "pending"}

	body := decodeBody(t, doJSON(t, router, http.MethodGet, "/orders", nil))
	assert.Equal(t, float64(1), body["total"])
}
