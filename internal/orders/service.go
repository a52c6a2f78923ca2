package orders

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/boostbay/boostbay-golang/internal/cart"
	"github.com/boostbay/boostbay-golang/internal/models"
)

var (
	ErrNotAuthenticated  = errors.New("checkout requires an authenticated user")
	ErrEmptyCart         = errors.New("cannot check out an empty cart")
	ErrUnknownStatus     = errors.New("unknown order status")
	ErrInvalidTransition = errors.New("illegal status transition")
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// Service owns the order lifecycle: checkout, status transitions and the
// listing views.
type Service struct {
	repo Repository
	log  *logrus.Entry
}

func NewService(repo Repository, log *logrus.Entry) *Service {
	return &Service{repo: repo, log: log}
}

// CheckoutInput is the cart snapshot plus the customer details collected by
// the checkout form.
type CheckoutInput struct {
	UserID        int64
	CustomerName  string
	CustomerEmail string
	Items         []cart.Item
}

// Checkout turns a cart snapshot into a persisted order.
//
// The header and its items are written in a single transaction: an item
// failure rolls the header back. The initial history row is written after
// the commit and is advisory: its failure is logged, never surfaced.
// Unit prices come from the snapshot, not refetched from the catalog, so the
// order total is fixed at creation time. No idempotency key is used; a
// double submit creates two independent orders.
func (s *Service) Checkout(ctx context.Context, in CheckoutInput) (*models.Order, error) {
	if in.UserID <= 0 {
		return nil, ErrNotAuthenticated
	}
	if len(in.Items) == 0 {
		return nil, ErrEmptyCart
	}

	var total float64
	items := make([]models.OrderItem, 0, len(in.Items))
	for _, line := range in.Items {
		total += line.UnitPrice * float64(line.Quantity)

		item := models.OrderItem{
			PackageID:   line.ID,
			Quantity:    line.Quantity,
			Price:       line.UnitPrice,
			ServiceType: line.ServiceType,
		}
		if line.ServiceURL != "" {
			serviceURL := line.ServiceURL
			item.ServiceURL = &serviceURL
		}
		items = append(items, item)
	}

	order := &models.Order{
		Reference:     uuid.NewString(),
		UserID:        in.UserID,
		TotalAmount:   total,
		Status:        string(StatusPending),
		PaymentStatus: "pending",
	}

	if err := s.repo.CreateOrder(ctx, order, items); err != nil {
		return nil, err
	}

	if err := s.repo.AppendStatusHistory(ctx, order.ID, StatusPending); err != nil {
		s.log.WithError(err).WithField("order_id", order.ID).
			Warn("failed to record initial order status history")
	}

	order.Items = items
	return order, nil
}

// UpdateStatus performs one admin-triggered transition. The status change
// itself is the consistency boundary; the history append is advisory and a
// failure there does not roll the change back.
func (s *Service) UpdateStatus(ctx context.Context, orderID int64, next Status) error {
	if !next.Valid() {
		return ErrUnknownStatus
	}

	current, err := s.repo.OrderStatus(ctx, orderID)
	if err != nil {
		return err
	}
	if !current.CanTransitionTo(next) {
		return errors.Wrapf(ErrInvalidTransition, "%s -> %s", current, next)
	}

	if err := s.repo.SetOrderStatus(ctx, orderID, current, next); err != nil {
		return err
	}

	if err := s.repo.AppendStatusHistory(ctx, orderID, next); err != nil {
		s.log.WithError(err).WithFields(logrus.Fields{
			"order_id": orderID,
			"status":   next,
		}).Warn("failed to record order status history")
	}

	return nil
}

// List returns one page of orders with their items attached, plus the total
// match count. An items-query failure degrades to empty item lists rather
// than failing the whole page.
func (s *Service) List(ctx context.Context, f ListFilter) ([]models.Order, int, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 {
		f.PageSize = defaultPageSize
	}
	if f.PageSize > maxPageSize {
		f.PageSize = maxPageSize
	}

	orders, total, err := s.repo.ListOrders(ctx, f)
	if err != nil {
		return nil, 0, err
	}

	orderIDs := make([]int64, len(orders))
	for i, o := range orders {
		orderIDs[i] = o.ID
	}

	itemsByOrder, err := s.repo.ItemsForOrders(ctx, orderIDs)
	if err != nil {
		s.log.WithError(err).Warn("failed to fetch order items; rendering orders without item details")
		itemsByOrder = nil
	}

	for i := range orders {
		items := itemsByOrder[orders[i].ID]
		if items == nil {
			items = []models.OrderItem{}
		}
		orders[i].Items = items
	}

	return orders, total, nil
}

// Get returns one order with its items. Ownership checks are the caller's
// responsibility.
func (s *Service) Get(ctx context.Context, orderID int64) (*models.Order, error) {
	order, err := s.repo.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	itemsByOrder, err := s.repo.ItemsForOrders(ctx, []int64{orderID})
	if err != nil {
		s.log.WithError(err).WithField("order_id", orderID).
			Warn("failed to fetch order items; rendering order without item details")
	}

	items := itemsByOrder[orderID]
	if items == nil {
		items = []models.OrderItem{}
	}
	order.Items = items
	return order, nil
}

// History returns the append-only status trail for one order.
func (s *Service) History(ctx context.Context, orderID int64) ([]models.OrderStatusEntry, error) {
	if _, err := s.repo.OrderStatus(ctx, orderID); err != nil {
		return nil, err
	}
	return s.repo.StatusHistory(ctx, orderID)
}
