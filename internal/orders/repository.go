package orders

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/boostbay/boostbay-golang/internal/models"
)

var (
	// ErrOrderNotFound is returned when an order id does not exist (or is
	// not visible to the caller).
	ErrOrderNotFound = errors.New("order not found")

	// ErrStoreNotConfigured is returned when the backing tables are absent.
	// Callers surface it as an actionable "database not configured" message
	// pointing at the migrate/debug flow, not as a generic failure.
	ErrStoreNotConfigured = errors.New("order tables are not configured")

	// ErrStatusConflict is returned when a guarded status update matched no
	// row, i.e. the order changed underneath the caller.
	ErrStatusConflict = errors.New("order status changed concurrently")
)

// ListFilter narrows and pages an order listing.
type ListFilter struct {
	UserID       *int64
	Status       *Status
	Page         int
	PageSize     int
	ResolveEmail bool // admin listings join the customer email per order
}

// Repository is the persistence boundary for the order aggregate. The
// checkout service depends on this interface so the write sequence is
// testable without a database.
type Repository interface {
	// CreateOrder persists the order header and all of its items in one
	// transaction, filling in the generated ids. Nothing is written on
	// failure.
	CreateOrder(ctx context.Context, order *models.Order, items []models.OrderItem) error

	// AppendStatusHistory adds one insert-only history row.
	AppendStatusHistory(ctx context.Context, orderID int64, status Status) error

	// OrderStatus returns the order's current status.
	OrderStatus(ctx context.Context, orderID int64) (Status, error)

	// SetOrderStatus updates status and updated_at, guarded by the expected
	// current status.
	SetOrderStatus(ctx context.Context, orderID int64, from, to Status) error

	// ListOrders returns one page of order headers plus the total match
	// count.
	ListOrders(ctx context.Context, f ListFilter) ([]models.Order, int, error)

	// ItemsForOrders fetches the items of all given orders in one query,
	// grouped by order id.
	ItemsForOrders(ctx context.Context, orderIDs []int64) (map[int64][]models.OrderItem, error)

	GetOrder(ctx context.Context, orderID int64) (*models.Order, error)
	StatusHistory(ctx context.Context, orderID int64) ([]models.OrderStatusEntry, error)
}

// SQLRepository is the PostgreSQL implementation of Repository.
type SQLRepository struct {
	db *sqlx.DB
}

func NewSQLRepository(db *sqlx.DB) *SQLRepository {
	return &SQLRepository{db: db}
}

// Postgres error code for a missing table.
const pqUndefinedTable = "42P01"

func isUndefinedTable(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == pqUndefinedTable
	}
	return false
}

func (r *SQLRepository) CreateOrder(ctx context.Context, order *models.Order, items []models.OrderItem) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin checkout transaction")
	}
	defer tx.Rollback()

	headerQuery := `
		INSERT INTO orders (reference, user_id, total_amount, status, payment_status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`

	err = tx.QueryRowContext(ctx, headerQuery,
		order.Reference, order.UserID, order.TotalAmount, order.Status, order.PaymentStatus,
	).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		if isUndefinedTable(err) {
			return ErrStoreNotConfigured
		}
		return errors.Wrap(err, "insert order header")
	}

	itemQuery := `
		INSERT INTO order_items (order_id, package_id, quantity, price, service_type, service_id, service_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`

	for i := range items {
		items[i].OrderID = order.ID
		err = tx.QueryRowContext(ctx, itemQuery,
			items[i].OrderID, items[i].PackageID, items[i].Quantity, items[i].Price,
			items[i].ServiceType, items[i].ServiceID, items[i].ServiceURL,
		).Scan(&items[i].ID, &items[i].CreatedAt)
		if err != nil {
			if isUndefinedTable(err) {
				return ErrStoreNotConfigured
			}
			return errors.Wrap(err, "insert order item")
		}
	}

	return errors.Wrap(tx.Commit(), "commit checkout transaction")
}

func (r *SQLRepository) AppendStatusHistory(ctx context.Context, orderID int64, status Status) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO order_status_history (order_id, status) VALUES ($1, $2)",
		orderID, string(status))
	return errors.Wrap(err, "insert status history")
}

func (r *SQLRepository) OrderStatus(ctx context.Context, orderID int64) (Status, error) {
	var status string
	err := r.db.QueryRowContext(ctx, "SELECT status FROM orders WHERE id = $1", orderID).Scan(&status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrOrderNotFound
		}
		if isUndefinedTable(err) {
			return "", ErrStoreNotConfigured
		}
		return "", errors.Wrap(err, "select order status")
	}
	return Status(status), nil
}

func (r *SQLRepository) SetOrderStatus(ctx context.Context, orderID int64, from, to Status) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE orders SET status = $1, updated_at = now() WHERE id = $2 AND status = $3",
		string(to), orderID, string(from))
	if err != nil {
		return errors.Wrap(err, "update order status")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "check affected rows")
	}
	if rowsAffected == 0 {
		return ErrStatusConflict
	}
	return nil
}

func (r *SQLRepository) ListOrders(ctx context.Context, f ListFilter) ([]models.Order, int, error) {
	var (
		conditions []string
		args       []interface{}
	)

	addArg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.UserID != nil {
		conditions = append(conditions, "o.user_id = "+addArg(*f.UserID))
	}
	if f.Status != nil {
		conditions = append(conditions, "o.status = "+addArg(string(*f.Status)))
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	countQuery := "SELECT count(*) FROM orders o" + where
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		if isUndefinedTable(err) {
			return nil, 0, ErrStoreNotConfigured
		}
		return nil, 0, errors.Wrap(err, "count orders")
	}

	columns := `o.id, o.reference, o.user_id, o.total_amount, o.status, o.payment_status, o.created_at, o.updated_at`
	joins := ""
	if f.ResolveEmail {
		columns += ", u.email AS customer_email"
		joins = " LEFT JOIN users u ON u.id = o.user_id"
	}

	query := "SELECT " + columns + " FROM orders o" + joins + where +
		" ORDER BY o.created_at DESC, o.id DESC" +
		" LIMIT " + addArg(f.PageSize) + " OFFSET " + addArg((f.Page-1)*f.PageSize)

	var orders []models.Order
	if err := r.db.SelectContext(ctx, &orders, query, args...); err != nil {
		return nil, 0, errors.Wrap(err, "select orders")
	}

	return orders, total, nil
}

func (r *SQLRepository) ItemsForOrders(ctx context.Context, orderIDs []int64) (map[int64][]models.OrderItem, error) {
	grouped := make(map[int64][]models.OrderItem, len(orderIDs))
	if len(orderIDs) == 0 {
		return grouped, nil
	}

	// One batched fetch for the whole page instead of a query per order.
	query := `
		SELECT id, order_id, package_id, quantity, price, service_type, service_id, service_url, created_at
		FROM order_items
		WHERE order_id = ANY($1)
		ORDER BY order_id, id`

	var items []models.OrderItem
	if err := r.db.SelectContext(ctx, &items, query, pq.Array(orderIDs)); err != nil {
		return nil, errors.Wrap(err, "select order items")
	}

	for _, item := range items {
		grouped[item.OrderID] = append(grouped[item.OrderID], item)
	}
	return grouped, nil
}

func (r *SQLRepository) GetOrder(ctx context.Context, orderID int64) (*models.Order, error) {
	query := `
		SELECT o.id, o.reference, o.user_id, o.total_amount, o.status, o.payment_status,
		       o.created_at, o.updated_at, u.email AS customer_email
		FROM orders o
		LEFT JOIN users u ON u.id = o.user_id
		WHERE o.id = $1`

	var order models.Order
	if err := r.db.GetContext(ctx, &order, query, orderID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		if isUndefinedTable(err) {
			return nil, ErrStoreNotConfigured
		}
		return nil, errors.Wrap(err, "select order")
	}
	return &order, nil
}

func (r *SQLRepository) StatusHistory(ctx context.Context, orderID int64) ([]models.OrderStatusEntry, error) {
	var entries []models.OrderStatusEntry
	err := r.db.SelectContext(ctx, &entries,
		"SELECT id, order_id, status, created_at FROM order_status_history WHERE order_id = $1 ORDER BY created_at, id",
		orderID)
	if err != nil {
		return nil, errors.Wrap(err, "select status history")
	}
	return entries, nil
}
