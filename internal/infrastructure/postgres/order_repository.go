package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/wholesale-api/internal/domain/entity"
	"github.com/jhoicas/wholesale-api/internal/domain/repository"
)

var (
	_ repository.OrderRepository       = (*OrderRepo)(nil)
	_ repository.TransactionRepository = (*TransactionRepo)(nil)
)

// OrderRepo OrderRepository over PostgreSQL. Lines live in order_items.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository builds the order adapter. Pass a pool or a tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

const orderColumns = `id, branch_id, total_price, status, delivery_address, delivery_instructions, payment_method, created_at`

// Create persists the header and every line. Run it inside a transaction to keep them atomic.
func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	_, err := r.q.Exec(ctx, `INSERT INTO orders (`+orderColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		o.ID, o.BranchID, o.TotalPrice, o.Status, o.DeliveryAddress, o.DeliveryInstructions, o.PaymentMethod, o.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	for i := range o.Items {
		it := &o.Items[i]
		if it.ID == "" {
			it.ID = uuid.New().String()
		}
		it.OrderID = o.ID
		_, err := r.q.Exec(ctx, `
			INSERT INTO order_items (id, order_id, product_id, supplier_id, product_name, sku, quantity, unit_price, vat, delivery_date, position)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
			it.ID, it.OrderID, nullIfEmpty(it.ProductID), it.SupplierID, it.ProductName, it.SKU,
			it.Quantity, it.UnitPrice, it.VAT, it.DeliveryDate, i,
		)
		if err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}
	return nil
}

// GetByID returns the order with its lines, or nil.
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	var o entity.Order
	err := r.q.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id).Scan(
		&o.ID, &o.BranchID, &o.TotalPrice, &o.Status, &o.DeliveryAddress, &o.DeliveryInstructions, &o.PaymentMethod, &o.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	orders := []*entity.Order{&o}
	if err := r.loadItems(ctx, orders); err != nil {
		return nil, err
	}
	return &o, nil
}

// List returns every order, newest first.
func (r *OrderRepo) List(ctx context.Context) ([]*entity.Order, error) {
	return r.list(ctx, `SELECT `+orderColumns+` FROM orders ORDER BY created_at DESC`)
}

// ListByBranch returns the orders placed by a branch.
func (r *OrderRepo) ListByBranch(ctx context.Context, branchID string) ([]*entity.Order, error) {
	return r.list(ctx, `SELECT `+orderColumns+` FROM orders WHERE branch_id = $1 ORDER BY created_at DESC`, branchID)
}

// ListBySupplier returns orders that contain at least one line from the supplier.
func (r *OrderRepo) ListBySupplier(ctx context.Context, supplierID string) ([]*entity.Order, error) {
	return r.list(ctx, `
		SELECT `+orderColumns+` FROM orders o
		WHERE EXISTS (SELECT 1 FROM order_items i WHERE i.order_id = o.id AND i.supplier_id = $1)
		ORDER BY created_at DESC`, supplierID)
}

// ListCreatedBetween returns orders with start <= created_at <= end.
func (r *OrderRepo) ListCreatedBetween(ctx context.Context, start, end time.Time) ([]*entity.Order, error) {
	return r.list(ctx, `
		SELECT `+orderColumns+` FROM orders
		WHERE created_at BETWEEN $1 AND $2 ORDER BY created_at DESC`, start, end)
}

func (r *OrderRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Order, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	var orders []*entity.Order
	for rows.Next() {
		var o entity.Order
		if err := rows.Scan(&o.ID, &o.BranchID, &o.TotalPrice, &o.Status, &o.DeliveryAddress,
			&o.DeliveryInstructions, &o.PaymentMethod, &o.CreatedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, &o)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	if err := r.loadItems(ctx, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// loadItems fills Items of every order with a single query.
func (r *OrderRepo) loadItems(ctx context.Context, orders []*entity.Order) error {
	if len(orders) == 0 {
		return nil
	}
	ids := make([]string, len(orders))
	byID := make(map[string]*entity.Order, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
		byID[o.ID] = o
	}

	rows, err := r.q.Query(ctx, `
		SELECT id, order_id, product_id::TEXT, supplier_id, product_name, sku, quantity, unit_price, vat, delivery_date
		FROM order_items WHERE order_id = ANY($1::UUID[]) ORDER BY order_id, position`, ids)
	if err != nil {
		return fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			it        entity.OrderItem
			productID *string
		)
		if err := rows.Scan(&it.ID, &it.OrderID, &productID, &it.SupplierID, &it.ProductName, &it.SKU,
			&it.Quantity, &it.UnitPrice, &it.VAT, &it.DeliveryDate); err != nil {
			return fmt.Errorf("scan order item: %w", err)
		}
		it.ProductID = derefString(productID)
		if o, ok := byID[it.OrderID]; ok {
			o.Items = append(o.Items, it)
		}
	}
	return rows.Err()
}

// TransactionRepo TransactionRepository over PostgreSQL.
type TransactionRepo struct {
	q Querier
}

// NewTransactionRepository builds the payment transaction adapter.
func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

// Create persists a gateway transaction.
func (r *TransactionRepo) Create(ctx context.Context, t *entity.Transaction) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO transactions (id, order_id, branch_id, tnx_id, amount, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		t.ID, t.OrderID, t.BranchID, t.TnxID, t.Amount, t.Status, t.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}
