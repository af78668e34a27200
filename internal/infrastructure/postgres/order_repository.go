package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/tienda-pro/internal/domain"
	"github.com/tu-usuario/tienda-pro/internal/domain/entity"
	"github.com/tu-usuario/tienda-pro/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación de OrderRepository sobre PostgreSQL (usable con pool o tx).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Create persiste la orden con sus líneas.
func (r *OrderRepo) Create(o *entity.Order) error {
	query := `
		INSERT INTO orders (id, store_id, status, total, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		o.ID, nullable(o.StoreID), o.Status, o.Total, nullable(o.CreatedBy), o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create order: %w", err)
	}
	itemQuery := `
		INSERT INTO order_items (id, order_id, product_id, quantity, unit_price)
		VALUES ($1, $2, $3, $4, $5)`
	for i := range o.Items {
		it := &o.Items[i]
		if it.ID == "" {
			it.ID = uuid.New().String()
		}
		it.OrderID = o.ID
		if _, err := r.q.Exec(context.Background(), itemQuery,
			it.ID, it.OrderID, it.ProductID, it.Quantity, it.UnitPrice,
		); err != nil {
			return fmt.Errorf("create order item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene una orden con sus líneas. Devuelve nil sin error si no existe.
func (r *OrderRepo) GetByID(id string) (*entity.Order, error) {
	query := `
		SELECT id, store_id, status, total, created_by, created_at, updated_at
		FROM orders WHERE id = $1`
	var o entity.Order
	var storeID, createdBy *string
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&o.ID, &storeID, &o.Status, &o.Total, &createdBy, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	if storeID != nil {
		o.StoreID = *storeID
	}
	if createdBy != nil {
		o.CreatedBy = *createdBy
	}

	itemQuery := `
		SELECT id, order_id, product_id, quantity, unit_price
		FROM order_items WHERE order_id = $1`
	rows, err := r.q.Query(context.Background(), itemQuery, id)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Quantity, &it.UnitPrice); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		o.Items = append(o.Items, it)
	}
	return &o, rows.Err()
}

// UpdateStatus transiciona el estado de una orden.
func (r *OrderRepo) UpdateStatus(id, status string) error {
	query := `UPDATE orders SET status = $1, updated_at = now() WHERE id = $2`
	tag, err := r.q.Exec(context.Background(), query, status, id)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
