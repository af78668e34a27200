package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/tienda-pro/internal/domain"
	"github.com/tu-usuario/tienda-pro/internal/domain/entity"
	"github.com/tu-usuario/tienda-pro/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, sku, name, description, price, cost, stock, stock_on_hold, is_kit, attributes, created_at, updated_at`

// ProductRepo implementación de ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// GetByID obtiene un producto por ID. Devuelve nil sin error si no existe.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	p, err := scanProduct(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// GetByIDs obtiene varios productos por ID en un solo query.
func (r *ProductRepo) GetByIDs(ids []string) (map[string]*entity.Product, error) {
	out := make(map[string]*entity.Product, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	query := `SELECT ` + productColumns + ` FROM products WHERE id = ANY($1)`
	rows, err := r.q.Query(context.Background(), query, ids)
	if err != nil {
		return nil, fmt.Errorf("get products: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		out[p.ID] = p
	}
	return out, rows.Err()
}

// List lista productos paginados por nombre.
func (r *ProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Create persiste un producto nuevo.
func (r *ProductRepo) Create(p *entity.Product) error {
	query := `
		INSERT INTO products (id, sku, name, description, price, cost, stock, stock_on_hold, is_kit, attributes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.SKU, p.Name, p.Description, p.Price, p.Cost,
		p.Stock, p.StockOnHold, p.IsKit, p.Attributes, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create product: %w", err)
	}
	return nil
}

// AdjustStock aplica el delta con un incremento atómico en la fila (no read-modify-write)
// y devuelve el stock resultante. No valida no-negatividad.
func (r *ProductRepo) AdjustStock(id string, delta int64) (int64, error) {
	query := `UPDATE products SET stock = stock + $1, updated_at = now() WHERE id = $2 RETURNING stock`
	var stock int64
	err := r.q.QueryRow(context.Background(), query, delta, id).Scan(&stock)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrNotFound
		}
		return 0, fmt.Errorf("adjust stock: %w", err)
	}
	return stock, nil
}

// TryAdjustStock igual que AdjustStock pero con guarda de no-negatividad en el UPDATE:
// si el delta dejaría el stock negativo no se aplica nada y falla con ErrInsufficientStock.
// La condición en el WHERE evita abortar la transacción (no hay error SQL), lo que
// permite al batch resiliente seguir con las demás líneas y aun así hacer commit.
func (r *ProductRepo) TryAdjustStock(id string, delta int64) (int64, error) {
	query := `
		UPDATE products SET stock = stock + $1, updated_at = now()
		WHERE id = $2 AND stock + $1 >= 0
		RETURNING stock`
	var stock int64
	err := r.q.QueryRow(context.Background(), query, delta, id).Scan(&stock)
	if err == nil {
		return stock, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("try adjust stock: %w", err)
	}
	// Sin fila afectada: distinguir producto inexistente de stock insuficiente.
	var exists bool
	if err := r.q.QueryRow(context.Background(), `SELECT EXISTS(SELECT 1 FROM products WHERE id = $1)`, id).Scan(&exists); err != nil {
		return 0, fmt.Errorf("try adjust stock: %w", err)
	}
	if !exists {
		return 0, domain.ErrNotFound
	}
	return 0, domain.ErrInsufficientStock
}

// SetStock escribe el stock derivado de un kit (única escritura directa permitida).
func (r *ProductRepo) SetStock(id string, stock int64) error {
	query := `UPDATE products SET stock = $1, updated_at = now() WHERE id = $2`
	tag, err := r.q.Exec(context.Background(), query, stock, id)
	if err != nil {
		return fmt.Errorf("set stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AdjustOnHold ajusta atómicamente el contador de reservas pendientes.
func (r *ProductRepo) AdjustOnHold(id string, delta int64) (int64, error) {
	query := `UPDATE products SET stock_on_hold = stock_on_hold + $1, updated_at = now() WHERE id = $2 RETURNING stock_on_hold`
	var onHold int64
	err := r.q.QueryRow(context.Background(), query, delta, id).Scan(&onHold)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrNotFound
		}
		return 0, fmt.Errorf("adjust on-hold: %w", err)
	}
	return onHold, nil
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	var description *string
	err := row.Scan(
		&p.ID, &p.SKU, &p.Name, &description, &p.Price, &p.Cost,
		&p.Stock, &p.StockOnHold, &p.IsKit, &p.Attributes, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if description != nil {
		p.Description = *description
	}
	return &p, nil
}
