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

var _ repository.StoreRepository = (*StoreRepo)(nil)

// StoreRepo implementación de StoreRepository sobre PostgreSQL (usable con pool o tx).
type StoreRepo struct {
	q Querier
}

// NewStoreRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStoreRepository(q Querier) *StoreRepo {
	return &StoreRepo{q: q}
}

// Create persiste una tienda.
func (r *StoreRepo) Create(s *entity.Store) error {
	query := `INSERT INTO stores (id, name, address, created_at) VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(context.Background(), query, s.ID, s.Name, nullable(s.Address), s.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create store: %w", err)
	}
	return nil
}

// GetByID obtiene una tienda por ID. Devuelve nil sin error si no existe.
func (r *StoreRepo) GetByID(id string) (*entity.Store, error) {
	query := `SELECT id, name, address, created_at FROM stores WHERE id = $1`
	var s entity.Store
	var address *string
	err := r.q.QueryRow(context.Background(), query, id).Scan(&s.ID, &s.Name, &address, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get store: %w", err)
	}
	if address != nil {
		s.Address = *address
	}
	return &s, nil
}

// List lista todas las tiendas por nombre.
func (r *StoreRepo) List() ([]*entity.Store, error) {
	query := `SELECT id, name, address, created_at FROM stores ORDER BY name`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}
	defer rows.Close()
	var list []*entity.Store
	for rows.Next() {
		var s entity.Store
		var address *string
		if err := rows.Scan(&s.ID, &s.Name, &address, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan store: %w", err)
		}
		if address != nil {
			s.Address = *address
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
