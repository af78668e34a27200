package postgres

import (
	"context"
	"fmt"

	"github.com/tu-usuario/tienda-pro/internal/domain"
	"github.com/tu-usuario/tienda-pro/internal/domain/entity"
	"github.com/tu-usuario/tienda-pro/internal/domain/repository"
)

var _ repository.KitComponentRepository = (*KitComponentRepo)(nil)

// KitComponentRepo implementación de KitComponentRepository sobre PostgreSQL.
type KitComponentRepo struct {
	q Querier
}

// NewKitComponentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewKitComponentRepository(q Querier) *KitComponentRepo {
	return &KitComponentRepo{q: q}
}

// Create persiste una arista de la BOM.
func (r *KitComponentRepo) Create(kc *entity.KitComponent) error {
	query := `
		INSERT INTO kit_components (id, kit_id, component_id, quantity, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query, kc.ID, kc.KitID, kc.ComponentID, kc.Quantity, kc.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create kit component: %w", err)
	}
	return nil
}

// ListByKit devuelve las aristas de un kit en orden de creación.
func (r *KitComponentRepo) ListByKit(kitID string) ([]*entity.KitComponent, error) {
	query := `
		SELECT id, kit_id, component_id, quantity, created_at
		FROM kit_components WHERE kit_id = $1
		ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, kitID)
	if err != nil {
		return nil, fmt.Errorf("list kit components: %w", err)
	}
	defer rows.Close()
	var list []*entity.KitComponent
	for rows.Next() {
		var kc entity.KitComponent
		if err := rows.Scan(&kc.ID, &kc.KitID, &kc.ComponentID, &kc.Quantity, &kc.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan kit component: %w", err)
		}
		list = append(list, &kc)
	}
	return list, rows.Err()
}

// ListKitsContaining devuelve los kits (sin duplicados) que listan cualquiera de los
// productos dados como componente.
func (r *KitComponentRepo) ListKitsContaining(componentIDs []string) ([]string, error) {
	if len(componentIDs) == 0 {
		return nil, nil
	}
	query := `SELECT DISTINCT kit_id FROM kit_components WHERE component_id = ANY($1) ORDER BY kit_id`
	rows, err := r.q.Query(context.Background(), query, componentIDs)
	if err != nil {
		return nil, fmt.Errorf("list kits containing: %w", err)
	}
	defer rows.Close()
	var kitIDs []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan kit id: %w", err)
		}
		kitIDs = append(kitIDs, id)
	}
	return kitIDs, rows.Err()
}
