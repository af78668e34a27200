package repository

import "github.com/tu-usuario/tienda-pro/internal/domain/entity"

// KitComponentRepository acceso a las aristas de la lista de materiales (BOM).
type KitComponentRepository interface {
	Create(kc *entity.KitComponent) error

	// ListByKit devuelve las aristas de un kit.
	ListByKit(kitID string) ([]*entity.KitComponent, error)

	// ListKitsContaining devuelve los IDs (sin duplicados) de los kits que listan
	// cualquiera de los productos dados como componente.
	ListKitsContaining(componentIDs []string) ([]string, error)
}
