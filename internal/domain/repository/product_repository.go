package repository

import "github.com/tu-usuario/tienda-pro/internal/domain/entity"

// ProductRepository acceso a productos y a su contador cacheado de stock.
// Toda mutación del contador pasa por AdjustStock/TryAdjustStock (incremento atómico
// a nivel de storage, nunca read-modify-write del valor completo), salvo SetStock que
// es exclusivo para el stock derivado de kits.
type ProductRepository interface {
	GetByID(id string) (*entity.Product, error)
	GetByIDs(ids []string) (map[string]*entity.Product, error)
	List(limit, offset int) ([]*entity.Product, error)
	Create(p *entity.Product) error

	// AdjustStock aplica el delta con un incremento atómico y devuelve el stock resultante.
	// No valida no-negatividad: el caller que la necesite valida disponibilidad primero.
	AdjustStock(id string, delta int64) (int64, error)

	// TryAdjustStock igual que AdjustStock pero con guarda en storage: falla con
	// domain.ErrInsufficientStock si el delta dejaría el stock negativo, sin aplicar nada.
	TryAdjustStock(id string, delta int64) (int64, error)

	// SetStock escribe el stock derivado de un kit. Solo lo usa el motor de recálculo.
	SetStock(id string, stock int64) error

	// AdjustOnHold ajusta el contador de reservas de órdenes pendientes.
	AdjustOnHold(id string, delta int64) (int64, error)
}
