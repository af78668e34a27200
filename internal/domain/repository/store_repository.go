package repository

import "github.com/tu-usuario/tienda-pro/internal/domain/entity"

// StoreRepository acceso a tiendas/bodegas.
type StoreRepository interface {
	Create(s *entity.Store) error
	GetByID(id string) (*entity.Store, error)
	List() ([]*entity.Store, error)
}
