package repository

import "github.com/tu-usuario/tienda-pro/internal/domain/entity"

// OrderRepository acceso a órdenes y sus líneas.
type OrderRepository interface {
	Create(o *entity.Order) error
	GetByID(id string) (*entity.Order, error) // incluye items
	UpdateStatus(id, status string) error
}
