package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/tienda-pro/internal/application/dto"
	"github.com/tu-usuario/tienda-pro/internal/domain"
	"github.com/tu-usuario/tienda-pro/internal/domain/entity"
	"github.com/tu-usuario/tienda-pro/internal/domain/repository"
)

// StoreUseCase casos de uso CRUD para tiendas/bodegas.
type StoreUseCase struct {
	repo repository.StoreRepository
}

// NewStoreUseCase construye el caso de uso.
func NewStoreUseCase(repo repository.StoreRepository) *StoreUseCase {
	return &StoreUseCase{repo: repo}
}

// Create crea una nueva tienda.
func (uc *StoreUseCase) Create(ctx context.Context, in dto.CreateStoreRequest) (*dto.StoreResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	store := &entity.Store{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Address:   in.Address,
		CreatedAt: time.Now(),
	}
	if err := uc.repo.Create(store); err != nil {
		return nil, err
	}
	return toStoreResponse(store), nil
}

// List lista todas las tiendas.
func (uc *StoreUseCase) List(ctx context.Context) ([]*dto.StoreResponse, error) {
	stores, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	out := make([]*dto.StoreResponse, 0, len(stores))
	for _, s := range stores {
		out = append(out, toStoreResponse(s))
	}
	return out, nil
}

func toStoreResponse(s *entity.Store) *dto.StoreResponse {
	return &dto.StoreResponse{
		ID:        s.ID,
		Name:      s.Name,
		Address:   s.Address,
		CreatedAt: s.CreatedAt,
	}
}
