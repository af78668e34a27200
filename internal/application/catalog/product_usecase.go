package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/tienda-pro/internal/application/dto"
	"github.com/tu-usuario/tienda-pro/internal/application/stock"
	"github.com/tu-usuario/tienda-pro/internal/domain"
	"github.com/tu-usuario/tienda-pro/internal/domain/entity"
	"github.com/tu-usuario/tienda-pro/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos y su BOM. Stock y Cost se manejan
// vía movimientos; aquí solo catálogo.
type ProductUseCase struct {
	repo     repository.ProductRepository
	kitRepo  repository.KitComponentRepository
	kitStock *stock.KitStockUseCase
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	repo repository.ProductRepository,
	kitRepo repository.KitComponentRepository,
	kitStock *stock.KitStockUseCase,
) *ProductUseCase {
	return &ProductUseCase{repo: repo, kitRepo: kitRepo, kitStock: kitStock}
}

// Create crea un producto. Los kits nacen con stock 0 hasta tener componentes.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.SKU == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		SKU:         in.SKU,
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Cost:        decimal.Zero,
		IsKit:       in.IsKit,
		Attributes:  in.Attributes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	return toProductResponse(product), nil
}

// List lista productos paginados.
func (uc *ProductUseCase) List(ctx context.Context, page dto.PageRequest) ([]*dto.ProductResponse, error) {
	page.DefaultPage()
	products, err := uc.repo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	return out, nil
}

// AddComponent agrega una arista a la BOM de un kit y recalcula su stock derivado.
func (uc *ProductUseCase) AddComponent(ctx context.Context, kitID string, in dto.AddKitComponentRequest) (*dto.KitComponentResponse, error) {
	if in.ComponentID == "" || in.Quantity <= 0 || in.ComponentID == kitID {
		return nil, domain.ErrInvalidInput
	}
	kit, err := uc.repo.GetByID(kitID)
	if err != nil {
		return nil, err
	}
	if kit == nil {
		return nil, domain.ErrNotFound
	}
	if !kit.IsKit {
		return nil, domain.ErrInvalidInput
	}
	component, err := uc.repo.GetByID(in.ComponentID)
	if err != nil {
		return nil, err
	}
	if component == nil {
		return nil, domain.ErrNotFound
	}
	kc := &entity.KitComponent{
		ID:          uuid.New().String(),
		KitID:       kitID,
		ComponentID: in.ComponentID,
		Quantity:    in.Quantity,
		CreatedAt:   time.Now(),
	}
	if err := uc.kitRepo.Create(kc); err != nil {
		return nil, err
	}
	if err := uc.kitStock.Recalculate(ctx, []string{kitID}); err != nil {
		return nil, err
	}
	return &dto.KitComponentResponse{
		ID:          kc.ID,
		KitID:       kc.KitID,
		ComponentID: kc.ComponentID,
		Quantity:    kc.Quantity,
	}, nil
}

// ListComponents lista la BOM de un kit.
func (uc *ProductUseCase) ListComponents(ctx context.Context, kitID string) ([]*dto.KitComponentResponse, error) {
	kit, err := uc.repo.GetByID(kitID)
	if err != nil {
		return nil, err
	}
	if kit == nil {
		return nil, domain.ErrNotFound
	}
	edges, err := uc.kitRepo.ListByKit(kitID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.KitComponentResponse, 0, len(edges))
	for _, e := range edges {
		out = append(out, &dto.KitComponentResponse{
			ID:          e.ID,
			KitID:       e.KitID,
			ComponentID: e.ComponentID,
			Quantity:    e.Quantity,
		})
	}
	return out, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:          p.ID,
		SKU:         p.SKU,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Cost:        p.Cost,
		Stock:       p.Stock,
		StockOnHold: p.StockOnHold,
		IsKit:       p.IsKit,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
