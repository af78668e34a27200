package stock

import (
	"context"
	"fmt"
	"sort"

	"github.com/tu-usuario/tienda-pro/internal/domain"
	"github.com/tu-usuario/tienda-pro/internal/domain/repository"
)

// AvailabilityRequest cantidad solicitada de un producto (simple o kit).
type AvailabilityRequest struct {
	ProductID string
	Quantity  int64
}

// AvailabilityUseCase determina si un conjunto de cantidades solicitadas puede
// cumplirse, expandiendo los kits recursivamente hasta sus componentes hoja.
//
// Contrato sensible a la corrección: los requerimientos expandidos se fusionan antes
// del chequeo final solo dentro de UNA pasada de validación. Un caller que valide en
// varias llamadas debe sumar los requerimientos y validar una sola vez.
type AvailabilityUseCase struct {
	productRepo repository.ProductRepository
	kitRepo     repository.KitComponentRepository
}

// NewAvailabilityUseCase construye el caso de uso con repositorios de nivel superior.
func NewAvailabilityUseCase(
	productRepo repository.ProductRepository,
	kitRepo repository.KitComponentRepository,
) *AvailabilityUseCase {
	return &AvailabilityUseCase{productRepo: productRepo, kitRepo: kitRepo}
}

// Validate falla con *domain.InsufficientStockError enumerando TODOS los productos
// cortos (nombre, disponible, solicitado), o con domain.ErrKitCycle si la BOM tiene un
// ciclo. No devuelve validación parcial: todo-o-nada para que el caller presente un
// único error coherente.
func (uc *AvailabilityUseCase) Validate(ctx context.Context, requests []AvailabilityRequest) error {
	return validateAvailability(uc.productRepo, uc.kitRepo, requests)
}

// validateAvailability versión sobre repositorios explícitos, usable dentro de la
// transacción del caller (batch estricto, flujo de órdenes).
func validateAvailability(
	productRepo repository.ProductRepository,
	kitRepo repository.KitComponentRepository,
	requests []AvailabilityRequest,
) error {
	exp, err := expandRequests(productRepo, kitRepo, requests)
	if err != nil {
		return err
	}

	ids := make([]string, 0, len(exp.leaf))
	for id := range exp.leaf {
		ids = append(ids, id)
	}
	products, err := productRepo.GetByIDs(ids)
	if err != nil {
		return err
	}

	var shortages []domain.StockShortage
	for id, required := range exp.leaf {
		product, ok := products[id]
		if !ok || product == nil {
			return fmt.Errorf("producto %s: %w", id, domain.ErrNotFound)
		}
		if product.Stock < required {
			shortages = append(shortages, domain.StockShortage{
				ProductID: id,
				Name:      product.Name,
				Available: product.Stock,
				Requested: required,
			})
		}
	}
	// Un kit sin componentes siempre tiene stock 0: faltante directo.
	for id, required := range exp.emptyKits {
		shortages = append(shortages, domain.StockShortage{
			ProductID: id,
			Name:      exp.names[id],
			Available: 0,
			Requested: required,
		})
	}
	if len(shortages) == 0 {
		return nil
	}
	sort.Slice(shortages, func(i, j int) bool {
		if shortages[i].Name != shortages[j].Name {
			return shortages[i].Name < shortages[j].Name
		}
		return shortages[i].ProductID < shortages[j].ProductID
	})
	return &domain.InsufficientStockError{Items: shortages}
}

// expansion resultado de expandir solicitudes hasta componentes hoja.
type expansion struct {
	leaf      map[string]int64 // producto simple -> cantidad total requerida
	emptyKits map[string]int64 // kits sin BOM solicitados (siempre faltantes)
	names     map[string]string
}

// expandRequests agrupa duplicados sumando y expande cada kit a sus componentes,
// escalados por la cantidad solicitada. Los componentes pedidos directamente y los que
// aportan los kits se fusionan en el mismo mapa, de modo que una solicitud que mezcla
// un kit con uno de sus propios componentes se valida contra el consumo combinado.
func expandRequests(
	productRepo repository.ProductRepository,
	kitRepo repository.KitComponentRepository,
	requests []AvailabilityRequest,
) (*expansion, error) {
	grouped := make(map[string]int64, len(requests))
	order := make([]string, 0, len(requests))
	for _, r := range requests {
		if r.Quantity <= 0 {
			continue
		}
		if _, seen := grouped[r.ProductID]; !seen {
			order = append(order, r.ProductID)
		}
		grouped[r.ProductID] += r.Quantity
	}

	exp := &expansion{
		leaf:      make(map[string]int64),
		emptyKits: make(map[string]int64),
		names:     make(map[string]string),
	}
	visiting := make(map[string]bool)
	for _, id := range order {
		if err := expandOne(productRepo, kitRepo, id, grouped[id], exp, visiting); err != nil {
			return nil, err
		}
	}
	return exp, nil
}

// expandOne acumula el requerimiento de un producto: los simples van directo al mapa
// hoja; los kits se expanden recursivamente. visiting es la guarda del camino de
// expansión: un kit ya presente significa un ciclo en la BOM (error fatal de
// configuración).
func expandOne(
	productRepo repository.ProductRepository,
	kitRepo repository.KitComponentRepository,
	productID string,
	quantity int64,
	exp *expansion,
	visiting map[string]bool,
) error {
	product, err := productRepo.GetByID(productID)
	if err != nil {
		return err
	}
	if product == nil {
		return fmt.Errorf("producto %s: %w", productID, domain.ErrNotFound)
	}
	if !product.IsKit {
		exp.leaf[productID] += quantity
		return nil
	}

	if visiting[productID] {
		return fmt.Errorf("kit %s: %w", productID, domain.ErrKitCycle)
	}
	visiting[productID] = true
	defer delete(visiting, productID)

	edges, err := kitRepo.ListByKit(productID)
	if err != nil {
		return err
	}
	expanded := false
	for _, e := range edges {
		if e.Quantity <= 0 {
			continue
		}
		expanded = true
		if err := expandOne(productRepo, kitRepo, e.ComponentID, quantity*e.Quantity, exp, visiting); err != nil {
			return err
		}
	}
	if !expanded {
		// Sin aristas útiles (BOM vacía o solo aristas malformadas) el kit no puede
		// armarse: mismo tratamiento que el kit vacío, igual que en la derivación.
		exp.emptyKits[productID] += quantity
		exp.names[productID] = product.Name
	}
	return nil
}
