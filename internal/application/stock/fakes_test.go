package stock_test

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/tu-usuario/tienda-pro/internal/domain"
	"github.com/tu-usuario/tienda-pro/internal/domain/entity"
	"github.com/tu-usuario/tienda-pro/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria para el motor de inventario. Implementan los repositorios y el
// TxRunner con semántica de rollback: si el callback falla, el estado vuelve al
// snapshot previo (como la transacción real de PostgreSQL).
// ──────────────────────────────────────────────────────────────────────────────

type fakeStore struct {
	products  map[string]*entity.Product
	kitEdges  map[string][]*entity.KitComponent // kitID -> aristas BOM
	movements []*entity.InventoryMovement
	orders    map[string]*entity.Order

	// setStockCalls cuenta las escrituras de stock derivado por kit (verifica dedupe).
	setStockCalls map[string]int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		products:      make(map[string]*entity.Product),
		kitEdges:      make(map[string][]*entity.KitComponent),
		orders:        make(map[string]*entity.Order),
		setStockCalls: make(map[string]int),
	}
}

func (s *fakeStore) seedProduct(id, name string, stock int64) {
	s.products[id] = &entity.Product{
		ID: id, SKU: "SKU-" + id, Name: name, Stock: stock,
		CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}
}

// seedKit crea un producto kit con sus aristas BOM (componente -> cantidad por kit).
func (s *fakeStore) seedKit(id, name string, edges map[string]int64) {
	s.products[id] = &entity.Product{
		ID: id, SKU: "SKU-" + id, Name: name, IsKit: true,
		CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}
	componentIDs := make([]string, 0, len(edges))
	for componentID := range edges {
		componentIDs = append(componentIDs, componentID)
	}
	sort.Strings(componentIDs)
	for _, componentID := range componentIDs {
		s.kitEdges[id] = append(s.kitEdges[id], &entity.KitComponent{
			ID:          fmt.Sprintf("%s-%s", id, componentID),
			KitID:       id,
			ComponentID: componentID,
			Quantity:    edges[componentID],
			CreatedAt:   time.Now(),
		})
	}
}

// snapshot/restore emulan el commit/rollback de la transacción.
func (s *fakeStore) snapshot() *fakeStore {
	cp := newFakeStore()
	for id, p := range s.products {
		clone := *p
		cp.products[id] = &clone
	}
	for id, edges := range s.kitEdges {
		cp.kitEdges[id] = append([]*entity.KitComponent(nil), edges...)
	}
	cp.movements = append([]*entity.InventoryMovement(nil), s.movements...)
	for id, o := range s.orders {
		clone := *o
		clone.Items = append([]entity.OrderItem(nil), o.Items...)
		cp.orders[id] = &clone
	}
	for id, n := range s.setStockCalls {
		cp.setStockCalls[id] = n
	}
	return cp
}

func (s *fakeStore) restore(snap *fakeStore) {
	s.products = snap.products
	s.kitEdges = snap.kitEdges
	s.movements = snap.movements
	s.orders = snap.orders
	s.setStockCalls = snap.setStockCalls
}

// ──────────────────────────────────────────────────────────────────────────────
// Repositorios fake
// ──────────────────────────────────────────────────────────────────────────────

type fakeProductRepo struct{ s *fakeStore }

var _ repository.ProductRepository = (*fakeProductRepo)(nil)

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	clone := *p
	return &clone, nil
}

func (r *fakeProductRepo) GetByIDs(ids []string) (map[string]*entity.Product, error) {
	out := make(map[string]*entity.Product, len(ids))
	for _, id := range ids {
		if p, ok := r.s.products[id]; ok {
			clone := *p
			out[id] = &clone
		}
	}
	return out, nil
}

func (r *fakeProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	var list []*entity.Product
	for _, p := range r.s.products {
		clone := *p
		list = append(list, &clone)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

func (r *fakeProductRepo) Create(p *entity.Product) error {
	clone := *p
	r.s.products[p.ID] = &clone
	return nil
}

func (r *fakeProductRepo) AdjustStock(id string, delta int64) (int64, error) {
	p, ok := r.s.products[id]
	if !ok {
		return 0, domain.ErrNotFound
	}
	p.Stock += delta
	return p.Stock, nil
}

func (r *fakeProductRepo) TryAdjustStock(id string, delta int64) (int64, error) {
	p, ok := r.s.products[id]
	if !ok {
		return 0, domain.ErrNotFound
	}
	if p.Stock+delta < 0 {
		return 0, domain.ErrInsufficientStock
	}
	p.Stock += delta
	return p.Stock, nil
}

func (r *fakeProductRepo) SetStock(id string, stock int64) error {
	p, ok := r.s.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Stock = stock
	r.s.setStockCalls[id]++
	return nil
}

func (r *fakeProductRepo) AdjustOnHold(id string, delta int64) (int64, error) {
	p, ok := r.s.products[id]
	if !ok {
		return 0, domain.ErrNotFound
	}
	p.StockOnHold += delta
	return p.StockOnHold, nil
}

type fakeKitRepo struct{ s *fakeStore }

var _ repository.KitComponentRepository = (*fakeKitRepo)(nil)

func (r *fakeKitRepo) Create(kc *entity.KitComponent) error {
	clone := *kc
	r.s.kitEdges[kc.KitID] = append(r.s.kitEdges[kc.KitID], &clone)
	return nil
}

func (r *fakeKitRepo) ListByKit(kitID string) ([]*entity.KitComponent, error) {
	return append([]*entity.KitComponent(nil), r.s.kitEdges[kitID]...), nil
}

func (r *fakeKitRepo) ListKitsContaining(componentIDs []string) ([]string, error) {
	wanted := make(map[string]bool, len(componentIDs))
	for _, id := range componentIDs {
		wanted[id] = true
	}
	seen := make(map[string]bool)
	var kitIDs []string
	for kitID, edges := range r.s.kitEdges {
		for _, e := range edges {
			if wanted[e.ComponentID] && !seen[kitID] {
				seen[kitID] = true
				kitIDs = append(kitIDs, kitID)
			}
		}
	}
	sort.Strings(kitIDs)
	return kitIDs, nil
}

type fakeMovementRepo struct{ s *fakeStore }

var _ repository.InventoryMovementRepository = (*fakeMovementRepo)(nil)

func (r *fakeMovementRepo) Create(m *entity.InventoryMovement) error {
	clone := *m
	r.s.movements = append(r.s.movements, &clone)
	return nil
}

func (r *fakeMovementRepo) GetByID(id string) (*entity.InventoryMovement, error) {
	for _, m := range r.s.movements {
		if m.ID == id {
			clone := *m
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *fakeMovementRepo) ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.InventoryMovement, error) {
	var list []*entity.InventoryMovement
	for _, m := range r.s.movements {
		if m.ProductID != productID {
			continue
		}
		if from != nil && m.CreatedAt.Before(*from) {
			continue
		}
		if to != nil && m.CreatedAt.After(*to) {
			continue
		}
		clone := *m
		list = append(list, &clone)
	}
	return list, nil
}

func (r *fakeMovementRepo) ListByReference(referenceID string) ([]*entity.InventoryMovement, error) {
	var list []*entity.InventoryMovement
	for _, m := range r.s.movements {
		if m.ReferenceID == referenceID {
			clone := *m
			list = append(list, &clone)
		}
	}
	return list, nil
}

func (r *fakeMovementRepo) SumByProduct(productID string) (int64, error) {
	var sum int64
	for _, m := range r.s.movements {
		if m.ProductID == productID {
			sum += m.Quantity
		}
	}
	return sum, nil
}

type fakeOrderRepo struct{ s *fakeStore }

var _ repository.OrderRepository = (*fakeOrderRepo)(nil)

func (r *fakeOrderRepo) Create(o *entity.Order) error {
	clone := *o
	clone.Items = append([]entity.OrderItem(nil), o.Items...)
	r.s.orders[o.ID] = &clone
	return nil
}

func (r *fakeOrderRepo) GetByID(id string) (*entity.Order, error) {
	o, ok := r.s.orders[id]
	if !ok {
		return nil, nil
	}
	clone := *o
	clone.Items = append([]entity.OrderItem(nil), o.Items...)
	return &clone, nil
}

func (r *fakeOrderRepo) UpdateStatus(id, status string) error {
	o, ok := r.s.orders[id]
	if !ok {
		return domain.ErrNotFound
	}
	o.Status = status
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// TxRunner fake con rollback
// ──────────────────────────────────────────────────────────────────────────────

type fakeTxRunner struct{ s *fakeStore }

func (r *fakeTxRunner) Run(ctx context.Context, fn func(
	movRepo repository.InventoryMovementRepository,
	productRepo repository.ProductRepository,
	kitRepo repository.KitComponentRepository,
) error) error {
	snap := r.s.snapshot()
	if err := fn(&fakeMovementRepo{r.s}, &fakeProductRepo{r.s}, &fakeKitRepo{r.s}); err != nil {
		r.s.restore(snap)
		return err
	}
	return nil
}

func (r *fakeTxRunner) RunOrder(ctx context.Context, fn func(
	movRepo repository.InventoryMovementRepository,
	productRepo repository.ProductRepository,
	kitRepo repository.KitComponentRepository,
	orderRepo repository.OrderRepository,
) error) error {
	snap := r.s.snapshot()
	if err := fn(&fakeMovementRepo{r.s}, &fakeProductRepo{r.s}, &fakeKitRepo{r.s}, &fakeOrderRepo{r.s}); err != nil {
		r.s.restore(snap)
		return err
	}
	return nil
}
