package entity

import "time"

// KitComponent es una arista de la lista de materiales (BOM): cuántas unidades del
// componente consume una unidad del kit. Varios componentes pueden apuntar al mismo kit
// y un producto puede ser componente de varios kits.
type KitComponent struct {
	ID          string
	KitID       string
	ComponentID string
	Quantity    int64 // unidades del componente por unidad de kit (> 0)
	CreatedAt   time.Time
}
