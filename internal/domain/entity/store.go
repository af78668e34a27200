package entity

import "time"

// Store representa una tienda o bodega física desde donde se originan los movimientos.
type Store struct {
	ID        string
	Name      string
	Address   string
	CreatedAt time.Time
}
