package dto

import "time"

// CreateStoreRequest body para POST /api/stores.
type CreateStoreRequest struct {
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
}

// StoreResponse representación HTTP de una tienda/bodega.
type StoreResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
