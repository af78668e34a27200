package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrInvalidMovement   = errors.New("movimiento de inventario inválido")
	ErrKitCycle          = errors.New("ciclo en los componentes del kit")
)

// StockShortage describe un faltante puntual: cuánto hay y cuánto se pidió.
type StockShortage struct {
	ProductID string
	Name      string
	Available int64
	Requested int64
}

// InsufficientStockError agrupa todos los faltantes de una validación de disponibilidad.
// Se acumulan todos los productos cortos antes de fallar, para que el caller pueda
// mostrar un único mensaje detallado en lugar de parar en el primero.
type InsufficientStockError struct {
	Items []StockShortage
}

func (e *InsufficientStockError) Error() string {
	var b strings.Builder
	b.WriteString("stock insuficiente: ")
	for i, it := range e.Items {
		if i > 0 {
			b.WriteString("; ")
		}
		fmt.Fprintf(&b, "%s (disponible %d, solicitado %d)", it.Name, it.Available, it.Requested)
	}
	return b.String()
}

// Unwrap permite errors.Is(err, ErrInsufficientStock) sobre el error agregado.
func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }
