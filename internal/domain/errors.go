package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrSinMateriales     = errors.New("la plantilla no tiene materiales asociados")
	ErrInsufficientStock = errors.New("stock insuficiente")
)

// Shortfall describe un componente cuyo disponible no alcanza para la reserva solicitada.
type Shortfall struct {
	ItemID    int64
	SKU       string
	Name      string
	Required  decimal.Decimal
	Available decimal.Decimal
}

// InsufficientStockError agrupa TODOS los faltantes de una creación de ensamblado,
// no solo el primero, para que el cliente vea el panorama completo en una respuesta.
type InsufficientStockError struct {
	Shortfalls []Shortfall
}

func (e *InsufficientStockError) Error() string {
	names := make([]string, 0, len(e.Shortfalls))
	for _, s := range e.Shortfalls {
		names = append(names, fmt.Sprintf("%s (requerido %s, disponible %s)", s.Name, s.Required, s.Available))
	}
	return "stock insuficiente para: " + strings.Join(names, ", ")
}

// Unwrap permite detectar el error con errors.Is(err, ErrInsufficientStock).
func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// InvalidTransitionError indica una transición de estado no permitida para un ensamblado.
type InvalidTransitionError struct {
	Current   string
	Requested string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("transición inválida: %s -> %s", e.Current, e.Requested)
}

// InconsistentStockError señala una violación del invariante 0 <= reserved <= on_hand.
// Es un error interno (bug o datos corruptos), nunca un error de usuario: la capa HTTP
// lo reporta como fallo genérico y se registra con contexto completo para investigación.
type InconsistentStockError struct {
	ItemID   int64
	SiteID   int64
	OnHand   decimal.Decimal
	Reserved decimal.Decimal
	Op       string
}

func (e *InconsistentStockError) Error() string {
	return fmt.Sprintf("estado de stock inconsistente en %s: item=%d site=%d on_hand=%s reserved=%s",
		e.Op, e.ItemID, e.SiteID, e.OnHand, e.Reserved)
}
