package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de stock. Los cuatro primeros los genera el motor de
// ensamblados; ENTRADA/SALIDA/AJUSTE provienen de ajustes manuales.
const (
	MovementTypeReserva    = "RESERVA"
	MovementTypeLiberacion = "LIBERACION"
	MovementTypeConsumo    = "CONSUMO"
	MovementTypeProduccion = "PRODUCCION"
	MovementTypeEntrada    = "ENTRADA"
	MovementTypeSalida     = "SALIDA"
	MovementTypeAjuste     = "AJUSTE"
)

// StockMovement registro de auditoría de cada mutación de stock. Se escribe en
// la misma transacción que la mutación que documenta; TransactionID agrupa los
// movimientos de una misma operación (p. ej. todas las reservas de un ensamblado).
type StockMovement struct {
	ID            int64
	TransactionID string // uuid que agrupa los movimientos de una operación
	ItemID        int64
	SiteID        int64
	Type          string
	Quantity      decimal.Decimal // con signo: positivo entra/reserva, negativo sale/libera
	Notes         string
	CreatedBy     int64
	CreatedAt     time.Time
}
