package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stock cantidades de un item en un sitio. La fila se crea de forma perezosa
// la primera vez que se referencia el par (item, site) y se muta únicamente
// a través de operaciones con bloqueo de fila (SELECT FOR UPDATE).
// Invariante tras cada commit: 0 <= Reserved <= OnHand.
type Stock struct {
	ItemID    int64
	SiteID    int64
	OnHand    decimal.Decimal // cantidad física presente
	Reserved  decimal.Decimal // apartada para ensamblados en curso
	UpdatedAt time.Time
}

// Available devuelve la cantidad libre para nuevas reservas (on_hand - reserved).
func (s *Stock) Available() decimal.Decimal {
	return s.OnHand.Sub(s.Reserved)
}

// StockDetail fila de stock con datos del item y sitio (join) para listados y export.
type StockDetail struct {
	Stock
	ItemSKU   string
	ItemName  string
	ItemType  string
	UomSymbol string
	SiteName  string
}
