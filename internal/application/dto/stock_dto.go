package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AdjustStockRequest body para POST /api/stock/adjust.
// adjustment_type conserva el nombre histórico del campo en la API.
type AdjustStockRequest struct {
	ItemID         int64           `json:"itemId" validate:"required,gt=0"`
	SiteID         int64           `json:"siteId" validate:"required,gt=0"`
	Quantity       decimal.Decimal `json:"quantity"` // > 0, validado en el caso de uso
	AdjustmentType string          `json:"adjustment_type" validate:"required,oneof=ENTRADA SALIDA AJUSTE"`
	Notes          string          `json:"notes,omitempty"`
}

// StockResponse una fila de stock con datos de item y sitio.
type StockResponse struct {
	ItemID    int64           `json:"itemId"`
	ItemSKU   string          `json:"itemSku"`
	ItemName  string          `json:"itemName"`
	ItemType  string          `json:"itemType"`
	UomSymbol string          `json:"uomSymbol,omitempty"`
	SiteID    int64           `json:"siteId"`
	SiteName  string          `json:"siteName"`
	OnHand    decimal.Decimal `json:"on_hand"`
	Reserved  decimal.Decimal `json:"reserved"`
	Available decimal.Decimal `json:"available"`
}

// AvailabilityResponse consulta puntual de disponibilidad.
type AvailabilityResponse struct {
	ItemID    int64           `json:"itemId"`
	SiteID    int64           `json:"siteId"`
	OnHand    decimal.Decimal `json:"on_hand"`
	Reserved  decimal.Decimal `json:"reserved"`
	Available decimal.Decimal `json:"available"`
}

// MovementResponse un registro de la bitácora de movimientos.
type MovementResponse struct {
	ID            int64           `json:"id"`
	TransactionID string          `json:"transactionId"`
	ItemID        int64           `json:"itemId"`
	SiteID        int64           `json:"siteId"`
	Type          string          `json:"type"`
	Quantity      decimal.Decimal `json:"quantity"`
	Notes         string          `json:"notes,omitempty"`
	CreatedBy     int64           `json:"createdBy"`
	CreatedAt     time.Time       `json:"createdAt"`
}
