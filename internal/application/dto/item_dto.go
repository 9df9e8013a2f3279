package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateItemRequest body para POST /api/items.
type CreateItemRequest struct {
	SKU   string `json:"sku" validate:"required,max=64"`
	Name  string `json:"name" validate:"required,max=200"`
	Type  string `json:"type" validate:"required,oneof=ELEMENT KIT PRODUCT"`
	UomID int64  `json:"uomId" validate:"required,gt=0"`
	Notes string `json:"notes,omitempty"`
}

// UpdateItemRequest body para PUT /api/items/:id. El SKU es inmutable y el
// tipo no se cambia una vez creado el item (el historial de BOM depende de él).
type UpdateItemRequest struct {
	Name  *string `json:"name,omitempty" validate:"omitempty,max=200"`
	UomID *int64  `json:"uomId,omitempty" validate:"omitempty,gt=0"`
	Notes *string `json:"notes,omitempty"`
}

// ItemResponse representación de un item del catálogo.
type ItemResponse struct {
	ID        int64     `json:"id"`
	SKU       string    `json:"sku"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Active    bool      `json:"active"`
	UomID     int64     `json:"uomId"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BomLineRequest una línea del BOM en PUT /api/items/:id/bom.
type BomLineRequest struct {
	ChildItemID int64           `json:"childItemId" validate:"required,gt=0"`
	Quantity    decimal.Decimal `json:"quantity"` // > 0, validado en el caso de uso
}

// ReplaceBomRequest body para PUT /api/items/:id/bom (reemplazo total).
type ReplaceBomRequest struct {
	Lines []BomLineRequest `json:"lines" validate:"required,min=1,dive"`
}

// BomLineResponse una línea del BOM con los datos del hijo.
type BomLineResponse struct {
	ChildItemID int64           `json:"childItemId"`
	ChildSKU    string          `json:"childSku"`
	ChildName   string          `json:"childName"`
	ChildType   string          `json:"childType"`
	Quantity    decimal.Decimal `json:"quantity"`
}
