package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateAssemblyRequest body para POST /api/stock/assembly.
type CreateAssemblyRequest struct {
	TemplateID int64  `json:"templateId" validate:"required,gt=0"`
	Quantity   int64  `json:"quantity" validate:"required,gt=0"`
	SiteID     int64  `json:"siteId" validate:"required,gt=0"`
	Notes      string `json:"notes,omitempty"`
}

// AdvanceStatusRequest body para POST /api/stock/assemblies/:id/status.
type AdvanceStatusRequest struct {
	TargetStatus string `json:"targetStatus" validate:"required"`
	Notes        string `json:"notes,omitempty"`
}

// InsufficientComponent detalle de un componente faltante en la respuesta 409.
type InsufficientComponent struct {
	ItemID    int64           `json:"itemId"`
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	Required  decimal.Decimal `json:"required"`
	Available decimal.Decimal `json:"available"`
}

// InsufficientStockResponse respuesta estructurada con TODOS los faltantes.
type InsufficientStockResponse struct {
	Code                   string                  `json:"code"`
	Message                string                  `json:"message"`
	InsufficientComponents []InsufficientComponent `json:"insufficientComponents"`
}

// AssemblyResponse representación de una orden de ensamblado.
type AssemblyResponse struct {
	ID           int64      `json:"id"`
	TemplateID   int64      `json:"templateId"`
	TemplateSKU  string     `json:"templateSku,omitempty"`
	TemplateName string     `json:"templateName,omitempty"`
	SiteID       int64      `json:"siteId"`
	SiteName     string     `json:"siteName,omitempty"`
	Quantity     int64      `json:"quantity"`
	Status       string     `json:"status"`
	CreatedBy    int64      `json:"createdBy"`
	AssignedTo   *int64     `json:"assignedTo,omitempty"`
	CompletedBy  *int64     `json:"completedBy,omitempty"`
	VerifiedBy   *int64     `json:"verifiedBy,omitempty"`
	BacklogAt    *time.Time `json:"backlogAt,omitempty"`
	TodoAt       *time.Time `json:"todoAt,omitempty"`
	InProgressAt *time.Time `json:"inProgressAt,omitempty"`
	ToVerifyAt   *time.Time `json:"toVerifyAt,omitempty"`
	DoneAt       *time.Time `json:"doneAt,omitempty"`
	CompletedAt  *time.Time `json:"completedAt,omitempty"`
	Notes        string     `json:"notes,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}
