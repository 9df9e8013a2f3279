package entity

import (
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Tipos de item del catálogo.
const (
	ItemTypeElement = "ELEMENT" // pieza base, nunca dueña de BOM
	ItemTypeKit     = "KIT"     // conjunto ensamblable
	ItemTypeProduct = "PRODUCT" // producto terminado ensamblable
)

// Item representa un elemento del catálogo: pieza base, kit o producto terminado.
// Solo KIT y PRODUCT pueden ser padres en la lista de materiales (BOM).
type Item struct {
	ID        int64
	SKU       string // código único de negocio, inmutable tras la creación
	Name      string
	Type      string
	Active    bool // soft-delete: false oculta el item sin borrar historial
	UomID     int64
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsTemplate indica si el item puede ensamblarse (dueño de BOM).
func (i *Item) IsTemplate() bool {
	return i.Type == ItemTypeKit || i.Type == ItemTypeProduct
}

// NormalizeSKU canonicaliza un SKU: mayúsculas, sin espacios en los extremos
// y sin diacríticos (TORNILLO-Ñ6 y tornillo-ñ6 colisionan a TORNILLO-N6).
func NormalizeSKU(sku string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, sku)
	if err != nil {
		folded = sku
	}
	return strings.ToUpper(strings.TrimSpace(folded))
}
