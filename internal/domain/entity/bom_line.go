package entity

import "github.com/shopspring/decimal"

// BomLine una línea de la lista de materiales: cuántas unidades del hijo
// requiere una unidad del padre. El par (parent, child) es único y el padre
// debe ser KIT o PRODUCT. La expansión NO es recursiva: un hijo de tipo KIT
// se trata como una línea de stock opaca.
type BomLine struct {
	ID           int64
	ParentItemID int64
	ChildItemID  int64
	Quantity     decimal.Decimal // unidades del hijo por unidad del padre, > 0

	// Datos del hijo (join) para reportes de faltantes y vistas de BOM.
	ChildSKU   string
	ChildName  string
	ChildType  string
	ChildUomID int64
}
