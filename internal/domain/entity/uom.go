package entity

// Uom unidad de medida de referencia para items (unidad, metro, kilogramo...).
type Uom struct {
	ID     int64
	Name   string
	Symbol string
}
