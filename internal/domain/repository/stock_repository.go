package repository

import "github.com/tu-usuario/ensamblados-api/internal/domain/entity"

// StockRepository puerto para consultar/actualizar stock por (item, sitio).
// Get y GetForUpdate devuelven (nil, nil) cuando la fila no existe: el caller
// decide si tratarlo como cantidades en cero (consultas, reservas) o como
// condición de error (salidas manuales sin fila).
type StockRepository interface {
	Get(itemID, siteID int64) (*entity.Stock, error)
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE) hasta el
	// commit/rollback de la transacción ambiente.
	GetForUpdate(itemID, siteID int64) (*entity.Stock, error)
	// EnsureRow crea la fila (item, sitio) en cero si no existe. No bloquea:
	// el caller debe re-leer con GetForUpdate después de asegurar la fila.
	EnsureRow(itemID, siteID int64) error
	Upsert(stock *entity.Stock) error
	// ListDetailed listado con datos de item y sitio; filtros opcionales (nil = sin filtro).
	ListDetailed(itemID, siteID *int64) ([]*entity.StockDetail, error)
}
