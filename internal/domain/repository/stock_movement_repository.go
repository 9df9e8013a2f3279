package repository

import "github.com/tu-usuario/ensamblados-api/internal/domain/entity"

// StockMovementRepository puerto de la bitácora de movimientos de stock.
// Los movimientos se insertan en la misma transacción que la mutación de stock.
type StockMovementRepository interface {
	Create(mov *entity.StockMovement) error
	List(itemID, siteID *int64, limit, offset int) ([]*entity.StockMovement, error)
}
