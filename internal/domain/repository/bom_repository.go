package repository

import "github.com/tu-usuario/ensamblados-api/internal/domain/entity"

// BomRepository puerto para la lista de materiales (BOM) de las plantillas.
type BomRepository interface {
	// ListByParent devuelve las líneas del BOM con los datos del item hijo,
	// ordenadas por child_item_id. El orden es estable a propósito: el motor de
	// ensamblados bloquea filas de stock recorriendo las líneas y dos
	// transacciones concurrentes que compartan componentes deben adquirir los
	// bloqueos en el mismo orden para no interbloquearse.
	ListByParent(parentID int64) ([]*entity.BomLine, error)
	// ReplaceForParent reemplaza el BOM completo del padre (delete + insert).
	// Debe ejecutarse dentro de una transacción del caller.
	ReplaceForParent(parentID int64, lines []*entity.BomLine) error
}
