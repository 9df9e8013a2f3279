package repository

import "github.com/tu-usuario/ensamblados-api/internal/domain/entity"

// UomRepository unidades de medida de referencia.
type UomRepository interface {
	GetByID(id int64) (*entity.Uom, error)
	List() ([]*entity.Uom, error)
}
