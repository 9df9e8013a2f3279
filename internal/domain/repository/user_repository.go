package repository

import "github.com/tu-usuario/ensamblados-api/internal/domain/entity"

// UserRepository directorio de usuarios, solo lectura desde esta API.
type UserRepository interface {
	GetByID(id int64) (*entity.User, error)
	List() ([]*entity.User, error)
}
