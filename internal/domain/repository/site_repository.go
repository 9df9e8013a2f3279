package repository

import "github.com/tu-usuario/ensamblados-api/internal/domain/entity"

// SiteRepository puerto de persistencia para sitios.
type SiteRepository interface {
	Create(site *entity.Site) error
	GetByID(id int64) (*entity.Site, error)
	List() ([]*entity.Site, error)
}
