package repository

import "github.com/tu-usuario/ensamblados-api/internal/domain/entity"

// AssemblyRepository puerto de persistencia para órdenes de ensamblado.
type AssemblyRepository interface {
	// Create inserta la instancia y asigna su ID.
	Create(a *entity.AssemblyInstance) error
	GetByID(id int64) (*entity.AssemblyInstance, error)
	// GetForUpdate bloquea la instancia (SELECT FOR UPDATE) para serializar
	// transiciones de estado concurrentes sobre la misma orden.
	GetForUpdate(id int64) (*entity.AssemblyInstance, error)
	Update(a *entity.AssemblyInstance) error
	// List devuelve instancias con datos de plantilla y sitio; filtros opcionales.
	List(status *entity.Status, siteID *int64) ([]*entity.AssemblyDetail, error)
	GetDetail(id int64) (*entity.AssemblyDetail, error)
}
