package repository

import "github.com/tu-usuario/ensamblados-api/internal/domain/entity"

// ItemRepository define el puerto de persistencia para el catálogo de items (DIP).
// Los getters devuelven (nil, nil) cuando el item no existe.
type ItemRepository interface {
	Create(item *entity.Item) error
	GetByID(id int64) (*entity.Item, error)
	GetBySKU(sku string) (*entity.Item, error)
	Update(item *entity.Item) error
	// Deactivate marca el item como inactivo (soft-delete); nunca se borra físicamente.
	Deactivate(id int64) error
	List(onlyActive bool, limit, offset int) ([]*entity.Item, error)
	// ListTemplates devuelve los items ensamblables (KIT y PRODUCT) activos.
	ListTemplates() ([]*entity.Item, error)
}
