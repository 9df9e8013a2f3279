package assembly

import (
	"github.com/tu-usuario/ensamblados-api/internal/domain"
	"github.com/tu-usuario/ensamblados-api/internal/domain/entity"
	"github.com/tu-usuario/ensamblados-api/internal/domain/repository"
)

// ResolveBOM devuelve la plantilla y sus líneas de materiales, ordenadas por
// child_item_id (orden de bloqueo determinista). Distingue dos condiciones que
// el cliente necesita diferenciar: plantilla inexistente o inactiva
// (ErrNotFound) y plantilla sin materiales definidos (ErrSinMateriales).
// La expansión no es recursiva: un hijo de tipo KIT es una línea de stock
// opaca, no se expande transitivamente. Solo lectura, sin efectos.
func ResolveBOM(itemRepo repository.ItemRepository, bomRepo repository.BomRepository, templateID int64) (*entity.Item, []*entity.BomLine, error) {
	template, err := itemRepo.GetByID(templateID)
	if err != nil {
		return nil, nil, err
	}
	if template == nil || !template.Active {
		return nil, nil, domain.ErrNotFound
	}
	lines, err := bomRepo.ListByParent(templateID)
	if err != nil {
		return nil, nil, err
	}
	if len(lines) == 0 {
		return nil, nil, domain.ErrSinMateriales
	}
	return template, lines, nil
}
