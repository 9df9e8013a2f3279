package catalog

import (
	"context"
	"time"

	"github.com/tu-usuario/ensamblados-api/internal/application/dto"
	"github.com/tu-usuario/ensamblados-api/internal/application/stock"
	"github.com/tu-usuario/ensamblados-api/internal/domain"
	"github.com/tu-usuario/ensamblados-api/internal/domain/entity"
	"github.com/tu-usuario/ensamblados-api/internal/domain/repository"
)

// ItemUseCase CRUD del catálogo de items y edición de listas de materiales.
type ItemUseCase struct {
	itemRepo repository.ItemRepository
	bomRepo  repository.BomRepository
	uomRepo  repository.UomRepository
	txRunner stock.TxRunner
}

// NewItemUseCase construye el caso de uso.
func NewItemUseCase(
	itemRepo repository.ItemRepository,
	bomRepo repository.BomRepository,
	uomRepo repository.UomRepository,
	txRunner stock.TxRunner,
) *ItemUseCase {
	return &ItemUseCase{itemRepo: itemRepo, bomRepo: bomRepo, uomRepo: uomRepo, txRunner: txRunner}
}

// Create crea un item del catálogo. El SKU se normaliza (mayúsculas, sin
// diacríticos) y debe ser único; tras la creación es inmutable.
func (uc *ItemUseCase) Create(in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	sku := entity.NormalizeSKU(in.SKU)
	if sku == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.itemRepo.GetBySKU(sku)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	uom, err := uc.uomRepo.GetByID(in.UomID)
	if err != nil {
		return nil, err
	}
	if uom == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	item := &entity.Item{
		SKU:       sku,
		Name:      in.Name,
		Type:      in.Type,
		Active:    true,
		UomID:     in.UomID,
		Notes:     in.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.itemRepo.Create(item); err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// GetByID obtiene un item por ID.
func (uc *ItemUseCase) GetByID(id int64) (*dto.ItemResponse, error) {
	item, err := uc.itemRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return toItemResponse(item), nil
}

// Update actualiza nombre, unidad o notas. SKU y tipo son inmutables.
func (uc *ItemUseCase) Update(id int64, in dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	item, err := uc.itemRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		item.Name = *in.Name
	}
	if in.UomID != nil {
		uom, err := uc.uomRepo.GetByID(*in.UomID)
		if err != nil {
			return nil, err
		}
		if uom == nil {
			return nil, domain.ErrNotFound
		}
		item.UomID = *in.UomID
	}
	if in.Notes != nil {
		item.Notes = *in.Notes
	}
	item.UpdatedAt = time.Now()
	if err := uc.itemRepo.Update(item); err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// Deactivate soft-delete: el item deja de aparecer en catálogos y no puede
// ensamblarse, pero su historial de stock y ensamblados permanece.
func (uc *ItemUseCase) Deactivate(id int64) error {
	item, err := uc.itemRepo.GetByID(id)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}
	return uc.itemRepo.Deactivate(id)
}

// List items del catálogo con paginación.
func (uc *ItemUseCase) List(onlyActive bool, limit, offset int) ([]dto.ItemResponse, error) {
	items, err := uc.itemRepo.List(onlyActive, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, *toItemResponse(it))
	}
	return out, nil
}

// ListTemplates plantillas ensamblables (KIT y PRODUCT) activas.
func (uc *ItemUseCase) ListTemplates() ([]dto.ItemResponse, error) {
	items, err := uc.itemRepo.ListTemplates()
	if err != nil {
		return nil, err
	}
	out := make([]dto.ItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, *toItemResponse(it))
	}
	return out, nil
}

// GetBom lista de materiales de una plantilla con datos de los hijos.
// Un BOM vacío aquí es una respuesta válida (lista vacía), no un error:
// la distinción ErrSinMateriales la hace el motor de ensamblados.
func (uc *ItemUseCase) GetBom(parentID int64) ([]dto.BomLineResponse, error) {
	parent, err := uc.itemRepo.GetByID(parentID)
	if err != nil {
		return nil, err
	}
	if parent == nil {
		return nil, domain.ErrNotFound
	}
	lines, err := uc.bomRepo.ListByParent(parentID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.BomLineResponse, 0, len(lines))
	for _, l := range lines {
		out = append(out, dto.BomLineResponse{
			ChildItemID: l.ChildItemID,
			ChildSKU:    l.ChildSKU,
			ChildName:   l.ChildName,
			ChildType:   l.ChildType,
			Quantity:    l.Quantity,
		})
	}
	return out, nil
}

// ReplaceBom reemplaza el BOM completo del padre dentro de una transacción
// (delete de las líneas viejas + insert de las nuevas). Valida que el padre
// sea KIT o PRODUCT, que las cantidades sean positivas, que no haya hijos
// duplicados y que cada hijo exista, esté activo y no sea el propio padre.
func (uc *ItemUseCase) ReplaceBom(ctx context.Context, parentID int64, in dto.ReplaceBomRequest) error {
	parent, err := uc.itemRepo.GetByID(parentID)
	if err != nil {
		return err
	}
	if parent == nil || !parent.Active {
		return domain.ErrNotFound
	}
	if !parent.IsTemplate() {
		return domain.ErrInvalidInput
	}

	seen := make(map[int64]bool, len(in.Lines))
	lines := make([]*entity.BomLine, 0, len(in.Lines))
	for _, l := range in.Lines {
		if !l.Quantity.IsPositive() {
			return domain.ErrInvalidInput
		}
		if l.ChildItemID == parentID || seen[l.ChildItemID] {
			return domain.ErrInvalidInput
		}
		seen[l.ChildItemID] = true

		child, err := uc.itemRepo.GetByID(l.ChildItemID)
		if err != nil {
			return err
		}
		if child == nil || !child.Active {
			return domain.ErrNotFound
		}
		lines = append(lines, &entity.BomLine{
			ParentItemID: parentID,
			ChildItemID:  l.ChildItemID,
			Quantity:     l.Quantity,
		})
	}

	return uc.txRunner.Run(ctx, func(
		_ repository.ItemRepository,
		bomRepo repository.BomRepository,
		_ repository.StockRepository,
		_ repository.StockMovementRepository,
		_ repository.AssemblyRepository,
	) error {
		return bomRepo.ReplaceForParent(parentID, lines)
	})
}

func toItemResponse(i *entity.Item) *dto.ItemResponse {
	return &dto.ItemResponse{
		ID:        i.ID,
		SKU:       i.SKU,
		Name:      i.Name,
		Type:      i.Type,
		Active:    i.Active,
		UomID:     i.UomID,
		Notes:     i.Notes,
		CreatedAt: i.CreatedAt,
		UpdatedAt: i.UpdatedAt,
	}
}
