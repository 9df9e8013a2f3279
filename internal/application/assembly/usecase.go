package assembly

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/ensamblados-api/internal/application/stock"
	"github.com/tu-usuario/ensamblados-api/internal/domain"
	"github.com/tu-usuario/ensamblados-api/internal/domain/entity"
	"github.com/tu-usuario/ensamblados-api/internal/domain/repository"
	"github.com/tu-usuario/ensamblados-api/pkg/logger"
)

// UseCase motor del ciclo de vida de ensamblados: creación con reserva de
// componentes, avance por el tablero Kanban, completado (consumo + producción)
// y cancelación (liberación). Cada transición de estado es UNA transacción:
// si cualquier paso falla, el rollback restaura el estado previo completo —
// nunca queda una instancia a medio actualizar ni stock mutado parcialmente.
type UseCase struct {
	txRunner stock.TxRunner
	itemRepo repository.ItemRepository
	siteRepo repository.SiteRepository
	asmRepo  repository.AssemblyRepository
	log      *logger.Logger
}

// NewUseCase construye el motor de ensamblados.
func NewUseCase(
	txRunner stock.TxRunner,
	itemRepo repository.ItemRepository,
	siteRepo repository.SiteRepository,
	asmRepo repository.AssemblyRepository,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		txRunner: txRunner,
		itemRepo: itemRepo,
		siteRepo: siteRepo,
		asmRepo:  asmRepo,
		log:      log,
	}
}

// CreateInput entrada para crear una orden de ensamblado.
type CreateInput struct {
	TemplateID int64
	SiteID     int64
	Quantity   int64
	ActorID    int64
	Notes      string
}

// CreateAssembly valida la plantilla, resuelve su BOM y reserva todos los
// componentes dentro de una sola transacción. Los faltantes se acumulan línea
// por línea y se reportan TODOS juntos (InsufficientStockError): el rollback
// descarta cualquier reserva parcial, así que ninguna línea queda apartada si
// alguna no alcanza. En éxito la instancia nace en BACKLOG.
func (uc *UseCase) CreateAssembly(ctx context.Context, in CreateInput) (*entity.AssemblyInstance, error) {
	if in.Quantity < 1 {
		return nil, domain.ErrInvalidInput
	}

	template, err := uc.itemRepo.GetByID(in.TemplateID)
	if err != nil {
		return nil, err
	}
	if template == nil || !template.Active {
		return nil, domain.ErrNotFound
	}
	if !template.IsTemplate() {
		return nil, domain.ErrInvalidInput
	}
	site, err := uc.siteRepo.GetByID(in.SiteID)
	if err != nil {
		return nil, err
	}
	if site == nil {
		return nil, domain.ErrNotFound
	}

	var created *entity.AssemblyInstance
	err = uc.txRunner.Run(ctx, func(
		itemRepo repository.ItemRepository,
		bomRepo repository.BomRepository,
		stockRepo repository.StockRepository,
		movRepo repository.StockMovementRepository,
		asmRepo repository.AssemblyRepository,
	) error {
		_, lines, err := ResolveBOM(itemRepo, bomRepo, in.TemplateID)
		if err != nil {
			return err
		}

		ledger := stock.NewLedger(stockRepo, movRepo, uc.log, in.ActorID)
		qty := decimal.NewFromInt(in.Quantity)

		// Las líneas llegan ordenadas por child_item_id: dos creaciones
		// concurrentes con componentes en común adquieren los bloqueos en el
		// mismo orden y no pueden interbloquearse.
		var shortfalls []domain.Shortfall
		for _, line := range lines {
			required := line.Quantity.Mul(qty)
			available, ok, err := ledger.Reserve(line.ChildItemID, in.SiteID, required)
			if err != nil {
				return err
			}
			if !ok {
				shortfalls = append(shortfalls, domain.Shortfall{
					ItemID:    line.ChildItemID,
					SKU:       line.ChildSKU,
					Name:      line.ChildName,
					Required:  required,
					Available: available,
				})
			}
		}
		if len(shortfalls) > 0 {
			// El rollback deshace las reservas de las líneas que sí alcanzaron.
			return &domain.InsufficientStockError{Shortfalls: shortfalls}
		}

		now := time.Now()
		a := &entity.AssemblyInstance{
			TemplateID: in.TemplateID,
			SiteID:     in.SiteID,
			Quantity:   in.Quantity,
			Status:     entity.StatusBacklog,
			CreatedBy:  in.ActorID,
			Notes:      in.Notes,
			BacklogAt:  &now,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := asmRepo.Create(a); err != nil {
			return err
		}
		created = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// AdvanceStatus mueve la instancia a target dentro de una transacción, con la
// instancia bloqueada para serializar transiciones concurrentes. Transiciones
// legales: un paso adelante en el flujo, o CANCELADO desde cualquier estado no
// terminal. Al entrar a DONE se consumen los componentes y se produce el item
// ensamblado; al entrar a CANCELADO se liberan las reservas originales.
func (uc *UseCase) AdvanceStatus(ctx context.Context, instanceID int64, target entity.Status, actorID int64, notes string) (*entity.AssemblyInstance, error) {
	if !entity.ValidStatus(target) {
		return nil, domain.ErrInvalidInput
	}

	var updated *entity.AssemblyInstance
	err := uc.txRunner.Run(ctx, func(
		itemRepo repository.ItemRepository,
		bomRepo repository.BomRepository,
		stockRepo repository.StockRepository,
		movRepo repository.StockMovementRepository,
		asmRepo repository.AssemblyRepository,
	) error {
		a, err := asmRepo.GetForUpdate(instanceID)
		if err != nil {
			return err
		}
		if a == nil {
			return domain.ErrNotFound
		}
		if !a.Status.CanTransition(target) {
			return &domain.InvalidTransitionError{
				Current:   string(a.Status),
				Requested: string(target),
			}
		}

		now := time.Now()
		switch target {
		case entity.StatusInProgress:
			a.AssignedTo = &actorID

		case entity.StatusDone:
			// Completar: consumir cada componente y producir el item
			// ensamblado, en la misma transacción que el cambio de estado.
			// Las líneas se leen directo del BOM, sin exigir plantilla
			// activa: una orden en curso debe poder terminarse aunque la
			// plantilla se haya desactivado después de crearla.
			lines, err := bomRepo.ListByParent(a.TemplateID)
			if err != nil {
				return err
			}
			ledger := stock.NewLedger(stockRepo, movRepo, uc.log, actorID)
			qty := decimal.NewFromInt(a.Quantity)
			for _, line := range lines {
				if err := ledger.Consume(line.ChildItemID, a.SiteID, line.Quantity.Mul(qty)); err != nil {
					return err
				}
			}
			if err := ledger.Produce(a.TemplateID, a.SiteID, qty); err != nil {
				return err
			}
			a.CompletedAt = &now
			a.CompletedBy = &actorID
			a.VerifiedBy = &actorID

		case entity.StatusCancelado:
			// Liberar exactamente lo reservado al crear: cantidad por unidad
			// multiplicada por las unidades de la orden. Igual que al
			// completar, la plantilla puede estar ya desactivada.
			lines, err := bomRepo.ListByParent(a.TemplateID)
			if err != nil {
				return err
			}
			ledger := stock.NewLedger(stockRepo, movRepo, uc.log, actorID)
			qty := decimal.NewFromInt(a.Quantity)
			for _, line := range lines {
				if err := ledger.Release(line.ChildItemID, a.SiteID, line.Quantity.Mul(qty)); err != nil {
					return err
				}
			}
		}

		a.Status = target
		a.StampStatus(target, now)
		if notes != "" {
			a.Notes = notes
		}
		a.UpdatedAt = now
		if err := asmRepo.Update(a); err != nil {
			return err
		}
		updated = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// CompleteAssembly especialización de AdvanceStatus hacia DONE.
func (uc *UseCase) CompleteAssembly(ctx context.Context, instanceID, actorID int64, notes string) (*entity.AssemblyInstance, error) {
	return uc.AdvanceStatus(ctx, instanceID, entity.StatusDone, actorID, notes)
}

// CancelAssembly especialización de AdvanceStatus hacia CANCELADO.
func (uc *UseCase) CancelAssembly(ctx context.Context, instanceID, actorID int64, notes string) (*entity.AssemblyInstance, error) {
	return uc.AdvanceStatus(ctx, instanceID, entity.StatusCancelado, actorID, notes)
}

// List instancias con datos de plantilla y sitio; filtros opcionales por
// estado y sitio para los tableros.
func (uc *UseCase) List(status *entity.Status, siteID *int64) ([]*entity.AssemblyDetail, error) {
	if status != nil && !entity.ValidStatus(*status) {
		return nil, domain.ErrInvalidInput
	}
	return uc.asmRepo.List(status, siteID)
}

// Get una instancia con sus datos de plantilla y sitio.
func (uc *UseCase) Get(id int64) (*entity.AssemblyDetail, error) {
	d, err := uc.asmRepo.GetDetail(id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, domain.ErrNotFound
	}
	return d, nil
}
