package stock

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/ensamblados-api/internal/domain"
	"github.com/tu-usuario/ensamblados-api/internal/domain/entity"
	"github.com/tu-usuario/ensamblados-api/internal/domain/repository"
	"github.com/tu-usuario/ensamblados-api/pkg/logger"
)

// Tipos de ajuste manual aceptados por AdjustStock.
const (
	AdjustEntrada = "ENTRADA"
	AdjustSalida  = "SALIDA"
	AdjustAjuste  = "AJUSTE"
)

// UseCase consultas de stock y ajustes manuales. Los ajustes mutan stock a
// través del Ledger dentro de una transacción propia; las consultas leen
// directamente de los repositorios atados al pool.
type UseCase struct {
	txRunner  TxRunner
	itemRepo  repository.ItemRepository
	siteRepo  repository.SiteRepository
	stockRepo repository.StockRepository
	movRepo   repository.StockMovementRepository
	log       *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner TxRunner,
	itemRepo repository.ItemRepository,
	siteRepo repository.SiteRepository,
	stockRepo repository.StockRepository,
	movRepo repository.StockMovementRepository,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		txRunner:  txRunner,
		itemRepo:  itemRepo,
		siteRepo:  siteRepo,
		stockRepo: stockRepo,
		movRepo:   movRepo,
		log:       log,
	}
}

// AdjustInput entrada para un ajuste manual de stock.
type AdjustInput struct {
	ItemID  int64
	SiteID  int64
	Qty     decimal.Decimal
	Type    string // ENTRADA | SALIDA | AJUSTE
	ActorID int64
	Notes   string
}

// AdjustStock aplica un ajuste manual. ENTRADA y AJUSTE suman a on_hand y
// crean la fila si no existe; SALIDA descuenta y falla si no hay fila o si
// dejaría on_hand por debajo de lo reservado. Todo ocurre en una transacción
// con la fila bloqueada, y queda registrado en la bitácora de movimientos.
func (uc *UseCase) AdjustStock(ctx context.Context, in AdjustInput) error {
	switch in.Type {
	case AdjustEntrada, AdjustSalida, AdjustAjuste:
	default:
		return domain.ErrInvalidInput
	}
	if !in.Qty.IsPositive() {
		return domain.ErrInvalidInput
	}

	item, err := uc.itemRepo.GetByID(in.ItemID)
	if err != nil {
		return err
	}
	if item == nil || !item.Active {
		return domain.ErrNotFound
	}
	site, err := uc.siteRepo.GetByID(in.SiteID)
	if err != nil {
		return err
	}
	if site == nil {
		return domain.ErrNotFound
	}

	return uc.txRunner.Run(ctx, func(
		_ repository.ItemRepository,
		_ repository.BomRepository,
		stockRepo repository.StockRepository,
		movRepo repository.StockMovementRepository,
		_ repository.AssemblyRepository,
	) error {
		ledger := NewLedger(stockRepo, movRepo, uc.log, in.ActorID)
		switch in.Type {
		case AdjustEntrada:
			return ledger.RegisterEntry(in.ItemID, in.SiteID, in.Qty, entity.MovementTypeEntrada, in.Notes)
		case AdjustAjuste:
			return ledger.RegisterEntry(in.ItemID, in.SiteID, in.Qty, entity.MovementTypeAjuste, in.Notes)
		default:
			return ledger.RegisterExit(in.ItemID, in.SiteID, in.Qty, in.Notes)
		}
	})
}

// Availability cantidades de un (item, sitio): on_hand, reserved y disponible.
// Una fila inexistente se reporta como todo en cero.
func (uc *UseCase) Availability(itemID, siteID int64) (onHand, reserved, available decimal.Decimal, err error) {
	s, err := uc.stockRepo.Get(itemID, siteID)
	if err != nil {
		return decimal.Zero, decimal.Zero, decimal.Zero, err
	}
	if s == nil {
		return decimal.Zero, decimal.Zero, decimal.Zero, nil
	}
	return s.OnHand, s.Reserved, s.Available(), nil
}

// ListStock listado de stock con datos de item y sitio; filtros opcionales.
func (uc *UseCase) ListStock(itemID, siteID *int64) ([]*entity.StockDetail, error) {
	return uc.stockRepo.ListDetailed(itemID, siteID)
}

// ListBySite stock de un sitio específico.
func (uc *UseCase) ListBySite(siteID int64) ([]*entity.StockDetail, error) {
	site, err := uc.siteRepo.GetByID(siteID)
	if err != nil {
		return nil, err
	}
	if site == nil {
		return nil, domain.ErrNotFound
	}
	return uc.stockRepo.ListDetailed(nil, &siteID)
}

// ListMovements bitácora de movimientos con filtros opcionales.
func (uc *UseCase) ListMovements(itemID, siteID *int64, limit, offset int) ([]*entity.StockMovement, error) {
	return uc.movRepo.List(itemID, siteID, limit, offset)
}
