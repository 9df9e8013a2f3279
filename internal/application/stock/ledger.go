package stock

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/ensamblados-api/internal/domain"
	"github.com/tu-usuario/ensamblados-api/internal/domain/entity"
	"github.com/tu-usuario/ensamblados-api/internal/domain/repository"
	"github.com/tu-usuario/ensamblados-api/pkg/logger"
)

// Ledger operaciones atómicas sobre las cantidades de stock de un (item, sitio).
// Se construye DENTRO del callback del TxRunner, sobre repositorios atados a la
// transacción ambiente: cada mutación bloquea la fila con SELECT FOR UPDATE y el
// bloqueo vive hasta el commit/rollback del caller. El Ledger nunca abre ni
// cierra transacciones; eso es responsabilidad del motor de ensamblados, porque
// una operación completa toca varias filas de stock de forma atómica.
//
// Cada mutación deja además un registro en la bitácora de movimientos, agrupado
// por TransactionID (un uuid por Ledger, es decir, por operación de negocio).
type Ledger struct {
	stockRepo repository.StockRepository
	movRepo   repository.StockMovementRepository
	log       *logger.Logger
	actorID   int64
	txID      string
}

// NewLedger construye el ledger para una operación. actorID queda registrado
// como autor de cada movimiento (se pasa explícito, nunca estado ambiente).
func NewLedger(stockRepo repository.StockRepository, movRepo repository.StockMovementRepository, log *logger.Logger, actorID int64) *Ledger {
	return &Ledger{
		stockRepo: stockRepo,
		movRepo:   movRepo,
		log:       log,
		actorID:   actorID,
		txID:      uuid.New().String(),
	}
}

// TransactionID uuid que agrupa los movimientos generados por este ledger.
func (l *Ledger) TransactionID() string { return l.txID }

// Available devuelve on_hand - reserved sin bloquear la fila (consulta).
// Una fila inexistente cuenta como cantidades en cero.
func (l *Ledger) Available(itemID, siteID int64) (decimal.Decimal, error) {
	s, err := l.stockRepo.Get(itemID, siteID)
	if err != nil {
		return decimal.Zero, err
	}
	if s == nil {
		return decimal.Zero, nil
	}
	return s.Available(), nil
}

// Reserve bloquea la fila, verifica disponibilidad y aparta qty en una sola
// sección crítica: la verificación y el incremento de reserved ocurren bajo el
// mismo bloqueo, de modo que dos reservas concurrentes no pueden pasar ambas
// la verificación. Si no alcanza devuelve ok=false con el disponible actual y
// NO muta nada; el caller decide si acumula faltantes o aborta.
func (l *Ledger) Reserve(itemID, siteID int64, qty decimal.Decimal) (available decimal.Decimal, ok bool, err error) {
	if !qty.IsPositive() {
		return decimal.Zero, false, domain.ErrInvalidInput
	}
	s, err := l.stockRepo.GetForUpdate(itemID, siteID)
	if err != nil {
		return decimal.Zero, false, err
	}
	if s == nil {
		// Sin fila no hay nada que reservar; reportar disponible 0.
		return decimal.Zero, false, nil
	}
	available = s.Available()
	if available.LessThan(qty) {
		return available, false, nil
	}
	s.Reserved = s.Reserved.Add(qty)
	s.UpdatedAt = time.Now()
	if err := l.stockRepo.Upsert(s); err != nil {
		return available, false, err
	}
	return available, true, l.record(itemID, siteID, entity.MovementTypeReserva, qty, "")
}

// Release devuelve qty unidades reservadas al disponible. Si qty excede lo
// reservado, reserved queda en 0 en lugar de volverse negativo: es una red de
// seguridad contra liberaciones dobles y se registra como warning, nunca como
// éxito silencioso.
func (l *Ledger) Release(itemID, siteID int64, qty decimal.Decimal) error {
	if !qty.IsPositive() {
		return domain.ErrInvalidInput
	}
	s, err := l.stockRepo.GetForUpdate(itemID, siteID)
	if err != nil {
		return err
	}
	if s == nil {
		l.log.Warn().
			Int64("item_id", itemID).
			Int64("site_id", siteID).
			Str("qty", qty.String()).
			Msg("release sobre fila de stock inexistente, se omite")
		return nil
	}
	newReserved := s.Reserved.Sub(qty)
	if newReserved.IsNegative() {
		l.log.Warn().
			Int64("item_id", itemID).
			Int64("site_id", siteID).
			Str("reserved", s.Reserved.String()).
			Str("qty", qty.String()).
			Msg("release excede lo reservado, se trunca en 0")
		newReserved = decimal.Zero
	}
	s.Reserved = newReserved
	s.UpdatedAt = time.Now()
	if err := l.stockRepo.Upsert(s); err != nil {
		return err
	}
	return l.record(itemID, siteID, entity.MovementTypeLiberacion, qty.Neg(), "")
}

// Consume descuenta qty de on_hand y de reserved a la vez (materializa una
// reserva). Si cualquiera quedara negativo es un bug o datos corruptos, no un
// error de usuario: se devuelve InconsistentStockError y la transacción
// ambiente debe abortar sin coerción silenciosa.
func (l *Ledger) Consume(itemID, siteID int64, qty decimal.Decimal) error {
	if !qty.IsPositive() {
		return domain.ErrInvalidInput
	}
	s, err := l.stockRepo.GetForUpdate(itemID, siteID)
	if err != nil {
		return err
	}
	if s == nil {
		return &domain.InconsistentStockError{
			ItemID: itemID, SiteID: siteID,
			OnHand: decimal.Zero, Reserved: decimal.Zero, Op: "consume",
		}
	}
	newOnHand := s.OnHand.Sub(qty)
	newReserved := s.Reserved.Sub(qty)
	if newOnHand.IsNegative() || newReserved.IsNegative() {
		return &domain.InconsistentStockError{
			ItemID: itemID, SiteID: siteID,
			OnHand: s.OnHand, Reserved: s.Reserved, Op: "consume",
		}
	}
	s.OnHand = newOnHand
	s.Reserved = newReserved
	s.UpdatedAt = time.Now()
	if err := l.stockRepo.Upsert(s); err != nil {
		return err
	}
	return l.record(itemID, siteID, entity.MovementTypeConsumo, qty.Neg(), "")
}

// getOrCreateForUpdate bloquea la fila, creándola en cero si no existe. La
// creación pasa por EnsureRow + re-lectura con bloqueo: dos primeras
// escrituras concurrentes sobre el mismo (item, sitio) se serializan en el
// FOR UPDATE en vez de calcular ambas un absoluto desde cero.
func (l *Ledger) getOrCreateForUpdate(itemID, siteID int64) (*entity.Stock, error) {
	s, err := l.stockRepo.GetForUpdate(itemID, siteID)
	if err != nil {
		return nil, err
	}
	if s != nil {
		return s, nil
	}
	if err := l.stockRepo.EnsureRow(itemID, siteID); err != nil {
		return nil, err
	}
	s, err = l.stockRepo.GetForUpdate(itemID, siteID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, fmt.Errorf("fila de stock item=%d site=%d no visible tras crearla", itemID, siteID)
	}
	return s, nil
}

// Produce suma qty al on_hand del item producido; crea la fila con reserved=0
// si no existe (creación perezosa).
func (l *Ledger) Produce(itemID, siteID int64, qty decimal.Decimal) error {
	if !qty.IsPositive() {
		return domain.ErrInvalidInput
	}
	s, err := l.getOrCreateForUpdate(itemID, siteID)
	if err != nil {
		return err
	}
	s.OnHand = s.OnHand.Add(qty)
	s.UpdatedAt = time.Now()
	if err := l.stockRepo.Upsert(s); err != nil {
		return err
	}
	return l.record(itemID, siteID, entity.MovementTypeProduccion, qty, "")
}

// RegisterEntry ajuste manual que suma a on_hand (ENTRADA o AJUSTE); crea la
// fila si no existe.
func (l *Ledger) RegisterEntry(itemID, siteID int64, qty decimal.Decimal, movType, note string) error {
	if !qty.IsPositive() {
		return domain.ErrInvalidInput
	}
	s, err := l.getOrCreateForUpdate(itemID, siteID)
	if err != nil {
		return err
	}
	s.OnHand = s.OnHand.Add(qty)
	s.UpdatedAt = time.Now()
	if err := l.stockRepo.Upsert(s); err != nil {
		return err
	}
	return l.record(itemID, siteID, movType, qty, note)
}

// RegisterExit ajuste manual que descuenta de on_hand (SALIDA). Falla si la
// fila no existe o si la salida dejaría on_hand por debajo de lo reservado:
// el invariante 0 <= reserved <= on_hand debe sostenerse tras cada commit.
func (l *Ledger) RegisterExit(itemID, siteID int64, qty decimal.Decimal, note string) error {
	if !qty.IsPositive() {
		return domain.ErrInvalidInput
	}
	s, err := l.stockRepo.GetForUpdate(itemID, siteID)
	if err != nil {
		return err
	}
	if s == nil {
		return domain.ErrInsufficientStock
	}
	newOnHand := s.OnHand.Sub(qty)
	if newOnHand.LessThan(s.Reserved) {
		return domain.ErrInsufficientStock
	}
	s.OnHand = newOnHand
	s.UpdatedAt = time.Now()
	if err := l.stockRepo.Upsert(s); err != nil {
		return err
	}
	return l.record(itemID, siteID, entity.MovementTypeSalida, qty.Neg(), note)
}

func (l *Ledger) record(itemID, siteID int64, movType string, qty decimal.Decimal, note string) error {
	return l.movRepo.Create(&entity.StockMovement{
		TransactionID: l.txID,
		ItemID:        itemID,
		SiteID:        siteID,
		Type:          movType,
		Quantity:      qty,
		Notes:         note,
		CreatedBy:     l.actorID,
		CreatedAt:     time.Now(),
	})
}
