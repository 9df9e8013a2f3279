package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tu-usuario/ensamblados-api/internal/application/stock"
	"github.com/tu-usuario/ensamblados-api/internal/domain/repository"
)

var _ stock.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL. Los
// bloqueos SELECT FOR UPDATE adquiridos por los repos atados a la tx viven
// hasta el Commit/Rollback que hace el propio runner.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace
// Commit o Rollback. Cualquier error de fn aborta la transacción completa:
// nada de lo mutado dentro del callback persiste.
func (r *TxRunner) Run(ctx context.Context, fn func(
	itemRepo repository.ItemRepository,
	bomRepo repository.BomRepository,
	stockRepo repository.StockRepository,
	movRepo repository.StockMovementRepository,
	asmRepo repository.AssemblyRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	itemRepo := NewItemRepository(tx)
	bomRepo := NewBomRepository(tx)
	stockRepo := NewStockRepository(tx)
	movRepo := NewStockMovementRepository(tx)
	asmRepo := NewAssemblyRepository(tx)

	if err := fn(itemRepo, bomRepo, stockRepo, movRepo, asmRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
