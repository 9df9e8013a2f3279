package stock

import (
	"context"

	"github.com/tu-usuario/ensamblados-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Los bloqueos de fila (SELECT FOR UPDATE)
// adquiridos dentro de fn se mantienen hasta el Commit o Rollback, que
// realiza el propio runner: si fn devuelve error no se persiste nada.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		itemRepo repository.ItemRepository,
		bomRepo repository.BomRepository,
		stockRepo repository.StockRepository,
		movRepo repository.StockMovementRepository,
		asmRepo repository.AssemblyRepository,
	) error) error
}
