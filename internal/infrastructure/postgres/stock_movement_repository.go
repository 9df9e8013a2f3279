package postgres

import (
	"context"
	"fmt"

	"github.com/tu-usuario/ensamblados-api/internal/domain/entity"
	"github.com/tu-usuario/ensamblados-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementación de StockMovementRepository sobre PostgreSQL.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create inserta un movimiento en la bitácora.
func (r *StockMovementRepo) Create(mov *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (transaction_id, item_id, site_id, type, quantity, notes, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		mov.TransactionID, mov.ItemID, mov.SiteID, mov.Type, mov.Quantity,
		mov.Notes, mov.CreatedBy, mov.CreatedAt,
	).Scan(&mov.ID)
	if err != nil {
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

// List movimientos más recientes primero; filtros opcionales.
func (r *StockMovementRepo) List(itemID, siteID *int64, limit, offset int) ([]*entity.StockMovement, error) {
	query := `
		SELECT id, transaction_id, item_id, site_id, type, quantity, notes, created_by, created_at
		FROM stock_movements
		WHERE ($1::bigint IS NULL OR item_id = $1)
		  AND ($2::bigint IS NULL OR site_id = $2)
		ORDER BY created_at DESC, id DESC
		LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, itemID, siteID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()

	var out []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		if err := rows.Scan(&m.ID, &m.TransactionID, &m.ItemID, &m.SiteID, &m.Type,
			&m.Quantity, &m.Notes, &m.CreatedBy, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}
