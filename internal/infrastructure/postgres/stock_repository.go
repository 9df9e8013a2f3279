package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/ensamblados-api/internal/domain/entity"
	"github.com/tu-usuario/ensamblados-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Get obtiene el stock de un (item, sitio). Devuelve (nil, nil) si no hay fila.
func (r *StockRepo) Get(itemID, siteID int64) (*entity.Stock, error) {
	query := `
		SELECT item_id, site_id, on_hand, reserved, updated_at
		FROM stock WHERE item_id = $1 AND site_id = $2`
	return r.scanOne(r.q.QueryRow(context.Background(), query, itemID, siteID))
}

// GetForUpdate obtiene el stock y bloquea la fila (SELECT FOR UPDATE) hasta el
// commit/rollback de la transacción ambiente. Devuelve (nil, nil) si no hay fila.
func (r *StockRepo) GetForUpdate(itemID, siteID int64) (*entity.Stock, error) {
	query := `
		SELECT item_id, site_id, on_hand, reserved, updated_at
		FROM stock WHERE item_id = $1 AND site_id = $2
		FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, itemID, siteID))
}

// EnsureRow crea la fila en cero si no existe. Dos escritores concurrentes
// pueden intentar el INSERT a la vez; DO NOTHING deja ganar al primero y el
// segundo serializa en el GetForUpdate posterior en vez de pisar cantidades
// ya confirmadas.
func (r *StockRepo) EnsureRow(itemID, siteID int64) error {
	query := `
		INSERT INTO stock (item_id, site_id, on_hand, reserved, updated_at)
		VALUES ($1, $2, 0, 0, now())
		ON CONFLICT (item_id, site_id) DO NOTHING`
	if _, err := r.q.Exec(context.Background(), query, itemID, siteID); err != nil {
		return fmt.Errorf("ensure stock: %w", err)
	}
	return nil
}

// Upsert inserta o actualiza las cantidades del par (item, sitio).
func (r *StockRepo) Upsert(stock *entity.Stock) error {
	query := `
		INSERT INTO stock (item_id, site_id, on_hand, reserved, updated_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (item_id, site_id)
		DO UPDATE SET on_hand = EXCLUDED.on_hand, reserved = EXCLUDED.reserved, updated_at = now()`
	_, err := r.q.Exec(context.Background(), query,
		stock.ItemID, stock.SiteID, stock.OnHand, stock.Reserved)
	if err != nil {
		return fmt.Errorf("upsert stock: %w", err)
	}
	return nil
}

// ListDetailed listado de stock con datos de item y sitio; filtros opcionales.
func (r *StockRepo) ListDetailed(itemID, siteID *int64) ([]*entity.StockDetail, error) {
	query := `
		SELECT s.item_id, s.site_id, s.on_hand, s.reserved, s.updated_at,
		       i.sku, i.name, i.type, u.symbol, st.name
		FROM stock s
		JOIN items i ON i.id = s.item_id
		JOIN uoms u ON u.id = i.uom_id
		JOIN sites st ON st.id = s.site_id
		WHERE ($1::bigint IS NULL OR s.item_id = $1)
		  AND ($2::bigint IS NULL OR s.site_id = $2)
		ORDER BY s.item_id, s.site_id`
	rows, err := r.q.Query(context.Background(), query, itemID, siteID)
	if err != nil {
		return nil, fmt.Errorf("list stock: %w", err)
	}
	defer rows.Close()

	var out []*entity.StockDetail
	for rows.Next() {
		var d entity.StockDetail
		if err := rows.Scan(&d.ItemID, &d.SiteID, &d.OnHand, &d.Reserved, &d.UpdatedAt,
			&d.ItemSKU, &d.ItemName, &d.ItemType, &d.UomSymbol, &d.SiteName); err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		out = append(out, &d)
	}
	return out, rows.Err()
}

func (r *StockRepo) scanOne(row pgx.Row) (*entity.Stock, error) {
	var s entity.Stock
	err := row.Scan(&s.ItemID, &s.SiteID, &s.OnHand, &s.Reserved, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &s, nil
}
