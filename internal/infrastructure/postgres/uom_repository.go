package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/ensamblados-api/internal/domain/entity"
	"github.com/tu-usuario/ensamblados-api/internal/domain/repository"
)

var _ repository.UomRepository = (*UomRepo)(nil)

// UomRepo unidades de medida sobre PostgreSQL, solo lectura.
type UomRepo struct {
	q Querier
}

// NewUomRepository construye el adaptador de unidades. Pasar pool o tx (Querier).
func NewUomRepository(q Querier) *UomRepo {
	return &UomRepo{q: q}
}

// GetByID obtiene una unidad. Devuelve (nil, nil) si no existe.
func (r *UomRepo) GetByID(id int64) (*entity.Uom, error) {
	query := `SELECT id, name, symbol FROM uoms WHERE id = $1`
	var u entity.Uom
	err := r.q.QueryRow(context.Background(), query, id).Scan(&u.ID, &u.Name, &u.Symbol)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get uom: %w", err)
	}
	return &u, nil
}

// List todas las unidades.
func (r *UomRepo) List() ([]*entity.Uom, error) {
	query := `SELECT id, name, symbol FROM uoms ORDER BY name`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list uoms: %w", err)
	}
	defer rows.Close()

	var out []*entity.Uom
	for rows.Next() {
		var u entity.Uom
		if err := rows.Scan(&u.ID, &u.Name, &u.Symbol); err != nil {
			return nil, fmt.Errorf("scan uom: %w", err)
		}
		out = append(out, &u)
	}
	return out, rows.Err()
}
