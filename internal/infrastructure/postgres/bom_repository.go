package postgres

import (
	"context"
	"fmt"

	"github.com/tu-usuario/ensamblados-api/internal/domain"
	"github.com/tu-usuario/ensamblados-api/internal/domain/entity"
	"github.com/tu-usuario/ensamblados-api/internal/domain/repository"
)

var _ repository.BomRepository = (*BomRepo)(nil)

// BomRepo implementación de BomRepository sobre PostgreSQL (usable con pool o tx).
type BomRepo struct {
	q Querier
}

// NewBomRepository construye el adaptador de listas de materiales. Pasar pool o tx (Querier).
func NewBomRepository(q Querier) *BomRepo {
	return &BomRepo{q: q}
}

// ListByParent líneas del BOM con datos del item hijo, ordenadas por
// child_item_id. El ORDER BY fija el orden de adquisición de bloqueos del
// motor de ensamblados.
func (r *BomRepo) ListByParent(parentID int64) ([]*entity.BomLine, error) {
	query := `
		SELECT b.id, b.parent_item_id, b.child_item_id, b.quantity,
		       i.sku, i.name, i.type, i.uom_id
		FROM item_bom b
		JOIN items i ON i.id = b.child_item_id
		WHERE b.parent_item_id = $1
		ORDER BY b.child_item_id`
	rows, err := r.q.Query(context.Background(), query, parentID)
	if err != nil {
		return nil, fmt.Errorf("list bom: %w", err)
	}
	defer rows.Close()

	var out []*entity.BomLine
	for rows.Next() {
		var l entity.BomLine
		if err := rows.Scan(&l.ID, &l.ParentItemID, &l.ChildItemID, &l.Quantity,
			&l.ChildSKU, &l.ChildName, &l.ChildType, &l.ChildUomID); err != nil {
			return nil, fmt.Errorf("scan bom line: %w", err)
		}
		out = append(out, &l)
	}
	return out, rows.Err()
}

// ReplaceForParent reemplaza el BOM completo: delete de las líneas viejas e
// insert de las nuevas. Debe llamarse dentro de una transacción del caller
// para que el reemplazo sea atómico.
func (r *BomRepo) ReplaceForParent(parentID int64, lines []*entity.BomLine) error {
	ctx := context.Background()
	if _, err := r.q.Exec(ctx, `DELETE FROM item_bom WHERE parent_item_id = $1`, parentID); err != nil {
		return fmt.Errorf("delete bom: %w", err)
	}
	for _, l := range lines {
		_, err := r.q.Exec(ctx, `
			INSERT INTO item_bom (parent_item_id, child_item_id, quantity)
			VALUES ($1, $2, $3)`, parentID, l.ChildItemID, l.Quantity)
		if err != nil {
			if isDuplicateKey(err) {
				return domain.ErrDuplicate
			}
			return fmt.Errorf("insert bom line: %w", err)
		}
	}
	return nil
}
