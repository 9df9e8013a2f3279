package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/ensamblados-api/internal/domain/entity"
	"github.com/tu-usuario/ensamblados-api/internal/domain/repository"
)

var _ repository.AssemblyRepository = (*AssemblyRepo)(nil)

// AssemblyRepo implementación de AssemblyRepository sobre PostgreSQL (usable con pool o tx).
type AssemblyRepo struct {
	q Querier
}

// NewAssemblyRepository construye el adaptador de órdenes de ensamblado. Pasar pool o tx (Querier).
func NewAssemblyRepository(q Querier) *AssemblyRepo {
	return &AssemblyRepo{q: q}
}

const assemblyColumns = `id, template_id, site_id, quantity, status, created_by, assigned_to,
	backlog_at, todo_at, in_progress_at, to_verify_at, done_at, completed_at,
	completed_by, verified_by, notes, created_at, updated_at`

// Create inserta la instancia y asigna su ID.
func (r *AssemblyRepo) Create(a *entity.AssemblyInstance) error {
	query := `
		INSERT INTO assembly_instances
			(template_id, site_id, quantity, status, created_by, assigned_to,
			 backlog_at, todo_at, in_progress_at, to_verify_at, done_at, completed_at,
			 completed_by, verified_by, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		a.TemplateID, a.SiteID, a.Quantity, a.Status, a.CreatedBy, a.AssignedTo,
		a.BacklogAt, a.TodoAt, a.InProgressAt, a.ToVerifyAt, a.DoneAt, a.CompletedAt,
		a.CompletedBy, a.VerifiedBy, a.Notes, a.CreatedAt, a.UpdatedAt,
	).Scan(&a.ID)
	if err != nil {
		return fmt.Errorf("insert assembly: %w", err)
	}
	return nil
}

// GetByID obtiene una instancia. Devuelve (nil, nil) si no existe.
func (r *AssemblyRepo) GetByID(id int64) (*entity.AssemblyInstance, error) {
	query := `SELECT ` + assemblyColumns + ` FROM assembly_instances WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetForUpdate obtiene la instancia bloqueando su fila (SELECT FOR UPDATE)
// para serializar transiciones de estado concurrentes.
func (r *AssemblyRepo) GetForUpdate(id int64) (*entity.AssemblyInstance, error) {
	query := `SELECT ` + assemblyColumns + ` FROM assembly_instances WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// Update persiste estado, responsables, timestamps y notas.
func (r *AssemblyRepo) Update(a *entity.AssemblyInstance) error {
	query := `
		UPDATE assembly_instances SET
			status = $2, assigned_to = $3,
			backlog_at = $4, todo_at = $5, in_progress_at = $6, to_verify_at = $7,
			done_at = $8, completed_at = $9, completed_by = $10, verified_by = $11,
			notes = $12, updated_at = $13
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		a.ID, a.Status, a.AssignedTo,
		a.BacklogAt, a.TodoAt, a.InProgressAt, a.ToVerifyAt,
		a.DoneAt, a.CompletedAt, a.CompletedBy, a.VerifiedBy,
		a.Notes, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update assembly: %w", err)
	}
	return nil
}

// List instancias con datos de plantilla, sitio y creador; filtros opcionales.
// Orden: más recientes primero (vista de tablero).
func (r *AssemblyRepo) List(status *entity.Status, siteID *int64) ([]*entity.AssemblyDetail, error) {
	query := `
		SELECT a.id, a.template_id, a.site_id, a.quantity, a.status, a.created_by, a.assigned_to,
		       a.backlog_at, a.todo_at, a.in_progress_at, a.to_verify_at, a.done_at, a.completed_at,
		       a.completed_by, a.verified_by, a.notes, a.created_at, a.updated_at,
		       i.sku, i.name, s.name, u.first_name || ' ' || u.last_name
		FROM assembly_instances a
		JOIN items i ON i.id = a.template_id
		JOIN sites s ON s.id = a.site_id
		JOIN users u ON u.id = a.created_by
		WHERE ($1::text IS NULL OR a.status = $1)
		  AND ($2::bigint IS NULL OR a.site_id = $2)
		ORDER BY a.created_at DESC`
	rows, err := r.q.Query(context.Background(), query, status, siteID)
	if err != nil {
		return nil, fmt.Errorf("list assemblies: %w", err)
	}
	defer rows.Close()

	var out []*entity.AssemblyDetail
	for rows.Next() {
		d, err := scanAssemblyDetail(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// GetDetail una instancia con sus joins. Devuelve (nil, nil) si no existe.
func (r *AssemblyRepo) GetDetail(id int64) (*entity.AssemblyDetail, error) {
	query := `
		SELECT a.id, a.template_id, a.site_id, a.quantity, a.status, a.created_by, a.assigned_to,
		       a.backlog_at, a.todo_at, a.in_progress_at, a.to_verify_at, a.done_at, a.completed_at,
		       a.completed_by, a.verified_by, a.notes, a.created_at, a.updated_at,
		       i.sku, i.name, s.name, u.first_name || ' ' || u.last_name
		FROM assembly_instances a
		JOIN items i ON i.id = a.template_id
		JOIN sites s ON s.id = a.site_id
		JOIN users u ON u.id = a.created_by
		WHERE a.id = $1`
	d, err := scanAssemblyDetail(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (r *AssemblyRepo) scanOne(row pgx.Row) (*entity.AssemblyInstance, error) {
	var a entity.AssemblyInstance
	err := row.Scan(&a.ID, &a.TemplateID, &a.SiteID, &a.Quantity, &a.Status, &a.CreatedBy, &a.AssignedTo,
		&a.BacklogAt, &a.TodoAt, &a.InProgressAt, &a.ToVerifyAt, &a.DoneAt, &a.CompletedAt,
		&a.CompletedBy, &a.VerifiedBy, &a.Notes, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get assembly: %w", err)
	}
	return &a, nil
}

func scanAssemblyDetail(row pgx.Row) (*entity.AssemblyDetail, error) {
	var d entity.AssemblyDetail
	err := row.Scan(&d.ID, &d.TemplateID, &d.SiteID, &d.Quantity, &d.Status, &d.CreatedBy, &d.AssignedTo,
		&d.BacklogAt, &d.TodoAt, &d.InProgressAt, &d.ToVerifyAt, &d.DoneAt, &d.CompletedAt,
		&d.CompletedBy, &d.VerifiedBy, &d.Notes, &d.CreatedAt, &d.UpdatedAt,
		&d.TemplateSKU, &d.TemplateName, &d.SiteName, &d.CreatorName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan assembly detail: %w", err)
	}
	return &d, nil
}
