package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stockmaster/stockmaster-api/internal/domain"
	"github.com/stockmaster/stockmaster-api/internal/domain/entity"
	"github.com/stockmaster/stockmaster-api/internal/domain/repository"
)

var _ repository.OperationRepository = (*OperationRepo)(nil)

// OperationRepo implementación sobre PostgreSQL (usable con pool o tx).
type OperationRepo struct {
	q Querier
}

// NewOperationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOperationRepository(q Querier) *OperationRepo {
	return &OperationRepo{q: q}
}

const operationColumns = `id, type, status, reference, warehouse_from_id, location_from_id,
	warehouse_to_id, location_to_id, contact_name, schedule_date, notes,
	created_by_user_id, responsible_id, created_at, updated_at`

// Create persiste la operación junto con sus líneas.
func (r *OperationRepo) Create(ctx context.Context, op *entity.Operation) error {
	query := `
		INSERT INTO operations (` + operationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(ctx, query,
		op.ID, op.Type, op.Status, op.Reference,
		nullable(op.WarehouseFromID), nullable(op.LocationFromID),
		nullable(op.WarehouseToID), nullable(op.LocationToID),
		op.ContactName, op.ScheduleDate, op.Notes,
		nullable(op.CreatedByUserID), nullable(op.ResponsibleID),
		op.CreatedAt, op.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: referencia %s", domain.ErrDuplicate, op.Reference)
		}
		return fmt.Errorf("create operation: %w", err)
	}
	return r.insertItems(ctx, op.ID, op.Items)
}

// GetByID devuelve la operación con sus líneas cargadas; nil si no existe.
func (r *OperationRepo) GetByID(ctx context.Context, id string) (*entity.Operation, error) {
	query := `SELECT ` + operationColumns + ` FROM operations WHERE id = $1`
	op, err := r.scanOperation(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get operation: %w", err)
	}
	items, err := r.loadItems(ctx, op.ID)
	if err != nil {
		return nil, err
	}
	op.Items = items
	return op, nil
}

// List lista operaciones filtradas, más recientes primero.
func (r *OperationRepo) List(ctx context.Context, f repository.OperationFilters, limit, offset int) ([]*entity.Operation, error) {
	query := `SELECT ` + operationColumns + ` FROM operations`
	where, args := operationFilterClauses(f)
	query += where
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list operations: %w", err)
	}
	defer rows.Close()

	var ops []*entity.Operation
	for rows.Next() {
		op, err := r.scanOperation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan operation: %w", err)
		}
		ops = append(ops, op)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list operations: %w", err)
	}
	for _, op := range ops {
		items, err := r.loadItems(ctx, op.ID)
		if err != nil {
			return nil, err
		}
		op.Items = items
	}
	return ops, nil
}

// Count cuenta operaciones que cumplen los filtros.
func (r *OperationRepo) Count(ctx context.Context, f repository.OperationFilters) (int, error) {
	query := `SELECT count(*) FROM operations`
	where, args := operationFilterClauses(f)
	query += where
	var total int
	if err := r.q.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count operations: %w", err)
	}
	return total, nil
}

// UpdateFields persiste contacto, agenda, notas y responsable.
func (r *OperationRepo) UpdateFields(ctx context.Context, op *entity.Operation) error {
	query := `
		UPDATE operations
		SET contact_name = $2, schedule_date = $3, notes = $4, responsible_id = $5, updated_at = $6
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		op.ID, op.ContactName, op.ScheduleDate, op.Notes, nullable(op.ResponsibleID), op.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update operation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: operación %s", domain.ErrNotFound, op.ID)
	}
	return nil
}

// ReplaceItems borra las líneas actuales y crea las nuevas.
func (r *OperationRepo) ReplaceItems(ctx context.Context, operationID string, items []entity.OperationItem) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM operation_items WHERE operation_id = $1`, operationID); err != nil {
		return fmt.Errorf("delete operation items: %w", err)
	}
	return r.insertItems(ctx, operationID, items)
}

// UpdateStatus aplica el cambio de estado solo si el estado observado sigue
// siendo from. La condición en el WHERE es el control de concurrencia: dos
// commits simultáneos de la misma operación, solo uno ve RowsAffected == 1.
func (r *OperationRepo) UpdateStatus(ctx context.Context, id string, from, to entity.OperationStatus) (bool, error) {
	query := `UPDATE operations SET status = $3, updated_at = now() WHERE id = $1 AND status = $2`
	tag, err := r.q.Exec(ctx, query, id, from, to)
	if err != nil {
		return false, fmt.Errorf("update operation status: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *OperationRepo) insertItems(ctx context.Context, operationID string, items []entity.OperationItem) error {
	for i := range items {
		item := &items[i]
		if item.ID == "" {
			item.ID = uuid.New().String()
		}
		item.OperationID = operationID
		_, err := r.q.Exec(ctx, `
			INSERT INTO operation_items (id, operation_id, product_id, quantity)
			VALUES ($1, $2, $3, $4)`,
			item.ID, item.OperationID, item.ProductID, item.Quantity,
		)
		if err != nil {
			return fmt.Errorf("create operation item: %w", err)
		}
	}
	return nil
}

func (r *OperationRepo) loadItems(ctx context.Context, operationID string) ([]entity.OperationItem, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, operation_id, product_id, quantity
		FROM operation_items WHERE operation_id = $1
		ORDER BY id`, operationID)
	if err != nil {
		return nil, fmt.Errorf("load operation items: %w", err)
	}
	defer rows.Close()

	var items []entity.OperationItem
	for rows.Next() {
		var item entity.OperationItem
		if err := rows.Scan(&item.ID, &item.OperationID, &item.ProductID, &item.Quantity); err != nil {
			return nil, fmt.Errorf("scan operation item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *OperationRepo) scanOperation(row pgx.Row) (*entity.Operation, error) {
	var (
		op            entity.Operation
		warehouseFrom *string
		locationFrom  *string
		warehouseTo   *string
		locationTo    *string
		createdBy     *string
		responsible   *string
	)
	err := row.Scan(
		&op.ID, &op.Type, &op.Status, &op.Reference,
		&warehouseFrom, &locationFrom, &warehouseTo, &locationTo,
		&op.ContactName, &op.ScheduleDate, &op.Notes,
		&createdBy, &responsible, &op.CreatedAt, &op.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	op.WarehouseFromID = deref(warehouseFrom)
	op.LocationFromID = deref(locationFrom)
	op.WarehouseToID = deref(warehouseTo)
	op.LocationToID = deref(locationTo)
	op.CreatedByUserID = deref(createdBy)
	op.ResponsibleID = deref(responsible)
	return &op, nil
}

func operationFilterClauses(f repository.OperationFilters) (string, []any) {
	var (
		clauses []string
		args    []any
	)
	add := func(clause string, value any) {
		args = append(args, value)
		clauses = append(clauses, fmt.Sprintf(clause, len(args)))
	}
	if f.Type != "" {
		add("type = $%d", f.Type)
	}
	if f.Status != "" {
		add("status = $%d", f.Status)
	}
	if f.WarehouseID != "" {
		args = append(args, f.WarehouseID)
		clauses = append(clauses, fmt.Sprintf("(warehouse_from_id = $%d OR warehouse_to_id = $%d)", len(args), len(args)))
	}
	if f.LocationID != "" {
		args = append(args, f.LocationID)
		clauses = append(clauses, fmt.Sprintf("(location_from_id = $%d OR location_to_id = $%d)", len(args), len(args)))
	}
	if f.Reference != "" {
		add("reference ILIKE '%%' || $%d || '%%'", f.Reference)
	}
	if f.ContactName != "" {
		add("contact_name ILIKE '%%' || $%d || '%%'", f.ContactName)
	}
	if f.DateFrom != nil {
		add("schedule_date >= $%d", *f.DateFrom)
	}
	if f.DateTo != nil {
		add("schedule_date <= $%d", *f.DateTo)
	}
	if len(clauses) == 0 {
		return "", nil
	}
	where := " WHERE " + clauses[0]
	for _, c := range clauses[1:] {
		where += " AND " + c
	}
	return where, args
}

// nullable convierte "" en NULL para columnas con FK opcional.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
