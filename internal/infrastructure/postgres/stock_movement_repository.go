package postgres

import (
	"context"
	"fmt"

	"github.com/stockmaster/stockmaster-api/internal/domain/entity"
	"github.com/stockmaster/stockmaster-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementación del ledger sobre PostgreSQL.
// Solo inserta y lee: la tabla stock_movements no conoce UPDATE ni DELETE.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// CreateBatch inserta el conjunto de movimientos de un commit.
func (r *StockMovementRepo) CreateBatch(ctx context.Context, movements []*entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (id, product_id, location_from_id, location_to_id,
			quantity_delta, movement_type, operation_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	for _, m := range movements {
		_, err := r.q.Exec(ctx, query,
			m.ID, m.ProductID, nullable(m.LocationFromID), nullable(m.LocationToID),
			m.QuantityDelta, m.MovementType, m.OperationID, m.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("create stock movement: %w", err)
		}
	}
	return nil
}

// ListByProduct devuelve los movimientos de un producto, más antiguos primero.
func (r *StockMovementRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.StockMovement, error) {
	query := `
		SELECT id, product_id, location_from_id, location_to_id,
			quantity_delta, movement_type, operation_id, created_at
		FROM stock_movements
		WHERE product_id = $1
		ORDER BY created_at, id`
	rows, err := r.q.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()

	var movements []*entity.StockMovement
	for rows.Next() {
		var (
			m    entity.StockMovement
			from *string
			to   *string
		)
		err := rows.Scan(&m.ID, &m.ProductID, &from, &to,
			&m.QuantityDelta, &m.MovementType, &m.OperationID, &m.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		m.LocationFromID = deref(from)
		m.LocationToID = deref(to)
		movements = append(movements, &m)
	}
	return movements, rows.Err()
}

// ProductLedger devuelve las filas del libro de un producto con los datos de
// la operación dueña, más antiguas primero. Los nombres de ubicación se
// resuelven con LEFT JOIN: NULL significa origen o destino externo.
func (r *StockMovementRepo) ProductLedger(ctx context.Context, productID string) ([]repository.ProductLedgerRow, error) {
	query := `
		SELECT m.id, m.created_at, o.reference, m.movement_type, o.status,
			COALESCE(m.location_from_id::text, ''), COALESCE(lf.name, ''),
			COALESCE(m.location_to_id::text, ''), COALESCE(lt.name, ''),
			m.quantity_delta
		FROM stock_movements m
		JOIN operations o ON o.id = m.operation_id
		LEFT JOIN locations lf ON lf.id = m.location_from_id
		LEFT JOIN locations lt ON lt.id = m.location_to_id
		WHERE m.product_id = $1
		ORDER BY m.created_at, m.id`
	rows, err := r.q.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("product ledger: %w", err)
	}
	defer rows.Close()

	var ledger []repository.ProductLedgerRow
	for rows.Next() {
		var row repository.ProductLedgerRow
		err := rows.Scan(&row.MovementID, &row.CreatedAt, &row.Reference,
			&row.MovementType, &row.OperationStatus,
			&row.FromLocationID, &row.FromLocationName,
			&row.ToLocationID, &row.ToLocationName,
			&row.QuantityDelta)
		if err != nil {
			return nil, fmt.Errorf("scan ledger row: %w", err)
		}
		ledger = append(ledger, row)
	}
	return ledger, rows.Err()
}

const historyFrom = `
	FROM stock_movements m
	JOIN operations o ON o.id = m.operation_id
	JOIN products p ON p.id = m.product_id
	LEFT JOIN locations lf ON lf.id = m.location_from_id
	LEFT JOIN warehouses wf ON wf.id = lf.warehouse_id
	LEFT JOIN locations lt ON lt.id = m.location_to_id
	LEFT JOIN warehouses wt ON wt.id = lt.warehouse_id`

// History devuelve el historial aplanado filtrado, más recientes primero.
func (r *StockMovementRepo) History(ctx context.Context, f repository.HistoryFilters, limit, offset int) ([]repository.MovementHistoryRow, error) {
	query := `
		SELECT m.id, o.reference, m.created_at, o.schedule_date, m.movement_type, o.status,
			m.product_id, p.sku, p.name, p.unit_of_measure,
			COALESCE(m.location_from_id::text, ''), COALESCE(lf.name, ''), COALESCE(wf.name, ''),
			COALESCE(m.location_to_id::text, ''), COALESCE(lt.name, ''), COALESCE(wt.name, ''),
			m.quantity_delta, o.contact_name` + historyFrom
	where, args := historyFilterClauses(f)
	query += where
	query += fmt.Sprintf(" ORDER BY m.created_at DESC, m.id DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("movement history: %w", err)
	}
	defer rows.Close()

	var history []repository.MovementHistoryRow
	for rows.Next() {
		var row repository.MovementHistoryRow
		err := rows.Scan(&row.MovementID, &row.Reference, &row.Date, &row.ScheduleDate,
			&row.MovementType, &row.OperationStatus,
			&row.ProductID, &row.ProductSKU, &row.ProductName, &row.UnitOfMeasure,
			&row.FromLocationID, &row.FromLocationName, &row.FromWarehouseName,
			&row.ToLocationID, &row.ToLocationName, &row.ToWarehouseName,
			&row.Quantity, &row.ContactName)
		if err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		history = append(history, row)
	}
	return history, rows.Err()
}

// CountHistory cuenta las filas del historial que cumplen los filtros.
func (r *StockMovementRepo) CountHistory(ctx context.Context, f repository.HistoryFilters) (int, error) {
	query := `SELECT count(*)` + historyFrom
	where, args := historyFilterClauses(f)
	query += where
	var total int
	if err := r.q.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count history: %w", err)
	}
	return total, nil
}

func historyFilterClauses(f repository.HistoryFilters) (string, []any) {
	var (
		clauses []string
		args    []any
	)
	add := func(clause string, value any) {
		args = append(args, value)
		clauses = append(clauses, fmt.Sprintf(clause, len(args)))
	}
	if f.MovementType != "" {
		add("m.movement_type = $%d", f.MovementType)
	}
	if f.Status != "" {
		add("o.status = $%d", f.Status)
	}
	if f.Reference != "" {
		add("o.reference ILIKE '%%' || $%d || '%%'", f.Reference)
	}
	if f.WarehouseID != "" {
		args = append(args, f.WarehouseID)
		clauses = append(clauses, fmt.Sprintf("(lf.warehouse_id = $%d OR lt.warehouse_id = $%d)", len(args), len(args)))
	}
	if f.LocationID != "" {
		args = append(args, f.LocationID)
		clauses = append(clauses, fmt.Sprintf("(m.location_from_id = $%d OR m.location_to_id = $%d)", len(args), len(args)))
	}
	if f.ProductID != "" {
		add("m.product_id = $%d", f.ProductID)
	}
	if f.DateFrom != nil {
		add("m.created_at >= $%d", *f.DateFrom)
	}
	if f.DateTo != nil {
		add("m.created_at <= $%d", *f.DateTo)
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
