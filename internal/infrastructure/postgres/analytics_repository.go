package postgres

import (
	"context"
	"fmt"

	"github.com/stockmaster/stockmaster-api/internal/domain/entity"
	"github.com/stockmaster/stockmaster-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para el dashboard.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// CountStockedProducts cuenta los productos distintos que aparecen en el ledger.
func (r *AnalyticsRepo) CountStockedProducts(ctx context.Context) (int, error) {
	var total int
	err := r.q.QueryRow(ctx, `SELECT count(DISTINCT product_id) FROM stock_movements`).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count stocked products: %w", err)
	}
	return total, nil
}

// CountPendingOperations cuenta operaciones del tipo en DRAFT, WAITING o READY.
func (r *AnalyticsRepo) CountPendingOperations(ctx context.Context, opType entity.OperationType) (int, error) {
	query := `
		SELECT count(*) FROM operations
		WHERE type = $1 AND status IN ('DRAFT', 'WAITING', 'READY')`
	var total int
	if err := r.q.QueryRow(ctx, query, opType).Scan(&total); err != nil {
		return 0, fmt.Errorf("count pending operations: %w", err)
	}
	return total, nil
}

// CountLowAndOutOfStock cuenta, sobre los productos activos con umbral de
// reposición configurado, cuántos están en stock bajo y cuántos agotados.
// Un producto sin filas en stock_levels cuenta como agotado (total 0).
func (r *AnalyticsRepo) CountLowAndOutOfStock(ctx context.Context) (low int, out int, err error) {
	query := `
		SELECT
			count(*) FILTER (WHERE COALESCE(t.total, 0) <= p.reorder_level),
			count(*) FILTER (WHERE COALESCE(t.total, 0) <= 0)
		FROM products p
		LEFT JOIN (
			SELECT product_id, sum(quantity) AS total
			FROM stock_levels GROUP BY product_id
		) t ON t.product_id = p.id
		WHERE p.is_active AND p.reorder_level > 0`
	if err := r.q.QueryRow(ctx, query).Scan(&low, &out); err != nil {
		return 0, 0, fmt.Errorf("count low stock: %w", err)
	}
	return low, out, nil
}

// WarehouseSummaries agrega actividad y cobertura por almacén activo.
func (r *AnalyticsRepo) WarehouseSummaries(ctx context.Context) ([]repository.WarehouseSummaryRow, error) {
	query := `
		SELECT w.id, w.name, w.short_code,
			(SELECT count(DISTINCT sl.product_id)
				FROM stock_levels sl
				JOIN locations l ON l.id = sl.location_id
				WHERE l.warehouse_id = w.id AND sl.quantity <> 0),
			(SELECT count(*) FROM locations l WHERE l.warehouse_id = w.id),
			(SELECT count(*) FROM operations o
				WHERE o.type = 'RECEIPT' AND o.warehouse_to_id = w.id AND o.status <> 'CANCELED'),
			(SELECT count(*) FROM operations o
				WHERE o.type = 'DELIVERY' AND o.warehouse_from_id = w.id AND o.status <> 'CANCELED'),
			(SELECT count(*) FROM operations o
				WHERE o.type = 'TRANSFER' AND (o.warehouse_from_id = w.id OR o.warehouse_to_id = w.id)
					AND o.status <> 'CANCELED')
		FROM warehouses w
		WHERE w.is_active
		ORDER BY w.name`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("warehouse summaries: %w", err)
	}
	defer rows.Close()

	var summaries []repository.WarehouseSummaryRow
	for rows.Next() {
		var s repository.WarehouseSummaryRow
		err := rows.Scan(&s.WarehouseID, &s.WarehouseName, &s.ShortCode,
			&s.TotalProducts, &s.TotalLocation, &s.Receipts, &s.Deliveries, &s.Transfers)
		if err != nil {
			return nil, fmt.Errorf("scan warehouse summary: %w", err)
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

// CategorySummaries agrega productos y stock total por categoría.
func (r *AnalyticsRepo) CategorySummaries(ctx context.Context) ([]repository.CategorySummaryRow, error) {
	query := `
		SELECT c.id, c.name, count(p.id), COALESCE(sum(t.total), 0)
		FROM categories c
		LEFT JOIN products p ON p.category_id = c.id
		LEFT JOIN (
			SELECT product_id, sum(quantity) AS total
			FROM stock_levels GROUP BY product_id
		) t ON t.product_id = p.id
		GROUP BY c.id, c.name
		ORDER BY c.name`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("category summaries: %w", err)
	}
	defer rows.Close()

	var summaries []repository.CategorySummaryRow
	for rows.Next() {
		var s repository.CategorySummaryRow
		if err := rows.Scan(&s.CategoryID, &s.CategoryName, &s.TotalProducts, &s.TotalStock); err != nil {
			return nil, fmt.Errorf("scan category summary: %w", err)
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}
