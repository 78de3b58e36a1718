package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stockmaster/stockmaster-api/internal/domain/entity"
	"github.com/stockmaster/stockmaster-api/internal/domain/repository"
)

var _ repository.StockLevelRepository = (*StockLevelRepo)(nil)

// StockLevelRepo implementación del saldo materializado sobre PostgreSQL.
type StockLevelRepo struct {
	q Querier
}

// NewStockLevelRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockLevelRepository(q Querier) *StockLevelRepo {
	return &StockLevelRepo{q: q}
}

// Get devuelve el saldo actual; cantidad cero si nunca hubo movimientos.
func (r *StockLevelRepo) Get(ctx context.Context, productID, locationID string) (*entity.StockLevel, error) {
	query := `
		SELECT product_id, location_id, quantity, updated_at
		FROM stock_levels WHERE product_id = $1 AND location_id = $2`
	var level entity.StockLevel
	err := r.q.QueryRow(ctx, query, productID, locationID).Scan(
		&level.ProductID, &level.LocationID, &level.Quantity, &level.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.StockLevel{ProductID: productID, LocationID: locationID, Quantity: decimal.Zero}, nil
		}
		return nil, fmt.Errorf("get stock level: %w", err)
	}
	return &level, nil
}

// ApplyDelta suma delta (positivo o negativo) al saldo, creándolo si no
// existe. El incremento se hace en la DB, no leyendo y reescribiendo: dos
// transacciones concurrentes sobre el mismo saldo se serializan en la fila.
func (r *StockLevelRepo) ApplyDelta(ctx context.Context, productID, locationID string, delta decimal.Decimal) error {
	query := `
		INSERT INTO stock_levels (product_id, location_id, quantity, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (product_id, location_id)
		DO UPDATE SET quantity = stock_levels.quantity + EXCLUDED.quantity, updated_at = now()`
	if _, err := r.q.Exec(ctx, query, productID, locationID, delta); err != nil {
		return fmt.Errorf("apply stock delta: %w", err)
	}
	return nil
}

// SumByProduct devuelve el total del producto en todo el sistema.
func (r *StockLevelRepo) SumByProduct(ctx context.Context, productID string) (decimal.Decimal, error) {
	query := `SELECT COALESCE(sum(quantity), 0) FROM stock_levels WHERE product_id = $1`
	var total decimal.Decimal
	if err := r.q.QueryRow(ctx, query, productID).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("sum stock by product: %w", err)
	}
	return total, nil
}

// SumByProductAndWarehouse devuelve el total sobre las ubicaciones del almacén.
func (r *StockLevelRepo) SumByProductAndWarehouse(ctx context.Context, productID, warehouseID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(sum(sl.quantity), 0)
		FROM stock_levels sl
		JOIN locations l ON l.id = sl.location_id
		WHERE sl.product_id = $1 AND l.warehouse_id = $2`
	var total decimal.Decimal
	if err := r.q.QueryRow(ctx, query, productID, warehouseID).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("sum stock by warehouse: %w", err)
	}
	return total, nil
}

// ProductTotals devuelve el total por producto de todos los productos con saldo registrado.
func (r *StockLevelRepo) ProductTotals(ctx context.Context) ([]repository.ProductTotal, error) {
	query := `SELECT product_id, sum(quantity) FROM stock_levels GROUP BY product_id`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("product totals: %w", err)
	}
	defer rows.Close()

	var totals []repository.ProductTotal
	for rows.Next() {
		var t repository.ProductTotal
		if err := rows.Scan(&t.ProductID, &t.Total); err != nil {
			return nil, fmt.Errorf("scan product total: %w", err)
		}
		totals = append(totals, t)
	}
	return totals, rows.Err()
}
