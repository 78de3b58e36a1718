package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stockmaster/stockmaster-api/internal/domain/entity"
)

// WarehouseSummaryRow resultado crudo del resumen por almacén.
type WarehouseSummaryRow struct {
	WarehouseID   string
	WarehouseName string
	ShortCode     string
	TotalProducts int // productos distintos con movimientos en el almacén
	TotalLocation int
	Receipts      int // operaciones no canceladas con destino en el almacén
	Deliveries    int
	Transfers     int
}

// CategorySummaryRow resultado crudo del resumen por categoría.
type CategorySummaryRow struct {
	CategoryID    string
	CategoryName  string
	TotalProducts int
	TotalStock    decimal.Decimal
}

// AnalyticsRepository define las consultas de lectura para el dashboard.
// Las implementaciones son read-only (no modifican datos).
type AnalyticsRepository interface {
	// CountStockedProducts cuenta los productos distintos que aparecen en el ledger.
	CountStockedProducts(ctx context.Context) (int, error)
	// CountPendingOperations cuenta operaciones del tipo en DRAFT, WAITING o READY.
	CountPendingOperations(ctx context.Context, opType entity.OperationType) (int, error)
	// CountLowAndOutOfStock cuenta, sobre los productos activos con
	// reorder_level > 0, cuántos están en stock bajo (total <= reorder_level)
	// y cuántos agotados (total <= 0).
	CountLowAndOutOfStock(ctx context.Context) (low int, out int, err error)
	// WarehouseSummaries agrega actividad y cobertura por almacén activo.
	WarehouseSummaries(ctx context.Context) ([]WarehouseSummaryRow, error)
	// CategorySummaries agrega productos y stock total por categoría.
	CategorySummaries(ctx context.Context) ([]CategorySummaryRow, error)
}
