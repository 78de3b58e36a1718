package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stockmaster/stockmaster-api/internal/domain/entity"
)

// ProductLedgerRow fila cruda del libro de un producto: movimiento + datos de
// la operación dueña. El caso de uso calcula los saldos acumulados.
type ProductLedgerRow struct {
	MovementID       string
	CreatedAt        time.Time
	Reference        string
	MovementType     entity.OperationType
	OperationStatus  entity.OperationStatus
	FromLocationID   string
	FromLocationName string // "" si el origen es externo
	ToLocationID     string
	ToLocationName   string // "" si el destino es externo
	QuantityDelta    decimal.Decimal
}

// HistoryFilters filtros para el historial de movimientos.
type HistoryFilters struct {
	MovementType entity.OperationType   // "" = todos
	Status       entity.OperationStatus // estado de la operación dueña
	Reference    string                 // match parcial, case-insensitive
	WarehouseID  string                 // almacén origen o destino de la operación
	LocationID   string                 // ubicación origen o destino del movimiento
	ProductID    string
	DateFrom     *time.Time // sobre created_at del movimiento
	DateTo       *time.Time
}

// MovementHistoryRow fila aplanada del historial: movimiento + operación +
// producto + nombres de ubicaciones/almacenes.
type MovementHistoryRow struct {
	MovementID        string
	Reference         string
	Date              time.Time
	ScheduleDate      *time.Time
	MovementType      entity.OperationType
	OperationStatus   entity.OperationStatus
	ProductID         string
	ProductSKU        string
	ProductName       string
	UnitOfMeasure     string
	FromLocationID    string
	FromLocationName  string
	FromWarehouseName string
	ToLocationID      string
	ToLocationName    string
	ToWarehouseName   string
	Quantity          decimal.Decimal
	ContactName       string
}

// StockMovementRepository define el puerto de persistencia del ledger.
// Los movimientos son write-once: solo existe inserción en lote (desde el
// commit de una operación) y lecturas. Sin Update ni Delete.
type StockMovementRepository interface {
	// CreateBatch inserta el conjunto de movimientos de un commit.
	CreateBatch(ctx context.Context, movements []*entity.StockMovement) error
	// ListByProduct devuelve los movimientos de un producto, más antiguos primero.
	ListByProduct(ctx context.Context, productID string) ([]*entity.StockMovement, error)
	// ProductLedger devuelve las filas del libro de un producto con los datos
	// de la operación dueña, más antiguas primero.
	ProductLedger(ctx context.Context, productID string) ([]ProductLedgerRow, error)
	// History devuelve el historial filtrado, más recientes primero.
	History(ctx context.Context, f HistoryFilters, limit, offset int) ([]MovementHistoryRow, error)
	CountHistory(ctx context.Context, f HistoryFilters) (int, error)
}
