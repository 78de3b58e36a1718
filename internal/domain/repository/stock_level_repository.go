package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stockmaster/stockmaster-api/internal/domain/entity"
)

// ProductTotal saldo total en el sistema de un producto.
type ProductTotal struct {
	ProductID string
	Total     decimal.Decimal
}

// StockLevelRepository define el puerto del saldo materializado por
// (producto, ubicación). ApplyDelta se ejecuta siempre dentro de la misma
// transacción que el append al ledger.
type StockLevelRepository interface {
	// Get devuelve el saldo actual; cantidad cero si nunca hubo movimientos.
	Get(ctx context.Context, productID, locationID string) (*entity.StockLevel, error)
	// ApplyDelta suma delta (positivo o negativo) al saldo, creándolo si no existe.
	ApplyDelta(ctx context.Context, productID, locationID string, delta decimal.Decimal) error
	// SumByProduct devuelve el total del producto en todo el sistema.
	SumByProduct(ctx context.Context, productID string) (decimal.Decimal, error)
	// SumByProductAndWarehouse devuelve el total sobre las ubicaciones del almacén.
	SumByProductAndWarehouse(ctx context.Context, productID, warehouseID string) (decimal.Decimal, error)
	// ProductTotals devuelve el total por producto de todos los productos con saldo registrado.
	ProductTotals(ctx context.Context) ([]ProductTotal, error)
}
