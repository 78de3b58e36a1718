package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockLevel es el saldo materializado de un producto en una ubicación.
// Se actualiza en la misma transacción que cada append al ledger; el fold
// completo de movimientos queda como herramienta de reconciliación.
type StockLevel struct {
	ProductID  string
	LocationID string
	Quantity   decimal.Decimal
	UpdatedAt  time.Time
}
