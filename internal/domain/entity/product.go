package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto o SKU del inventario.
// El stock nunca se guarda aquí: se deriva del ledger de movimientos
// (materializado en StockLevel).
type Product struct {
	ID            string
	SKU           string // código único
	Name          string
	Description   string
	CategoryID    string
	UnitOfMeasure string          // unidad, metro, kilogramo, litro...
	ReorderLevel  decimal.Decimal // 0 = sin umbral de reposición
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
