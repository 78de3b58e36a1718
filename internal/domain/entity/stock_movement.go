package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockMovement es un hecho inmutable del libro de movimientos (ledger).
// Solo lo produce la transición de commit de una operación; nunca se edita
// ni se borra de forma individual.
//
// QuantityDelta siempre se guarda como magnitud positiva; el signo lo implica
// qué campo de ubicación está poblado: LocationToID suma, LocationFromID resta.
// Ambos poblados solo ocurre en TRANSFER.
type StockMovement struct {
	ID             string
	ProductID      string
	LocationFromID string // vacío si no aplica
	LocationToID   string // vacío si no aplica
	QuantityDelta  decimal.Decimal
	MovementType   OperationType // refleja el tipo de la operación dueña
	OperationID    string
	CreatedAt      time.Time
}
