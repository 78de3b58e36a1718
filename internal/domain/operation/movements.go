package operation

import (
	"fmt"
	"time"

	"github.com/stockmaster/stockmaster-api/internal/domain"
	"github.com/stockmaster/stockmaster-api/internal/domain/entity"
)

// BuildMovements deriva los movimientos del ledger para una operación que
// entra en DONE: exactamente un movimiento por línea, con la forma que dicta
// el tipo de la operación.
//
//	RECEIPT:    solo LocationTo (destino de la operación)
//	DELIVERY:   solo LocationFrom (origen de la operación)
//	TRANSFER:   ambos
//	ADJUSTMENT: solo LocationTo; la magnitud ya viene pre-resuelta en la línea
//
// Los timestamps de creación son los del inicio del commit; nunca anteriores.
func BuildMovements(op *entity.Operation, now time.Time) ([]*entity.StockMovement, error) {
	movements := make([]*entity.StockMovement, 0, len(op.Items))
	for _, item := range op.Items {
		mov := &entity.StockMovement{
			ProductID:     item.ProductID,
			QuantityDelta: item.Quantity,
			MovementType:  op.Type,
			OperationID:   op.ID,
			CreatedAt:     now,
		}
		switch op.Type {
		case entity.OperationTypeReceipt:
			mov.LocationToID = op.LocationToID
		case entity.OperationTypeDelivery:
			mov.LocationFromID = op.LocationFromID
		case entity.OperationTypeTransfer:
			mov.LocationFromID = op.LocationFromID
			mov.LocationToID = op.LocationToID
		case entity.OperationTypeAdjustment:
			mov.LocationToID = op.LocationToID
		default:
			return nil, fmt.Errorf("%w: tipo de operación desconocido %q", domain.ErrInvalidInput, op.Type)
		}
		movements = append(movements, mov)
	}
	return movements, nil
}
