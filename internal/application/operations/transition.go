package operations

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/stockmaster/stockmaster-api/internal/application/dto"
	"github.com/stockmaster/stockmaster-api/internal/domain"
	"github.com/stockmaster/stockmaster-api/internal/domain/entity"
	domop "github.com/stockmaster/stockmaster-api/internal/domain/operation"
	"github.com/stockmaster/stockmaster-api/internal/domain/repository"
)

// Transition aplica una acción de la máquina de estados sobre la operación.
//
// Solo la transición que entra en DONE genera movimientos: un movimiento por
// línea, insertado junto con el cambio de estado y los deltas de saldo en una
// única transacción. El cambio de estado lleva precondición de estado
// (UPDATE ... WHERE status = anterior), de modo que dos commits concurrentes
// sobre la misma operación producen exactamente un conjunto de movimientos y
// el perdedor recibe ErrConflict.
func (uc *UseCase) Transition(ctx context.Context, id, action string) (*dto.OperationResponse, error) {
	act, err := domop.ParseAction(action)
	if err != nil {
		return nil, err
	}

	op, err := uc.opRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if op == nil {
		return nil, fmt.Errorf("%w: operación %s", domain.ErrNotFound, id)
	}

	oldStatus := op.Status
	newStatus, err := domop.NextStatus(op.Type, oldStatus, act)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	var movements []*entity.StockMovement
	if domop.Commits(oldStatus, newStatus) {
		movements, err = domop.BuildMovements(op, now)
		if err != nil {
			return nil, err
		}
		for _, mov := range movements {
			mov.ID = uuid.New().String()
		}
	}

	err = uc.txRunner.Run(ctx, func(
		opRepo repository.OperationRepository,
		movRepo repository.StockMovementRepository,
		levelRepo repository.StockLevelRepository,
		_ repository.SequenceRepository,
	) error {
		applied, err := opRepo.UpdateStatus(ctx, id, oldStatus, newStatus)
		if err != nil {
			return err
		}
		if !applied {
			// Otro request ganó la carrera; nada cambió en esta transacción.
			return fmt.Errorf("%w: el estado de la operación cambió, reintente", domain.ErrConflict)
		}
		if len(movements) == 0 {
			return nil
		}
		if err := movRepo.CreateBatch(ctx, movements); err != nil {
			return err
		}
		for _, mov := range movements {
			if mov.LocationToID != "" {
				if err := levelRepo.ApplyDelta(ctx, mov.ProductID, mov.LocationToID, mov.QuantityDelta); err != nil {
					return err
				}
			}
			if mov.LocationFromID != "" {
				if err := levelRepo.ApplyDelta(ctx, mov.ProductID, mov.LocationFromID, mov.QuantityDelta.Neg()); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	op.Status = newStatus
	op.UpdatedAt = now

	uc.publisher.OperationStatusChanged(op.ID, oldStatus, newStatus)
	uc.publishLevelChanges(ctx, movements)

	return toOperationResponse(op), nil
}

// publishLevelChanges emite stock.levelChanged por cada (producto, destino)
// distinto tocado por el commit, con el saldo ya materializado. Solo
// destinos: las salidas no publican la ubicación origen (comportamiento de
// producción del panel en vivo).
func (uc *UseCase) publishLevelChanges(ctx context.Context, movements []*entity.StockMovement) {
	seen := make(map[string]struct{}, len(movements))
	for _, mov := range movements {
		if mov.LocationToID == "" {
			continue
		}
		key := mov.ProductID + "|" + mov.LocationToID
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		level, err := uc.levelRepo.Get(ctx, mov.ProductID, mov.LocationToID)
		if err != nil {
			// Solo afecta a la notificación; el commit ya está confirmado.
			continue
		}
		uc.publisher.StockLevelChanged(mov.ProductID, mov.LocationToID, level.Quantity)
	}
}
