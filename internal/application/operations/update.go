package operations

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stockmaster/stockmaster-api/internal/application/dto"
	"github.com/stockmaster/stockmaster-api/internal/domain"
	"github.com/stockmaster/stockmaster-api/internal/domain/repository"
)

// Update muta una operación editable: contacto, agenda, notas, responsable y,
// si vienen, las líneas completas (borrado y recreación en bloque).
//
// Solo DRAFT y WAITING admiten edición; READY, DONE y CANCELED devuelven
// ErrConflict sin aplicar nada. El tipo y la forma origen/destino son
// inmutables después de la creación.
func (uc *UseCase) Update(ctx context.Context, id string, in dto.UpdateOperationRequest) (*dto.OperationResponse, error) {
	op, err := uc.opRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if op == nil {
		return nil, fmt.Errorf("%w: operación %s", domain.ErrNotFound, id)
	}
	if !op.Editable() {
		return nil, fmt.Errorf("%w: solo se pueden editar operaciones en DRAFT o WAITING", domain.ErrConflict)
	}

	if in.ContactName != nil {
		op.ContactName = *in.ContactName
	}
	if in.ScheduleDate != nil {
		op.ScheduleDate = in.ScheduleDate
	}
	if in.ClearScheduleDate {
		op.ScheduleDate = nil
	}
	if in.Notes != nil {
		op.Notes = *in.Notes
	}
	if in.ResponsibleUserID != nil {
		op.ResponsibleID = *in.ResponsibleUserID
	}
	op.UpdatedAt = time.Now()

	if in.Items != nil {
		if len(*in.Items) == 0 {
			return nil, fmt.Errorf("%w: la operación requiere al menos una línea", domain.ErrInvalidInput)
		}
		for _, item := range *in.Items {
			if !item.Quantity.GreaterThan(decimal.Zero) {
				return nil, fmt.Errorf("%w: la cantidad debe ser positiva", domain.ErrInvalidInput)
			}
			if err := uc.requireProduct(ctx, item.ProductID); err != nil {
				return nil, err
			}
		}
		op.Items = toItems(op.ID, *in.Items)
	}

	err = uc.txRunner.Run(ctx, func(
		opRepo repository.OperationRepository,
		_ repository.StockMovementRepository,
		_ repository.StockLevelRepository,
		_ repository.SequenceRepository,
	) error {
		if err := opRepo.UpdateFields(ctx, op); err != nil {
			return err
		}
		if in.Items != nil {
			return opRepo.ReplaceItems(ctx, op.ID, op.Items)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.publisher.OperationUpdated(op)
	return toOperationResponse(op), nil
}
