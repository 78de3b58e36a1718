// Package operations implementa el ciclo de vida de las operaciones de
// inventario: creación por tipo, edición en borrador, máquina de estados y el
// commit que convierte líneas en movimientos del ledger de forma atómica.
package operations

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockmaster/stockmaster-api/internal/application/dto"
	"github.com/stockmaster/stockmaster-api/internal/domain"
	"github.com/stockmaster/stockmaster-api/internal/domain/entity"
	domop "github.com/stockmaster/stockmaster-api/internal/domain/operation"
	"github.com/stockmaster/stockmaster-api/internal/domain/repository"
)

// UseCase casos de uso del ciclo de vida de operaciones.
type UseCase struct {
	txRunner     TxRunner
	opRepo       repository.OperationRepository
	locationRepo repository.LocationRepository
	productRepo  repository.ProductRepository
	levelRepo    repository.StockLevelRepository
	publisher    EventPublisher
	docGen       DocumentGenerator
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner TxRunner,
	opRepo repository.OperationRepository,
	locationRepo repository.LocationRepository,
	productRepo repository.ProductRepository,
	levelRepo repository.StockLevelRepository,
	publisher EventPublisher,
	docGen DocumentGenerator,
) *UseCase {
	return &UseCase{
		txRunner:     txRunner,
		opRepo:       opRepo,
		locationRepo: locationRepo,
		productRepo:  productRepo,
		levelRepo:    levelRepo,
		publisher:    publisher,
		docGen:       docGen,
	}
}

// CreateReceipt crea una operación de entrada (RECEIPT) en DRAFT.
func (uc *UseCase) CreateReceipt(ctx context.Context, userID string, in dto.CreateReceiptRequest) (*dto.OperationResponse, error) {
	if err := uc.validateItems(ctx, in.Items); err != nil {
		return nil, err
	}
	location, err := uc.requireLocation(ctx, in.LocationToID)
	if err != nil {
		return nil, err
	}

	op := uc.newOperation(entity.OperationTypeReceipt, userID, in.ResponsibleUserID)
	op.WarehouseToID = orDefault(in.WarehouseToID, location.WarehouseID)
	op.LocationToID = in.LocationToID
	op.ContactName = in.ContactName
	op.ScheduleDate = in.ScheduleDate
	op.Notes = in.Notes
	op.Items = toItems(op.ID, in.Items)

	if err := uc.persistNew(ctx, op); err != nil {
		return nil, err
	}
	uc.publisher.OperationCreated(op)
	return toOperationResponse(op), nil
}

// CreateDelivery crea una operación de salida (DELIVERY) en DRAFT.
func (uc *UseCase) CreateDelivery(ctx context.Context, userID string, in dto.CreateDeliveryRequest) (*dto.OperationResponse, error) {
	if err := uc.validateItems(ctx, in.Items); err != nil {
		return nil, err
	}
	location, err := uc.requireLocation(ctx, in.LocationFromID)
	if err != nil {
		return nil, err
	}

	op := uc.newOperation(entity.OperationTypeDelivery, userID, in.ResponsibleUserID)
	op.WarehouseFromID = orDefault(in.WarehouseFromID, location.WarehouseID)
	op.LocationFromID = in.LocationFromID
	op.ContactName = in.ContactName
	op.ScheduleDate = in.ScheduleDate
	op.Notes = in.Notes
	op.Items = toItems(op.ID, in.Items)

	if err := uc.persistNew(ctx, op); err != nil {
		return nil, err
	}
	uc.publisher.OperationCreated(op)
	return toOperationResponse(op), nil
}

// CreateTransfer crea una operación de traslado (TRANSFER) en DRAFT.
func (uc *UseCase) CreateTransfer(ctx context.Context, userID string, in dto.CreateTransferRequest) (*dto.OperationResponse, error) {
	if err := uc.validateItems(ctx, in.Items); err != nil {
		return nil, err
	}
	if in.LocationFromID == in.LocationToID {
		return nil, fmt.Errorf("%w: origen y destino no pueden ser la misma ubicación", domain.ErrInvalidInput)
	}
	locationFrom, err := uc.requireLocation(ctx, in.LocationFromID)
	if err != nil {
		return nil, err
	}
	locationTo, err := uc.requireLocation(ctx, in.LocationToID)
	if err != nil {
		return nil, err
	}

	op := uc.newOperation(entity.OperationTypeTransfer, userID, in.ResponsibleUserID)
	op.WarehouseFromID = orDefault(in.WarehouseFromID, locationFrom.WarehouseID)
	op.LocationFromID = in.LocationFromID
	op.WarehouseToID = orDefault(in.WarehouseToID, locationTo.WarehouseID)
	op.LocationToID = in.LocationToID
	op.ScheduleDate = in.ScheduleDate
	op.Notes = in.Notes
	op.Items = toItems(op.ID, in.Items)

	if err := uc.persistNew(ctx, op); err != nil {
		return nil, err
	}
	uc.publisher.OperationCreated(op)
	return toOperationResponse(op), nil
}

// CreateAdjustment crea una operación de ajuste (ADJUSTMENT) en DRAFT.
//
// La cantidad de cada línea se pre-resuelve en este momento (no en el commit)
// como |contado - saldo actual| en la ubicación del ajuste. El valor absoluto
// descarta el signo de la corrección; se conserva tal cual el comportamiento
// de producción hasta confirmar si una merma debería restar.
func (uc *UseCase) CreateAdjustment(ctx context.Context, userID string, in dto.CreateAdjustmentRequest) (*dto.OperationResponse, error) {
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: el ajuste requiere al menos una línea", domain.ErrInvalidInput)
	}
	for _, item := range in.Items {
		if item.CountedQuantity.IsNegative() {
			return nil, fmt.Errorf("%w: la cantidad contada no puede ser negativa", domain.ErrInvalidInput)
		}
		if err := uc.requireProduct(ctx, item.ProductID); err != nil {
			return nil, err
		}
	}
	location, err := uc.requireLocation(ctx, in.LocationID)
	if err != nil {
		return nil, err
	}

	op := uc.newOperation(entity.OperationTypeAdjustment, userID, in.ResponsibleUserID)
	op.WarehouseToID = orDefault(in.WarehouseID, location.WarehouseID)
	op.LocationToID = in.LocationID
	op.Notes = in.Notes

	err = uc.txRunner.Run(ctx, func(
		opRepo repository.OperationRepository,
		_ repository.StockMovementRepository,
		levelRepo repository.StockLevelRepository,
		seqRepo repository.SequenceRepository,
	) error {
		items := make([]entity.OperationItem, 0, len(in.Items))
		for _, item := range in.Items {
			level, err := levelRepo.Get(ctx, item.ProductID, in.LocationID)
			if err != nil {
				return err
			}
			items = append(items, entity.OperationItem{
				ID:          uuid.New().String(),
				OperationID: op.ID,
				ProductID:   item.ProductID,
				Quantity:    item.CountedQuantity.Sub(level.Quantity).Abs(),
			})
		}
		op.Items = items

		seq, err := seqRepo.Next(ctx, op.Type)
		if err != nil {
			return err
		}
		op.Reference = domop.FormatReference(op.Type, seq)
		return opRepo.Create(ctx, op)
	})
	if err != nil {
		return nil, err
	}

	uc.publisher.OperationCreated(op)
	return toOperationResponse(op), nil
}

// ── Helpers de creación ───────────────────────────────────────────────────────

// newOperation arma el esqueleto común: DRAFT, creador y responsable
// (el responsable por defecto es el creador).
func (uc *UseCase) newOperation(opType entity.OperationType, userID, responsibleID string) *entity.Operation {
	now := time.Now()
	return &entity.Operation{
		ID:              uuid.New().String(),
		Type:            opType,
		Status:          entity.StatusDraft,
		CreatedByUserID: userID,
		ResponsibleID:   orDefault(responsibleID, userID),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// persistNew asigna la referencia desde el contador atómico por tipo y
// persiste la operación con sus líneas, todo en una transacción.
func (uc *UseCase) persistNew(ctx context.Context, op *entity.Operation) error {
	return uc.txRunner.Run(ctx, func(
		opRepo repository.OperationRepository,
		_ repository.StockMovementRepository,
		_ repository.StockLevelRepository,
		seqRepo repository.SequenceRepository,
	) error {
		seq, err := seqRepo.Next(ctx, op.Type)
		if err != nil {
			return err
		}
		op.Reference = domop.FormatReference(op.Type, seq)
		return opRepo.Create(ctx, op)
	})
}

// validateItems valida lista no vacía, cantidades positivas y productos existentes.
func (uc *UseCase) validateItems(ctx context.Context, items []dto.OperationItemRequest) error {
	if len(items) == 0 {
		return fmt.Errorf("%w: la operación requiere al menos una línea", domain.ErrInvalidInput)
	}
	for _, item := range items {
		if !item.Quantity.GreaterThan(decimal.Zero) {
			return fmt.Errorf("%w: la cantidad debe ser positiva", domain.ErrInvalidInput)
		}
		if err := uc.requireProduct(ctx, item.ProductID); err != nil {
			return err
		}
	}
	return nil
}

func (uc *UseCase) requireProduct(ctx context.Context, productID string) error {
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return err
	}
	if product == nil {
		return fmt.Errorf("%w: producto %s", domain.ErrNotFound, productID)
	}
	return nil
}

func (uc *UseCase) requireLocation(ctx context.Context, locationID string) (*entity.Location, error) {
	if locationID == "" {
		return nil, fmt.Errorf("%w: ubicación requerida", domain.ErrInvalidInput)
	}
	location, err := uc.locationRepo.GetByID(ctx, locationID)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, fmt.Errorf("%w: ubicación %s", domain.ErrNotFound, locationID)
	}
	return location, nil
}

func toItems(operationID string, in []dto.OperationItemRequest) []entity.OperationItem {
	items := make([]entity.OperationItem, 0, len(in))
	for _, item := range in {
		items = append(items, entity.OperationItem{
			ID:          uuid.New().String(),
			OperationID: operationID,
			ProductID:   item.ProductID,
			Quantity:    item.Quantity,
		})
	}
	return items
}

func orDefault(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}
