package repository

import (
	"context"
	"time"

	"github.com/stockmaster/stockmaster-api/internal/domain/entity"
)

// OperationFilters filtros para listar operaciones.
type OperationFilters struct {
	Type        entity.OperationType   // "" = todos
	Status      entity.OperationStatus // "" = todos
	WarehouseID string                 // coincide origen o destino
	LocationID  string                 // coincide origen o destino
	Reference   string                 // match parcial, case-insensitive
	ContactName string                 // match parcial, case-insensitive
	DateFrom    *time.Time             // sobre schedule_date
	DateTo      *time.Time
}

// OperationRepository define el puerto de persistencia para Operation (DIP).
// Las líneas (items) pertenecen en exclusiva a su operación: se insertan con
// Create y se reemplazan en bloque con ReplaceItems.
type OperationRepository interface {
	// Create persiste la operación junto con sus líneas.
	Create(ctx context.Context, op *entity.Operation) error
	// GetByID devuelve la operación con sus líneas cargadas; nil si no existe.
	GetByID(ctx context.Context, id string) (*entity.Operation, error)
	List(ctx context.Context, f OperationFilters, limit, offset int) ([]*entity.Operation, error)
	Count(ctx context.Context, f OperationFilters) (int, error)
	// UpdateFields persiste contacto, agenda, notas y responsable.
	UpdateFields(ctx context.Context, op *entity.Operation) error
	// ReplaceItems borra las líneas actuales y crea las nuevas.
	ReplaceItems(ctx context.Context, operationID string, items []entity.OperationItem) error
	// UpdateStatus aplica el cambio de estado solo si el estado observado
	// sigue siendo from (control de concurrencia optimista). Devuelve false
	// si la precondición no se cumplió y no hubo cambio.
	UpdateStatus(ctx context.Context, id string, from, to entity.OperationStatus) (bool, error)
}
