package operations

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stockmaster/stockmaster-api/internal/domain/entity"
	"github.com/stockmaster/stockmaster-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de DB, pasando
// repositorios atados a esa tx. Garantiza atomicidad para la creación de
// operaciones y para el commit (cambio de estado + movimientos + saldos:
// todo o nada).
type TxRunner interface {
	Run(ctx context.Context, fn func(
		opRepo repository.OperationRepository,
		movRepo repository.StockMovementRepository,
		levelRepo repository.StockLevelRepository,
		seqRepo repository.SequenceRepository,
	) error) error
}

// EventPublisher publica los eventos de dominio tras cada cambio confirmado.
// La publicación es best-effort y desacoplada: un fallo del sink nunca revierte
// ni hace fallar el cambio de datos ya confirmado.
type EventPublisher interface {
	OperationCreated(op *entity.Operation)
	OperationUpdated(op *entity.Operation)
	OperationStatusChanged(operationID string, oldStatus, newStatus entity.OperationStatus)
	StockLevelChanged(productID, locationID string, newQty decimal.Decimal)
}

// DocumentLine línea del documento imprimible de una operación.
type DocumentLine struct {
	SKU      string
	Name     string
	Unit     string
	Quantity decimal.Decimal
}

// DocumentData datos resueltos para renderizar el documento de una operación
// (albarán de entrega, comprobante de recepción, hoja de traslado o ajuste).
type DocumentData struct {
	Operation    *entity.Operation
	FromLocation string
	ToLocation   string
	Lines        []DocumentLine
}

// DocumentGenerator genera el PDF del documento de una operación.
type DocumentGenerator interface {
	GenerateOperationDocument(ctx context.Context, data DocumentData) ([]byte, error)
}
