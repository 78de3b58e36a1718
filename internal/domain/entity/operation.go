package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OperationType tipo de operación de inventario.
type OperationType string

// Tipos de operación.
const (
	OperationTypeReceipt    OperationType = "RECEIPT"    // entrada desde el exterior
	OperationTypeDelivery   OperationType = "DELIVERY"   // salida hacia el exterior
	OperationTypeTransfer   OperationType = "TRANSFER"   // traslado entre ubicaciones
	OperationTypeAdjustment OperationType = "ADJUSTMENT" // ajuste por conteo físico
)

// OperationStatus estado de una operación dentro de la máquina de estados.
type OperationStatus string

// Estados de operación. DONE y CANCELED son terminales.
const (
	StatusDraft    OperationStatus = "DRAFT"
	StatusWaiting  OperationStatus = "WAITING"
	StatusReady    OperationStatus = "READY"
	StatusDone     OperationStatus = "DONE"
	StatusCanceled OperationStatus = "CANCELED"
)

// Valid indica si el tipo es uno de los cuatro conocidos.
func (t OperationType) Valid() bool {
	switch t {
	case OperationTypeReceipt, OperationTypeDelivery, OperationTypeTransfer, OperationTypeAdjustment:
		return true
	}
	return false
}

// Operation representa una acción de inventario planificada o completada.
// La forma origen/destino depende del tipo y es inmutable después de la creación:
//   - RECEIPT: solo destino
//   - DELIVERY: solo origen
//   - TRANSFER: origen y destino
//   - ADJUSTMENT: una ubicación que actúa como sitio de conteo y destino
type Operation struct {
	ID              string
	Type            OperationType
	Status          OperationStatus
	Reference       string // secuencial legible, único por tipo: WH/IN/0001
	WarehouseFromID string
	LocationFromID  string
	WarehouseToID   string
	LocationToID    string
	ContactName     string
	ScheduleDate    *time.Time
	Notes           string
	CreatedByUserID string
	ResponsibleID   string
	Items           []OperationItem
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// OperationItem línea de una operación: producto + cantidad solicitada.
// Para ADJUSTMENT la cantidad se pre-resuelve en la creación como
// |contado - stock actual| en la ubicación del ajuste.
// Las líneas se reemplazan en bloque al editar; nunca se crean sueltas.
type OperationItem struct {
	ID          string
	OperationID string
	ProductID   string
	Quantity    decimal.Decimal
}

// Editable indica si la operación admite mutaciones (líneas, notas, agenda).
// Solo DRAFT y WAITING son editables; READY, DONE y CANCELED están bloqueados.
func (o *Operation) Editable() bool {
	return o.Status == StatusDraft || o.Status == StatusWaiting
}

// Terminal indica si el estado actual es terminal.
func (s OperationStatus) Terminal() bool {
	return s == StatusDone || s == StatusCanceled
}
