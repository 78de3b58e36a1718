package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OperationItemRequest línea de una operación de entrada, salida o traslado.
type OperationItemRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// CountedItemRequest línea de un ajuste: cantidad contada físicamente (puede ser cero).
type CountedItemRequest struct {
	ProductID       string          `json:"product_id"`
	CountedQuantity decimal.Decimal `json:"counted_quantity"`
}

// CreateReceiptRequest body para POST /api/operations/receipts.
type CreateReceiptRequest struct {
	WarehouseToID     string                 `json:"warehouse_to_id,omitempty"` // vacío = almacén de la ubicación
	LocationToID      string                 `json:"location_to_id"`
	ContactName       string                 `json:"contact_name,omitempty"`
	ScheduleDate      *time.Time             `json:"schedule_date,omitempty"`
	Notes             string                 `json:"notes,omitempty"`
	Items             []OperationItemRequest `json:"items"`
	ResponsibleUserID string                 `json:"responsible_user_id,omitempty"`
}

// CreateDeliveryRequest body para POST /api/operations/deliveries.
type CreateDeliveryRequest struct {
	WarehouseFromID   string                 `json:"warehouse_from_id,omitempty"`
	LocationFromID    string                 `json:"location_from_id"`
	ContactName       string                 `json:"contact_name,omitempty"`
	ScheduleDate      *time.Time             `json:"schedule_date,omitempty"`
	Notes             string                 `json:"notes,omitempty"`
	Items             []OperationItemRequest `json:"items"`
	ResponsibleUserID string                 `json:"responsible_user_id,omitempty"`
}

// CreateTransferRequest body para POST /api/operations/transfers.
type CreateTransferRequest struct {
	WarehouseFromID   string                 `json:"warehouse_from_id,omitempty"`
	LocationFromID    string                 `json:"location_from_id"`
	WarehouseToID     string                 `json:"warehouse_to_id,omitempty"`
	LocationToID      string                 `json:"location_to_id"`
	ScheduleDate      *time.Time             `json:"schedule_date,omitempty"`
	Notes             string                 `json:"notes,omitempty"`
	Items             []OperationItemRequest `json:"items"`
	ResponsibleUserID string                 `json:"responsible_user_id,omitempty"`
}

// CreateAdjustmentRequest body para POST /api/operations/adjustments.
// La ubicación actúa como sitio de conteo y destino del ajuste.
type CreateAdjustmentRequest struct {
	WarehouseID       string               `json:"warehouse_id,omitempty"`
	LocationID        string               `json:"location_id"`
	Notes             string               `json:"notes,omitempty"`
	Items             []CountedItemRequest `json:"items"`
	ResponsibleUserID string               `json:"responsible_user_id,omitempty"`
}

// UpdateOperationRequest body para PUT /api/operations/:id.
// Campos nil se dejan como están; Items no-nil reemplaza todas las líneas.
type UpdateOperationRequest struct {
	ContactName       *string                 `json:"contact_name,omitempty"`
	ScheduleDate      *time.Time              `json:"schedule_date,omitempty"`
	ClearScheduleDate bool                    `json:"clear_schedule_date,omitempty"`
	Notes             *string                 `json:"notes,omitempty"`
	Items             *[]OperationItemRequest `json:"items,omitempty"`
	ResponsibleUserID *string                 `json:"responsible_user_id,omitempty"`
}

// TransitionRequest body para POST /api/operations/:id/transition.
type TransitionRequest struct {
	Action string `json:"action"` // mark_ready | mark_done | cancel
}

// OperationItemResponse línea de operación en respuestas.
type OperationItemResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// OperationResponse representación de una operación en la API.
type OperationResponse struct {
	ID              string                  `json:"id"`
	Type            string                  `json:"type"`
	Status          string                  `json:"status"`
	Reference       string                  `json:"reference"`
	WarehouseFromID string                  `json:"warehouse_from_id,omitempty"`
	LocationFromID  string                  `json:"location_from_id,omitempty"`
	WarehouseToID   string                  `json:"warehouse_to_id,omitempty"`
	LocationToID    string                  `json:"location_to_id,omitempty"`
	ContactName     string                  `json:"contact_name,omitempty"`
	ScheduleDate    *time.Time              `json:"schedule_date,omitempty"`
	Notes           string                  `json:"notes,omitempty"`
	CreatedByUserID string                  `json:"created_by_user_id"`
	ResponsibleID   string                  `json:"responsible_user_id,omitempty"`
	Items           []OperationItemResponse `json:"items"`
	CreatedAt       time.Time               `json:"created_at"`
	UpdatedAt       time.Time               `json:"updated_at"`
}

// OperationListResponse respuesta paginada de operaciones.
type OperationListResponse struct {
	Data       []OperationResponse `json:"data"`
	Pagination Pagination          `json:"pagination"`
}
