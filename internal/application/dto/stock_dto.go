package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockAtResponse saldo de un producto en el ámbito consultado
// (ubicación, almacén o todo el sistema).
type StockAtResponse struct {
	ProductID   string          `json:"product_id"`
	LocationID  string          `json:"location_id,omitempty"`
	WarehouseID string          `json:"warehouse_id,omitempty"`
	Quantity    decimal.Decimal `json:"quantity"`
}

// LowStockProductDTO producto por debajo de su umbral de reposición.
type LowStockProductDTO struct {
	ProductID    string          `json:"product_id"`
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	CurrentStock decimal.Decimal `json:"current_stock"`
	ReorderLevel decimal.Decimal `json:"reorder_level"`
	OutOfStock   bool            `json:"out_of_stock"` // current_stock <= 0
}

// LedgerRowDTO fila del libro de un producto con saldo acumulado.
// BalanceChange lleva el signo (+ entra al destino, - sale del origen);
// RunningBalance es el acumulado hasta esa fila incluida.
type LedgerRowDTO struct {
	MovementID     string          `json:"movement_id"`
	Date           time.Time       `json:"date"`
	Reference      string          `json:"reference"`
	Type           string          `json:"type"`
	Status         string          `json:"status"`
	From           string          `json:"from"` // nombre de ubicación o "External"
	To             string          `json:"to"`
	Quantity       decimal.Decimal `json:"quantity"`
	BalanceChange  decimal.Decimal `json:"balance_change"`
	RunningBalance decimal.Decimal `json:"running_balance"`
}

// ProductLedgerResponse libro de un producto, filas más recientes primero.
type ProductLedgerResponse struct {
	ProductID string         `json:"product_id"`
	Ledger    []LedgerRowDTO `json:"ledger"`
}

// HistoryEndpointDTO extremo (origen o destino) de una fila del historial.
type HistoryEndpointDTO struct {
	LocationID    string `json:"location_id"`
	LocationName  string `json:"location_name"`
	WarehouseName string `json:"warehouse_name,omitempty"`
}

// MoveHistoryRowDTO fila aplanada del historial de movimientos.
type MoveHistoryRowDTO struct {
	MovementID   string              `json:"movement_id"`
	Reference    string              `json:"reference"`
	Date         time.Time           `json:"date"`
	ScheduleDate *time.Time          `json:"schedule_date,omitempty"`
	Type         string              `json:"type"`
	Status       string              `json:"status"`
	ProductID    string              `json:"product_id"`
	ProductSKU   string              `json:"product_sku"`
	ProductName  string              `json:"product_name"`
	Unit         string              `json:"unit_of_measure"`
	From         *HistoryEndpointDTO `json:"from,omitempty"`
	To           *HistoryEndpointDTO `json:"to,omitempty"`
	Quantity     decimal.Decimal     `json:"quantity"`
	ContactName  string              `json:"contact_name,omitempty"`
}

// MoveHistoryResponse historial paginado.
type MoveHistoryResponse struct {
	Data       []MoveHistoryRowDTO `json:"data"`
	Pagination Pagination          `json:"pagination"`
}

// ReconciliationDTO resultado de contrastar el saldo materializado contra el
// fold completo del ledger para (producto, ubicación).
type ReconciliationDTO struct {
	ProductID    string          `json:"product_id"`
	LocationID   string          `json:"location_id"`
	Materialized decimal.Decimal `json:"materialized"`
	Folded       decimal.Decimal `json:"folded"`
	InSync       bool            `json:"in_sync"`
}
