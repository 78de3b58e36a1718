package dto

import "github.com/shopspring/decimal"

// DashboardKpisDTO indicadores agregados del dashboard.
// Derivados del ledger y de las operaciones pendientes; se cachean con TTL corto.
type DashboardKpisDTO struct {
	TotalProducts     int `json:"total_products"` // productos distintos con movimientos
	LowStock          int `json:"low_stock"`
	OutOfStock        int `json:"out_of_stock"`
	PendingReceipts   int `json:"pending_receipts"`
	PendingDeliveries int `json:"pending_deliveries"`
	PendingTransfers  int `json:"pending_transfers"`
}

// WarehouseSummaryDTO resumen de actividad por almacén.
type WarehouseSummaryDTO struct {
	WarehouseID   string `json:"warehouse_id"`
	Name          string `json:"name"`
	ShortCode     string `json:"short_code"`
	TotalProducts int    `json:"total_products"`
	TotalLocation int    `json:"total_locations"`
	Receipts      int    `json:"receipts"`
	Deliveries    int    `json:"deliveries"`
	Transfers     int    `json:"transfers"`
}

// CategorySummaryDTO resumen de stock por categoría.
type CategorySummaryDTO struct {
	CategoryID    string          `json:"category_id"`
	Name          string          `json:"name"`
	TotalProducts int             `json:"total_products"`
	TotalStock    decimal.Decimal `json:"total_stock"`
}
