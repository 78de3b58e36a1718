// Package stock implementa el agregador de stock: saldos puntuales, detección
// de stock bajo, libro por producto con saldo acumulado e historial de
// movimientos. El ledger es la fuente de verdad; los saldos materializados son
// una proyección mantenida transaccionalmente por el commit de operaciones.
package stock

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/stockmaster/stockmaster-api/internal/application/dto"
	"github.com/stockmaster/stockmaster-api/internal/domain"
	"github.com/stockmaster/stockmaster-api/internal/domain/repository"
)

// UseCase consultas de stock derivado del ledger.
type UseCase struct {
	movRepo     repository.StockMovementRepository
	levelRepo   repository.StockLevelRepository
	productRepo repository.ProductRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	movRepo repository.StockMovementRepository,
	levelRepo repository.StockLevelRepository,
	productRepo repository.ProductRepository,
) *UseCase {
	return &UseCase{movRepo: movRepo, levelRepo: levelRepo, productRepo: productRepo}
}

// StockAt devuelve el saldo de un producto en el ámbito pedido:
// ubicación si locationID != "", almacén si warehouseID != "", o todo el
// sistema si ambos vienen vacíos.
func (uc *UseCase) StockAt(ctx context.Context, productID, locationID, warehouseID string) (*dto.StockAtResponse, error) {
	if err := uc.requireProduct(ctx, productID); err != nil {
		return nil, err
	}

	resp := &dto.StockAtResponse{ProductID: productID}
	switch {
	case locationID != "":
		level, err := uc.levelRepo.Get(ctx, productID, locationID)
		if err != nil {
			return nil, err
		}
		resp.LocationID = locationID
		resp.Quantity = level.Quantity
	case warehouseID != "":
		total, err := uc.levelRepo.SumByProductAndWarehouse(ctx, productID, warehouseID)
		if err != nil {
			return nil, err
		}
		resp.WarehouseID = warehouseID
		resp.Quantity = total
	default:
		total, err := uc.levelRepo.SumByProduct(ctx, productID)
		if err != nil {
			return nil, err
		}
		resp.Quantity = total
	}
	return resp, nil
}

// LowStock devuelve los productos activos con umbral de reposición cuyo stock
// total del sistema está en o por debajo del umbral. Agotado es el caso
// especial stock <= 0.
func (uc *UseCase) LowStock(ctx context.Context) ([]dto.LowStockProductDTO, error) {
	products, err := uc.productRepo.ListActiveWithReorderLevel(ctx)
	if err != nil {
		return nil, err
	}
	totals, err := uc.levelRepo.ProductTotals(ctx)
	if err != nil {
		return nil, err
	}
	byProduct := make(map[string]decimal.Decimal, len(totals))
	for _, t := range totals {
		byProduct[t.ProductID] = t.Total
	}

	low := make([]dto.LowStockProductDTO, 0)
	for _, product := range products {
		current := byProduct[product.ID] // cero si nunca tuvo movimientos
		if current.GreaterThan(product.ReorderLevel) {
			continue
		}
		low = append(low, dto.LowStockProductDTO{
			ProductID:    product.ID,
			SKU:          product.SKU,
			Name:         product.Name,
			CurrentStock: current,
			ReorderLevel: product.ReorderLevel,
			OutOfStock:   !current.GreaterThan(decimal.Zero),
		})
	}
	return low, nil
}

// ProductLedger devuelve el libro de un producto: cada fila con su cambio de
// saldo con signo (+ si el producto entró al destino, - si salió del origen)
// y el saldo acumulado. Se calcula de la fila más antigua a la más reciente y
// se devuelve invertido (más recientes primero).
func (uc *UseCase) ProductLedger(ctx context.Context, productID string) (*dto.ProductLedgerResponse, error) {
	if err := uc.requireProduct(ctx, productID); err != nil {
		return nil, err
	}
	rows, err := uc.movRepo.ProductLedger(ctx, productID)
	if err != nil {
		return nil, err
	}

	running := decimal.Zero
	ledger := make([]dto.LedgerRowDTO, 0, len(rows))
	for _, row := range rows {
		change := decimal.Zero
		if row.ToLocationID != "" {
			change = change.Add(row.QuantityDelta)
		}
		if row.FromLocationID != "" {
			change = change.Sub(row.QuantityDelta)
		}
		running = running.Add(change)

		ledger = append(ledger, dto.LedgerRowDTO{
			MovementID:     row.MovementID,
			Date:           row.CreatedAt,
			Reference:      row.Reference,
			Type:           string(row.MovementType),
			Status:         string(row.OperationStatus),
			From:           orExternal(row.FromLocationName),
			To:             orExternal(row.ToLocationName),
			Quantity:       row.QuantityDelta,
			BalanceChange:  change,
			RunningBalance: running,
		})
	}

	// Invertir: el caller recibe las filas más recientes primero.
	for i, j := 0, len(ledger)-1; i < j; i, j = i+1, j-1 {
		ledger[i], ledger[j] = ledger[j], ledger[i]
	}
	return &dto.ProductLedgerResponse{ProductID: productID, Ledger: ledger}, nil
}

// MoveHistory devuelve el historial aplanado de movimientos con filtros y
// paginación, más recientes primero.
func (uc *UseCase) MoveHistory(ctx context.Context, f repository.HistoryFilters, page dto.PageRequest) (*dto.MoveHistoryResponse, error) {
	rows, err := uc.movRepo.History(ctx, f, page.Limit, page.Offset())
	if err != nil {
		return nil, err
	}
	total, err := uc.movRepo.CountHistory(ctx, f)
	if err != nil {
		return nil, err
	}

	data := make([]dto.MoveHistoryRowDTO, 0, len(rows))
	for _, row := range rows {
		h := dto.MoveHistoryRowDTO{
			MovementID:   row.MovementID,
			Reference:    row.Reference,
			Date:         row.Date,
			ScheduleDate: row.ScheduleDate,
			Type:         string(row.MovementType),
			Status:       string(row.OperationStatus),
			ProductID:    row.ProductID,
			ProductSKU:   row.ProductSKU,
			ProductName:  row.ProductName,
			Unit:         row.UnitOfMeasure,
			Quantity:     row.Quantity,
			ContactName:  row.ContactName,
		}
		if row.FromLocationID != "" {
			h.From = &dto.HistoryEndpointDTO{
				LocationID:    row.FromLocationID,
				LocationName:  row.FromLocationName,
				WarehouseName: row.FromWarehouseName,
			}
		}
		if row.ToLocationID != "" {
			h.To = &dto.HistoryEndpointDTO{
				LocationID:    row.ToLocationID,
				LocationName:  row.ToLocationName,
				WarehouseName: row.ToWarehouseName,
			}
		}
		data = append(data, h)
	}

	return &dto.MoveHistoryResponse{
		Data: data,
		Pagination: dto.Pagination{
			Page:    page.Page,
			Limit:   page.Limit,
			Total:   total,
			HasMore: page.Offset()+len(rows) < total,
		},
	}, nil
}

// FoldStock recalcula el saldo de (producto, ubicación) plegando todos los
// movimientos del ledger. Herramienta de reconciliación: el resultado debe
// coincidir siempre con el saldo materializado.
func (uc *UseCase) FoldStock(ctx context.Context, productID, locationID string) (decimal.Decimal, error) {
	movements, err := uc.movRepo.ListByProduct(ctx, productID)
	if err != nil {
		return decimal.Zero, err
	}
	balance := decimal.Zero
	for _, mov := range movements {
		if mov.LocationToID == locationID {
			balance = balance.Add(mov.QuantityDelta)
		}
		if mov.LocationFromID == locationID {
			balance = balance.Sub(mov.QuantityDelta)
		}
	}
	return balance, nil
}

// Reconcile contrasta el saldo materializado contra el fold completo del
// ledger para (producto, ubicación) y reporta si están sincronizados.
func (uc *UseCase) Reconcile(ctx context.Context, productID, locationID string) (*dto.ReconciliationDTO, error) {
	if err := uc.requireProduct(ctx, productID); err != nil {
		return nil, err
	}
	level, err := uc.levelRepo.Get(ctx, productID, locationID)
	if err != nil {
		return nil, err
	}
	folded, err := uc.FoldStock(ctx, productID, locationID)
	if err != nil {
		return nil, err
	}
	return &dto.ReconciliationDTO{
		ProductID:    productID,
		LocationID:   locationID,
		Materialized: level.Quantity,
		Folded:       folded,
		InSync:       level.Quantity.Equal(folded),
	}, nil
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

func orExternal(name string) string {
	if name == "" {
		return "External"
	}
	return name
}
