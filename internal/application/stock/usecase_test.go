package stock_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockmaster/stockmaster-api/internal/application/dto"
	"github.com/stockmaster/stockmaster-api/internal/application/stock"
	"github.com/stockmaster/stockmaster-api/internal/domain"
	"github.com/stockmaster/stockmaster-api/internal/domain/entity"
	"github.com/stockmaster/stockmaster-api/internal/domain/repository"
)

func qty(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// ─────────────────────────────────────────────────────────────────────────────
// Fakes de lectura: el caso de uso de stock solo consulta.
// ─────────────────────────────────────────────────────────────────────────────

type fakeMovementRepo struct {
	movements []*entity.StockMovement
	ledger    []repository.ProductLedgerRow
	history   []repository.MovementHistoryRow
	total     int
}

func (r *fakeMovementRepo) CreateBatch(_ context.Context, _ []*entity.StockMovement) error {
	return nil
}

func (r *fakeMovementRepo) ListByProduct(_ context.Context, productID string) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, mov := range r.movements {
		if mov.ProductID == productID {
			out = append(out, mov)
		}
	}
	return out, nil
}

func (r *fakeMovementRepo) ProductLedger(_ context.Context, _ string) ([]repository.ProductLedgerRow, error) {
	return r.ledger, nil
}

func (r *fakeMovementRepo) History(_ context.Context, _ repository.HistoryFilters, limit, offset int) ([]repository.MovementHistoryRow, error) {
	if offset >= len(r.history) {
		return nil, nil
	}
	end := offset + limit
	if end > len(r.history) {
		end = len(r.history)
	}
	return r.history[offset:end], nil
}

func (r *fakeMovementRepo) CountHistory(_ context.Context, _ repository.HistoryFilters) (int, error) {
	return r.total, nil
}

type fakeLevelRepo struct {
	levels          map[string]decimal.Decimal // productID|locationID
	warehouseTotals map[string]decimal.Decimal // productID|warehouseID
	totals          []repository.ProductTotal
}

func (r *fakeLevelRepo) Get(_ context.Context, productID, locationID string) (*entity.StockLevel, error) {
	return &entity.StockLevel{
		ProductID:  productID,
		LocationID: locationID,
		Quantity:   r.levels[productID+"|"+locationID],
	}, nil
}

func (r *fakeLevelRepo) ApplyDelta(_ context.Context, _, _ string, _ decimal.Decimal) error {
	return nil
}

func (r *fakeLevelRepo) SumByProduct(_ context.Context, productID string) (decimal.Decimal, error) {
	for _, t := range r.totals {
		if t.ProductID == productID {
			return t.Total, nil
		}
	}
	return decimal.Zero, nil
}

func (r *fakeLevelRepo) SumByProductAndWarehouse(_ context.Context, productID, warehouseID string) (decimal.Decimal, error) {
	return r.warehouseTotals[productID+"|"+warehouseID], nil
}

func (r *fakeLevelRepo) ProductTotals(_ context.Context) ([]repository.ProductTotal, error) {
	return r.totals, nil
}

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func (r *fakeProductRepo) Create(_ context.Context, _ *entity.Product) error { return nil }
func (r *fakeProductRepo) Update(_ context.Context, _ *entity.Product) error { return nil }
func (r *fakeProductRepo) Delete(_ context.Context, _ string) error          { return nil }

func (r *fakeProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	return r.products[id], nil
}

func (r *fakeProductRepo) GetBySKU(_ context.Context, _ string) (*entity.Product, error) {
	return nil, nil
}

func (r *fakeProductRepo) List(_ context.Context, _, _ int) ([]*entity.Product, error) {
	return nil, nil
}

func (r *fakeProductRepo) ListActiveWithReorderLevel(_ context.Context) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.products {
		if p.IsActive && p.ReorderLevel.GreaterThan(decimal.Zero) {
			out = append(out, p)
		}
	}
	return out, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Saldo por ámbito
// ─────────────────────────────────────────────────────────────────────────────

func TestStockAt_TresAmbitos(t *testing.T) {
	products := &fakeProductRepo{products: map[string]*entity.Product{
		"prod-1": {ID: "prod-1", SKU: "TOR-001", IsActive: true},
	}}
	levels := &fakeLevelRepo{
		levels:          map[string]decimal.Decimal{"prod-1|loc-a": qty("4")},
		warehouseTotals: map[string]decimal.Decimal{"prod-1|wh-1": qty("9")},
		totals:          []repository.ProductTotal{{ProductID: "prod-1", Total: qty("12")}},
	}
	uc := stock.NewUseCase(&fakeMovementRepo{}, levels, products)
	ctx := context.Background()

	byLocation, err := uc.StockAt(ctx, "prod-1", "loc-a", "")
	require.NoError(t, err)
	assert.True(t, byLocation.Quantity.Equal(qty("4")))
	assert.Equal(t, "loc-a", byLocation.LocationID)

	byWarehouse, err := uc.StockAt(ctx, "prod-1", "", "wh-1")
	require.NoError(t, err)
	assert.True(t, byWarehouse.Quantity.Equal(qty("9")))

	system, err := uc.StockAt(ctx, "prod-1", "", "")
	require.NoError(t, err)
	assert.True(t, system.Quantity.Equal(qty("12")))

	// La ubicación manda sobre el almacén si vienen ambos.
	both, err := uc.StockAt(ctx, "prod-1", "loc-a", "wh-1")
	require.NoError(t, err)
	assert.True(t, both.Quantity.Equal(qty("4")))

	_, err = uc.StockAt(ctx, "prod-nope", "", "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStockAt_SinMovimientosEsCero(t *testing.T) {
	products := &fakeProductRepo{products: map[string]*entity.Product{
		"prod-1": {ID: "prod-1", IsActive: true},
	}}
	uc := stock.NewUseCase(&fakeMovementRepo{}, &fakeLevelRepo{levels: map[string]decimal.Decimal{}}, products)

	resp, err := uc.StockAt(context.Background(), "prod-1", "loc-x", "")
	require.NoError(t, err)
	assert.True(t, resp.Quantity.IsZero())
}

// ─────────────────────────────────────────────────────────────────────────────
// Stock bajo
// ─────────────────────────────────────────────────────────────────────────────

func TestLowStock_UmbralYAgotados(t *testing.T) {
	products := &fakeProductRepo{products: map[string]*entity.Product{
		"prod-justo":   {ID: "prod-justo", SKU: "A-1", Name: "Justo en umbral", ReorderLevel: qty("10"), IsActive: true},
		"prod-agotado": {ID: "prod-agotado", SKU: "A-2", Name: "Sin registro", ReorderLevel: qty("5"), IsActive: true},
		"prod-sano":    {ID: "prod-sano", SKU: "A-3", Name: "Sobre umbral", ReorderLevel: qty("5"), IsActive: true},
		"prod-sin-umbral": {
			ID: "prod-sin-umbral", SKU: "A-4", Name: "Sin umbral", ReorderLevel: qty("0"), IsActive: true,
		},
	}}
	levels := &fakeLevelRepo{totals: []repository.ProductTotal{
		{ProductID: "prod-justo", Total: qty("10")},
		{ProductID: "prod-sano", Total: qty("6")},
	}}
	uc := stock.NewUseCase(&fakeMovementRepo{}, levels, products)

	low, err := uc.LowStock(context.Background())
	require.NoError(t, err)

	byID := make(map[string]dto.LowStockProductDTO, len(low))
	for _, p := range low {
		byID[p.ProductID] = p
	}

	require.Len(t, low, 2)
	justo, ok := byID["prod-justo"]
	require.True(t, ok, "stock igual al umbral cuenta como bajo")
	assert.False(t, justo.OutOfStock)
	assert.True(t, justo.CurrentStock.Equal(qty("10")))

	agotado, ok := byID["prod-agotado"]
	require.True(t, ok, "producto sin saldo registrado cuenta como agotado")
	assert.True(t, agotado.OutOfStock)
	assert.True(t, agotado.CurrentStock.IsZero())

	assert.NotContains(t, byID, "prod-sano")
	assert.NotContains(t, byID, "prod-sin-umbral")
}

// ─────────────────────────────────────────────────────────────────────────────
// Libro del producto
// ─────────────────────────────────────────────────────────────────────────────

func TestProductLedger_SaldoAcumuladoYExternos(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	products := &fakeProductRepo{products: map[string]*entity.Product{
		"prod-1": {ID: "prod-1", IsActive: true},
	}}
	movs := &fakeMovementRepo{ledger: []repository.ProductLedgerRow{
		{
			MovementID: "mov-1", CreatedAt: base, Reference: "WH/IN/0001",
			MovementType: entity.OperationTypeReceipt, OperationStatus: entity.StatusDone,
			ToLocationID: "loc-a", ToLocationName: "Estantería A",
			QuantityDelta: qty("5"),
		},
		{
			MovementID: "mov-2", CreatedAt: base.Add(time.Hour), Reference: "WH/INT/0001",
			MovementType: entity.OperationTypeTransfer, OperationStatus: entity.StatusDone,
			FromLocationID: "loc-a", FromLocationName: "Estantería A",
			ToLocationID: "loc-b", ToLocationName: "Estantería B",
			QuantityDelta: qty("2"),
		},
		{
			MovementID: "mov-3", CreatedAt: base.Add(2 * time.Hour), Reference: "WH/OUT/0001",
			MovementType: entity.OperationTypeDelivery, OperationStatus: entity.StatusDone,
			FromLocationID: "loc-b", FromLocationName: "Estantería B",
			QuantityDelta: qty("1"),
		},
	}}
	uc := stock.NewUseCase(movs, &fakeLevelRepo{}, products)

	resp, err := uc.ProductLedger(context.Background(), "prod-1")
	require.NoError(t, err)
	require.Len(t, resp.Ledger, 3)

	// Más recientes primero: la salida encabeza el libro.
	salida := resp.Ledger[0]
	assert.Equal(t, "mov-3", salida.MovementID)
	assert.Equal(t, "External", salida.To, "la salida termina en el exterior")
	assert.True(t, salida.BalanceChange.Equal(qty("-1")))
	assert.True(t, salida.RunningBalance.Equal(qty("4")))

	traslado := resp.Ledger[1]
	assert.True(t, traslado.BalanceChange.IsZero(), "un traslado no cambia el total del producto")
	assert.True(t, traslado.RunningBalance.Equal(qty("5")))
	assert.Equal(t, "Estantería A", traslado.From)
	assert.Equal(t, "Estantería B", traslado.To)

	entrada := resp.Ledger[2]
	assert.Equal(t, "External", entrada.From, "la entrada viene del exterior")
	assert.True(t, entrada.BalanceChange.Equal(qty("5")))
	assert.True(t, entrada.RunningBalance.Equal(qty("5")))
}

// ─────────────────────────────────────────────────────────────────────────────
// Historial paginado
// ─────────────────────────────────────────────────────────────────────────────

func TestMoveHistory_PaginacionYExtremos(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	rows := []repository.MovementHistoryRow{
		{
			MovementID: "mov-2", Reference: "WH/INT/0001", Date: base.Add(time.Hour),
			MovementType: entity.OperationTypeTransfer, OperationStatus: entity.StatusDone,
			ProductID: "prod-1", ProductSKU: "TOR-001", ProductName: "Tornillo",
			FromLocationID: "loc-a", FromLocationName: "Estantería A", FromWarehouseName: "Central",
			ToLocationID: "loc-b", ToLocationName: "Estantería B", ToWarehouseName: "Central",
			Quantity: qty("2"),
		},
		{
			MovementID: "mov-1", Reference: "WH/IN/0001", Date: base,
			MovementType: entity.OperationTypeReceipt, OperationStatus: entity.StatusDone,
			ProductID: "prod-1", ProductSKU: "TOR-001", ProductName: "Tornillo",
			ToLocationID: "loc-a", ToLocationName: "Estantería A", ToWarehouseName: "Central",
			Quantity: qty("5"), ContactName: "Proveedor Norte",
		},
	}
	movs := &fakeMovementRepo{history: rows, total: 5}
	uc := stock.NewUseCase(movs, &fakeLevelRepo{}, &fakeProductRepo{})

	resp, err := uc.MoveHistory(context.Background(), repository.HistoryFilters{}, dto.PageRequest{Page: 1, Limit: 2})
	require.NoError(t, err)
	require.Len(t, resp.Data, 2)
	assert.Equal(t, 5, resp.Pagination.Total)
	assert.True(t, resp.Pagination.HasMore)

	traslado := resp.Data[0]
	require.NotNil(t, traslado.From)
	require.NotNil(t, traslado.To)
	assert.Equal(t, "Estantería A", traslado.From.LocationName)
	assert.Equal(t, "Central", traslado.To.WarehouseName)

	entrada := resp.Data[1]
	assert.Nil(t, entrada.From, "origen externo: sin extremo")
	require.NotNil(t, entrada.To)
	assert.Equal(t, "Proveedor Norte", entrada.ContactName)
}

// ─────────────────────────────────────────────────────────────────────────────
// Fold y reconciliación
// ─────────────────────────────────────────────────────────────────────────────

func ledgerMovements() []*entity.StockMovement {
	return []*entity.StockMovement{
		{ID: "mov-1", ProductID: "prod-1", LocationToID: "loc-a", QuantityDelta: qty("5"), MovementType: entity.OperationTypeReceipt},
		{ID: "mov-2", ProductID: "prod-1", LocationFromID: "loc-a", LocationToID: "loc-b", QuantityDelta: qty("2"), MovementType: entity.OperationTypeTransfer},
		{ID: "mov-3", ProductID: "prod-1", LocationFromID: "loc-a", QuantityDelta: qty("1"), MovementType: entity.OperationTypeDelivery},
		{ID: "mov-4", ProductID: "prod-2", LocationToID: "loc-a", QuantityDelta: qty("7"), MovementType: entity.OperationTypeReceipt},
	}
}

func TestFoldStock_PliegaSoloElProductoYUbicacion(t *testing.T) {
	movs := &fakeMovementRepo{movements: ledgerMovements()}
	uc := stock.NewUseCase(movs, &fakeLevelRepo{}, &fakeProductRepo{})
	ctx := context.Background()

	enA, err := uc.FoldStock(ctx, "prod-1", "loc-a")
	require.NoError(t, err)
	assert.True(t, enA.Equal(qty("2")), "5 entrada - 2 traslado - 1 salida")

	enB, err := uc.FoldStock(ctx, "prod-1", "loc-b")
	require.NoError(t, err)
	assert.True(t, enB.Equal(qty("2")))

	otro, err := uc.FoldStock(ctx, "prod-2", "loc-a")
	require.NoError(t, err)
	assert.True(t, otro.Equal(qty("7")), "los movimientos de otros productos no se mezclan")
}

func TestReconcile_DetectaDesviaciones(t *testing.T) {
	products := &fakeProductRepo{products: map[string]*entity.Product{
		"prod-1": {ID: "prod-1", IsActive: true},
	}}
	movs := &fakeMovementRepo{movements: ledgerMovements()}

	sano := &fakeLevelRepo{levels: map[string]decimal.Decimal{"prod-1|loc-a": qty("2")}}
	uc := stock.NewUseCase(movs, sano, products)
	rec, err := uc.Reconcile(context.Background(), "prod-1", "loc-a")
	require.NoError(t, err)
	assert.True(t, rec.InSync, "materializado y plegado deben coincidir")
	assert.True(t, rec.Materialized.Equal(rec.Folded))

	desviado := &fakeLevelRepo{levels: map[string]decimal.Decimal{"prod-1|loc-a": qty("3")}}
	uc = stock.NewUseCase(movs, desviado, products)
	rec, err = uc.Reconcile(context.Background(), "prod-1", "loc-a")
	require.NoError(t, err)
	assert.False(t, rec.InSync)
	assert.True(t, rec.Materialized.Equal(qty("3")))
	assert.True(t, rec.Folded.Equal(qty("2")))
}
