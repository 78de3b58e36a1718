// Package analytics calcula los KPIs del dashboard y los resúmenes por
// almacén y categoría, con una caché corta para absorber ráfagas de lectura.
package analytics

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/stockmaster/stockmaster-api/internal/application/dto"
	"github.com/stockmaster/stockmaster-api/internal/domain/entity"
	"github.com/stockmaster/stockmaster-api/internal/domain/repository"
)

const (
	kpisCacheKey = "dashboard:kpis"
	kpisCacheTTL = 60 * time.Second
)

// Cache es el puerto de caché de lecturas. La implementación Redis serializa
// a JSON; un valor ausente se reporta con found=false, nunca con error.
type Cache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

// DashboardUseCase agrega los contadores del dashboard.
type DashboardUseCase struct {
	repo   repository.AnalyticsRepository
	cache  Cache
	logger zerolog.Logger
}

// NewDashboardUseCase construye el caso de uso. cache puede ser nil (sin caché).
func NewDashboardUseCase(repo repository.AnalyticsRepository, cache Cache, logger zerolog.Logger) *DashboardUseCase {
	return &DashboardUseCase{repo: repo, cache: cache, logger: logger}
}

// GetKpis devuelve los KPIs, sirviendo desde caché cuando hay un valor fresco.
func (uc *DashboardUseCase) GetKpis(ctx context.Context) (*dto.DashboardKpisDTO, error) {
	if uc.cache != nil {
		var cached dto.DashboardKpisDTO
		found, err := uc.cache.Get(ctx, kpisCacheKey, &cached)
		if err != nil {
			uc.logger.Warn().Err(err).Msg("fallo leyendo caché de KPIs, recalculando")
		} else if found {
			return &cached, nil
		}
	}
	return uc.computeAndCache(ctx)
}

// RefreshKpis invalida la caché y recalcula. Lo dispara el notificador de
// eventos tras cada cambio relevante.
func (uc *DashboardUseCase) RefreshKpis(ctx context.Context) (*dto.DashboardKpisDTO, error) {
	if uc.cache != nil {
		if err := uc.cache.Del(ctx, kpisCacheKey); err != nil {
			uc.logger.Warn().Err(err).Msg("fallo invalidando caché de KPIs")
		}
	}
	return uc.computeAndCache(ctx)
}

func (uc *DashboardUseCase) computeAndCache(ctx context.Context) (*dto.DashboardKpisDTO, error) {
	totalProducts, err := uc.repo.CountStockedProducts(ctx)
	if err != nil {
		return nil, err
	}
	low, out, err := uc.repo.CountLowAndOutOfStock(ctx)
	if err != nil {
		return nil, err
	}
	pendingReceipts, err := uc.repo.CountPendingOperations(ctx, entity.OperationTypeReceipt)
	if err != nil {
		return nil, err
	}
	pendingDeliveries, err := uc.repo.CountPendingOperations(ctx, entity.OperationTypeDelivery)
	if err != nil {
		return nil, err
	}
	pendingTransfers, err := uc.repo.CountPendingOperations(ctx, entity.OperationTypeTransfer)
	if err != nil {
		return nil, err
	}

	kpis := &dto.DashboardKpisDTO{
		TotalProducts:     totalProducts,
		LowStock:          low,
		OutOfStock:        out,
		PendingReceipts:   pendingReceipts,
		PendingDeliveries: pendingDeliveries,
		PendingTransfers:  pendingTransfers,
	}

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, kpisCacheKey, kpis, kpisCacheTTL); err != nil {
			uc.logger.Warn().Err(err).Msg("fallo escribiendo caché de KPIs")
		}
	}
	return kpis, nil
}

// WarehouseSummaries devuelve ítems y unidades totales por almacén.
func (uc *DashboardUseCase) WarehouseSummaries(ctx context.Context) ([]dto.WarehouseSummaryDTO, error) {
	rows, err := uc.repo.WarehouseSummaries(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.WarehouseSummaryDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, dto.WarehouseSummaryDTO{
			WarehouseID:   row.WarehouseID,
			Name:          row.WarehouseName,
			ShortCode:     row.ShortCode,
			TotalProducts: row.TotalProducts,
			TotalLocation: row.TotalLocation,
			Receipts:      row.Receipts,
			Deliveries:    row.Deliveries,
			Transfers:     row.Transfers,
		})
	}
	return out, nil
}

// CategorySummaries devuelve productos y unidades totales por categoría.
func (uc *DashboardUseCase) CategorySummaries(ctx context.Context) ([]dto.CategorySummaryDTO, error) {
	rows, err := uc.repo.CategorySummaries(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategorySummaryDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, dto.CategorySummaryDTO{
			CategoryID:    row.CategoryID,
			Name:          row.CategoryName,
			TotalProducts: row.TotalProducts,
			TotalStock:    row.TotalStock,
		})
	}
	return out, nil
}
