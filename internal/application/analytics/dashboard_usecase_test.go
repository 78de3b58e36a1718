package analytics_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockmaster/stockmaster-api/internal/application/analytics"
	"github.com/stockmaster/stockmaster-api/internal/domain/entity"
	"github.com/stockmaster/stockmaster-api/internal/domain/repository"
)

type fakeAnalyticsRepo struct {
	stocked int
	low     int
	out     int
	pending map[entity.OperationType]int
	calls   int
}

func (r *fakeAnalyticsRepo) CountStockedProducts(_ context.Context) (int, error) {
	r.calls++
	return r.stocked, nil
}

func (r *fakeAnalyticsRepo) CountPendingOperations(_ context.Context, opType entity.OperationType) (int, error) {
	return r.pending[opType], nil
}

func (r *fakeAnalyticsRepo) CountLowAndOutOfStock(_ context.Context) (int, int, error) {
	return r.low, r.out, nil
}

func (r *fakeAnalyticsRepo) WarehouseSummaries(_ context.Context) ([]repository.WarehouseSummaryRow, error) {
	return nil, nil
}

func (r *fakeAnalyticsRepo) CategorySummaries(_ context.Context) ([]repository.CategorySummaryRow, error) {
	return nil, nil
}

// fakeCache caché en memoria con los mismos contratos que la de Redis:
// serializa a JSON y puede simular fallos.
type fakeCache struct {
	entries map[string][]byte
	fail    bool
}

func newFakeCache() *fakeCache { return &fakeCache{entries: make(map[string][]byte)} }

func (c *fakeCache) Get(_ context.Context, key string, dest any) (bool, error) {
	if c.fail {
		return false, errors.New("caché caída")
	}
	raw, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (c *fakeCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	if c.fail {
		return errors.New("caché caída")
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.entries[key] = raw
	return nil
}

func (c *fakeCache) Del(_ context.Context, key string) error {
	if c.fail {
		return errors.New("caché caída")
	}
	delete(c.entries, key)
	return nil
}

func testRepo() *fakeAnalyticsRepo {
	return &fakeAnalyticsRepo{
		stocked: 40,
		low:     3,
		out:     1,
		pending: map[entity.OperationType]int{
			entity.OperationTypeReceipt:  2,
			entity.OperationTypeDelivery: 5,
			entity.OperationTypeTransfer: 1,
		},
	}
}

func TestGetKpis_CalculaYSirveDesdeCache(t *testing.T) {
	repo := testRepo()
	cache := newFakeCache()
	uc := analytics.NewDashboardUseCase(repo, cache, zerolog.Nop())
	ctx := context.Background()

	kpis, err := uc.GetKpis(ctx)
	require.NoError(t, err)
	assert.Equal(t, 40, kpis.TotalProducts)
	assert.Equal(t, 3, kpis.LowStock)
	assert.Equal(t, 1, kpis.OutOfStock)
	assert.Equal(t, 5, kpis.PendingDeliveries)
	assert.Equal(t, 1, repo.calls)

	// Segunda lectura: viene de la caché, sin tocar la DB.
	repo.stocked = 99
	again, err := uc.GetKpis(ctx)
	require.NoError(t, err)
	assert.Equal(t, 40, again.TotalProducts)
	assert.Equal(t, 1, repo.calls, "el valor cacheado evita recalcular")
}

func TestRefreshKpis_InvalidaYRecalcula(t *testing.T) {
	repo := testRepo()
	cache := newFakeCache()
	uc := analytics.NewDashboardUseCase(repo, cache, zerolog.Nop())
	ctx := context.Background()

	_, err := uc.GetKpis(ctx)
	require.NoError(t, err)

	repo.stocked = 41
	kpis, err := uc.RefreshKpis(ctx)
	require.NoError(t, err)
	assert.Equal(t, 41, kpis.TotalProducts, "refresh siempre recalcula")

	cached, err := uc.GetKpis(ctx)
	require.NoError(t, err)
	assert.Equal(t, 41, cached.TotalProducts, "la caché queda con el valor nuevo")
}

func TestGetKpis_CacheCaidaNoEsFatal(t *testing.T) {
	repo := testRepo()
	cache := newFakeCache()
	cache.fail = true
	uc := analytics.NewDashboardUseCase(repo, cache, zerolog.Nop())

	kpis, err := uc.GetKpis(context.Background())
	require.NoError(t, err, "un fallo de caché degrada a recalcular, nunca a error")
	assert.Equal(t, 40, kpis.TotalProducts)
}

func TestGetKpis_SinCache(t *testing.T) {
	repo := testRepo()
	uc := analytics.NewDashboardUseCase(repo, nil, zerolog.Nop())

	kpis, err := uc.GetKpis(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 40, kpis.TotalProducts)

	_, err = uc.GetKpis(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, repo.calls, "sin caché cada lectura recalcula")
}
