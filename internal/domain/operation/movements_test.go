package operation_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockmaster/stockmaster-api/internal/domain"
	"github.com/stockmaster/stockmaster-api/internal/domain/entity"
	"github.com/stockmaster/stockmaster-api/internal/domain/operation"
)

func opWithItems(opType entity.OperationType, quantities ...int64) *entity.Operation {
	op := &entity.Operation{
		ID:             "op-1",
		Type:           opType,
		LocationFromID: "loc-from",
		LocationToID:   "loc-to",
	}
	for i, q := range quantities {
		op.Items = append(op.Items, entity.OperationItem{
			ID:        "item-" + string(rune('a'+i)),
			ProductID: "prod-" + string(rune('a'+i)),
			Quantity:  decimal.NewFromInt(q),
		})
	}
	return op
}

func TestBuildMovements_RecepcionSoloDestino(t *testing.T) {
	now := time.Now()
	movs, err := operation.BuildMovements(opWithItems(entity.OperationTypeReceipt, 5, 3), now)
	require.NoError(t, err)
	require.Len(t, movs, 2, "un movimiento por línea")

	for _, m := range movs {
		assert.Empty(t, m.LocationFromID, "recepción: sin origen (exterior)")
		assert.Equal(t, "loc-to", m.LocationToID)
		assert.Equal(t, entity.OperationTypeReceipt, m.MovementType)
		assert.Equal(t, "op-1", m.OperationID)
		assert.Equal(t, now, m.CreatedAt)
	}
	assert.True(t, movs[0].QuantityDelta.Equal(decimal.NewFromInt(5)))
	assert.True(t, movs[1].QuantityDelta.Equal(decimal.NewFromInt(3)))
}

func TestBuildMovements_EntregaSoloOrigen(t *testing.T) {
	movs, err := operation.BuildMovements(opWithItems(entity.OperationTypeDelivery, 2), time.Now())
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, "loc-from", movs[0].LocationFromID)
	assert.Empty(t, movs[0].LocationToID, "entrega: sin destino (exterior)")
}

func TestBuildMovements_TrasladoAmbosExtremos(t *testing.T) {
	movs, err := operation.BuildMovements(opWithItems(entity.OperationTypeTransfer, 4), time.Now())
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, "loc-from", movs[0].LocationFromID)
	assert.Equal(t, "loc-to", movs[0].LocationToID)
}

func TestBuildMovements_AjusteSoloDestino(t *testing.T) {
	movs, err := operation.BuildMovements(opWithItems(entity.OperationTypeAdjustment, 6), time.Now())
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Empty(t, movs[0].LocationFromID)
	assert.Equal(t, "loc-to", movs[0].LocationToID)
}

func TestBuildMovements_TipoDesconocido(t *testing.T) {
	_, err := operation.BuildMovements(opWithItems(entity.OperationType("RETURN"), 1), time.Now())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestBuildMovements_SiempreAlMenosUnExtremo(t *testing.T) {
	types := []entity.OperationType{
		entity.OperationTypeReceipt,
		entity.OperationTypeDelivery,
		entity.OperationTypeTransfer,
		entity.OperationTypeAdjustment,
	}
	for _, opType := range types {
		movs, err := operation.BuildMovements(opWithItems(opType, 1, 2), time.Now())
		require.NoError(t, err)
		for _, mov := range movs {
			assert.True(t, mov.LocationFromID != "" || mov.LocationToID != "",
				"%s: un movimiento sin origen ni destino no significa nada", opType)
		}
	}
}

func TestBuildMovements_SinLineas(t *testing.T) {
	movs, err := operation.BuildMovements(opWithItems(entity.OperationTypeReceipt), time.Now())
	require.NoError(t, err)
	assert.Empty(t, movs)
}
