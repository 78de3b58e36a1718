package operation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockmaster/stockmaster-api/internal/domain"
	"github.com/stockmaster/stockmaster-api/internal/domain/entity"
	"github.com/stockmaster/stockmaster-api/internal/domain/operation"
)

// ──────────────────────────────────────────────────────────────────────────────
// mark_ready
// ──────────────────────────────────────────────────────────────────────────────

func TestNextStatus_MarkReady_RecepcionDesdeDraft(t *testing.T) {
	next, err := operation.NextStatus(entity.OperationTypeReceipt, entity.StatusDraft, operation.ActionMarkReady)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusReady, next)
}

func TestNextStatus_MarkReady_TrasladoDesdeDraft(t *testing.T) {
	next, err := operation.NextStatus(entity.OperationTypeTransfer, entity.StatusDraft, operation.ActionMarkReady)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusReady, next)
}

func TestNextStatus_MarkReady_EntregaDesdeWaiting(t *testing.T) {
	next, err := operation.NextStatus(entity.OperationTypeDelivery, entity.StatusWaiting, operation.ActionMarkReady)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusReady, next)
}

// Las entregas nacen en DRAFT y mark_ready solo las acepta desde WAITING:
// DRAFT + DELIVERY + mark_ready debe rechazarse. Comportamiento intencional.
func TestNextStatus_MarkReady_EntregaDesdeDraftRechazada(t *testing.T) {
	_, err := operation.NextStatus(entity.OperationTypeDelivery, entity.StatusDraft, operation.ActionMarkReady)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestNextStatus_MarkReady_AjusteSiempreRechazado(t *testing.T) {
	for _, status := range []entity.OperationStatus{entity.StatusDraft, entity.StatusWaiting, entity.StatusReady} {
		_, err := operation.NextStatus(entity.OperationTypeAdjustment, status, operation.ActionMarkReady)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition, "ajuste desde %s", status)
	}
}

func TestNextStatus_MarkReady_DesdeDoneRechazado(t *testing.T) {
	_, err := operation.NextStatus(entity.OperationTypeReceipt, entity.StatusDone, operation.ActionMarkReady)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

// ──────────────────────────────────────────────────────────────────────────────
// mark_done
// ──────────────────────────────────────────────────────────────────────────────

func TestNextStatus_MarkDone_DesdeDraftYReady(t *testing.T) {
	for _, opType := range []entity.OperationType{
		entity.OperationTypeReceipt, entity.OperationTypeDelivery,
		entity.OperationTypeTransfer, entity.OperationTypeAdjustment,
	} {
		for _, status := range []entity.OperationStatus{entity.StatusDraft, entity.StatusReady} {
			next, err := operation.NextStatus(opType, status, operation.ActionMarkDone)
			require.NoError(t, err, "%s desde %s", opType, status)
			assert.Equal(t, entity.StatusDone, next)
		}
	}
}

func TestNextStatus_MarkDone_DesdeWaitingRechazado(t *testing.T) {
	_, err := operation.NextStatus(entity.OperationTypeDelivery, entity.StatusWaiting, operation.ActionMarkDone)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestNextStatus_MarkDone_DesdeDoneRechazado(t *testing.T) {
	_, err := operation.NextStatus(entity.OperationTypeReceipt, entity.StatusDone, operation.ActionMarkDone)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestNextStatus_MarkDone_DesdeCanceladaRechazado(t *testing.T) {
	_, err := operation.NextStatus(entity.OperationTypeReceipt, entity.StatusCanceled, operation.ActionMarkDone)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

// ──────────────────────────────────────────────────────────────────────────────
// cancel
// ──────────────────────────────────────────────────────────────────────────────

func TestNextStatus_Cancel_DesdeCualquierEstadoNoTerminal(t *testing.T) {
	for _, status := range []entity.OperationStatus{
		entity.StatusDraft, entity.StatusWaiting, entity.StatusReady, entity.StatusCanceled,
	} {
		next, err := operation.NextStatus(entity.OperationTypeTransfer, status, operation.ActionCancel)
		require.NoError(t, err, "cancel desde %s", status)
		assert.Equal(t, entity.StatusCanceled, next)
	}
}

func TestNextStatus_Cancel_DesdeDoneRechazado(t *testing.T) {
	_, err := operation.NextStatus(entity.OperationTypeTransfer, entity.StatusDone, operation.ActionCancel)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

// ──────────────────────────────────────────────────────────────────────────────
// ParseAction y Commits
// ──────────────────────────────────────────────────────────────────────────────

func TestParseAction_AccionesValidas(t *testing.T) {
	for _, s := range []string{"mark_ready", "mark_done", "cancel"} {
		action, err := operation.ParseAction(s)
		require.NoError(t, err)
		assert.Equal(t, operation.Action(s), action)
	}
}

func TestParseAction_AccionDesconocida(t *testing.T) {
	_, err := operation.ParseAction("archive")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCommits_SoloEntradaADone(t *testing.T) {
	assert.True(t, operation.Commits(entity.StatusDraft, entity.StatusDone))
	assert.True(t, operation.Commits(entity.StatusReady, entity.StatusDone))
	assert.False(t, operation.Commits(entity.StatusDraft, entity.StatusReady))
	assert.False(t, operation.Commits(entity.StatusReady, entity.StatusCanceled))
	assert.False(t, operation.Commits(entity.StatusDone, entity.StatusDone))
}
