// Package realtime implementa el notificador de eventos de dominio: una cola
// en memoria drenada por una goroutine que entrega cada evento a un sink
// externo (Redis pub/sub) y dispara el recálculo de KPIs. Todo best-effort:
// los cambios de datos ya están confirmados cuando los eventos se encolan.
package realtime

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stockmaster/stockmaster-api/internal/domain/entity"
)

// ─────────────────────────────────────────────────────────────────────────────
// Eventos
// ─────────────────────────────────────────────────────────────────────────────

const (
	EventOperationCreated       = "operation.created"
	EventOperationUpdated       = "operation.updated"
	EventOperationStatusChanged = "operation.statusChanged"
	EventStockLevelChanged      = "stock.levelChanged"
	EventDashboardKpisUpdated   = "dashboard.kpisUpdated"
)

// Event un evento de dominio listo para publicar.
type Event struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// Sink destino externo de eventos (pub/sub). Un error se loguea y se descarta.
type Sink interface {
	Publish(ctx context.Context, event Event) error
}

// KPISource recalcula los KPIs del dashboard tras cada evento; el notificador
// publica el resultado como dashboard.kpisUpdated.
type KPISource interface {
	RefreshKpis(ctx context.Context) (any, error)
}

// KPISourceFunc adapta una función como KPISource.
type KPISourceFunc func(ctx context.Context) (any, error)

// RefreshKpis implementa KPISource.
func (f KPISourceFunc) RefreshKpis(ctx context.Context) (any, error) { return f(ctx) }

// ─────────────────────────────────────────────────────────────────────────────
// Notifier
// ─────────────────────────────────────────────────────────────────────────────

const defaultQueueSize = 256

// Notifier encola eventos sin bloquear y los drena en una goroutine propia.
// Implementa operations.EventPublisher.
type Notifier struct {
	queue      chan Event
	sink       Sink
	kpiSource  KPISource
	logger     zerolog.Logger
	publishTTL time.Duration
}

// NewNotifier construye el notificador. sink y kpiSource pueden ser nil.
func NewNotifier(sink Sink, kpiSource KPISource, logger zerolog.Logger) *Notifier {
	return &Notifier{
		queue:      make(chan Event, defaultQueueSize),
		sink:       sink,
		kpiSource:  kpiSource,
		logger:     logger,
		publishTTL: 5 * time.Second,
	}
}

// Run drena la cola hasta que el contexto se cancele. Debe ejecutarse en su
// propia goroutine.
func (n *Notifier) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event := <-n.queue:
			n.deliver(ctx, event)
			n.refreshKpis(ctx)
		}
	}
}

func (n *Notifier) deliver(ctx context.Context, event Event) {
	if n.sink == nil {
		return
	}
	pubCtx, cancel := context.WithTimeout(ctx, n.publishTTL)
	defer cancel()
	if err := n.sink.Publish(pubCtx, event); err != nil {
		n.logger.Warn().Err(err).Str("event", event.Type).Msg("fallo publicando evento, se descarta")
	}
}

func (n *Notifier) refreshKpis(ctx context.Context) {
	if n.kpiSource == nil {
		return
	}
	kpis, err := n.kpiSource.RefreshKpis(ctx)
	if err != nil {
		n.logger.Warn().Err(err).Msg("fallo recalculando KPIs tras evento")
		return
	}
	n.deliver(ctx, Event{Type: EventDashboardKpisUpdated, Payload: kpis})
}

// enqueue no bloquea nunca: con la cola llena, el evento se descarta con warn.
func (n *Notifier) enqueue(event Event) {
	select {
	case n.queue <- event:
	default:
		n.logger.Warn().Str("event", event.Type).Msg("cola de eventos llena, evento descartado")
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// operations.EventPublisher
// ─────────────────────────────────────────────────────────────────────────────

func (n *Notifier) OperationCreated(op *entity.Operation) {
	n.enqueue(Event{Type: EventOperationCreated, Payload: operationPayload(op)})
}

func (n *Notifier) OperationUpdated(op *entity.Operation) {
	n.enqueue(Event{Type: EventOperationUpdated, Payload: operationPayload(op)})
}

func (n *Notifier) OperationStatusChanged(operationID string, oldStatus, newStatus entity.OperationStatus) {
	n.enqueue(Event{Type: EventOperationStatusChanged, Payload: map[string]any{
		"operationId": operationID,
		"oldStatus":   string(oldStatus),
		"newStatus":   string(newStatus),
	}})
}

func (n *Notifier) StockLevelChanged(productID, locationID string, newQty decimal.Decimal) {
	n.enqueue(Event{Type: EventStockLevelChanged, Payload: map[string]any{
		"productId":  productID,
		"locationId": locationID,
		"newQty":     newQty,
	}})
}

func operationPayload(op *entity.Operation) map[string]any {
	return map[string]any{
		"operationId": op.ID,
		"type":        string(op.Type),
		"status":      string(op.Status),
		"reference":   op.Reference,
	}
}
