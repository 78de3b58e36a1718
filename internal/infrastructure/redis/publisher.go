package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/stockmaster/stockmaster-api/internal/application/realtime"
)

// EventsChannel canal de pub/sub al que se publican todos los eventos de dominio.
const EventsChannel = "stockmaster:events"

var _ realtime.Sink = (*Publisher)(nil)

// Publisher sink de eventos sobre Redis pub/sub. Los consumidores (frontend
// vía gateway de websockets, otros servicios) se suscriben al canal.
type Publisher struct {
	client *redis.Client
}

// NewPublisher construye el publisher con un cliente ya conectado.
func NewPublisher(client *redis.Client) *Publisher {
	return &Publisher{client: client}
}

// Publish serializa el evento a JSON y lo publica. Sin suscriptores no es un
// error: PUBLISH devuelve 0 receptores y el evento simplemente se pierde.
func (p *Publisher) Publish(ctx context.Context, event realtime.Event) error {
	raw, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event %s: %w", event.Type, err)
	}
	if err := p.client.Publish(ctx, EventsChannel, raw).Err(); err != nil {
		return fmt.Errorf("publish event %s: %w", event.Type, err)
	}
	return nil
}
