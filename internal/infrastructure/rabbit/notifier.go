package rabbit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// routingKey clave de publicación de los eventos de cambio de stock.
const routingKey = "stock.changed"

// Notifier publica eventos de cambio de stock en un exchange topic de
// RabbitMQ, para dashboards en vivo y proyecciones de lectura.
type Notifier struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
}

// stockChangedEvent cuerpo JSON del evento.
type stockChangedEvent struct {
	SKUID      string    `json:"sku_id"`
	MovementID string    `json:"movement_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewNotifier conecta al broker y declara el exchange. Si url está vacío
// devuelve nil, nil: el caller debe caer al notificador nulo.
func NewNotifier(url, exchange string) (*Notifier, error) {
	if url == "" {
		return nil, nil
	}
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("abrir canal: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("declarar exchange: %w", err)
	}
	return &Notifier{conn: conn, ch: ch, exchange: exchange}, nil
}

// StockChanged publica el evento; seguro sobre receptor nil.
func (n *Notifier) StockChanged(ctx context.Context, skuID, movementID string) error {
	if n == nil || n.ch == nil {
		return nil
	}
	body, err := json.Marshal(stockChangedEvent{
		SKUID:      skuID,
		MovementID: movementID,
		OccurredAt: time.Now(),
	})
	if err != nil {
		return fmt.Errorf("serializar evento: %w", err)
	}
	return n.ch.PublishWithContext(ctx, n.exchange, routingKey, false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        body,
		Timestamp:   time.Now(),
	})
}

// Close cierra canal y conexión.
func (n *Notifier) Close() {
	if n == nil {
		return
	}
	if n.ch != nil {
		_ = n.ch.Close()
	}
	if n.conn != nil {
		_ = n.conn.Close()
	}
}
