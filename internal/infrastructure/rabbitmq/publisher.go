package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/jhoicas/wms-ledger/internal/application/inventory"
	"github.com/jhoicas/wms-ledger/internal/domain/entity"
)

var _ inventory.EventPublisher = (*Publisher)(nil)

// Channel lo que el publicador necesita de *amqp.Channel.
type Channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// Publisher publica eventos como JSON con routing key "inventory.<tipo>" (p. ej. inventory.order.committed).
type Publisher struct {
	mu       sync.Mutex
	ch       Channel
	exchange string
	appID    string
}

// NewPublisher construye el publicador sobre un canal con el exchange ya declarado.
func NewPublisher(ch Channel, exchange, appID string) *Publisher {
	return &Publisher{ch: ch, exchange: exchange, appID: appID}
}

type locationMessage struct {
	WarehouseID int64 `json:"warehouse_id"`
	BinID       int64 `json:"bin_id"`
}

type movementMessage struct {
	ID        int64            `json:"id"`
	Kind      string           `json:"kind"`
	ProductID int64            `json:"product_id"`
	From      *locationMessage `json:"from,omitempty"`
	To        *locationMessage `json:"to,omitempty"`
	Quantity  int64            `json:"quantity"`
	Reference *string          `json:"reference,omitempty"`
}

type eventMessage struct {
	Type          string            `json:"type"`
	TransactionID string            `json:"transaction_id"`
	OrderID       *string           `json:"order_id,omitempty"`
	OccurredAt    time.Time         `json:"occurred_at"`
	Movements     []movementMessage `json:"movements"`
}

func toLocationMessage(l *entity.Location) *locationMessage {
	if l == nil {
		return nil
	}
	return &locationMessage{WarehouseID: l.WarehouseID, BinID: l.BinID}
}

// RoutingKey clave de enrutamiento del evento.
func RoutingKey(eventType string) string {
	return "inventory." + eventType
}

func (p *Publisher) Publish(ctx context.Context, event entity.LedgerEvent) error {
	msg := eventMessage{
		Type:          event.Type,
		TransactionID: event.TransactionID,
		OrderID:       event.OrderID,
		OccurredAt:    event.OccurredAt,
		Movements:     make([]movementMessage, len(event.Movements)),
	}
	for i := range event.Movements {
		m := &event.Movements[i]
		msg.Movements[i] = movementMessage{
			ID:        m.ID,
			Kind:      m.Kind(),
			ProductID: m.ProductID,
			From:      toLocationMessage(m.From),
			To:        toLocationMessage(m.To),
			Quantity:  m.Quantity,
			Reference: m.Reference,
		}
	}
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("could not marshal event: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	err = p.ch.PublishWithContext(ctx,
		p.exchange,             // exchange
		RoutingKey(event.Type), // routing key
		false,                  // mandatory
		false,                  // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    event.TransactionID,
			Timestamp:    event.OccurredAt,
			Type:         event.Type,
			AppId:        p.appID,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish %s: %w", event.Type, err)
	}
	return nil
}
