package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nsqio/go-nsq"
)

// Publisher публикует события бронирований в NSQ
type Publisher struct {
	transport Transport
	topic     string
	log       Logger
}

// NewNSQPublisher подключается к nsqd и проверяет соединение
func NewNSQPublisher(address, topic string, log Logger) (*Publisher, error) {
	producer, err := nsq.NewProducer(address, nsq.NewConfig())
	if err != nil {
		return nil, fmt.Errorf("%w: NewNSQPublisher - create producer: %v", ErrConnect, err)
	}

	if err := producer.Ping(); err != nil {
		producer.Stop()
		return nil, fmt.Errorf("%w: NewNSQPublisher - ping nsqd %s: %v", ErrConnect, address, err)
	}

	return NewPublisher(producer, topic, log), nil
}

// NewPublisher создает publisher поверх произвольного транспорта
func NewPublisher(transport Transport, topic string, log Logger) *Publisher {
	return &Publisher{
		transport: transport,
		topic:     topic,
		log:       log,
	}
}

// Publish сериализует событие в JSON и отправляет его в топик
func (p *Publisher) Publish(ctx context.Context, event Event) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: Publish - %v", ErrPublish, err)
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: Publish - marshal %s: %v", ErrEncode, event.Type, err)
	}

	if err := p.transport.Publish(p.topic, body); err != nil {
		p.log.Error("Publish: failed to publish event, type=%s, booking_id=%s, error=%v", event.Type, event.BookingID, err)
		return fmt.Errorf("%w: Publish - topic %s: %v", ErrPublish, p.topic, err)
	}

	p.log.Info("Publish: event published, type=%s, booking_id=%s, topic=%s", event.Type, event.BookingID, p.topic)
	return nil
}

// Close останавливает producer
func (p *Publisher) Close() {
	p.transport.Stop()
}

// NopPublisher используется, когда брокер не настроен
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }

func (NopPublisher) Close() {}
