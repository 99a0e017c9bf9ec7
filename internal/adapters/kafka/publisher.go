package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"cbrbot/internal/domain"

	"github.com/segmentio/kafka-go"
)

// Publisher announces refreshed snapshots on a topic.
type Publisher struct {
	w *kafka.Writer
}

func (p *Publisher) PublishRatesUpdated(ctx context.Context, event domain.RatesUpdatedEvent) error {
	msg, err := encodeEvent(event)
	if err != nil {
		return err
	}
	if err = p.w.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish rates updated event for %q: %w", event.Date, err)
	}
	return nil
}

func (p *Publisher) Close() error {
	return p.w.Close()
}

func encodeEvent(event domain.RatesUpdatedEvent) (kafka.Message, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("failed to marshal rates updated event: %w", err)
	}
	return kafka.Message{Key: []byte(event.Date), Value: payload}, nil
}

// ParseBrokers splits a comma separated broker list, dropping blanks.
func ParseBrokers(raw string) []string {
	parts := strings.Split(raw, ",")
	brokers := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			brokers = append(brokers, p)
		}
	}
	return brokers
}

func NewPublisher(brokers []string, topic string) *Publisher {
	return &Publisher{w: &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}}
}
