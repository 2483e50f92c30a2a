// Package events publishes storefront events (contact enquiries) to Kafka.
// With no brokers configured every publish is a no-op.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
)

var ErrDisabled = errors.New("kafka disabled")

type Publisher interface {
	Publish(ctx context.Context, key string, payload any) error
	Enabled() bool
	Close() error
}

// Brokers splits a comma separated broker list, dropping blanks.
func Brokers(csv string) []string {
	brokers := []string{}
	for _, b := range strings.Split(csv, ",") {
		b = strings.TrimSpace(b)
		if b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

// New returns a Kafka publisher for topic, or a no-op one when brokersCSV is empty.
func New(brokersCSV, topic string) Publisher {
	brokers := Brokers(brokersCSV)
	if len(brokers) == 0 || topic == "" {
		return Noop{}
	}
	return &Kafka{
		topic: topic,
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
			WriteTimeout: 5 * time.Second,
		},
	}
}

type Kafka struct {
	topic  string
	writer *kafka.Writer
}

func (k *Kafka) Enabled() bool { return true }

func (k *Kafka) Topic() string { return k.topic }

func (k *Kafka) Publish(ctx context.Context, key string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return k.writer.WriteMessages(ctx, kafka.Message{Key: []byte(key), Value: data, Time: time.Now().UTC()})
}

func (k *Kafka) Close() error { return k.writer.Close() }

type Noop struct{}

func (Noop) Enabled() bool                              { return false }
func (Noop) Publish(context.Context, string, any) error { return ErrDisabled }
func (Noop) Close() error                               { return nil }

// Event is the JSON value written for every published record.
type Event struct {
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurredAt"`
	Data       any       `json:"data"`
}

func NewEvent(typ string, data any) Event {
	return Event{Type: typ, OccurredAt: time.Now().UTC(), Data: data}
}
