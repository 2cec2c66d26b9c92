// Package events publishes borrow activity to Kafka for downstream
// stats consumers. Publishing is best effort: a broker outage must
// never fail a committed ledger operation.
package events

import (
	"encoding/json"
	"time"

	"github.com/IBM/sarama"
	"github.com/lenddesk/inventory-service/pkg/kafka"
	"go.uber.org/zap"
)

type Type string

const (
	TypeBorrowed Type = "borrowed"
	TypeReturned Type = "returned"
	TypeDeleted  Type = "deleted"
)

type BorrowEvent struct {
	Type       Type      `json:"type"`
	RecordUid  string    `json:"record_uid"`
	ItemID     *int      `json:"item_id"`
	Quantity   int       `json:"quantity"`
	OccurredAt time.Time `json:"occurred_at"`
}

type Publisher struct {
	producer sarama.SyncProducer
	log      *zap.Logger
}

// NewPublisher wraps a sarama producer. A nil producer yields a no-op
// publisher, used when no brokers are configured.
func NewPublisher(producer sarama.SyncProducer, log *zap.Logger) *Publisher {
	return &Publisher{
		producer: producer,
		log:      log.Named("events"),
	}
}

func (p *Publisher) Publish(event BorrowEvent) {
	if p.producer == nil {
		return
	}
	value, err := json.Marshal(event)
	if err != nil {
		p.log.Error("marshal event", zap.Error(err))
		return
	}
	_, _, err = p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: kafka.BorrowTopic,
		Key:   sarama.StringEncoder(event.RecordUid),
		Value: sarama.ByteEncoder(value),
	})
	if err != nil {
		p.log.Error("publish event", zap.String("type", string(event.Type)), zap.Error(err))
		return
	}
	p.log.Debug("event published", zap.String("type", string(event.Type)), zap.String("record_uid", event.RecordUid))
}

func (p *Publisher) Close() error {
	if p.producer == nil {
		return nil
	}
	return p.producer.Close()
}
