// Package publish streams decision records and reversal outcomes to Kafka.
package publish

import (
	"context"
	"encoding/json"
	"time"

	"github.com/huangsam/dealsense/internal/contract"
	"github.com/huangsam/dealsense/schema"
	"github.com/rotisserie/eris"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Message kinds carried in the "kind" header.
const (
	decisionKind = "decision"
	outcomeKind  = "outcome"
)

// messageWriter is the subset of *kafka.Writer the publisher needs.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// decisionEvent is the wire form of a decision record.
type decisionEvent struct {
	RunID     int64           `json:"run_id"`
	Pipeline  schema.Pipeline `json:"pipeline"`
	EntityID  string          `json:"entity_id"`
	DecidedAt time.Time       `json:"decided_at"`
	Label     string          `json:"label"`
	Reason    string          `json:"reason"`
	Score     float64         `json:"score"`
	Secondary float64         `json:"secondary_score"`
	Result    json.RawMessage `json:"result,omitempty"`
}

// KafkaPublisher sends decisions to a single topic keyed by entity ID.
type KafkaPublisher struct {
	writer messageWriter
	topic  string
}

var _ contract.Publisher = &KafkaPublisher{} // Compile-time check

// NewPublisher returns a Kafka publisher, or a no-op publisher when no brokers are given.
func NewPublisher(brokers []string, topic string) contract.Publisher {
	if len(brokers) == 0 {
		return NopPublisher{}
	}
	return newKafkaPublisher(&kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
	}, topic)
}

func newKafkaPublisher(writer messageWriter, topic string) *KafkaPublisher {
	return &KafkaPublisher{writer: writer, topic: topic}
}

// PublishDecisions sends decision records in one batch.
func (p *KafkaPublisher) PublishDecisions(ctx context.Context, records []schema.DecisionRecord) error {
	if len(records) == 0 {
		return nil
	}
	msgs := make([]kafka.Message, 0, len(records))
	for _, r := range records {
		event := decisionEvent{
			RunID:     r.RunID,
			Pipeline:  r.Pipeline,
			EntityID:  r.EntityID,
			DecidedAt: r.DecidedAt,
			Label:     r.Label,
			Reason:    r.Reason,
			Score:     r.Score,
			Secondary: r.Secondary,
		}
		if r.PayloadJSON != "" {
			event.Result = json.RawMessage(r.PayloadJSON)
		}
		data, err := json.Marshal(event)
		if err != nil {
			return eris.Wrapf(err, "failed to encode decision for %s", r.EntityID)
		}
		msgs = append(msgs, kafka.Message{
			Key:   []byte(r.EntityID),
			Value: data,
			Headers: []kafka.Header{
				{Key: "kind", Value: []byte(decisionKind)},
				{Key: "pipeline", Value: []byte(r.Pipeline)},
			},
		})
	}

	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		return eris.Wrapf(err, "failed to publish %d decisions to %s", len(msgs), p.topic)
	}
	zap.L().Debug("Published decisions", zap.String("topic", p.topic), zap.Int("count", len(msgs)))
	return nil
}

// PublishOutcome sends one reversal outcome keyed by deal ID.
func (p *KafkaPublisher) PublishOutcome(ctx context.Context, outcome schema.ReversalOutcome) error {
	data, err := json.Marshal(outcome)
	if err != nil {
		return eris.Wrapf(err, "failed to encode outcome for deal %s", outcome.DealID)
	}
	msg := kafka.Message{
		Key:     []byte(outcome.DealID),
		Value:   data,
		Headers: []kafka.Header{{Key: "kind", Value: []byte(outcomeKind)}},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return eris.Wrapf(err, "failed to publish outcome for deal %s", outcome.DealID)
	}
	zap.L().Debug("Published outcome", zap.String("topic", p.topic), zap.String("deal_id", outcome.DealID))
	return nil
}

// Close flushes pending messages and closes the writer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NopPublisher discards everything. It is used when no brokers are configured.
type NopPublisher struct{}

var _ contract.Publisher = NopPublisher{} // Compile-time check

// PublishDecisions implements the Publisher interface.
func (NopPublisher) PublishDecisions(context.Context, []schema.DecisionRecord) error { return nil }

// PublishOutcome implements the Publisher interface.
func (NopPublisher) PublishOutcome(context.Context, schema.ReversalOutcome) error { return nil }

// Close implements the Publisher interface.
func (NopPublisher) Close() error { return nil }
