package event

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"
)

const publishMaxRetries = 3

type kafkaMessage struct {
	EventType string       `json:"event_type"`
	Data      PaymentEvent `json:"data"`
}

// KafkaPublisher writes payment success events to the configured topic.
// Writes are retried with backoff; a duplicate write on retry is acceptable
// because delivery is at-least-once.
type KafkaPublisher struct {
	conn *kafka.Conn
}

func CreateKafkaPublisher(conn *kafka.Conn) *KafkaPublisher {
	return &KafkaPublisher{
		conn: conn,
	}
}

func (p *KafkaPublisher) Publish(event PaymentEvent) error {
	msg := kafkaMessage{
		EventType: "payment_completed",
		Data:      event,
	}

	jsonMsg, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal Kafka message: %w", err)
	}

	for i := 0; i < publishMaxRetries; i++ {
		_, err = p.conn.WriteMessages(kafka.Message{
			Key:   []byte(event.PaymentID),
			Value: jsonMsg,
		})
		if err == nil {
			break
		}
		log.Error().Err(err).Str("component", "Publish").Msg("")
		time.Sleep(time.Second * time.Duration(i+1))
	}

	if err != nil {
		return fmt.Errorf("failed to write Kafka message after %d attempts: %w", publishMaxRetries, err)
	}

	log.Info().Str("payment_id", event.PaymentID).Str("component", "Publish").Msg("payment event published")
	return nil
}
