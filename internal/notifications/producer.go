package notifications

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"coachseat/pkg/logger"

	"github.com/IBM/sarama"
)

// ReservationNotifier is told about every successful reservation
type ReservationNotifier interface {
	NotifyReserved(ctx context.Context, event *ReservationEvent) error
	Close() error
}

// KafkaProducerConfig contains configuration for the Kafka reservation producer
type KafkaProducerConfig struct {
	Brokers          []string
	ReservationTopic string
	RetryMax         int
	Timeout          time.Duration
	RequiredAcks     sarama.RequiredAcks
	CompressionType  sarama.CompressionCodec
	IdempotentWrites bool
	MaxMessageBytes  int
}

// DefaultKafkaProducerConfig returns a default producer configuration
func DefaultKafkaProducerConfig() *KafkaProducerConfig {
	return &KafkaProducerConfig{
		Brokers:          []string{"localhost:9092"},
		ReservationTopic: "coach-reservations",
		RetryMax:         3,
		Timeout:          10 * time.Second,
		RequiredAcks:     sarama.WaitForAll,
		CompressionType:  sarama.CompressionSnappy,
		IdempotentWrites: true,
		MaxMessageBytes:  1000000,
	}
}

// KafkaReservationProducer publishes reservation events to Kafka
type KafkaReservationProducer struct {
	producer sarama.SyncProducer
	topic    string
	log      *logger.Logger
}

// NewKafkaReservationProducer dials the brokers and returns a synchronous producer
func NewKafkaReservationProducer(config *KafkaProducerConfig) (*KafkaReservationProducer, error) {
	saramaConfig := sarama.NewConfig()

	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Return.Errors = true
	saramaConfig.Producer.RequiredAcks = config.RequiredAcks
	saramaConfig.Producer.Compression = config.CompressionType
	saramaConfig.Producer.Retry.Max = config.RetryMax
	saramaConfig.Producer.Timeout = config.Timeout
	saramaConfig.Producer.Idempotent = config.IdempotentWrites
	saramaConfig.Producer.MaxMessageBytes = config.MaxMessageBytes
	if config.IdempotentWrites {
		saramaConfig.Net.MaxOpenRequests = 1
	}
	saramaConfig.Producer.Partitioner = sarama.NewHashPartitioner

	producer, err := sarama.NewSyncProducer(config.Brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	logger.GetDefault().Info("Kafka reservation producer created",
		slog.String("brokers", strings.Join(config.Brokers, ",")),
		slog.String("topic", config.ReservationTopic),
	)
	return NewKafkaReservationProducerWith(producer, config.ReservationTopic), nil
}

// NewKafkaReservationProducerWith wraps an existing producer
func NewKafkaReservationProducerWith(producer sarama.SyncProducer, topic string) *KafkaReservationProducer {
	return &KafkaReservationProducer{
		producer: producer,
		topic:    topic,
		log:      logger.GetDefault(),
	}
}

// NotifyReserved publishes a single reservation event
func (p *KafkaReservationProducer) NotifyReserved(ctx context.Context, event *ReservationEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	payload, err := event.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal reservation event: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic:     p.topic,
		Key:       sarama.StringEncoder(event.GetPartitionKey()),
		Value:     sarama.ByteEncoder(payload),
		Headers:   createHeaders(event),
		Timestamp: event.CreatedAt,
	}

	partition, offset, err := p.producer.SendMessage(message)
	if err != nil {
		return fmt.Errorf("failed to send reservation event to Kafka: %w", err)
	}

	p.log.DebugContext(ctx, "Reservation event published",
		slog.String("topic", p.topic),
		slog.Int("partition", int(partition)),
		slog.Int64("offset", offset),
		slog.String("reservation_id", event.ReservationID),
	)
	return nil
}

func createHeaders(event *ReservationEvent) []sarama.RecordHeader {
	return []sarama.RecordHeader{
		{Key: []byte("event_type"), Value: []byte(event.Type)},
		{Key: []byte("reservation_id"), Value: []byte(event.ReservationID)},
		{Key: []byte("coach"), Value: []byte(event.Coach)},
		{Key: []byte("seat_count"), Value: []byte(strconv.Itoa(event.Count))},
		{Key: []byte("producer"), Value: []byte("coachseat")},
		{Key: []byte("created_at"), Value: []byte(event.CreatedAt.Format(time.RFC3339))},
	}
}

// Close closes the Kafka producer
func (p *KafkaReservationProducer) Close() error {
	if p.producer == nil {
		return nil
	}
	if err := p.producer.Close(); err != nil {
		return fmt.Errorf("failed to close Kafka producer: %w", err)
	}
	p.log.Info("Kafka reservation producer closed")
	return nil
}

// LogNotifier writes reservation events to the application log. It is used
// when Kafka is not configured.
type LogNotifier struct {
	log *logger.Logger
}

func NewLogNotifier(l *logger.Logger) *LogNotifier {
	return &LogNotifier{log: l}
}

func (n *LogNotifier) NotifyReserved(ctx context.Context, event *ReservationEvent) error {
	n.log.InfoContext(ctx, "Seats reserved",
		slog.String("reservation_id", event.ReservationID),
		slog.String("coach", event.Coach),
		slog.Any("seats", event.Seats),
		slog.Bool("scattered", event.Scattered),
		slog.Int("available_seats", event.Available),
	)
	return nil
}

func (n *LogNotifier) Close() error { return nil }
