package events

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/IBM/sarama"

	"vidscribe/config"
	"vidscribe/types"
)

// ArticleEvent is the message published for every successfully generated
// article.
type ArticleEvent struct {
	RunID            string    `json:"run_id"`
	VideoID          string    `json:"video_id"`
	VideoURL         string    `json:"video_url"`
	Title            string    `json:"title"`
	Tags             []string  `json:"tags,omitempty"`
	ProcessingTimeMs int64     `json:"processing_time_ms"`
	GeneratedAt      time.Time `json:"generated_at"`
}

// Publisher emits article events to Kafka.
type Publisher struct {
	producer sarama.SyncProducer
	topic    string
}

// NewPublisherFromEnv returns a publisher if KAFKA_BROKERS is configured
// (comma-separated broker list). Optional: KAFKA_ARTICLES_TOPIC.
func NewPublisherFromEnv() (*Publisher, error) {
	brokers := strings.TrimSpace(os.Getenv("KAFKA_BROKERS"))
	if brokers == "" {
		return nil, nil
	}

	saramaConfig := sarama.NewConfig()
	saramaConfig.Version = sarama.V3_6_0_0
	saramaConfig.Producer.RequiredAcks = sarama.WaitForLocal
	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Retry.Max = 3

	producer, err := sarama.NewSyncProducer(strings.Split(brokers, ","), saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	topic := os.Getenv("KAFKA_ARTICLES_TOPIC")
	if topic == "" {
		topic = config.ArticlesTopic
	}

	return &Publisher{producer: producer, topic: topic}, nil
}

// PublishResult sends one ArticleEvent built from a successful pipeline
// result. Failed results are skipped.
func (p *Publisher) PublishResult(result *types.PipelineResult) error {
	if result == nil || !result.Success || result.Article == nil {
		return nil
	}

	event := ArticleEvent{
		RunID:            result.RunID,
		Title:            result.Article.Title,
		Tags:             result.Article.Tags,
		ProcessingTimeMs: result.ProcessingTimeMs,
		GeneratedAt:      result.Article.GeneratedAt,
	}
	if result.VideoMetadata != nil {
		event.VideoID = result.VideoMetadata.VideoID
		event.VideoURL = result.VideoMetadata.URL
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	partition, offset, err := p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(event.VideoID),
		Value: sarama.ByteEncoder(data),
	})
	if err != nil {
		return fmt.Errorf("send message: %w", err)
	}

	log.Printf("Published article event for %s (partition=%d offset=%d)", event.VideoID, partition, offset)
	return nil
}

// Close shuts down the underlying producer.
func (p *Publisher) Close() error {
	return p.producer.Close()
}
