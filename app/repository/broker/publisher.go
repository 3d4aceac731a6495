package broker

import (
	"book-service/app/domain"
	"book-service/config"
	"context"
	"encoding/json"
	"log/slog"
	"strconv"

	"github.com/segmentio/kafka-go"
)

type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// NewCatalogWriter builds the writer for topic_catalog. Writes are
// synchronous: WriteMessages returns only after the broker acknowledges,
// so the calling request waits for delivery confirmation.
func NewCatalogWriter(cfg config.KafkaConfig) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(cfg.BrokerList()...),
		Topic:        cfg.CatalogTopic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireAll,
	}
}

type bookEventPublisher struct {
	writer MessageWriter
}

func NewBookEventPublisher(writer MessageWriter) domain.BookEventPublisher {
	return &bookEventPublisher{
		writer: writer,
	}
}

func (p *bookEventPublisher) PublishBookChanged(ctx context.Context, event domain.BookChanged) error {
	msg, err := json.Marshal(event)
	if err != nil {
		slog.ErrorContext(ctx, "[bookEventPublisher] PublishBookChanged", "json.Marshal", err)
		return err
	}

	// keyed by book id so events for one book stay on one partition
	if err := p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.FormatInt(event.BookID, 10)),
		Value: msg,
	}); err != nil {
		slog.ErrorContext(ctx, "[bookEventPublisher] PublishBookChanged", "writeMessages", err)
		return err
	}

	slog.InfoContext(ctx, "[bookEventPublisher] PublishBookChanged",
		"eventType", event.EventType, "bookId", event.BookID)
	return nil
}
