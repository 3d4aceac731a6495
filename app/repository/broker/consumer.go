package broker

import (
	"book-service/app/domain"
	"book-service/config"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"
)

type MessageFetcher interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// NewBookReader builds the reader for topic_book. MaxWait bounds how long
// a fetch blocks when the topic is idle, which is also the upper bound on
// how long shutdown waits for the loop to notice cancellation.
func NewBookReader(cfg config.KafkaConfig) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers: cfg.BrokerList(),
		Topic:   cfg.BookTopic,
		GroupID: cfg.GroupID,
		MaxWait: 3 * time.Second,
	})
}

// StockConsumer runs the single background loop that applies inbound
// StockChanged events to the catalog. Offsets are committed once, after
// the loop exits, so a crash re-delivers uncommitted records on restart:
// at-least-once delivery, made safe by ApplyStockChange being idempotent.
type StockConsumer struct {
	reader MessageFetcher
	books  domain.BookService
	cancel context.CancelFunc
	done   chan struct{}
}

func NewStockConsumer(reader MessageFetcher, books domain.BookService) *StockConsumer {
	return &StockConsumer{
		reader: reader,
		books:  books,
	}
}

// Start launches the consume loop goroutine. At most one loop runs at a
// time; calling Start while running is a no-op.
func (c *StockConsumer) Start(ctx context.Context) {
	if c.done != nil {
		select {
		case <-c.done:
		default:
			slog.WarnContext(ctx, "[StockConsumer] Start", "alreadyRunning", true)
			return
		}
	}

	runCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.done = make(chan struct{})
	go c.run(runCtx)
}

// Stop cancels the loop and waits for it to finish, bounded by ctx.
func (c *StockConsumer) Stop(ctx context.Context) error {
	if c.cancel == nil {
		return nil
	}
	c.cancel()

	select {
	case <-c.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *StockConsumer) run(ctx context.Context) {
	defer close(c.done)

	// newest fetched message per partition, committed once on exit
	pending := make(map[int]kafka.Message)
	defer c.commitAndClose(pending)

	slog.InfoContext(ctx, "[StockConsumer] run", "status", "started")

	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
				slog.InfoContext(ctx, "[StockConsumer] run", "status", "stopping")
				return
			}
			// transient broker errors are retried by the next fetch
			slog.ErrorContext(ctx, "[StockConsumer] run", "fetchMessage", err)
			if ctx.Err() != nil {
				return
			}
			continue
		}

		c.handleMessage(ctx, msg)
		pending[msg.Partition] = msg
	}
}

// handleMessage processes one record fail-open: a malformed payload, an
// unknown status label or a missing book is logged and the record is
// dropped, never halting the loop.
func (c *StockConsumer) handleMessage(ctx context.Context, msg kafka.Message) {
	var event domain.StockChanged
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		slog.ErrorContext(ctx, "[StockConsumer] handleMessage", "json.Unmarshal", err,
			"offset", msg.Offset)
		return
	}

	if err := event.Validate(); err != nil {
		slog.ErrorContext(ctx, "[StockConsumer] handleMessage", "validate", err,
			"offset", msg.Offset)
		return
	}

	if err := c.books.ApplyStockChange(ctx, event.BookID, event.BookStatus); err != nil {
		slog.ErrorContext(ctx, "[StockConsumer] handleMessage", "applyStockChange", err,
			"bookId", event.BookID, "offset", msg.Offset)
		return
	}

	slog.InfoContext(ctx, "[StockConsumer] handleMessage",
		"bookId", event.BookID, "bookStatus", event.BookStatus)
}

func (c *StockConsumer) commitAndClose(pending map[int]kafka.Message) {
	// the loop context is already cancelled here
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if len(pending) > 0 {
		msgs := make([]kafka.Message, 0, len(pending))
		for _, msg := range pending {
			msgs = append(msgs, msg)
		}
		if err := c.reader.CommitMessages(ctx, msgs...); err != nil {
			slog.ErrorContext(ctx, "[StockConsumer] commitAndClose", "commitMessages", err)
		}
	}

	if err := c.reader.Close(); err != nil {
		slog.ErrorContext(ctx, "[StockConsumer] commitAndClose", "close", err)
	}

	slog.InfoContext(ctx, "[StockConsumer] commitAndClose", "status", "closed")
}
