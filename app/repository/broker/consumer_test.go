package broker

import (
	"book-service/app/domain"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFetcher struct {
	msgs chan kafka.Message

	mu         sync.Mutex
	committed  [][]kafka.Message
	closeCalls int
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{msgs: make(chan kafka.Message, 16)}
}

func (f *fakeFetcher) FetchMessage(ctx context.Context) (kafka.Message, error) {
	select {
	case msg := <-f.msgs:
		return msg, nil
	case <-ctx.Done():
		return kafka.Message{}, ctx.Err()
	}
}

func (f *fakeFetcher) CommitMessages(_ context.Context, msgs ...kafka.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.committed = append(f.committed, msgs)
	return nil
}

func (f *fakeFetcher) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closeCalls++
	return nil
}

func (f *fakeFetcher) commits() [][]kafka.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([][]kafka.Message(nil), f.committed...)
}

func (f *fakeFetcher) closed() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closeCalls
}

type appliedChange struct {
	bookID int64
	status string
}

// stubBookService records ApplyStockChange calls; the embedded interface
// panics on anything else the consumer has no business calling.
type stubBookService struct {
	domain.BookService

	mu      sync.Mutex
	applied []appliedChange
	failFor int64
}

func (s *stubBookService) ApplyStockChange(_ context.Context, bookID int64, statusLabel string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failFor != 0 && s.failFor == bookID {
		return domain.ErrNotFound
	}
	s.applied = append(s.applied, appliedChange{bookID: bookID, status: statusLabel})
	return nil
}

func (s *stubBookService) appliedChanges() []appliedChange {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]appliedChange(nil), s.applied...)
}

func stockMessage(offset int64, payload string) kafka.Message {
	return kafka.Message{Partition: 0, Offset: offset, Value: []byte(payload)}
}

func stopConsumer(t *testing.T, consumer *StockConsumer) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, consumer.Stop(ctx))
}

func TestConsumerAppliesRecordsInOrder(t *testing.T) {
	fetcher := newFakeFetcher()
	books := &stubBookService{}
	consumer := NewStockConsumer(fetcher, books)

	fetcher.msgs <- stockMessage(0, `{"bookId":1,"bookStatus":"RENTED"}`)
	fetcher.msgs <- stockMessage(1, `{"bookId":2,"bookStatus":"RENTED"}`)
	fetcher.msgs <- stockMessage(2, `{"bookId":1,"bookStatus":"AVAILABLE"}`)

	consumer.Start(context.Background())

	require.Eventually(t, func() bool {
		return len(books.appliedChanges()) == 3
	}, 2*time.Second, 10*time.Millisecond)

	assert.Equal(t, []appliedChange{
		{bookID: 1, status: "RENTED"},
		{bookID: 2, status: "RENTED"},
		{bookID: 1, status: "AVAILABLE"},
	}, books.appliedChanges())

	stopConsumer(t, consumer)
}

func TestConsumerDropsPoisonRecordAndContinues(t *testing.T) {
	fetcher := newFakeFetcher()
	books := &stubBookService{}
	consumer := NewStockConsumer(fetcher, books)

	fetcher.msgs <- stockMessage(0, `{not json`)
	fetcher.msgs <- stockMessage(1, `{"bookId":5,"bookStatus":"BURNED"}`)
	fetcher.msgs <- stockMessage(2, `{"bookId":7,"bookStatus":"RENTED"}`)

	consumer.Start(context.Background())

	require.Eventually(t, func() bool {
		return len(books.appliedChanges()) == 1
	}, 2*time.Second, 10*time.Millisecond)

	assert.Equal(t, []appliedChange{{bookID: 7, status: "RENTED"}}, books.appliedChanges())

	stopConsumer(t, consumer)
}

func TestConsumerContinuesAfterApplyFailure(t *testing.T) {
	fetcher := newFakeFetcher()
	books := &stubBookService{failFor: 404}
	consumer := NewStockConsumer(fetcher, books)

	fetcher.msgs <- stockMessage(0, `{"bookId":404,"bookStatus":"RENTED"}`)
	fetcher.msgs <- stockMessage(1, `{"bookId":9,"bookStatus":"LOST"}`)

	consumer.Start(context.Background())

	require.Eventually(t, func() bool {
		return len(books.appliedChanges()) == 1
	}, 2*time.Second, 10*time.Millisecond)

	assert.Equal(t, []appliedChange{{bookID: 9, status: "LOST"}}, books.appliedChanges())

	stopConsumer(t, consumer)
}

func TestConsumerStopCommitsOnceAndClosesOnce(t *testing.T) {
	fetcher := newFakeFetcher()
	books := &stubBookService{}
	consumer := NewStockConsumer(fetcher, books)

	fetcher.msgs <- stockMessage(0, `{"bookId":1,"bookStatus":"RENTED"}`)
	fetcher.msgs <- stockMessage(1, `{"bookId":2,"bookStatus":"RENTED"}`)

	consumer.Start(context.Background())

	require.Eventually(t, func() bool {
		return len(books.appliedChanges()) == 2
	}, 2*time.Second, 10*time.Millisecond)

	stopConsumer(t, consumer)

	commits := fetcher.commits()
	require.Len(t, commits, 1)
	require.Len(t, commits[0], 1)
	// the newest offset per partition carries the whole batch
	assert.Equal(t, int64(1), commits[0][0].Offset)
	assert.Equal(t, 1, fetcher.closed())
}

func TestConsumerStopWhileBlockedInFetch(t *testing.T) {
	fetcher := newFakeFetcher()
	consumer := NewStockConsumer(fetcher, &stubBookService{})

	consumer.Start(context.Background())

	// no messages: the loop is parked inside FetchMessage
	stopConsumer(t, consumer)

	// nothing fetched, nothing to commit, reader still released
	assert.Empty(t, fetcher.commits())
	assert.Equal(t, 1, fetcher.closed())
}

func TestConsumerStopWithoutStart(t *testing.T) {
	consumer := NewStockConsumer(newFakeFetcher(), &stubBookService{})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, consumer.Stop(ctx))
}

func TestConsumerStartTwiceRunsOneLoop(t *testing.T) {
	fetcher := newFakeFetcher()
	books := &stubBookService{}
	consumer := NewStockConsumer(fetcher, books)

	consumer.Start(context.Background())
	consumer.Start(context.Background())

	fetcher.msgs <- stockMessage(0, `{"bookId":3,"bookStatus":"RENTED"}`)

	require.Eventually(t, func() bool {
		return len(books.appliedChanges()) == 1
	}, 2*time.Second, 10*time.Millisecond)

	stopConsumer(t, consumer)

	// a second loop would have closed the reader twice
	assert.Equal(t, 1, fetcher.closed())
}
