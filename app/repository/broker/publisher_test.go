package broker

import (
	"book-service/app/domain"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	written []kafka.Message
	failErr error
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.failErr != nil {
		return w.failErr
	}
	w.written = append(w.written, msgs...)
	return nil
}

func TestPublishBookChangedWireFormat(t *testing.T) {
	writer := &fakeWriter{}
	publisher := NewBookEventPublisher(writer)

	err := publisher.PublishBookChanged(context.Background(), domain.BookChanged{
		BookID:          42,
		Title:           "The Sea Around Us",
		Author:          "Rachel Carson",
		Description:     "a study of tides",
		PublicationDate: "1951-07-02",
		Classification:  "SCIENCE",
		Rented:          true,
		EventType:       domain.EventTypeUpdateBook,
	})
	require.NoError(t, err)
	require.Len(t, writer.written, 1)

	msg := writer.written[0]
	assert.Equal(t, []byte("42"), msg.Key)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(msg.Value, &payload))
	// camelCase keys, matching the lending service's consumer
	assert.Equal(t, float64(42), payload["bookId"])
	assert.Equal(t, "The Sea Around Us", payload["title"])
	assert.Equal(t, "Rachel Carson", payload["author"])
	assert.Equal(t, "1951-07-02", payload["publicationDate"])
	assert.Equal(t, "SCIENCE", payload["classification"])
	assert.Equal(t, true, payload["rented"])
	assert.Equal(t, "UPDATE_BOOK", payload["eventType"])
	assert.Equal(t, float64(0), payload["rentCnt"])
}

func TestPublishBookChangedPropagatesWriteError(t *testing.T) {
	writer := &fakeWriter{failErr: errors.New("broker unreachable")}
	publisher := NewBookEventPublisher(writer)

	err := publisher.PublishBookChanged(context.Background(), domain.BookChanged{
		BookID:    7,
		EventType: domain.EventTypeDeleteBook,
	})
	assert.ErrorIs(t, err, writer.failErr)
}
