package domain

import (
	"context"
	"fmt"
)

type EventType string

const (
	EventTypeNewBook    EventType = "NEW_BOOK"
	EventTypeUpdateBook EventType = "UPDATE_BOOK"
	EventTypeDeleteBook EventType = "DELETE_BOOK"
)

// StockChanged is the inbound event the lending service publishes on
// topic_book when a book is borrowed, returned or reported lost.
// JSON field names follow the lending service's serializer.
type StockChanged struct {
	BookID     int64  `json:"bookId"`
	BookStatus string `json:"bookStatus"`
}

func (e StockChanged) Validate() error {
	if e.BookID <= 0 {
		return fmt.Errorf("%w: missing bookId", ErrValidation)
	}
	if e.BookStatus == "" {
		return fmt.Errorf("%w: missing bookStatus", ErrValidation)
	}
	if _, err := ParseBookStatus(e.BookStatus); err != nil {
		return err
	}
	return nil
}

// BookChanged is the outbound event published on topic_catalog after a
// local catalog write. For DELETE_BOOK only BookID and EventType carry
// values; the remaining fields stay zero-valued.
type BookChanged struct {
	BookID          int64     `json:"bookId"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Author          string    `json:"author"`
	PublicationDate string    `json:"publicationDate"`
	Classification  string    `json:"classification"`
	Rented          bool      `json:"rented"`
	EventType       EventType `json:"eventType"`
	RentCnt         int64     `json:"rentCnt"`
}

// BookEventPublisher is the narrow sink the write path emits through.
// The broker-backed implementation blocks until the broker acknowledges;
// tests swap in an in-memory double.
type BookEventPublisher interface {
	PublishBookChanged(ctx context.Context, event BookChanged) error
}
