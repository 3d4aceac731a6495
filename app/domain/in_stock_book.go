package domain

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type InStockSource string

const (
	InStockSourcePurchased InStockSource = "PURCHASED"
	InStockSourceDonated   InStockSource = "DONATED"
)

func ParseInStockSource(label string) (InStockSource, error) {
	switch InStockSource(label) {
	case InStockSourcePurchased, InStockSourceDonated:
		return InStockSource(label), nil
	default:
		return "", fmt.Errorf("%w: unknown source %q", ErrValidation, label)
	}
}

// InStockBook is a book the library has acquired but not yet registered
// into the lendable catalog.
type InStockBook struct {
	ID              int64         `json:"id"`
	Title           string        `json:"title"`
	Author          string        `json:"author"`
	Description     *string       `json:"description"`
	Publisher       *string       `json:"publisher"`
	ISBN            *int64        `json:"isbn"`
	PublicationDate *time.Time    `json:"publication_date"`
	Source          InStockSource `json:"source"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

type InStockBookCreateRequest struct {
	Title           string  `json:"title" validate:"required"`
	Author          string  `json:"author" validate:"required"`
	Description     *string `json:"description"`
	Publisher       *string `json:"publisher"`
	ISBN            *int64  `json:"isbn"`
	PublicationDate *string `json:"publication_date" validate:"omitempty,datetime=2006-01-02"`
	Source          string  `json:"source" validate:"required"`
}

type GetListInStockBookRequest struct {
	Title     string `query:"title"`
	Author    string `query:"author"`
	Source    string `query:"source"`
	Page      int64  `query:"page"`
	Limit     int64  `query:"limit"`
	SortOrder string `query:"sort_order"`
	SortBy    string `query:"sort_by"`
}

type InStockBookRepository interface {
	Create(ctx context.Context, inStockBook *InStockBook) error
	GetByID(ctx context.Context, id int64) (InStockBook, error)
	Delete(ctx context.Context, id int64, tx *sql.Tx) error
	GetListInStockBook(ctx context.Context, param GetListInStockBookRequest) ([]InStockBook, error)
	GetListInStockBookCount(ctx context.Context, param GetListInStockBookRequest) (int64, error)
}

type InStockBookService interface {
	Create(ctx context.Context, req InStockBookCreateRequest) (InStockBook, error)
	GetByID(ctx context.Context, id int64) (InStockBook, error)
	Delete(ctx context.Context, id int64) error
	GetListInStockBook(ctx context.Context, param GetListInStockBookRequest) ([]InStockBook, Metadata, error)
}
