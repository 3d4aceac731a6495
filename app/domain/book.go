package domain

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type BookStatus string

const (
	BookStatusAvailable BookStatus = "AVAILABLE"
	BookStatusRented    BookStatus = "RENTED"
	BookStatusLost      BookStatus = "LOST"
)

func ParseBookStatus(label string) (BookStatus, error) {
	switch BookStatus(label) {
	case BookStatusAvailable, BookStatusRented, BookStatusLost:
		return BookStatus(label), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidBookStatus, label)
	}
}

type Classification string

const (
	ClassificationLiterature Classification = "LITERATURE"
	ClassificationScience    Classification = "SCIENCE"
	ClassificationHistory    Classification = "HISTORY"
	ClassificationArts       Classification = "ARTS"
	ClassificationTechnology Classification = "TECHNOLOGY"
	ClassificationChildren   Classification = "CHILDREN"
)

func ParseClassification(label string) (Classification, error) {
	switch Classification(label) {
	case ClassificationLiterature, ClassificationScience, ClassificationHistory,
		ClassificationArts, ClassificationTechnology, ClassificationChildren:
		return Classification(label), nil
	default:
		return "", fmt.Errorf("%w: unknown classification %q", ErrValidation, label)
	}
}

type Location string

const (
	LocationMainHall Location = "MAIN_HALL"
	LocationAnnex    Location = "ANNEX"
	LocationStorage  Location = "STORAGE"
)

func ParseLocation(label string) (Location, error) {
	switch Location(label) {
	case LocationMainHall, LocationAnnex, LocationStorage:
		return Location(label), nil
	default:
		return "", fmt.Errorf("%w: unknown location %q", ErrValidation, label)
	}
}

type Book struct {
	ID              int64          `json:"id"`
	Title           string         `json:"title"`
	Author          string         `json:"author"`
	Description     *string        `json:"description"`
	Publisher       *string        `json:"publisher"`
	ISBN            *int64         `json:"isbn"`
	PublicationDate time.Time      `json:"publication_date"`
	Classification  Classification `json:"classification"`
	BookStatus      BookStatus     `json:"book_status"`
	Location        Location       `json:"location"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// Rented reports whether the book is out of the catalog's hands,
// however the lending service put it there.
func (b Book) Rented() bool {
	return b.BookStatus != BookStatusAvailable
}

type BookCreateRequest struct {
	Title           string  `json:"title" validate:"required"`
	Author          string  `json:"author" validate:"required"`
	Description     *string `json:"description"`
	Publisher       *string `json:"publisher"`
	ISBN            *int64  `json:"isbn"`
	PublicationDate string  `json:"publication_date" validate:"required,datetime=2006-01-02"`
	Classification  string  `json:"classification" validate:"required"`
	Location        string  `json:"location" validate:"required"`
}

type BookUpdateRequest struct {
	Title           string  `json:"title" validate:"required"`
	Author          string  `json:"author" validate:"required"`
	Description     *string `json:"description"`
	Publisher       *string `json:"publisher"`
	ISBN            *int64  `json:"isbn"`
	PublicationDate string  `json:"publication_date" validate:"required,datetime=2006-01-02"`
	Classification  string  `json:"classification" validate:"required"`
	BookStatus      string  `json:"book_status" validate:"required"`
	Location        string  `json:"location" validate:"required"`
}

type BookInfoResponse struct {
	BookID int64  `json:"book_id"`
	Title  string `json:"title"`
}

type GetListBookRequest struct {
	Title          string `query:"title"`
	Author         string `query:"author"`
	Classification string `query:"classification"`
	BookStatus     string `query:"book_status"`
	Page           int64  `query:"page"`
	Limit          int64  `query:"limit"`
	SortOrder      string `query:"sort_order"`
	SortBy         string `query:"sort_by"`
}

type Metadata struct {
	TotalData int64  `json:"total_data"`
	TotalPage int64  `json:"total_page"`
	Page      int64  `json:"page"`
	Limit     int64  `json:"limit"`
	SortBy    string `json:"sort_by"`
	SortOrder string `json:"sort_order"`
}

type BookRepository interface {
	Create(ctx context.Context, book *Book, tx *sql.Tx) error
	GetByID(ctx context.Context, id int64) (Book, error)
	Update(ctx context.Context, book *Book) error
	Delete(ctx context.Context, id int64) error
	GetListBook(ctx context.Context, param GetListBookRequest) ([]Book, error)
	GetListBookCount(ctx context.Context, param GetListBookRequest) (int64, error)

	WithTransaction(ctx context.Context, fn func(context.Context, *sql.Tx) error) error
}

type BookService interface {
	Create(ctx context.Context, req BookCreateRequest) (Book, error)
	Update(ctx context.Context, id int64, req BookUpdateRequest) (Book, error)
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (Book, error)
	GetBookInfo(ctx context.Context, id int64) (BookInfoResponse, error)
	GetListBook(ctx context.Context, param GetListBookRequest) ([]Book, Metadata, error)
	RegisterFromInStock(ctx context.Context, inStockID int64, req BookCreateRequest) (Book, error)

	// ApplyStockChange is the single path by which inbound stock events
	// mutate the catalog. It never publishes an outbound event.
	ApplyStockChange(ctx context.Context, bookID int64, statusLabel string) error
}
