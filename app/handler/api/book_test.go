package handler

import (
	"book-service/app/domain"
	"book-service/app/handler/api/response"
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubBookService struct {
	domain.BookService

	books   map[int64]domain.Book
	created []domain.BookCreateRequest
}

func (s *stubBookService) Create(_ context.Context, req domain.BookCreateRequest) (domain.Book, error) {
	s.created = append(s.created, req)
	return domain.Book{ID: 1, Title: req.Title, Author: req.Author, BookStatus: domain.BookStatusAvailable}, nil
}

func (s *stubBookService) GetByID(_ context.Context, id int64) (domain.Book, error) {
	book, ok := s.books[id]
	if !ok {
		return domain.Book{}, domain.ErrNotFound
	}
	return book, nil
}

func newTestApp(svc domain.BookService) *fiber.App {
	app := fiber.New()
	bookHandler := NewBookHandler(svc, validator.New())
	app.Post("/books", bookHandler.Create)
	app.Get("/books/:id", bookHandler.GetByID)
	return app
}

func TestBookHandlerGetByID(t *testing.T) {
	svc := &stubBookService{books: map[int64]domain.Book{
		42: {ID: 42, Title: "The Sea Around Us", Author: "Rachel Carson", BookStatus: domain.BookStatusRented},
	}}
	app := newTestApp(svc)

	tests := []struct {
		name       string
		path       string
		wantStatus int
	}{
		{name: "found", path: "/books/42", wantStatus: fiber.StatusOK},
		{name: "missing", path: "/books/7", wantStatus: fiber.StatusNotFound},
		{name: "bad id", path: "/books/abc", wantStatus: fiber.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, tt.path, nil))
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}
}

func TestBookHandlerCreate(t *testing.T) {
	svc := &stubBookService{}
	app := newTestApp(svc)

	body, err := json.Marshal(map[string]any{
		"title":            "The Sea Around Us",
		"author":           "Rachel Carson",
		"publication_date": "1951-07-02",
		"classification":   "SCIENCE",
		"location":         "MAIN_HALL",
	})
	require.NoError(t, err)

	req := httptest.NewRequest(fiber.MethodPost, "/books", bytes.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	require.Len(t, svc.created, 1)
	assert.Equal(t, "The Sea Around Us", svc.created[0].Title)

	var envelope response.Response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	assert.True(t, envelope.Success)
}

func TestBookHandlerCreateValidation(t *testing.T) {
	svc := &stubBookService{}
	app := newTestApp(svc)

	// title missing
	body, err := json.Marshal(map[string]any{
		"author":           "Rachel Carson",
		"publication_date": "1951-07-02",
		"classification":   "SCIENCE",
		"location":         "MAIN_HALL",
	})
	require.NoError(t, err)

	req := httptest.NewRequest(fiber.MethodPost, "/books", bytes.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Empty(t, svc.created)
}
