package handler

import (
	"book-service/app/domain"
	"book-service/app/handler/api/response"
	"log/slog"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type BookHandler struct {
	bookUsecase domain.BookService
	validator   *validator.Validate
}

func NewBookHandler(bookUsecase domain.BookService, validator *validator.Validate) *BookHandler {
	return &BookHandler{
		bookUsecase: bookUsecase,
		validator:   validator,
	}
}

func parseIDParam(c *fiber.Ctx, name string) (int64, error) {
	idStr := c.Params(name)
	if idStr == "" {
		return 0, domain.ErrBadRequest
	}

	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ErrBadRequest
	}

	return id, nil
}

func (h *BookHandler) Create(c *fiber.Ctx) error {
	var req domain.BookCreateRequest
	if err := c.BodyParser(&req); err != nil {
		slog.ErrorContext(c.Context(), "[bookHandler] Create", "bodyParser", err)
		return c.Status(fiber.StatusBadRequest).JSON(response.Error(domain.ErrBadRequest))
	}

	if err := h.validator.Struct(req); err != nil {
		slog.ErrorContext(c.Context(), "[bookHandler] Create", "validation", err)
		return c.Status(fiber.StatusBadRequest).JSON(response.Error(domain.ErrValidation))
	}

	book, err := h.bookUsecase.Create(c.Context(), req)
	if err != nil {
		slog.ErrorContext(c.Context(), "[bookHandler] Create", "usecase", err)
		status, resp := response.FromError(err)
		return c.Status(status).JSON(resp)
	}

	return c.Status(fiber.StatusCreated).JSON(response.Success(book))
}

func (h *BookHandler) Update(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		slog.ErrorContext(c.Context(), "[bookHandler] Update", "id", c.Params("id"))
		return c.Status(fiber.StatusBadRequest).JSON(response.Error(domain.ErrBadRequest))
	}

	var req domain.BookUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		slog.ErrorContext(c.Context(), "[bookHandler] Update", "bodyParser", err)
		return c.Status(fiber.StatusBadRequest).JSON(response.Error(domain.ErrBadRequest))
	}

	if err := h.validator.Struct(req); err != nil {
		slog.ErrorContext(c.Context(), "[bookHandler] Update", "validation", err)
		return c.Status(fiber.StatusBadRequest).JSON(response.Error(domain.ErrValidation))
	}

	book, err := h.bookUsecase.Update(c.Context(), id, req)
	if err != nil {
		slog.ErrorContext(c.Context(), "[bookHandler] Update", "usecase", err)
		status, resp := response.FromError(err)
		return c.Status(status).JSON(resp)
	}

	return c.Status(fiber.StatusOK).JSON(response.Success(book))
}

func (h *BookHandler) Delete(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		slog.ErrorContext(c.Context(), "[bookHandler] Delete", "id", c.Params("id"))
		return c.Status(fiber.StatusBadRequest).JSON(response.Error(domain.ErrBadRequest))
	}

	if err := h.bookUsecase.Delete(c.Context(), id); err != nil {
		slog.ErrorContext(c.Context(), "[bookHandler] Delete", "usecase", err)
		status, resp := response.FromError(err)
		return c.Status(status).JSON(resp)
	}

	return c.Status(fiber.StatusOK).JSON(response.Success(nil))
}

func (h *BookHandler) GetByID(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		slog.ErrorContext(c.Context(), "[bookHandler] GetByID", "id", c.Params("id"))
		return c.Status(fiber.StatusBadRequest).JSON(response.Error(domain.ErrBadRequest))
	}

	book, err := h.bookUsecase.GetByID(c.Context(), id)
	if err != nil {
		slog.ErrorContext(c.Context(), "[bookHandler] GetByID", "usecase", err)
		status, resp := response.FromError(err)
		return c.Status(status).JSON(resp)
	}

	return c.Status(fiber.StatusOK).JSON(response.Success(book))
}

// GetBookInfo serves the slim lookup the lending service calls before it
// creates a rental.
func (h *BookHandler) GetBookInfo(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		slog.ErrorContext(c.Context(), "[bookHandler] GetBookInfo", "id", c.Params("id"))
		return c.Status(fiber.StatusBadRequest).JSON(response.Error(domain.ErrBadRequest))
	}

	info, err := h.bookUsecase.GetBookInfo(c.Context(), id)
	if err != nil {
		slog.ErrorContext(c.Context(), "[bookHandler] GetBookInfo", "usecase", err)
		status, resp := response.FromError(err)
		return c.Status(status).JSON(resp)
	}

	return c.Status(fiber.StatusOK).JSON(response.Success(info))
}

func (h *BookHandler) GetListBook(c *fiber.Ctx) error {
	param := domain.GetListBookRequest{}
	if err := c.QueryParser(&param); err != nil {
		slog.WarnContext(c.Context(), "[bookHandler] GetListBook", "queryParser", err)
	}

	if param.Page <= 0 {
		param.Page = 1
	}
	if param.Limit <= 0 {
		param.Limit = 10
	}
	if param.Limit > 20 {
		param.Limit = 20
	}
	if param.SortBy == "" || (param.SortBy != "created_at" && param.SortBy != "title" && param.SortBy != "author" && param.SortBy != "publication_date") {
		param.SortBy = "created_at"
	}
	if param.SortOrder == "" || (param.SortOrder != "asc" && param.SortOrder != "desc") {
		param.SortOrder = "desc"
	}

	books, metadata, err := h.bookUsecase.GetListBook(c.Context(), param)
	if err != nil {
		slog.ErrorContext(c.Context(), "[bookHandler] GetListBook", "usecase", err)
		status, resp := response.FromError(err)
		return c.Status(status).JSON(resp)
	}

	return c.Status(fiber.StatusOK).JSON(response.SuccessWithMetadata(books, metadata))
}

func (h *BookHandler) RegisterFromInStock(c *fiber.Ctx) error {
	inStockID, err := parseIDParam(c, "in_stock_id")
	if err != nil {
		slog.ErrorContext(c.Context(), "[bookHandler] RegisterFromInStock", "inStockId", c.Params("in_stock_id"))
		return c.Status(fiber.StatusBadRequest).JSON(response.Error(domain.ErrBadRequest))
	}

	var req domain.BookCreateRequest
	if err := c.BodyParser(&req); err != nil {
		slog.ErrorContext(c.Context(), "[bookHandler] RegisterFromInStock", "bodyParser", err)
		return c.Status(fiber.StatusBadRequest).JSON(response.Error(domain.ErrBadRequest))
	}

	if err := h.validator.Struct(req); err != nil {
		slog.ErrorContext(c.Context(), "[bookHandler] RegisterFromInStock", "validation", err)
		return c.Status(fiber.StatusBadRequest).JSON(response.Error(domain.ErrValidation))
	}

	book, err := h.bookUsecase.RegisterFromInStock(c.Context(), inStockID, req)
	if err != nil {
		slog.ErrorContext(c.Context(), "[bookHandler] RegisterFromInStock", "usecase", err)
		status, resp := response.FromError(err)
		return c.Status(status).JSON(resp)
	}

	return c.Status(fiber.StatusCreated).JSON(response.Success(book))
}
