package handler

import (
	"book-service/app/domain"
	"book-service/app/handler/api/response"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type InStockBookHandler struct {
	inStockUsecase domain.InStockBookService
	validator      *validator.Validate
}

func NewInStockBookHandler(inStockUsecase domain.InStockBookService, validator *validator.Validate) *InStockBookHandler {
	return &InStockBookHandler{
		inStockUsecase: inStockUsecase,
		validator:      validator,
	}
}

func (h *InStockBookHandler) Create(c *fiber.Ctx) error {
	var req domain.InStockBookCreateRequest
	if err := c.BodyParser(&req); err != nil {
		slog.ErrorContext(c.Context(), "[inStockBookHandler] Create", "bodyParser", err)
		return c.Status(fiber.StatusBadRequest).JSON(response.Error(domain.ErrBadRequest))
	}

	if err := h.validator.Struct(req); err != nil {
		slog.ErrorContext(c.Context(), "[inStockBookHandler] Create", "validation", err)
		return c.Status(fiber.StatusBadRequest).JSON(response.Error(domain.ErrValidation))
	}

	inStockBook, err := h.inStockUsecase.Create(c.Context(), req)
	if err != nil {
		slog.ErrorContext(c.Context(), "[inStockBookHandler] Create", "usecase", err)
		status, resp := response.FromError(err)
		return c.Status(status).JSON(resp)
	}

	return c.Status(fiber.StatusCreated).JSON(response.Success(inStockBook))
}

func (h *InStockBookHandler) GetByID(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		slog.ErrorContext(c.Context(), "[inStockBookHandler] GetByID", "id", c.Params("id"))
		return c.Status(fiber.StatusBadRequest).JSON(response.Error(domain.ErrBadRequest))
	}

	inStockBook, err := h.inStockUsecase.GetByID(c.Context(), id)
	if err != nil {
		slog.ErrorContext(c.Context(), "[inStockBookHandler] GetByID", "usecase", err)
		status, resp := response.FromError(err)
		return c.Status(status).JSON(resp)
	}

	return c.Status(fiber.StatusOK).JSON(response.Success(inStockBook))
}

func (h *InStockBookHandler) Delete(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		slog.ErrorContext(c.Context(), "[inStockBookHandler] Delete", "id", c.Params("id"))
		return c.Status(fiber.StatusBadRequest).JSON(response.Error(domain.ErrBadRequest))
	}

	if err := h.inStockUsecase.Delete(c.Context(), id); err != nil {
		slog.ErrorContext(c.Context(), "[inStockBookHandler] Delete", "usecase", err)
		status, resp := response.FromError(err)
		return c.Status(status).JSON(resp)
	}

	return c.Status(fiber.StatusOK).JSON(response.Success(nil))
}

func (h *InStockBookHandler) GetListInStockBook(c *fiber.Ctx) error {
	param := domain.GetListInStockBookRequest{}
	if err := c.QueryParser(&param); err != nil {
		slog.WarnContext(c.Context(), "[inStockBookHandler] GetListInStockBook", "queryParser", err)
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
	if param.SortBy == "" || (param.SortBy != "created_at" && param.SortBy != "title" && param.SortBy != "author") {
		param.SortBy = "created_at"
	}
	if param.SortOrder == "" || (param.SortOrder != "asc" && param.SortOrder != "desc") {
		param.SortOrder = "desc"
	}

	inStockBooks, metadata, err := h.inStockUsecase.GetListInStockBook(c.Context(), param)
	if err != nil {
		slog.ErrorContext(c.Context(), "[inStockBookHandler] GetListInStockBook", "usecase", err)
		status, resp := response.FromError(err)
		return c.Status(status).JSON(resp)
	}

	return c.Status(fiber.StatusOK).JSON(response.SuccessWithMetadata(inStockBooks, metadata))
}
