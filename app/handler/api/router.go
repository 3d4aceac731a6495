package handler

import (
	"book-service/app/middleware"
	"book-service/config"

	"github.com/gofiber/fiber/v2"
)

func SetupRouter(app *fiber.App, bookHandler *BookHandler, inStockBookHandler *InStockBookHandler, cfg *config.Config) {

	api := app.Group("/book-service").Use(middleware.Auth(cfg.Jwt.SecretKey))

	api.Post("/books", bookHandler.Create)
	api.Get("/books", bookHandler.GetListBook)
	api.Get("/books/:id", bookHandler.GetByID)
	api.Put("/books/:id", bookHandler.Update)
	api.Delete("/books/:id", bookHandler.Delete)
	api.Get("/books/:id/info", bookHandler.GetBookInfo)
	api.Post("/books/register/:in_stock_id", bookHandler.RegisterFromInStock)

	api.Post("/in-stock-books", inStockBookHandler.Create)
	api.Get("/in-stock-books", inStockBookHandler.GetListInStockBook)
	api.Get("/in-stock-books/:id", inStockBookHandler.GetByID)
	api.Delete("/in-stock-books/:id", inStockBookHandler.Delete)

	// service-to-service lookup for the lending service
	internal := app.Group("/internal/book-service").Use(middleware.AuthInternal(cfg))
	internal.Get("/books/:id/info", bookHandler.GetBookInfo)
}
