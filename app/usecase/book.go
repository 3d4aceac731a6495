package usecase

import (
	"book-service/app/domain"
	"context"
	"database/sql"
	"log/slog"
	"time"
)

const publicationDateFormat = "2006-01-02"

type bookUsecase struct {
	bookRepo       domain.BookRepository
	inStockRepo    domain.InStockBookRepository
	eventPublisher domain.BookEventPublisher
}

func NewBookUsecase(bookRepo domain.BookRepository, inStockRepo domain.InStockBookRepository, eventPublisher domain.BookEventPublisher) domain.BookService {
	return &bookUsecase{bookRepo, inStockRepo, eventPublisher}
}

func (u *bookUsecase) Create(ctx context.Context, req domain.BookCreateRequest) (domain.Book, error) {
	book, err := bookFromCreateRequest(req)
	if err != nil {
		slog.ErrorContext(ctx, "[bookUsecase] Create", "parseRequest", err)
		return domain.Book{}, err
	}

	if err := u.bookRepo.Create(ctx, &book, nil); err != nil {
		slog.ErrorContext(ctx, "[bookUsecase] Create", "createBook", err)
		return domain.Book{}, err
	}

	// The row is committed before the event goes out; a publish failure
	// surfaces to the caller and the catalog and broker diverge until
	// reconciled. Not transactionally coupled on purpose.
	if err := u.sendBookChanged(ctx, domain.EventTypeNewBook, book.ID); err != nil {
		slog.ErrorContext(ctx, "[bookUsecase] Create", "sendBookChanged", err)
		return domain.Book{}, err
	}

	slog.InfoContext(ctx, "[bookUsecase] Create", "bookId", book.ID)
	return book, nil
}

func (u *bookUsecase) Update(ctx context.Context, id int64, req domain.BookUpdateRequest) (domain.Book, error) {
	book, err := u.bookRepo.GetByID(ctx, id)
	if err != nil {
		slog.ErrorContext(ctx, "[bookUsecase] Update", "getBook", err)
		return domain.Book{}, err
	}

	if err := applyUpdateRequest(&book, req); err != nil {
		slog.ErrorContext(ctx, "[bookUsecase] Update", "parseRequest", err)
		return domain.Book{}, err
	}

	if err := u.bookRepo.Update(ctx, &book); err != nil {
		slog.ErrorContext(ctx, "[bookUsecase] Update", "updateBook", err)
		return domain.Book{}, err
	}

	if err := u.sendBookChanged(ctx, domain.EventTypeUpdateBook, book.ID); err != nil {
		slog.ErrorContext(ctx, "[bookUsecase] Update", "sendBookChanged", err)
		return domain.Book{}, err
	}

	slog.InfoContext(ctx, "[bookUsecase] Update", "bookId", book.ID)
	return book, nil
}

func (u *bookUsecase) Delete(ctx context.Context, id int64) error {
	// publish before deleting so the event assembly can still read the row
	if err := u.sendBookChanged(ctx, domain.EventTypeDeleteBook, id); err != nil {
		slog.ErrorContext(ctx, "[bookUsecase] Delete", "sendBookChanged", err)
		return err
	}

	if err := u.bookRepo.Delete(ctx, id); err != nil {
		slog.ErrorContext(ctx, "[bookUsecase] Delete", "deleteBook", err)
		return err
	}

	slog.InfoContext(ctx, "[bookUsecase] Delete", "bookId", id)
	return nil
}

func (u *bookUsecase) GetByID(ctx context.Context, id int64) (domain.Book, error) {
	book, err := u.bookRepo.GetByID(ctx, id)
	if err != nil {
		slog.ErrorContext(ctx, "[bookUsecase] GetByID", "getBook", err)
		return domain.Book{}, err
	}
	return book, nil
}

func (u *bookUsecase) GetBookInfo(ctx context.Context, id int64) (domain.BookInfoResponse, error) {
	book, err := u.bookRepo.GetByID(ctx, id)
	if err != nil {
		slog.ErrorContext(ctx, "[bookUsecase] GetBookInfo", "getBook", err)
		return domain.BookInfoResponse{}, err
	}

	return domain.BookInfoResponse{
		BookID: book.ID,
		Title:  book.Title,
	}, nil
}

func (u *bookUsecase) GetListBook(ctx context.Context, param domain.GetListBookRequest) ([]domain.Book, domain.Metadata, error) {
	var metadata domain.Metadata

	books, err := u.bookRepo.GetListBook(ctx, param)
	if err != nil {
		slog.ErrorContext(ctx, "[bookUsecase] GetListBook", "getListBook", err)
		return nil, metadata, err
	}

	count, err := u.bookRepo.GetListBookCount(ctx, param)
	if err != nil {
		slog.ErrorContext(ctx, "[bookUsecase] GetListBook", "getListBookCount", err)
		return nil, metadata, err
	}

	metadata = domain.Metadata{
		TotalData: count,
		TotalPage: (count + param.Limit - 1) / param.Limit,
		Page:      param.Page,
		Limit:     param.Limit,
		SortBy:    param.SortBy,
		SortOrder: param.SortOrder,
	}

	return books, metadata, nil
}

// RegisterFromInStock promotes an acquired in-stock book into the lendable
// catalog: the new catalog row and the in-stock deletion commit together,
// then a NEW_BOOK event goes out.
func (u *bookUsecase) RegisterFromInStock(ctx context.Context, inStockID int64, req domain.BookCreateRequest) (domain.Book, error) {
	if _, err := u.inStockRepo.GetByID(ctx, inStockID); err != nil {
		slog.ErrorContext(ctx, "[bookUsecase] RegisterFromInStock", "getInStockBook", err)
		return domain.Book{}, err
	}

	book, err := bookFromCreateRequest(req)
	if err != nil {
		slog.ErrorContext(ctx, "[bookUsecase] RegisterFromInStock", "parseRequest", err)
		return domain.Book{}, err
	}

	if err := u.bookRepo.WithTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if err := u.bookRepo.Create(ctx, &book, tx); err != nil {
			slog.ErrorContext(ctx, "[bookUsecase] RegisterFromInStock", "createBook", err)
			return err
		}

		if err := u.inStockRepo.Delete(ctx, inStockID, tx); err != nil {
			slog.ErrorContext(ctx, "[bookUsecase] RegisterFromInStock", "deleteInStockBook", err)
			return err
		}
		return nil
	}); err != nil {
		slog.ErrorContext(ctx, "[bookUsecase] RegisterFromInStock", "transactionError", err)
		return domain.Book{}, err
	}

	if err := u.sendBookChanged(ctx, domain.EventTypeNewBook, book.ID); err != nil {
		slog.ErrorContext(ctx, "[bookUsecase] RegisterFromInStock", "sendBookChanged", err)
		return domain.Book{}, err
	}

	slog.InfoContext(ctx, "[bookUsecase] RegisterFromInStock", "bookId", book.ID, "inStockId", inStockID)
	return book, nil
}

// ApplyStockChange overwrites the stock status of one book from an inbound
// lending event. Setting the same status twice is a no-op in effect, so
// redelivered events are safe. No outbound event is published here.
func (u *bookUsecase) ApplyStockChange(ctx context.Context, bookID int64, statusLabel string) error {
	book, err := u.bookRepo.GetByID(ctx, bookID)
	if err != nil {
		slog.ErrorContext(ctx, "[bookUsecase] ApplyStockChange", "getBook", err)
		return err
	}

	status, err := domain.ParseBookStatus(statusLabel)
	if err != nil {
		slog.ErrorContext(ctx, "[bookUsecase] ApplyStockChange", "parseBookStatus", err)
		return err
	}

	book.BookStatus = status
	if err := u.bookRepo.Update(ctx, &book); err != nil {
		slog.ErrorContext(ctx, "[bookUsecase] ApplyStockChange", "updateBook", err)
		return err
	}

	slog.InfoContext(ctx, "[bookUsecase] ApplyStockChange", "bookId", bookID, "bookStatus", status)
	return nil
}

// sendBookChanged assembles the outbound event from the current row and
// hands it to the publisher. NEW_BOOK and UPDATE_BOOK carry the full book;
// DELETE_BOOK carries only the id and event type.
func (u *bookUsecase) sendBookChanged(ctx context.Context, eventType domain.EventType, bookID int64) error {
	book, err := u.bookRepo.GetByID(ctx, bookID)
	if err != nil {
		slog.ErrorContext(ctx, "[bookUsecase] sendBookChanged", "getBook", err)
		return err
	}

	event := domain.BookChanged{
		BookID:    book.ID,
		EventType: eventType,
	}

	if eventType == domain.EventTypeNewBook || eventType == domain.EventTypeUpdateBook {
		event.Title = book.Title
		event.Author = book.Author
		if book.Description != nil {
			event.Description = *book.Description
		}
		event.PublicationDate = book.PublicationDate.Format(publicationDateFormat)
		event.Classification = string(book.Classification)
		event.Rented = book.Rented()
		event.RentCnt = 0 // rental history lives in the lending service
	}

	return u.eventPublisher.PublishBookChanged(ctx, event)
}

func bookFromCreateRequest(req domain.BookCreateRequest) (domain.Book, error) {
	publicationDate, err := time.Parse(publicationDateFormat, req.PublicationDate)
	if err != nil {
		return domain.Book{}, domain.ErrValidation
	}

	classification, err := domain.ParseClassification(req.Classification)
	if err != nil {
		return domain.Book{}, err
	}

	location, err := domain.ParseLocation(req.Location)
	if err != nil {
		return domain.Book{}, err
	}

	return domain.Book{
		Title:           req.Title,
		Author:          req.Author,
		Description:     req.Description,
		Publisher:       req.Publisher,
		ISBN:            req.ISBN,
		PublicationDate: publicationDate,
		Classification:  classification,
		BookStatus:      domain.BookStatusAvailable,
		Location:        location,
	}, nil
}

func applyUpdateRequest(book *domain.Book, req domain.BookUpdateRequest) error {
	publicationDate, err := time.Parse(publicationDateFormat, req.PublicationDate)
	if err != nil {
		return domain.ErrValidation
	}

	classification, err := domain.ParseClassification(req.Classification)
	if err != nil {
		return err
	}

	status, err := domain.ParseBookStatus(req.BookStatus)
	if err != nil {
		return err
	}

	location, err := domain.ParseLocation(req.Location)
	if err != nil {
		return err
	}

	book.Title = req.Title
	book.Author = req.Author
	book.Description = req.Description
	book.Publisher = req.Publisher
	book.ISBN = req.ISBN
	book.PublicationDate = publicationDate
	book.Classification = classification
	book.BookStatus = status
	book.Location = location
	return nil
}
