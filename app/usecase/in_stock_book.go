package usecase

import (
	"book-service/app/domain"
	"context"
	"log/slog"
	"time"
)

type inStockBookUsecase struct {
	inStockRepo domain.InStockBookRepository
}

func NewInStockBookUsecase(inStockRepo domain.InStockBookRepository) domain.InStockBookService {
	return &inStockBookUsecase{inStockRepo}
}

func (u *inStockBookUsecase) Create(ctx context.Context, req domain.InStockBookCreateRequest) (domain.InStockBook, error) {
	source, err := domain.ParseInStockSource(req.Source)
	if err != nil {
		slog.ErrorContext(ctx, "[inStockBookUsecase] Create", "parseSource", err)
		return domain.InStockBook{}, err
	}

	var publicationDate *time.Time
	if req.PublicationDate != nil {
		parsed, err := time.Parse(publicationDateFormat, *req.PublicationDate)
		if err != nil {
			slog.ErrorContext(ctx, "[inStockBookUsecase] Create", "parsePublicationDate", err)
			return domain.InStockBook{}, domain.ErrValidation
		}
		publicationDate = &parsed
	}

	inStockBook := domain.InStockBook{
		Title:           req.Title,
		Author:          req.Author,
		Description:     req.Description,
		Publisher:       req.Publisher,
		ISBN:            req.ISBN,
		PublicationDate: publicationDate,
		Source:          source,
	}

	if err := u.inStockRepo.Create(ctx, &inStockBook); err != nil {
		slog.ErrorContext(ctx, "[inStockBookUsecase] Create", "createInStockBook", err)
		return domain.InStockBook{}, err
	}

	slog.InfoContext(ctx, "[inStockBookUsecase] Create", "inStockId", inStockBook.ID)
	return inStockBook, nil
}

func (u *inStockBookUsecase) GetByID(ctx context.Context, id int64) (domain.InStockBook, error) {
	inStockBook, err := u.inStockRepo.GetByID(ctx, id)
	if err != nil {
		slog.ErrorContext(ctx, "[inStockBookUsecase] GetByID", "getInStockBook", err)
		return domain.InStockBook{}, err
	}
	return inStockBook, nil
}

func (u *inStockBookUsecase) Delete(ctx context.Context, id int64) error {
	if err := u.inStockRepo.Delete(ctx, id, nil); err != nil {
		slog.ErrorContext(ctx, "[inStockBookUsecase] Delete", "deleteInStockBook", err)
		return err
	}

	slog.InfoContext(ctx, "[inStockBookUsecase] Delete", "inStockId", id)
	return nil
}

func (u *inStockBookUsecase) GetListInStockBook(ctx context.Context, param domain.GetListInStockBookRequest) ([]domain.InStockBook, domain.Metadata, error) {
	var metadata domain.Metadata

	inStockBooks, err := u.inStockRepo.GetListInStockBook(ctx, param)
	if err != nil {
		slog.ErrorContext(ctx, "[inStockBookUsecase] GetListInStockBook", "getListInStockBook", err)
		return nil, metadata, err
	}

	count, err := u.inStockRepo.GetListInStockBookCount(ctx, param)
	if err != nil {
		slog.ErrorContext(ctx, "[inStockBookUsecase] GetListInStockBook", "getListInStockBookCount", err)
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

	return inStockBooks, metadata, nil
}
