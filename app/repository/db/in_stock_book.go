package db

import (
	"book-service/app/domain"
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

type inStockBookRepository struct {
	conn *sql.DB
}

func NewInStockBookRepository(db *sql.DB) domain.InStockBookRepository {
	return &inStockBookRepository{db}
}

const inStockBookColumns = `id, title, author, description, publisher, isbn, publication_date,
	source, created_at, updated_at`

func scanInStockBook(row interface{ Scan(dest ...any) error }, book *domain.InStockBook) error {
	return row.Scan(&book.ID, &book.Title, &book.Author, &book.Description, &book.Publisher,
		&book.ISBN, &book.PublicationDate, &book.Source, &book.CreatedAt, &book.UpdatedAt)
}

func (r *inStockBookRepository) Create(ctx context.Context, inStockBook *domain.InStockBook) error {
	query := `INSERT INTO in_stock_books (title, author, description, publisher, isbn, publication_date, source)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	RETURNING id, created_at, updated_at`

	err := r.conn.QueryRowContext(ctx, query, inStockBook.Title, inStockBook.Author, inStockBook.Description,
		inStockBook.Publisher, inStockBook.ISBN, inStockBook.PublicationDate, inStockBook.Source).
		Scan(&inStockBook.ID, &inStockBook.CreatedAt, &inStockBook.UpdatedAt)
	if err != nil {
		slog.ErrorContext(ctx, "[inStockBookRepository] Create", "queryRowContext", err)
		return err
	}
	return nil
}

func (r *inStockBookRepository) GetByID(ctx context.Context, id int64) (domain.InStockBook, error) {
	query := `SELECT ` + inStockBookColumns + ` FROM in_stock_books WHERE id = $1`

	var inStockBook domain.InStockBook
	err := scanInStockBook(r.conn.QueryRowContext(ctx, query, id), &inStockBook)
	if err != nil {
		slog.ErrorContext(ctx, "[inStockBookRepository] GetByID", "queryRowContext", err)
		if err == sql.ErrNoRows {
			return inStockBook, domain.ErrNotFound
		}
		return inStockBook, err
	}

	return inStockBook, nil
}

func (r *inStockBookRepository) Delete(ctx context.Context, id int64, tx *sql.Tx) error {
	query := `DELETE FROM in_stock_books WHERE id = $1`

	var res sql.Result
	var err error
	if tx != nil {
		res, err = tx.ExecContext(ctx, query, id)
	} else {
		res, err = r.conn.ExecContext(ctx, query, id)
	}
	if err != nil {
		slog.ErrorContext(ctx, "[inStockBookRepository] Delete", "execContext", err)
		return err
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		slog.ErrorContext(ctx, "[inStockBookRepository] Delete", "rowsAffected", err)
		return err
	}

	if rowsAffected == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func (r *inStockBookRepository) GetListInStockBook(ctx context.Context, param domain.GetListInStockBookRequest) ([]domain.InStockBook, error) {
	query := `SELECT ` + inStockBookColumns + ` FROM in_stock_books WHERE 1=1`

	args := []any{}
	placeholder := 1

	if param.Title != "" {
		query += fmt.Sprintf(" AND title ILIKE $%d", placeholder)
		args = append(args, "%"+param.Title+"%")
		placeholder++
	}
	if param.Author != "" {
		query += fmt.Sprintf(" AND author ILIKE $%d", placeholder)
		args = append(args, "%"+param.Author+"%")
		placeholder++
	}
	if param.Source != "" {
		query += fmt.Sprintf(" AND source = $%d", placeholder)
		args = append(args, param.Source)
		placeholder++
	}

	if param.SortBy != "" {
		query += fmt.Sprintf(" ORDER BY %s", param.SortBy)
		if param.SortOrder != "" {
			query += fmt.Sprintf(" %s", param.SortOrder)
		}
	} else {
		query += ` ORDER BY created_at DESC`
	}

	if param.Page > 0 && param.Limit > 0 {
		offset := (param.Page - 1) * param.Limit
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", param.Limit, offset)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		slog.ErrorContext(ctx, "[inStockBookRepository] GetListInStockBook", "queryContext", err)
		return nil, err
	}
	defer rows.Close()

	var inStockBooks []domain.InStockBook
	for rows.Next() {
		var inStockBook domain.InStockBook
		if err := scanInStockBook(rows, &inStockBook); err != nil {
			slog.ErrorContext(ctx, "[inStockBookRepository] GetListInStockBook", "scan", err)
			return nil, err
		}
		inStockBooks = append(inStockBooks, inStockBook)
	}

	if err := rows.Err(); err != nil {
		slog.ErrorContext(ctx, "[inStockBookRepository] GetListInStockBook", "rowError", err)
		return nil, err
	}

	return inStockBooks, nil
}

func (r *inStockBookRepository) GetListInStockBookCount(ctx context.Context, param domain.GetListInStockBookRequest) (int64, error) {
	query := `SELECT COUNT(*) FROM in_stock_books WHERE 1=1`

	args := []any{}
	placeholder := 1

	if param.Title != "" {
		query += fmt.Sprintf(" AND title ILIKE $%d", placeholder)
		args = append(args, "%"+param.Title+"%")
		placeholder++
	}
	if param.Author != "" {
		query += fmt.Sprintf(" AND author ILIKE $%d", placeholder)
		args = append(args, "%"+param.Author+"%")
		placeholder++
	}
	if param.Source != "" {
		query += fmt.Sprintf(" AND source = $%d", placeholder)
		args = append(args, param.Source)
	}

	var count int64
	err := r.conn.QueryRowContext(ctx, query, args...).Scan(&count)
	if err != nil {
		slog.ErrorContext(ctx, "[inStockBookRepository] GetListInStockBookCount", "queryRowContext", err)
		return 0, err
	}

	return count, nil
}
