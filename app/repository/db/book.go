package db

import (
	"book-service/app/domain"
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

type bookRepository struct {
	conn *sql.DB
}

func NewBookRepository(db *sql.DB) domain.BookRepository {
	return &bookRepository{db}
}

const bookColumns = `id, title, author, description, publisher, isbn, publication_date,
	classification, book_status, location, created_at, updated_at`

func scanBook(row interface{ Scan(dest ...any) error }, book *domain.Book) error {
	return row.Scan(&book.ID, &book.Title, &book.Author, &book.Description, &book.Publisher,
		&book.ISBN, &book.PublicationDate, &book.Classification, &book.BookStatus,
		&book.Location, &book.CreatedAt, &book.UpdatedAt)
}

func (r *bookRepository) Create(ctx context.Context, book *domain.Book, tx *sql.Tx) error {
	query := `INSERT INTO books (title, author, description, publisher, isbn, publication_date, classification, book_status, location)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	RETURNING id, created_at, updated_at`

	var row *sql.Row
	if tx != nil {
		row = tx.QueryRowContext(ctx, query, book.Title, book.Author, book.Description, book.Publisher,
			book.ISBN, book.PublicationDate, book.Classification, book.BookStatus, book.Location)
	} else {
		row = r.conn.QueryRowContext(ctx, query, book.Title, book.Author, book.Description, book.Publisher,
			book.ISBN, book.PublicationDate, book.Classification, book.BookStatus, book.Location)
	}

	if err := row.Scan(&book.ID, &book.CreatedAt, &book.UpdatedAt); err != nil {
		slog.ErrorContext(ctx, "[bookRepository] Create", "queryRowContext", err)
		return err
	}
	return nil
}

func (r *bookRepository) GetByID(ctx context.Context, id int64) (domain.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books WHERE id = $1`

	var book domain.Book
	err := scanBook(r.conn.QueryRowContext(ctx, query, id), &book)
	if err != nil {
		slog.ErrorContext(ctx, "[bookRepository] GetByID", "queryRowContext", err)
		if err == sql.ErrNoRows {
			return book, domain.ErrNotFound
		}
		return book, err
	}

	return book, nil
}

func (r *bookRepository) Update(ctx context.Context, book *domain.Book) error {
	query := `UPDATE books SET title = $1, author = $2, description = $3, publisher = $4, isbn = $5,
	publication_date = $6, classification = $7, book_status = $8, location = $9, updated_at = NOW()
	WHERE id = $10
	RETURNING updated_at`

	err := r.conn.QueryRowContext(ctx, query, book.Title, book.Author, book.Description, book.Publisher,
		book.ISBN, book.PublicationDate, book.Classification, book.BookStatus, book.Location, book.ID).
		Scan(&book.UpdatedAt)
	if err != nil {
		slog.ErrorContext(ctx, "[bookRepository] Update", "queryRowContext", err)
		if err == sql.ErrNoRows {
			return domain.ErrNotFound
		}
		return err
	}

	return nil
}

func (r *bookRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM books WHERE id = $1`

	res, err := r.conn.ExecContext(ctx, query, id)
	if err != nil {
		slog.ErrorContext(ctx, "[bookRepository] Delete", "execContext", err)
		return err
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		slog.ErrorContext(ctx, "[bookRepository] Delete", "rowsAffected", err)
		return err
	}

	if rowsAffected == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func (r *bookRepository) GetListBook(ctx context.Context, param domain.GetListBookRequest) ([]domain.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books WHERE 1=1`

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
	if param.Classification != "" {
		query += fmt.Sprintf(" AND classification = $%d", placeholder)
		args = append(args, param.Classification)
		placeholder++
	}
	if param.BookStatus != "" {
		query += fmt.Sprintf(" AND book_status = $%d", placeholder)
		args = append(args, param.BookStatus)
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
		slog.ErrorContext(ctx, "[bookRepository] GetListBook", "queryContext", err)
		return nil, err
	}
	defer rows.Close()

	var books []domain.Book
	for rows.Next() {
		var book domain.Book
		if err := scanBook(rows, &book); err != nil {
			slog.ErrorContext(ctx, "[bookRepository] GetListBook", "scan", err)
			return nil, err
		}
		books = append(books, book)
	}

	if err := rows.Err(); err != nil {
		slog.ErrorContext(ctx, "[bookRepository] GetListBook", "rowError", err)
		return nil, err
	}

	return books, nil
}

func (r *bookRepository) GetListBookCount(ctx context.Context, param domain.GetListBookRequest) (int64, error) {
	query := `SELECT COUNT(*) FROM books WHERE 1=1`

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
	if param.Classification != "" {
		query += fmt.Sprintf(" AND classification = $%d", placeholder)
		args = append(args, param.Classification)
		placeholder++
	}
	if param.BookStatus != "" {
		query += fmt.Sprintf(" AND book_status = $%d", placeholder)
		args = append(args, param.BookStatus)
	}

	var count int64
	err := r.conn.QueryRowContext(ctx, query, args...).Scan(&count)
	if err != nil {
		slog.ErrorContext(ctx, "[bookRepository] GetListBookCount", "queryRowContext", err)
		return 0, err
	}

	return count, nil
}

func (r *bookRepository) WithTransaction(ctx context.Context, fn func(context.Context, *sql.Tx) error) error {
	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		slog.ErrorContext(ctx, "[bookRepository] WithTransaction", "beginTx", err)
		return err
	}

	if err := fn(ctx, tx); err != nil {
		if rollbackErr := tx.Rollback(); rollbackErr != nil {
			slog.ErrorContext(ctx, "[bookRepository] WithTransaction", "rollback", rollbackErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		slog.ErrorContext(ctx, "[bookRepository] WithTransaction", "commit", err)
		return err
	}

	return nil
}
