package books

import (
	"context"
	"database/sql"
	"time"

	"github.com/pkg/errors"
	"github.com/ruzzleleee/SoftDEVFinalProject-BookTrackingSystem-GoogleBooksAPI/pkg/errcodes"
	"github.com/ruzzleleee/SoftDEVFinalProject-BookTrackingSystem-GoogleBooksAPI/pkg/models"
	"github.com/uptrace/bun"
)

type RetrieveBookOptions struct {
	ID            *int
	GoogleBooksID *string
}

type ListBooksOptions struct {
	Limit  *int
	Offset *int
}

type Service struct {
	db *bun.DB
}

func NewService(db *bun.DB) *Service {
	return &Service{db}
}

// FindOrCreateBook dedupes on the Google Books ID. A book without one is
// always inserted as a new row since there's nothing reliable to match on.
func (svc *Service) FindOrCreateBook(ctx context.Context, book *models.Book) (*models.Book, error) {
	if book.GoogleBooksID != nil {
		existing, err := svc.RetrieveBook(ctx, RetrieveBookOptions{GoogleBooksID: book.GoogleBooksID})
		if err == nil {
			return existing, nil
		}
		if !errors.Is(err, errcodes.NotFound("Book")) {
			return nil, err
		}
	}

	now := time.Now()
	if book.CreatedAt.IsZero() {
		book.CreatedAt = now
	}
	book.UpdatedAt = book.CreatedAt

	_, err := svc.db.NewInsert().Model(book).Exec(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return book, nil
}

func (svc *Service) RetrieveBook(ctx context.Context, opts RetrieveBookOptions) (*models.Book, error) {
	book := &models.Book{}
	q := svc.db.NewSelect().Model(book)
	if opts.ID != nil {
		q = q.Where("b.id = ?", *opts.ID)
	}
	if opts.GoogleBooksID != nil {
		q = q.Where("b.google_books_id = ?", *opts.GoogleBooksID)
	}

	err := q.Limit(1).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errcodes.NotFound("Book")
	} else if err != nil {
		return nil, errors.WithStack(err)
	}
	return book, nil
}

func (svc *Service) ListBooks(ctx context.Context, opts ListBooksOptions) ([]*models.Book, error) {
	books := []*models.Book{}
	q := svc.db.NewSelect().Model(&books).Order("title ASC")
	if opts.Limit != nil {
		q = q.Limit(*opts.Limit)
	}
	if opts.Offset != nil {
		q = q.Offset(*opts.Offset)
	}

	err := q.Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return books, nil
}
