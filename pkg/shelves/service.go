package shelves

import (
	"context"
	"database/sql"
	"time"

	"github.com/pkg/errors"
	"github.com/ruzzleleee/SoftDEVFinalProject-BookTrackingSystem-GoogleBooksAPI/pkg/errcodes"
	"github.com/ruzzleleee/SoftDEVFinalProject-BookTrackingSystem-GoogleBooksAPI/pkg/models"
	"github.com/uptrace/bun"
)

type Service struct {
	db *bun.DB
}

func NewService(db *bun.DB) *Service {
	return &Service{db}
}

// AddBook puts a book on one of the user's shelves. Adding a book that's
// already on that shelf refreshes date_added instead of creating a duplicate,
// which bumps it to the top of the list.
func (svc *Service) AddBook(ctx context.Context, userID, bookID int, status string) (*models.UserBook, error) {
	userBook := &models.UserBook{
		UserID:    userID,
		BookID:    bookID,
		Status:    status,
		DateAdded: time.Now(),
	}
	_, err := svc.db.NewInsert().
		Model(userBook).
		On("CONFLICT (user_id, book_id, status) DO UPDATE").
		Set("date_added = CURRENT_TIMESTAMP").
		Exec(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return svc.RetrieveByBook(ctx, userID, bookID, status)
}

// ListBooks returns the user's shelf entries, most recently added first.
func (svc *Service) ListBooks(ctx context.Context, userID int, status string) ([]*models.UserBook, error) {
	userBooks := []*models.UserBook{}
	q := svc.db.NewSelect().
		Model(&userBooks).
		Relation("Book").
		Where("ub.user_id = ?", userID).
		Order("date_added DESC")
	if status != "" {
		q = q.Where("ub.status = ?", status)
	}

	err := q.Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return userBooks, nil
}

// Retrieve fetches a single shelf entry, scoped to the user so one reader
// can't see another's entries.
func (svc *Service) Retrieve(ctx context.Context, userID, userBookID int) (*models.UserBook, error) {
	userBook := &models.UserBook{}
	err := svc.db.NewSelect().
		Model(userBook).
		Relation("Book").
		Where("ub.id = ?", userBookID).
		Where("ub.user_id = ?", userID).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errcodes.NotFound("Book")
	} else if err != nil {
		return nil, errors.WithStack(err)
	}
	return userBook, nil
}

// RetrieveByBook fetches a shelf entry by book and status.
func (svc *Service) RetrieveByBook(ctx context.Context, userID, bookID int, status string) (*models.UserBook, error) {
	userBook := &models.UserBook{}
	err := svc.db.NewSelect().
		Model(userBook).
		Where("ub.user_id = ?", userID).
		Where("ub.book_id = ?", bookID).
		Where("ub.status = ?", status).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errcodes.NotFound("Book")
	} else if err != nil {
		return nil, errors.WithStack(err)
	}
	return userBook, nil
}

// RemoveBook deletes a shelf entry.
func (svc *Service) RemoveBook(ctx context.Context, userID, userBookID int) error {
	res, err := svc.db.NewDelete().
		Model((*models.UserBook)(nil)).
		Where("id = ?", userBookID).
		Where("user_id = ?", userID).
		Exec(ctx)
	if err != nil {
		return errors.WithStack(err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return errors.WithStack(err)
	}
	if rows == 0 {
		return errcodes.NotFound("Book")
	}
	return nil
}

// FinishBook moves a book from currently reading to finished. The two writes
// happen in one transaction so the book never shows up on both shelves.
func (svc *Service) FinishBook(ctx context.Context, userID, bookID int) (*models.UserBook, error) {
	now := time.Now()
	err := svc.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewDelete().
			Model((*models.UserBook)(nil)).
			Where("user_id = ?", userID).
			Where("book_id = ?", bookID).
			Where("status = ?", models.StatusCurrentlyReading).
			Exec(ctx)
		if err != nil {
			return errors.WithStack(err)
		}

		finished := &models.UserBook{
			UserID:       userID,
			BookID:       bookID,
			Status:       models.StatusFinished,
			DateAdded:    now,
			DateFinished: &now,
		}
		_, err = tx.NewInsert().
			Model(finished).
			On("CONFLICT (user_id, book_id, status) DO UPDATE").
			Set("date_added = CURRENT_TIMESTAMP").
			Set("date_finished = EXCLUDED.date_finished").
			Exec(ctx)
		return errors.WithStack(err)
	})
	if err != nil {
		return nil, err
	}
	return svc.RetrieveByBook(ctx, userID, bookID, models.StatusFinished)
}
