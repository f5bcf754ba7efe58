package reviews

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

// UpsertReview writes the user's review of a book. Each user gets one review
// per book; reviewing again replaces the rating and text.
func (svc *Service) UpsertReview(ctx context.Context, userID, bookID, rating int, reviewText string) (*models.Review, error) {
	now := time.Now()
	review := &models.Review{
		UserID:     userID,
		BookID:     bookID,
		Rating:     rating,
		ReviewText: reviewText,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	_, err := svc.db.NewInsert().
		Model(review).
		On("CONFLICT (user_id, book_id) DO UPDATE").
		Set("rating = EXCLUDED.rating").
		Set("review_text = EXCLUDED.review_text").
		Set("updated_at = CURRENT_TIMESTAMP").
		Exec(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return svc.RetrieveReview(ctx, userID, bookID)
}

// RetrieveReview fetches the user's review of a book.
func (svc *Service) RetrieveReview(ctx context.Context, userID, bookID int) (*models.Review, error) {
	review := &models.Review{}
	err := svc.db.NewSelect().
		Model(review).
		Where("r.user_id = ?", userID).
		Where("r.book_id = ?", bookID).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errcodes.NotFound("Review")
	} else if err != nil {
		return nil, errors.WithStack(err)
	}
	return review, nil
}

// ListReviews returns all reviews a user has written, newest first.
func (svc *Service) ListReviews(ctx context.Context, userID int) ([]*models.Review, error) {
	reviews := []*models.Review{}
	err := svc.db.NewSelect().
		Model(&reviews).
		Relation("Book").
		Where("r.user_id = ?", userID).
		Order("r.updated_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return reviews, nil
}

// DeleteReview removes the user's review of a book.
func (svc *Service) DeleteReview(ctx context.Context, userID, bookID int) error {
	res, err := svc.db.NewDelete().
		Model((*models.Review)(nil)).
		Where("user_id = ?", userID).
		Where("book_id = ?", bookID).
		Exec(ctx)
	if err != nil {
		return errors.WithStack(err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return errors.WithStack(err)
	}
	if rows == 0 {
		return errcodes.NotFound("Review")
	}
	return nil
}
