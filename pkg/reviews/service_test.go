package reviews

import (
	"context"
	"database/sql"
	"testing"

	"github.com/ruzzleleee/SoftDEVFinalProject-BookTrackingSystem-GoogleBooksAPI/pkg/migrations"
	"github.com/ruzzleleee/SoftDEVFinalProject-BookTrackingSystem-GoogleBooksAPI/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

func newTestDB(t *testing.T) *bun.DB {
	t.Helper()

	sqldb, err := sql.Open(sqliteshim.ShimName, ":memory:")
	require.NoError(t, err)

	db := bun.NewDB(sqldb, sqlitedialect.New())

	_, err = migrations.BringUpToDate(context.Background(), db)
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

func seedUserAndBook(ctx context.Context, t *testing.T, db *bun.DB) (*models.User, *models.Book) {
	t.Helper()

	user := &models.User{Username: "reader", PasswordHash: "not-a-real-hash"}
	_, err := db.NewInsert().Model(user).Exec(ctx)
	require.NoError(t, err)

	book := &models.Book{Title: "Dune", Authors: "Frank Herbert"}
	_, err = db.NewInsert().Model(book).Exec(ctx)
	require.NoError(t, err)

	return user, book
}

func TestServiceUpsertReview_ReplacesExisting(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	user, book := seedUserAndBook(ctx, t, db)

	review, err := svc.UpsertReview(ctx, user.ID, book.ID, 3, "decent")
	require.NoError(t, err)
	assert.Equal(t, 3, review.Rating)

	review, err = svc.UpsertReview(ctx, user.ID, book.ID, 5, "grew on me")
	require.NoError(t, err)
	assert.Equal(t, 5, review.Rating)
	assert.Equal(t, "grew on me", review.ReviewText)

	count, err := db.NewSelect().
		Model((*models.Review)(nil)).
		Where("user_id = ?", user.ID).
		Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestServiceRetrieveReview_NotFound(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	user, book := seedUserAndBook(ctx, t, db)

	_, err := svc.RetrieveReview(ctx, user.ID, book.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestServiceListReviews(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	user, book := seedUserAndBook(ctx, t, db)

	_, err := svc.UpsertReview(ctx, user.ID, book.ID, 4, "")
	require.NoError(t, err)

	reviews, err := svc.ListReviews(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	require.NotNil(t, reviews[0].Book)
	assert.Equal(t, "Dune", reviews[0].Book.Title)
}

func TestServiceDeleteReview(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	user, book := seedUserAndBook(ctx, t, db)

	_, err := svc.UpsertReview(ctx, user.ID, book.ID, 4, "")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteReview(ctx, user.ID, book.ID))

	err = svc.DeleteReview(ctx, user.ID, book.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}
