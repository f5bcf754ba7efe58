package books

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

func strPtr(s string) *string {
	return &s
}

func TestServiceFindOrCreateBook_DedupesOnGoogleBooksID(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	first, err := svc.FindOrCreateBook(ctx, &models.Book{
		GoogleBooksID: strPtr("abc123"),
		Title:         "Dune",
		Authors:       "Frank Herbert",
	})
	require.NoError(t, err)

	second, err := svc.FindOrCreateBook(ctx, &models.Book{
		GoogleBooksID: strPtr("abc123"),
		Title:         "Dune (different metadata)",
		Authors:       "Frank Herbert",
	})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	// The original row wins; metadata from the second call is ignored.
	assert.Equal(t, "Dune", second.Title)

	count, err := db.NewSelect().Model((*models.Book)(nil)).Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestServiceFindOrCreateBook_ManualEntriesAlwaysInsert(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	first, err := svc.FindOrCreateBook(ctx, &models.Book{Title: "My Notebook", Authors: "Me"})
	require.NoError(t, err)
	second, err := svc.FindOrCreateBook(ctx, &models.Book{Title: "My Notebook", Authors: "Me"})
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
}

func TestServiceRetrieveBook_NotFound(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	id := 999
	_, err := svc.RetrieveBook(ctx, RetrieveBookOptions{ID: &id})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestServiceListBooks(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	_, err := svc.FindOrCreateBook(ctx, &models.Book{Title: "Zen", Authors: "A"})
	require.NoError(t, err)
	_, err = svc.FindOrCreateBook(ctx, &models.Book{Title: "Anna Karenina", Authors: "B"})
	require.NoError(t, err)

	books, err := svc.ListBooks(ctx, ListBooksOptions{})
	require.NoError(t, err)
	require.Len(t, books, 2)
	assert.Equal(t, "Anna Karenina", books[0].Title)
}
