package streaks

import (
	"context"
	"database/sql"
	"testing"
	"time"

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

func createTestUser(ctx context.Context, t *testing.T, db *bun.DB, username string) *models.User {
	t.Helper()

	user := &models.User{
		Username:     username,
		PasswordHash: "not-a-real-hash",
	}
	_, err := db.NewInsert().Model(user).Exec(ctx)
	require.NoError(t, err)
	return user
}

func createTestUserBook(ctx context.Context, t *testing.T, db *bun.DB, userID int) *models.UserBook {
	t.Helper()

	book := &models.Book{
		Title:   "Test Book",
		Authors: "Test Author",
	}
	_, err := db.NewInsert().Model(book).Exec(ctx)
	require.NoError(t, err)

	userBook := &models.UserBook{
		UserID:    userID,
		BookID:    book.ID,
		Status:    models.StatusCurrentlyReading,
		DateAdded: time.Now(),
	}
	_, err = db.NewInsert().Model(userBook).Exec(ctx)
	require.NoError(t, err)
	return userBook
}

func TestServiceUpsertDay_Accumulates(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	user := createTestUser(ctx, t, db, "reader")

	require.NoError(t, svc.UpsertDay(ctx, user.ID, "2024-03-01", 10))
	require.NoError(t, svc.UpsertDay(ctx, user.ID, "2024-03-01", 10))

	records := []*models.ReadingStreak{}
	err := db.NewSelect().Model(&records).Where("user_id = ?", user.ID).Scan(ctx)
	require.NoError(t, err)

	require.Len(t, records, 1)
	assert.Equal(t, "2024-03-01", records[0].Date)
	assert.Equal(t, 20, records[0].PagesRead)
}

func TestServiceMarkDay_Idempotent(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	user := createTestUser(ctx, t, db, "reader")
	today := date(2024, 3, 15)

	require.NoError(t, svc.MarkDay(ctx, user.ID, "2024-03-14", today))
	require.NoError(t, svc.MarkDay(ctx, user.ID, "2024-03-14", today))

	records := []*models.ReadingStreak{}
	err := db.NewSelect().Model(&records).Where("user_id = ?", user.ID).Scan(ctx)
	require.NoError(t, err)

	require.Len(t, records, 1)
	assert.Equal(t, 0, records[0].PagesRead)
}

func TestServiceMarkDay_PreservesPages(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	user := createTestUser(ctx, t, db, "reader")
	today := date(2024, 3, 15)

	require.NoError(t, svc.UpsertDay(ctx, user.ID, "2024-03-14", 25))
	// Marking an already-recorded day must not reset its page count.
	require.NoError(t, svc.MarkDay(ctx, user.ID, "2024-03-14", today))

	record := &models.ReadingStreak{}
	err := db.NewSelect().Model(record).Where("user_id = ?", user.ID).Scan(ctx)
	require.NoError(t, err)
	assert.Equal(t, 25, record.PagesRead)
}

func TestServiceMarkDay_RejectsFutureDates(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	user := createTestUser(ctx, t, db, "reader")

	err := svc.MarkDay(ctx, user.ID, "2024-03-16", date(2024, 3, 15))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "future")
}

func TestServiceRecordProgress(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	user := createTestUser(ctx, t, db, "reader")
	userBook := createTestUserBook(ctx, t, db, user.ID)

	require.NoError(t, svc.RecordProgress(ctx, user.ID, userBook.ID, 150))

	updated := &models.UserBook{}
	err := db.NewSelect().Model(updated).Where("ub.id = ?", userBook.ID).Scan(ctx)
	require.NoError(t, err)
	assert.Equal(t, 150, updated.CurrentPage)

	// Progress credits today's streak with a single page delta.
	record := &models.ReadingStreak{}
	err = db.NewSelect().Model(record).Where("user_id = ?", user.ID).Scan(ctx)
	require.NoError(t, err)
	assert.Equal(t, time.Now().Format(models.DateFormat), record.Date)
	assert.Equal(t, 1, record.PagesRead)
}

func TestServiceRecordProgress_OtherUsersBook(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	owner := createTestUser(ctx, t, db, "owner")
	other := createTestUser(ctx, t, db, "other")
	userBook := createTestUserBook(ctx, t, db, owner.ID)

	err := svc.RecordProgress(ctx, other.ID, userBook.ID, 50)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestServiceGetMonthView(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	user := createTestUser(ctx, t, db, "reader")

	require.NoError(t, svc.UpsertDay(ctx, user.ID, "2024-03-01", 5))
	require.NoError(t, svc.UpsertDay(ctx, user.ID, "2024-03-02", 5))
	require.NoError(t, svc.UpsertDay(ctx, user.ID, "2024-02-15", 5))

	view, err := svc.GetMonthView(ctx, user.ID, 2024, 3, date(2024, 3, 2))
	require.NoError(t, err)

	assert.Equal(t, 2024, view.Year)
	assert.Equal(t, 3, view.Month)
	assert.Equal(t, "March", view.MonthName)
	assert.Equal(t, 2, view.TotalDays)
	assert.Equal(t, 2, view.CurrentStreak)
	assert.Equal(t, 2024, view.PrevYear)
	assert.Equal(t, 2, view.PrevMonth)
	assert.Equal(t, 2024, view.NextYear)
	assert.Equal(t, 4, view.NextMonth)

	for _, week := range view.Weeks {
		assert.Len(t, week, 7)
	}
}

func TestServiceGetMonthView_RollsOverPaging(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	user := createTestUser(ctx, t, db, "reader")

	view, err := svc.GetMonthView(ctx, user.ID, 2024, 13, date(2024, 12, 31))
	require.NoError(t, err)
	assert.Equal(t, 2025, view.Year)
	assert.Equal(t, 1, view.Month)

	view, err = svc.GetMonthView(ctx, user.ID, 2024, 0, date(2024, 1, 1))
	require.NoError(t, err)
	assert.Equal(t, 2023, view.Year)
	assert.Equal(t, 12, view.Month)
}
