package streaks

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/ruzzleleee/SoftDEVFinalProject-BookTrackingSystem-GoogleBooksAPI/pkg/binder"
	"github.com/ruzzleleee/SoftDEVFinalProject-BookTrackingSystem-GoogleBooksAPI/pkg/errcodes"
	"github.com/ruzzleleee/SoftDEVFinalProject-BookTrackingSystem-GoogleBooksAPI/pkg/models"
	"github.com/segmentio/encoding/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContext(t *testing.T, userID int, payload, method, path string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	b, err := binder.New()
	require.NoError(t, err)
	e.Binder = b
	e.HTTPErrorHandler = errcodes.NewHandler().Handle

	req := httptest.NewRequest(method, path, strings.NewReader(payload))
	if payload != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rr := httptest.NewRecorder()
	c := e.NewContext(req, rr)
	c.Set("user_id", userID)
	return c, rr
}

func TestHandlerCalendar(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	h := &handler{streakService: svc}
	ctx := t.Context()

	user := createTestUser(ctx, t, db, "reader")
	require.NoError(t, svc.UpsertDay(ctx, user.ID, time.Now().Format(models.DateFormat), 10))

	now := time.Now()
	path := fmt.Sprintf("/streaks/calendar?year=%d&month=%d", now.Year(), int(now.Month()))
	c, rr := newTestContext(t, user.ID, "", http.MethodGet, path)

	require.NoError(t, h.calendar(c))
	assert.Equal(t, http.StatusOK, rr.Code)

	view := MonthView{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &view))
	assert.Equal(t, now.Year(), view.Year)
	assert.Equal(t, int(now.Month()), view.Month)
	assert.Equal(t, 1, view.TotalDays)
	assert.Equal(t, 1, view.CurrentStreak)
}

func TestHandlerCalendar_DefaultsToCurrentMonth(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	h := &handler{streakService: svc}

	user := createTestUser(t.Context(), t, db, "reader")

	c, rr := newTestContext(t, user.ID, "", http.MethodGet, "/streaks/calendar")

	require.NoError(t, h.calendar(c))
	assert.Equal(t, http.StatusOK, rr.Code)

	view := MonthView{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &view))
	now := time.Now()
	assert.Equal(t, now.Year(), view.Year)
	assert.Equal(t, int(now.Month()), view.Month)
}

func TestHandlerMarkDay(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	h := &handler{streakService: svc}
	ctx := t.Context()

	user := createTestUser(ctx, t, db, "reader")

	yesterday := time.Now().AddDate(0, 0, -1).Format(models.DateFormat)
	payload := fmt.Sprintf(`{"date":%q}`, yesterday)
	c, rr := newTestContext(t, user.ID, payload, http.MethodPost, "/streaks/days")

	require.NoError(t, h.markDay(c))
	assert.Equal(t, http.StatusOK, rr.Code)

	records := []*models.ReadingStreak{}
	err := db.NewSelect().Model(&records).Where("user_id = ?", user.ID).Scan(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, yesterday, records[0].Date)
}

func TestHandlerMarkDay_BadDateFormat(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	h := &handler{streakService: svc}

	user := createTestUser(t.Context(), t, db, "reader")

	c, _ := newTestContext(t, user.ID, `{"date":"03/15/2024"}`, http.MethodPost, "/streaks/days")

	err := h.markDay(c)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "YYYY-MM-DD")
}
