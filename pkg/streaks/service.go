package streaks

import (
	"context"
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

// UpsertDay records pages read on a date. An existing row for the same
// (user, date) accumulates: pages add up instead of being replaced, so two
// sessions of 10 pages on the same day leave 20.
func (svc *Service) UpsertDay(ctx context.Context, userID int, date string, pages int) error {
	record := &models.ReadingStreak{
		UserID:    userID,
		Date:      date,
		PagesRead: pages,
	}
	_, err := svc.db.NewInsert().
		Model(record).
		On("CONFLICT (user_id, date) DO UPDATE").
		Set("pages_read = rs.pages_read + EXCLUDED.pages_read").
		Exec(ctx)
	return errors.WithStack(err)
}

// MarkDay marks a date as a reading day without recording pages. Marking is
// append-only: a day that's already marked stays marked, and future dates are
// rejected.
func (svc *Service) MarkDay(ctx context.Context, userID int, date string, today time.Time) error {
	if date > today.Format(models.DateFormat) {
		return errcodes.ValidationError(`"date" can't be in the future`)
	}

	record := &models.ReadingStreak{
		UserID:    userID,
		Date:      date,
		PagesRead: 0,
	}
	_, err := svc.db.NewInsert().
		Model(record).
		On("CONFLICT (user_id, date) DO NOTHING").
		Exec(ctx)
	return errors.WithStack(err)
}

// RecordProgress stores the reader's current page and credits today's streak.
// The two writes are deliberately independent: a failed streak update doesn't
// roll back the page update.
func (svc *Service) RecordProgress(ctx context.Context, userID, userBookID, currentPage int) error {
	res, err := svc.db.NewUpdate().
		Model((*models.UserBook)(nil)).
		Set("current_page = ?", currentPage).
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

	today := time.Now().Format(models.DateFormat)
	return svc.UpsertDay(ctx, userID, today, 1)
}

// MonthRecords returns the streak rows for a user within a calendar month.
func (svc *Service) MonthRecords(ctx context.Context, userID, year, month int) ([]*models.ReadingStreak, error) {
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	records := []*models.ReadingStreak{}
	err := svc.db.NewSelect().
		Model(&records).
		Where("rs.user_id = ?", userID).
		Where("rs.date >= ?", first.Format(models.DateFormat)).
		Where("rs.date <= ?", last.Format(models.DateFormat)).
		Order("date ASC").
		Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return records, nil
}

// StreakDates loads every marked date for a user as a set.
func (svc *Service) StreakDates(ctx context.Context, userID int) (map[string]bool, error) {
	dates := []string{}
	err := svc.db.NewSelect().
		Model((*models.ReadingStreak)(nil)).
		Column("date").
		Where("rs.user_id = ?", userID).
		Scan(ctx, &dates)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	set := make(map[string]bool, len(dates))
	for _, d := range dates {
		set[d] = true
	}
	return set, nil
}

// MonthView is everything the calendar page needs for one month.
type MonthView struct {
	Year          int         `json:"year"`
	Month         int         `json:"month"`
	MonthName     string      `json:"month_name"`
	Weeks         [][]DayCell `json:"weeks"`
	CurrentStreak int         `json:"current_streak"`
	TotalDays     int         `json:"total_days"`
	PrevYear      int         `json:"prev_year"`
	PrevMonth     int         `json:"prev_month"`
	NextYear      int         `json:"next_year"`
	NextMonth     int         `json:"next_month"`
}

// GetMonthView builds the calendar grid plus streak stats for a month. Year
// and month are normalized first so paging past December or before January
// rolls over.
func (svc *Service) GetMonthView(ctx context.Context, userID, year, month int, today time.Time) (*MonthView, error) {
	year, month = NormalizeMonth(year, month)

	dates, err := svc.StreakDates(ctx, userID)
	if err != nil {
		return nil, err
	}

	records, err := svc.MonthRecords(ctx, userID, year, month)
	if err != nil {
		return nil, err
	}

	prevYear, prevMonth := NormalizeMonth(year, month-1)
	nextYear, nextMonth := NormalizeMonth(year, month+1)

	return &MonthView{
		Year:          year,
		Month:         month,
		MonthName:     time.Month(month).String(),
		Weeks:         MonthGrid(year, month, dates, today),
		CurrentStreak: CurrentStreak(dates, today),
		TotalDays:     len(records),
		PrevYear:      prevYear,
		PrevMonth:     prevMonth,
		NextYear:      nextYear,
		NextMonth:     nextMonth,
	}, nil
}
