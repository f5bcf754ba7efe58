package streaks

import (
	"time"

	"github.com/ruzzleleee/SoftDEVFinalProject-BookTrackingSystem-GoogleBooksAPI/pkg/models"
)

// Display classes for calendar cells.
const (
	DayClassTodayStreak = "today-streak"
	DayClassToday       = "today"
	DayClassStreak      = "streak"
	DayClassPlain       = "plain"
)

// DayCell is one cell in the month grid. Day is 0 for padding cells outside
// the month.
type DayCell struct {
	Day   int    `json:"day"`
	Date  string `json:"date,omitempty"`
	Class string `json:"class,omitempty"`
}

// MonthGrid lays out a month as Monday-first weeks. Cells before the first
// day and after the last day are blank so every week has exactly seven cells.
func MonthGrid(year, month int, streakDates map[string]bool, today time.Time) [][]DayCell {
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := first.AddDate(0, 1, -1).Day()

	// time.Weekday is Sunday-first; shift so Monday is 0.
	offset := (int(first.Weekday()) + 6) % 7
	todayStr := today.Format(models.DateFormat)

	cells := make([]DayCell, 0, offset+daysInMonth)
	for i := 0; i < offset; i++ {
		cells = append(cells, DayCell{})
	}
	for day := 1; day <= daysInMonth; day++ {
		date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC).Format(models.DateFormat)
		class := DayClassPlain
		isToday := date == todayStr
		hasStreak := streakDates[date]
		switch {
		case isToday && hasStreak:
			class = DayClassTodayStreak
		case isToday:
			class = DayClassToday
		case hasStreak:
			class = DayClassStreak
		}
		cells = append(cells, DayCell{Day: day, Date: date, Class: class})
	}
	for len(cells)%7 != 0 {
		cells = append(cells, DayCell{})
	}

	weeks := make([][]DayCell, 0, len(cells)/7)
	for i := 0; i < len(cells); i += 7 {
		weeks = append(weeks, cells[i:i+7])
	}
	return weeks
}

// CurrentStreak counts consecutive marked days ending today, walking
// backwards. A day without a mark today means the streak is 0, regardless of
// history.
func CurrentStreak(streakDates map[string]bool, today time.Time) int {
	streak := 0
	day := today
	for streakDates[day.Format(models.DateFormat)] {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

// NormalizeMonth resolves out-of-range months from paging: month 13 rolls
// over to January of the next year, month 0 to December of the previous.
func NormalizeMonth(year, month int) (int, int) {
	if month > 12 {
		return year + 1, 1
	}
	if month < 1 {
		return year - 1, 12
	}
	return year, month
}
