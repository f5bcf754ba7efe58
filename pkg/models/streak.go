package models

import (
	"github.com/uptrace/bun"
)

// DateFormat is the storage format for streak dates. All dates are naive
// local calendar dates; there is no timezone handling.
const DateFormat = "2006-01-02"

// ReadingStreak marks that a reading session happened on a date, with an
// accumulated page count. Rows are unique per (user, date) and the page count
// only ever grows: upserting an existing date adds to pages_read instead of
// replacing it.
type ReadingStreak struct {
	bun.BaseModel `bun:"table:reading_streaks,alias:rs"`

	ID        int    `bun:",pk,nullzero" json:"id"`
	UserID    int    `bun:",nullzero" json:"user_id"`
	User      *User  `bun:"rel:belongs-to,join:user_id=id" json:"user,omitempty"`
	Date      string `bun:",nullzero" json:"date"`
	PagesRead int    `json:"pages_read"`
}
