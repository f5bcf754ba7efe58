package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Reading statuses. The same book may occupy multiple statuses for a user as
// independent rows, but (user, book, status) is unique.
const (
	StatusCurrentlyReading = "currently_reading"
	StatusFinished         = "finished"
	StatusFavourite        = "favourite"
)

type UserBook struct {
	bun.BaseModel `bun:"table:user_books,alias:ub"`

	ID           int        `bun:",pk,nullzero" json:"id"`
	UserID       int        `bun:",nullzero" json:"user_id"`
	User         *User      `bun:"rel:belongs-to,join:user_id=id" json:"user,omitempty"`
	BookID       int        `bun:",nullzero" json:"book_id"`
	Book         *Book      `bun:"rel:belongs-to,join:book_id=id" json:"book,omitempty"`
	Status       string     `bun:",nullzero" json:"status"`
	CurrentPage  int        `json:"current_page"`
	DateAdded    time.Time  `json:"date_added"`
	DateFinished *time.Time `json:"date_finished"`
}

// ProgressPercent returns the reading progress as a whole percentage. It
// requires the Book relation to be loaded; a zero or unknown page count
// yields 0.
func (ub *UserBook) ProgressPercent() int {
	if ub.Book == nil || ub.Book.PageCount <= 0 {
		return 0
	}
	return ub.CurrentPage * 100 / ub.Book.PageCount
}
