package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Review is a user's rating and free-text review of a book. There is at most
// one per (user, book); saving again overwrites rating and text.
type Review struct {
	bun.BaseModel `bun:"table:reviews,alias:r"`

	ID         int       `bun:",pk,nullzero" json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	UserID     int       `bun:",nullzero" json:"user_id"`
	User       *User     `bun:"rel:belongs-to,join:user_id=id" json:"user,omitempty"`
	BookID     int       `bun:",nullzero" json:"book_id"`
	Book       *Book     `bun:"rel:belongs-to,join:book_id=id" json:"book,omitempty"`
	Rating     int       `json:"rating"`
	ReviewText string    `json:"review_text"`
}
