package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Book is a catalog entry. Rows are created on first reference from a user's
// collection and are immutable afterwards. GoogleBooksID is optional;
// duplicates are only prevented when it matches exactly.
type Book struct {
	bun.BaseModel `bun:"table:books,alias:b"`

	ID            int       `bun:",pk,nullzero" json:"id"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	GoogleBooksID *string   `json:"google_books_id"`
	Title         string    `bun:",nullzero" json:"title"`
	Authors       string    `json:"authors"`
	Description   string    `json:"description"`
	CoverURL      string    `json:"cover_url"`
	PageCount     int       `json:"page_count"`
	PublishedDate string    `json:"published_date"`
	Categories    string    `json:"categories"`
}
