package shelves

// ListShelfQuery filters the shelf listing by status.
type ListShelfQuery struct {
	Status string `query:"status" json:"status" validate:"omitempty,oneof=currently_reading finished favourite"`
}

// AddShelfBookPayload adds a book to a shelf.
type AddShelfBookPayload struct {
	BookID int    `json:"book_id" validate:"required,min=1"`
	Status string `json:"status" validate:"required,oneof=currently_reading finished favourite"`
}

// UpdateProgressPayload records the current page in a book. Pages aren't
// clamped to the book's page count since catalog counts are often wrong.
type UpdateProgressPayload struct {
	CurrentPage int `json:"current_page" validate:"min=0"`
}

// FinishBookPayload marks a book as finished.
type FinishBookPayload struct {
	BookID int `json:"book_id" validate:"required,min=1"`
}
