package reviews

// UpsertReviewPayload creates or replaces the user's review of a book.
type UpsertReviewPayload struct {
	BookID     int    `json:"book_id" validate:"required,min=1"`
	Rating     int    `json:"rating" validate:"required,min=1,max=5"`
	ReviewText string `json:"review_text" validate:"omitempty,max=10000"`
}
