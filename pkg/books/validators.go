package books

// SearchBooksQuery is the query string for catalog searches.
type SearchBooksQuery struct {
	Query      string `query:"q" json:"q" validate:"required,min=1"`
	MaxResults int    `query:"max_results" json:"max_results" default:"20" validate:"min=1,max=40"`
}

// ListBooksQuery is the query string for listing local books.
type ListBooksQuery struct {
	Limit  int `query:"limit" json:"limit" default:"50" validate:"min=1,max=100"`
	Offset int `query:"offset" json:"offset" validate:"min=0"`
}

// CreateBookPayload is the request body for adding a book. Either a Google
// Books ID or a manual title is required.
type CreateBookPayload struct {
	GoogleBooksID *string `json:"google_books_id" validate:"omitempty,min=1"`
	Title         string  `json:"title" validate:"omitempty,max=500"`
	Authors       string  `json:"authors" validate:"omitempty,max=500"`
	Description   string  `json:"description"`
	CoverURL      string  `json:"cover_url" validate:"omitempty,max=1000"`
	PageCount     int     `json:"page_count" validate:"min=0"`
	PublishedDate string  `json:"published_date" validate:"omitempty,max=50"`
	Categories    string  `json:"categories" validate:"omitempty,max=500"`
}
