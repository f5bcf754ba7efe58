package books

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/ruzzleleee/SoftDEVFinalProject-BookTrackingSystem-GoogleBooksAPI/pkg/catalog"
	"github.com/ruzzleleee/SoftDEVFinalProject-BookTrackingSystem-GoogleBooksAPI/pkg/errcodes"
	"github.com/ruzzleleee/SoftDEVFinalProject-BookTrackingSystem-GoogleBooksAPI/pkg/models"
)

type handler struct {
	bookService   *Service
	catalogClient *catalog.Client
}

// search proxies the query to the Google Books catalog. Results are not
// persisted until a book is actually added to a shelf.
func (h *handler) search(c echo.Context) error {
	ctx := c.Request().Context()

	params := SearchBooksQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	results, err := h.catalogClient.Search(ctx, params.Query, params.MaxResults)
	if err != nil {
		return errors.WithStack(err)
	}

	resp := struct {
		Books []*models.Book `json:"books"`
		Total int            `json:"total"`
	}{results, len(results)}

	return errors.WithStack(c.JSON(http.StatusOK, resp))
}

func (h *handler) retrieve(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Book")
	}

	book, err := h.bookService.RetrieveBook(ctx, RetrieveBookOptions{
		ID: &id,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, book))
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	params := ListBooksQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	books, err := h.bookService.ListBooks(ctx, ListBooksOptions{
		Limit:  &params.Limit,
		Offset: &params.Offset,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	resp := struct {
		Books []*models.Book `json:"books"`
	}{books}

	return errors.WithStack(c.JSON(http.StatusOK, resp))
}

// create adds a book to the local catalog. When a Google Books ID is given
// the metadata comes from the catalog; otherwise the payload supplies it.
func (h *handler) create(c echo.Context) error {
	ctx := c.Request().Context()

	params := CreateBookPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	var book *models.Book
	if params.GoogleBooksID != nil {
		fetched, err := h.catalogClient.GetByID(ctx, *params.GoogleBooksID)
		if err != nil {
			return errors.WithStack(err)
		}
		book = fetched
	} else {
		if params.Title == "" {
			return errcodes.ValidationError(`"title" is required`)
		}
		book = &models.Book{
			Title:         params.Title,
			Authors:       params.Authors,
			Description:   params.Description,
			CoverURL:      params.CoverURL,
			PageCount:     params.PageCount,
			PublishedDate: params.PublishedDate,
			Categories:    params.Categories,
		}
	}

	book, err := h.bookService.FindOrCreateBook(ctx, book)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusCreated, book))
}
