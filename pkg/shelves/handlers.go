package shelves

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/ruzzleleee/SoftDEVFinalProject-BookTrackingSystem-GoogleBooksAPI/pkg/auth"
	"github.com/ruzzleleee/SoftDEVFinalProject-BookTrackingSystem-GoogleBooksAPI/pkg/errcodes"
	"github.com/ruzzleleee/SoftDEVFinalProject-BookTrackingSystem-GoogleBooksAPI/pkg/models"
	"github.com/ruzzleleee/SoftDEVFinalProject-BookTrackingSystem-GoogleBooksAPI/pkg/streaks"
)

type handler struct {
	shelfService  *Service
	streakService *streaks.Service
}

// shelfBook decorates a shelf row with the derived reading progress so list
// consumers don't need the page math.
type shelfBook struct {
	*models.UserBook
	Progress int `json:"progress"`
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := auth.GetUserIDFromContext(c)
	if !ok {
		return errcodes.Unauthorized("Authentication required")
	}

	params := ListShelfQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	userBooks, err := h.shelfService.ListBooks(ctx, userID, params.Status)
	if err != nil {
		return errors.WithStack(err)
	}

	books := make([]shelfBook, 0, len(userBooks))
	for _, ub := range userBooks {
		books = append(books, shelfBook{ub, ub.ProgressPercent()})
	}

	resp := struct {
		Books []shelfBook `json:"books"`
		Total int         `json:"total"`
	}{books, len(books)}

	return errors.WithStack(c.JSON(http.StatusOK, resp))
}

func (h *handler) add(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := auth.GetUserIDFromContext(c)
	if !ok {
		return errcodes.Unauthorized("Authentication required")
	}

	params := AddShelfBookPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	userBook, err := h.shelfService.AddBook(ctx, userID, params.BookID, params.Status)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusCreated, userBook))
}

func (h *handler) remove(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := auth.GetUserIDFromContext(c)
	if !ok {
		return errcodes.Unauthorized("Authentication required")
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Book")
	}

	if err := h.shelfService.RemoveBook(ctx, userID, id); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// updateProgress stores the reader's position in a book and credits today's
// reading streak.
func (h *handler) updateProgress(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := auth.GetUserIDFromContext(c)
	if !ok {
		return errcodes.Unauthorized("Authentication required")
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Book")
	}

	params := UpdateProgressPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	if err := h.streakService.RecordProgress(ctx, userID, id, params.CurrentPage); err != nil {
		return err
	}

	userBook, err := h.shelfService.Retrieve(ctx, userID, id)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, userBook))
}

// finish moves a book to the finished shelf, removing it from currently
// reading.
func (h *handler) finish(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := auth.GetUserIDFromContext(c)
	if !ok {
		return errcodes.Unauthorized("Authentication required")
	}

	params := FinishBookPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	userBook, err := h.shelfService.FinishBook(ctx, userID, params.BookID)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, userBook))
}
