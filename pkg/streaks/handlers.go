package streaks

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/ruzzleleee/SoftDEVFinalProject-BookTrackingSystem-GoogleBooksAPI/pkg/auth"
	"github.com/ruzzleleee/SoftDEVFinalProject-BookTrackingSystem-GoogleBooksAPI/pkg/errcodes"
)

type handler struct {
	streakService *Service
}

// calendar returns the month view. Without query params it shows the current
// month; out-of-range months from paging buttons roll over to the adjacent
// year.
func (h *handler) calendar(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := auth.GetUserIDFromContext(c)
	if !ok {
		return errcodes.Unauthorized("Authentication required")
	}

	params := CalendarQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	now := time.Now()
	year := params.Year
	month := params.Month
	if year == 0 {
		year = now.Year()
	}
	if params.Month == nil {
		m := int(now.Month())
		month = &m
	}

	view, err := h.streakService.GetMonthView(ctx, userID, year, *month, now)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, view))
}

// markDay marks a date as read. Marking the same date twice is a no-op; there
// is no way to un-mark a day.
func (h *handler) markDay(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := auth.GetUserIDFromContext(c)
	if !ok {
		return errcodes.Unauthorized("Authentication required")
	}

	params := MarkDayPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	err := h.streakService.MarkDay(ctx, userID, params.Date, time.Now())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Day marked"})
}
