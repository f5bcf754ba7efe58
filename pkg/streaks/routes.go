package streaks

import (
	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"
)

// RegisterRoutesWithGroup registers streak routes on a pre-configured group.
func RegisterRoutesWithGroup(g *echo.Group, db *bun.DB) {
	streakService := NewService(db)

	h := &handler{
		streakService: streakService,
	}

	g.GET("/calendar", h.calendar)
	g.POST("/days", h.markDay)
}
