package shelves

import (
	"github.com/labstack/echo/v4"
	"github.com/ruzzleleee/SoftDEVFinalProject-BookTrackingSystem-GoogleBooksAPI/pkg/streaks"
	"github.com/uptrace/bun"
)

// RegisterRoutesWithGroup registers shelf routes on a pre-configured group.
func RegisterRoutesWithGroup(g *echo.Group, db *bun.DB) {
	shelfService := NewService(db)
	streakService := streaks.NewService(db)

	h := &handler{
		shelfService:  shelfService,
		streakService: streakService,
	}

	g.GET("", h.list)
	g.POST("", h.add)
	g.DELETE("/:id", h.remove)
	g.PUT("/:id/progress", h.updateProgress)
	g.POST("/finish", h.finish)
}
