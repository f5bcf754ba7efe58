package reviews

import (
	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"
)

// RegisterRoutesWithGroup registers review routes on a pre-configured group.
func RegisterRoutesWithGroup(g *echo.Group, db *bun.DB) {
	reviewService := NewService(db)

	h := &handler{
		reviewService: reviewService,
	}

	g.GET("", h.list)
	g.GET("/:bookId", h.retrieve)
	g.POST("", h.upsert)
	g.DELETE("/:bookId", h.delete)
}
