package books

import (
	"github.com/labstack/echo/v4"
	"github.com/ruzzleleee/SoftDEVFinalProject-BookTrackingSystem-GoogleBooksAPI/pkg/catalog"
	"github.com/uptrace/bun"
)

// RegisterRoutesWithGroup registers book routes on a pre-configured group.
func RegisterRoutesWithGroup(g *echo.Group, db *bun.DB, catalogClient *catalog.Client) {
	bookService := NewService(db)

	h := &handler{
		bookService:   bookService,
		catalogClient: catalogClient,
	}

	g.GET("/search", h.search)
	g.GET("/:id", h.retrieve)
	g.GET("", h.list)
	g.POST("", h.create)
}
