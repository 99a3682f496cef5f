// Package handler exposes the HTTP surface of the rental API. Handlers bind
// and validate input, delegate to repositories or services, and translate
// outcomes to JSON. Storage detail never reaches response bodies; it is
// logged and replaced with a generic message.
package handler

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/NicolasR2/PaginaPelis/internal/model"
)

// FilmCatalog is the read side of the film tables as the movie endpoints
// need it.
type FilmCatalog interface {
	ListByStore(ctx context.Context, storeID int64, query string) ([]model.Movie, error)
	SearchAll(ctx context.Context, query string) ([]model.Movie, error)
}

// AvailabilityFinder locates a free copy of a film at a store.
type AvailabilityFinder interface {
	FindAvailable(ctx context.Context, filmID, storeID int64) (int64, bool, error)
}

// MovieHandler serves the browse, search and availability endpoints. All of
// them are pure reads with no transactional concerns.
type MovieHandler struct {
	Films     FilmCatalog
	Inventory AvailabilityFinder
}

func NewMovieHandler(films FilmCatalog, inventory AvailabilityFinder) *MovieHandler {
	return &MovieHandler{Films: films, Inventory: inventory}
}

// GetMovies handles GET /movies?query=&store_id=. With a query it returns a
// title-ordered substring match; without one, a random browse sample. Both
// are scoped to the store (default 1) and capped at the page size.
func (h *MovieHandler) GetMovies(c echo.Context) error {
	query := strings.TrimSpace(c.QueryParam("query"))
	storeID := int64(1)
	if s := c.QueryParam("store_id"); s != "" {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil || id <= 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid store id"})
		}
		storeID = id
	}
	movies, err := h.Films.ListByStore(c.Request().Context(), storeID, query)
	if err != nil {
		log.Printf("movies: list failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"movies": movies})
}

// SearchMovies handles GET /movies/search?query=. The query is mandatory;
// unlike GetMovies it matches across every store.
func (h *MovieHandler) SearchMovies(c echo.Context) error {
	query := strings.TrimSpace(c.QueryParam("query"))
	if query == "" {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "query is required"})
	}
	movies, err := h.Films.SearchAll(c.Request().Context(), query)
	if err != nil {
		log.Printf("movies: search failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"movies": movies})
}

// CheckAvailability handles GET /films/:film_id/availability?store_id=. It
// reports whether the film has a free copy at the store and which one;
// inventory_id is null when nothing is free.
func (h *MovieHandler) CheckAvailability(c echo.Context) error {
	filmID, err := strconv.ParseInt(c.Param("film_id"), 10, 64)
	if err != nil || filmID <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid film id"})
	}
	storeID, err := strconv.ParseInt(c.QueryParam("store_id"), 10, 64)
	if err != nil || storeID <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid store id"})
	}
	inventoryID, ok, err := h.Inventory.FindAvailable(c.Request().Context(), filmID, storeID)
	if err != nil {
		log.Printf("availability: query failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "error interno en disponibilidad"})
	}
	if !ok {
		return c.JSON(http.StatusOK, echo.Map{"available": false, "inventory_id": nil})
	}
	return c.JSON(http.StatusOK, echo.Map{"available": true, "inventory_id": inventoryID})
}
