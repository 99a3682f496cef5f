// Package router wires the HTTP routes to their handlers and attaches the
// cross-cutting middleware (recovery, request logging, CORS, cache).
package router

import (
	"github.com/labstack/echo/v4"
	emw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/NicolasR2/PaginaPelis/internal/config"
	"github.com/NicolasR2/PaginaPelis/internal/handler"
	"github.com/NicolasR2/PaginaPelis/internal/middleware"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Movies    *handler.MovieHandler
	Rentals   *handler.RentalHandler
	Customers *handler.CustomerHandler
}

// Register attaches middleware and all API routes to the Echo instance.
// The trusted origin set is configuration, not a fixed hostname; credentials
// are allowed, all methods and headers permitted.
func Register(e *echo.Echo, cfg config.Config, cacheCfg config.CacheConfig, rdb *redis.Client, h Handlers) {
	e.Use(emw.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.SlogRequests())
	e.Use(emw.CORSWithConfig(emw.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowCredentials: true,
		AllowMethods:     []string{"*"},
		AllowHeaders:     []string{"*"},
	}))

	e.GET("/", handler.Root)
	e.GET("/healthz", handler.Health)

	// Catalog reads sit behind the optional Redis response cache.
	cached := middleware.RedisCache(cacheCfg, rdb)
	e.GET("/movies", h.Movies.GetMovies, cached)
	e.GET("/movies/search", h.Movies.SearchMovies, cached)
	e.GET("/films/:film_id/availability", h.Movies.CheckAvailability)

	e.POST("/rentals", h.Rentals.CreateRental)
	e.POST("/returns", h.Rentals.ProcessReturns)

	e.GET("/customers/:id/rentals", h.Customers.GetRentals)
	e.GET("/customers/:id", h.Customers.Verify)
}
