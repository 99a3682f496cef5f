package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/NicolasR2/PaginaPelis/internal/config"
	"github.com/NicolasR2/PaginaPelis/internal/database"
	"github.com/NicolasR2/PaginaPelis/internal/handler"
	"github.com/NicolasR2/PaginaPelis/internal/queue"
	"github.com/NicolasR2/PaginaPelis/internal/repository"
	"github.com/NicolasR2/PaginaPelis/internal/router"
	"github.com/NicolasR2/PaginaPelis/internal/service/rental"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env vars win

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	defer db.Close()

	// repos
	films := repository.NewFilmRepo(db)
	inventory := repository.NewInventoryRepo(db)
	customers := repository.NewCustomerRepo(db)
	rentals := repository.NewRentalRepo(db)
	store := repository.NewRentalStore(db)

	// rental workflows + audit events
	svc := rental.New(store, slog.Default())
	events := queue.NewPublisher()
	go queue.StartConsumer()

	h := router.Handlers{
		Movies:    handler.NewMovieHandler(films, inventory),
		Rentals:   handler.NewRentalHandler(svc, events),
		Customers: handler.NewCustomerHandler(customers, rentals),
	}

	e := echo.New()
	e.HideBanner = true
	router.Register(e, cfg, config.LoadCacheConfig(), config.NewRedisClient(), h)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
