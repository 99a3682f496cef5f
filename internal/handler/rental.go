package handler

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/NicolasR2/PaginaPelis/internal/queue"
	"github.com/NicolasR2/PaginaPelis/internal/service/rental"
)

// RentalService is the workflow surface the rental endpoints call into.
type RentalService interface {
	CreateBatch(ctx context.Context, customerID, storeID int64, items []rental.Item) (*rental.BatchResult, error)
	ProcessReturns(ctx context.Context, rentalIDs []int64) (int64, error)
}

// RentalHandler serves rental creation and returns processing. Events is
// optional; when set, audit events are published after commit on a best
// effort basis.
type RentalHandler struct {
	Svc    RentalService
	Events *queue.Publisher
}

func NewRentalHandler(svc RentalService, events *queue.Publisher) *RentalHandler {
	return &RentalHandler{Svc: svc, Events: events}
}

type rentalRequest struct {
	CustomerID int64         `json:"customer_id"`
	StoreID    int64         `json:"store_id"`
	Items      []rental.Item `json:"items"`
}

type returnRequest struct {
	RentalIDs []int64 `json:"rental_ids"`
}

// CreateRental handles POST /rentals. Items are processed in request order
// with independent outcomes; the response is "success" even when every item
// failed availability, because item-level failures are data, not errors.
// Only a missing customer (404) or an infrastructure failure (500, rolled
// back) fails the request itself.
func (h *RentalHandler) CreateRental(c echo.Context) error {
	var req rentalRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.CustomerID <= 0 || req.StoreID <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "customer_id and store_id are required"})
	}
	if len(req.Items) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "items is required"})
	}

	res, err := h.Svc.CreateBatch(c.Request().Context(), req.CustomerID, req.StoreID, req.Items)
	if err != nil {
		if errors.Is(err, rental.ErrCustomerNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Cliente no encontrado"})
		}
		log.Printf("rentals: batch failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	h.publishRentalCreated(req, res)

	return c.JSON(http.StatusOK, echo.Map{
		"success":   true,
		"completed": res.Completed,
		"failed":    res.Failed,
	})
}

// ProcessReturns handles POST /returns. Closing is idempotent: ids already
// returned are skipped and not counted, so the same request twice yields
// updated_count N then 0.
func (h *RentalHandler) ProcessReturns(c echo.Context) error {
	var req returnRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	updated, err := h.Svc.ProcessReturns(c.Request().Context(), req.RentalIDs)
	if err != nil {
		log.Printf("returns: batch failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	h.publishReturnsProcessed(req.RentalIDs, updated)

	return c.JSON(http.StatusOK, echo.Map{
		"success":       true,
		"message":       fmt.Sprintf("Se procesaron %d devoluciones", updated),
		"updated_count": updated,
	})
}

func (h *RentalHandler) publishRentalCreated(req rentalRequest, res *rental.BatchResult) {
	if h.Events == nil {
		return
	}
	rentalIDs := make([]int64, 0, len(res.Completed))
	for _, it := range res.Completed {
		rentalIDs = append(rentalIDs, it.RentalID)
	}
	ev := queue.RentalCreatedEvent{
		CustomerID: req.CustomerID,
		StoreID:    req.StoreID,
		RentalIDs:  rentalIDs,
		Completed:  len(res.Completed),
		Failed:     len(res.Failed),
		CreatedAt:  time.Now().UTC().Format(time.RFC3339),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = h.Events.RentalCreated(ctx, ev) // failures already logged
	}()
}

func (h *RentalHandler) publishReturnsProcessed(rentalIDs []int64, updated int64) {
	if h.Events == nil {
		return
	}
	ev := queue.ReturnsProcessedEvent{
		RentalIDs:    rentalIDs,
		UpdatedCount: updated,
		ProcessedAt:  time.Now().UTC().Format(time.RFC3339),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = h.Events.ReturnsProcessed(ctx, ev)
	}()
}
