// Package rental implements the rental creation and returns workflows on top
// of an injected store. Item-level business failures ("No disponible") are
// data, collected per item; only infrastructure errors abort a batch.
package rental

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// ErrCustomerNotFound aborts a whole batch before any item is processed.
var ErrCustomerNotFound = errors.New("customer not found")

// msgNotAvailable is the item-level failure reason the clients key on.
const msgNotAvailable = "No disponible"

// msgInternal replaces raw storage errors in item results; the detail is
// logged server-side instead of being surfaced to the caller.
const msgInternal = "error interno"

// storeTimeout bounds every storage round trip of one request.
const storeTimeout = 5 * time.Second

// Store is the storage session factory the workflows run against.
type Store interface {
	// CustomerExists reports whether the customer id is known to the store.
	CustomerExists(ctx context.Context, customerID int64) (bool, error)
	// Begin opens one transactional unit of work. The caller must Commit or
	// Rollback on every path.
	Begin(ctx context.Context) (Tx, error)
}

// Tx is one committed-or-rolled-back unit of work over the rental table.
type Tx interface {
	// AvailableInventory reports a free copy of the film at the store, if any.
	AvailableInventory(ctx context.Context, filmID, storeID int64) (inventoryID int64, ok bool, err error)
	// InsertOpenRental conditionally opens a rental against the inventory
	// item. ok is false when another open rental already holds the item; the
	// insert and the open-rental check are a single atomic statement, so two
	// concurrent requests can never both succeed on the same copy.
	InsertOpenRental(ctx context.Context, inventoryID, customerID int64) (rentalID int64, ok bool, err error)
	// CloseRental sets the return date iff the rental is still open. closed
	// is false for unknown or already-closed ids, making returns idempotent.
	CloseRental(ctx context.Context, rentalID int64) (closed bool, err error)
	Commit() error
	Rollback() error
}

// Item is one requested (film, copy) pair of a batch.
type Item struct {
	FilmID      int64 `json:"film_id"`
	InventoryID int64 `json:"inventory_id"`
}

// Completed records a successfully opened rental.
type Completed struct {
	FilmID      int64 `json:"film_id"`
	InventoryID int64 `json:"inventory_id"`
	RentalID    int64 `json:"rental_id"`
}

// Failed records an item that could not be rented and why.
type Failed struct {
	FilmID      int64  `json:"film_id"`
	InventoryID int64  `json:"inventory_id"`
	Error       string `json:"error"`
}

// BatchResult aggregates per-item outcomes in request order. A batch where
// every item failed is still a successful batch at the request level.
type BatchResult struct {
	Completed []Completed `json:"completed"`
	Failed    []Failed    `json:"failed"`
}

// Service runs the rental workflows. It is stateless; all state lives in
// the store.
type Service struct {
	store Store
	log   *slog.Logger
}

func New(store Store, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{store: store, log: log}
}

// CreateBatch attempts to open one rental per requested item, in order.
//
// The customer must exist or the whole request fails with
// ErrCustomerNotFound and nothing is attempted. Per item, availability is
// recomputed for the film at the store; when no copy is free, or the free
// copy is not the one the caller named, the item fails with "No disponible".
// Otherwise the rental is opened with a conditional insert; losing the
// insert race is reported the same way. A storage error while processing one
// item is logged and recorded against that item only.
//
// All successful inserts commit together. Any error escaping the per-item
// scope (begin/commit) rolls the batch back and is returned to the caller.
func (s *Service) CreateBatch(ctx context.Context, customerID, storeID int64, items []Item) (*BatchResult, error) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	exists, err := s.store.CustomerExists(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrCustomerNotFound
	}

	tx, err := s.store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	res := &BatchResult{Completed: []Completed{}, Failed: []Failed{}}
	for _, it := range items {
		inventoryID, ok, err := tx.AvailableInventory(ctx, it.FilmID, storeID)
		if err != nil {
			s.log.Error("availability check failed",
				"film_id", it.FilmID, "store_id", storeID, "err", err)
			res.Failed = append(res.Failed, Failed{FilmID: it.FilmID, InventoryID: it.InventoryID, Error: msgInternal})
			continue
		}
		// The caller's inventory id is validated against live availability,
		// not mere existence.
		if !ok || inventoryID != it.InventoryID {
			res.Failed = append(res.Failed, Failed{FilmID: it.FilmID, InventoryID: it.InventoryID, Error: msgNotAvailable})
			continue
		}
		rentalID, ok, err := tx.InsertOpenRental(ctx, it.InventoryID, customerID)
		if err != nil {
			s.log.Error("rental insert failed",
				"inventory_id", it.InventoryID, "customer_id", customerID, "err", err)
			res.Failed = append(res.Failed, Failed{FilmID: it.FilmID, InventoryID: it.InventoryID, Error: msgInternal})
			continue
		}
		if !ok {
			// Lost the race against a concurrent rental of the same copy.
			res.Failed = append(res.Failed, Failed{FilmID: it.FilmID, InventoryID: it.InventoryID, Error: msgNotAvailable})
			continue
		}
		res.Completed = append(res.Completed, Completed{FilmID: it.FilmID, InventoryID: it.InventoryID, RentalID: rentalID})
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true
	return res, nil
}

// ProcessReturns closes each listed rental that is still open and returns
// how many actually transitioned. Already-closed and unknown ids are left
// untouched and not counted, so resubmitting the same list is harmless.
// All updates commit as one unit; any failure rolls back the whole batch.
func (s *Service) ProcessReturns(ctx context.Context, rentalIDs []int64) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	tx, err := s.store.Begin(ctx)
	if err != nil {
		return 0, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var updated int64
	for _, id := range rentalIDs {
		closed, err := tx.CloseRental(ctx, id)
		if err != nil {
			return 0, err
		}
		if closed {
			updated++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	committed = true
	return updated, nil
}
