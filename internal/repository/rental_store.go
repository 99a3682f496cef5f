package repository

import (
	"context"
	"database/sql"

	"github.com/NicolasR2/PaginaPelis/internal/service/rental"
)

// defaultStaffID fills the NOT NULL rental.staff_id column; this API has no
// staff concept, so every rental is booked against the default clerk.
const defaultStaffID = 1

// RentalStore implements rental.Store over the MySQL pool. Each Begin yields
// a scoped transaction that holds exactly one session until commit/rollback.
type RentalStore struct {
	db        *sql.DB
	customers *CustomerRepo
}

func NewRentalStore(db *sql.DB) *RentalStore {
	return &RentalStore{db: db, customers: NewCustomerRepo(db)}
}

// CustomerExists delegates to the customer repository.
func (s *RentalStore) CustomerExists(ctx context.Context, customerID int64) (bool, error) {
	return s.customers.Exists(ctx, customerID)
}

// Begin opens a transaction for one batch of work.
func (s *RentalStore) Begin(ctx context.Context) (rental.Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &rentalTx{tx: tx}, nil
}

type rentalTx struct{ tx *sql.Tx }

// AvailableInventory runs the availability query inside the transaction so a
// batch sees its own earlier inserts.
func (t *rentalTx) AvailableInventory(ctx context.Context, filmID, storeID int64) (int64, bool, error) {
	var inventoryID int64
	err := t.tx.QueryRowContext(ctx, availableInventorySQL, filmID, storeID).Scan(&inventoryID)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return inventoryID, true, nil
}

// InsertOpenRental opens a rental only if the inventory item has no open
// rental right now. The guard lives in the statement itself, so the
// at-most-one-open-rental invariant holds even under concurrent requests
// that both saw the item as available.
func (t *rentalTx) InsertOpenRental(ctx context.Context, inventoryID, customerID int64) (int64, bool, error) {
	const q = `INSERT INTO rental (rental_date, inventory_id, customer_id, staff_id)
		SELECT NOW(), ?, ?, ?
		FROM DUAL
		WHERE NOT EXISTS (
			SELECT 1 FROM rental WHERE inventory_id = ? AND return_date IS NULL
		)`
	res, err := t.tx.ExecContext(ctx, q, inventoryID, customerID, defaultStaffID, inventoryID)
	if err != nil {
		return 0, false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, false, err
	}
	if n == 0 {
		return 0, false, nil
	}
	rentalID, err := res.LastInsertId()
	if err != nil {
		return 0, false, err
	}
	return rentalID, true, nil
}

// CloseRental stamps the return date iff the rental is still open. Affected
// rows tell the caller whether a transition actually happened.
func (t *rentalTx) CloseRental(ctx context.Context, rentalID int64) (bool, error) {
	const q = `UPDATE rental
		SET return_date = NOW()
		WHERE rental_id = ? AND return_date IS NULL`
	res, err := t.tx.ExecContext(ctx, q, rentalID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (t *rentalTx) Commit() error   { return t.tx.Commit() }
func (t *rentalTx) Rollback() error { return t.tx.Rollback() }
