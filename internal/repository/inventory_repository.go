package repository

import (
	"context"
	"database/sql"
)

// availableInventorySQL finds one free copy of a film at a store: an
// inventory row with zero open rentals hanging off it. Lowest inventory_id
// wins so repeated checks are deterministic.
const availableInventorySQL = `SELECT i.inventory_id
	FROM inventory i
	LEFT JOIN rental r ON i.inventory_id = r.inventory_id
		AND r.return_date IS NULL
	WHERE i.film_id = ? AND i.store_id = ?
	GROUP BY i.inventory_id
	HAVING COUNT(r.rental_id) = 0
	ORDER BY i.inventory_id
	LIMIT 1`

// InventoryRepo computes film availability. Availability is derived, never
// stored: a copy is available iff no rental referencing it is open.
type InventoryRepo struct{ db *sql.DB }

func NewInventoryRepo(db *sql.DB) *InventoryRepo { return &InventoryRepo{db: db} }

// FindAvailable reports whether the film has a free copy at the store and,
// if so, which inventory id. ok is false when every copy is out.
func (r *InventoryRepo) FindAvailable(ctx context.Context, filmID, storeID int64) (inventoryID int64, ok bool, err error) {
	err = r.db.QueryRowContext(ctx, availableInventorySQL, filmID, storeID).Scan(&inventoryID)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return inventoryID, true, nil
}
