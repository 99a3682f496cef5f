package repository

import (
	"context"
	"database/sql"

	"github.com/NicolasR2/PaginaPelis/internal/model"
)

// RentalRepo reads rental rows outside of the creation/return workflows,
// which run through RentalStore transactions instead.
type RentalRepo struct{ db *sql.DB }

func NewRentalRepo(db *sql.DB) *RentalRepo { return &RentalRepo{db: db} }

// ListOpenByCustomer returns the customer's currently open rentals joined to
// inventory and film. Closed rentals (return_date set) are excluded.
func (r *RentalRepo) ListOpenByCustomer(ctx context.Context, customerID int64) ([]model.OpenRental, error) {
	const q = `SELECT r.rental_id, f.film_id, f.title, r.rental_date, i.inventory_id
		FROM rental r
		JOIN inventory i ON r.inventory_id = i.inventory_id
		JOIN film f ON i.film_id = f.film_id
		WHERE r.customer_id = ? AND r.return_date IS NULL`
	rows, err := r.db.QueryContext(ctx, q, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rentals := make([]model.OpenRental, 0)
	for rows.Next() {
		var (
			or         model.OpenRental
			rentalDate sql.NullTime
		)
		if err := rows.Scan(&or.RentalID, &or.FilmID, &or.Title, &rentalDate, &or.InventoryID); err != nil {
			return nil, err
		}
		if rentalDate.Valid {
			or.RentalDate = rentalDate.Time.Format("2006-01-02 15:04:05")
		}
		rentals = append(rentals, or)
	}
	return rentals, rows.Err()
}
