package repository

import (
	"context"
	"database/sql"
)

// CustomerRepo checks customer existence. Customers are owned by the store
// schema; this service never creates or modifies them.
type CustomerRepo struct{ db *sql.DB }

func NewCustomerRepo(db *sql.DB) *CustomerRepo { return &CustomerRepo{db: db} }

// Exists reports whether a customer id is present in the customer table.
func (r *CustomerRepo) Exists(ctx context.Context, customerID int64) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx,
		"SELECT 1 FROM customer WHERE customer_id = ? LIMIT 1", customerID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
