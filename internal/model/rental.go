package model

// OpenRental is one row of a customer's open-rental listing: the rental
// joined to its inventory item and film. A rental is "open" while its
// return_date is NULL; at most one open rental may exist per inventory item
// at any time. RentalDate is preformatted as "2006-01-02 15:04:05" for the
// JSON surface.
type OpenRental struct {
	RentalID    int64  `json:"rental_id"`
	FilmID      int64  `json:"film_id"`
	Title       string `json:"title"`
	RentalDate  string `json:"rental_date"`
	InventoryID int64  `json:"inventory_id"`
}
