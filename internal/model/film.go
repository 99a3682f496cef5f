package model

// Movie is the public shape of a film row as served by the listing, search
// and availability endpoints. Optional catalog columns are pointers so that
// NULLs survive the round trip to JSON instead of collapsing to zero values.
//
// Fields:
//  ID          – film.film_id
//  Title       – film.title
//  Description – film.description (nullable)
//  ReleaseYear – film.release_year (nullable)
//  RentalRate  – film.rental_rate, decimal serialized as a JSON number
//  Length      – film.length in minutes (nullable)
//  Rating      – film.rating (nullable, e.g. "PG-13")
type Movie struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Description *string  `json:"description"`
	ReleaseYear *int     `json:"release_year"`
	RentalRate  float64  `json:"rental_rate"`
	Length      *int     `json:"length"`
	Rating      *string  `json:"rating"`
}
