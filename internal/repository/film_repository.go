// Package repository contains the parameterized SQL behind the rental store.
// Every query binds values through placeholders; nothing is interpolated.
package repository

import (
	"context"
	"database/sql"

	"github.com/NicolasR2/PaginaPelis/internal/model"
)

// pageSize caps every film listing; the catalog UI renders 15 cards.
const pageSize = 15

const movieColumns = `f.film_id, f.title, f.description, f.release_year, f.rental_rate, f.length, f.rating`

// FilmRepo reads the film catalog. Films are immutable from this service's
// perspective; all methods are pure reads.
type FilmRepo struct{ db *sql.DB }

func NewFilmRepo(db *sql.DB) *FilmRepo { return &FilmRepo{db: db} }

// ListByStore returns up to pageSize films stocked at the given store.
// A non-empty query filters by case-insensitive substring match on the title,
// ordered alphabetically. An empty query returns a random sample instead,
// which backs the browse view.
func (r *FilmRepo) ListByStore(ctx context.Context, storeID int64, query string) ([]model.Movie, error) {
	if query != "" {
		const q = `SELECT ` + movieColumns + `
			FROM film f
			JOIN inventory i ON f.film_id = i.film_id
			WHERE i.store_id = ? AND f.title LIKE ?
			GROUP BY ` + movieColumns + `
			ORDER BY f.title
			LIMIT ?`
		return r.queryMovies(ctx, q, storeID, "%"+query+"%", pageSize)
	}
	const q = `SELECT ` + movieColumns + `
		FROM film f
		JOIN inventory i ON f.film_id = i.film_id
		WHERE i.store_id = ?
		GROUP BY ` + movieColumns + `
		ORDER BY RAND()
		LIMIT ?`
	return r.queryMovies(ctx, q, storeID, pageSize)
}

// SearchAll matches films across every store by title substring. Unlike
// ListByStore it does not join inventory, so films with no stocked copies
// still appear.
func (r *FilmRepo) SearchAll(ctx context.Context, query string) ([]model.Movie, error) {
	const q = `SELECT film_id, title, description, release_year, rental_rate, length, rating
		FROM film
		WHERE title LIKE ?`
	return r.queryMovies(ctx, q, "%"+query+"%")
}

func (r *FilmRepo) queryMovies(ctx context.Context, query string, args ...any) ([]model.Movie, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	movies := make([]model.Movie, 0, pageSize)
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			return nil, err
		}
		movies = append(movies, m)
	}
	return movies, rows.Err()
}

func scanMovie(rows *sql.Rows) (model.Movie, error) {
	var (
		m           model.Movie
		description sql.NullString
		releaseYear sql.NullInt64
		length      sql.NullInt64
		rating      sql.NullString
	)
	err := rows.Scan(&m.ID, &m.Title, &description, &releaseYear, &m.RentalRate, &length, &rating)
	if err != nil {
		return model.Movie{}, err
	}
	if description.Valid {
		m.Description = &description.String
	}
	if releaseYear.Valid {
		y := int(releaseYear.Int64)
		m.ReleaseYear = &y
	}
	if length.Valid {
		l := int(length.Int64)
		m.Length = &l
	}
	if rating.Valid {
		m.Rating = &rating.String
	}
	return m, nil
}
