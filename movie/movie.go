package movie

import (
	"time"

	"moviecatalog/errs"
)

var (
	ErrInvalidTitle = errs.Errorf(errs.EINVALID, "movie: title is required")
	ErrInvalidPage  = errs.Errorf(errs.EINVALID, "movie: page must be >= 1")
	ErrNotFound     = errs.Errorf(errs.ENOTFOUND, "movie: not found")

	// ErrInvalidReferences intentionally does not say which id was bad,
	// so clients cannot enumerate internal director/genre ids.
	ErrInvalidReferences = errs.Errorf(errs.EINVALID, "movie: unknown director or genre reference")
)

// Director is the reduced projection embedded in list items.
type Director struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// DirectorDetail is the full projection embedded in the detail view.
type DirectorDetail struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	BirthYear   *int    `json:"birth_year"`
	Description *string `json:"description"`
}

// Movie is a list item. AverageRating is nil when the movie has no
// ratings, otherwise the mean score rounded to one decimal.
type Movie struct {
	ID            int64    `json:"id"`
	Title         string   `json:"title"`
	ReleaseYear   *int     `json:"release_year"`
	Director      Director `json:"director"`
	Genres        []string `json:"genres"`
	AverageRating *float64 `json:"average_rating"`
}

// Detail is the single-movie view. It carries the full director
// projection plus cast and ratings count; the list view deliberately
// omits these to keep pages small.
type Detail struct {
	ID            int64          `json:"id"`
	Title         string         `json:"title"`
	ReleaseYear   *int           `json:"release_year"`
	Cast          *string        `json:"cast"`
	Director      DirectorDetail `json:"director"`
	Genres        []string       `json:"genres"`
	AverageRating *float64       `json:"average_rating"`
	RatingsCount  int64          `json:"ratings_count"`
}

type Rating struct {
	ID      int64     `json:"id"`
	MovieID int64     `json:"movie_id"`
	Score   int       `json:"score"`
	RatedAt time.Time `json:"rated_at"`
}

// Page is one page of list results.
type Page struct {
	Page       int     `json:"page"`
	PageSize   int     `json:"page_size"`
	TotalItems int64   `json:"total_items"`
	Items      []Movie `json:"items"`
}

// ListParams are the query parameters of the list operation. Zero-value
// filter fields mean "no filter".
type ListParams struct {
	Page        int
	PageSize    int
	Title       string
	ReleaseYear *int
	Genre       string
}

// Filter is the repository-level subset of ListParams.
type Filter struct {
	Title       string
	ReleaseYear *int
	Genre       string
}

// CreateParams carries the mutable fields of a movie. Used for both
// create and update; GenreIDs replaces the full association set.
type CreateParams struct {
	Title       string
	DirectorID  int64
	ReleaseYear *int
	Cast        *string
	GenreIDs    []int64
}
