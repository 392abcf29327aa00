package httpserver

import (
	"moviecatalog/movie"
)

// MovieRequest is the create/update body. Business bounds (release year,
// referential validity) are enforced by the usecase, not here.
type MovieRequest struct {
	Title       string  `json:"title" validate:"required"`
	DirectorID  int64   `json:"director_id" validate:"required"`
	ReleaseYear *int    `json:"release_year"`
	Cast        *string `json:"cast"`
	Genres      []int64 `json:"genres"`
}

func (r MovieRequest) ToParams() movie.CreateParams {
	return movie.CreateParams{
		Title:       r.Title,
		DirectorID:  r.DirectorID,
		ReleaseYear: r.ReleaseYear,
		Cast:        r.Cast,
		GenreIDs:    r.Genres,
	}
}

type RateMovieRequest struct {
	Score int `json:"score" validate:"required"`
}
