package movie

import (
	"context"
	"math"
	"strings"
	"time"

	"moviecatalog/errs"
)

type Service interface {
	ListMovies(ctx context.Context, params ListParams) (Page, error)
	GetMovie(ctx context.Context, id int64) (Detail, error)
	CreateMovie(ctx context.Context, params CreateParams) (Detail, error)
	UpdateMovie(ctx context.Context, id int64, params CreateParams) (Detail, error)
	DeleteMovie(ctx context.Context, id int64) error
	RateMovie(ctx context.Context, id int64, score int) (Rating, error)
}

// Repository is the persistence port. Implementations never classify
// absence as an error: a missing movie comes back as a nil record (or
// false for DeleteMovie) and the usecase decides what that means.
type Repository interface {
	ListPaginated(ctx context.Context, f Filter, offset, limit int) ([]Movie, int64, error)
	GetByID(ctx context.Context, id int64) (*Detail, error)
	CreateMovie(ctx context.Context, params CreateParams) (*Detail, error)
	UpdateMovie(ctx context.Context, id int64, params CreateParams) (*Detail, error)
	DeleteMovie(ctx context.Context, id int64) (bool, error)
	AddRating(ctx context.Context, movieID int64, score int) (*Rating, error)
	DirectorExists(ctx context.Context, id int64) (bool, error)
	CountGenresByIDs(ctx context.Context, ids []int64) (int64, error)
}

type Usecase struct {
	r              Repository
	maxPageSize    int
	minReleaseYear int
}

func NewUsecase(r Repository, maxPageSize, minReleaseYear int) *Usecase {
	return &Usecase{
		r:              r,
		maxPageSize:    maxPageSize,
		minReleaseYear: minReleaseYear,
	}
}

func (uc *Usecase) ListMovies(ctx context.Context, params ListParams) (Page, error) {
	if params.Page < 1 {
		return Page{}, ErrInvalidPage
	}
	if params.PageSize < 1 || params.PageSize > uc.maxPageSize {
		return Page{}, errs.Errorf(errs.EINVALID, "movie: page_size must be between 1 and %d", uc.maxPageSize)
	}

	filter := Filter{
		Title:       strings.TrimSpace(params.Title),
		ReleaseYear: params.ReleaseYear,
		Genre:       strings.TrimSpace(params.Genre),
	}

	offset := (params.Page - 1) * params.PageSize
	items, total, err := uc.r.ListPaginated(ctx, filter, offset, params.PageSize)
	if err != nil {
		return Page{}, err
	}

	for i := range items {
		items[i].AverageRating = roundRating(items[i].AverageRating)
	}

	return Page{
		Page:       params.Page,
		PageSize:   params.PageSize,
		TotalItems: total,
		Items:      items,
	}, nil
}

func (uc *Usecase) GetMovie(ctx context.Context, id int64) (Detail, error) {
	detail, err := uc.r.GetByID(ctx, id)
	if err != nil {
		return Detail{}, err
	}
	if detail == nil {
		return Detail{}, ErrNotFound
	}
	detail.AverageRating = roundRating(detail.AverageRating)
	return *detail, nil
}

func (uc *Usecase) CreateMovie(ctx context.Context, params CreateParams) (Detail, error) {
	if err := uc.validateMovieParams(ctx, &params); err != nil {
		return Detail{}, err
	}

	detail, err := uc.r.CreateMovie(ctx, params)
	if err != nil {
		return Detail{}, err
	}
	detail.AverageRating = roundRating(detail.AverageRating)
	return *detail, nil
}

func (uc *Usecase) UpdateMovie(ctx context.Context, id int64, params CreateParams) (Detail, error) {
	if err := uc.validateMovieParams(ctx, &params); err != nil {
		return Detail{}, err
	}

	detail, err := uc.r.UpdateMovie(ctx, id, params)
	if err != nil {
		return Detail{}, err
	}
	if detail == nil {
		return Detail{}, ErrNotFound
	}
	detail.AverageRating = roundRating(detail.AverageRating)
	return *detail, nil
}

func (uc *Usecase) DeleteMovie(ctx context.Context, id int64) error {
	deleted, err := uc.r.DeleteMovie(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

func (uc *Usecase) RateMovie(ctx context.Context, id int64, score int) (Rating, error) {
	if score < 1 || score > 10 {
		return Rating{}, errs.Errorf(errs.EINVALID, "movie: score must be between 1 and 10")
	}

	rating, err := uc.r.AddRating(ctx, id, score)
	if err != nil {
		return Rating{}, err
	}
	if rating == nil {
		return Rating{}, ErrNotFound
	}
	return *rating, nil
}

// validateMovieParams enforces the write-time rules shared by create and
// update: non-empty title, bounded release year, and referential validity
// of the director and every genre id. All checks run before any mutation.
func (uc *Usecase) validateMovieParams(ctx context.Context, params *CreateParams) error {
	params.Title = strings.TrimSpace(params.Title)
	if params.Title == "" {
		return ErrInvalidTitle
	}

	if params.ReleaseYear != nil {
		currentYear := time.Now().Year()
		if *params.ReleaseYear < uc.minReleaseYear || *params.ReleaseYear > currentYear {
			return errs.Errorf(errs.EINVALID,
				"movie: release_year must be between %d and %d", uc.minReleaseYear, currentYear)
		}
	}

	exists, err := uc.r.DirectorExists(ctx, params.DirectorID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrInvalidReferences
	}

	if len(params.GenreIDs) > 0 {
		matched, err := uc.r.CountGenresByIDs(ctx, params.GenreIDs)
		if err != nil {
			return err
		}
		// Matched count is distinct, so duplicate ids in the request fail
		// the comparison and are rejected rather than deduplicated.
		if matched != int64(len(params.GenreIDs)) {
			return ErrInvalidReferences
		}
	}

	return nil
}

// roundRating rounds an average to one decimal place for display.
func roundRating(avg *float64) *float64 {
	if avg == nil {
		return nil
	}
	rounded := math.Round(*avg*10) / 10
	return &rounded
}
