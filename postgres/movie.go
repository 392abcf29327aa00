package postgres

import (
	"context"
	"errors"
	"time"

	"moviecatalog/movie"

	"gorm.io/gorm"
)

// MovieModel represents the database model for movies
type MovieModel struct {
	ID          int64   `gorm:"primaryKey"`
	Title       string  `gorm:"size:512;not null"`
	ReleaseYear *int    `gorm:"column:release_year"`
	Cast        *string `gorm:"size:1024"`
	DirectorID  int64   `gorm:"column:director_id;not null"`
}

// TableName specifies the table name for GORM
func (MovieModel) TableName() string {
	return "movies"
}

// MovieGenreModel is the movie/genre association row.
type MovieGenreModel struct {
	MovieID int64 `gorm:"column:movie_id;primaryKey"`
	GenreID int64 `gorm:"column:genre_id;primaryKey"`
}

func (MovieGenreModel) TableName() string {
	return "movie_genres"
}

// MovieRatingModel represents the database model for movie ratings
type MovieRatingModel struct {
	ID      int64     `gorm:"primaryKey"`
	MovieID int64     `gorm:"column:movie_id;not null"`
	Score   int       `gorm:"not null"`
	RatedAt time.Time `gorm:"column:rated_at;not null"`
}

func (MovieRatingModel) TableName() string {
	return "movie_ratings"
}

// MovieRepository implements movie.Repository on PostgreSQL.
type MovieRepository struct {
	db *gorm.DB
}

// NewMovieRepository creates a new movie repository
func NewMovieRepository(db *gorm.DB) *MovieRepository {
	return &MovieRepository{db: db}
}

// filtered applies the list filters. The genre filter joins through the
// association table, so callers must collapse duplicate movie rows with
// DISTINCT on both the count and the page query.
func (r *MovieRepository) filtered(ctx context.Context, f movie.Filter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&MovieModel{})
	if f.Title != "" {
		q = q.Where("movies.title ILIKE ?", "%"+f.Title+"%")
	}
	if f.ReleaseYear != nil {
		q = q.Where("movies.release_year = ?", *f.ReleaseYear)
	}
	if f.Genre != "" {
		q = q.Joins("JOIN movie_genres ON movie_genres.movie_id = movies.id").
			Joins("JOIN genres ON genres.id = movie_genres.genre_id").
			Where("genres.name = ?", f.Genre)
	}
	return q
}

func (r *MovieRepository) ListPaginated(ctx context.Context, f movie.Filter, offset, limit int) ([]movie.Movie, int64, error) {
	var total int64
	if err := r.filtered(ctx, f).Distinct("movies.id").Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var models []MovieModel
	err := r.filtered(ctx, f).
		Distinct("movies.*").
		Order("movies.id").
		Offset(offset).
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, 0, err
	}

	movies := make([]movie.Movie, len(models))
	if len(models) == 0 {
		return movies, total, nil
	}

	ids := make([]int64, len(models))
	for i, m := range models {
		ids[i] = m.ID
	}

	directors, err := r.directorsByMovie(ctx, models)
	if err != nil {
		return nil, 0, err
	}
	genreNames, err := r.genreNamesByMovie(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	averages, err := r.averageRatings(ctx, ids)
	if err != nil {
		return nil, 0, err
	}

	for i, m := range models {
		movies[i] = movie.Movie{
			ID:            m.ID,
			Title:         m.Title,
			ReleaseYear:   m.ReleaseYear,
			Director:      directors[m.DirectorID],
			Genres:        genreNames[m.ID],
			AverageRating: averages[m.ID],
		}
	}
	return movies, total, nil
}

func (r *MovieRepository) GetByID(ctx context.Context, id int64) (*movie.Detail, error) {
	var m MovieModel
	err := r.db.WithContext(ctx).First(&m, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var d DirectorModel
	if err := r.db.WithContext(ctx).First(&d, m.DirectorID).Error; err != nil {
		return nil, err
	}

	genreNames, err := r.genreNamesByMovie(ctx, []int64{m.ID})
	if err != nil {
		return nil, err
	}

	var agg struct {
		Count   int64
		Average *float64
	}
	err = r.db.WithContext(ctx).
		Raw("SELECT COUNT(*) AS count, AVG(score)::float AS average FROM movie_ratings WHERE movie_id = ?", m.ID).
		Scan(&agg).Error
	if err != nil {
		return nil, err
	}

	return &movie.Detail{
		ID:          m.ID,
		Title:       m.Title,
		ReleaseYear: m.ReleaseYear,
		Cast:        m.Cast,
		Director: movie.DirectorDetail{
			ID:          d.ID,
			Name:        d.Name,
			BirthYear:   d.BirthYear,
			Description: d.Description,
		},
		Genres:        genreNames[m.ID],
		AverageRating: agg.Average,
		RatingsCount:  agg.Count,
	}, nil
}

// CreateMovie inserts the movie row and its genre links in one
// transaction: either all rows commit or none do.
func (r *MovieRepository) CreateMovie(ctx context.Context, params movie.CreateParams) (*movie.Detail, error) {
	model := MovieModel{
		Title:       params.Title,
		ReleaseYear: params.ReleaseYear,
		Cast:        params.Cast,
		DirectorID:  params.DirectorID,
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&model).Error; err != nil {
			return err
		}
		return createGenreLinks(tx, model.ID, params.GenreIDs)
	})
	if err != nil {
		return nil, err
	}

	return r.GetByID(ctx, model.ID)
}

// UpdateMovie replaces the mutable fields and the full genre-link set
// atomically. Returns nil when the movie does not exist.
func (r *MovieRepository) UpdateMovie(ctx context.Context, id int64, params movie.CreateParams) (*movie.Detail, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m MovieModel
		if err := tx.First(&m, id).Error; err != nil {
			return err
		}

		m.Title = params.Title
		m.ReleaseYear = params.ReleaseYear
		m.Cast = params.Cast
		m.DirectorID = params.DirectorID
		if err := tx.Save(&m).Error; err != nil {
			return err
		}

		if err := tx.Where("movie_id = ?", id).Delete(&MovieGenreModel{}).Error; err != nil {
			return err
		}
		return createGenreLinks(tx, id, params.GenreIDs)
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return r.GetByID(ctx, id)
}

func (r *MovieRepository) DeleteMovie(ctx context.Context, id int64) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&MovieModel{}, id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// AddRating inserts one rating row, timestamped at acceptance time.
// Returns nil when the movie does not exist.
func (r *MovieRepository) AddRating(ctx context.Context, movieID int64, score int) (*movie.Rating, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&MovieModel{}).Where("id = ?", movieID).Count(&count).Error
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, nil
	}

	model := MovieRatingModel{
		MovieID: movieID,
		Score:   score,
		RatedAt: time.Now().UTC(),
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return nil, err
	}

	return &movie.Rating{
		ID:      model.ID,
		MovieID: model.MovieID,
		Score:   model.Score,
		RatedAt: model.RatedAt,
	}, nil
}

func (r *MovieRepository) DirectorExists(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&DirectorModel{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountGenresByIDs counts distinct existing genres among the given ids,
// so both unknown ids and duplicates surface as a count mismatch.
func (r *MovieRepository) CountGenresByIDs(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	var count int64
	err := r.db.WithContext(ctx).Model(&GenreModel{}).
		Where("id IN ?", ids).
		Distinct("id").
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func createGenreLinks(tx *gorm.DB, movieID int64, genreIDs []int64) error {
	if len(genreIDs) == 0 {
		return nil
	}
	links := make([]MovieGenreModel, len(genreIDs))
	for i, gid := range genreIDs {
		links[i] = MovieGenreModel{MovieID: movieID, GenreID: gid}
	}
	return tx.Create(&links).Error
}

// directorsByMovie loads the reduced director projection for a page of
// movies with a single query.
func (r *MovieRepository) directorsByMovie(ctx context.Context, models []MovieModel) (map[int64]movie.Director, error) {
	directorIDs := make([]int64, 0, len(models))
	seen := make(map[int64]bool, len(models))
	for _, m := range models {
		if !seen[m.DirectorID] {
			seen[m.DirectorID] = true
			directorIDs = append(directorIDs, m.DirectorID)
		}
	}

	var rows []DirectorModel
	err := r.db.WithContext(ctx).
		Select("id", "name").
		Where("id IN ?", directorIDs).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	directors := make(map[int64]movie.Director, len(rows))
	for _, d := range rows {
		directors[d.ID] = movie.Director{ID: d.ID, Name: d.Name}
	}
	return directors, nil
}

func (r *MovieRepository) genreNamesByMovie(ctx context.Context, movieIDs []int64) (map[int64][]string, error) {
	var rows []struct {
		MovieID int64
		Name    string
	}
	err := r.db.WithContext(ctx).
		Raw(`SELECT movie_genres.movie_id, genres.name
FROM movie_genres
JOIN genres ON genres.id = movie_genres.genre_id
WHERE movie_genres.movie_id IN ?
ORDER BY genres.name`, movieIDs).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	names := make(map[int64][]string)
	for _, row := range rows {
		names[row.MovieID] = append(names[row.MovieID], row.Name)
	}
	return names, nil
}

// averageRatings computes the mean score for a page of movie ids in one
// aggregate query instead of one per row.
func (r *MovieRepository) averageRatings(ctx context.Context, movieIDs []int64) (map[int64]*float64, error) {
	var rows []struct {
		MovieID int64
		Average float64
	}
	err := r.db.WithContext(ctx).
		Raw(`SELECT movie_id, AVG(score)::float AS average
FROM movie_ratings
WHERE movie_id IN ?
GROUP BY movie_id`, movieIDs).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	averages := make(map[int64]*float64, len(rows))
	for _, row := range rows {
		avg := row.Average
		averages[row.MovieID] = &avg
	}
	return averages, nil
}
