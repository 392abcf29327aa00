package main

import (
	"archive/zip"
	"context"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"moviecatalog/pkg/config"
	"moviecatalog/postgres"

	_ "github.com/lib/pq"
	"gorm.io/gorm"
)

const defaultMovieLensURL = "https://files.grouplens.org/datasets/movielens/ml-latest-small.zip"

func main() {
	var (
		csvPath string
		zipURL  string
		limit   int
	)

	flag.StringVar(&csvPath, "csv", "", "Path to movies.csv (skip download)")
	flag.StringVar(&zipURL, "url", defaultMovieLensURL, "MovieLens zip URL")
	flag.IntVar(&limit, "limit", 0, "Limit number of rows to import (0 = all)")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("load config failed", "error", err)
		os.Exit(1)
	}

	db, err := postgres.NewConnection(postgres.Options{
		DBName:   cfg.DB.Name,
		DBUser:   cfg.DB.User,
		Password: cfg.DB.Pass,
		Host:     cfg.DB.Host,
		Port:     fmt.Sprintf("%d", cfg.DB.Port),
		SSLMode:  cfg.DB.EnableSSL,
	})
	if err != nil {
		slog.Error("cannot open postgres connection", "error", err)
		os.Exit(1)
	}

	cleanup := func() {}
	if csvPath == "" {
		path, c, err := downloadAndExtract(zipURL)
		if err != nil {
			slog.Error("failed to download dataset", "error", err)
			os.Exit(1)
		}
		csvPath = path
		cleanup = c
	}
	defer cleanup()

	count, err := importMovies(context.Background(), db, csvPath, limit)
	if err != nil {
		slog.Error("import failed", "error", err)
		os.Exit(1)
	}

	slog.Info("import completed", "rows", count)
}

func downloadAndExtract(zipURL string) (string, func(), error) {
	if zipURL == "" {
		return "", func() {}, errors.New("dataset url is empty")
	}

	tmpDir, err := os.MkdirTemp("", "movielens-")
	if err != nil {
		return "", func() {}, err
	}

	cleanup := func() {
		_ = os.RemoveAll(tmpDir)
	}

	zipPath := filepath.Join(tmpDir, "dataset.zip")
	if err := downloadFile(zipURL, zipPath); err != nil {
		cleanup()
		return "", func() {}, err
	}

	csvPath, err := extractMoviesCSV(zipPath, tmpDir)
	if err != nil {
		cleanup()
		return "", func() {}, err
	}

	return csvPath, cleanup, nil
}

func downloadFile(url, dest string) error {
	client := &http.Client{Timeout: 60 * time.Second}
	resp, err := client.Get(url) // nolint: noctx
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status: %s", resp.Status)
	}

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, resp.Body)
	return err
}

func extractMoviesCSV(zipPath, destDir string) (string, error) {
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return "", err
	}
	defer r.Close()

	for _, file := range r.File {
		if !strings.HasSuffix(file.Name, "movies.csv") {
			continue
		}

		src, err := file.Open()
		if err != nil {
			return "", err
		}
		defer src.Close()

		destPath := filepath.Join(destDir, filepath.Base(file.Name))
		out, err := os.Create(destPath)
		if err != nil {
			return "", err
		}

		if _, err := io.Copy(out, src); err != nil {
			_ = out.Close()
			return "", err
		}
		if err := out.Close(); err != nil {
			return "", err
		}

		return destPath, nil
	}

	return "", errors.New("movies.csv not found in zip")
}

func importMovies(ctx context.Context, db *gorm.DB, csvPath string, limit int) (int, error) {
	file, err := os.Open(csvPath)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	idxTitle, idxGenres, err := parseMovieCSVHeader(reader)
	if err != nil {
		return 0, err
	}

	tx := db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return 0, tx.Error
	}

	directorID, err := placeholderDirectorID(tx)
	if err != nil {
		_ = tx.Rollback()
		return 0, err
	}

	genreIDs := map[string]int64{}
	count := 0
	for limit <= 0 || count < limit {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			_ = tx.Rollback()
			return count, err
		}
		title, releaseYear, genres, ok := parseMovieRecord(record, idxTitle, idxGenres)
		if !ok {
			continue
		}

		if err := insertMovie(tx, directorID, title, releaseYear, genres, genreIDs); err != nil {
			_ = tx.Rollback()
			return count, err
		}

		count++
	}

	if err := tx.Commit().Error; err != nil {
		return count, err
	}

	return count, nil
}

// placeholderDirectorID returns the director every seeded movie is attached
// to, since the dataset carries no director information.
func placeholderDirectorID(tx *gorm.DB) (int64, error) {
	var id int64
	err := tx.Raw(`SELECT id FROM directors WHERE name = ?`, "Unknown").Scan(&id).Error
	if err != nil {
		return 0, err
	}
	if id != 0 {
		return id, nil
	}

	err = tx.Raw(`INSERT INTO directors (name) VALUES (?) RETURNING id`, "Unknown").Scan(&id).Error
	return id, err
}

func insertMovie(tx *gorm.DB, directorID int64, title string, releaseYear *int, genres []string, genreIDs map[string]int64) error {
	var movieID int64
	err := tx.Raw(
		`INSERT INTO movies (title, release_year, director_id) VALUES (?, ?, ?) RETURNING id`,
		title, releaseYear, directorID,
	).Scan(&movieID).Error
	if err != nil {
		return err
	}

	for _, name := range genres {
		genreID, ok := genreIDs[name]
		if !ok {
			err := tx.Raw(`
INSERT INTO genres (name) VALUES (?)
ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
RETURNING id`, name).Scan(&genreID).Error
			if err != nil {
				return err
			}
			genreIDs[name] = genreID
		}

		err := tx.Exec(
			`INSERT INTO movie_genres (movie_id, genre_id) VALUES (?, ?) ON CONFLICT DO NOTHING`,
			movieID, genreID,
		).Error
		if err != nil {
			return err
		}
	}

	return nil
}

func parseMovieCSVHeader(reader *csv.Reader) (int, int, error) {
	header, err := reader.Read()
	if err != nil {
		return 0, 0, err
	}

	idxTitle, idxGenres := -1, -1
	for i, name := range header {
		switch strings.TrimSpace(name) {
		case "title":
			idxTitle = i
		case "genres":
			idxGenres = i
		}
	}
	if idxTitle == -1 || idxGenres == -1 {
		return 0, 0, errors.New("missing required columns in csv header")
	}

	return idxTitle, idxGenres, nil
}

func parseMovieRecord(record []string, idxTitle, idxGenres int) (string, *int, []string, bool) {
	if idxTitle >= len(record) || idxGenres >= len(record) {
		return "", nil, nil, false
	}

	title, releaseYear := splitTitleYear(strings.TrimSpace(record[idxTitle]))
	if title == "" {
		return "", nil, nil, false
	}

	return title, releaseYear, splitGenres(record[idxGenres]), true
}

// splitTitleYear parses the MovieLens "Title (1995)" convention. Titles
// without a trailing year are kept as is.
func splitTitleYear(raw string) (string, *int) {
	if !strings.HasSuffix(raw, ")") {
		return raw, nil
	}

	open := strings.LastIndex(raw, "(")
	if open == -1 {
		return raw, nil
	}

	year, err := strconv.Atoi(raw[open+1 : len(raw)-1])
	if err != nil {
		return raw, nil
	}

	return strings.TrimSpace(raw[:open]), &year
}

func splitGenres(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "(no genres listed)" {
		return nil
	}

	var genres []string
	for _, name := range strings.Split(raw, "|") {
		name = strings.TrimSpace(name)
		if name != "" {
			genres = append(genres, name)
		}
	}
	return genres
}
