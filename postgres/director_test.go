package postgres_test

import (
	"context"
	"testing"

	"moviecatalog/genre"
	"moviecatalog/postgres"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirectorRepository(t *testing.T) {
	dbName, dbUser, dbPass := "director_test", "testuser", "testpass"
	db := CreateConnection(t, dbName, dbUser, dbPass)
	MigrateTestDatabase(t, db, "../migrations")
	repo := postgres.NewDirectorRepository(db)

	cleanupCatalog(t, db)
	seedCatalog(t, db)

	t.Run("returns all directors ordered by id", func(t *testing.T) {
		directors, err := repo.AllDirectors(context.Background())

		require.NoError(t, err)
		require.Len(t, directors, 2)
		assert.Equal(t, "Michael Mann", directors[0].Name)
		assert.Equal(t, "Ridley Scott", directors[1].Name)
	})

	t.Run("returns director by id", func(t *testing.T) {
		d, err := repo.GetByID(context.Background(), 2)

		require.NoError(t, err)
		require.NotNil(t, d)
		assert.Equal(t, "Ridley Scott", d.Name)
		assert.Equal(t, 1937, *d.BirthYear)
	})

	t.Run("returns nil for an unknown id", func(t *testing.T) {
		d, err := repo.GetByID(context.Background(), 424242)

		require.NoError(t, err)
		assert.Nil(t, d)
	})
}

func TestGenreRepository(t *testing.T) {
	dbName, dbUser, dbPass := "genre_test", "testuser", "testpass"
	db := CreateConnection(t, dbName, dbUser, dbPass)
	MigrateTestDatabase(t, db, "../migrations")
	repo := postgres.NewGenreRepository(db)

	cleanupCatalog(t, db)
	seedCatalog(t, db)

	t.Run("returns all genres ordered by id", func(t *testing.T) {
		genres, err := repo.AllGenres(context.Background())

		require.NoError(t, err)
		assert.Equal(t, []genre.Genre{
			{ID: 1, Name: "Crime"},
			{ID: 2, Name: "Thriller"},
			{ID: 3, Name: "Sci-Fi"},
		}, genres)
	})
}
