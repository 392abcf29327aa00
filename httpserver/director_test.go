package httpserver_test

import (
	"context"
	"net/http"
	"testing"

	"moviecatalog/director"
	"moviecatalog/genre"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockDirectorService struct {
	mock.Mock
}

func (m *MockDirectorService) ListDirectors(ctx context.Context) ([]director.Director, error) {
	args := m.Called(ctx)
	return args.Get(0).([]director.Director), args.Error(1)
}

func (m *MockDirectorService) GetDirector(ctx context.Context, id int64) (director.Director, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(director.Director), args.Error(1)
}

type MockGenreService struct {
	mock.Mock
}

func (m *MockGenreService) ListGenres(ctx context.Context) ([]genre.Genre, error) {
	args := m.Called(ctx)
	return args.Get(0).([]genre.Genre), args.Error(1)
}

func TestListDirectorsHandler(t *testing.T) {
	server := newServer()
	svc := new(MockDirectorService)
	server.DirectorService = svc

	t.Run("should return 200 with directors", func(t *testing.T) {
		svc.On("ListDirectors", mock.Anything).Return([]director.Director{
			{ID: 1, Name: "Michael Mann"},
		}, nil).Once()

		rec := doJSON(server, http.MethodGet, "/api/v1/directors", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		resp := decodeSuccess(t, rec)
		assert.Equal(t, "success", resp.Status)
		svc.AssertExpectations(t)
	})
}

func TestGetDirectorHandler(t *testing.T) {
	server := newServer()
	svc := new(MockDirectorService)
	server.DirectorService = svc

	t.Run("should return 200 with director", func(t *testing.T) {
		svc.On("GetDirector", mock.Anything, int64(1)).
			Return(director.Director{ID: 1, Name: "Michael Mann"}, nil).Once()

		rec := doJSON(server, http.MethodGet, "/api/v1/directors/1", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		data := dataAsMap(t, decodeSuccess(t, rec))
		assert.Equal(t, "Michael Mann", data["name"])
		svc.AssertExpectations(t)
	})

	t.Run("should return 404 for a missing director", func(t *testing.T) {
		svc.On("GetDirector", mock.Anything, int64(99)).
			Return(director.Director{}, director.ErrNotFound).Once()

		rec := doJSON(server, http.MethodGet, "/api/v1/directors/99", "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		svc.AssertExpectations(t)
	})

	t.Run("should return 422 for a non-integer id", func(t *testing.T) {
		rec := doJSON(server, http.MethodGet, "/api/v1/directors/abc", "")

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		svc.AssertNotCalled(t, "GetDirector")
	})
}

func TestListGenresHandler(t *testing.T) {
	server := newServer()
	svc := new(MockGenreService)
	server.GenreService = svc

	t.Run("should return 200 with genres", func(t *testing.T) {
		svc.On("ListGenres", mock.Anything).Return([]genre.Genre{
			{ID: 1, Name: "Crime"},
			{ID: 2, Name: "Thriller"},
		}, nil).Once()

		rec := doJSON(server, http.MethodGet, "/api/v1/genres", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		svc.AssertExpectations(t)
	})
}
