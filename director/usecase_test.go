package director_test

import (
	"context"
	"testing"

	"moviecatalog/director"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockDirectorRepository struct {
	mock.Mock
}

func (m *MockDirectorRepository) AllDirectors(ctx context.Context) ([]director.Director, error) {
	args := m.Called(ctx)
	return args.Get(0).([]director.Director), args.Error(1)
}

func (m *MockDirectorRepository) GetByID(ctx context.Context, id int64) (*director.Director, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(*director.Director), args.Error(1)
}

func TestListDirectors(t *testing.T) {
	r := new(MockDirectorRepository)
	uc := director.NewUsecase(r)

	t.Run("should return all directors", func(t *testing.T) {
		directors := []director.Director{
			{ID: 1, Name: "Michael Mann"},
			{ID: 2, Name: "Ridley Scott"},
		}
		r.On("AllDirectors", mock.Anything).Return(directors, nil).Once()

		result, err := uc.ListDirectors(context.Background())

		assert.NoError(t, err)
		assert.Equal(t, directors, result)
		r.AssertExpectations(t)
	})
}

func TestGetDirector(t *testing.T) {
	r := new(MockDirectorRepository)
	uc := director.NewUsecase(r)

	t.Run("should return director by id", func(t *testing.T) {
		d := &director.Director{ID: 1, Name: "Michael Mann"}
		r.On("GetByID", mock.Anything, int64(1)).Return(d, nil).Once()

		result, err := uc.GetDirector(context.Background(), 1)

		assert.NoError(t, err)
		assert.Equal(t, *d, result)
		r.AssertExpectations(t)
	})

	t.Run("should map absent director to not found", func(t *testing.T) {
		r.On("GetByID", mock.Anything, int64(99)).Return((*director.Director)(nil), nil).Once()

		_, err := uc.GetDirector(context.Background(), 99)

		assert.Equal(t, director.ErrNotFound, err)
		r.AssertExpectations(t)
	})
}
