package postgres

import (
	"context"
	"errors"

	"moviecatalog/director"

	"gorm.io/gorm"
)

// DirectorModel represents the database model for directors
type DirectorModel struct {
	ID          int64   `gorm:"primaryKey"`
	Name        string  `gorm:"size:255;not null"`
	BirthYear   *int    `gorm:"column:birth_year"`
	Description *string `gorm:"type:text"`
}

// TableName specifies the table name for GORM
func (DirectorModel) TableName() string {
	return "directors"
}

// DirectorRepository implements director.Repository interface
type DirectorRepository struct {
	db *gorm.DB
}

// NewDirectorRepository creates a new director repository
func NewDirectorRepository(db *gorm.DB) *DirectorRepository {
	return &DirectorRepository{db: db}
}

func (r *DirectorRepository) AllDirectors(ctx context.Context) ([]director.Director, error) {
	var models []DirectorModel
	if err := r.db.WithContext(ctx).Order("id").Find(&models).Error; err != nil {
		return nil, err
	}

	directors := make([]director.Director, len(models))
	for i, model := range models {
		directors[i] = director.Director{
			ID:          model.ID,
			Name:        model.Name,
			BirthYear:   model.BirthYear,
			Description: model.Description,
		}
	}
	return directors, nil
}

func (r *DirectorRepository) GetByID(ctx context.Context, id int64) (*director.Director, error) {
	var model DirectorModel
	err := r.db.WithContext(ctx).First(&model, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &director.Director{
		ID:          model.ID,
		Name:        model.Name,
		BirthYear:   model.BirthYear,
		Description: model.Description,
	}, nil
}
