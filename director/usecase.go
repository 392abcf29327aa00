package director

import "context"

type Service interface {
	ListDirectors(ctx context.Context) ([]Director, error)
	GetDirector(ctx context.Context, id int64) (Director, error)
}

// Repository returns nil for an absent director; classification is the
// usecase's job.
type Repository interface {
	AllDirectors(ctx context.Context) ([]Director, error)
	GetByID(ctx context.Context, id int64) (*Director, error)
}

type Usecase struct {
	r Repository
}

func NewUsecase(r Repository) *Usecase {
	return &Usecase{r: r}
}

func (uc *Usecase) ListDirectors(ctx context.Context) ([]Director, error) {
	return uc.r.AllDirectors(ctx)
}

func (uc *Usecase) GetDirector(ctx context.Context, id int64) (Director, error) {
	d, err := uc.r.GetByID(ctx, id)
	if err != nil {
		return Director{}, err
	}
	if d == nil {
		return Director{}, ErrNotFound
	}
	return *d, nil
}
