package director

import (
	"moviecatalog/errs"
)

var ErrNotFound = errs.Errorf(errs.ENOTFOUND, "director: not found")

type Director struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	BirthYear   *int    `json:"birth_year"`
	Description *string `json:"description"`
}
