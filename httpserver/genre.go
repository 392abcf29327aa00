package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func (s *Server) RegisterGenreRoutes(g *echo.Group) {
	g.GET("/genres", s.handleListGenres)
}

func (s *Server) handleListGenres(c echo.Context) error {
	genres, err := s.GenreService.ListGenres(c.Request().Context())
	if err != nil {
		return err
	}

	return writeSuccess(c, http.StatusOK, genres)
}
