package httpserver

import (
	"net/http"
	"strconv"

	"moviecatalog/errs"

	"github.com/labstack/echo/v4"
)

func (s *Server) RegisterDirectorRoutes(g *echo.Group) {
	g.GET("/directors", s.handleListDirectors)
	g.GET("/directors/:id", s.handleGetDirector)
}

func (s *Server) handleListDirectors(c echo.Context) error {
	directors, err := s.DirectorService.ListDirectors(c.Request().Context())
	if err != nil {
		return err
	}

	return writeSuccess(c, http.StatusOK, directors)
}

func (s *Server) handleGetDirector(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return errs.Errorf(errs.EINVALID, "directors: id must be an integer")
	}

	d, err := s.DirectorService.GetDirector(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return writeSuccess(c, http.StatusOK, d)
}
