package httpserver

import (
	"net/http"
	"strconv"
	"strings"

	"moviecatalog/errs"
	"moviecatalog/movie"

	"github.com/labstack/echo/v4"
)

const (
	defaultPage     = 1
	defaultPageSize = 10
)

func (s *Server) RegisterMovieRoutes(g *echo.Group) {
	g.GET("/movies", s.handleListMovies)
	g.POST("/movies", s.handleCreateMovie)
	g.GET("/movies/:id", s.handleGetMovie)
	g.PUT("/movies/:id", s.handleUpdateMovie)
	g.DELETE("/movies/:id", s.handleDeleteMovie)
	g.POST("/movies/:id/ratings", s.handleRateMovie)
}

func (s *Server) handleListMovies(c echo.Context) error {
	params := movie.ListParams{
		Page:     defaultPage,
		PageSize: defaultPageSize,
		Title:    c.QueryParam("title"),
		Genre:    c.QueryParam("genre"),
	}

	if raw := strings.TrimSpace(c.QueryParam("page")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return errs.Errorf(errs.EINVALID, "movies: page must be an integer")
		}
		params.Page = parsed
	}
	if raw := strings.TrimSpace(c.QueryParam("page_size")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return errs.Errorf(errs.EINVALID, "movies: page_size must be an integer")
		}
		params.PageSize = parsed
	}
	if raw := strings.TrimSpace(c.QueryParam("release_year")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return errs.Errorf(errs.EINVALID, "movies: release_year must be an integer")
		}
		params.ReleaseYear = &parsed
	}

	page, err := s.MovieService.ListMovies(c.Request().Context(), params)
	if err != nil {
		return err
	}

	return writeSuccess(c, http.StatusOK, page)
}

func (s *Server) handleGetMovie(c echo.Context) error {
	id, err := movieIDParam(c)
	if err != nil {
		return err
	}

	detail, err := s.MovieService.GetMovie(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return writeSuccess(c, http.StatusOK, detail)
}

func (s *Server) handleCreateMovie(c echo.Context) error {
	var req MovieRequest
	if err := c.Bind(&req); err != nil {
		return errs.Errorf(errs.EINVALID, "movies: invalid request body")
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	detail, err := s.MovieService.CreateMovie(c.Request().Context(), req.ToParams())
	if err != nil {
		return err
	}

	return writeSuccess(c, http.StatusCreated, detail)
}

func (s *Server) handleUpdateMovie(c echo.Context) error {
	id, err := movieIDParam(c)
	if err != nil {
		return err
	}

	var req MovieRequest
	if err := c.Bind(&req); err != nil {
		return errs.Errorf(errs.EINVALID, "movies: invalid request body")
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	detail, err := s.MovieService.UpdateMovie(c.Request().Context(), id, req.ToParams())
	if err != nil {
		return err
	}

	return writeSuccess(c, http.StatusOK, detail)
}

func (s *Server) handleDeleteMovie(c echo.Context) error {
	id, err := movieIDParam(c)
	if err != nil {
		return err
	}

	if err := s.MovieService.DeleteMovie(c.Request().Context(), id); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

func (s *Server) handleRateMovie(c echo.Context) error {
	id, err := movieIDParam(c)
	if err != nil {
		return err
	}

	var req RateMovieRequest
	if err := c.Bind(&req); err != nil {
		return errs.Errorf(errs.EINVALID, "movies: invalid request body")
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	rating, err := s.MovieService.RateMovie(c.Request().Context(), id, req.Score)
	if err != nil {
		return err
	}

	return writeSuccess(c, http.StatusCreated, rating)
}

func movieIDParam(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, errs.Errorf(errs.EINVALID, "movies: id must be an integer")
	}
	return id, nil
}
