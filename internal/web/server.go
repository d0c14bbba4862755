// Package web serves the culling UI: one server-rendered page over the
// application façade, plus image streaming from the active project's source
// directory.
package web

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/avenclark/photosift/internal/app"
	"github.com/avenclark/photosift/internal/domain/project"
	"github.com/avenclark/photosift/internal/domain/round"
)

// Config holds HTTP server configuration.
type Config struct {
	Host string
	Port int
}

// Server provides the HTTP endpoints for photosift.
type Server struct {
	echo   *echo.Echo
	app    *app.App
	logger *slog.Logger
	config *Config
}

// NewServer creates a new HTTP server.
func NewServer(a *app.App, logger *slog.Logger, cfg *Config) (*Server, error) {
	if a == nil {
		return nil, fmt.Errorf("app cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if cfg == nil {
		cfg = &Config{Host: "127.0.0.1", Port: 8080}
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			logger.Info("http request",
				"method", c.Request().Method,
				"uri", c.Request().RequestURI,
				"status", c.Response().Status,
				"duration", time.Since(start),
				"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
			)
			return err
		}
	})

	s := &Server{
		echo:   e,
		app:    a,
		logger: logger,
		config: cfg,
	}
	s.registerRoutes()
	return s, nil
}

func (s *Server) registerRoutes() {
	s.echo.GET("/health", s.handleHealth)
	s.echo.GET("/", s.handleIndex)
	s.echo.GET("/images/:name", s.handleImage)

	s.echo.POST("/toggle", s.handleToggle)
	s.echo.POST("/view", s.handleView)
	s.echo.POST("/round/next", s.handleNextRound)
	s.echo.POST("/round/finish", s.handleFinishRound)
	s.echo.POST("/round/switch", s.handleSwitchRound)
	s.echo.POST("/projects", s.handleCreateProject)
	s.echo.POST("/projects/switch", s.handleSwitchProject)
	s.echo.POST("/projects/delete", s.handleDeleteProject)
	s.echo.POST("/settings", s.handleSettings)
}

// Handler exposes the routing tree, for mounting extra endpoints and tests.
func (s *Server) Handler() *echo.Echo {
	return s.echo
}

// Start begins serving and blocks until Shutdown.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.logger.Info("server listening", "addr", addr)
	return s.echo.Start(addr)
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// HealthResponse is the response body for GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

func (s *Server) handleIndex(c echo.Context) error {
	view := s.app.GetActiveProjectView(c.Request().Context())
	return renderIndex(c, view, c.QueryParam("notice"))
}

func (s *Server) handleImage(c echo.Context) error {
	name, err := url.PathUnescape(c.Param("name"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "bad filename")
	}
	path, err := s.app.ImagePath(c.Request().Context(), name)
	if err != nil {
		return s.mapError(c, err)
	}
	return c.File(path)
}

// ToggleResponse is the response body for POST /toggle.
type ToggleResponse struct {
	Filename string `json:"filename"`
	Selected bool   `json:"selected"`
}

func (s *Server) handleToggle(c echo.Context) error {
	filename := c.FormValue("filename")
	selected, err := s.app.ToggleSelection(c.Request().Context(), filename)
	if err != nil {
		return s.mapError(c, err)
	}
	return c.JSON(http.StatusOK, ToggleResponse{Filename: filename, Selected: selected})
}

func (s *Server) handleView(c echo.Context) error {
	if _, err := s.app.SetViewedFile(c.Request().Context(), c.FormValue("filename")); err != nil {
		return s.mapError(c, err)
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

func (s *Server) handleNextRound(c echo.Context) error {
	force := c.FormValue("force") == "1"
	err := s.app.NextRound(c.Request().Context(), force)
	switch {
	case errors.Is(err, round.ErrEmptySelection):
		return c.Redirect(http.StatusSeeOther, "/?notice=empty")
	case errors.Is(err, round.ErrConfirmRequired):
		return c.Redirect(http.StatusSeeOther, "/?notice=confirm")
	case err != nil:
		return s.mapError(c, err)
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

func (s *Server) handleFinishRound(c echo.Context) error {
	if _, err := s.app.FinishRound(c.Request().Context()); err != nil {
		if errors.Is(err, round.ErrExportFailed) {
			s.logger.Error("snapshot export failed", "error", err)
			return c.Redirect(http.StatusSeeOther, "/?notice=exportfailed")
		}
		return s.mapError(c, err)
	}
	return c.Redirect(http.StatusSeeOther, "/?notice=exported")
}

func (s *Server) handleSwitchRound(c echo.Context) error {
	n, err := strconv.Atoi(c.FormValue("round"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "bad round number")
	}
	if err := s.app.SwitchRound(c.Request().Context(), n); err != nil {
		return s.mapError(c, err)
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

func (s *Server) handleCreateProject(c echo.Context) error {
	_, err := s.app.CreateProject(c.Request().Context(), c.FormValue("name"), c.FormValue("source_directory"))
	if err != nil {
		return s.mapError(c, err)
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

func (s *Server) handleSwitchProject(c echo.Context) error {
	if err := s.app.SwitchProject(c.Request().Context(), c.FormValue("id")); err != nil {
		return s.mapError(c, err)
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

func (s *Server) handleDeleteProject(c echo.Context) error {
	err := s.app.DeleteProject(c.Request().Context(), c.FormValue("id"))
	if errors.Is(err, project.ErrLastProject) {
		return c.Redirect(http.StatusSeeOther, "/?notice=lastproject")
	}
	if err != nil {
		return s.mapError(c, err)
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

func (s *Server) handleSettings(c echo.Context) error {
	if err := s.app.UpdateSettings(c.Request().Context(), c.FormValue("auxiliary_label"), c.FormValue("source_directory")); err != nil {
		return s.mapError(c, err)
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

func (s *Server) mapError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, round.ErrInvalidInput), errors.Is(err, project.ErrInvalidInput):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, project.ErrProjectNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, project.ErrLastProject):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	default:
		s.logger.Error("request failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
}
