// Package httpapi serves the catalog over a JSON HTTP API.
package httpapi

import (
	"context"
	"errors"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/hammamikhairi/deliciously/internal/app"
	"github.com/hammamikhairi/deliciously/internal/blob"
	"github.com/hammamikhairi/deliciously/internal/domain"
	"github.com/hammamikhairi/deliciously/internal/export"
	"github.com/hammamikhairi/deliciously/internal/form"
	"github.com/hammamikhairi/deliciously/internal/logger"
	"github.com/hammamikhairi/deliciously/internal/metrics"
	"github.com/hammamikhairi/deliciously/internal/query"
	"github.com/hammamikhairi/deliciously/internal/router"
)

// Option configures the Server.
type Option func(*Server)

// WithMetrics mounts the Prometheus handler at /metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Server) { s.metrics = m }
}

// WithArtifacts exposes stored exports under /api/exports.
func WithArtifacts(store blob.Store) Option {
	return func(s *Server) { s.artifacts = store }
}

// Server is the echo front end over an *app.App.
type Server struct {
	echo      *echo.Echo
	app       *app.App
	metrics   *metrics.Metrics
	artifacts blob.Store
	log       *logger.Logger
}

// New builds the server and registers every route.
func New(a *app.App, log *logger.Logger, opts ...Option) *Server {
	s := &Server{app: a, log: log}
	for _, opt := range opts {
		opt(s)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = &structValidator{v: validator.New()}
	e.Use(middleware.Recover())
	access := log.Zap().Named("http")
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			access.Debug("request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
			)
			return nil
		},
	}))
	s.echo = e
	s.routes()
	return s
}

func (s *Server) routes() {
	api := s.echo.Group("/api")

	api.GET("/route", s.route)

	api.GET("/recipes", s.listRecipes)
	api.GET("/recipes/:id", s.getRecipe)
	api.POST("/recipes", s.createRecipe)
	api.PUT("/recipes/:id", s.updateRecipe)
	api.DELETE("/recipes/:id", s.deleteRecipe)
	api.POST("/recipes/:id/export", s.exportRecipe)

	api.GET("/favorites", s.listFavorites)
	api.POST("/favorites/:id/toggle", s.toggleFavorite)
	api.POST("/favorites/export", s.exportFavorites)

	api.POST("/admin/login", s.login)
	api.POST("/admin/logout", s.logout)
	api.GET("/admin/session", s.session)

	if s.artifacts != nil {
		api.GET("/exports", s.listExports)
		api.GET("/exports/:name", s.getExport)
	}
	if s.metrics != nil {
		s.echo.GET("/metrics", echo.WrapHandler(s.metrics.Handler()))
	}
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler { return s.echo }

// Start listens on addr until Shutdown.
func (s *Server) Start(addr string) error {
	s.log.Info("http api listening on %s", addr)
	if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// ── navigation ───────────────────────────────────────────────────

type routeView struct {
	Name   string            `json:"name"`
	Params map[string]string `json:"params,omitempty"`
	Path   string            `json:"path"`
}

func viewOf(r domain.Route) routeView {
	return routeView{Name: r.Name.String(), Params: r.Params, Path: router.Path(r)}
}

func (s *Server) route(c echo.Context) error {
	if frag, given := c.QueryParams()["fragment"]; given {
		return ok(c, viewOf(s.app.Navigate(frag[0])))
	}
	return ok(c, viewOf(s.app.Route()))
}

// ── recipes ──────────────────────────────────────────────────────

func (s *Server) listRecipes(c echo.Context) error {
	opts := query.Defaults()
	opts.Text = c.QueryParam("q")
	if name := c.QueryParam("category"); name != "" {
		cat, found := domain.ParseCategory(name)
		if !found {
			return fail(c, http.StatusBadRequest, "INVALID_CATEGORY", "Unknown category "+strconv.Quote(name))
		}
		opts.Category = cat
	}
	if name := c.QueryParam("sort"); name != "" {
		key, found := query.ParseSortKey(name)
		if !found {
			return fail(c, http.StatusBadRequest, "INVALID_SORT", "Unknown sort "+strconv.Quote(name))
		}
		opts.Sort = key
	}
	return ok(c, s.app.Search(opts))
}

type recipeView struct {
	domain.Recipe
	Favorite bool `json:"favorite"`
}

// getRecipe is a detail activation: it navigates to the recipe route,
// which counts a view.
func (s *Server) getRecipe(c echo.Context) error {
	id := c.Param("id")
	s.app.Navigate(router.RecipePath(id))
	r, err := s.app.Recipe(id)
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, recipeView{Recipe: r, Favorite: s.app.IsFavorite(id)})
}

func (s *Server) createRecipe(c echo.Context) error {
	var payload form.RecipeForm
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse recipe")
	}
	r, err := s.app.AddRecipe(c.Request().Context(), payload)
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, r)
}

func (s *Server) updateRecipe(c echo.Context) error {
	id := c.Param("id")
	var payload form.RecipeForm
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse recipe")
	}
	if !s.app.Session().LoggedIn {
		return failErr(c, domain.ErrInvalidCredentials)
	}
	if _, err := s.app.Recipe(id); err != nil {
		return failErr(c, err)
	}
	if err := s.app.UpdateRecipe(c.Request().Context(), id, payload); err != nil {
		return failErr(c, err)
	}
	r, err := s.app.Recipe(id)
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, r)
}

func (s *Server) deleteRecipe(c echo.Context) error {
	id := c.Param("id")
	confirmed, _ := strconv.ParseBool(c.QueryParam("confirm"))
	err := s.app.DeleteRecipe(c.Request().Context(), id, func(string) bool { return confirmed })
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, map[string]string{"id": id})
}

func (s *Server) exportRecipe(c echo.Context) error {
	id := c.Param("id")
	r, err := s.app.Recipe(id)
	if err != nil {
		return failErr(c, err)
	}
	if err := s.app.ExportRecipe(c.Request().Context(), id); err != nil {
		return failErr(c, err)
	}
	return accepted(c, map[string]string{"file": export.Filename(r.Title)})
}

// ── favorites ────────────────────────────────────────────────────

func (s *Server) listFavorites(c echo.Context) error {
	return ok(c, s.app.FavoriteRecipes())
}

func (s *Server) toggleFavorite(c echo.Context) error {
	id := c.Param("id")
	fav, err := s.app.ToggleFavorite(c.Request().Context(), id)
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, map[string]interface{}{"id": id, "favorite": fav})
}

func (s *Server) exportFavorites(c echo.Context) error {
	if err := s.app.ExportFavorites(c.Request().Context()); err != nil {
		return failErr(c, err)
	}
	return accepted(c, map[string]string{"file": export.FavoritesFilename})
}

// ── admin ────────────────────────────────────────────────────────

type loginPayload struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (s *Server) login(c echo.Context) error {
	var payload loginPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse credentials")
	}
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}
	if err := s.app.Login(c.Request().Context(), payload.Username, payload.Password); err != nil {
		return failErr(c, err)
	}
	return ok(c, s.app.Session())
}

func (s *Server) logout(c echo.Context) error {
	if err := s.app.Logout(c.Request().Context()); err != nil {
		return failErr(c, err)
	}
	return ok(c, s.app.Session())
}

func (s *Server) session(c echo.Context) error {
	return ok(c, s.app.Session())
}

// ── artifacts ────────────────────────────────────────────────────

func (s *Server) listExports(c echo.Context) error {
	infos, err := s.artifacts.List(c.Request().Context(), "")
	if err != nil {
		return failErr(c, err)
	}
	if infos == nil {
		infos = []blob.Info{}
	}
	return ok(c, infos)
}

// attachment builds a Content-Disposition value. Titles are user input,
// so quoting is left to mime.
func attachment(name string) string {
	return mime.FormatMediaType("attachment", map[string]string{"filename": name})
}

func (s *Server) getExport(c echo.Context) error {
	name := c.Param("name")
	if !strings.HasSuffix(name, ".pdf") {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Export not found")
	}
	info, rc, err := s.artifacts.Get(c.Request().Context(), name)
	if errors.Is(err, blob.ErrNotExist) || errors.Is(err, blob.ErrInvalidKey) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Export not found")
	}
	if err != nil {
		return failErr(c, err)
	}
	defer rc.Close()

	c.Response().Header().Set(echo.HeaderContentDisposition, attachment(info.Key))
	c.Response().Header().Set(echo.HeaderContentType, "application/pdf")
	c.Response().WriteHeader(http.StatusOK)
	_, err = io.Copy(c.Response(), rc)
	return err
}
