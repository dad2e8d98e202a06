// Package app is the single application state object. Every front end
// (terminal UI, REPL, HTTP) drives the catalog through an *App; none of
// them touch storage directly.
package app

import (
	"context"
	"fmt"
	"sync"

	"github.com/hammamikhairi/deliciously/internal/admin"
	"github.com/hammamikhairi/deliciously/internal/domain"
	"github.com/hammamikhairi/deliciously/internal/form"
	"github.com/hammamikhairi/deliciously/internal/logger"
	"github.com/hammamikhairi/deliciously/internal/metrics"
	"github.com/hammamikhairi/deliciously/internal/query"
	"github.com/hammamikhairi/deliciously/internal/recipe"
	"github.com/hammamikhairi/deliciously/internal/router"
)

// FeaturedCount is how many recipes the home view features.
const FeaturedCount = 3

// DeletePrompt is shown to the confirm callback before a delete.
const DeletePrompt = "Delete this recipe?"

// ViewMode is the browse layout.
type ViewMode string

const (
	ViewGrid ViewMode = "grid"
	ViewList ViewMode = "list"
)

// Exporter schedules document exports. *export.Dispatcher satisfies it.
type Exporter interface {
	ExportRecipe(ctx context.Context, r domain.Recipe) error
	ExportFavorites(ctx context.Context, recipes []domain.Recipe) error
}

// Option configures the App.
type Option func(*App)

// WithMetrics records activity on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(a *App) { a.metrics = m }
}

// App owns the repository, admin gate, router and browse filters.
// Methods are safe for concurrent use and are serialized on one mutex.
type App struct {
	mu sync.Mutex

	repo    *recipe.Repository
	gate    *admin.Gate
	router  *router.Router
	exports Exporter
	metrics *metrics.Metrics
	log     *logger.Logger

	filters query.Options
	view    ViewMode

	unsubscribe func()
}

// New wires the App and subscribes the popularity counter to the router.
func New(repo *recipe.Repository, gate *admin.Gate, rt *router.Router, exports Exporter, log *logger.Logger, opts ...Option) *App {
	a := &App{
		repo:    repo,
		gate:    gate,
		router:  rt,
		exports: exports,
		log:     log,
		filters: query.Defaults(),
		view:    ViewGrid,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.unsubscribe = rt.Subscribe(a.onRoute)
	return a
}

// Close detaches the App from the router.
func (a *App) Close() {
	if a.unsubscribe != nil {
		a.unsubscribe()
	}
}

// Load reads persisted state. If the initial route is a recipe detail,
// that counts as an activation.
func (a *App) Load(ctx context.Context) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.repo.Load(ctx)
	a.gate.Load(ctx)

	if cur := a.router.Current(); cur.Name == domain.RouteRecipe {
		a.activate(ctx, cur.Param("id"))
	}
}

// onRoute counts one view per recipe-detail activation: entering the
// recipe route, or switching to a different recipe while on it.
func (a *App) onRoute(prev, next domain.Route) {
	if next.Name != domain.RouteRecipe {
		return
	}
	id := next.Param("id")
	if prev.Name == domain.RouteRecipe && prev.Param("id") == id {
		return
	}
	a.activate(context.Background(), id)
}

func (a *App) activate(ctx context.Context, id string) {
	found, err := a.repo.IncrementPopularity(ctx, id)
	if err != nil {
		a.log.Warn("recording view of %s: %v", id, err)
	}
	if found && a.metrics != nil {
		a.metrics.RecipeViews.WithLabelValues(id).Inc()
	}
}

// --- navigation ---

// Navigate moves to fragment and returns the resolved route.
func (a *App) Navigate(fragment string) domain.Route {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.router.Navigate(fragment)
}

// Route returns the active route.
func (a *App) Route() domain.Route {
	return a.router.Current()
}

// --- browse controls ---

// Filters returns the current browse controls.
func (a *App) Filters() query.Options {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.filters
}

// SetQuery sets the title search text.
func (a *App) SetQuery(text string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.filters.Text = text
}

// SetCategory selects a category filter by name; "All" clears it.
func (a *App) SetCategory(name string) error {
	c, ok := domain.ParseCategory(name)
	if !ok {
		return fmt.Errorf("unknown category %q: %w", name, domain.ErrInvalidInput)
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.filters.Category = c
	return nil
}

// SetSort selects the browse ordering by name.
func (a *App) SetSort(name string) error {
	k, ok := query.ParseSortKey(name)
	if !ok {
		return fmt.Errorf("unknown sort %q: %w", name, domain.ErrInvalidInput)
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.filters.Sort = k
	return nil
}

// SetViewMode switches between grid and list layouts.
func (a *App) SetViewMode(mode string) error {
	m := ViewMode(mode)
	if m != ViewGrid && m != ViewList {
		return fmt.Errorf("unknown view mode %q: %w", mode, domain.ErrInvalidInput)
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.view = m
	return nil
}

// ViewMode returns the browse layout.
func (a *App) ViewMode() ViewMode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.view
}

// --- reads ---

// Browse returns the catalog filtered and sorted by the current controls.
func (a *App) Browse() []domain.Recipe {
	a.mu.Lock()
	opts := a.filters
	a.mu.Unlock()
	return query.Apply(a.repo.All(), opts)
}

// Search applies explicit controls without touching the stored ones.
func (a *App) Search(opts query.Options) []domain.Recipe {
	return query.Apply(a.repo.All(), opts)
}

// Recipes returns the whole collection in insertion order.
func (a *App) Recipes() []domain.Recipe {
	return a.repo.All()
}

// Featured returns the first recipes of the collection.
func (a *App) Featured() []domain.Recipe {
	return a.repo.Featured(FeaturedCount)
}

// Recipe returns one recipe by id.
func (a *App) Recipe(id string) (domain.Recipe, error) {
	return a.repo.Get(id)
}

// --- favorites ---

// ToggleFavorite flips id in the favorite set and reports the new state.
func (a *App) ToggleFavorite(ctx context.Context, id string) (bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	fav, err := a.repo.ToggleFavorite(ctx, id)
	if err != nil {
		return fav, err
	}
	if a.metrics != nil {
		a.metrics.ObserveFavorite(fav)
	}
	return fav, nil
}

// IsFavorite reports whether id is a favorite.
func (a *App) IsFavorite(id string) bool {
	return a.repo.IsFavorite(id)
}

// FavoriteCount is the size of the favorite set, dangling ids included.
func (a *App) FavoriteCount() int {
	return len(a.repo.Favorites())
}

// FavoriteRecipes returns favorite recipes in collection order.
func (a *App) FavoriteRecipes() []domain.Recipe {
	return a.repo.FavoriteRecipes()
}

// --- admin ---

// Login checks the demo credentials and opens the admin view on success.
func (a *App) Login(ctx context.Context, username, password string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	err := a.gate.Login(ctx, username, password)
	if a.metrics != nil {
		a.metrics.ObserveLogin(err)
	}
	if err != nil {
		return err
	}
	a.router.Navigate(router.Path(domain.Route{Name: domain.RouteAdmin}))
	return nil
}

// Logout clears the admin session.
func (a *App) Logout(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.gate.Logout(ctx)
}

// Session returns the admin session.
func (a *App) Session() domain.AdminSession {
	return a.gate.Session()
}

func (a *App) requireAdmin() error {
	if !a.gate.LoggedIn() {
		return fmt.Errorf("admin login required: %w", domain.ErrInvalidCredentials)
	}
	return nil
}

func (a *App) mutated(op string) {
	if a.metrics != nil {
		a.metrics.Mutations.WithLabelValues(op).Inc()
	}
	a.router.Navigate(router.Path(domain.Route{Name: domain.RouteRecipes}))
}

// AddRecipe parses f, prepends the new recipe and returns it.
func (a *App) AddRecipe(ctx context.Context, f form.RecipeForm) (domain.Recipe, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.requireAdmin(); err != nil {
		return domain.Recipe{}, err
	}
	in, err := f.Parse()
	if err != nil {
		return domain.Recipe{}, err
	}
	r, err := a.repo.Add(ctx, in)
	if err != nil {
		return domain.Recipe{}, err
	}
	a.mutated("add")
	return r, nil
}

// UpdateRecipe replaces the form fields of recipe id. Unknown ids are
// ignored.
func (a *App) UpdateRecipe(ctx context.Context, id string, f form.RecipeForm) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.requireAdmin(); err != nil {
		return err
	}
	patch, err := f.Patch()
	if err != nil {
		return err
	}
	if err := a.repo.Update(ctx, id, patch); err != nil {
		return err
	}
	a.mutated("update")
	return nil
}

// DeleteRecipe removes recipe id and its favorite entry once confirm
// accepts DeletePrompt. Declining returns ErrNotConfirmed and changes
// nothing. confirm runs without the App lock held, so it may block on
// user input.
func (a *App) DeleteRecipe(ctx context.Context, id string, confirm func(prompt string) bool) error {
	if err := a.requireAdmin(); err != nil {
		return err
	}
	if confirm == nil || !confirm(DeletePrompt) {
		return domain.ErrNotConfirmed
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.requireAdmin(); err != nil {
		return err
	}
	if err := a.repo.Remove(ctx, id); err != nil {
		return err
	}
	a.mutated("delete")
	return nil
}

// --- export ---

// ExportRecipe schedules a PDF of recipe id.
func (a *App) ExportRecipe(ctx context.Context, id string) error {
	r, err := a.repo.Get(id)
	if err != nil {
		return err
	}
	return a.exports.ExportRecipe(ctx, r)
}

// ExportFavorites schedules a PDF of every favorite, in the order they
// were added.
func (a *App) ExportFavorites(ctx context.Context) error {
	return a.exports.ExportFavorites(ctx, a.repo.FavoritesInOrder())
}
