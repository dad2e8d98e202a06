package app

import (
	"context"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hammamikhairi/deliciously/internal/admin"
	"github.com/hammamikhairi/deliciously/internal/domain"
	"github.com/hammamikhairi/deliciously/internal/form"
	"github.com/hammamikhairi/deliciously/internal/logger"
	"github.com/hammamikhairi/deliciously/internal/metrics"
	"github.com/hammamikhairi/deliciously/internal/query"
	"github.com/hammamikhairi/deliciously/internal/recipe"
	"github.com/hammamikhairi/deliciously/internal/router"
	"github.com/hammamikhairi/deliciously/internal/storage"
)

type recordingExporter struct {
	mu        sync.Mutex
	recipes   []string
	favorites [][]string
}

func (e *recordingExporter) ExportRecipe(ctx context.Context, r domain.Recipe) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.recipes = append(e.recipes, r.ID)
	return nil
}

func (e *recordingExporter) ExportFavorites(ctx context.Context, recipes []domain.Recipe) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(recipes) == 0 {
		return domain.ErrNoFavorites
	}
	var ids []string
	for _, r := range recipes {
		ids = append(ids, r.ID)
	}
	e.favorites = append(e.favorites, ids)
	return nil
}

type fixture struct {
	app     *App
	records *storage.Records
	exports *recordingExporter
	metrics *metrics.Metrics
}

func setup(t *testing.T, fragment string) fixture {
	t.Helper()
	log := logger.New(logger.LevelOff, nil)
	records := storage.NewRecords(storage.NewMemoryKV(log))
	exp := &recordingExporter{}
	m := metrics.New()

	a := New(recipe.New(records, log), admin.NewGate(records, log), router.New(fragment), exp, log, WithMetrics(m))
	t.Cleanup(a.Close)
	a.Load(context.Background())
	return fixture{app: a, records: records, exports: exp, metrics: m}
}

func login(t *testing.T, a *App) {
	t.Helper()
	require.NoError(t, a.Login(context.Background(), admin.DemoUsername, admin.DemoPassword))
}

func popularity(t *testing.T, a *App, id string) int {
	t.Helper()
	r, err := a.Recipe(id)
	require.NoError(t, err)
	return r.Popularity
}

func TestLoadSeeds(t *testing.T) {
	f := setup(t, "")
	assert.Len(t, f.app.Recipes(), 3)
	assert.Equal(t, domain.RouteHome, f.app.Route().Name)
	assert.False(t, f.app.Session().LoggedIn)

	featured := f.app.Featured()
	require.Len(t, featured, 3)
	assert.Equal(t, "r1", featured[0].ID)
}

func TestAddRecipeScenario(t *testing.T) {
	f := setup(t, "/admin")
	ctx := context.Background()
	login(t, f.app)

	r, err := f.app.AddRecipe(ctx, form.RecipeForm{
		Title:        "Tea",
		Category:     "Drinks",
		Ingredients:  "water;tea",
		Instructions: "boil;steep",
	})
	require.NoError(t, err)

	all := f.app.Recipes()
	require.Len(t, all, 4)
	assert.Equal(t, r.ID, all[0].ID)
	assert.Equal(t, "Tea", all[0].Title)
	assert.Equal(t, domain.PlaceholderImage, all[0].Image)
	assert.Equal(t, []string{"water", "tea"}, all[0].Ingredients)
	assert.Equal(t, domain.RouteRecipes, f.app.Route().Name)

	saved, err := f.records.LoadRecipes(ctx)
	require.NoError(t, err)
	assert.Len(t, saved, 4)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.Mutations.WithLabelValues("add")))
}

func TestMutationsRequireLogin(t *testing.T) {
	f := setup(t, "")
	ctx := context.Background()

	_, err := f.app.AddRecipe(ctx, form.RecipeForm{Title: "Tea", Category: "Drinks"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	err = f.app.UpdateRecipe(ctx, "r1", form.RecipeForm{Title: "X", Category: "Dinner"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	err = f.app.DeleteRecipe(ctx, "r1", func(string) bool { return true })
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	assert.Len(t, f.app.Recipes(), 3)
}

func TestUpdateRecipe(t *testing.T) {
	f := setup(t, "")
	ctx := context.Background()
	login(t, f.app)

	r, err := f.app.Recipe("r2")
	require.NoError(t, err)
	edit := form.FromRecipe(r)
	edit.Title = "Tomato Basil Linguine"

	require.NoError(t, f.app.UpdateRecipe(ctx, "r2", edit))
	got, err := f.app.Recipe("r2")
	require.NoError(t, err)
	assert.Equal(t, "Tomato Basil Linguine", got.Title)
	assert.Equal(t, r.Ingredients, got.Ingredients)
	assert.Equal(t, r.Popularity, got.Popularity)
	assert.Equal(t, domain.RouteRecipes, f.app.Route().Name)
}

func TestDeleteFavoriteScenario(t *testing.T) {
	f := setup(t, "")
	ctx := context.Background()
	login(t, f.app)

	fav, err := f.app.ToggleFavorite(ctx, "r1")
	require.NoError(t, err)
	require.True(t, fav)
	require.Equal(t, 1, f.app.FavoriteCount())

	var prompt string
	require.NoError(t, f.app.DeleteRecipe(ctx, "r1", func(p string) bool {
		prompt = p
		return true
	}))
	assert.Equal(t, DeletePrompt, prompt)

	_, err = f.app.Recipe("r1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.False(t, f.app.IsFavorite("r1"))
	assert.Equal(t, 0, f.app.FavoriteCount())

	favs, err := f.records.LoadFavorites(ctx)
	require.NoError(t, err)
	assert.Empty(t, favs)
}

func TestDeleteDeclined(t *testing.T) {
	f := setup(t, "")
	ctx := context.Background()
	login(t, f.app)
	f.app.Navigate("/admin")

	err := f.app.DeleteRecipe(ctx, "r1", func(string) bool { return false })
	assert.ErrorIs(t, err, domain.ErrNotConfirmed)
	assert.Len(t, f.app.Recipes(), 3)
	assert.Equal(t, domain.RouteAdmin, f.app.Route().Name, "declined delete must not navigate")

	err = f.app.DeleteRecipe(ctx, "r1", nil)
	assert.ErrorIs(t, err, domain.ErrNotConfirmed)
}

func TestLoginScenarios(t *testing.T) {
	f := setup(t, "")
	ctx := context.Background()

	err := f.app.Login(ctx, "admin", "wrong")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	assert.Equal(t, admin.CredentialsHint, err.Error())
	assert.False(t, f.app.Session().LoggedIn)

	require.NoError(t, f.app.Login(ctx, "admin", "tastydemo"))
	assert.Equal(t, domain.AdminSession{LoggedIn: true, Username: "demo-admin"}, f.app.Session())
	assert.Equal(t, domain.RouteAdmin, f.app.Route().Name)

	require.NoError(t, f.app.Logout(ctx))
	assert.False(t, f.app.Session().LoggedIn)

	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.Logins.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.Logins.WithLabelValues("error")))
}

func TestPopularityOncePerActivation(t *testing.T) {
	f := setup(t, "")
	base := popularity(t, f.app, "r2")

	f.app.Navigate("/recipe/r2")
	assert.Equal(t, base+1, popularity(t, f.app, "r2"))

	// Re-navigating to the same detail is not a new activation.
	f.app.Navigate("#/recipe/r2")
	assert.Equal(t, base+1, popularity(t, f.app, "r2"))

	f.app.Navigate("/recipe/r3")
	f.app.Navigate("/recipe/r2")
	assert.Equal(t, base+2, popularity(t, f.app, "r2"))

	f.app.Navigate("/recipes")
	f.app.Navigate("/recipe/r2")
	assert.Equal(t, base+3, popularity(t, f.app, "r2"))

	assert.Equal(t, 3.0, testutil.ToFloat64(f.metrics.RecipeViews.WithLabelValues("r2")))
}

func TestInitialDetailRouteCountsOnce(t *testing.T) {
	f := setup(t, "#/recipe/r1")
	assert.Equal(t, 121, popularity(t, f.app, "r1"))
}

func TestUnknownRecipeRoute(t *testing.T) {
	f := setup(t, "")
	route := f.app.Navigate("/recipe/missing")
	assert.Equal(t, domain.RouteRecipe, route.Name)
	_, err := f.app.Recipe("missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUnknownRecipeViewsNotCounted(t *testing.T) {
	f := setup(t, "")
	for _, id := range []string{"nope1", "nope2", "nope3"} {
		f.app.Navigate("/recipe/" + id)
		f.app.Navigate("/")
	}
	assert.Equal(t, 0, testutil.CollectAndCount(f.metrics.RecipeViews))

	f.app.Navigate("/recipe/r1")
	assert.Equal(t, 1, testutil.CollectAndCount(f.metrics.RecipeViews))
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.RecipeViews.WithLabelValues("r1")))
}

func TestBrowseControls(t *testing.T) {
	f := setup(t, "")

	// Newest first by default.
	got := f.app.Browse()
	require.Len(t, got, 3)
	assert.Equal(t, "r3", got[0].ID)

	require.NoError(t, f.app.SetSort("popularity"))
	assert.Equal(t, "r3", f.app.Browse()[0].ID)

	f.app.SetQuery("choc")
	got = f.app.Browse()
	require.Len(t, got, 1)
	assert.Equal(t, "Chocolate Mug Cake", got[0].Title)

	f.app.SetQuery("")
	require.NoError(t, f.app.SetCategory("dinner"))
	got = f.app.Browse()
	require.Len(t, got, 1)
	assert.Equal(t, "r2", got[0].ID)

	require.NoError(t, f.app.SetCategory("All"))
	assert.Len(t, f.app.Browse(), 3)

	assert.ErrorIs(t, f.app.SetCategory("Lunch"), domain.ErrInvalidInput)
	assert.ErrorIs(t, f.app.SetSort("alphabetical"), domain.ErrInvalidInput)
	assert.Equal(t, query.SortPopularity, f.app.Filters().Sort)
}

func TestViewMode(t *testing.T) {
	f := setup(t, "")
	assert.Equal(t, ViewGrid, f.app.ViewMode())
	require.NoError(t, f.app.SetViewMode("list"))
	assert.Equal(t, ViewList, f.app.ViewMode())
	assert.ErrorIs(t, f.app.SetViewMode("table"), domain.ErrInvalidInput)
}

func TestExports(t *testing.T) {
	f := setup(t, "")
	ctx := context.Background()

	require.NoError(t, f.app.ExportRecipe(ctx, "r2"))
	assert.ErrorIs(t, f.app.ExportRecipe(ctx, "nope"), domain.ErrNotFound)
	assert.ErrorIs(t, f.app.ExportFavorites(ctx), domain.ErrNoFavorites)

	_, _ = f.app.ToggleFavorite(ctx, "r3")
	_, _ = f.app.ToggleFavorite(ctx, "gone")
	_, _ = f.app.ToggleFavorite(ctx, "r1")
	require.NoError(t, f.app.ExportFavorites(ctx))

	assert.Equal(t, []string{"r2"}, f.exports.recipes)
	require.Len(t, f.exports.favorites, 1)
	assert.Equal(t, []string{"r3", "r1"}, f.exports.favorites[0])
}
