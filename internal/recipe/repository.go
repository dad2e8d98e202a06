// Package recipe holds the in-memory recipe repository: the authoritative
// recipe collection and favorite set, mirrored to durable storage after
// every mutation.
package recipe

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/hammamikhairi/deliciously/internal/domain"
	"github.com/hammamikhairi/deliciously/internal/logger"
	"github.com/hammamikhairi/deliciously/internal/storage"
)

// Option configures the repository.
type Option func(*Repository)

// WithClock overrides the time source used for creation timestamps.
func WithClock(now func() time.Time) Option {
	return func(r *Repository) {
		r.now = now
	}
}

// WithIDGenerator overrides the recipe id generator.
func WithIDGenerator(gen func() string) Option {
	return func(r *Repository) {
		r.newID = gen
	}
}

// Repository is the single source of truth for recipes and favorites.
// Safe for concurrent use; every mutation is persisted before it returns.
type Repository struct {
	mu        sync.RWMutex
	recipes   []domain.Recipe // newest-first insertion order
	favorites []string
	records   *storage.Records
	log       *logger.Logger
	now       func() time.Time
	newID     func() string
}

// New creates an empty repository. Call Load before use.
func New(records *storage.Records, log *logger.Logger, opts ...Option) *Repository {
	r := &Repository{
		records:   records,
		log:       log,
		now:       time.Now,
		newID:     newID,
		favorites: []string{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Load reads persisted state. A missing or unreadable recipe record falls
// back to the seed set, which is then persisted; a missing or unreadable
// favorite record falls back to an empty set. Load never fails.
func (r *Repository) Load(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	recipes, err := r.records.LoadRecipes(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			r.log.Info("no saved recipes, loading samples")
		} else {
			r.log.Warn("saved recipes unreadable, loading samples: %v", err)
		}
		recipes = Seed(r.now())
		if err := r.records.SaveRecipes(ctx, recipes); err != nil {
			r.log.Error("persisting sample recipes: %v", err)
		}
	}
	for i := range recipes {
		normalize(&recipes[i])
	}
	r.recipes = recipes

	favorites, err := r.records.LoadFavorites(ctx)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			r.log.Warn("saved favorites unreadable, starting empty: %v", err)
		}
		favorites = []string{}
	}
	r.favorites = favorites

	r.log.Debug("loaded %d recipes, %d favorites", len(r.recipes), len(r.favorites))
}

// All returns a snapshot of the collection in insertion order.
func (r *Repository) All() []domain.Recipe {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return cloneAll(r.recipes)
}

// Len returns the number of recipes.
func (r *Repository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.recipes)
}

// Featured returns up to n recipes from the front of the collection.
func (r *Repository) Featured(n int) []domain.Recipe {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if n > len(r.recipes) {
		n = len(r.recipes)
	}
	return cloneAll(r.recipes[:n])
}

// Get returns a recipe by ID.
func (r *Repository) Get(id string) (domain.Recipe, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexOf(id)
	if i < 0 {
		r.log.Debug("recipe not found: %s", id)
		return domain.Recipe{}, domain.ErrNotFound
	}
	return r.recipes[i].Clone(), nil
}

// Add creates a recipe from in with a fresh id, the current time and zero
// popularity, and puts it at the front of the collection.
func (r *Repository) Add(ctx context.Context, in domain.RecipeInput) (domain.Recipe, error) {
	if strings.TrimSpace(in.Title) == "" {
		return domain.Recipe{}, fmt.Errorf("title is required: %w", domain.ErrInvalidInput)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.newID()
	for r.indexOf(id) >= 0 {
		id = r.newID()
	}

	rec := domain.Recipe{
		ID:           id,
		Title:        in.Title,
		Category:     in.Category,
		Image:        in.Image,
		Ingredients:  append([]string(nil), in.Ingredients...),
		Instructions: append([]string(nil), in.Instructions...),
		Popularity:   0,
		CreatedAt:    r.now().UnixMilli(),
	}
	normalize(&rec)

	r.recipes = append([]domain.Recipe{rec}, r.recipes...)
	if err := r.saveRecipes(ctx); err != nil {
		return domain.Recipe{}, err
	}
	r.log.Info("recipe added: %s (%s)", rec.Title, rec.ID)
	return rec.Clone(), nil
}

// Update merges patch into the recipe with the given id. Unknown ids are a
// silent no-op.
func (r *Repository) Update(ctx context.Context, id string, patch domain.RecipePatch) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		r.log.Debug("update of unknown recipe %s ignored", id)
		return nil
	}
	patch.Apply(&r.recipes[i])
	normalize(&r.recipes[i])

	if err := r.saveRecipes(ctx); err != nil {
		return err
	}
	r.log.Info("recipe updated: %s (%s)", r.recipes[i].Title, id)
	return nil
}

// Remove deletes the recipe and its favorite entry. Removing an unknown id
// is a no-op.
func (r *Repository) Remove(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	recipeIdx := r.indexOf(id)
	favIdx := indexOfString(r.favorites, id)
	if recipeIdx < 0 && favIdx < 0 {
		return nil
	}

	if recipeIdx >= 0 {
		next := make([]domain.Recipe, 0, len(r.recipes)-1)
		next = append(next, r.recipes[:recipeIdx]...)
		r.recipes = append(next, r.recipes[recipeIdx+1:]...)
	}
	r.favorites = without(r.favorites, id)

	if err := r.saveRecipes(ctx); err != nil {
		return err
	}
	if err := r.records.SaveFavorites(ctx, r.favorites); err != nil {
		return err
	}
	r.log.Info("recipe removed: %s", id)
	return nil
}

// IncrementPopularity adds one view to the recipe and reports whether it
// exists. Unknown ids change nothing.
func (r *Repository) IncrementPopularity(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return false, nil
	}
	r.recipes[i].Popularity++
	r.log.Debug("popularity %s -> %d", id, r.recipes[i].Popularity)
	return true, r.saveRecipes(ctx)
}

// ToggleFavorite adds id to the favorite set if absent and removes it if
// present. It reports whether id is a favorite afterwards. The id need
// not reference an existing recipe.
func (r *Repository) ToggleFavorite(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var now bool
	if indexOfString(r.favorites, id) >= 0 {
		r.favorites = without(r.favorites, id)
	} else {
		r.favorites = append(append([]string(nil), r.favorites...), id)
		now = true
	}
	if err := r.records.SaveFavorites(ctx, r.favorites); err != nil {
		return now, err
	}
	r.log.Debug("favorite %s -> %v", id, now)
	return now, nil
}

// Favorites returns the favorite ids in the order they were added,
// including ids whose recipe no longer exists.
func (r *Repository) Favorites() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string{}, r.favorites...)
}

// IsFavorite reports whether id is in the favorite set.
func (r *Repository) IsFavorite(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return indexOfString(r.favorites, id) >= 0
}

// FavoriteRecipes returns favorited recipes in collection order. Dangling
// favorite ids are skipped.
func (r *Repository) FavoriteRecipes() []domain.Recipe {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []domain.Recipe
	for _, rec := range r.recipes {
		if indexOfString(r.favorites, rec.ID) >= 0 {
			out = append(out, rec.Clone())
		}
	}
	return out
}

// FavoritesInOrder resolves favorite ids to recipes in the order the ids
// were added. Dangling favorite ids are skipped.
func (r *Repository) FavoritesInOrder() []domain.Recipe {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []domain.Recipe
	for _, id := range r.favorites {
		if i := r.indexOf(id); i >= 0 {
			out = append(out, r.recipes[i].Clone())
		}
	}
	return out
}

// saveRecipes must be called with mu held.
func (r *Repository) saveRecipes(ctx context.Context) error {
	return r.records.SaveRecipes(ctx, r.recipes)
}

// indexOf must be called with mu held.
func (r *Repository) indexOf(id string) int {
	for i := range r.recipes {
		if r.recipes[i].ID == id {
			return i
		}
	}
	return -1
}

// normalize fills defaults that persisted or incoming data may lack.
func normalize(rec *domain.Recipe) {
	if rec.Image == "" {
		rec.Image = domain.PlaceholderImage
	}
	if rec.Ingredients == nil {
		rec.Ingredients = []string{}
	}
	if rec.Instructions == nil {
		rec.Instructions = []string{}
	}
	if rec.Popularity < 0 {
		rec.Popularity = 0
	}
}

func cloneAll(in []domain.Recipe) []domain.Recipe {
	out := make([]domain.Recipe, len(in))
	for i := range in {
		out[i] = in[i].Clone()
	}
	return out
}

func indexOfString(list []string, s string) int {
	for i, v := range list {
		if v == s {
			return i
		}
	}
	return -1
}

// without returns a new slice with every occurrence of s removed.
func without(list []string, s string) []string {
	out := make([]string, 0, len(list))
	for _, v := range list {
		if v != s {
			out = append(out, v)
		}
	}
	return out
}
