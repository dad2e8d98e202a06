package export

import (
	"context"
	"fmt"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/hammamikhairi/deliciously/internal/domain"
	"github.com/hammamikhairi/deliciously/internal/logger"
)

// User-facing failure prefixes.
const (
	RecipeFailurePrefix    = "Could not generate PDF. "
	FavoritesFailurePrefix = "PDF failed: "
	NoFavoritesMessage     = "No favorites saved."
)

// Export kinds passed to an Observer.
const (
	KindRecipe    = "recipe"
	KindFavorites = "favorites"
)

// Observer is told the outcome of every finished export job.
type Observer func(kind string, err error)

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithPoolSize bounds the number of concurrently rendering exports.
func WithPoolSize(n int) DispatcherOption {
	return func(d *Dispatcher) {
		if n > 0 {
			d.size = n
		}
	}
}

// WithObserver registers a callback for finished jobs.
func WithObserver(o Observer) DispatcherOption {
	return func(d *Dispatcher) { d.observe = o }
}

// Dispatcher runs exports in the background. Callers return immediately;
// failures reach the user through the notifier. Retriggering an export
// while one is in flight starts another job, and the last to finish wins.
type Dispatcher struct {
	adapter  *Adapter
	notifier domain.Notifier
	log      *logger.Logger
	observe  Observer
	size     int

	pool *ants.Pool
	wg   sync.WaitGroup
}

// NewDispatcher creates a dispatcher backed by an ants goroutine pool.
func NewDispatcher(adapter *Adapter, notifier domain.Notifier, log *logger.Logger, opts ...DispatcherOption) (*Dispatcher, error) {
	d := &Dispatcher{
		adapter:  adapter,
		notifier: notifier,
		log:      log,
		size:     4,
	}
	for _, o := range opts {
		o(d)
	}
	pool, err := ants.NewPool(d.size, ants.WithPanicHandler(func(p interface{}) {
		log.Error("export job panicked: %v", p)
	}))
	if err != nil {
		return nil, fmt.Errorf("create export pool: %w", err)
	}
	d.pool = pool
	return d, nil
}

// ExportRecipe schedules a single-recipe export.
func (d *Dispatcher) ExportRecipe(ctx context.Context, r domain.Recipe) error {
	r = r.Clone()
	return d.submit(ctx, KindRecipe, RecipeFailurePrefix, func(ctx context.Context) error {
		_, err := d.adapter.RecipeDocument(ctx, r)
		return err
	})
}

// ExportFavorites schedules the bulk favorites export. An empty list is
// reported to the user right away and returns ErrNoFavorites.
func (d *Dispatcher) ExportFavorites(ctx context.Context, recipes []domain.Recipe) error {
	if len(recipes) == 0 {
		_ = d.notifier.NotifyUrgent(ctx, NoFavoritesMessage)
		return domain.ErrNoFavorites
	}
	snapshot := make([]domain.Recipe, len(recipes))
	for i, r := range recipes {
		snapshot[i] = r.Clone()
	}
	return d.submit(ctx, KindFavorites, FavoritesFailurePrefix, func(ctx context.Context) error {
		_, err := d.adapter.FavoritesDocument(ctx, snapshot)
		return err
	})
}

func (d *Dispatcher) submit(ctx context.Context, kind, prefix string, job func(context.Context) error) error {
	// Jobs outlive the request that started them.
	ctx = context.WithoutCancel(ctx)

	d.wg.Add(1)
	err := d.pool.Submit(func() {
		defer d.wg.Done()
		err := job(ctx)
		if err != nil {
			d.log.Warn("%s export failed: %v", kind, err)
			_ = d.notifier.NotifyUrgent(ctx, prefix+err.Error())
		}
		if d.observe != nil {
			d.observe(kind, err)
		}
	})
	if err != nil {
		d.wg.Done()
		return fmt.Errorf("schedule %s export: %w", kind, err)
	}
	return nil
}

// Wait blocks until every scheduled job has finished.
func (d *Dispatcher) Wait() { d.wg.Wait() }

// Close waits for running jobs and releases the pool.
func (d *Dispatcher) Close() {
	d.wg.Wait()
	d.pool.Release()
}
