// Package metrics exposes catalog activity counters in Prometheus format.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "deliciously"

// Metrics holds the catalog counters on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	RecipeViews     *prometheus.CounterVec
	Exports         *prometheus.CounterVec
	Mutations       *prometheus.CounterVec
	FavoriteToggles *prometheus.CounterVec
	Logins          *prometheus.CounterVec
}

// New registers every counter on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		RecipeViews: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "recipe_views_total",
			Help:      "Recipe detail activations.",
		}, []string{"recipe"}),
		Exports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "exports_total",
			Help:      "Finished document exports by kind and outcome.",
		}, []string{"kind", "outcome"}),
		Mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "recipe_mutations_total",
			Help:      "Admin recipe mutations by operation.",
		}, []string{"op"}),
		FavoriteToggles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "favorite_toggles_total",
			Help:      "Favorite toggles by resulting state.",
		}, []string{"state"}),
		Logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "admin_logins_total",
			Help:      "Admin login attempts by outcome.",
		}, []string{"outcome"}),
	}
	m.registry.MustRegister(m.RecipeViews, m.Exports, m.Mutations, m.FavoriteToggles, m.Logins)
	return m
}

// Registry returns the registry the counters live on.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveExport matches export.Observer.
func (m *Metrics) ObserveExport(kind string, err error) {
	m.Exports.WithLabelValues(kind, outcome(err)).Inc()
}

// ObserveLogin records a login attempt.
func (m *Metrics) ObserveLogin(err error) {
	m.Logins.WithLabelValues(outcome(err)).Inc()
}

// ObserveFavorite records a toggle ending in the given state.
func (m *Metrics) ObserveFavorite(favorite bool) {
	state := "removed"
	if favorite {
		state = "added"
	}
	m.FavoriteToggles.WithLabelValues(state).Inc()
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
