// Package router maps location fragments to views. The Router service
// holds the current route and notifies subscribers when it changes.
package router

import (
	"strings"
	"sync"

	"github.com/hammamikhairi/deliciously/internal/domain"
)

// Resolve maps a fragment such as "#/recipe/r2" to a route. Unrecognized
// paths resolve to home.
func Resolve(fragment string) domain.Route {
	fragment = strings.TrimPrefix(fragment, "#")

	var parts []string
	for _, p := range strings.Split(fragment, "/") {
		if p != "" {
			parts = append(parts, p)
		}
	}

	if len(parts) == 0 {
		return home()
	}
	switch parts[0] {
	case "recipes":
		return domain.Route{Name: domain.RouteRecipes}
	case "recipe":
		if len(parts) > 1 {
			return domain.Route{Name: domain.RouteRecipe, Params: map[string]string{"id": parts[1]}}
		}
	case "favorites":
		return domain.Route{Name: domain.RouteFavorites}
	case "admin":
		return domain.Route{Name: domain.RouteAdmin}
	}
	return home()
}

func home() domain.Route { return domain.Route{Name: domain.RouteHome} }

// Path returns the canonical fragment for a route.
func Path(r domain.Route) string {
	switch r.Name {
	case domain.RouteRecipes:
		return "/recipes"
	case domain.RouteRecipe:
		return "/recipe/" + r.Param("id")
	case domain.RouteFavorites:
		return "/favorites"
	case domain.RouteAdmin:
		return "/admin"
	default:
		return "/"
	}
}

// RecipePath returns the fragment of a recipe detail view.
func RecipePath(id string) string { return "/recipe/" + id }

// Listener receives route changes.
type Listener func(prev, next domain.Route)

// Router is the explicit navigation service. Safe for concurrent use.
// Listeners run synchronously on the goroutine that called Navigate,
// after the new route is visible through Current.
type Router struct {
	mu        sync.RWMutex
	current   domain.Route
	fragment  string
	listeners map[int]Listener
	nextID    int
}

// New creates a router whose initial route is resolved from fragment.
func New(fragment string) *Router {
	return &Router{
		current:   Resolve(fragment),
		fragment:  fragment,
		listeners: make(map[int]Listener),
	}
}

// Current returns the active route.
func (r *Router) Current() domain.Route {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current
}

// Fragment returns the last fragment navigated to.
func (r *Router) Fragment() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.fragment
}

// Navigate resolves fragment, makes it current and notifies listeners.
// Navigating to the active route notifies too, like a hash re-evaluation.
func (r *Router) Navigate(fragment string) domain.Route {
	next := Resolve(fragment)

	r.mu.Lock()
	prev := r.current
	r.current = next
	r.fragment = fragment
	listeners := make([]Listener, 0, len(r.listeners))
	for i := 0; i < r.nextID; i++ {
		if l, ok := r.listeners[i]; ok {
			listeners = append(listeners, l)
		}
	}
	r.mu.Unlock()

	for _, l := range listeners {
		l(prev, next)
	}
	return next
}

// Subscribe registers a listener and returns a function that removes it.
// Listeners are called in subscription order.
func (r *Router) Subscribe(l Listener) (unsubscribe func()) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.nextID
	r.nextID++
	r.listeners[id] = l

	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		delete(r.listeners, id)
	}
}
