package domain

// RouteName identifies one of the navigable views.
type RouteName int

const (
	RouteHome RouteName = iota
	RouteRecipes
	RouteRecipe
	RouteFavorites
	RouteAdmin
)

// String returns the route name as used in fragments and logs.
func (r RouteName) String() string {
	switch r {
	case RouteHome:
		return "home"
	case RouteRecipes:
		return "recipes"
	case RouteRecipe:
		return "recipe"
	case RouteFavorites:
		return "favorites"
	case RouteAdmin:
		return "admin"
	default:
		return "unknown"
	}
}

// Route is a resolved location: a view name plus path parameters.
type Route struct {
	Name   RouteName
	Params map[string]string
}

// Param returns a path parameter or "".
func (r Route) Param(key string) string {
	if r.Params == nil {
		return ""
	}
	return r.Params[key]
}

// Equal reports whether two routes name the same view with the same params.
func (r Route) Equal(o Route) bool {
	if r.Name != o.Name || len(r.Params) != len(o.Params) {
		return false
	}
	for k, v := range r.Params {
		if o.Params[k] != v {
			return false
		}
	}
	return true
}
