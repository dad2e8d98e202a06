package router

import (
	"testing"

	"github.com/hammamikhairi/deliciously/internal/domain"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		fragment string
		want     domain.RouteName
		wantID   string
	}{
		{"", domain.RouteHome, ""},
		{"/", domain.RouteHome, ""},
		{"#", domain.RouteHome, ""},
		{"#/", domain.RouteHome, ""},
		{"/recipes", domain.RouteRecipes, ""},
		{"#/recipes", domain.RouteRecipes, ""},
		{"recipes/extra/segments", domain.RouteRecipes, ""},
		{"/recipe/r2", domain.RouteRecipe, "r2"},
		{"#/recipe/r_abc/ignored", domain.RouteRecipe, "r_abc"},
		{"//recipe//r3", domain.RouteRecipe, "r3"},
		{"/recipe", domain.RouteHome, ""},
		{"/recipe/", domain.RouteHome, ""},
		{"/favorites", domain.RouteFavorites, ""},
		{"/admin", domain.RouteAdmin, ""},
		{"/admin/settings", domain.RouteAdmin, ""},
		{"/nowhere", domain.RouteHome, ""},
		{"/Recipes", domain.RouteHome, ""},
	}

	for _, tt := range tests {
		t.Run(tt.fragment, func(t *testing.T) {
			got := Resolve(tt.fragment)
			if got.Name != tt.want {
				t.Fatalf("Resolve(%q) = %s, want %s", tt.fragment, got.Name, tt.want)
			}
			if got.Param("id") != tt.wantID {
				t.Fatalf("Resolve(%q) id = %q, want %q", tt.fragment, got.Param("id"), tt.wantID)
			}
		})
	}
}

func TestPathRoundTrip(t *testing.T) {
	for _, fragment := range []string{"/", "/recipes", "/recipe/r2", "/favorites", "/admin"} {
		if got := Path(Resolve(fragment)); got != fragment {
			t.Errorf("Path(Resolve(%q)) = %q", fragment, got)
		}
	}
}

func TestInitialRouteFromFragment(t *testing.T) {
	r := New("#/favorites")
	if r.Current().Name != domain.RouteFavorites {
		t.Fatalf("expected favorites, got %s", r.Current().Name)
	}
}

func TestNavigateNotifiesSubscribers(t *testing.T) {
	r := New("")

	var got []string
	unsub := r.Subscribe(func(prev, next domain.Route) {
		got = append(got, prev.Name.String()+"->"+next.Name.String())
	})

	r.Navigate("/recipes")
	r.Navigate("/recipe/r1")
	if r.Current().Param("id") != "r1" {
		t.Fatalf("expected current id r1, got %q", r.Current().Param("id"))
	}
	if r.Fragment() != "/recipe/r1" {
		t.Fatalf("unexpected fragment %q", r.Fragment())
	}

	unsub()
	r.Navigate("/admin")

	want := []string{"home->recipes", "recipes->recipe"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestSubscribersRunInOrder(t *testing.T) {
	r := New("/")

	var order []int
	for i := 0; i < 3; i++ {
		i := i
		r.Subscribe(func(_, _ domain.Route) { order = append(order, i) })
	}
	r.Navigate("/favorites")

	for i, v := range order {
		if v != i {
			t.Fatalf("listeners ran out of order: %v", order)
		}
	}
}
