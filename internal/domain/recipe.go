// Package domain defines the core types and interfaces for the recipe catalog.
// All other packages depend on domain; domain depends on nothing.
package domain

import "strings"

// PlaceholderImage is used for recipes saved without an image URL.
const PlaceholderImage = "https://images.unsplash.com/photo-1504674900247-0877df9cc836?q=80&w=1200&auto=format&fit=crop&ixlib=rb-4.0.3&s=4"

// Category is one of the fixed recipe categories.
type Category string

const (
	CategoryBreakfast Category = "Breakfast"
	CategoryDinner    Category = "Dinner"
	CategoryDesserts  Category = "Desserts"
	CategorySnacks    Category = "Snacks"
	CategoryDrinks    Category = "Drinks"

	// CategoryAll is a filter value only. No recipe carries it.
	CategoryAll Category = "All"
)

// Categories lists the assignable categories in display order.
var Categories = []Category{
	CategoryBreakfast,
	CategoryDinner,
	CategoryDesserts,
	CategorySnacks,
	CategoryDrinks,
}

// FilterCategories is Categories prefixed with CategoryAll.
func FilterCategories() []Category {
	return append([]Category{CategoryAll}, Categories...)
}

// Valid reports whether c is an assignable category.
func (c Category) Valid() bool {
	for _, v := range Categories {
		if v == c {
			return true
		}
	}
	return false
}

// ParseCategory matches name case-insensitively against the filter
// categories (including "All").
func ParseCategory(name string) (Category, bool) {
	name = strings.TrimSpace(name)
	for _, c := range FilterCategories() {
		if strings.EqualFold(string(c), name) {
			return c, true
		}
	}
	return "", false
}

// Recipe is a catalog entry. The JSON shape is the persisted record format.
type Recipe struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Category     Category `json:"category"`
	Image        string   `json:"image"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
	Popularity   int      `json:"popularity"`
	CreatedAt    int64    `json:"createdAt"` // unix milliseconds
}

// Clone returns a deep copy so callers can't alias repository state.
func (r Recipe) Clone() Recipe {
	out := r
	out.Ingredients = copyStrings(r.Ingredients)
	out.Instructions = copyStrings(r.Instructions)
	return out
}

func copyStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

// RecipeInput is the validated, Recipe-shaped value produced at the form
// boundary. It carries no id, timestamp or popularity.
type RecipeInput struct {
	Title        string
	Category     Category
	Image        string
	Ingredients  []string
	Instructions []string
}

// RecipePatch holds the fields to merge into an existing recipe.
// Nil fields are left untouched.
type RecipePatch struct {
	Title        *string
	Category     *Category
	Image        *string
	Ingredients  []string
	Instructions []string
}

// Apply merges the patch into r.
func (p RecipePatch) Apply(r *Recipe) {
	if p.Title != nil {
		r.Title = *p.Title
	}
	if p.Category != nil {
		r.Category = *p.Category
	}
	if p.Image != nil {
		r.Image = *p.Image
	}
	if p.Ingredients != nil {
		r.Ingredients = copyStrings(p.Ingredients)
	}
	if p.Instructions != nil {
		r.Instructions = copyStrings(p.Instructions)
	}
}
