// Package form is the boundary between free-text recipe forms and typed
// recipe values. Delimited list fields are parsed here and nowhere else.
package form

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/hammamikhairi/deliciously/internal/domain"
)

// ListSeparator splits ingredient and instruction fields.
const ListSeparator = ";"

var validate = validator.New()

// RecipeForm is the admin add/edit form as the user typed it.
type RecipeForm struct {
	Title        string `json:"title" validate:"required"`
	Image        string `json:"image"`
	Category     string `json:"category" validate:"required,oneof=Breakfast Dinner Desserts Snacks Drinks"`
	Ingredients  string `json:"ingredients"`
	Instructions string `json:"instructions"`
}

// Blank returns an empty form with the default category selected.
func Blank() RecipeForm {
	return RecipeForm{Category: string(domain.CategoryBreakfast)}
}

// FromRecipe fills a form for editing r.
func FromRecipe(r domain.Recipe) RecipeForm {
	return RecipeForm{
		Title:        r.Title,
		Image:        r.Image,
		Category:     string(r.Category),
		Ingredients:  strings.Join(r.Ingredients, ListSeparator),
		Instructions: strings.Join(r.Instructions, ListSeparator),
	}
}

// Parse validates the form and converts it to a RecipeInput. List fields
// are split on ";", trimmed, and blank entries dropped; an empty image
// becomes the placeholder.
func (f RecipeForm) Parse() (domain.RecipeInput, error) {
	f.Title = strings.TrimSpace(f.Title)
	f.Image = strings.TrimSpace(f.Image)
	if c, ok := domain.ParseCategory(f.Category); ok {
		f.Category = string(c)
	}

	if err := validate.Struct(f); err != nil {
		return domain.RecipeInput{}, describe(err)
	}

	image := f.Image
	if image == "" {
		image = domain.PlaceholderImage
	}
	return domain.RecipeInput{
		Title:        f.Title,
		Category:     domain.Category(f.Category),
		Image:        image,
		Ingredients:  SplitList(f.Ingredients),
		Instructions: SplitList(f.Instructions),
	}, nil
}

// Patch parses the form and returns a patch replacing every form field.
func (f RecipeForm) Patch() (domain.RecipePatch, error) {
	in, err := f.Parse()
	if err != nil {
		return domain.RecipePatch{}, err
	}
	return domain.RecipePatch{
		Title:        &in.Title,
		Category:     &in.Category,
		Image:        &in.Image,
		Ingredients:  in.Ingredients,
		Instructions: in.Instructions,
	}, nil
}

// SplitList splits s on the list separator, trimming entries and dropping
// empty ones. The result is never nil.
func SplitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ListSeparator) {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// describe turns validator output into a single ErrInvalidInput error
// naming the first offending field.
func describe(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		switch fe.Tag() {
		case "required":
			return fmt.Errorf("%s is required: %w", strings.ToLower(fe.Field()), domain.ErrInvalidInput)
		case "oneof":
			return fmt.Errorf("category must be one of %s: %w", fe.Param(), domain.ErrInvalidInput)
		default:
			return fmt.Errorf("%s is not a valid %s: %w", strings.ToLower(fe.Field()), fe.Tag(), domain.ErrInvalidInput)
		}
	}
	return fmt.Errorf("%v: %w", err, domain.ErrInvalidInput)
}
