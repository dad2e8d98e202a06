package command

import "github.com/hammamikhairi/deliciously/internal/form"

// Field positions of an add/edit body:
//
//	title | category | ingredients | instructions | image
const (
	fieldTitle = iota
	fieldCategory
	fieldIngredients
	fieldInstructions
	fieldImage
)

// ApplyFields overwrites the form fields given in args. Empty or missing
// positions leave the existing value alone, so "edit r1 | Dinner" only
// changes the category.
func ApplyFields(f *form.RecipeForm, args []string) {
	set := func(pos int, dst *string) {
		if pos < len(args) && args[pos] != "" {
			*dst = args[pos]
		}
	}
	set(fieldTitle, &f.Title)
	set(fieldCategory, &f.Category)
	set(fieldIngredients, &f.Ingredients)
	set(fieldInstructions, &f.Instructions)
	set(fieldImage, &f.Image)
}
