package command

import (
	"context"
	"reflect"
	"testing"

	"github.com/hammamikhairi/deliciously/internal/domain"
	"github.com/hammamikhairi/deliciously/internal/form"
	"github.com/hammamikhairi/deliciously/internal/logger"
)

func TestKeywordParser(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	parser := NewKeywordParser(log)
	ctx := context.Background()

	tests := []struct {
		input       string
		wantType    domain.IntentType
		wantPayload string
	}{
		// Quit / help
		{"quit", domain.IntentQuit, ""},
		{"q", domain.IntentQuit, ""},
		{"help", domain.IntentHelp, ""},
		{"?", domain.IntentHelp, ""},

		// Navigation keywords
		{"home", domain.IntentNavigate, "/"},
		{"recipes", domain.IntentNavigate, "/recipes"},
		{"ls", domain.IntentNavigate, "/recipes"},
		{"favorites", domain.IntentNavigate, "/favorites"},
		{"favs", domain.IntentNavigate, "/favorites"},
		{"admin", domain.IntentNavigate, "/admin"},
		{"go #/recipe/r2", domain.IntentNavigate, "#/recipe/r2"},

		// Open
		{"open r1", domain.IntentOpenRecipe, "r1"},
		{"2", domain.IntentOpenRecipe, "2"},

		// Browse controls
		{"search choc", domain.IntentSearch, "choc"},
		{"search  mug cake ", domain.IntentSearch, "mug cake"},
		{"search", domain.IntentSearch, ""},
		{"category desserts", domain.IntentFilterCategory, "desserts"},
		{"cat All", domain.IntentFilterCategory, "All"},
		{"sort popularity", domain.IntentSort, "popularity"},
		{"sort by newest", domain.IntentSort, "newest"},
		{"view LIST", domain.IntentViewMode, "list"},
		{"grid", domain.IntentViewMode, "grid"},

		// Favorites
		{"fav", domain.IntentToggleFavorite, ""},
		{"fav r3", domain.IntentToggleFavorite, "r3"},

		// Ingredient checklist
		{"check 2", domain.IntentCheckIngredient, "2"},
		{"tick 10", domain.IntentCheckIngredient, "10"},

		// Export
		{"pdf", domain.IntentExportRecipe, ""},
		{"pdf r1", domain.IntentExportRecipe, "r1"},
		{"pdf favorites", domain.IntentExportFavorites, ""},
		{"export all", domain.IntentExportFavorites, ""},

		// Admin
		{"login admin tastydemo", domain.IntentLogin, "admin tastydemo"},
		{"logout", domain.IntentLogout, ""},
		{"delete r1", domain.IntentDeleteRecipe, "r1"},
		{"edit r2 | Dinner", domain.IntentEditRecipe, "r2"},

		// Unknown
		{"flambé the cat", domain.IntentUnknown, "flambé the cat"},
		{"", domain.IntentUnknown, ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			intent, err := parser.Parse(ctx, tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if intent.Type != tt.wantType {
				t.Errorf("input=%q: got type %s, want %s", tt.input, intent.Type, tt.wantType)
			}
			if intent.Payload != tt.wantPayload {
				t.Errorf("input=%q: got payload %q, want %q", tt.input, intent.Payload, tt.wantPayload)
			}
		})
	}
}

func TestParserArgs(t *testing.T) {
	parser := NewKeywordParser(logger.New(logger.LevelOff, nil))
	ctx := context.Background()

	tests := []struct {
		input    string
		wantArgs []string
	}{
		{"login admin tastydemo", []string{"admin", "tastydemo"}},
		{"login", nil},
		{"add Tea | Drinks | water;tea | boil;steep", []string{"Tea", "Drinks", "water;tea", "boil;steep"}},
		{"add Tea", []string{"Tea"}},
		{"edit r1 | | flour;eggs", []string{"", "", "flour;eggs"}},
		{"edit r1", nil},
	}
	for _, tt := range tests {
		intent, err := parser.Parse(ctx, tt.input)
		if err != nil {
			t.Fatalf("parse %q: %v", tt.input, err)
		}
		if !reflect.DeepEqual(intent.Args, tt.wantArgs) {
			t.Errorf("input=%q: got args %#v, want %#v", tt.input, intent.Args, tt.wantArgs)
		}
	}
}

func TestApplyFields(t *testing.T) {
	f := form.RecipeForm{Title: "Pasta", Category: "Dinner", Ingredients: "pasta", Instructions: "boil"}
	ApplyFields(&f, []string{"", "Snacks", "", "", "https://example.com/x.jpg"})

	want := form.RecipeForm{
		Title:        "Pasta",
		Category:     "Snacks",
		Ingredients:  "pasta",
		Instructions: "boil",
		Image:        "https://example.com/x.jpg",
	}
	if f != want {
		t.Fatalf("got %+v, want %+v", f, want)
	}
}
