package recipe

import (
	"time"

	"github.com/hammamikhairi/deliciously/internal/domain"
)

const day = 24 * time.Hour

// Seed returns the built-in sample recipes used when nothing has been
// saved yet. Creation times are relative to now.
func Seed(now time.Time) []domain.Recipe {
	ago := func(d time.Duration) int64 { return now.Add(-d).UnixMilli() }

	return []domain.Recipe{
		{
			ID:       "r1",
			Title:    "Classic Pancakes",
			Category: domain.CategoryBreakfast,
			Image:    "https://images.unsplash.com/photo-1588345921523-1b2d5a5f5f3f?q=80&w=1200&auto=format&fit=crop&ixlib=rb-4.0.3&s=1",
			Ingredients: []string{
				"1 cup flour", "2 tbsp sugar", "1 cup milk", "1 egg", "2 tbsp butter", "pinch salt",
			},
			Instructions: []string{
				"Mix dry ingredients",
				"Whisk wet ingredients",
				"Combine and cook on skillet for 2-3 min each side",
			},
			Popularity: 120,
			CreatedAt:  ago(20 * day),
		},
		{
			ID:       "r2",
			Title:    "Tomato Basil Pasta",
			Category: domain.CategoryDinner,
			Image:    "https://images.unsplash.com/photo-1523986371872-9d3ba2e2f642?q=80&w=1200&auto=format&fit=crop&ixlib=rb-4.0.3&s=2",
			Ingredients: []string{
				"200g pasta", "2 tomatoes", "handful basil", "2 cloves garlic", "olive oil", "salt & pepper",
			},
			Instructions: []string{
				"Boil pasta",
				"Sauté garlic & tomatoes",
				"Toss with pasta & basil",
			},
			Popularity: 220,
			CreatedAt:  ago(10 * day),
		},
		{
			ID:       "r3",
			Title:    "Chocolate Mug Cake",
			Category: domain.CategoryDesserts,
			Image:    "https://images.unsplash.com/photo-1599785209707-59471a14f1ff?q=80&w=1200&auto=format&fit=crop&ixlib=rb-4.0.3&s=3",
			Ingredients: []string{
				"4 tbsp flour", "3 tbsp sugar", "2 tbsp cocoa powder", "3 tbsp milk", "1 tbsp oil", "1/4 tsp baking powder",
			},
			Instructions: []string{
				"Mix in mug",
				"Microwave 70-90 seconds",
				"Enjoy warm",
			},
			Popularity: 340,
			CreatedAt:  ago(2 * day),
		},
	}
}
