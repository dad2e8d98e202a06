package display

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/hammamikhairi/deliciously/internal/domain"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fde68a")).
			Bold(true)

	headingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#bbf7d0"))

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#52525b")).
			Padding(0, 1).
			Width(30)

	heartStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fca5a5"))
)

// gridColumns is the number of cards per row in grid mode.
const gridColumns = 3

// FavoriteFunc reports whether a recipe id is a favorite.
type FavoriteFunc func(id string) bool

func heart(fav bool) string {
	if fav {
		return heartStyle.Render("♥")
	}
	return secondaryStyle.Render("♡")
}

// RenderHome shows the featured recipes.
func RenderHome(featured []domain.Recipe) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Cook something delicious today") + "\n")
	b.WriteString(secondaryStyle.Render("Featured recipes") + "\n\n")
	if len(featured) == 0 {
		b.WriteString(secondaryStyle.Render("  Nothing to feature yet.") + "\n")
		return b.String()
	}
	for i, r := range featured {
		fmt.Fprintf(&b, "  %s %s %s\n",
			primaryStyle.Render(fmt.Sprintf("%d.", i+1)),
			primaryStyle.Render(r.Title),
			secondaryStyle.Render("("+string(r.Category)+")"))
	}
	b.WriteString("\n" + secondaryStyle.Render("  Type a number or 'open <id>' to view a recipe.") + "\n")
	return b.String()
}

// RenderRecipes shows the browse view as a grid of cards or a list.
// Entries are numbered so "open N" can pick one.
func RenderRecipes(recipes []domain.Recipe, list bool, summary string, isFav FavoriteFunc) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Recipes") + "  " + secondaryStyle.Render(summary) + "\n\n")
	if len(recipes) == 0 {
		b.WriteString(secondaryStyle.Render("  No recipes match.") + "\n")
		return b.String()
	}

	if list {
		for i, r := range recipes {
			fmt.Fprintf(&b, "  %3d. %s %s %s %s\n",
				i+1,
				heart(isFav(r.ID)),
				primaryStyle.Render(r.Title),
				secondaryStyle.Render("· "+string(r.Category)),
				secondaryStyle.Render(fmt.Sprintf("· %d views · %s", r.Popularity, r.ID)))
		}
		return b.String()
	}

	var row []string
	for i, r := range recipes {
		card := fmt.Sprintf("%s %s\n%s\n%s",
			secondaryStyle.Render(fmt.Sprintf("%d.", i+1)),
			primaryStyle.Render(r.Title),
			secondaryStyle.Render(string(r.Category)+" · "+r.ID),
			heart(isFav(r.ID))+secondaryStyle.Render(fmt.Sprintf(" %d views", r.Popularity)))
		row = append(row, cardStyle.Render(card))
		if len(row) == gridColumns || i == len(recipes)-1 {
			b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, row...) + "\n")
			row = row[:0]
		}
	}
	return b.String()
}

// RenderRecipe shows one recipe in full. checked holds the ticked
// ingredient indexes.
func RenderRecipe(r domain.Recipe, fav bool, checked map[int]bool) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(r.Title) + " " + heart(fav) + "\n")
	b.WriteString(secondaryStyle.Render(fmt.Sprintf("%s · %d views · added %s",
		r.Category, r.Popularity, time.UnixMilli(r.CreatedAt).Format("2006-01-02"))) + "\n")
	b.WriteString(secondaryStyle.Render(r.Image) + "\n\n")

	b.WriteString(headingStyle.Render("Ingredients") + "\n")
	for i, it := range r.Ingredients {
		if checked[i] {
			b.WriteString(secondaryStyle.Render(fmt.Sprintf("  [x] %d. %s", i+1, it)) + "\n")
			continue
		}
		b.WriteString(primaryStyle.Render(fmt.Sprintf("  [ ] %d. %s", i+1, it)) + "\n")
	}
	b.WriteString("\n" + headingStyle.Render("Instructions") + "\n")
	for i, step := range r.Instructions {
		b.WriteString(primaryStyle.Render(fmt.Sprintf("  %d. %s", i+1, step)) + "\n")
	}
	b.WriteString("\n" + secondaryStyle.Render("  check <n> · fav · pdf · recipes") + "\n")
	return b.String()
}

// RenderNotFound is shown for a detail route whose id does not resolve.
func RenderNotFound() string {
	return urgentOutputStyle.Render("  Recipe not found.") + "\n" +
		secondaryStyle.Render("  Type 'recipes' to go back.") + "\n"
}

// RenderFavorites shows the saved recipes.
func RenderFavorites(favorites []domain.Recipe) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Your favorites") + "\n\n")
	if len(favorites) == 0 {
		b.WriteString(secondaryStyle.Render("  No favorites yet. Type 'fav' on a recipe to save it.") + "\n")
		return b.String()
	}
	for i, r := range favorites {
		fmt.Fprintf(&b, "  %s %s %s\n",
			primaryStyle.Render(fmt.Sprintf("%d.", i+1)),
			primaryStyle.Render(r.Title),
			secondaryStyle.Render("· "+r.ID))
	}
	b.WriteString("\n" + secondaryStyle.Render("  'pdf favorites' downloads them all.") + "\n")
	return b.String()
}

// RenderAdmin shows the login prompt or the recipe management list.
func RenderAdmin(session domain.AdminSession, recipes []domain.Recipe) string {
	var b strings.Builder
	if !session.LoggedIn {
		b.WriteString(titleStyle.Render("Admin Login (Demo)") + "\n")
		b.WriteString(secondaryStyle.Render("  login <username> <password>") + "\n")
		b.WriteString(secondaryStyle.Render("  Demo credentials: admin / tastydemo") + "\n")
		return b.String()
	}

	b.WriteString(titleStyle.Render("Admin Panel") + "  " + adminStyle.Render("Logged in as "+session.Username) + "\n\n")
	b.WriteString(headingStyle.Render("Existing recipes") + "\n")
	for _, r := range recipes {
		fmt.Fprintf(&b, "  %s %s %s\n",
			primaryStyle.Render(r.ID),
			primaryStyle.Render(r.Title),
			secondaryStyle.Render("· "+string(r.Category)))
	}
	b.WriteString("\n" + secondaryStyle.Render("  add <title> | <category> | <ingredients;…> | <steps;…> [| <image>]") + "\n")
	b.WriteString(secondaryStyle.Render("  edit <id> | <category> …   delete <id>   logout") + "\n")
	return b.String()
}

// RenderHelp lists the REPL commands.
func RenderHelp() string {
	rows := [][2]string{
		{"home · recipes · favorites · admin", "switch view"},
		{"go <path>", "navigate to a path, e.g. go /recipe/r2"},
		{"open <id> | <n>", "open a recipe by id or list number"},
		{"search [text]", "filter titles (empty clears)"},
		{"category <name>", "Breakfast, Dinner, Desserts, Snacks, Drinks or All"},
		{"sort newest | popularity", "change ordering"},
		{"view grid | list", "change layout"},
		{"fav [id]", "toggle favorite (current recipe by default)"},
		{"check <n>", "tick an ingredient on the open recipe"},
		{"pdf [id] · pdf favorites", "download as PDF"},
		{"login <user> <pass> · logout", "admin session"},
		{"add … · edit <id> … · delete <id>", "manage recipes (admin)"},
		{"quit", "exit"},
	}
	var b strings.Builder
	b.WriteString(headingStyle.Render("Commands") + "\n")
	for _, r := range rows {
		fmt.Fprintf(&b, "  %-36s %s\n", primaryStyle.Render(r[0]), secondaryStyle.Render(r[1]))
	}
	return b.String()
}
