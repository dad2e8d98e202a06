package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/hammamikhairi/deliciously/internal/app"
	"github.com/hammamikhairi/deliciously/internal/command"
	"github.com/hammamikhairi/deliciously/internal/config"
	"github.com/hammamikhairi/deliciously/internal/display"
	"github.com/hammamikhairi/deliciously/internal/domain"
	"github.com/hammamikhairi/deliciously/internal/form"
	"github.com/hammamikhairi/deliciously/internal/logger"
	"github.com/hammamikhairi/deliciously/internal/query"
	"github.com/hammamikhairi/deliciously/internal/router"
)

// console is the part of display.UI the REPL writes to.
type console interface {
	PrintView(block string)
	PrintChat(text string)
	PrintHint(text string)
	PrintUrgent(text string)
	Quit()
}

func runREPL(ctx context.Context, cfg config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var ui *display.UI
	rt, err := wire(ctx, cfg, func(log *logger.Logger) domain.Notifier {
		return command.NewCLINotifier(log, func(format string, a ...interface{}) {
			ui.Printf(format, a...)
		})
	})
	if err != nil {
		return err
	}
	defer rt.close()

	ui = display.NewUI(func() display.Status {
		return display.Status{
			Route:     router.Path(rt.app.Route()),
			Admin:     rt.app.Session().Username,
			Favorites: rt.app.FavoriteCount(),
			View:      string(rt.app.ViewMode()),
		}
	})

	cli := &cliApp{
		app:    rt.app,
		parser: command.NewKeywordParser(rt.log),
		log:    rt.log,
		out:    ui,
	}

	fmt.Println(display.RenderBanner())
	fmt.Println(display.BannerStyle.Render("  Type 'help' for commands, 'quit' to exit."))
	fmt.Println()

	go func() {
		ui.WaitReady()
		cli.run(ctx, ui.InputChan())
		ui.Quit()
	}()

	if err := ui.Run(); err != nil {
		rt.log.Error("display: %v", err)
	}
	cancel()
	return nil
}

type cliApp struct {
	app    *app.App
	parser domain.IntentParser
	log    *logger.Logger
	out    console

	input <-chan string
	// listing is what the last rendered view numbered, so "open 2" can
	// resolve a position.
	listing []domain.Recipe
	// checked holds ticked ingredients of the recipe checkedFor. It
	// resets when another recipe is opened or the detail view is left.
	checked    map[int]bool
	checkedFor string
	quit       bool
}

func (a *cliApp) run(ctx context.Context, input <-chan string) {
	a.input = input
	a.render()

	for !a.quit {
		var line string
		var ok bool
		select {
		case <-ctx.Done():
			return
		case line, ok = <-input:
			if !ok {
				return
			}
		}
		a.handleLine(ctx, line)
	}
}

func (a *cliApp) handleLine(ctx context.Context, line string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}
	intent, err := a.parser.Parse(ctx, line)
	if err != nil {
		a.log.Error("parsing input: %v", err)
		return
	}
	a.log.Debug("intent: %s (payload=%q)", intent.Type, intent.Payload)
	a.handleIntent(ctx, intent)
}

func (a *cliApp) handleIntent(ctx context.Context, intent *domain.Intent) {
	switch intent.Type {
	case domain.IntentHelp:
		a.out.PrintView(display.RenderHelp())
	case domain.IntentQuit:
		a.out.PrintChat("Bye!")
		a.quit = true
		a.out.Quit()
	case domain.IntentNavigate:
		a.navigate(intent.Payload)
	case domain.IntentOpenRecipe:
		a.open(intent.Payload)
	case domain.IntentSearch:
		a.app.SetQuery(intent.Payload)
		a.navigate(router.Path(domain.Route{Name: domain.RouteRecipes}))
	case domain.IntentFilterCategory:
		a.browseSetting(a.app.SetCategory(intent.Payload))
	case domain.IntentSort:
		a.browseSetting(a.app.SetSort(intent.Payload))
	case domain.IntentViewMode:
		a.browseSetting(a.app.SetViewMode(intent.Payload))
	case domain.IntentToggleFavorite:
		a.toggleFavorite(ctx, intent.Payload)
	case domain.IntentCheckIngredient:
		a.checkIngredient(intent.Payload)
	case domain.IntentExportRecipe:
		a.exportRecipe(ctx, intent.Payload)
	case domain.IntentExportFavorites:
		a.exportFavorites(ctx)
	case domain.IntentLogin:
		a.login(ctx, intent.Args)
	case domain.IntentLogout:
		a.logout(ctx)
	case domain.IntentAddRecipe:
		a.addRecipe(ctx, intent.Args)
	case domain.IntentEditRecipe:
		a.editRecipe(ctx, intent.Payload, intent.Args)
	case domain.IntentDeleteRecipe:
		a.deleteRecipe(ctx, intent.Payload)
	default:
		a.out.PrintHint(fmt.Sprintf("Didn't catch %q. Type 'help' for commands.", intent.Payload))
	}
}

// ── views ────────────────────────────────────────────────────────

func (a *cliApp) navigate(fragment string) {
	a.app.Navigate(fragment)
	a.render()
}

// render prints the view of the current route.
func (a *cliApp) render() {
	route := a.app.Route()
	a.listing = nil
	if id := route.Param("id"); route.Name != domain.RouteRecipe || id != a.checkedFor {
		a.checked, a.checkedFor = nil, id
	}

	switch route.Name {
	case domain.RouteRecipes:
		recipes := a.app.Browse()
		a.listing = recipes
		a.out.PrintView(display.RenderRecipes(recipes, a.app.ViewMode() == app.ViewList, a.summary(len(recipes)), a.app.IsFavorite))
	case domain.RouteRecipe:
		r, err := a.app.Recipe(route.Param("id"))
		if err != nil {
			a.out.PrintView(display.RenderNotFound())
			return
		}
		a.out.PrintView(display.RenderRecipe(r, a.app.IsFavorite(r.ID), a.checked))
	case domain.RouteFavorites:
		favs := a.app.FavoriteRecipes()
		a.listing = favs
		a.out.PrintView(display.RenderFavorites(favs))
	case domain.RouteAdmin:
		recipes := a.app.Recipes()
		a.listing = recipes
		a.out.PrintView(display.RenderAdmin(a.app.Session(), recipes))
	default:
		featured := a.app.Featured()
		a.listing = featured
		a.out.PrintView(display.RenderHome(featured))
	}
}

func (a *cliApp) summary(n int) string {
	f := a.app.Filters()
	parts := []string{fmt.Sprintf("%d found", n), string(f.Category)}
	if f.Text != "" {
		parts = append(parts, strconv.Quote(f.Text))
	}
	if f.Sort == query.SortPopularity {
		parts = append(parts, "by popularity")
	} else {
		parts = append(parts, "newest first")
	}
	return strings.Join(parts, " · ")
}

// browseSetting reports a bad filter value or shows the updated list.
func (a *cliApp) browseSetting(err error) {
	if err != nil {
		a.out.PrintUrgent(err.Error())
		return
	}
	a.navigate(router.Path(domain.Route{Name: domain.RouteRecipes}))
}

// resolve turns a list position into the id shown at that position.
func (a *cliApp) resolve(ref string) string {
	if n, err := strconv.Atoi(ref); err == nil && n >= 1 && n <= len(a.listing) {
		return a.listing[n-1].ID
	}
	return ref
}

// current returns the id of the recipe on screen, or "".
func (a *cliApp) current() string {
	if r := a.app.Route(); r.Name == domain.RouteRecipe {
		return r.Param("id")
	}
	return ""
}

func (a *cliApp) target(ref string) (string, bool) {
	if ref == "" {
		if id := a.current(); id != "" {
			return id, true
		}
		a.out.PrintHint("Open a recipe first, or name one by id.")
		return "", false
	}
	return a.resolve(ref), true
}

func (a *cliApp) open(ref string) {
	a.navigate(router.RecipePath(a.resolve(ref)))
}

// checkIngredient toggles the tick on ingredient n of the open recipe.
func (a *cliApp) checkIngredient(ref string) {
	id := a.current()
	if id == "" {
		a.out.PrintHint("Open a recipe first.")
		return
	}
	r, err := a.app.Recipe(id)
	if err != nil {
		a.out.PrintUrgent("Recipe not found.")
		return
	}
	n, err := strconv.Atoi(ref)
	if err != nil || n < 1 || n > len(r.Ingredients) {
		a.out.PrintHint(fmt.Sprintf("Pick an ingredient from 1 to %d.", len(r.Ingredients)))
		return
	}
	if a.checked == nil {
		a.checked = make(map[int]bool)
	}
	a.checked[n-1] = !a.checked[n-1]
	a.render()
}

// ── favorites & export ───────────────────────────────────────────

func (a *cliApp) toggleFavorite(ctx context.Context, ref string) {
	id, ok := a.target(ref)
	if !ok {
		return
	}
	fav, err := a.app.ToggleFavorite(ctx, id)
	if err != nil {
		a.out.PrintUrgent(fmt.Sprintf("Could not update favorites: %v", err))
		return
	}
	if fav {
		a.out.PrintChat("Saved to favorites.")
	} else {
		a.out.PrintChat("Removed from favorites.")
	}
}

func (a *cliApp) exportRecipe(ctx context.Context, ref string) {
	id, ok := a.target(ref)
	if !ok {
		return
	}
	if err := a.app.ExportRecipe(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.out.PrintUrgent("Recipe not found.")
			return
		}
		a.out.PrintUrgent(err.Error())
		return
	}
	a.out.PrintHint("Generating PDF…")
}

func (a *cliApp) exportFavorites(ctx context.Context) {
	err := a.app.ExportFavorites(ctx)
	switch {
	case errors.Is(err, domain.ErrNoFavorites):
		// The dispatcher has already told the user.
	case err != nil:
		a.out.PrintUrgent(err.Error())
	default:
		a.out.PrintHint("Generating favorites PDF…")
	}
}

// ── admin ────────────────────────────────────────────────────────

func (a *cliApp) login(ctx context.Context, args []string) {
	if len(args) != 2 {
		a.out.PrintHint("Usage: login <username> <password>")
		return
	}
	if err := a.app.Login(ctx, args[0], args[1]); err != nil {
		a.out.PrintUrgent(err.Error())
		return
	}
	a.render()
}

func (a *cliApp) logout(ctx context.Context) {
	if err := a.app.Logout(ctx); err != nil {
		a.out.PrintUrgent(err.Error())
		return
	}
	a.out.PrintChat("Logged out.")
	if a.app.Route().Name == domain.RouteAdmin {
		a.render()
	}
}

func (a *cliApp) addRecipe(ctx context.Context, args []string) {
	f := form.Blank()
	command.ApplyFields(&f, args)
	r, err := a.app.AddRecipe(ctx, f)
	if err != nil {
		a.out.PrintUrgent(err.Error())
		return
	}
	a.out.PrintChat(fmt.Sprintf("Added %s (%s).", r.Title, r.ID))
	a.render()
}

func (a *cliApp) editRecipe(ctx context.Context, ref string, args []string) {
	id := a.resolve(ref)
	r, err := a.app.Recipe(id)
	if err != nil {
		a.out.PrintUrgent("Recipe not found.")
		return
	}
	f := form.FromRecipe(r)
	command.ApplyFields(&f, args)
	if err := a.app.UpdateRecipe(ctx, id, f); err != nil {
		a.out.PrintUrgent(err.Error())
		return
	}
	a.out.PrintChat("Saved.")
	a.render()
}

func (a *cliApp) deleteRecipe(ctx context.Context, ref string) {
	id := a.resolve(ref)
	err := a.app.DeleteRecipe(ctx, id, a.confirm)
	switch {
	case errors.Is(err, domain.ErrNotConfirmed):
		a.out.PrintHint("Kept.")
	case err != nil:
		a.out.PrintUrgent(err.Error())
	default:
		a.out.PrintChat("Deleted.")
		a.render()
	}
}

// confirm asks prompt and reads the next line as the answer.
func (a *cliApp) confirm(prompt string) bool {
	a.out.PrintChat(prompt + " [y/N]")
	answer, ok := <-a.input
	if !ok {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
