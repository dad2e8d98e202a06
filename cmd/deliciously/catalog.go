package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/hammamikhairi/deliciously/internal/command"
	"github.com/hammamikhairi/deliciously/internal/config"
	"github.com/hammamikhairi/deliciously/internal/domain"
	"github.com/hammamikhairi/deliciously/internal/export"
	"github.com/hammamikhairi/deliciously/internal/logger"
	"github.com/hammamikhairi/deliciously/internal/query"
	"github.com/hammamikhairi/deliciously/internal/storage"
)

// withRuntime wires the catalog with a stdout notifier for one-shot
// commands.
func withRuntime(ctx context.Context, fn func(rt *runtime) error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	rt, err := wire(ctx, config.Decode(v), func(log *logger.Logger) domain.Notifier {
		return command.NewCLINotifier(log, nil)
	})
	if err != nil {
		return err
	}
	defer rt.close()
	return fn(rt)
}

var exportCmd = &cobra.Command{
	Use:   "export <recipe-id | favorites>",
	Short: "Write a recipe, or every favorite, to PDF",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRuntime(cmd.Context(), func(rt *runtime) error {
			return runExport(cmd.Context(), rt, args[0], os.Stdout)
		})
	},
}

// runExport schedules one export, waits for it and reports the artifact
// name only when the job succeeded.
func runExport(ctx context.Context, rt *runtime, target string, out io.Writer) error {
	var name string
	if target == "favorites" {
		err := rt.app.ExportFavorites(ctx)
		if errors.Is(err, domain.ErrNoFavorites) {
			return nil
		}
		if err != nil {
			return err
		}
		name = export.FavoritesFilename
	} else {
		r, err := rt.app.Recipe(target)
		if err != nil {
			return fmt.Errorf("recipe %s: %w", target, err)
		}
		if err := rt.app.ExportRecipe(ctx, r.ID); err != nil {
			return err
		}
		name = export.Filename(r.Title)
	}

	rt.dispatcher.Wait()
	if err := rt.exports.Err(); err != nil {
		return err
	}
	fmt.Fprintf(out, "wrote %s\n", name)
	return nil
}

var resetYes bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete every saved record so the seed catalog loads next start",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !resetYes {
			return errors.New("reset deletes saved recipes and favorites; pass --yes to confirm")
		}
		return runReset(cmd.Context(), config.Decode(v), os.Stdout)
	},
}

// runReset opens the store directly: loading the catalog first would
// write the seed records straight back.
func runReset(ctx context.Context, cfg config.Config, out io.Writer) error {
	log := newLogger(cfg.Log)
	defer log.Sync()

	kv, err := storage.Open(storage.Driver(cfg.Storage.Driver), cfg.Storage.Path, log)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer kv.Close()

	if err := storage.NewRecords(kv).Reset(ctx); err != nil {
		return err
	}
	fmt.Fprintf(out, "reset %s\n", cfg.Storage.Path)
	return nil
}

var recipesCmd = &cobra.Command{
	Use:   "recipes",
	Short: "Inspect the catalog",
}

var (
	listQuery    string
	listCategory string
	listSort     string
)

var recipesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recipes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := query.Defaults()
		opts.Text = listQuery
		cat, ok := domain.ParseCategory(listCategory)
		if !ok {
			return fmt.Errorf("unknown category %q", listCategory)
		}
		opts.Category = cat
		key, ok := query.ParseSortKey(listSort)
		if !ok {
			return fmt.Errorf("unknown sort %q", listSort)
		}
		opts.Sort = key

		return withRuntime(cmd.Context(), func(rt *runtime) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tCATEGORY\tVIEWS\tFAV")
			for _, r := range rt.app.Search(opts) {
				fav := ""
				if rt.app.IsFavorite(r.ID) {
					fav = "♥"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n", r.ID, r.Title, r.Category, r.Popularity, fav)
			}
			return w.Flush()
		})
	},
}

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Manage the admin session",
}

var adminLoginCmd = &cobra.Command{
	Use:   "login <username> <password>",
	Short: "Log in as the demo admin",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRuntime(cmd.Context(), func(rt *runtime) error {
			if err := rt.app.Login(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			fmt.Printf("logged in as %s\n", rt.app.Session().Username)
			return nil
		})
	},
}

var adminLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "End the admin session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRuntime(cmd.Context(), func(rt *runtime) error {
			if err := rt.app.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Println("logged out")
			return nil
		})
	},
}

func init() {
	lf := recipesListCmd.Flags()
	lf.StringVar(&listQuery, "query", "", "title search text")
	lf.StringVar(&listCategory, "category", string(domain.CategoryAll), "category filter")
	lf.StringVar(&listSort, "sort", "newest", "newest or popularity")

	resetCmd.Flags().BoolVar(&resetYes, "yes", false, "confirm deleting saved records")

	recipesCmd.AddCommand(recipesListCmd)
	adminCmd.AddCommand(adminLoginCmd, adminLogoutCmd)
	rootCmd.AddCommand(exportCmd, resetCmd, recipesCmd, adminCmd)
}
