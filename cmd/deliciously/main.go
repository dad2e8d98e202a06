// Deliciously is a recipe catalog with a terminal front end and a JSON API.
//
// Usage:
//
//	deliciously [--config deliciously.yaml] [--storage bolt|sqlite|memory]
//	deliciously serve [--addr :8080]
//	deliciously export <recipe-id> | favorites
//	deliciously reset --yes
//	deliciously recipes list
//	deliciously admin login <user> <pass> | logout
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hammamikhairi/deliciously/internal/config"
)

var (
	configPath string
	verbose    bool
	quiet      bool

	// v is loaded in PersistentPreRunE, after flags are parsed.
	v *viper.Viper
)

var rootCmd = &cobra.Command{
	Use:           "deliciously",
	Short:         "Browse, favorite and export recipes",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		v, err = config.New(configPath)
		if err != nil {
			return err
		}
		return bindFlags(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runREPL(cmd.Context(), config.Decode(v))
	},
}

// flagKeys maps persistent flags onto config keys.
var flagKeys = map[string]string{
	"storage":   config.KeyStorageDriver,
	"db":        config.KeyStoragePath,
	"log-file":  config.KeyLogFile,
	"log-level": config.KeyLogLevel,
	"exports":   config.KeyBlobRoot,
	"blob":      config.KeyBlobDriver,
	"route":     config.KeyInitialFragment,
}

func bindFlags(cmd *cobra.Command) error {
	for name, key := range flagKeys {
		if err := v.BindPFlag(key, cmd.Root().PersistentFlags().Lookup(name)); err != nil {
			return err
		}
	}
	if f := cmd.Flags().Lookup("addr"); f != nil {
		if err := v.BindPFlag(config.KeyHTTPAddr, f); err != nil {
			return err
		}
	}
	switch {
	case quiet:
		v.Set(config.KeyLogLevel, "off")
	case verbose:
		v.Set(config.KeyLogLevel, "verbose")
	}
	return nil
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "config file (default: ./deliciously.yaml if present)")
	pf.String("storage", "bolt", "storage driver: bolt, sqlite or memory")
	pf.String("db", "", "database path (default .deliciously/catalog.db)")
	pf.String("log-file", "", `file to write logs to (use "stderr" to log to console)`)
	pf.String("log-level", "normal", "log level: off, normal or verbose")
	pf.String("blob", "fs", "export artifact store: fs, s3 or memory")
	pf.String("exports", "exports", "directory for exported PDFs (fs store)")
	pf.String("route", "/", "initial location, e.g. /recipe/r2")
	pf.BoolVarP(&verbose, "verbose", "v", false, "enable verbose/debug logging")
	pf.BoolVarP(&quiet, "quiet", "q", false, "disable all logging")
}

func main() {
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
