// Package main is the entry point for the matchmaker CLI: it serves the
// matching API and runs one-off scoring jobs against files or the record store.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/denisok6893-rgb/property-matchmaking/internal/config"
	"github.com/denisok6893-rgb/property-matchmaking/internal/logger"
	"github.com/denisok6893-rgb/property-matchmaking/internal/matching"
	"github.com/denisok6893-rgb/property-matchmaking/internal/storage"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	cfgFile string
	cfg     *config.Config
	log     = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "matchmaker",
	Short: "Score how well properties fit client preference profiles",
	Long: `matchmaker rates client/property pairs across fifteen weighted criteria
(budget, location, transaction and property type, rooms, size, amenities and
building features) and ranks the best fits in either direction.

Records come from JSON or YAML files or from the record store; the serve
command exposes the same operations over HTTP.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		v, err := config.New(cfgFile)
		if err != nil {
			return err
		}
		if err := bindFlags(v, cmd); err != nil {
			return err
		}
		if cfg, err = config.Load(v); err != nil {
			return err
		}
		l, err := logger.New(cfg.Log.JSON, cfg.Log.Debug)
		if err != nil {
			return fmt.Errorf("build logger: %w", err)
		}
		log = l
		if used := v.ConfigFileUsed(); used != "" {
			log.Debug("using config file", zap.String("path", used))
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = log.Sync()
	},
}

// flagKeys maps command flags onto config keys, so a flag given on the
// command line beats the file and the environment.
var flagKeys = map[string]string{
	"debug":        "log.debug",
	"json":         "log.json",
	"driver":       "storage.driver",
	"dsn":          "storage.dsn",
	"weights-file": "matching.weights_file",
	"addr":         "server.address",
	"min-score":    "matching.min_score",
	"limit":        "matching.limit",
	"workers":      "matching.workers",
}

func bindFlags(v *viper.Viper, cmd *cobra.Command) error {
	for name, key := range flagKeys {
		if f := cmd.Flags().Lookup(name); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return fmt.Errorf("bind --%s: %w", name, err)
			}
		}
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./matchmaker.yaml or ~/.config/matchmaker/matchmaker.yaml)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().String("driver", "", "record store driver: sqlite3 or postgres")
	rootCmd.PersistentFlags().String("dsn", "", "record store data source name")
	rootCmd.PersistentFlags().String("weights-file", "", "YAML or JSON file with criterion weights")
}

func newEngine() *matching.Engine {
	return matching.NewEngine(cfg.Weights, log)
}

func openStore(ctx context.Context) (*storage.Store, error) {
	store, err := storage.Open(cfg.Storage.Driver, cfg.Storage.DSN)
	if err != nil {
		return nil, err
	}
	if err := store.EnsureSchema(ctx); err != nil {
		_ = store.Close()
		return nil, err
	}
	return store, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
