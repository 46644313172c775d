package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/denisok6893-rgb/property-matchmaking/internal/domain"
	"github.com/denisok6893-rgb/property-matchmaking/internal/storage"
)

var (
	scoreClientFile   string
	scorePropertyFile string

	matchClientFile     string
	matchPropertiesFile string

	batchClientsFile    string
	batchPropertiesFile string
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score one client against one property",
	Long: `Score prints the full match result, with the per-criterion breakdown, for
the first record of each file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		clients, err := storage.LoadClientsFromFile(scoreClientFile)
		if err != nil {
			return err
		}
		props, err := storage.LoadPropertiesFromFile(scorePropertyFile)
		if err != nil {
			return err
		}
		if len(clients) == 0 || len(props) == 0 {
			return fmt.Errorf("score needs one client and one property")
		}
		return printJSON(cmd.OutOrStdout(), newEngine().CalculateMatchScore(clients[0], props[0]))
	},
}

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Rank properties for a client",
	Long: `Match ranks properties for the first client in --client, best first.
Properties come from --properties or, when omitted, from the record store.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		clients, err := storage.LoadClientsFromFile(matchClientFile)
		if err != nil {
			return err
		}
		if len(clients) == 0 {
			return fmt.Errorf("no client in %s", matchClientFile)
		}
		props, err := loadProperties(cmd.Context(), matchPropertiesFile)
		if err != nil {
			return err
		}
		results := newEngine().FindMatchingProperties(clients[0], props, cfg.Matching.MinScore, cfg.Matching.Limit)
		log.Debug("properties ranked",
			zap.String("client", clients[0].ID),
			zap.Int("candidates", len(props)),
			zap.Int("results", len(results)),
		)
		return printJSON(cmd.OutOrStdout(), results)
	},
}

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Score every client against every property",
	Long: `Batch scores the full client × property cross product in parallel and
prints the pairs scoring at least --min-score, grouped by client. Records come
from the given files or, when omitted, from the record store.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		clients, err := loadClients(ctx, batchClientsFile)
		if err != nil {
			return err
		}
		props, err := loadProperties(ctx, batchPropertiesFile)
		if err != nil {
			return err
		}
		results, err := newEngine().ParallelBatch(ctx, clients, props, cfg.Matching.Workers)
		if err != nil {
			return err
		}
		kept := make([]domain.MatchResult, 0, len(results))
		for _, r := range results {
			if r.OverallScore >= cfg.Matching.MinScore {
				kept = append(kept, r)
			}
		}
		return printJSON(cmd.OutOrStdout(), kept)
	},
}

func init() {
	scoreCmd.Flags().StringVar(&scoreClientFile, "client", "", "JSON or YAML file with the client")
	scoreCmd.Flags().StringVar(&scorePropertyFile, "property", "", "JSON or YAML file with the property")
	_ = scoreCmd.MarkFlagRequired("client")
	_ = scoreCmd.MarkFlagRequired("property")

	matchCmd.Flags().StringVar(&matchClientFile, "client", "", "JSON or YAML file with the client")
	matchCmd.Flags().StringVar(&matchPropertiesFile, "properties", "", "JSON or YAML file with candidate properties (default: record store)")
	matchCmd.Flags().Float64("min-score", 0, "minimum overall score (default 40)")
	matchCmd.Flags().Int("limit", 0, "maximum number of results (default 20)")
	_ = matchCmd.MarkFlagRequired("client")

	batchCmd.Flags().StringVar(&batchClientsFile, "clients", "", "JSON or YAML file with clients (default: record store)")
	batchCmd.Flags().StringVar(&batchPropertiesFile, "properties", "", "JSON or YAML file with properties (default: record store)")
	batchCmd.Flags().Float64("min-score", 0, "minimum overall score (default 40)")
	batchCmd.Flags().Int("workers", 0, "parallel workers (0 = GOMAXPROCS)")

	rootCmd.AddCommand(scoreCmd, matchCmd, batchCmd)
}

func loadProperties(ctx context.Context, path string) ([]domain.Property, error) {
	if path != "" {
		return storage.LoadPropertiesFromFile(path)
	}
	store, err := openStore(ctx)
	if err != nil {
		return nil, err
	}
	defer store.Close()
	return store.AllProperties(ctx)
}

func loadClients(ctx context.Context, path string) ([]domain.Client, error) {
	if path != "" {
		return storage.LoadClientsFromFile(path)
	}
	store, err := openStore(ctx)
	if err != nil {
		return nil, err
	}
	defer store.Close()
	return store.AllClients(ctx)
}
