package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	httpapi "github.com/denisok6893-rgb/property-matchmaking/internal/http"
	"github.com/denisok6893-rgb/property-matchmaking/internal/storage"
)

var (
	seedProperties string
	seedClients    string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the matching HTTP API",
	Long: `Serve opens the record store, optionally seeds it from files, and serves
the matching API until SIGINT or SIGTERM. Seeding never overwrites records that
already exist.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default :8080)")
	serveCmd.Flags().Float64("min-score", 0, "default minimum overall score for match queries")
	serveCmd.Flags().Int("limit", 0, "default result limit for match queries")
	serveCmd.Flags().Int("workers", 0, "workers for batch matching (0 = GOMAXPROCS)")
	serveCmd.Flags().StringVar(&seedProperties, "seed-properties", "", "JSON or YAML file with properties to load at startup")
	serveCmd.Flags().StringVar(&seedClients, "seed-clients", "", "JSON or YAML file with clients to load at startup")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := seed(ctx, store); err != nil {
		return err
	}

	srv := httpapi.NewServer(newEngine(), store, log, httpapi.Options{
		MinScore: cfg.Matching.MinScore,
		Limit:    cfg.Matching.Limit,
		Workers:  cfg.Matching.Workers,
	})
	httpServer := &http.Server{
		Addr:              cfg.Server.Address,
		Handler:           srv.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("API listening", zap.String("addr", cfg.Server.Address), zap.String("driver", cfg.Storage.Driver))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}

func seed(ctx context.Context, store *storage.Store) error {
	if seedProperties != "" {
		props, err := storage.LoadPropertiesFromFile(seedProperties)
		if err != nil {
			return err
		}
		if err := store.UpsertProperties(ctx, props); err != nil {
			return err
		}
		log.Info("seeded properties", zap.Int("count", len(props)), zap.String("file", seedProperties))
	}
	if seedClients != "" {
		clients, err := storage.LoadClientsFromFile(seedClients)
		if err != nil {
			return err
		}
		if err := store.UpsertClients(ctx, clients); err != nil {
			return err
		}
		log.Info("seeded clients", zap.Int("count", len(clients)), zap.String("file", seedClients))
	}
	return nil
}
