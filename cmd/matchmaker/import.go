package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/denisok6893-rgb/property-matchmaking/internal/storage"
)

var (
	importProperties string
	importClients    string
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Load client and property records into the record store",
	Long: `Import reads JSON or YAML record files and inserts them into the record
store. Records keep their ids; records without one get a generated id. Records
whose id is already stored are skipped.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if importProperties == "" && importClients == "" {
			return errors.New("nothing to import: pass --properties and/or --clients")
		}
		ctx := cmd.Context()
		store, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer store.Close()

		if importProperties != "" {
			props, err := storage.LoadPropertiesFromFile(importProperties)
			if err != nil {
				return err
			}
			if err := store.UpsertProperties(ctx, props); err != nil {
				return fmt.Errorf("import properties: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "properties: %d read from %s\n", len(props), importProperties)
		}
		if importClients != "" {
			clients, err := storage.LoadClientsFromFile(importClients)
			if err != nil {
				return err
			}
			if err := store.UpsertClients(ctx, clients); err != nil {
				return fmt.Errorf("import clients: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "clients: %d read from %s\n", len(clients), importClients)
		}
		return nil
	},
}

func init() {
	importCmd.Flags().StringVar(&importProperties, "properties", "", "JSON or YAML file with properties")
	importCmd.Flags().StringVar(&importClients, "clients", "", "JSON or YAML file with clients")
	rootCmd.AddCommand(importCmd)
}
