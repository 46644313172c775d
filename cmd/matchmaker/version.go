package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of matchmaker",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "matchmaker %s\n", version)
	},
}

var weightsCmd = &cobra.Command{
	Use:   "weights",
	Short: "Print the effective criterion weights",
	Long: `Weights prints the weight table after defaults, the config file's weights
section and --weights-file are applied, and reports whether it sums to 100.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cfg.Weights
		out := struct {
			Weights any     `json:"weights"`
			Sum     float64 `json:"sum"`
			Valid   bool    `json:"valid"`
			Problem string  `json:"problem,omitempty"`
		}{Weights: w, Sum: w.Sum(), Valid: true}
		if err := w.Validate(); err != nil {
			out.Valid = false
			out.Problem = err.Error()
		}
		return printJSON(cmd.OutOrStdout(), out)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd, weightsCmd)
}
