// Package main provides the badbets command line tool.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/yourusername/bad-bets/internal/affiliate"
	"github.com/yourusername/bad-bets/internal/catalog"
	"github.com/yourusername/bad-bets/internal/config"
)

var (
	configFile string
	jsonOutput bool
	cfg        *config.Config
	cat        *catalog.Catalog
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", config.DefaultConfigPath, "Path to configuration file")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Print JSON instead of a table")

	rootCmd.AddCommand(calcCmd, providersCmd, linkCmd, badBetsCmd, compareCmd, leadsCmd)
}

var rootCmd = &cobra.Command{
	Use:           "badbets",
	Short:         "Betting calculators and bad-bet catalogue",
	Long:          `Runs the betting calculators and inspects the provider ranking, bad bets and odds comparisons.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func setup() error {
	var err error
	cfg, err = config.LoadWithDefaults(configFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	cat, err = catalog.Load(cfg.Catalog.Path)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}
	return nil
}

func linkBuilder() *affiliate.Builder {
	return affiliate.NewBuilder(cat, cfg.Affiliate.Codes, affiliate.Tracking{
		Source: cfg.Affiliate.DefaultSource,
		Medium: cfg.Affiliate.DefaultMedium,
	})
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
