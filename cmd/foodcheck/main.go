// Command foodcheck runs product lookups, searches and compliance checks
// against the configured upstreams and prints the results as JSON.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/foodcheck/web/config"
	"github.com/foodcheck/web/internal/app"
	"github.com/foodcheck/web/internal/logging"
	"github.com/foodcheck/web/internal/usecase"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Global flags
	verbose bool

	application *app.App
	logger      *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:           "foodcheck",
	Short:         "Query Open Food Facts and openFDA from the command line",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		// Logs go to stderr; stdout carries the JSON result
		cfg.Log.Format = "console"
		if verbose {
			cfg.Log.Level = "debug"
		} else {
			cfg.Log.Level = "warn"
		}
		logger, err = logging.New(cfg.Log)
		if err != nil {
			return err
		}
		application = app.New(cfg, logger)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var lookupCmd = &cobra.Command{
	Use:   "lookup [barcode]",
	Short: "Look up a product by barcode",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		outcome := application.Products.Lookup(cmd.Context(), args[0])
		if err := writeJSON(cmd.OutOrStdout(), map[string]any{
			"barcode": outcome.Barcode,
			"status":  outcome.Status.String(),
			"product": outcome.Product,
		}); err != nil {
			return err
		}
		if outcome.Unavailable() {
			return fmt.Errorf("product lookup failed: %w", outcome.Err)
		}
		return nil
	},
}

var searchCmd = &cobra.Command{
	Use:   "search [query...]",
	Short: "Search products by free text",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		outcome := application.Products.Search(cmd.Context(), strings.Join(args, " "))
		if err := writeJSON(cmd.OutOrStdout(), map[string]any{
			"query":    outcome.Query,
			"status":   outcome.Status.String(),
			"count":    len(outcome.Products),
			"products": outcome.Products,
		}); err != nil {
			return err
		}
		if outcome.Failed() {
			return fmt.Errorf("product search failed: %w", outcome.Err)
		}
		return nil
	},
}

var complianceCmd = &cobra.Command{
	Use:   "compliance [ingredient...]",
	Short: "Check ingredients against openFDA drug label active ingredients",
	Long: `Each argument may hold several ingredients separated by commas,
semicolons or newlines. One verdict is printed per ingredient, in order.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var ingredients []string
		for _, arg := range args {
			ingredients = append(ingredients, usecase.ParseIngredients(arg)...)
		}
		verdicts := application.Compliance.Check(cmd.Context(), ingredients)
		return writeJSON(cmd.OutOrStdout(), verdicts)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(lookupCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(complianceCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
