// cmd/cardwise/root.go
package main

import (
	"cardwise/internal/app"
	"cardwise/internal/config"
	"log/slog"
	"math"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type rootOptions struct {
	source     string
	milestones string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "cardwise",
		Short:         "Credit card recommendations from annual spend",
		Long:          "Rank the card catalog by first-year and renewal-year net value for a spend profile.",
		SilenceUsage: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			level := slog.LevelWarn
			if opts.verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.source, "source", "s", app.SourceSeed, "Catalog source: seed or postgres (uses DATABASE_URL)")
	cmd.PersistentFlags().StringVar(&opts.milestones, "milestones", "", "TOML file with milestone programs to overlay")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Debug logging to stderr")

	cmd.AddCommand(newRecommendCmd(opts), newCardsCmd(opts))
	return cmd
}

// open reuses the service configuration, but the CLI never touches Redis.
func (o *rootOptions) open(cmd *cobra.Command) (*app.Deps, config.Config, error) {
	cfg := config.MustLoad()
	cfg.CatalogSource = o.source
	cfg.RedisAddr = ""
	if o.milestones != "" {
		cfg.MilestonesFile = o.milestones
	}
	deps, err := app.Open(cmd.Context(), cfg)
	return deps, cfg, err
}

var printer = message.NewPrinter(language.English)

func inr(v float64) string {
	return printer.Sprintf("%d", int64(math.Round(v)))
}
