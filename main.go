package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/yuuzu/spenderman/internal/app"
	"github.com/yuuzu/spenderman/internal/config"
	"github.com/yuuzu/spenderman/internal/utils"
	"github.com/yuuzu/spenderman/pkg/sample"
	"github.com/yuuzu/spenderman/pkg/stats"
)

var (
	cfgFile  string
	logLevel string
)

func init() {
	level := os.Getenv("LOG_LEVEL")
	if level != "" {
		logrusLevel, err := log.ParseLevel(level)
		if err != nil {
			log.Fatal(err)
		}
		log.SetLevel(logrusLevel)
	} else {
		log.SetLevel(log.InfoLevel)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "spenderman",
		Short:         "Personal finance tracking service",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if logLevel == "" {
				return nil
			}
			level, err := log.ParseLevel(logLevel)
			if err != nil {
				return err
			}
			log.SetLevel(level)
			return nil
		},
		RunE: serve,
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "./config/application.yaml", "config file")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level, overrides LOG_LEVEL (trace, debug, info, warn, error)")

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API (default)",
		RunE:  serve,
	})
	root.AddCommand(seedCmd())
	root.AddCommand(summaryCmd())
	return root
}

// newApplication loads the configuration and builds the application. skipAutoSeed
// leaves seeding to the caller.
func newApplication(ctx context.Context, skipAutoSeed bool) (*app.Application, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if skipAutoSeed {
		cfg.Seed.Enabled = false
	}
	return app.NewApplication(ctx, cfg)
}

func serve(cmd *cobra.Command, _ []string) error {
	application, err := newApplication(cmd.Context(), false)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	return application.Run(cmd.Context())
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Fill an empty store with sample data for the current month",
		RunE: func(cmd *cobra.Command, _ []string) error {
			application, err := newApplication(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer application.Close()
			deps := application.Dependencies()
			seeded, err := sample.Seed(cmd.Context(), deps.SampleRepositories(), deps.Clock)
			if err != nil {
				return err
			}
			if !seeded {
				fmt.Fprintln(cmd.OutOrStdout(), "store is not empty, nothing seeded")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), "sample data seeded")
			return nil
		},
	}
}

func summaryCmd() *cobra.Command {
	var date, format string
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print the monthly summary",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if format != "csv" && format != "json" {
				return fmt.Errorf("unknown format %q, expected csv or json", format)
			}
			application, err := newApplication(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer application.Close()
			service := application.Dependencies().StatsService

			var summary stats.MonthlySummary
			if date == "" {
				summary, err = service.CurrentMonthSummary(cmd.Context())
			} else {
				d, parseErr := utils.ParseDate(date)
				if parseErr != nil {
					return parseErr
				}
				summary, err = service.MonthlySummary(cmd.Context(), d)
			}
			if err != nil {
				return err
			}

			if format == "json" {
				encoder := json.NewEncoder(cmd.OutOrStdout())
				encoder.SetIndent("", "  ")
				return encoder.Encode(stats.NewMonthlySummaryDTO(summary))
			}
			out, err := application.Dependencies().CsvSummaryRenderer.RenderSummary(summary)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), out)
			return err
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "any day of the month, YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&format, "format", "csv", "output format: csv or json")
	return cmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd().ExecuteContext(ctx); err != nil {
		log.Error(err)
		stop()
		os.Exit(1)
	}
}
