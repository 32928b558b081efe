// Command econdash serves the economic indicators dashboard and queries the
// indicators provider from the terminal.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"econdash/internal/cli"
	"econdash/internal/config"
	"econdash/internal/core"
	"econdash/internal/dashboard"
	apphttp "econdash/internal/http"
	"econdash/internal/log"
)

// Set by -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "econdash",
		Short: "Economic indicators dashboard",
		Long: `econdash fetches macroeconomic indicators for a country and presents
them as a filterable dashboard, over HTTP or in the terminal.

Configuration is read from the environment and an optional .env file.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cli.LoadEnvFile()
		},
	}

	root.AddCommand(newServeCmd(), newIndicatorsCmd(), newVersionCmd())
	return root
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the dashboard HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cli.LoadAndValidateConfig()
			if err != nil {
				return err
			}
			logger := cli.SetupLogger(cfg, os.Stdout)
			return runServe(cmd.Context(), cfg, logger)
		},
	}
}

func runServe(ctx context.Context, cfg *config.Config, logger *log.Logger) error {
	source, err := cli.NewSource(cfg, logger)
	if err != nil {
		return err
	}

	srv, err := apphttp.NewServer(apphttp.Options{
		Addr:               ":" + cfg.Port,
		Service:            dashboard.NewService(source),
		DefaultCountry:     cfg.DefaultCountry,
		RateLimitPerMinute: cfg.RateLimitPerMinute,
		TrustedProxies:     cfg.TrustedProxies,
		Logger:             logger,
	})
	if err != nil {
		return err
	}

	ctx, stop := cli.SignalContext(ctx)
	defer stop()

	logger.Info("Starting server",
		log.FieldOperation, log.OpStartup,
		"addr", srv.Addr,
		log.FieldBackend, cfg.DataBackend,
		"env", cfg.Env,
		"version", version)

	return cli.Serve(ctx, srv, cfg.ShutdownTimeout, logger)
}

type indicatorsOptions struct {
	category string
	search   string
	raw      bool
}

func newIndicatorsCmd() *cobra.Command {
	var opts indicatorsOptions

	cmd := &cobra.Command{
		Use:   "indicators [country]",
		Short: "Print the dashboard for a country",
		Long: `Fetch the indicators for a country and print the dashboard view.

Without a country argument DEFAULT_COUNTRY is used. --json prints the
provider payload unchanged.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cli.LoadAndValidateConfig()
			if err != nil {
				return err
			}
			// Diagnostics go to stderr so stdout stays clean for --json.
			logger := cli.SetupLogger(cfg, cmd.ErrOrStderr())

			country := cfg.DefaultCountry
			if len(args) == 1 {
				country = args[0]
			}
			return runIndicators(cmd, cfg, logger, country, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.category, "category", "c", core.AllCategories, "category group to show")
	cmd.Flags().StringVarP(&opts.search, "search", "q", "", "case-insensitive search over title and category")
	cmd.Flags().BoolVar(&opts.raw, "json", false, "print the provider JSON payload unchanged")

	return cmd
}

func runIndicators(cmd *cobra.Command, cfg *config.Config, logger *log.Logger, country string, opts indicatorsOptions) error {
	source, err := cli.NewSource(cfg, logger)
	if err != nil {
		return err
	}
	svc := dashboard.NewService(source)
	out := cmd.OutOrStdout()

	if opts.raw {
		body, err := svc.Raw(cmd.Context(), country)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, string(body))
		return err
	}

	f := dashboard.Filter{
		Category: strings.TrimSpace(opts.category),
		Search:   strings.TrimSpace(opts.search),
	}
	view, err := svc.Dashboard(cmd.Context(), country, f)
	if err != nil {
		return err
	}
	return renderView(out, core.CountryTitle(view.Country), view)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "econdash", version)
		},
	}
}
