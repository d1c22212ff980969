package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"demoqual/internal/config"
	"demoqual/internal/container"
)

// rootOptions are shared by every subcommand
type rootOptions struct {
	configFile string
	tableFile  string
	sheet      string
	logLevel   string
	analysis   analysisFlags
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "demoqual",
		Short:         "Demographic data-quality indicators for age-by-sex tables",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "YAML configuration file (default $CONFIG_FILE)")
	rootCmd.PersistentFlags().StringVar(&opts.tableFile, "table", "", "xlsx or csv table (default: built-in reference table)")
	rootCmd.PersistentFlags().StringVar(&opts.sheet, "sheet", "", "worksheet to read from an xlsx table")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "ERROR, WARN, INFO, DEBUG or TRACE")
	opts.analysis.register(rootCmd)

	rootCmd.AddCommand(
		newAnalyzeCmd(opts),
		newExportCmd(opts),
		newBenfordCmd(opts),
		newServeCmd(opts),
	)
	return rootCmd
}

// build loads .env and the configuration, applies flag overrides and wires the container
func (o *rootOptions) build(cmd *cobra.Command) (*container.Container, error) {
	// A missing .env is normal; the process environment still applies.
	_ = godotenv.Load()

	path := o.configFile
	if path == "" {
		path = os.Getenv("CONFIG_FILE")
	}
	cfg, err := config.LoadFile(path)
	if err != nil {
		return nil, err
	}

	if o.tableFile != "" {
		cfg.Data.TableFile = o.tableFile
	}
	if o.sheet != "" {
		cfg.Data.Sheet = o.sheet
	}
	if level := strings.ToUpper(strings.TrimSpace(o.logLevel)); level != "" {
		cfg.LogLevel = level
	}
	o.analysis.apply(cmd, &cfg.Analysis)

	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return container.New(cfg)
}

func newServeCmd(opts *rootOptions) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the report, workbook and formulas over HTTP",
		Long: `Serve the quality report over HTTP.

Routes:
  GET /api/report         full report as JSON (query parameters override analysis settings)
  GET /api/report/groups/{group}  male, female or total results
  GET /api/report.xlsx    six-sheet workbook
  GET /api/benford        Benford conformity test
  GET /api/export/{fmt}   raw table as csv or json
  GET /formulas           formulas reference
  GET /healthz            liveness`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.build(cmd)
			if err != nil {
				return err
			}
			if port != "" {
				c.Config.Server.Port = port
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return c.Serve(ctx)
		},
	}

	cmd.Flags().StringVar(&port, "port", "", "listen port (default $PORT or 8080)")
	return cmd
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
