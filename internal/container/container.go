package container

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"demoqual/adapters/excel"
	"demoqual/adapters/flatfile"
	"demoqual/app"
	"demoqual/domain/demography"
	"demoqual/internal"
	"demoqual/internal/config"
	"demoqual/internal/dataset"
	"demoqual/ports"
	"demoqual/ui"
)

// Container holds all application dependencies
type Container struct {
	Config   *config.Config
	Logger   *internal.Logger
	Provider ports.TableProvider
	Service  *app.QualityService
}

// New wires the provider, exporters and service from cfg
func New(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	logger := internal.NewLogger(internal.ParseLogLevel(cfg.LogLevel))

	var provider ports.TableProvider = dataset.NewReferenceProvider()
	if cfg.Data.TableFile != "" {
		provider = excel.NewTableReader(cfg.Data.TableFile, cfg.Data.Sheet, logger)
	}

	service := app.NewQualityService(provider, logger,
		excel.NewReportWriter(logger),
		flatfile.NewCSVExporter(),
		flatfile.NewJSONExporter(true),
	)

	return &Container{
		Config:   cfg,
		Logger:   logger,
		Provider: provider,
		Service:  service,
	}, nil
}

// NewServer loads the table once and builds the HTTP server around it
func (c *Container) NewServer(ctx context.Context) (*http.Server, *demography.Table, error) {
	table, err := c.Service.LoadTable(ctx)
	if err != nil {
		return nil, nil, err
	}

	handler := ui.NewApp(ui.Config{
		Port:     c.Config.Server.Port,
		Defaults: c.Config.Analysis,
	}, c.Service, table, c.Logger)

	return &http.Server{
		Addr:              ":" + c.Config.Server.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}, table, nil
}

// Serve runs the HTTP server until ctx is cancelled, then shuts it down
func (c *Container) Serve(ctx context.Context) error {
	srv, table, err := c.NewServer(ctx)
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("serving %d ages from %s on http://localhost%s", table.Len(), c.Provider.Name(), srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	case <-ctx.Done():
		c.Logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
