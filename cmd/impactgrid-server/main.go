package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/impactgrid/impactgrid/internal/config"
	"github.com/impactgrid/impactgrid/internal/game"
	"github.com/impactgrid/impactgrid/internal/logging"
	"github.com/impactgrid/impactgrid/internal/server"
	"github.com/impactgrid/impactgrid/internal/world"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

var (
	configPath  string
	addr        string
	verbose     bool
	catalogPath string
)

var rootCmd = &cobra.Command{
	Use:           "impactgrid-server",
	Short:         "Donation impact grid server",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the simulation and serve the HTTP API and push stream",
	RunE:  runServe,
}

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Validate and print the item catalog",
	RunE:  runCatalog,
}

func init() {
	serveCmd.Flags().StringVarP(&configPath, "config", "c", "impactgrid.yaml", "path to config file")
	serveCmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	serveCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	catalogCmd.Flags().StringVar(&catalogPath, "catalog", "", "catalog file (default: embedded)")

	rootCmd.AddCommand(serveCmd, catalogCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if addr != "" {
		cfg.Server.Addr = addr
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	catalog, err := loadCatalog(cfg.Sim.CatalogPath)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	hub := server.NewHub(logger.Named("hub"))
	opts := []game.Option{
		game.WithCatalog(catalog),
		game.WithLogger(logger.Named("sim")),
		game.WithMetrics(game.NewMetrics(reg)),
		game.WithSurface(hub),
		game.WithPlaceInterval(cfg.Sim.PlaceIntervalTicks),
	}
	if cfg.Sim.Seed != 0 {
		opts = append(opts, game.WithSeed(cfg.Sim.Seed))
	}
	sim := game.NewSim(opts...)
	loop := server.NewLoop(sim, cfg.Sim.TickRateHz, logger.Named("loop"))

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           server.New(cfg.Server, loop, hub, reg, logger.Named("http")).Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error { return loop.Run(ctx) })
	g.Go(func() error {
		logger.Info("listening", zap.String("addr", cfg.Server.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		hub.CloseAll()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("server stopped", zap.Error(err))
		return err
	}
	logger.Info("server stopped")
	return nil
}

func runCatalog(cmd *cobra.Command, args []string) error {
	c, err := loadCatalog(catalogPath)
	if err != nil {
		return err
	}
	out, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}

func loadCatalog(path string) (*world.Catalog, error) {
	if path == "" {
		return world.DefaultCatalog(), nil
	}
	return world.LoadCatalogFile(path)
}
