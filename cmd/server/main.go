package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/me/seekplan/internal/config"
	"github.com/me/seekplan/internal/logging"
	"github.com/me/seekplan/internal/metrics"
	"github.com/me/seekplan/internal/server"
	"github.com/me/seekplan/internal/store"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg := config.DefaultServerConfig()

	flag.StringVar(&cfg.Addr, "addr", cfg.Addr, "Listen address")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	flag.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (text, json)")
	flag.StringVar(&cfg.DBPath, "db", cfg.DBPath, "Database path (default ~/.seekplan/seekplan.db)")
	flag.Float64Var(&cfg.RateLimit, "rate-limit", cfg.RateLimit, "API requests per second (0 disables)")
	flag.IntVar(&cfg.RateBurst, "rate-burst", cfg.RateBurst, "Rate limiter burst size")
	flag.IntVar(&cfg.MaxRequests, "max-requests", cfg.MaxRequests, "Largest request set accepted per call")
	flag.BoolVar(&cfg.MetricsEnabled, "metrics", cfg.MetricsEnabled, "Serve Prometheus metrics on /metrics")
	debug := flag.Bool("debug", false, "Shorthand for --log-level=debug")
	configFile := flag.String("config", "", "Path to YAML server config file")

	flag.Parse()

	if *configFile != "" {
		var err error
		if cfg, err = overlayConfigFile(*configFile, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
	}
	if *debug {
		cfg.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewLogger(logging.ParseLevel(cfg.LogLevel), cfg.LogFormat)

	// Resolve database path.
	dbPath := cfg.DBPath
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "cannot determine home directory: %v\n", err)
			os.Exit(1)
		}
		dir := filepath.Join(home, ".seekplan")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "cannot create %s: %v\n", dir, err)
			os.Exit(1)
		}
		dbPath = filepath.Join(dir, "seekplan.db")
	}

	// Open store and run migrations.
	st, err := store.NewSQLiteStore(dbPath, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open database: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	if err := st.Migrate(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "migrate database: %v\n", err)
		os.Exit(1)
	}
	logger.Info("database ready", "path", dbPath)

	opts := []server.Option{server.WithStore(st)}
	if cfg.MetricsEnabled {
		opts = append(opts, server.WithMetrics(metrics.New()))
	}
	srv := server.New(cfg, logger, opts...)

	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server starting", "addr", cfg.Addr, "rate_limit", cfg.RateLimit, "metrics", cfg.MetricsEnabled)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}

// overlayConfigFile loads path over the defaults, then reapplies any flag
// given explicitly on the command line so flags win over the file.
func overlayConfigFile(path string, fromFlags config.ServerConfig) (config.ServerConfig, error) {
	cfg := config.DefaultServerConfig()
	if err := config.LoadFile(path, &cfg); err != nil {
		return cfg, err
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "addr":
			cfg.Addr = fromFlags.Addr
		case "log-level":
			cfg.LogLevel = fromFlags.LogLevel
		case "log-format":
			cfg.LogFormat = fromFlags.LogFormat
		case "db":
			cfg.DBPath = fromFlags.DBPath
		case "rate-limit":
			cfg.RateLimit = fromFlags.RateLimit
		case "rate-burst":
			cfg.RateBurst = fromFlags.RateBurst
		case "max-requests":
			cfg.MaxRequests = fromFlags.MaxRequests
		case "metrics":
			cfg.MetricsEnabled = fromFlags.MetricsEnabled
		}
	})
	return cfg, nil
}
