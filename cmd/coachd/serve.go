package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/coachd/internal/coaching"
	"github.com/fyrsmithlabs/coachd/internal/config"
	"github.com/fyrsmithlabs/coachd/internal/generator"
	"github.com/fyrsmithlabs/coachd/internal/httpapi"
	"github.com/fyrsmithlabs/coachd/internal/language"
	"github.com/fyrsmithlabs/coachd/internal/logging"
	"github.com/fyrsmithlabs/coachd/internal/store"
)

var configPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the coachd HTTP server",
	Long: `Start the coachd HTTP server.

Configuration is loaded from a YAML file with environment variable
overrides (SERVER_PORT, GENERATOR_API_KEY, ...). The default config
location is ~/.config/coachd/config.yaml.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&configPath, "config", "", "config file path (default ~/.config/coachd/config.yaml)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logging.Sync(logger) //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received signal, shutting down", zap.String("signal", sig.String()))
		cancel()
	}()

	return run(ctx, cfg, logger)
}

// run wires the full pipeline and blocks until ctx is cancelled:
// store, generator, language enforcer, orchestrator, HTTP server.
func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	var st coaching.Store
	if cfg.Firestore.ProjectID != "" {
		fs, err := store.NewFirestoreStore(ctx, store.FirestoreConfig{
			ProjectID:           cfg.Firestore.ProjectID,
			DailyCollection:     cfg.Firestore.DailyCollection,
			SummariesCollection: cfg.Firestore.SummariesCollection,
		}, logger)
		if err != nil {
			return fmt.Errorf("connect firestore: %w", err)
		}
		defer fs.Close()
		st = fs
	} else {
		// Only reachable with the fixture provider; useful for local runs.
		logger.Warn("no firestore project configured, using in-memory store")
		st = store.NewMemoryStore()
	}

	gen, err := generator.New(generator.Config{
		Provider: cfg.Generator.Provider,
		APIKey:   cfg.Generator.APIKey.Value(),
		BaseURL:  cfg.Generator.BaseURL,
		Model:    cfg.Generator.Model,
		Timeout:  cfg.Generator.Timeout.Duration(),
	})
	if err != nil {
		return fmt.Errorf("init generator: %w", err)
	}

	enforcer := language.NewEnforcer(logger)
	if cfg.Coaching.RulesPath != "" {
		if err := enforcer.LoadFile(cfg.Coaching.RulesPath); err != nil {
			return fmt.Errorf("load language rules: %w", err)
		}
		go func() {
			// Watch blocks until ctx is cancelled.
			if err := enforcer.Watch(ctx, cfg.Coaching.RulesPath); err != nil && !errors.Is(err, context.Canceled) {
				logger.Warn("language rules watcher stopped", zap.Error(err))
			}
		}()
	}

	orch := coaching.NewOrchestrator(st, gen, enforcer, logger, coaching.Config{
		MaxAttempts:    cfg.Coaching.MaxAttempts,
		LookbackDays:   cfg.Coaching.LookbackDays,
		AttemptTimeout: cfg.Coaching.AttemptTimeout.Duration(),
		Model: generator.ModelConfig{
			Model:       cfg.Generator.Model,
			MaxTokens:   cfg.Generator.MaxTokens,
			Temperature: cfg.Generator.Temperature,
		},
	})

	srv, err := httpapi.NewServer(orch, logger, &httpapi.Config{
		Host: cfg.Server.Host,
		Port: cfg.Server.Port,
	})
	if err != nil {
		return fmt.Errorf("init http server: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout.Duration())
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	logger.Info("server shutdown complete")
	return nil
}
