package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/warp/paperwork-calendar/api"
	"github.com/warp/paperwork-calendar/calendar"
	"github.com/warp/paperwork-calendar/config"
	"github.com/warp/paperwork-calendar/logging"
)

type serveFlags struct {
	configPath string
	addr       string
	logLevel   string
	watch      bool
}

func newServeCmd() *cobra.Command {
	var f serveFlags
	cmd := &cobra.Command{
		Use:     "serve",
		Short:   "Run the HTTP API",
		Aliases: []string{"s"},
		Example: "paperwork-calendar serve --config ./server.yaml",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, f)
		},
	}
	cmd.Flags().StringVarP(&f.configPath, "config", "c", "", "path to a YAML or JSON config file (defaults when empty)")
	cmd.Flags().StringVar(&f.addr, "addr", "", "listen address, overrides server.addr")
	cmd.Flags().StringVar(&f.logLevel, "log-level", "", "log level, overrides logging.level")
	cmd.Flags().BoolVar(&f.watch, "watch", true, "reload band tables when the config file changes")
	return cmd
}

func runServe(ctx context.Context, f serveFlags) error {
	manager := config.NewManager(f.configPath)
	cfg, err := manager.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if f.addr != "" {
		cfg.Server.Addr = f.addr
	}
	if f.logLevel != "" {
		cfg.Logging.Level = f.logLevel
	}

	log := logging.New(logging.Options{Level: cfg.Logging.Level, Format: cfg.Logging.Format})
	manager.SetLogger(log.With().Str("component", "config").Logger())

	timeouts, err := cfg.Timeouts()
	if err != nil {
		return err
	}
	bands, err := cfg.BandTables()
	if err != nil {
		return err
	}

	// One holiday cache for the process, shared by handlers and the warmer.
	cache := calendar.NewHolidayCache()

	warmer, err := api.NewHolidayWarmer(cache, cfg.Holidays.WarmYearsAhead, cfg.Holidays.Schedule,
		log.With().Str("component", "holidays").Logger())
	if err != nil {
		return err
	}
	warmer.Start()
	defer func() { <-warmer.Stop().Done() }()

	handler := api.NewHandler(cache, log)
	handler.SetBandTables(bands)

	if f.watch && f.configPath != "" {
		go watchBands(ctx, manager, handler, log)
	}

	router := api.NewRouter(handler, api.RouterOptions{
		CORSOrigins:       cfg.Server.CORSOrigins,
		RequestsPerSecond: cfg.Server.RateLimit.RequestsPerSecond,
		Burst:             cfg.Server.RateLimit.Burst,
	})
	server := api.NewServer(cfg.Server.Addr, router, timeouts.Read, timeouts.Write, timeouts.Idle)

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.Server.Addr).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	log.Info().Msg("server stopped")
	return nil
}

// watchBands swaps the handler's band tables whenever a valid config is
// published. Other sections need a restart.
func watchBands(ctx context.Context, manager *config.Manager, handler *api.Handler, log zerolog.Logger) {
	updates := manager.Subscribe(1)
	defer manager.Unsubscribe(updates)

	go func() {
		if err := manager.Watch(ctx); err != nil {
			log.Error().Err(err).Msg("config watch stopped")
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case cfg := <-updates:
			bands, err := cfg.BandTables()
			if err != nil {
				log.Warn().Err(err).Msg("band tables rejected")
				continue
			}
			handler.SetBandTables(bands)
			log.Info().Msg("band tables reloaded")
		}
	}
}
