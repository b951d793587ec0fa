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

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/zhouzirui/folio/backend/internal/config"
	"github.com/zhouzirui/folio/backend/internal/handler"
	"github.com/zhouzirui/folio/backend/internal/logging"
	"github.com/zhouzirui/folio/backend/internal/repository"
	"github.com/zhouzirui/folio/backend/internal/service/ai"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		envFile  string
		logLevel string
	)

	cmd := &cobra.Command{
		Use:           "api",
		Short:         "Portfolio backend: AI proxy, contact form and message listing",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return run(ctx, envFile, logLevel)
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading the environment")
	cmd.Flags().StringVar(&logLevel, "log-level", "", "override LOG_LEVEL (debug, info, warn, error)")
	return cmd
}

func run(ctx context.Context, envFile, logLevel string) error {
	boot := logging.New("info", "text")

	// Load .env file
	if err := godotenv.Load(envFile); err != nil {
		boot.Warn().Err(err).Str("path", envFile).Msg("failed to load .env file, continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		boot.Error().Err(err).Msg("failed to load configuration")
		return err
	}

	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	logger := logging.New(cfg.Log.Level, cfg.Log.Format)

	store, err := repository.Open(ctx, cfg.Database.URI)
	if err != nil {
		logger.Error().Err(err).Msg("failed to open message store")
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := store.Close(closeCtx); err != nil {
			logger.Warn().Err(err).Msg("failed to close message store")
		}
	}()
	logger.Info().Msg("message store connected")

	aiService, err := ai.NewService(ctx, cfg.AI)
	if err != nil {
		logger.Error().Err(err).Msg("failed to initialize AI service")
		return err
	}
	logger.Info().Str("model", cfg.AI.Model).Dur("timeout", cfg.AI.Timeout).Msg("AI service initialized")

	router := handler.NewRouter(handler.Deps{
		Logger:         logger,
		Completer:      aiService,
		Store:          store,
		AdminPassword:  cfg.Admin.Password,
		AllowedOrigins: cfg.Server.AllowedOrigins,
	})

	return startServer(ctx, logger, cfg.Server, router)
}

func startServer(ctx context.Context, logger zerolog.Logger, serverCfg config.ServerConfig, router http.Handler) error {
	addr := serverCfg.Addr
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	logger.Info().Str("addr", addr).Msg("server listening")
	if err := runServer(ctx, srv); err != nil {
		logger.Error().Err(err).Msg("server error")
		return fmt.Errorf("serve: %w", err)
	}
	logger.Info().Msg("server stopped")
	return nil
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
