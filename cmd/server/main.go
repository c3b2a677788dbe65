package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/yourusername/chatbot-tui/internal/config"
	"github.com/yourusername/chatbot-tui/internal/logging"
	"github.com/yourusername/chatbot-tui/internal/server"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.LoadServer()
	if err != nil {
		logging.NewConsoleLogger(os.Stderr, "info").Fatal().Err(err).Msg("Invalid configuration")
	}

	logger := logging.NewConsoleLogger(os.Stderr, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal().Err(err).Msg("Server stopped with error")
	}
}

func run(ctx context.Context, cfg *config.ServerConfig, logger zerolog.Logger) error {
	replier, err := newReplier(ctx, cfg, logger)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           server.NewServer(replier, server.WithLogger(logger)).Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info().Str("addr", cfg.Addr).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "listen and serve")
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info().Msg("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// newReplier picks Gemini when an API key is configured and echo otherwise
func newReplier(ctx context.Context, cfg *config.ServerConfig, logger zerolog.Logger) (server.Replier, error) {
	if cfg.GeminiAPIKey == "" {
		logger.Warn().Msg("GEMINI_API_KEY not set, replies will echo the message")
		return server.EchoReplier{}, nil
	}

	replier, err := server.NewGeminiReplier(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.SystemPrompt)
	if err != nil {
		return nil, err
	}
	logger.Info().Str("model", cfg.GeminiModel).Msg("Using Gemini for replies")
	return replier, nil
}
