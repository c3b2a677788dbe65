package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/yourusername/chatbot-tui/internal/client/connection"
	"github.com/yourusername/chatbot-tui/internal/client/conversation"
	"github.com/yourusername/chatbot-tui/internal/client/dispatch"
	"github.com/yourusername/chatbot-tui/internal/client/ui"
	"github.com/yourusername/chatbot-tui/internal/config"
	"github.com/yourusername/chatbot-tui/internal/logging"
)

func main() {
	cfg := config.LoadClient()
	root := newRootCmd(cfg)
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(cfg *config.ClientConfig) *cobra.Command {
	var markdown, hideBanner bool

	root := &cobra.Command{
		Use:          "chatbot",
		Short:        "Terminal chat client for a remote chatbot endpoint",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if markdown {
				cfg.Markdown = true
			}
			if hideBanner {
				cfg.ShowBanner = false
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cfg)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&cfg.Endpoint, "endpoint", cfg.Endpoint, "Chat endpoint URL")
	flags.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "Per-request timeout (0 = none)")
	flags.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "File to write logs to")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (trace, debug, info, warn, error)")
	flags.BoolVar(&markdown, "markdown", false, "Render bot replies as markdown")
	flags.BoolVar(&hideBanner, "hide-banner", false, "Start with the cold-start banner dismissed")

	root.AddCommand(newSendCmd(cfg))
	return root
}

// newSendCmd sends a single message without the TUI and prints the reply
func newSendCmd(cfg *config.ClientConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "send [message...]",
		Short: "Send one message and print the reply",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, closer, err := logging.NewFileLogger(cfg.LogFile, cfg.LogLevel)
			if err != nil {
				return err
			}
			defer closer.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			d, err := newDispatcher(cfg, logger)
			if err != nil {
				return err
			}

			store := d.Store()
			store.SetDraft(strings.Join(args, " "))
			outcome, ok := d.SubmitAndWait(ctx)
			if !ok {
				return errors.New("message is empty")
			}

			last, _ := store.Last()
			fmt.Fprintln(cmd.OutOrStdout(), last.Content)
			if _, failed := outcome.(dispatch.Failed); failed {
				return errors.Errorf("could not reach %s", cfg.Endpoint)
			}
			return nil
		},
	}
}

// runTUI runs the full-screen chat interface
func runTUI(cfg *config.ClientConfig) error {
	logger, closer, err := logging.NewFileLogger(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer closer.Close()

	model, err := newChatModel(cfg, logger)
	if err != nil {
		return err
	}

	logger.Info().Str("endpoint", cfg.Endpoint).Msg("Chat client started")
	start := time.Now()

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	final, err := p.Run()
	if m, ok := final.(ui.Model); ok {
		m.Shutdown()
	}

	logger.Info().Dur("session", time.Since(start)).Msg("Chat client stopped")
	return err
}

// newChatModel builds the chat view for cfg
func newChatModel(cfg *config.ClientConfig, logger zerolog.Logger) (ui.Model, error) {
	d, err := newDispatcher(cfg, logger)
	if err != nil {
		return ui.Model{}, err
	}
	if !cfg.ShowBanner {
		d.Store().DismissBanner()
	}

	return ui.NewModel(d, ui.Options{
		Endpoint: cfg.Endpoint,
		Markdown: cfg.Markdown,
		Logger:   logger,
	}), nil
}

// newDispatcher wires a fresh conversation to the HTTP client
func newDispatcher(cfg *config.ClientConfig, logger zerolog.Logger) (*dispatch.Dispatcher, error) {
	sessionID := uuid.NewString()
	logger = logger.With().Str("session_id", sessionID).Logger()

	client, err := connection.NewClient(cfg.Endpoint,
		connection.WithTimeout(cfg.Timeout),
		connection.WithSessionID(sessionID),
		connection.WithLogger(logger),
	)
	if err != nil {
		return nil, errors.Wrap(err, "create chat client")
	}

	return dispatch.New(conversation.NewStore(), client, dispatch.WithLogger(logger)), nil
}
