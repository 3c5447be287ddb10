package tui

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"divvy/internal/api"
	"divvy/internal/common"
	"divvy/internal/session"
	"divvy/internal/tui/themes"
)

// Config holds everything the TUI needs to run.
type Config struct {
	ServerURL  string
	Theme      string
	ResetToken string
}

// Run starts the TUI and blocks until the user quits.
func Run(ctx context.Context, cfg Config) error {
	if cfg.ServerURL == "" {
		return fmt.Errorf("server URL: %w", common.ErrMissingConfig)
	}
	if u, err := url.Parse(cfg.ServerURL); err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("server URL %q: %w", cfg.ServerURL, common.ErrInvalidConfig)
	}

	// Set up signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	client := api.New(cfg.ServerURL, api.WithHTTPClient(&http.Client{
		Timeout: 30 * time.Second,
	}))
	controller := session.NewController(client)

	m := NewModel(client, controller, themes.GetTheme(cfg.Theme), cfg.ResetToken)
	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	go func() {
		select {
		case <-sigChan:
			program.Quit()
		case <-ctx.Done():
		}
	}()

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}
