// Command boardwatch follows a boardhook server's event log from the terminal.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/blogem/boardhook/poller"
)

// RootOptions holds global flags for all commands
type RootOptions struct {
	ConfigPath string
	Server     string
	Token      string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCommand().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// NewRootCommand creates the boardwatch root command
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "boardwatch",
		Short: "Follow Trello board changes through a boardhook server",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.ConfigPath == "" {
				path, err := defaultConfigPath()
				if err != nil {
					return fmt.Errorf("failed to locate config: %w", err)
				}
				opts.ConfigPath = path
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "config file (default ~/.config/boardwatch/config.toml)")
	cmd.PersistentFlags().StringVar(&opts.Server, "server", "", "server URL (overrides the saved one)")
	cmd.PersistentFlags().StringVar(&opts.Token, "token", "", "bearer token (overrides the saved one)")

	cmd.AddCommand(NewLoginCommand(opts))
	cmd.AddCommand(NewWatchCommand(opts))
	cmd.AddCommand(NewEventsCommand(opts))

	return cmd
}

// client builds a server client from flags, falling back to the saved config
func (o *RootOptions) client() (*poller.HTTPClient, error) {
	cfg, err := loadConfig(o.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", o.ConfigPath, err)
	}
	server := firstNonEmpty(o.Server, cfg.Server)
	if server == "" {
		return nil, fmt.Errorf("no server configured, run boardwatch login or pass --server")
	}
	return poller.NewHTTPClient(server, firstNonEmpty(o.Token, cfg.Token), nil), nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
