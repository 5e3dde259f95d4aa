package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/spf13/cobra"

	"github.com/blogem/boardhook/models"
	"github.com/blogem/boardhook/poller"
)

// WatchOptions holds flags for the watch command
type WatchOptions struct {
	*RootOptions
	Interval time.Duration
	Jitter   float64
	Timeout  time.Duration
	BoardID  string
}

// NewWatchCommand creates the watch command
func NewWatchCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &WatchOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Poll the event log and print new board events",
		Long: `Poll the server's event log and print a notification for new events.

The first poll only records the current version; events that happened
before watch started are not shown. With --board the board's lists are
re-fetched after every change.

Examples:
  boardwatch watch
  boardwatch watch --board 5f1a2b3c --interval 5s`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := opts.client()
			if err != nil {
				return err
			}
			err = runWatch(cmd.Context(), cmd.OutOrStdout(), client, opts)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}

	cmd.Flags().DurationVar(&opts.Interval, "interval", poller.DefaultInterval, "poll interval")
	cmd.Flags().Float64Var(&opts.Jitter, "jitter", 0.1, "poll interval jitter ratio (0.0-1.0)")
	cmd.Flags().DurationVar(&opts.Timeout, "timeout", poller.DefaultTimeout, "per-poll timeout")
	cmd.Flags().StringVar(&opts.BoardID, "board", "", "board to re-fetch on change")

	return cmd
}

// boardClient is the part of the server client watch needs
type boardClient interface {
	poller.Source
	Board(ctx context.Context, boardID string) (json.RawMessage, error)
}

func runWatch(ctx context.Context, out io.Writer, client boardClient, opts *WatchOptions) error {
	p := poller.New(client, poller.Options{
		Interval: opts.Interval,
		Jitter:   opts.Jitter,
		Timeout:  opts.Timeout,
		Notify: func(event models.Event) {
			fmt.Fprintf(out, "🔔 %s\n", event.Summary())
		},
		OnChange: func(ctx context.Context, update poller.Update) {
			fmt.Fprintf(out, "version %d\n", update.Version)
			if opts.BoardID == "" {
				return
			}
			lists, err := client.Board(ctx, opts.BoardID)
			if err != nil {
				log.Printf("failed to refresh board %s: %v", opts.BoardID, err)
				return
			}
			fmt.Fprintf(out, "board %s: %s\n", opts.BoardID, summarizeLists(lists))
		},
	})

	fmt.Fprintf(out, "Watching for board events every %s (Ctrl+C to stop)\n", opts.Interval)
	return p.Run(ctx)
}

// summarizeLists renders "List A (3), List B (0)" from a lists-with-cards payload
func summarizeLists(raw json.RawMessage) string {
	var lists []struct {
		Name  string            `json:"name"`
		Cards []json.RawMessage `json:"cards"`
	}
	if err := json.Unmarshal(raw, &lists); err != nil {
		return fmt.Sprintf("%d bytes", len(raw))
	}
	summary := ""
	for i, list := range lists {
		if i > 0 {
			summary += ", "
		}
		summary += fmt.Sprintf("%s (%d)", list.Name, len(list.Cards))
	}
	return summary
}
