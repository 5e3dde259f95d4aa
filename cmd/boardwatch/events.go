package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/blogem/boardhook/models"
)

// EventsOptions holds flags for the events command
type EventsOptions struct {
	*RootOptions
	Limit int
	JSON  bool
}

// NewEventsCommand creates the events command
func NewEventsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &EventsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "events",
		Short: "Print the retained events once",
		Long: `Print the current version and the retained events, newest first.

Examples:
  boardwatch events --limit 10
  boardwatch events --json`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := opts.client()
			if err != nil {
				return err
			}
			page, err := client.ReadSince(cmd.Context(), 0)
			if err != nil {
				return err
			}
			return printEvents(cmd.OutOrStdout(), page, opts)
		},
	}

	cmd.Flags().IntVar(&opts.Limit, "limit", 20, "maximum number of events to print (0 for all)")
	cmd.Flags().BoolVar(&opts.JSON, "json", false, "print the raw page as JSON")

	return cmd
}

func printEvents(out io.Writer, page models.EventPage, opts *EventsOptions) error {
	events := page.Events
	if opts.Limit > 0 && len(events) > opts.Limit {
		events = events[:opts.Limit]
	}

	if opts.JSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(models.EventPage{Version: page.Version, Events: events})
	}

	fmt.Fprintf(out, "version %d, %d events retained\n", page.Version, len(page.Events))
	for _, event := range events {
		fmt.Fprintf(out, "%s  %-24s %s\n", event.Timestamp, event.MemberCreator, event.Summary())
	}
	return nil
}
