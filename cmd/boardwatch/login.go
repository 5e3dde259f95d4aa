package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/blogem/boardhook/poller"
)

// LoginOptions holds flags for the login command
type LoginOptions struct {
	*RootOptions
	Email string
}

// NewLoginCommand creates the login command
func NewLoginCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &LoginOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and save the bearer token",
		Long: `Sign in to a boardhook server with email and password and save the
returned token to the config file.

Examples:
  boardwatch login --server https://boards.example.com --email me@example.com`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogin(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Email, "email", "", "account email")

	return cmd
}

func runLogin(cmd *cobra.Command, opts *LoginOptions) error {
	cfg, err := loadConfig(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("failed to read config %s: %w", opts.ConfigPath, err)
	}

	server := firstNonEmpty(opts.Server, cfg.Server)
	if server == "" {
		return errors.New("--server is required on first login")
	}

	reader := bufio.NewReader(cmd.InOrStdin())
	email := firstNonEmpty(opts.Email, cfg.Email)
	if email == "" {
		fmt.Fprint(cmd.OutOrStdout(), "Email: ")
		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		email = strings.TrimSpace(line)
	}

	password, err := readPassword(cmd, reader)
	if err != nil {
		return err
	}

	client := poller.NewHTTPClient(server, "", nil)
	result, err := client.Login(cmd.Context(), email, password)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	cfg.Server = server
	cfg.Email = email
	cfg.Token = result.Token
	if err := saveConfig(opts.ConfigPath, cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s (token saved to %s)\n", result.User.Name, opts.ConfigPath)
	return nil
}

// readPassword reads without echo from a terminal, or a plain line from a pipe
func readPassword(cmd *cobra.Command, reader *bufio.Reader) (string, error) {
	fmt.Fprint(cmd.OutOrStdout(), "Password: ")
	if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		secret, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(cmd.OutOrStdout())
		if err != nil {
			return "", err
		}
		return string(secret), nil
	}
	line, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
