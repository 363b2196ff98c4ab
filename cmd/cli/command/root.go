package command

// root.go defines the root command, the global flags and the helpers the
// subcommands share for building API clients.

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"mangafandb/cmd/cli/authentication"
	"mangafandb/cmd/cli/command/client"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	apiURL         string // API server URL
	spoilerChapter int    // per-command spoiler override, -1 when unset
	noColor        bool
)

var rootCmd = &cobra.Command{
	Use:   "mangafandb",
	Short: "mangafandb - terminal client for the manga fan database",
	Long: `mangafandb talks to the fan database API. It can:
- browse events and the arc timeline without spoiling chapters you have not read
- check whether chapter spoilers are safe to open
- record your reading progress and spoiler override
- review the moderation queue (moderators and admins)

Use "mangafandb <command> -h" to see the flags of a command.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if noColor {
			color.NoColor = true
		}
	},
}

// Execute runs the root command. It is called once by main.main.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		color.New(color.FgRed).Fprintln(os.Stderr, "✗", err)
		os.Exit(1)
	}
}

func init() {
	defaultAPI := os.Getenv("MANGAFANDB_API")
	if defaultAPI == "" {
		defaultAPI = "http://localhost:8080"
	}
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", defaultAPI, "API server URL (env MANGAFANDB_API)")
	rootCmd.PersistentFlags().IntVar(&spoilerChapter, "spoiler-chapter", -1, "treat yourself as having read up to this chapter for one command")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
}

func spoilerOverride() *int {
	if spoilerChapter < 0 {
		return nil
	}
	v := spoilerChapter
	return &v
}

// authenticatedClient returns a client carrying the stored access token,
// refreshing it first when it has expired.
func authenticatedClient(ctx context.Context) (*client.HTTPClient, error) {
	creds, err := authentication.GetTokens()
	if err != nil {
		return nil, err
	}
	c := client.NewHTTPClient(apiURL)
	if creds.Expired(time.Now()) {
		resp, err := c.Refresh(ctx, creds.RefreshToken)
		if err != nil {
			if client.IsUnauthorized(err) {
				_ = authentication.DeleteTokens()
				return nil, authentication.ErrNotLoggedIn
			}
			return nil, fmt.Errorf("refresh session: %w", err)
		}
		creds.AccessToken = resp.AccessToken
		creds.RefreshToken = resp.RefreshToken
		creds.ExpiresAt = time.Now().Add(time.Duration(resp.ExpiresIn) * time.Second).Unix()
		if err := authentication.StoreTokens(creds); err != nil {
			return nil, fmt.Errorf("save refreshed tokens: %w", err)
		}
	}
	c.SetToken(creds.AccessToken)
	return c, nil
}

// optionalClient is authenticated when credentials are stored and anonymous
// otherwise, so reads use the caller's reading progress when there is one.
func optionalClient(ctx context.Context) *client.HTTPClient {
	c, err := authenticatedClient(ctx)
	if err != nil {
		return client.NewHTTPClient(apiURL)
	}
	return c
}

var (
	okColor    = color.New(color.FgGreen)
	warnColor  = color.New(color.FgYellow)
	dimColor   = color.New(color.FgHiBlack)
	titleColor = color.New(color.FgCyan, color.Bold)
)
