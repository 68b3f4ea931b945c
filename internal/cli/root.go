// internal/cli/root.go
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/law-makers/websearch/internal/app"
	"github.com/law-makers/websearch/internal/config"
	"github.com/law-makers/websearch/internal/ui"
	"github.com/law-makers/websearch/internal/utils/headers"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "websearch",
	Short: "Query web search engines from the command line",
	Long: `Websearch fetches one page of results from Google, Bing or DuckDuckGo and
prints them as title, URL and snippet.

Google is queried through its web page first and falls back to the Google News
feed when the page is blocked or empty.`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ExecuteContext(context.Background())
}

// ExecuteContext runs the root command with ctx; cancelling ctx aborts in-flight searches.
func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", ui.Error("Error:"), err)
		os.Exit(1)
	}
}

func init() {
	// Lazily initialize the application before running commands (avoid starting app for -h/help)
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if GetAppFromCmd(cmd) != nil {
			return nil
		}

		cfg, err := config.Load(cmd)
		if err != nil {
			return err
		}

		var opts []app.Option
		if f := cmd.Flags().Lookup("header"); f != nil {
			values, _ := cmd.Flags().GetStringArray("header")
			if h := headers.ParseHeaders(values); len(h) > 0 {
				opts = append(opts, app.WithHeaders(h))
			}
		}

		appCtx, err := app.New(cmd.Context(), cfg, opts...)
		if err != nil {
			return err
		}

		SetApp(cmd, appCtx)
		log.Debug().Str("command", cmd.Name()).Msg("Configuration loaded")
		return nil
	}

	// Ensure app is closed after command runs
	rootCmd.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		appCtx := GetAppFromCmd(cmd)
		if appCtx == nil {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), appCtx.Config.HTTPTimeout)
		defer cancel()
		_ = appCtx.Close(ctx)
		SetApp(cmd, nil)
	}
}

func init() {
	// Register centralized flags
	config.RegisterFlags(rootCmd)

	// Customize help and version flag descriptions
	rootCmd.Flags().BoolP("help", "h", false, "Help for Websearch")
	rootCmd.Flags().Bool("version", false, "Version for Websearch")
}

// jsonOutput reports whether --json was given
func jsonOutput(cmd *cobra.Command) bool {
	v, err := cmd.Flags().GetBool("json")
	return err == nil && v
}

// quietOutput reports whether --quiet was given
func quietOutput(cmd *cobra.Command) bool {
	v, err := cmd.Flags().GetBool("quiet")
	return err == nil && v
}

func init() {
	// Disable the default completion command
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.SetHelpFunc(renderHelp)
	rootCmd.SetUsageFunc(renderUsage)
}
