package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/cinelist/catalog"
	"github.com/s0up4200/cinelist/config"
	"github.com/s0up4200/cinelist/movieapi"
)

var (
	cfgFile  string
	apiURL   string
	cfg      *config.Config
	logger   zerolog.Logger
	client   *movieapi.Client
	prompter *catalog.TerminalPrompter
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "cinelist",
	Short: "Manage a movie collection served by a REST API",
	Long: `cinelist lists, searches, adds, edits and deletes movies in a collection
served over a small REST API. It can also run that API itself, backed by SQLite.`,
	PersistentPreRunE: initializeApp,
	SilenceUsage:      true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&apiURL, "url", "", "movie API base URL (overrides api.url)")

	rootCmd.AddCommand(testCmd)
}

// initializeApp initializes the configuration and clients
func initializeApp(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger = setupLogger(cfg.Logging, os.Stderr)

	if cmd.Flags().Changed("url") {
		cfg.API.URL = apiURL
	}

	opts := []movieapi.Option{
		movieapi.WithTimeout(cfg.API.Timeout),
		movieapi.WithUserAgent(cfg.API.UserAgent),
	}
	if cfg.API.Tracing {
		opts = append(opts, movieapi.WithTracing())
	}

	client, err = movieapi.NewClient(cfg.API.URL, logger, opts...)
	if err != nil {
		return fmt.Errorf("failed to create movie API client: %w", err)
	}

	prompter = catalog.NewTerminalPrompter(cmd.InOrStdin(), cmd.OutOrStdout())

	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig, out *os.File) zerolog.Logger {
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	if cfg.Format == "json" {
		return zerolog.New(out).With().Timestamp().Logger()
	}

	output := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !isTerminal(out),
	}

	return zerolog.New(output).With().Timestamp().Logger()
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// newCatalog builds a catalog over the configured client writing to w
func newCatalog(w io.Writer, opts ...catalog.Option) *catalog.Catalog {
	base := []catalog.Option{
		catalog.WithOutput(w),
		catalog.WithPrompter(prompter),
		catalog.WithReapplySearch(cfg.UI.ReapplySearch),
	}
	return catalog.New(client, logger, append(base, opts...)...)
}

// preload fetches the collection without drawing it. On failure the error
// placeholder is written to w.
func preload(ctx context.Context, w io.Writer, renderer catalog.Renderer) (*catalog.State, error) {
	movies, err := client.ListMovies(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Error fetching movies")
		_ = renderer.RenderError(w, catalog.ErrorPlaceholder)
		return nil, fmt.Errorf("failed to load movies: %w", err)
	}
	return catalog.NewStateWith(movies), nil
}

// testCmd represents the test command
var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Test connection to the movie API",
	Long:  `Test the connection to the movie API and display basic information.`,
	RunE:  runTest,
}

func runTest(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Testing connection to movie API at %s...\n", client.BaseURL())

	ctx := cmd.Context()
	movies, err := client.ListMovies(ctx)
	if err != nil {
		return fmt.Errorf("connection failed: %w", err)
	}

	fmt.Fprintln(out, "✓ Connection successful!")

	genres := make(map[string]int)
	for _, m := range movies {
		genres[m.Genre]++
	}

	fmt.Fprintf(out, "\nCollection Statistics:\n")
	fmt.Fprintf(out, "- Total movies: %d\n", len(movies))
	fmt.Fprintf(out, "- Distinct genres: %d\n", len(genres))

	return nil
}
