package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/cinelist/server"
)

var (
	serveAddr string
	serveDB   string
	serveSeed string
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the movie API backed by SQLite",
	Long: `Run a movie API implementing GET/POST /movies and GET/PUT/DELETE /movies/:id,
storing movies in a SQLite database. A seed file (JSON or YAML) is loaded into an
empty database on start.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides server.addr)")
	serveCmd.Flags().StringVar(&serveDB, "db", "", "database path (overrides server.db_path)")
	serveCmd.Flags().StringVar(&serveSeed, "seed", "", "seed file (overrides server.seed_file)")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if cmd.Flags().Changed("addr") {
		cfg.Server.Addr = serveAddr
	}
	if cmd.Flags().Changed("db") {
		cfg.Server.DBPath = serveDB
	}
	if cmd.Flags().Changed("seed") {
		cfg.Server.SeedFile = serveSeed
	}

	store, err := server.OpenStore(ctx, cfg.Server.DBPath, logger)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer store.Close()

	if cfg.Server.SeedFile != "" {
		if _, err := store.Seed(ctx, cfg.Server.SeedFile); err != nil {
			return fmt.Errorf("failed to seed database: %w", err)
		}
	}

	srv := server.New(store, logger, server.WithRateLimit(cfg.Server.RateLimit, cfg.Server.RateBurst))
	return srv.Run(ctx, cfg.Server.Addr)
}
