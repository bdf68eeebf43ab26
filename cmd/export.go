package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/s0up4200/cinelist/catalog"
	"github.com/s0up4200/cinelist/movieapi"
	"github.com/s0up4200/cinelist/server"
)

var (
	exportFormat string
	exportOutput string
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the collection as JSON or YAML",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

// importCmd represents the import command
var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import movies from a JSON or YAML file",
	Long: `Import movies from a JSON or YAML list. Each entry is validated like 'add';
invalid entries are skipped. The collection is reloaded once at the end.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)

	exportCmd.Flags().StringVar(&exportFormat, "format", "json", "output format (json|yaml)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "write to file instead of stdout")
}

func runExport(cmd *cobra.Command, args []string) error {
	movies, err := client.ListMovies(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to load movies: %w", err)
	}

	var w io.Writer = cmd.OutOrStdout()
	if exportOutput != "" {
		f, err := os.Create(exportOutput)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	if err := writeMovies(w, movies, exportFormat); err != nil {
		return err
	}

	logger.Info().Int("count", len(movies)).Str("format", exportFormat).Msg("Exported movies")
	return nil
}

func writeMovies(w io.Writer, movies []movieapi.Movie, format string) error {
	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(movies)
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(movies); err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported format %q (must be json or yaml)", format)
	}
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	entries, err := server.LoadMovies(args[0])
	if err != nil {
		return err
	}

	var created, skipped, failed int
	for i, entry := range entries {
		input, err := catalog.Draft(entry).Validate()
		if err != nil {
			logger.Warn().Err(err).Int("entry", i+1).Str("title", entry.Title).Msg("Skipping invalid movie")
			skipped++
			continue
		}

		if _, err := client.CreateMovie(ctx, input); err != nil {
			logger.Error().Err(err).Str("title", input.Title).Msg("Error adding movie")
			failed++
			continue
		}
		created++
	}

	logger.Info().
		Int("created", created).
		Int("skipped", skipped).
		Int("failed", failed).
		Msg("Import complete")

	if created > 0 {
		_ = newCatalog(cmd.OutOrStdout()).LoadAll(ctx)
	}

	if failed > 0 {
		return fmt.Errorf("failed to import %d of %d movies", failed, len(entries))
	}
	return nil
}
