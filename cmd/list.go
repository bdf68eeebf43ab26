package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/s0up4200/cinelist/catalog"
)

var (
	searchQuery string
	filterExpr  string
	preset      string
	jsonOutput  bool
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List movies in the collection",
	Long: `List every movie in the collection, optionally narrowed by a search query
(matched against title and genre) and/or a filter expression.

Filter expressions see Title, Genre, Year (as a number), YearText and ID:
  cinelist list --filter 'Year >= 2000 and contains(Genre, "sci")'`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVarP(&searchQuery, "search", "s", "", "only show movies whose title or genre contains this text")
	listCmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "filter expression")
	listCmd.Flags().StringVarP(&preset, "preset", "p", "", "use a preset filter from config")
	listCmd.Flags().BoolVar(&jsonOutput, "json", false, "print movies as JSON")
}

func runList(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	var renderer catalog.Renderer = catalog.NewConsoleFormatter()
	if jsonOutput {
		renderer = catalog.JSONFormatter{}
	}

	expression, err := getFilterExpression()
	if err != nil {
		return err
	}

	if expression == "" {
		c := newCatalog(out, catalog.WithRenderer(renderer), catalog.WithReapplySearch(true))
		c.State().SetQuery(searchQuery)
		return c.LoadAll(cmd.Context())
	}

	logger.Debug().Str("filter", expression).Msg("Filtering movies")

	state, err := preload(cmd.Context(), out, renderer)
	if err != nil {
		return err
	}

	c := newCatalog(io.Discard, catalog.WithState(state))
	matches, err := c.Query(expression)
	if err != nil {
		return fmt.Errorf("invalid filter expression: %w", err)
	}

	return renderer.Render(out, catalog.Filter(matches, searchQuery))
}

// getFilterExpression determines the filter expression to use
func getFilterExpression() (string, error) {
	// Priority: command line filter > preset
	if filterExpr != "" {
		return filterExpr, nil
	}

	if preset != "" {
		return lookupPreset(preset)
	}

	return "", nil
}

func lookupPreset(name string) (string, error) {
	if expression, ok := cfg.Filter.Preset(name); ok {
		return expression, nil
	}
	return "", fmt.Errorf("preset '%s' not found in config", name)
}
