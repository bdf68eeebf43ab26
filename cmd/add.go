package cmd

import (
	"github.com/spf13/cobra"

	"github.com/s0up4200/cinelist/catalog"
)

var draft catalog.Draft

// addCmd represents the add command
var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a movie",
	Long: `Add a movie to the collection. Title and year are required; the year must be
between 1900 and 2025. A missing genre is stored as "Not specified".`,
	Example: `  cinelist add --title "Dune" --genre "Sci-Fi" --year 2021`,
	Args:    cobra.NoArgs,
	RunE:    runAdd,
}

func init() {
	rootCmd.AddCommand(addCmd)

	addCmd.Flags().StringVarP(&draft.Title, "title", "t", "", "movie title")
	addCmd.Flags().StringVarP(&draft.Genre, "genre", "g", "", "movie genre")
	addCmd.Flags().StringVarP(&draft.Year, "year", "y", "", "release year")
}

func runAdd(cmd *cobra.Command, args []string) error {
	d := draft
	return newCatalog(cmd.OutOrStdout()).Add(cmd.Context(), &d)
}
