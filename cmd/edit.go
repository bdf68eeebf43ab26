package cmd

import (
	"github.com/spf13/cobra"

	"github.com/s0up4200/cinelist/catalog"
	"github.com/s0up4200/cinelist/movieapi"
)

var editFields catalog.Draft

// editCmd represents the edit command
var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a movie",
	Long: `Edit a movie by ID. With --title, --genre or --year only those fields change.
Without flags you are prompted for each field, pre-filled with the current value:
press enter to keep it, type :clear to empty it or :cancel to abort the edit.`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func init() {
	rootCmd.AddCommand(editCmd)

	editCmd.Flags().StringVarP(&editFields.Title, "title", "t", "", "new title")
	editCmd.Flags().StringVarP(&editFields.Genre, "genre", "g", "", "new genre")
	editCmd.Flags().StringVarP(&editFields.Year, "year", "y", "", "new release year")
}

func runEdit(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	id := movieapi.ID(args[0])

	renderer := catalog.NewConsoleFormatter()
	state, err := preload(ctx, out, renderer)
	if err != nil {
		return err
	}

	c := newCatalog(out, catalog.WithState(state), catalog.WithRenderer(renderer))

	flags := cmd.Flags()
	if !flags.Changed("title") && !flags.Changed("genre") && !flags.Changed("year") {
		return c.Edit(ctx, id)
	}

	session, err := c.BeginEdit(id)
	if err != nil {
		return err
	}

	if flags.Changed("title") {
		session.SetTitle(editFields.Title)
	}
	if flags.Changed("genre") {
		session.SetGenre(editFields.Genre)
	}
	if flags.Changed("year") {
		session.SetYear(editFields.Year)
	}

	if !session.Changed() {
		logger.Info().Str("id", id.String()).Msg("Nothing to update")
		session.Cancel()
		return nil
	}

	return session.Submit(ctx)
}
