package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/cinelist/movieapi"
)

var noConfirm bool

// deleteCmd represents the delete command
var deleteCmd = &cobra.Command{
	Use:   "delete <id>...",
	Short: "Delete movies by ID",
	Long: `Delete one or more movies by ID. You are asked to confirm unless --no-confirm
is given or ui.confirm_delete is disabled. Several IDs are deleted concurrently.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDelete,
}

func init() {
	rootCmd.AddCommand(deleteCmd)

	deleteCmd.Flags().BoolVar(&noConfirm, "no-confirm", false, "skip confirmation prompt")
}

func runDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	prompter.AssumeYes = noConfirm || !cfg.UI.ConfirmDelete
	c := newCatalog(cmd.OutOrStdout())

	if len(args) == 1 {
		return c.Delete(ctx, movieapi.ID(args[0]))
	}

	if !prompter.Confirm(fmt.Sprintf("Are you sure you want to delete these %d movies?", len(args))) {
		logger.Info().Msg("Deletion cancelled by user")
		return nil
	}

	ids := make([]movieapi.ID, 0, len(args))
	for _, arg := range args {
		ids = append(ids, movieapi.ID(arg))
	}

	result := c.RemoveMany(ctx, ids)
	if len(result.Failed) > 0 {
		return fmt.Errorf("failed to delete %d of %d movies", len(result.Failed), result.Requested)
	}

	return nil
}
