package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/s0up4200/cinelist/catalog"
	"github.com/s0up4200/cinelist/movieapi"
)

const shellHelp = `Commands:
  list              show the movies matching the current search
  search [text]     search title and genre; no text clears the search
  filter <expr>     show movies matching a filter expression or preset name
  add               add a movie
  edit <id>         edit a movie
  delete <id>       delete a movie
  refresh           reload the collection from the API
  help              show this help
  quit              leave the shell
`

// shellCmd represents the shell command
var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start an interactive session",
	Long: `Start an interactive session that keeps the collection in memory. Searching and
filtering work on the loaded list; every change reloads it from the API.`,
	Args: cobra.NoArgs,
	RunE: runShell,
}

func init() {
	rootCmd.AddCommand(shellCmd)
}

// shellCommand is one parsed line of shell input
type shellCommand struct {
	name string
	arg  string
}

// parseShellLine splits a line into a lowercased command name and the raw rest
func parseShellLine(line string) shellCommand {
	line = strings.TrimSpace(line)
	name, arg, _ := strings.Cut(line, " ")
	return shellCommand{
		name: strings.ToLower(name),
		arg:  strings.TrimSpace(arg),
	}
}

func runShell(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	c := newCatalog(out)
	if err := c.LoadAll(ctx); err != nil {
		fmt.Fprintln(out, "Type 'refresh' to try again.")
	}

	interactive := false
	if f, ok := cmd.InOrStdin().(*os.File); ok {
		interactive = isTerminal(f)
	}

	for {
		if interactive {
			fmt.Fprint(out, "cinelist> ")
		}

		line, ok := readLine(ctx, prompter)
		if !ok {
			if interactive && ctx.Err() != nil {
				fmt.Fprintln(out)
			}
			return nil
		}

		sc := parseShellLine(line)
		if sc.name == "" {
			continue
		}

		if sc.name == "quit" || sc.name == "exit" {
			return nil
		}

		if err := dispatchShell(ctx, c, out, sc); err != nil {
			logger.Debug().Err(err).Str("command", sc.name).Msg("Shell command failed")
		}
	}
}

// readLine waits for one line of input or for ctx to end. ok is false in
// both the end-of-input and the cancelled case. After a cancellation the
// pending read is abandoned, so the reader must not be used again.
func readLine(ctx context.Context, r interface{ ReadLine() (string, bool) }) (string, bool) {
	type result struct {
		line string
		ok   bool
	}

	if ctx.Err() != nil {
		return "", false
	}

	lines := make(chan result, 1)
	go func() {
		line, ok := r.ReadLine()
		lines <- result{line: line, ok: ok}
	}()

	select {
	case <-ctx.Done():
		logger.Debug().Msg("Shell interrupted")
		return "", false
	case res := <-lines:
		return res.line, res.ok
	}
}

func dispatchShell(ctx context.Context, c *catalog.Catalog, out io.Writer, sc shellCommand) error {
	switch sc.name {
	case "list", "ls":
		c.Search(c.State().Query())
	case "search":
		c.Search(sc.arg)
	case "filter":
		if sc.arg == "" {
			c.Prompter().Alert("Usage: filter <expression|preset>")
			return nil
		}
		expression := sc.arg
		if preset, ok := cfg.Filter.Preset(sc.arg); ok {
			expression = preset
		}
		_, err := c.Query(expression)
		return err
	case "add":
		return shellAdd(ctx, c)
	case "edit":
		if sc.arg == "" {
			c.Prompter().Alert("Usage: edit <id>")
			return nil
		}
		return c.Edit(ctx, movieapi.ID(sc.arg))
	case "delete", "rm":
		if sc.arg == "" {
			c.Prompter().Alert("Usage: delete <id>")
			return nil
		}
		return c.Delete(ctx, movieapi.ID(sc.arg))
	case "refresh", "reload":
		return c.LoadAll(ctx)
	case "help", "?":
		fmt.Fprint(out, shellHelp)
	default:
		c.Prompter().Alert(fmt.Sprintf("Unknown command %q. Type 'help' for a list of commands.", sc.name))
	}
	return nil
}

// shellAdd prompts for the new movie's fields; cancelling any prompt sends nothing
func shellAdd(ctx context.Context, c *catalog.Catalog) error {
	var d catalog.Draft

	fields := []struct {
		label string
		dst   *string
	}{
		{"Title", &d.Title},
		{"Genre", &d.Genre},
		{"Year", &d.Year},
	}

	for _, field := range fields {
		value, ok := c.Prompter().Prompt(field.label, "")
		if !ok {
			return nil
		}
		*field.dst = value
	}

	return c.Add(ctx, &d)
}
