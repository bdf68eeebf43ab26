package cmd

import (
	"fmt"
	"runtime"

	"github.com/blang/semver"
	"github.com/creativeprojects/go-selfupdate"
	"github.com/spf13/cobra"
)

var (
	version   = "dev"
	buildTime = "unknown"

	checkOnly bool
)

// SetVersion records the build information injected into main
func SetVersion(v, bt string) {
	version = v
	buildTime = bt
	rootCmd.Version = v
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintf(cmd.OutOrStdout(), "cinelist %s (built %s, %s/%s)\n", version, buildTime, runtime.GOOS, runtime.GOARCH)
		return nil
	},
}

// updateCmd represents the update command
var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update cinelist to the latest release",
	Args:  cobra.NoArgs,
	RunE:  runUpdate,
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(updateCmd)

	updateCmd.Flags().BoolVar(&checkOnly, "check", false, "only check whether an update is available")
}

func runUpdate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	current, err := semver.ParseTolerant(version)
	if err != nil {
		return fmt.Errorf("cannot update a development build (version %q)", version)
	}

	latest, found, err := selfupdate.DetectLatest(ctx, selfupdate.ParseSlug(cfg.Update.Repository))
	if err != nil {
		return fmt.Errorf("error occurred while detecting version: %w", err)
	}
	if !found {
		return fmt.Errorf("latest version for %s/%s could not be found in %s", runtime.GOOS, runtime.GOARCH, cfg.Update.Repository)
	}

	if latest.LessOrEqual(current.String()) {
		fmt.Fprintf(out, "Current version (%s) is the latest\n", current)
		return nil
	}

	if checkOnly {
		fmt.Fprintf(out, "Version %s is available (current %s)\n", latest.Version(), current)
		return nil
	}

	exe, err := selfupdate.ExecutablePath()
	if err != nil {
		return fmt.Errorf("could not locate executable path: %w", err)
	}

	logger.Info().Str("from", current.String()).Str("to", latest.Version()).Msg("Updating")
	if err := selfupdate.UpdateTo(ctx, latest.AssetURL, latest.AssetName, exe); err != nil {
		return fmt.Errorf("error occurred while updating binary: %w", err)
	}

	fmt.Fprintf(out, "Successfully updated to version %s\n", latest.Version())
	return nil
}
