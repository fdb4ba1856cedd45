package cmd

import (
	"context"
	"fmt"
	"runtime"

	"github.com/creativeprojects/go-selfupdate"
	"github.com/spf13/cobra"
)

// githubRepoSlug is the repository releases are published to.
const githubRepoSlug = "podshell/podshell"

func newSelfUpdateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "self-update",
		Short: "Update podshell to the latest version",
		Long: `Checks for the latest release of podshell on GitHub and
replaces the running binary with it when a newer version is available.`,
		Args: cobra.NoArgs,
		RunE: runSelfUpdate,
	}
}

func runSelfUpdate(cmd *cobra.Command, args []string) error {
	current := rootCmd.Version
	if current == "" || current == "dev" {
		return fmt.Errorf("cannot self-update a development version (%q)", current)
	}

	ctx := context.Background()
	out := fmt.Printf
	if cmd != nil {
		if c := cmd.Context(); c != nil {
			ctx = c
		}
		w := cmd.OutOrStdout()
		out = func(format string, a ...any) (int, error) { return fmt.Fprintf(w, format, a...) }
	}

	out("Current version: %s\n", current)
	out("Checking for updates in %s...\n", githubRepoSlug)

	latest, found, err := selfupdate.DetectLatest(ctx, selfupdate.ParseSlug(githubRepoSlug))
	if err != nil {
		return fmt.Errorf("error detecting latest version: %w", err)
	}
	if !found {
		return fmt.Errorf("no release found for %s/%s", runtime.GOOS, runtime.GOARCH)
	}
	if latest.LessOrEqual(current) {
		out("Current version %s is the latest.\n", current)
		return nil
	}

	exe, err := selfupdate.ExecutablePath()
	if err != nil {
		return fmt.Errorf("could not locate executable path: %w", err)
	}

	out("Updating to %s...\n", latest.Version())
	if err := selfupdate.UpdateTo(ctx, latest.AssetURL, latest.AssetName, exe); err != nil {
		return fmt.Errorf("error updating binary: %w", err)
	}
	out("Successfully updated to version %s\n", latest.Version())
	return nil
}
