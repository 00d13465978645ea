// Package cli provides the command-line interface for rscheck.
package cli

import (
	"errors"
	"fmt"

	"github.com/runoshun/rscheck/internal/app"
	"github.com/spf13/cobra"
)

// ErrChecksFailed is returned when a command ran to completion but at least one
// check did not pass. The report has already been printed.
var ErrChecksFailed = errors.New("one or more checks did not pass")

// Command group IDs.
const (
	groupCheck = "check"
	groupSetup = "setup"
)

// NewRootCommand creates the root command for rscheck.
// It receives the container for dependency injection and version for display.
func NewRootCommand(c *app.Container, version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "rscheck",
		Short: "Build-and-run checks for Rust submissions",
		Long: `rscheck compiles student Rust programs and checks how they behave when run.

Checks report :) when they pass, :( when they fail and :| when they were
skipped or could not be run. The exit status is 1 unless every check passed.

Configuration is read from ~/.config/rscheck/config.toml and from
.rscheck.toml in the submission directory (see "rscheck config").`,
		Version: version,
		// SilenceUsage prevents usage from being printed on errors
		SilenceUsage: true,
		// SilenceErrors prevents Cobra from printing errors (we handle it in main)
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip if container is nil (e.g. in tests)
			if c == nil || c.AppConfig == nil {
				return nil
			}

			for _, w := range c.AppConfig.Warnings {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", w)
			}
			return nil
		},
	}

	// The value is read by main before the container is built.
	root.PersistentFlags().StringP("dir", "C", "", "Submission directory (default: current directory)")

	root.AddGroup(
		&cobra.Group{ID: groupCheck, Title: "Check Commands:"},
		&cobra.Group{ID: groupSetup, Title: "Setup Commands:"},
	)

	compileCmd := newCompileCommand(c)
	compileCmd.GroupID = groupCheck

	runWaitCmd := newRunWaitCommand(c)
	runWaitCmd.GroupID = groupCheck

	checkCmd := newCheckCommand(c)
	checkCmd.GroupID = groupCheck

	configCmd := newConfigCommand(c)
	configCmd.GroupID = groupSetup

	root.AddCommand(
		compileCmd,
		runWaitCmd,
		checkCmd,
		configCmd,
	)

	return root
}
