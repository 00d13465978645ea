package cli

import (
	"github.com/runoshun/rscheck/internal/app"
	"github.com/runoshun/rscheck/internal/usecase"
	"github.com/spf13/cobra"
)

// newCheckCommand creates the check command.
func newCheckCommand(c *app.Container) *cobra.Command {
	var opts struct {
		GitURL string
		GitRef string
		JSON   bool
	}

	cmd := &cobra.Command{
		Use:   "check SUITE",
		Short: "Run a suite of checks",
		Long: `Run every check of a YAML suite file in order.

A check that depends on checks which did not pass is skipped.

Suite format:
  checks:
    - name: compiles
      description: guessing_game compiles
      compile:
        files: [Cargo.toml]
    - name: waits
      depends: [compiles]
      run_and_wait:
        command: ./target/debug/guessing_game
        timeout: 2s

With --git the submission is cloned into a temporary directory first and the
checks run there instead of the submission directory.

Examples:
  rscheck check suite.yaml
  rscheck check suite.yaml --json
  rscheck check suite.yaml --git https://example.com/student/guess.git --ref main`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.LoadedConfig()
			if err != nil {
				return err
			}

			uc := c.RunSuiteUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.RunSuiteInput{
				Config:    cfg,
				SuitePath: args[0],
				Dir:       c.Config.Dir,
				GitURL:    opts.GitURL,
				GitRef:    opts.GitRef,
			})
			if err != nil {
				return err
			}

			return finish(cmd.OutOrStdout(), out.Results, opts.JSON)
		},
	}

	cmd.Flags().StringVar(&opts.GitURL, "git", "", "Clone the submission from this repository")
	cmd.Flags().StringVar(&opts.GitRef, "ref", "", "Branch or tag to check out with --git")
	cmd.Flags().BoolVar(&opts.JSON, "json", false, "Write results as JSON")

	return cmd
}
