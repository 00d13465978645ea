package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/runoshun/rscheck/internal/app"
	"github.com/runoshun/rscheck/internal/domain"
	"github.com/runoshun/rscheck/internal/usecase"
	"github.com/spf13/cobra"
)

// compileCheckName names the check reported by the compile command.
const compileCheckName = "compile"

// newCompileCommand creates the compile command.
func newCompileCommand(c *app.Container) *cobra.Command {
	var opts struct {
		ExeName     string
		Tool        string
		Flags       []string
		Timeout     time.Duration
		MaxLogLines int
	}

	cmd := &cobra.Command{
		Use:   "compile FILE...",
		Short: "Check that the submission compiles",
		Long: `Compile the submission and report whether it built.

With the default tool (cargo) the files only determine the executable name and
"cargo build" runs in the submission directory. Any other tool is invoked as
"<tool> FILE... -o <name> <flags>".

On failure the first and last lines of the compiler output are shown, up to
--max-log-lines in total.

Examples:
  rscheck compile Cargo.toml
  rscheck compile --tool rustc hello.rs
  rscheck compile --tool rustc --flag edition=2021 --flag O hello.rs`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.LoadedConfig()
			if err != nil {
				return err
			}
			flags, err := parseFlagArgs(opts.Flags)
			if err != nil {
				return err
			}

			build := cfg.BuildConfig()
			if opts.Tool != "" {
				build.Tool = opts.Tool
			}
			timeout := opts.Timeout
			if timeout <= 0 {
				timeout = cfg.CompileTimeout()
			}
			maxLines := opts.MaxLogLines
			if maxLines <= 0 {
				maxLines = cfg.Build.MaxLogLines
			}

			checkLog := c.Logger.ForCheck(compileCheckName)
			uc := c.CompileUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.CompileInput{
				Config:      build,
				Files:       args,
				Flags:       flags,
				ExeName:     opts.ExeName,
				Dir:         c.Config.Dir,
				Check:       compileCheckName,
				Timeout:     timeout,
				MaxLogLines: maxLines,
				Log:         checkLog,
			})

			description := "code compiles"
			if err == nil {
				description = fmt.Sprintf("%s compiles", out.ExeName)
			}
			result := domain.NewCheckResult(compileCheckName, description, err, checkLog.Lines())
			return finish(cmd.OutOrStdout(), []domain.CheckResult{result}, false)
		},
	}

	cmd.Flags().StringVar(&opts.ExeName, "exe-name", "", "Executable name (default: derived from FILE or Cargo.toml)")
	cmd.Flags().StringVar(&opts.Tool, "tool", "", "Compiler or build tool (default from config)")
	cmd.Flags().StringArrayVar(&opts.Flags, "flag", nil, "Compiler flag as name or name=value (repeatable)")
	cmd.Flags().DurationVar(&opts.Timeout, "timeout", 0, "Maximum compilation time (default from config)")
	cmd.Flags().IntVar(&opts.MaxLogLines, "max-log-lines", 0, "Compiler output lines shown on failure (default from config)")

	return cmd
}

// parseFlagArgs converts --flag values into Flags. A bare name is a boolean flag.
func parseFlagArgs(values []string) (domain.Flags, error) {
	var flags domain.Flags
	for _, v := range values {
		name, value, hasValue := strings.Cut(v, "=")
		name = strings.TrimLeft(strings.TrimSpace(name), "-")
		if name == "" {
			return nil, fmt.Errorf("invalid --flag %q: missing name", v)
		}
		if hasValue {
			flags = flags.Set(name, value)
		} else {
			flags = flags.Set(name, true)
		}
	}
	return flags, nil
}
