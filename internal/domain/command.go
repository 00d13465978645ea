package domain

import "strings"

// ExecCommand represents an external command to be executed.
// Line is split into arguments without a shell, so quoting is limited to what
// a POSIX-style word splitter understands.
type ExecCommand struct {
	Line string
	Dir  string
}

// NewCommand creates an ExecCommand from a command line and working directory.
func NewCommand(line, dir string) *ExecCommand {
	return &ExecCommand{Line: line, Dir: dir}
}

// Empty reports whether the command has nothing to run.
func (c *ExecCommand) Empty() bool {
	return c == nil || strings.TrimSpace(c.Line) == ""
}

// BuildCommandLine assembles the compiler invocation for the given tool.
//
// For cargo the files and executable name are ignored since Cargo.toml governs
// the build. Otherwise the result is "<tool> <files> -o <exe><flags>", with the
// -o segment omitted when exeName is empty. flags must already be rendered.
func BuildCommandLine(tool string, files []string, exeName, flags string) string {
	if tool == BuildToolCargo {
		return tool + " build" + flags
	}

	var b strings.Builder
	b.WriteString(tool)
	if len(files) > 0 {
		b.WriteString(" ")
		b.WriteString(strings.Join(files, " "))
	}
	if exeName != "" {
		b.WriteString(" -o ")
		b.WriteString(exeName)
	}
	b.WriteString(flags)
	return b.String()
}
