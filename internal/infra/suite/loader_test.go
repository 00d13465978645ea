package suite

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/runoshun/rscheck/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const helloSuite = `
checks:
  - name: compiles
    description: hello.rs compiles
    compile:
      files: [hello.rs]
      tool: rustc
      max_log_lines: 20
      timeout: 90
      flags:
        O: true
        edition: "2021"
        C_debuginfo: 0
  - name: waits
    description: hello waits for a name
    depends: [compiles]
    run_and_wait:
      command: ./hello
      timeout: 1500ms
      log_message: checking that hello waits...
      failure_message: hello exited before reading input
`

func TestParse(t *testing.T) {
	s, err := Parse([]byte(helloSuite))
	require.NoError(t, err)
	require.Len(t, s.Checks, 2)

	compile := s.Checks[0]
	assert.Equal(t, "compiles", compile.Name)
	assert.Equal(t, "hello.rs compiles", compile.Description)
	assert.Nil(t, compile.RunAndWait)
	require.NotNil(t, compile.Compile)
	assert.Equal(t, []string{"hello.rs"}, compile.Compile.Files)
	assert.Equal(t, "rustc", compile.Compile.Tool)
	assert.Equal(t, 20, compile.Compile.MaxLogLines)
	assert.Equal(t, 90*time.Second, compile.Compile.Timeout)
	assert.Equal(t, domain.Flags{
		{Name: "O", Value: true},
		{Name: "edition", Value: "2021"},
		{Name: "C_debuginfo", Value: 0},
	}, compile.Compile.Flags)

	waits := s.Checks[1]
	assert.Equal(t, []string{"compiles"}, waits.Depends)
	require.NotNil(t, waits.RunAndWait)
	assert.Equal(t, "./hello", waits.RunAndWait.Command)
	assert.Equal(t, 1500*time.Millisecond, waits.RunAndWait.Timeout)
	assert.Equal(t, "checking that hello waits...", waits.RunAndWait.LogMessage)
	assert.Equal(t, "hello exited before reading input", waits.RunAndWait.FailureMessage)

	assert.NoError(t, s.Validate())
}

func TestParse_FlagOrderFollowsDocument(t *testing.T) {
	s, err := Parse([]byte(`
checks:
  - name: c
    compile:
      files: [main.rs]
      flags:
        z: true
        a: true
        m: "x"
`))
	require.NoError(t, err)
	assert.Equal(t, " -z -a -m=x", s.Checks[0].Compile.Flags.Render())
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "malformed yaml",
			content: "checks: [",
		},
		{
			name: "flags not a mapping",
			content: `
checks:
  - name: c
    compile:
      files: [main.rs]
      flags: [O]
`,
		},
		{
			name: "invalid timeout",
			content: `
checks:
  - name: w
    run_and_wait:
      command: ./main
      timeout: soon
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.content))
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidSuite)
			assert.True(t, domain.IsConfigurationError(err))
		})
	}
}

func TestLoader_Load(t *testing.T) {
	path := filepath.Join(t.TempDir(), "checks.yaml")
	require.NoError(t, os.WriteFile(path, []byte(helloSuite), 0o644))

	s, err := NewLoader().Load(path)
	require.NoError(t, err)
	assert.Len(t, s.Checks, 2)
}

func TestLoader_Load_MissingFile(t *testing.T) {
	_, err := NewLoader().Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
