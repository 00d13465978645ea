package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/runoshun/rscheck/internal/domain"
	"github.com/runoshun/rscheck/internal/testutil"
	"github.com/runoshun/rscheck/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShowConfigTemplate_Execute(t *testing.T) {
	custom := domain.NewDefaultConfig()
	custom.Build.MaxLogLines = 20
	custom.RunAndWait.FailureMessage = `said "bye" too early`

	t.Run("defaults ignore config files", func(t *testing.T) {
		loader := &testutil.MockConfigLoader{LoadErr: errors.New("broken toml")}

		uc := usecase.NewShowConfigTemplate(loader)
		out, err := uc.Execute(context.Background(), usecase.ShowConfigTemplateInput{})

		require.NoError(t, err)
		assert.False(t, out.Current)
		assert.Equal(t, domain.RenderConfigTemplate(domain.NewDefaultConfig()), out.Template)
		assert.Contains(t, out.Template, "[run_and_wait]")
	})

	t.Run("current renders effective values", func(t *testing.T) {
		loader := &testutil.MockConfigLoader{Config: custom}

		uc := usecase.NewShowConfigTemplate(loader)
		out, err := uc.Execute(context.Background(), usecase.ShowConfigTemplateInput{Current: true})

		require.NoError(t, err)
		assert.True(t, out.Current)
		assert.Contains(t, out.Template, "max_log_lines = 20")
		assert.Contains(t, out.Template, `said \"bye\" too early`)
	})

	t.Run("current with broken config", func(t *testing.T) {
		loader := &testutil.MockConfigLoader{LoadErr: errors.New("broken toml")}

		uc := usecase.NewShowConfigTemplate(loader)
		_, err := uc.Execute(context.Background(), usecase.ShowConfigTemplateInput{Current: true})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "broken toml")
	})
}
