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

func TestShowConfig_Execute(t *testing.T) {
	t.Run("returns both config infos and effective config", func(t *testing.T) {
		manager := &testutil.MockConfigManager{
			RepoInfo: domain.ConfigInfo{
				Path:    "/work/.rscheck.toml",
				Content: "[build]\ntool = \"rustc\"",
				Exists:  true,
			},
			GlobalInfo: domain.ConfigInfo{
				Path:    "/home/test/.config/rscheck/config.toml",
				Content: "[log]\nlevel = \"debug\"",
				Exists:  true,
			},
		}
		cfg := domain.NewDefaultConfig()
		cfg.Build.Tool = domain.BuildToolRustc
		loader := &testutil.MockConfigLoader{Config: cfg}

		uc := usecase.NewShowConfig(manager, loader)
		out, err := uc.Execute(context.Background(), usecase.ShowConfigInput{})

		require.NoError(t, err)
		assert.Equal(t, "/work/.rscheck.toml", out.RepoConfig.Path)
		assert.True(t, out.RepoConfig.Exists)
		assert.Equal(t, "[log]\nlevel = \"debug\"", out.GlobalConfig.Content)
		assert.Same(t, cfg, out.Effective)
	})

	t.Run("passes ignore options to loader", func(t *testing.T) {
		loader := &testutil.MockConfigLoader{}

		uc := usecase.NewShowConfig(&testutil.MockConfigManager{}, loader)
		_, err := uc.Execute(context.Background(), usecase.ShowConfigInput{IgnoreGlobal: true, IgnoreRepo: true})

		require.NoError(t, err)
		assert.True(t, loader.LastOpts.IgnoreGlobal)
		assert.True(t, loader.LastOpts.IgnoreRepo)
	})

	t.Run("returns loader error", func(t *testing.T) {
		loader := &testutil.MockConfigLoader{LoadErr: errors.New("parse config: bad toml")}

		uc := usecase.NewShowConfig(&testutil.MockConfigManager{}, loader)
		_, err := uc.Execute(context.Background(), usecase.ShowConfigInput{})

		assert.EqualError(t, err, "parse config: bad toml")
	})
}
