package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/erinpentecost/LivelyJigsaw/internal/jigsaw"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)

	cfg, err = Load("")
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jigsaw.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
difficulty: 6
camera:
  ortho_size: 3
vertical_centering: rows
seed: 1234
output:
  texture_format: dds
`), 0666))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 6, cfg.Difficulty)
	require.Equal(t, 3.0, cfg.Camera.OrthoSize)
	require.Equal(t, 1920, cfg.Camera.ScreenWidth)
	require.Equal(t, uint64(1234), cfg.Seed)
	require.Equal(t, "dds", cfg.Output.TextureFormat)
	require.Equal(t, "out", cfg.Output.Dir)

	settings, err := cfg.Settings()
	require.NoError(t, err)
	require.Equal(t, jigsaw.CenterRows, settings.Centering)
	require.Equal(t, 3.0, settings.Viewport.HalfHeight)
	require.InDelta(t, 3*1920.0/1080.0, settings.Viewport.HalfWidth, 1e-9)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jigsaw.yaml")
	want := Default()
	want.Difficulty = 3
	want.ContainerScale = jigsaw.Vec2{X: 0.5, Y: 0.5}
	want.Output.MaxTextureSize = 256

	require.NoError(t, Save(path, want))
	got, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"difficulty", func(c *Config) { c.Difficulty = 1 }, jigsaw.ErrInvalidDifficulty},
		{"ortho size", func(c *Config) { c.Camera.OrthoSize = 0 }, jigsaw.ErrInvalidDimensions},
		{"screen", func(c *Config) { c.Camera.ScreenHeight = -1 }, jigsaw.ErrInvalidDimensions},
		{"scale", func(c *Config) { c.ContainerScale.Y = 0 }, jigsaw.ErrInvalidDimensions},
		{"centering", func(c *Config) { c.VerticalCentering = "middle" }, nil},
		{"format", func(c *Config) { c.Output.TextureFormat = "exr" }, nil},
		{"texture size", func(c *Config) { c.Output.MaxTextureSize = -2 }, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			if tt.want != nil {
				require.ErrorIs(t, err, tt.want)
			}
			_, err = cfg.Settings()
			require.Error(t, err)
		})
	}
	require.NoError(t, Default().Validate())
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jigsaw.yaml")
	require.NoError(t, os.WriteFile(path, []byte("difficulty: [1, 2"), 0666))
	_, err := Load(path)
	require.Error(t, err)

	require.NoError(t, os.WriteFile(path, []byte("difficulty: 12\n"), 0666))
	_, err = Load(path)
	require.ErrorIs(t, err, jigsaw.ErrInvalidDifficulty)
}

func TestReadSkipsValidation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jigsaw.yaml")
	require.NoError(t, os.WriteFile(path, []byte("difficulty: 9\n"), 0666))

	cfg, err := Read(path)
	require.NoError(t, err)
	require.Equal(t, 9, cfg.Difficulty)
	require.ErrorIs(t, cfg.Validate(), jigsaw.ErrInvalidDifficulty)

	cfg.Difficulty = 4
	require.NoError(t, cfg.Validate())
}
