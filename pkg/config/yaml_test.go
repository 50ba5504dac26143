package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/ustree/pkg/config"
)

func TestNewConfig_Defaults(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	assert.Equal(t, config.FlavorCommonMark, cfg.Flavor)
	assert.Equal(t, config.FormatJSON, cfg.Format)
	assert.True(t, cfg.PositionsEnabled())
	assert.False(t, cfg.DetectLangEnabled())
	assert.False(t, cfg.NodeIDsEnabled())
	assert.Equal(t, config.DefaultIndent, cfg.IndentWidth())
}

func TestConfig_UnsetAccessors(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{}
	assert.True(t, cfg.PositionsEnabled())
	assert.False(t, cfg.DetectLangEnabled())
	assert.False(t, cfg.NodeIDsEnabled())
	assert.Equal(t, config.DefaultIndent, cfg.IndentWidth())
}

func TestConfigClone(t *testing.T) {
	t.Parallel()

	t.Run("nil config returns nil", func(t *testing.T) {
		t.Parallel()
		var c *config.Config
		assert.Nil(t, c.Clone())
	})

	t.Run("deep copies pointers", func(t *testing.T) {
		t.Parallel()
		original := config.NewConfig()
		original.Output = "out.json"

		clone := original.Clone()
		require.NotNil(t, clone)
		assert.Equal(t, original, clone)

		*clone.Positions = false
		*clone.Indent = 8
		assert.True(t, original.PositionsEnabled())
		assert.Equal(t, config.DefaultIndent, original.IndentWidth())
		assert.Equal(t, "out.json", clone.Output)
	})
}

func TestToYAMLAndBack(t *testing.T) {
	t.Parallel()

	original := config.NewConfig()
	original.Flavor = config.FlavorGFM
	original.DetectLang = config.Bool(true)
	original.Selector = "main"

	data, err := original.ToYAML()
	require.NoError(t, err)
	assert.Contains(t, string(data), "flavor: gfm")
	assert.Contains(t, string(data), "detect_lang: true")
	assert.NotContains(t, string(data), "main", "CLI-only fields are not persisted")

	parsed, err := config.FromYAML(data)
	require.NoError(t, err)
	assert.Equal(t, config.FlavorGFM, parsed.Flavor)
	assert.True(t, parsed.DetectLangEnabled())
	assert.True(t, parsed.PositionsEnabled())
	assert.Empty(t, parsed.Selector)
}

func TestToYAMLWithHeader(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{Flavor: config.FlavorGFM}

	data, err := cfg.ToYAMLWithHeader("# header")
	require.NoError(t, err)
	assert.Equal(t, "# header\n\nflavor: gfm\n", string(data))

	plain, err := cfg.ToYAMLWithHeader("")
	require.NoError(t, err)
	assert.Equal(t, "flavor: gfm\n", string(plain))
}

func TestFromYAML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr bool
		check   func(t *testing.T, cfg *config.Config)
	}{
		{
			name:  "empty",
			input: "",
			check: func(t *testing.T, cfg *config.Config) {
				t.Helper()
				assert.Nil(t, cfg.Positions)
				assert.Empty(t, cfg.Flavor)
			},
		},
		{
			name:  "explicit false survives",
			input: "positions: false\nindent: 0\n",
			check: func(t *testing.T, cfg *config.Config) {
				t.Helper()
				require.NotNil(t, cfg.Positions)
				assert.False(t, cfg.PositionsEnabled())
				assert.Equal(t, 0, cfg.IndentWidth())
			},
		},
		{
			name:  "json is yaml",
			input: `{"flavor": "gfm", "node_ids": true}`,
			check: func(t *testing.T, cfg *config.Config) {
				t.Helper()
				assert.Equal(t, config.FlavorGFM, cfg.Flavor)
				assert.True(t, cfg.NodeIDsEnabled())
			},
		},
		{name: "unknown key", input: "flavour: gfm\n", wantErr: true},
		{name: "wrong type", input: "positions: [1]\n", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg, err := config.FromYAML([]byte(tt.input))
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestGenerateTemplate(t *testing.T) {
	t.Parallel()

	for _, format := range []string{"yaml", "json"} {
		t.Run(format, func(t *testing.T) {
			t.Parallel()
			data, err := config.GenerateTemplate(config.TemplateOptions{Format: format})
			require.NoError(t, err)

			cfg, err := config.FromYAML(data)
			require.NoError(t, err)
			assert.Equal(t, config.FlavorCommonMark, cfg.Flavor)
			assert.True(t, cfg.PositionsEnabled())
			assert.Equal(t, config.FormatJSON, cfg.Format)
			assert.Equal(t, config.DefaultIndent, cfg.IndentWidth())
		})
	}

	_, err := config.GenerateTemplate(config.TemplateOptions{Format: "toml"})
	require.Error(t, err)
}
