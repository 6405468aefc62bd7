// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/docshift/pkg/types"
)

func newTestViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	bindEnv(v)
	return v
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := loadConfig(newTestViper())
	require.NoError(t, err)
	assert.Equal(t, types.DefaultConfig(), cfg)
}

func TestLoadConfig_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docshift.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
conversion:
  mode: word-to-pdf
  out_dir: converted
pdf:
  page_size: letter
  font_family: times
  font_size: 12
history:
  enabled: true
`), 0o644))

	v := newTestViper()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	cfg, err := loadConfig(v)
	require.NoError(t, err)
	assert.Equal(t, "word-to-pdf", cfg.Conversion.Mode)
	assert.Equal(t, "converted", cfg.Conversion.OutDir)
	assert.Equal(t, types.Letter, cfg.PDF.Size())
	assert.Equal(t, "times", cfg.PDF.FontFamily)
	assert.Equal(t, 12.0, cfg.PDF.FontSize)
	assert.Equal(t, 20.0, cfg.PDF.Margin, "unset keys keep defaults")
	assert.True(t, cfg.History.Enabled)
}

func TestAddConfigPaths_HomeConfigDir(t *testing.T) {
	t.Chdir(t.TempDir())
	home := t.TempDir()
	dir := filepath.Join(home, ".config", "docshift")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "docshift.yaml"), []byte("pdf:\n  margin: 12\n"), 0o644))

	v := newTestViper()
	addConfigPaths(v, home)
	require.NoError(t, v.ReadInConfig())
	assert.Equal(t, filepath.Join(dir, "docshift.yaml"), v.ConfigFileUsed())
	assert.Equal(t, 12.0, v.GetFloat64("pdf.margin"))

	usage := rootCmd.PersistentFlags().Lookup("config").Usage
	assert.Contains(t, usage, filepath.Join("~", ".config", "docshift", "docshift.yaml"))
}

func TestLoadConfig_Environment(t *testing.T) {
	t.Setenv("DOCSHIFT_PDF_MARGIN", "15")
	t.Setenv("DOCSHIFT_CONVERSION_MODE", "word-to-pdf")

	cfg, err := loadConfig(newTestViper())
	require.NoError(t, err)
	assert.Equal(t, 15.0, cfg.PDF.Margin)
	assert.Equal(t, "word-to-pdf", cfg.Conversion.Mode)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  any
	}{
		{name: "unknown mode", key: "conversion.mode", val: "sideways"},
		{name: "unknown page size", key: "pdf.page_size", val: "a3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newTestViper()
			v.Set(tt.key, tt.val)
			_, err := loadConfig(v)
			assert.Error(t, err)
		})
	}
}

func TestLoadEnvFile(t *testing.T) {
	t.Run("missing file is ignored", func(t *testing.T) {
		assert.NoError(t, loadEnvFile(filepath.Join(t.TempDir(), "absent.env")))
	})

	t.Run("variables are loaded", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(path, []byte("DOCSHIFT_PDF_FONT_SIZE=11\n"), 0o644))
		t.Setenv("DOCSHIFT_PDF_FONT_SIZE", "")
		os.Unsetenv("DOCSHIFT_PDF_FONT_SIZE")

		require.NoError(t, loadEnvFile(path))
		cfg, err := loadConfig(newTestViper())
		require.NoError(t, err)
		assert.Equal(t, 11.0, cfg.PDF.FontSize)
	})
}
