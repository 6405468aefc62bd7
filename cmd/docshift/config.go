// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/docshift/internal/format"
	"github.com/pdiddy/docshift/pkg/types"
)

// setDefaults registers every configuration key so that environment
// variables such as DOCSHIFT_PDF_MARGIN are seen by Unmarshal.
func setDefaults(v *viper.Viper) {
	d := types.DefaultConfig()

	v.SetDefault("conversion.mode", d.Conversion.Mode)
	v.SetDefault("conversion.out_dir", d.Conversion.OutDir)
	v.SetDefault("conversion.force", d.Conversion.Force)

	v.SetDefault("pdf.page_size", d.PDF.PageSize)
	v.SetDefault("pdf.width", d.PDF.Width)
	v.SetDefault("pdf.height", d.PDF.Height)
	v.SetDefault("pdf.margin", d.PDF.Margin)
	v.SetDefault("pdf.line_height", d.PDF.LineHeight)
	v.SetDefault("pdf.font_family", d.PDF.FontFamily)
	v.SetDefault("pdf.font_size", d.PDF.FontSize)

	v.SetDefault("history.enabled", d.History.Enabled)
	v.SetDefault("history.path", d.History.Path)
}

// bindEnv maps DOCSHIFT_SECTION_KEY variables onto section.key.
func bindEnv(v *viper.Viper) {
	v.SetEnvPrefix("DOCSHIFT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// loadConfig resolves the configuration from defaults, the config file,
// the environment and bound flags, in increasing precedence.
func loadConfig(v *viper.Viper) (types.Config, error) {
	var cfg types.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decoding configuration: %w", err)
	}
	if _, err := format.ParseDirection(cfg.Conversion.Mode); err != nil {
		return cfg, err
	}
	switch cfg.PDF.PageSize {
	case "a4", "letter", "custom":
	default:
		return cfg, fmt.Errorf("unknown pdf.page_size %q: use a4, letter or custom", cfg.PDF.PageSize)
	}
	return cfg, nil
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the resolved configuration as YAML",
	Long: `Config prints the configuration docshift would run with after applying
the config file, DOCSHIFT_* environment variables and defaults.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(viper.GetViper())
		if err != nil {
			return err
		}
		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(cfg)
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}
