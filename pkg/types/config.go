package types

// PageSize holds page dimensions in millimetres.
type PageSize struct {
	Width  float64 `json:"width" yaml:"width" mapstructure:"width"`
	Height float64 `json:"height" yaml:"height" mapstructure:"height"`
}

// A4 is the default output page size.
var A4 = PageSize{Width: 210, Height: 297}

// Letter is US Letter in millimetres.
var Letter = PageSize{Width: 215.9, Height: 279.4}

// PDFConfig holds the geometry and font of generated PDF pages. All lengths
// are in millimetres; FontSize is in points.
type PDFConfig struct {
	// PageSize names a preset ("a4", "letter") or "custom" to use Width/Height.
	PageSize string  `json:"page_size" yaml:"page_size" mapstructure:"page_size"`
	Width    float64 `json:"width,omitempty" yaml:"width,omitempty" mapstructure:"width"`
	Height   float64 `json:"height,omitempty" yaml:"height,omitempty" mapstructure:"height"`

	Margin     float64 `json:"margin" yaml:"margin" mapstructure:"margin"`
	LineHeight float64 `json:"line_height" yaml:"line_height" mapstructure:"line_height"`

	// FontFamily must be one of the PDF core fonts (helvetica, times, courier).
	FontFamily string  `json:"font_family" yaml:"font_family" mapstructure:"font_family"`
	FontSize   float64 `json:"font_size" yaml:"font_size" mapstructure:"font_size"`
}

// Size resolves the configured page dimensions.
func (c PDFConfig) Size() PageSize {
	switch c.PageSize {
	case "letter":
		return Letter
	case "custom":
		return PageSize{Width: c.Width, Height: c.Height}
	default:
		return A4
	}
}

// DefaultPDFConfig returns A4 pages with 20 mm margins, 7 mm
// line spacing and 16 pt Helvetica.
func DefaultPDFConfig() PDFConfig {
	return PDFConfig{
		PageSize:   "a4",
		Margin:     20,
		LineHeight: 7,
		FontFamily: "helvetica",
		FontSize:   16,
	}
}

// HistoryConfig controls the optional conversion journal.
type HistoryConfig struct {
	// Enabled turns on recording. Off by default: docshift keeps no state.
	Enabled bool `json:"enabled" yaml:"enabled" mapstructure:"enabled"`

	// Path is the SQLite database file.
	Path string `json:"path" yaml:"path" mapstructure:"path"`
}

// ConversionConfig holds settings for the convert command.
type ConversionConfig struct {
	// Mode is the conversion direction: pdf-to-word or word-to-pdf.
	Mode string `json:"mode" yaml:"mode" mapstructure:"mode"`

	// OutDir is where converted files are written.
	OutDir string `json:"out_dir" yaml:"out_dir" mapstructure:"out_dir"`

	// Force overwrites existing outputs instead of skipping them.
	Force bool `json:"force" yaml:"force" mapstructure:"force"`
}

// Config groups all docshift configuration.
type Config struct {
	Conversion ConversionConfig `json:"conversion" yaml:"conversion" mapstructure:"conversion"`
	PDF        PDFConfig        `json:"pdf" yaml:"pdf" mapstructure:"pdf"`
	History    HistoryConfig    `json:"history" yaml:"history" mapstructure:"history"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		Conversion: ConversionConfig{
			Mode:   "pdf-to-word",
			OutDir: ".",
		},
		PDF: DefaultPDFConfig(),
		History: HistoryConfig{
			Path: "docshift-history.db",
		},
	}
}
