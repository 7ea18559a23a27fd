// Package config holds the settings of a scanstamp run: stamp text and
// font, the rotation-only switch, page geometry constants, the output
// location and the orientation engine.
//
// Settings are read from a YAML file. Keys missing from the file keep
// their default values.
package config

import (
	"github.com/gardar/scanstamp/pkg/gdocai"
	"github.com/gardar/scanstamp/pkg/stamp"
)

// AppName is used for the XDG config directory.
const AppName = "scanstamp"

// Defaults for the page geometry and the batch.
const (
	DefaultFont                = "TIMES-ROMAN"
	DefaultFontSize            = 14
	DefaultScaleFactor         = 0.92
	DefaultMarginTop           = 30
	DefaultMarginBottom        = 0
	DefaultBaseCounter         = 100000
	DefaultConfidenceThreshold = 2.0
	DefaultOutputFolder        = "PDF-Output"
	DefaultDPI                 = 300
	DefaultLanguage            = "eng"
)

// Oracle backends.
const (
	BackendTesseract  = "tesseract"
	BackendDocumentAI = "documentai"
	BackendNone       = "none"
)

// Config is the full set of options.
type Config struct {
	Font            string     `yaml:"font"`
	FontSize        float64    `yaml:"font_size"`
	OnlyRotatePages bool       `yaml:"only_rotate_pages"`
	Header          stamp.Band `yaml:"header"`
	Footer          stamp.Band `yaml:"footer"`

	ScaleFactor         float64 `yaml:"scale_factor"`
	MarginTop           float64 `yaml:"margin_top"`
	MarginBottom        float64 `yaml:"margin_bottom"`
	BaseCounter         int     `yaml:"base_counter"`
	ConfidenceThreshold float64 `yaml:"confidence_threshold"`

	// OutputRoot is where timestamped run directories are created. When
	// empty, OutputFolder under the desktop directory is used.
	OutputRoot   string `yaml:"output_root"`
	OutputFolder string `yaml:"output_folder"`

	Oracle OracleConfig `yaml:"oracle"`
}

// OracleConfig selects and configures the orientation engine.
type OracleConfig struct {
	Backend        string        `yaml:"backend"`
	Language       string        `yaml:"language"`
	TessdataPrefix string        `yaml:"tessdata_prefix"`
	Ghostscript    string        `yaml:"ghostscript"`
	DPI            int           `yaml:"dpi"`
	DocumentAI     gdocai.Config `yaml:"documentai"`
	DumpResponses  bool          `yaml:"dump_responses"`
}

// Default returns the configuration a fresh install starts with.
func Default() Config {
	return Config{
		Font:     DefaultFont,
		FontSize: DefaultFontSize,
		Header: stamp.Band{
			Enabled: true,
			Left:    stamp.Side{Mode: stamp.Dynamic, Text: "L Header", Count: DefaultBaseCounter},
			Right:   stamp.Side{Mode: stamp.Static, Text: "R Header", Count: DefaultBaseCounter},
		},
		Footer: stamp.Band{
			Enabled: true,
			Left:    stamp.Side{Mode: stamp.Static, Text: "L Footer", Count: DefaultBaseCounter},
			Right:   stamp.Side{Mode: stamp.Dynamic, Text: "R Footer", Count: DefaultBaseCounter},
		},
		ScaleFactor:         DefaultScaleFactor,
		MarginTop:           DefaultMarginTop,
		MarginBottom:        DefaultMarginBottom,
		BaseCounter:         DefaultBaseCounter,
		ConfidenceThreshold: DefaultConfidenceThreshold,
		OutputFolder:        DefaultOutputFolder,
		Oracle: OracleConfig{
			Backend:  DefaultBackend,
			Language: DefaultLanguage,
			DPI:      DefaultDPI,
		},
	}
}

// ProcessingEnabled reports whether a run would change anything.
func (c Config) ProcessingEnabled() bool {
	return c.OnlyRotatePages || c.Header.Enabled || c.Footer.Enabled
}

// Layout returns the stamp placement for this configuration.
func (c Config) Layout() stamp.Layout {
	l := stamp.DefaultLayout
	l.MarginTop = c.MarginTop
	l.MarginBottom = c.MarginBottom
	return l
}
