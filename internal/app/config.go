package app

import "fmt"

// Config holds everything an App needs for one run. Pointer fields are CLI
// overrides of config-file settings; nil means the flag was not given and
// the file (or the built-in default) wins.
type Config struct {
	// Path is the root to scan. Empty means no path was given on the
	// command line, leaving the config file (or ".") in charge.
	Path string

	// ConfigFile is an optional HCL configuration file.
	ConfigFile string

	LogFormat    string // "text" or "json"
	LogLevel     string // "debug", "info", "warn" or "error"
	ReportFormat string // "text" or "json"

	// ReportFile, when set, receives a copy of the rendered report.
	ReportFile string

	// Fix switches from reporting to rewriting: unreferenced zones and
	// identical duplicates are removed from the files.
	Fix bool

	// CLI overrides of config-file settings.
	Workers         *int
	Extensions      []string
	CheckNaming     *bool
	CheckDuplicates *bool
}

// NewConfig validates a Config.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.ReportFormat != "" && cfg.ReportFormat != "text" && cfg.ReportFormat != "json" {
		return nil, fmt.Errorf("invalid report format %q: must be 'text' or 'json'", cfg.ReportFormat)
	}
	if cfg.Workers != nil && *cfg.Workers < 1 {
		return nil, fmt.Errorf("workers must be at least 1, got %d", *cfg.Workers)
	}
	return &cfg, nil
}
