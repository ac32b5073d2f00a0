package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/mei-archive/meilint/internal/app"
)

// ExitError is an error carrying a specific process exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating the program should exit cleanly (help was printed),
// or an ExitError for invalid input.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("meilint", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
meilint - referential-integrity checks for MEI manuscript archives.

Usage:
  meilint [options] [PATH]

Arguments:
  PATH
    Path to a single .mei file or a directory tree of .mei files.
    Defaults to the current directory.

Options:
`)
		flagSet.PrintDefaults()
	}

	configFlag := flagSet.String("config", "", "Path to an HCL configuration file.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	formatFlag := flagSet.String("format", "text", "Report output format. Options: 'text' or 'json'.")
	reportFileFlag := flagSet.String("report-file", "", "Also write the report to this file.")
	workersFlag := flagSet.Int("workers", 4, "Number of concurrent workers for the scan.")
	extFlag := flagSet.String("ext", "", "Comma-separated file extensions to scan (default '.mei').")
	checkNamingFlag := flagSet.Bool("check-naming", false, "Check the <siglum>_<folio> file naming convention.")
	checkDuplicatesFlag := flagSet.Bool("check-duplicates", false, "Check for zones covering identical image regions.")
	fixFlag := flagSet.Bool("fix", false, "Rewrite files: remove unreferenced zones and identical duplicates.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	if flagSet.NArg() > 1 {
		return nil, false, &ExitError{Code: 2, Message: "at most one PATH argument is allowed"}
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	cfg := app.Config{
		Path:         flagSet.Arg(0),
		ConfigFile:   *configFlag,
		LogFormat:    logFormat,
		LogLevel:     logLevel,
		ReportFormat: strings.ToLower(*formatFlag),
		ReportFile:   *reportFileFlag,
		Fix:          *fixFlag,
	}

	// Only flags the user actually set become overrides; defaults must not
	// shadow the config file.
	flagSet.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "workers":
			cfg.Workers = workersFlag
		case "ext":
			cfg.Extensions = splitExtensions(*extFlag)
		case "check-naming":
			cfg.CheckNaming = checkNamingFlag
		case "check-duplicates":
			cfg.CheckDuplicates = checkDuplicatesFlag
		}
	})

	config, err := app.NewConfig(cfg)
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parameter validation complete.")
	return config, false, nil
}

func splitExtensions(s string) []string {
	var exts []string
	for _, e := range strings.Split(s, ",") {
		e = strings.TrimSpace(e)
		if e != "" {
			exts = append(exts, e)
		}
	}
	return exts
}
