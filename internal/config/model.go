package config

import "github.com/mei-archive/meilint/internal/mei"

// Model is the unified representation of a lint run's configuration:
// built-in defaults, overlaid by a config file, overlaid by CLI flags.
type Model struct {
	// Path is the root of the tree to scan, or a single file.
	Path string

	// Extensions lists the file suffixes treated as MEI documents.
	Extensions []string

	// ReferenceAttributes names the attributes whose values count as
	// references to zone identifiers.
	ReferenceAttributes []string

	// Workers is the size of the scan worker pool.
	Workers int

	// CheckNaming enables the <siglum>_<folio> filename convention check.
	CheckNaming bool

	// CheckDuplicates enables duplicate-region zone detection.
	CheckDuplicates bool
}

// Default returns the built-in configuration.
func Default() *Model {
	return &Model{
		Path:                ".",
		Extensions:          []string{".mei"},
		ReferenceAttributes: mei.DefaultReferenceAttributes(),
		Workers:             4,
	}
}

// NormalizeExtensions prepends the dot users habitually leave off, so both
// "mei" and ".mei" configure the same suffix.
func NormalizeExtensions(exts []string) []string {
	out := make([]string, 0, len(exts))
	for _, e := range exts {
		if e == "" {
			continue
		}
		if e[0] != '.' {
			e = "." + e
		}
		out = append(out, e)
	}
	return out
}
