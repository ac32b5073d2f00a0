package config

import "context"

// Loader is the interface for a format-specific configuration file loader.
type Loader interface {
	// Load reads the configuration file at path and returns the Default
	// model with the file's settings applied on top.
	Load(ctx context.Context, path string) (*Model, error)
}
