// Package config defines the format-agnostic configuration model for a lint
// run, along with the Loader interface implemented by format-specific
// packages such as hclcfg. The resolved Model is the single source of truth
// for the scanner and the cleaner.
package config
