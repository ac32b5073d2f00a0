// Package app wires the lint pipeline together: configuration resolution,
// file discovery, the scan worker pool, the optional cleaner, and report
// rendering. It owns the application lifecycle between CLI parsing and
// process exit.
package app
