// Package config provides configuration loading and defaults for devclean.
package config

// DefaultScanRoot is the directory scanned when none is given.
const DefaultScanRoot = "."

// DefaultConfigDir is the default location for devclean configuration,
// cache fallbacks and the quarantine holding area.
const DefaultConfigDir = "~/.config/devclean"

// DefaultDBName is the filename for the SQLite history database.
const DefaultDBName = "devclean.db"

// DefaultWorkers bounds per-project enrichment concurrency during a scan.
const DefaultWorkers = 8

// DefaultAIWorkers bounds concurrent external classifier calls.
const DefaultAIWorkers = 4

// DefaultModel is the Gemini model used for external classification.
const DefaultModel = "gemini-2.5-flash-lite"

// DefaultOutput holds the default output preferences.
var DefaultOutput = Output{
	Color: true,
	Width: 80,
}
