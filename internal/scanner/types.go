// Package scanner discovers project directories and extracts the facts the
// risk engine scores. A project is anchored by a package.json manifest;
// nested manifests each yield their own entry.
package scanner

import "time"

// ProjectMeta holds everything discovered about a single project.
type ProjectMeta struct {
	// ID is the absolute project directory path. It is the selection key
	// the deletion engine receives back from the caller.
	ID string `json:"id"`

	// Path is the absolute project directory path (same value as ID).
	Path string `json:"path"`

	// Name is the declared manifest name, or the directory basename when
	// the manifest declares none.
	Name string `json:"name"`

	// ManifestPath is the absolute path to the package.json that anchored
	// discovery. Empty for cache directory entries.
	ManifestPath string `json:"manifest_path"`

	// DependencyCount sums entries across dependencies, devDependencies,
	// peerDependencies and optionalDependencies.
	DependencyCount int `json:"dependency_count"`

	// HasVcsMarker indicates a .git directory exists in the project root.
	HasVcsMarker bool `json:"has_vcs_marker"`

	// HasEnvFile indicates a file named .env* exists in the project root.
	HasEnvFile bool `json:"has_env_file"`

	// HasStartupKeyword indicates startup/production hints appear in the
	// manifest name, keywords or script bodies.
	HasStartupKeyword bool `json:"has_startup_keyword"`

	// LastModified is the best-effort recency signal for the project.
	LastModified time.Time `json:"last_modified"`

	// LastModifiedDays is the floor of whole days since LastModified.
	LastModifiedDays int `json:"last_modified_days"`

	// SizeBytes is the aggregate file size under the project directory.
	SizeBytes int64 `json:"size_bytes"`

	// IsCacheDir marks a bare dependency/build cache directory rather than
	// a project root. Only produced when cache scanning is enabled.
	IsCacheDir bool `json:"is_cache_dir"`
}

// Options controls a scan pass.
type Options struct {
	// ScanAll treats the root as a whole-volume scan and extends the
	// ignore set with platform system directories.
	ScanAll bool

	// IncludeCaches appends well-known package manager cache directories
	// as IsCacheDir entries.
	IncludeCaches bool

	// Workers bounds per-project enrichment concurrency. Zero means the
	// default of 8.
	Workers int
}

// Progress is an informational notification emitted at bounded intervals
// during traversal. It never alters the scan outcome.
type Progress struct {
	FoundCount   int    `json:"found_count"`
	CurrentPath  string `json:"current_path"`
	ScannedCount int    `json:"scanned_count"`
	TotalCount   int    `json:"total_count,omitempty"`
}

// ProgressFunc receives Progress notifications. A nil func disables them.
type ProgressFunc func(Progress)

// Stats summarizes a completed traversal.
type Stats struct {
	// TotalEntries is the number of entries visited by the pre-count pass.
	TotalEntries int `json:"total_entries"`

	// SkippedEntries counts entries that could not be read and were
	// skipped without failing the scan.
	SkippedEntries int `json:"skipped_entries"`
}
