// Package deleter builds and executes removal plans under dry-run and
// quarantine guard rails. It never discovers its own targets: the caller
// supplies an explicit path list, and the only safety behaviors are that a
// dry run mutates nothing and deps-only mode never touches a project root.
package deleter

import (
	"os"
	"path/filepath"

	"github.com/theayoodukoya/devclean-ai/internal/scanner"
)

// Item statuses. Error statuses use the "error:<reason>" form.
const (
	StatusPlanned = "planned"
	StatusDeleted = "deleted"
	StatusMoved   = "moved"
)

// Actions describe what a plan item targets.
const (
	ActionProjectRoot   = "project root"
	ActionDependencyDir = "dependency directory"
	ActionCacheDir      = "cache directory"
)

// depSubdirs is the fixed set of per-project dependency/build-cache
// subdirectories deps-only mode is allowed to remove.
var depSubdirs = []string{"node_modules", ".cache"}

// Target is one caller-selected deletion candidate.
type Target struct {
	// Path is the project root (or cache directory) path.
	Path string `json:"path"`

	// IsCacheDir marks a bare cache directory: always removed as a single
	// directory regardless of deps-only mode.
	IsCacheDir bool `json:"is_cache_dir"`
}

// TargetsFromMetas adapts scan results to deletion targets.
func TargetsFromMetas(metas []scanner.ProjectMeta) []Target {
	targets := make([]Target, 0, len(metas))
	for _, meta := range metas {
		targets = append(targets, Target{Path: meta.Path, IsCacheDir: meta.IsCacheDir})
	}
	return targets
}

// Options gates execution behavior.
type Options struct {
	// DepsOnly restricts removal to dependency/build-cache subdirectories,
	// never the project root.
	DepsOnly bool `json:"deps_only"`

	// DryRun plans without mutating the filesystem at all.
	DryRun bool `json:"dry_run"`

	// Quarantine moves targets into the holding area instead of deleting.
	Quarantine bool `json:"quarantine"`

	// QuarantineDir overrides the holding area location. Empty means the
	// default under the user config directory.
	QuarantineDir string `json:"-"`
}

// Item is one row of a plan and, after execution, its result.
type Item struct {
	Path      string `json:"path"`
	SizeBytes int64  `json:"size_bytes"`
	Action    string `json:"action"`
	Status    string `json:"status"`

	// Destination is set for quarantined items so the caller can offer
	// restoration.
	Destination string `json:"destination,omitempty"`
}

// Result aggregates an executed plan. RemovedCount and ReclaimedBytes sum
// only items that finished as deleted or moved.
type Result struct {
	RemovedCount   int    `json:"removed_count"`
	ReclaimedBytes int64  `json:"reclaimed_bytes"`
	Items          []Item `json:"items"`
}

// BuildPlan resolves targets to concrete plan items, de-duplicated by path.
// In deps-only mode each non-cache target expands to its existing dependency
// subdirectories; a missing subdirectory is silently omitted. Cache-dir
// targets are always a single directory regardless of mode.
func BuildPlan(targets []Target, opts Options) []Item {
	var items []Item
	seen := make(map[string]struct{})

	add := func(path, action string) {
		if _, dup := seen[path]; dup {
			return
		}
		seen[path] = struct{}{}
		items = append(items, Item{
			Path:      path,
			SizeBytes: scanner.SizeOf(path),
			Action:    action,
			Status:    StatusPlanned,
		})
	}

	for _, target := range targets {
		if opts.DepsOnly && !target.IsCacheDir {
			for _, sub := range depSubdirs {
				candidate := filepath.Join(target.Path, sub)
				if _, err := os.Stat(candidate); err != nil {
					continue
				}
				add(candidate, ActionDependencyDir)
			}
			continue
		}

		if _, err := os.Stat(target.Path); err != nil {
			continue
		}
		action := ActionProjectRoot
		if target.IsCacheDir {
			action = ActionCacheDir
		}
		add(target.Path, action)
	}

	return items
}
