package scanner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"
)

const (
	manifestName = "package.json"

	defaultWorkers = 8

	// progressInterval and progressEvery bound how often the progress sink
	// fires: whichever comes first.
	progressInterval = 120 * time.Millisecond
	progressEvery    = 200
)

// defaultIgnores are pruned anywhere in the tree: dependency installs,
// build output, VCS internals, framework caches and coverage output.
var defaultIgnores = map[string]struct{}{
	"node_modules": {},
	"dist":         {},
	"build":        {},
	".git":         {},
	".next":        {},
	".cache":       {},
	"coverage":     {},
}

// systemIgnoresUnix extends the ignore set under --all scans to keep a
// whole-volume pass out of OS installations and virtual filesystems.
var systemIgnoresUnix = map[string]struct{}{
	"System":       {},
	"Library":      {},
	"Applications": {},
	"private":      {},
	"Volumes":      {},
	"proc":         {},
	"dev":          {},
	"sys":          {},
	"run":          {},
	"tmp":          {},
}

var systemIgnoresWindows = map[string]struct{}{
	"Windows":                   {},
	"Program Files":             {},
	"Program Files (x86)":       {},
	"ProgramData":               {},
	"$Recycle.Bin":              {},
	"System Volume Information": {},
}

// isIgnored reports whether a directory name should be pruned. The system
// set only applies to whole-volume scans.
func isIgnored(name string, scanAll bool) bool {
	if _, ok := defaultIgnores[name]; ok {
		return true
	}
	if !scanAll {
		return false
	}
	system := systemIgnoresUnix
	if runtime.GOOS == "windows" {
		system = systemIgnoresWindows
	}
	_, ok := system[name]
	return ok
}

// Scan walks root, builds one ProjectMeta per manifest found, and returns
// the list sorted lexicographically by path. Per-entry I/O errors are
// swallowed; only a failure to access root itself is fatal.
func Scan(ctx context.Context, root string, opts Options, progress ProgressFunc) ([]ProjectMeta, Stats, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("resolving scan root: %w", err)
	}
	if _, err := os.Stat(absRoot); err != nil {
		return nil, Stats{}, fmt.Errorf("accessing scan root: %w", err)
	}

	stats := countEntries(absRoot, opts.ScanAll)
	manifests := findManifests(absRoot, opts.ScanAll, stats.TotalEntries, progress)

	workers := opts.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}

	projects := make([]ProjectMeta, len(manifests))
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, manifestPath := range manifests {
		g.Go(func() error {
			projects[i] = buildMeta(manifestPath)
			return nil
		})
	}
	_ = g.Wait()

	if opts.IncludeCaches {
		projects = append(projects, scanCacheDirs()...)
	}

	sort.Slice(projects, func(i, j int) bool {
		return projects[i].Path < projects[j].Path
	})
	return projects, stats, nil
}

// countEntries does a cheap first pass so the progress sink can report a
// total. Unreadable entries are counted as skipped.
func countEntries(root string, scanAll bool) Stats {
	var stats Stats
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			stats.SkippedEntries++
			return nil
		}
		if d.IsDir() && path != root && isIgnored(d.Name(), scanAll) {
			return filepath.SkipDir
		}
		stats.TotalEntries++
		return nil
	})
	return stats
}

// findManifests collects every package.json path under root, applying the
// prune rule before descending and emitting throttled progress.
func findManifests(root string, scanAll bool, total int, progress ProgressFunc) []string {
	var manifests []string
	scanned := 0
	lastEmit := time.Now()

	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() && path != root && isIgnored(d.Name(), scanAll) {
			return filepath.SkipDir
		}
		scanned++
		if !d.IsDir() && d.Name() == manifestName {
			manifests = append(manifests, path)
		}
		if progress != nil && (time.Since(lastEmit) >= progressInterval || scanned%progressEvery == 0) {
			lastEmit = time.Now()
			progress(Progress{
				FoundCount:   len(manifests),
				CurrentPath:  path,
				ScannedCount: scanned,
				TotalCount:   total,
			})
		}
		return nil
	})

	if progress != nil {
		progress(Progress{
			FoundCount:   len(manifests),
			CurrentPath:  root,
			ScannedCount: scanned,
			TotalCount:   total,
		})
	}
	return manifests
}

// buildMeta assembles the ProjectMeta for one discovered manifest.
func buildMeta(manifestPath string) ProjectMeta {
	dir := filepath.Dir(manifestPath)
	facts := readManifest(manifestPath)

	name := facts.Name
	if name == "" {
		name = filepath.Base(dir)
	}

	modified := lastModified(dir, manifestPath)

	return ProjectMeta{
		ID:                dir,
		Path:              dir,
		Name:              name,
		ManifestPath:      manifestPath,
		DependencyCount:   facts.DependencyCount,
		HasVcsMarker:      hasVcsMarker(dir),
		HasEnvFile:        hasEnvFile(dir),
		HasStartupKeyword: HasStartupSignal(name, facts.Keywords, facts.Scripts),
		LastModified:      modified,
		LastModifiedDays:  daysSince(modified),
		SizeBytes:         SizeOf(dir),
	}
}
