package scanner

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	// recencyMaxDepth bounds how far below the project root the recency
	// sample descends. Deep trees are dominated by generated output, and a
	// full stat pass just for a recency signal is not worth the cost.
	recencyMaxDepth = 2

	// recencyMaxFiles caps the sample size per project.
	recencyMaxFiles = 200
)

// sourceExtensions are the file types sampled for the recency signal.
var sourceExtensions = map[string]struct{}{
	".js": {}, ".jsx": {}, ".ts": {}, ".tsx": {}, ".mjs": {}, ".cjs": {},
	".json": {}, ".md": {}, ".css": {}, ".scss": {}, ".html": {},
	".vue": {}, ".svelte": {}, ".yml": {}, ".yaml": {},
}

// lastModified returns the newest modification time among a shallow sample
// of source-like files under dir. When the sample is empty it falls back to
// the manifest file's own mtime, then to the directory's.
func lastModified(dir, manifestPath string) time.Time {
	var newest time.Time
	sampled := 0

	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if sampled >= recencyMaxFiles {
			return filepath.SkipAll
		}
		if d.IsDir() {
			if _, ignored := defaultIgnores[d.Name()]; ignored && path != dir {
				return filepath.SkipDir
			}
			if depthBelow(dir, path) > recencyMaxDepth {
				return filepath.SkipDir
			}
			return nil
		}
		if _, ok := sourceExtensions[strings.ToLower(filepath.Ext(path))]; !ok {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		sampled++
		if info.ModTime().After(newest) {
			newest = info.ModTime()
		}
		return nil
	})

	if !newest.IsZero() {
		return newest
	}
	if info, err := os.Stat(manifestPath); err == nil {
		return info.ModTime()
	}
	if info, err := os.Stat(dir); err == nil {
		return info.ModTime()
	}
	return time.Time{}
}

// depthBelow counts path separators between root and path.
func depthBelow(root, path string) int {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." {
		return 0
	}
	return strings.Count(rel, string(filepath.Separator)) + 1
}

// daysSince is the floor of whole days elapsed since t. A zero time maps to
// zero days so missing mtimes read as recently touched rather than ancient.
func daysSince(t time.Time) int {
	if t.IsZero() {
		return 0
	}
	elapsed := time.Since(t)
	if elapsed < 0 {
		return 0
	}
	return int(elapsed.Hours() / 24)
}
