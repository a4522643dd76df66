package scanner

import (
	"os"
	"path/filepath"
)

// cacheCandidate is one well-known package manager cache location. When
// expandChildren is set, each child directory becomes its own entry so the
// operator can reclaim them individually.
type cacheCandidate struct {
	path           string
	label          string
	expandChildren bool
}

// gatherCacheCandidates lists the npm/yarn/pnpm and system cache locations
// for the current user, including the env-var overrides the package
// managers honor.
func gatherCacheCandidates() []cacheCandidate {
	var candidates []cacheCandidate

	if dir, err := os.UserCacheDir(); err == nil {
		candidates = append(candidates, cacheCandidate{path: dir, label: "System cache", expandChildren: true})
	}

	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates,
			cacheCandidate{path: filepath.Join(home, ".npm"), label: "npm cache"},
			cacheCandidate{path: filepath.Join(home, ".yarn", "cache"), label: "yarn cache"},
			cacheCandidate{path: filepath.Join(home, ".yarn"), label: "yarn data"},
			cacheCandidate{path: filepath.Join(home, ".pnpm-store"), label: "pnpm store"},
			cacheCandidate{path: filepath.Join(home, ".cache", "yarn"), label: "yarn cache"},
			cacheCandidate{path: filepath.Join(home, ".cache", "npm"), label: "npm cache"},
			cacheCandidate{path: filepath.Join(home, ".local", "share", "pnpm", "store"), label: "pnpm store"},
		)
	}

	for env, label := range map[string]string{
		"NPM_CONFIG_CACHE":  "npm cache",
		"YARN_CACHE_FOLDER": "yarn cache",
		"PNPM_STORE_PATH":   "pnpm store",
	} {
		if value := os.Getenv(env); value != "" {
			candidates = append(candidates, cacheCandidate{path: value, label: label})
		}
	}

	return candidates
}

// scanCacheDirs produces one IsCacheDir entry per existing cache location,
// de-duplicated by path. Cache entries carry no manifest facts; their name
// is a human label like "npm cache - _cacache".
func scanCacheDirs() []ProjectMeta {
	var projects []ProjectMeta
	seen := make(map[string]struct{})

	add := func(path, label string) {
		if _, dup := seen[path]; dup {
			return
		}
		seen[path] = struct{}{}

		info, err := os.Stat(path)
		if err != nil || !info.IsDir() {
			return
		}
		modified := info.ModTime()
		projects = append(projects, ProjectMeta{
			ID:               path,
			Path:             path,
			Name:             label + " - " + filepath.Base(path),
			LastModified:     modified,
			LastModifiedDays: daysSince(modified),
			SizeBytes:        SizeOf(path),
			IsCacheDir:       true,
		})
	}

	for _, candidate := range gatherCacheCandidates() {
		if !candidate.expandChildren {
			add(candidate.path, candidate.label)
			continue
		}
		entries, err := os.ReadDir(candidate.path)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if entry.IsDir() {
				add(filepath.Join(candidate.path, entry.Name()), candidate.label)
			}
		}
	}

	return projects
}
