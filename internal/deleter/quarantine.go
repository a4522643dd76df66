package deleter

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// QuarantineEntry is one item sitting in the holding area.
type QuarantineEntry struct {
	Name      string    `json:"name"`
	Path      string    `json:"path"`
	SizeBytes int64     `json:"size_bytes"`
	MovedAt   time.Time `json:"moved_at"`
}

// DefaultQuarantineDir returns the holding area under the user config
// directory.
func DefaultQuarantineDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolving config dir: %w", err)
	}
	return filepath.Join(base, "devclean", "quarantine"), nil
}

// ensureQuarantineDir resolves and creates the holding area.
func ensureQuarantineDir(override string) (string, error) {
	dir := override
	if dir == "" {
		var err error
		dir, err = DefaultQuarantineDir()
		if err != nil {
			return "", err
		}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}

// ListQuarantine returns the holding area's contents, newest first. A
// missing holding area is an empty list, not an error.
func ListQuarantine(dir string) ([]QuarantineEntry, error) {
	if dir == "" {
		var err error
		dir, err = DefaultQuarantineDir()
		if err != nil {
			return nil, err
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading quarantine dir: %w", err)
	}

	var list []QuarantineEntry
	for _, entry := range entries {
		info, err := entry.Info()
		if err != nil {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		list = append(list, QuarantineEntry{
			Name:      entry.Name(),
			Path:      path,
			SizeBytes: dirOrFileSize(path, info),
			MovedAt:   info.ModTime(),
		})
	}

	sort.Slice(list, func(i, j int) bool {
		return list[i].MovedAt.After(list[j].MovedAt)
	})
	return list, nil
}

func dirOrFileSize(path string, info os.FileInfo) int64 {
	if !info.IsDir() {
		return info.Size()
	}
	var total int64
	_ = filepath.Walk(path, func(_ string, fi os.FileInfo, err error) error {
		if err == nil && !fi.IsDir() {
			total += fi.Size()
		}
		return nil
	})
	return total
}
