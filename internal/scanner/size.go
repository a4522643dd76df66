package scanner

import (
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

// sizeCache memoizes directory sizes across one process invocation so that
// plan building after a scan does not re-walk large trees. Keyed by path;
// sizes are advisory (display and aggregate reporting), so staleness within
// a single run is acceptable.
var sizeCache, _ = lru.New[string, int64](4096)

// SizeOf returns the aggregate file size under path. It prefers the
// platform du facility and falls back to a manual walk that skips
// unreadable entries.
func SizeOf(path string) int64 {
	if size, ok := sizeCache.Get(path); ok {
		return size
	}

	size, ok := duSize(path)
	if !ok {
		size = walkSize(path)
	}
	sizeCache.Add(path, size)
	return size
}

// ResetSizeCache drops all memoized sizes. Used by tests and by callers
// that mutate the filesystem between measurements.
func ResetSizeCache() {
	sizeCache.Purge()
}

// duSize shells out to du -sk, which is kernel-reported and much faster
// than a stat walk on large trees. Unavailable on Windows.
func duSize(path string) (int64, bool) {
	if runtime.GOOS == "windows" {
		return 0, false
	}
	out, err := exec.Command("du", "-sk", path).Output()
	if err != nil {
		return 0, false
	}
	fields := strings.Fields(string(out))
	if len(fields) == 0 {
		return 0, false
	}
	kb, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil {
		return 0, false
	}
	return kb * 1024, true
}

// walkSize sums file sizes recursively, ignoring entries it cannot read.
func walkSize(path string) int64 {
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		return info.Size()
	}

	var total int64
	_ = filepath.WalkDir(path, func(_ string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		total += info.Size()
		return nil
	})
	return total
}
