// Package assess attaches risk assessments to scanned projects, consulting
// an on-disk cache of external judgments keyed by a content fingerprint of
// each manifest.
package assess

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/theayoodukoya/devclean-ai/internal/risk"
)

const (
	// cacheFileName sits inside the scanned root.
	cacheFileName = ".devclean-cache.json"

	cacheVersion = 1
)

// Entry is one cached external judgment.
type Entry struct {
	// ContentHash is the SHA-256 of the manifest bytes the classifier was
	// shown. Any drift invalidates the entry.
	ContentHash string `json:"content_hash"`

	Assessment risk.Assessment `json:"assessment"`

	// UpdatedAt is the RFC3339 time the entry was last written.
	UpdatedAt string `json:"updated_at"`
}

// Document is the whole on-disk cache, keyed by manifest path. One document
// per scanned root; last writer wins across racing invocations.
type Document struct {
	Version int              `json:"version"`
	Entries map[string]Entry `json:"entries"`
}

// newDocument returns an empty current-version document.
func newDocument() Document {
	return Document{Version: cacheVersion, Entries: make(map[string]Entry)}
}

// fallbackCachePath is used when the scanned root is not writable (or its
// cache file is unreadable): a per-root file under the given config dir,
// named by a hash of the root path.
func fallbackCachePath(configDir, root string) string {
	sum := sha256.Sum256([]byte(root))
	name := fmt.Sprintf("cache-%s.json", hex.EncodeToString(sum[:]))
	return filepath.Join(configDir, "cache", name)
}

// Open reads the cache for root. Missing files, unreadable files, malformed
// JSON and version mismatches all yield a fresh empty document; Open never
// fails.
func Open(configDir, root string) Document {
	for _, path := range []string{filepath.Join(root, cacheFileName), fallbackCachePath(configDir, root)} {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var doc Document
		if err := json.Unmarshal(data, &doc); err != nil {
			continue
		}
		if doc.Version != cacheVersion || doc.Entries == nil {
			continue
		}
		return doc
	}
	return newDocument()
}

// Lookup returns the cached assessment for manifestPath only when the
// stored hash exactly matches contentHash. Any mismatch is a miss.
func Lookup(doc Document, manifestPath, contentHash string) (risk.Assessment, bool) {
	entry, ok := doc.Entries[manifestPath]
	if !ok || entry.ContentHash != contentHash {
		return risk.Assessment{}, false
	}
	return entry.Assessment, true
}

// Store upserts an entry in memory with the current timestamp.
func Store(doc Document, manifestPath, contentHash string, assessment risk.Assessment) {
	doc.Entries[manifestPath] = Entry{
		ContentHash: contentHash,
		Assessment:  assessment,
		UpdatedAt:   time.Now().UTC().Format(time.RFC3339),
	}
}

// Persist writes the whole document once, atomically (temp file + rename).
// A read-only root falls back to the config-dir location.
func Persist(configDir, root string, doc Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding cache: %w", err)
	}

	primary := filepath.Join(root, cacheFileName)
	if err := writeAtomic(primary, data); err == nil {
		return nil
	}

	fallback := fallbackCachePath(configDir, root)
	if err := os.MkdirAll(filepath.Dir(fallback), 0o755); err != nil {
		return fmt.Errorf("creating cache dir: %w", err)
	}
	if err := writeAtomic(fallback, data); err != nil {
		return fmt.Errorf("writing cache: %w", err)
	}
	return nil
}

// writeAtomic writes to a temp file in the target directory then renames it
// over the destination, so a partial pass never corrupts the document.
func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".devclean-cache-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return nil
}

// HashFile returns the hex SHA-256 of the file's raw bytes. The hash covers
// bytes, not parsed structure: whitespace and key-order changes invalidate
// cache entries on purpose, because the fingerprint must track exactly what
// the external classifier was shown.
func HashFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("hashing manifest: %w", err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
