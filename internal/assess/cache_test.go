package assess

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/theayoodukoya/devclean-ai/internal/risk"
)

func TestOpen_FreshDocumentWhenUnusable(t *testing.T) {
	configDir := t.TempDir()

	tests := []struct {
		name    string
		prepare func(t *testing.T, root string)
	}{
		{
			name:    "missing file",
			prepare: func(t *testing.T, root string) {},
		},
		{
			name: "corrupt json",
			prepare: func(t *testing.T, root string) {
				writeCacheFile(t, root, `{"version": 1, "entries`)
			},
		},
		{
			name: "version mismatch",
			prepare: func(t *testing.T, root string) {
				writeCacheFile(t, root, `{"version": 99, "entries": {}}`)
			},
		},
		{
			name: "null entries",
			prepare: func(t *testing.T, root string) {
				writeCacheFile(t, root, `{"version": 1}`)
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			root := t.TempDir()
			tc.prepare(t, root)

			doc := Open(configDir, root)
			if doc.Version != cacheVersion {
				t.Errorf("version = %d, want %d", doc.Version, cacheVersion)
			}
			if len(doc.Entries) != 0 {
				t.Errorf("entries = %v, want empty", doc.Entries)
			}
		})
	}
}

func writeCacheFile(t *testing.T, root, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(root, cacheFileName), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLookup_ExactHashOnly(t *testing.T) {
	doc := newDocument()
	assessment := risk.Assessment{Class: risk.ClassActive, Score: 6, Source: risk.SourceExternal}
	Store(doc, "/p/package.json", "abc123", assessment)

	if got, ok := Lookup(doc, "/p/package.json", "abc123"); !ok || got.Score != 6 {
		t.Errorf("exact match: got %+v, %v", got, ok)
	}
	if _, ok := Lookup(doc, "/p/package.json", "abc124"); ok {
		t.Error("hash drift must miss")
	}
	if _, ok := Lookup(doc, "/q/package.json", "abc123"); ok {
		t.Error("unknown path must miss")
	}
}

func TestPersistRoundTrip(t *testing.T) {
	configDir := t.TempDir()
	root := t.TempDir()

	doc := newDocument()
	Store(doc, "/p/package.json", "deadbeef", risk.Assessment{
		Class:   risk.ClassCritical,
		Score:   9,
		Reasons: []string{"Deployment config found"},
		Source:  risk.SourceExternal,
	})

	if err := Persist(configDir, root, doc); err != nil {
		t.Fatalf("Persist: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, cacheFileName)); err != nil {
		t.Fatalf("cache file not written to root: %v", err)
	}

	got := Open(configDir, root)
	entry, ok := got.Entries["/p/package.json"]
	if !ok {
		t.Fatalf("entry missing after round trip: %+v", got)
	}
	if entry.ContentHash != "deadbeef" || entry.Assessment.Score != 9 {
		t.Errorf("entry = %+v", entry)
	}
	if entry.UpdatedAt == "" {
		t.Error("UpdatedAt not stamped")
	}
}

func TestPersist_FallsBackWhenRootReadOnly(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root ignores directory permissions")
	}
	configDir := t.TempDir()
	root := t.TempDir()
	if err := os.Chmod(root, 0o555); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chmod(root, 0o755) })

	doc := newDocument()
	Store(doc, "/p/package.json", "cafe", risk.Assessment{Score: 4, Class: risk.ClassBurner, Source: risk.SourceExternal})

	if err := Persist(configDir, root, doc); err != nil {
		t.Fatalf("Persist: %v", err)
	}
	if _, err := os.Stat(fallbackCachePath(configDir, root)); err != nil {
		t.Fatalf("fallback file not written: %v", err)
	}

	got := Open(configDir, root)
	if _, ok := got.Entries["/p/package.json"]; !ok {
		t.Errorf("fallback round trip lost the entry: %+v", got)
	}
}

func TestHashFile_TracksBytes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "package.json")
	if err := os.WriteFile(path, []byte(`{"name":"a"}`), 0o644); err != nil {
		t.Fatal(err)
	}

	first, err := HashFile(path)
	if err != nil {
		t.Fatalf("HashFile: %v", err)
	}
	if len(first) != 64 {
		t.Errorf("hash length = %d, want 64", len(first))
	}

	// Semantically identical JSON with different whitespace must change the
	// fingerprint.
	if err := os.WriteFile(path, []byte(`{ "name": "a" }`), 0o644); err != nil {
		t.Fatal(err)
	}
	second, err := HashFile(path)
	if err != nil {
		t.Fatalf("HashFile: %v", err)
	}
	if first == second {
		t.Error("byte change did not change the hash")
	}

	if _, err := HashFile(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("expected an error for a missing file")
	}
}
