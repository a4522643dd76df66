package scanner

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
)

// startupHints are matched case-insensitively against the manifest name,
// keywords and script bodies.
var startupHints = []string{"startup", "production", "prod"}

// manifestFacts is the best-effort structured view of a package.json.
// Malformed or missing fields decode to zero values; parsing never fails.
type manifestFacts struct {
	Name            string
	Keywords        []string
	Scripts         map[string]string
	DependencyCount int
}

// dependencyFields are the manifest keys whose entries count toward
// DependencyCount.
var dependencyFields = []string{
	"dependencies",
	"devDependencies",
	"peerDependencies",
	"optionalDependencies",
}

// parseManifest decodes the raw manifest bytes field by field. A manifest
// that is not a JSON object at all yields empty facts.
func parseManifest(data []byte) manifestFacts {
	var facts manifestFacts

	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return facts
	}

	if raw, ok := top["name"]; ok {
		var name string
		if err := json.Unmarshal(raw, &name); err == nil {
			facts.Name = strings.TrimSpace(name)
		}
	}

	if raw, ok := top["keywords"]; ok {
		var keywords []string
		if err := json.Unmarshal(raw, &keywords); err == nil {
			facts.Keywords = keywords
		}
	}

	if raw, ok := top["scripts"]; ok {
		var scripts map[string]string
		if err := json.Unmarshal(raw, &scripts); err == nil {
			facts.Scripts = scripts
		}
	}

	for _, field := range dependencyFields {
		raw, ok := top[field]
		if !ok {
			continue
		}
		var deps map[string]json.RawMessage
		if err := json.Unmarshal(raw, &deps); err == nil {
			facts.DependencyCount += len(deps)
		}
	}

	return facts
}

// readManifest loads and parses a manifest file. Read failures are treated
// the same as malformed content: empty facts.
func readManifest(path string) manifestFacts {
	data, err := os.ReadFile(path)
	if err != nil {
		return manifestFacts{}
	}
	return parseManifest(data)
}

// HasStartupSignal reports whether any startup hint appears in the name,
// keywords or script bodies, case-insensitively.
func HasStartupSignal(name string, keywords []string, scripts map[string]string) bool {
	nameText := strings.ToLower(name)
	keywordText := strings.ToLower(strings.Join(keywords, " "))

	var sb strings.Builder
	for _, body := range scripts {
		sb.WriteString(body)
		sb.WriteString(" ")
	}
	scriptText := strings.ToLower(sb.String())

	for _, hint := range startupHints {
		if strings.Contains(nameText, hint) ||
			strings.Contains(keywordText, hint) ||
			strings.Contains(scriptText, hint) {
			return true
		}
	}
	return false
}

// hasEnvFile checks the project root (shallow, no recursion) for files whose
// name starts with ".env".
func hasEnvFile(dir string) bool {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false
	}
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasPrefix(entry.Name(), ".env") {
			return true
		}
	}
	return false
}

// hasVcsMarker checks for a .git directory in the project root.
func hasVcsMarker(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, ".git"))
	return err == nil && info.IsDir()
}
