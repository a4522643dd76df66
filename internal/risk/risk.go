// Package risk scores how safe a discovered project is to delete. All
// functions are pure; the external judgment signal is merged in by the
// assess package.
package risk

import (
	"strings"

	"github.com/theayoodukoya/devclean-ai/internal/scanner"
)

// Class buckets a score into a deletion-safety tier.
type Class string

const (
	// ClassCritical marks projects protected by strong signals (score 8-10).
	ClassCritical Class = "Critical"

	// ClassActive marks projects likely in use (score 5-7).
	ClassActive Class = "Active"

	// ClassBurner marks projects that look safely deletable (score 0-4).
	ClassBurner Class = "Burner"
)

// Source records which signal produced an assessment.
type Source string

const (
	SourceHeuristic Source = "heuristic"
	SourceExternal  Source = "external"
	SourceCombined  Source = "combined"
)

// Assessment is the scored judgment attached to a project.
type Assessment struct {
	// Class is always Classify(Score), never set independently.
	Class Class `json:"class"`

	// Score is clamped to [0, 10].
	Score int `json:"score"`

	// Reasons are human-readable tags in insertion order, de-duplicated.
	Reasons []string `json:"reasons"`

	Source Source `json:"source"`
}

// burnerHints flag throwaway-looking project names.
var burnerHints = []string{"tutorial", "test", "boilerplate", "example", "sample"}

// Classify maps a score to its class. Boundaries are inclusive at 8 and 5.
func Classify(score int) Class {
	switch {
	case score >= 8:
		return ClassCritical
	case score >= 5:
		return ClassActive
	default:
		return ClassBurner
	}
}

// Clamp bounds a raw score sum to [0, 10].
func Clamp(score int) int {
	if score < 0 {
		return 0
	}
	if score > 10 {
		return 10
	}
	return score
}

// EvaluateHeuristic applies every rule independently, accumulates deltas and
// reason tags, and clamps the sum once at the end.
func EvaluateHeuristic(meta scanner.ProjectMeta) Assessment {
	score := 0
	var reasons []string

	if meta.IsCacheDir {
		score -= 4
		reasons = append(reasons, "System cache directory")
	}
	if meta.HasVcsMarker {
		score += 4
		reasons = append(reasons, "Git history detected")
	}
	if meta.HasEnvFile {
		score += 3
		reasons = append(reasons, "Environment file present")
	}
	if meta.HasStartupKeyword {
		score += 3
		reasons = append(reasons, "Startup keywords in package.json")
	}
	if meta.LastModifiedDays <= 30 {
		score += 2
		reasons = append(reasons, "Modified within 30 days")
	}
	if meta.DependencyCount >= 40 {
		score += 1
		reasons = append(reasons, "High dependency count")
	}
	if IsBurnerName(meta.Name) {
		score -= 2
		reasons = append(reasons, "Name matches tutorial/test patterns")
	}
	if meta.LastModifiedDays >= 180 {
		score -= 1
		reasons = append(reasons, "Inactive for 6+ months")
	}

	score = Clamp(score)
	return Assessment{
		Class:   Classify(score),
		Score:   score,
		Reasons: reasons,
		Source:  SourceHeuristic,
	}
}

// Merge combines a heuristic assessment with an optional external one. A nil
// external signal returns the heuristic unchanged. Otherwise the score is
// the rounded average, reasons are the union (heuristic first), and the
// source becomes combined.
func Merge(heuristic Assessment, external *Assessment) Assessment {
	if external == nil {
		return heuristic
	}

	score := Clamp((heuristic.Score + external.Score + 1) / 2)

	reasons := make([]string, 0, len(heuristic.Reasons)+len(external.Reasons))
	seen := make(map[string]struct{})
	for _, list := range [][]string{heuristic.Reasons, external.Reasons} {
		for _, reason := range list {
			if _, dup := seen[reason]; dup {
				continue
			}
			seen[reason] = struct{}{}
			reasons = append(reasons, reason)
		}
	}

	return Assessment{
		Class:   Classify(score),
		Score:   score,
		Reasons: reasons,
		Source:  SourceCombined,
	}
}

// IsBurnerName reports whether the project name contains a throwaway hint,
// case-insensitively.
func IsBurnerName(name string) bool {
	lowered := strings.ToLower(name)
	for _, hint := range burnerHints {
		if strings.Contains(lowered, hint) {
			return true
		}
	}
	return false
}
