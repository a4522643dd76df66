package risk

import (
	"math/rand"
	"testing"

	"github.com/theayoodukoya/devclean-ai/internal/scanner"
)

func TestClassifyBoundaries(t *testing.T) {
	tests := []struct {
		score int
		want  Class
	}{
		{10, ClassCritical},
		{8, ClassCritical},
		{7, ClassActive},
		{5, ClassActive},
		{4, ClassBurner},
		{0, ClassBurner},
	}

	for _, tc := range tests {
		if got := Classify(tc.score); got != tc.want {
			t.Errorf("Classify(%d) = %s, want %s", tc.score, got, tc.want)
		}
	}
}

func TestEvaluateHeuristic_RecentOnly(t *testing.T) {
	// No VCS, no env file, no startup keyword, modified 10 days ago,
	// 5 dependencies.
	meta := scanner.ProjectMeta{
		Name:             "side-project",
		DependencyCount:  5,
		LastModifiedDays: 10,
	}

	a := EvaluateHeuristic(meta)
	if a.Score != 2 {
		t.Errorf("score = %d, want 2", a.Score)
	}
	if a.Class != ClassBurner {
		t.Errorf("class = %s, want Burner", a.Class)
	}
	if len(a.Reasons) != 1 || a.Reasons[0] != "Modified within 30 days" {
		t.Errorf("reasons = %v, want [Modified within 30 days]", a.Reasons)
	}
	if a.Source != SourceHeuristic {
		t.Errorf("source = %s, want heuristic", a.Source)
	}
}

func TestEvaluateHeuristic_ClampsHigh(t *testing.T) {
	// All positive rules fire: 4+3+3+2+1 = 13, clamped to 10.
	meta := scanner.ProjectMeta{
		Name:              "prod-api",
		DependencyCount:   50,
		HasVcsMarker:      true,
		HasEnvFile:        true,
		HasStartupKeyword: true,
		LastModifiedDays:  5,
	}

	a := EvaluateHeuristic(meta)
	if a.Score != 10 {
		t.Errorf("score = %d, want 10", a.Score)
	}
	if a.Class != ClassCritical {
		t.Errorf("class = %s, want Critical", a.Class)
	}
	if len(a.Reasons) != 5 {
		t.Errorf("reasons = %v, want 5 entries", a.Reasons)
	}
}

func TestEvaluateHeuristic_ClampsLow(t *testing.T) {
	// Burner name (-2) plus inactivity (-1): raw sum -3, clamped to 0.
	meta := scanner.ProjectMeta{
		Name:             "react-tutorial",
		LastModifiedDays: 200,
	}

	a := EvaluateHeuristic(meta)
	if a.Score != 0 {
		t.Errorf("score = %d, want 0", a.Score)
	}
	if a.Class != ClassBurner {
		t.Errorf("class = %s, want Burner", a.Class)
	}

	want := map[string]bool{
		"Name matches tutorial/test patterns": false,
		"Inactive for 6+ months":              false,
	}
	for _, reason := range a.Reasons {
		if _, ok := want[reason]; ok {
			want[reason] = true
		}
	}
	for reason, found := range want {
		if !found {
			t.Errorf("reasons %v missing %q", a.Reasons, reason)
		}
	}
}

func TestEvaluateHeuristic_CacheDir(t *testing.T) {
	meta := scanner.ProjectMeta{
		Name:             "npm cache - _cacache",
		LastModifiedDays: 400,
		IsCacheDir:       true,
	}

	a := EvaluateHeuristic(meta)
	if a.Score != 0 {
		t.Errorf("score = %d, want 0", a.Score)
	}
	if a.Reasons[0] != "System cache directory" {
		t.Errorf("first reason = %q, want System cache directory", a.Reasons[0])
	}
}

func TestEvaluateHeuristic_ScoreBounds(t *testing.T) {
	// Every combination of inputs must land in [0, 10].
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		meta := scanner.ProjectMeta{
			Name:              []string{"app", "my-test", "tutorial-x", "prod"}[rng.Intn(4)],
			DependencyCount:   rng.Intn(120),
			HasVcsMarker:      rng.Intn(2) == 0,
			HasEnvFile:        rng.Intn(2) == 0,
			HasStartupKeyword: rng.Intn(2) == 0,
			LastModifiedDays:  rng.Intn(1000),
			IsCacheDir:        rng.Intn(4) == 0,
		}
		a := EvaluateHeuristic(meta)
		if a.Score < 0 || a.Score > 10 {
			t.Fatalf("score %d out of bounds for %+v", a.Score, meta)
		}
		if a.Class != Classify(a.Score) {
			t.Fatalf("class %s does not match Classify(%d)", a.Class, a.Score)
		}
	}
}

func TestMerge_NilExternalIsIdentity(t *testing.T) {
	heuristics := []Assessment{
		{Class: ClassBurner, Score: 2, Reasons: []string{"Modified within 30 days"}, Source: SourceHeuristic},
		{Class: ClassCritical, Score: 10, Reasons: nil, Source: SourceHeuristic},
		{Class: ClassActive, Score: 5, Reasons: []string{"a", "b"}, Source: SourceHeuristic},
	}

	for _, h := range heuristics {
		got := Merge(h, nil)
		if got.Score != h.Score || got.Class != h.Class || got.Source != SourceHeuristic {
			t.Errorf("Merge(%+v, nil) = %+v, want unchanged", h, got)
		}
		if len(got.Reasons) != len(h.Reasons) {
			t.Errorf("Merge(%+v, nil) changed reasons: %v", h, got.Reasons)
		}
	}
}

func TestMerge_AveragesAndCombines(t *testing.T) {
	h := Assessment{Class: ClassBurner, Score: 3, Reasons: []string{"Modified within 30 days"}, Source: SourceHeuristic}
	e := Assessment{Class: ClassCritical, Score: 8, Reasons: []string{"Deployment config found", "Modified within 30 days"}, Source: SourceExternal}

	got := Merge(h, &e)

	// (3+8)/2 = 5.5, rounds to 6.
	if got.Score != 6 {
		t.Errorf("score = %d, want 6", got.Score)
	}
	if got.Class != ClassActive {
		t.Errorf("class = %s, want Active", got.Class)
	}
	if got.Source != SourceCombined {
		t.Errorf("source = %s, want combined", got.Source)
	}

	want := []string{"Modified within 30 days", "Deployment config found"}
	if len(got.Reasons) != len(want) {
		t.Fatalf("reasons = %v, want %v", got.Reasons, want)
	}
	for i, reason := range want {
		if got.Reasons[i] != reason {
			t.Errorf("reasons[%d] = %q, want %q", i, got.Reasons[i], reason)
		}
	}
}

func TestIsBurnerName(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"react-Tutorial-app", true},
		{"my-test-bed", true},
		{"BOILERPLATE", true},
		{"example-repo", true},
		{"code-sample", true},
		{"billing-service", false},
		{"", false},
	}

	for _, tc := range tests {
		if got := IsBurnerName(tc.name); got != tc.want {
			t.Errorf("IsBurnerName(%q) = %v, want %v", tc.name, got, tc.want)
		}
	}
}
