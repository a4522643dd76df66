package scanner

import "testing"

func TestParseManifest(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantName  string
		wantDeps  int
		wantStart bool
	}{
		{
			name:     "full manifest",
			input:    `{"name":"billing-api","dependencies":{"a":"1","b":"2"},"devDependencies":{"c":"3"}}`,
			wantName: "billing-api",
			wantDeps: 3,
		},
		{
			name:      "startup script",
			input:     `{"name":"web","scripts":{"start":"NODE_ENV=production node server.js"}}`,
			wantName:  "web",
			wantStart: true,
		},
		{
			name:      "startup keyword",
			input:     `{"name":"svc","keywords":["cli","startup"]}`,
			wantName:  "svc",
			wantStart: true,
		},
		{
			name:  "not json",
			input: `{definitely not json`,
		},
		{
			name:     "wrong field types",
			input:    `{"name":"x","dependencies":["not","a","map"],"keywords":"nope"}`,
			wantName: "x",
		},
		{
			name:  "empty object",
			input: `{}`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			facts := parseManifest([]byte(tc.input))
			if facts.Name != tc.wantName {
				t.Errorf("name = %q, want %q", facts.Name, tc.wantName)
			}
			if facts.DependencyCount != tc.wantDeps {
				t.Errorf("deps = %d, want %d", facts.DependencyCount, tc.wantDeps)
			}
			got := HasStartupSignal(facts.Name, facts.Keywords, facts.Scripts)
			if got != tc.wantStart {
				t.Errorf("startup signal = %v, want %v", got, tc.wantStart)
			}
		})
	}
}

func TestHasStartupSignal_CaseInsensitive(t *testing.T) {
	if !HasStartupSignal("My-Startup-App", nil, nil) {
		t.Error("expected startup hint in name to match")
	}
	if !HasStartupSignal("app", nil, map[string]string{"deploy": "push to PRODUCTION"}) {
		t.Error("expected startup hint in script body to match")
	}
	if HasStartupSignal("todo-list", []string{"react", "hooks"}, map[string]string{"dev": "vite"}) {
		t.Error("expected no startup signal")
	}
}
