// Package ai implements the external risk classifier on top of the Gemini
// API. Every failure path returns an error the assess package treats as
// "no external signal"; nothing here is fatal to a scan.
package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	genai "google.golang.org/genai"

	"github.com/theayoodukoya/devclean-ai/internal/risk"
	"github.com/theayoodukoya/devclean-ai/internal/scanner"
)

const (
	// DefaultModel balances judgment quality against per-project latency.
	DefaultModel = "gemini-2.5-flash-lite"

	callTimeout = 30 * time.Second
)

// ErrEmptyResponse is returned when the model produced no usable text.
var ErrEmptyResponse = errors.New("empty model response")

// Gemini classifies projects via the official genai client. It implements
// assess.Classifier.
type Gemini struct {
	cli   *genai.Client
	model string
}

// NewGemini builds a classifier. The API key is read from GEMINI_API_KEY
// when apiKey is empty (the genai client handles that itself).
func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}
	if model == "" {
		model = DefaultModel
	}
	return &Gemini{cli: cli, model: model}, nil
}

// classifyPrompt frames the task. The model sees project facts only, never
// file contents.
const classifyPrompt = `Assess project deletion risk for a developer storage cleanup tool.
Return JSON only, no markdown, matching: {"score": <0-10>, "reasons": ["..."]}.
Score 0 means safe to delete, 10 means critical. Give 3-5 short reasons.`

// projectFacts is the JSON input sent alongside the prompt.
type projectFacts struct {
	Name              string `json:"name"`
	Path              string `json:"path"`
	DependencyCount   int    `json:"dependency_count"`
	HasVcsMarker      bool   `json:"has_vcs_marker"`
	HasEnvFile        bool   `json:"has_env_file"`
	HasStartupKeyword bool   `json:"has_startup_keyword"`
	LastModifiedDays  int    `json:"last_modified_days"`
	SizeBytes         int64  `json:"size_bytes"`
}

// payload is the response schema expected from the model.
type payload struct {
	Score   int      `json:"score"`
	Reasons []string `json:"reasons"`
}

// Classify sends the project's facts to the model and returns an external
// assessment. The content hash identifies what was judged; it is not sent.
func (g *Gemini) Classify(ctx context.Context, meta scanner.ProjectMeta, contentHash string) (risk.Assessment, error) {
	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	facts, err := json.MarshalIndent(projectFacts{
		Name:              meta.Name,
		Path:              meta.Path,
		DependencyCount:   meta.DependencyCount,
		HasVcsMarker:      meta.HasVcsMarker,
		HasEnvFile:        meta.HasEnvFile,
		HasStartupKeyword: meta.HasStartupKeyword,
		LastModifiedDays:  meta.LastModifiedDays,
		SizeBytes:         meta.SizeBytes,
	}, "", "  ")
	if err != nil {
		return risk.Assessment{}, fmt.Errorf("encoding project facts: %w", err)
	}

	full := classifyPrompt + "\n\n[PROJECT]\n" + string(facts)
	resp, err := g.cli.Models.GenerateContent(ctx, g.model,
		[]*genai.Content{{Parts: []*genai.Part{{Text: full}}}},
		&genai.GenerateContentConfig{ResponseMIMEType: "application/json"},
	)
	if err != nil {
		return risk.Assessment{}, fmt.Errorf("gemini request: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return risk.Assessment{}, ErrEmptyResponse
	}

	return ParsePayload(resp.Candidates[0].Content.Parts[0].Text)
}

// ParsePayload decodes a model response into an external assessment. Code
// fences are stripped defensively; scores are clamped into [0, 10] and the
// class is always derived from the score.
func ParsePayload(text string) (risk.Assessment, error) {
	var p payload
	if err := json.Unmarshal([]byte(stripCodeFence(text)), &p); err != nil {
		return risk.Assessment{}, fmt.Errorf("parsing model response: %w", err)
	}

	score := risk.Clamp(p.Score)
	return risk.Assessment{
		Class:   risk.Classify(score),
		Score:   score,
		Reasons: p.Reasons,
		Source:  risk.SourceExternal,
	}, nil
}

// stripCodeFence removes a wrapping markdown fence, with or without a json
// language tag, from a model response.
func stripCodeFence(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```")
	for _, lang := range []string{"json", "JSON"} {
		trimmed = strings.TrimPrefix(trimmed, lang)
	}
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}
