package assess

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/theayoodukoya/devclean-ai/internal/risk"
	"github.com/theayoodukoya/devclean-ai/internal/scanner"
)

// Classifier is the external judgment capability. Any error is interpreted
// uniformly as "no external signal" and degrades that one project to
// heuristic-only scoring.
type Classifier interface {
	Classify(ctx context.Context, meta scanner.ProjectMeta, contentHash string) (risk.Assessment, error)
}

// Record pairs a project's facts with its merged assessment.
type Record struct {
	Meta scanner.ProjectMeta `json:"meta"`
	Risk risk.Assessment     `json:"risk"`
}

// Stats counts cache and classifier activity over one scan session.
type Stats struct {
	CacheHits   int `json:"cache_hits"`
	CacheMisses int `json:"cache_misses"`
	Calls       int `json:"calls"`
}

// Assessor runs the risk pipeline for one scan session. A nil Classifier
// means heuristic-only scoring and no cache traffic.
type Assessor struct {
	// Classifier is the optional external judgment source.
	Classifier Classifier

	// ConfigDir anchors the fallback cache location for read-only roots.
	ConfigDir string

	// Workers bounds concurrent classifier calls. Zero means 4: external
	// calls are the expensive leg, so the cap is tighter than the scan's.
	Workers int
}

// AssessAll scores every project. Classifier calls run concurrently under a
// bounded group; one call's failure never blocks or cancels the others. The
// cache document is read once at the start and persisted once at the end.
func (a *Assessor) AssessAll(ctx context.Context, root string, metas []scanner.ProjectMeta) ([]Record, Stats) {
	records := make([]Record, len(metas))

	if a.Classifier == nil {
		for i, meta := range metas {
			records[i] = Record{Meta: meta, Risk: risk.EvaluateHeuristic(meta)}
		}
		return records, Stats{}
	}

	doc := Open(a.ConfigDir, root)
	var (
		mu    sync.Mutex
		stats Stats
	)

	workers := a.Workers
	if workers <= 0 {
		workers = 4
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, meta := range metas {
		g.Go(func() error {
			records[i] = a.assessOne(gctx, doc, meta, &mu, &stats)
			return nil
		})
	}
	_ = g.Wait()

	if err := Persist(a.ConfigDir, root, doc); err != nil {
		// Cache durability is best-effort; the scan result stands.
		_ = err
	}
	return records, stats
}

// assessOne scores a single project: heuristic always, external judgment
// from cache or a live classifier call when the project has a manifest.
func (a *Assessor) assessOne(ctx context.Context, doc Document, meta scanner.ProjectMeta, mu *sync.Mutex, stats *Stats) Record {
	heuristic := risk.EvaluateHeuristic(meta)

	// Cache directories carry no manifest to fingerprint or judge.
	if meta.IsCacheDir || meta.ManifestPath == "" {
		return Record{Meta: meta, Risk: heuristic}
	}

	hash, err := HashFile(meta.ManifestPath)
	if err != nil {
		return Record{Meta: meta, Risk: heuristic}
	}

	mu.Lock()
	cached, hit := Lookup(doc, meta.ManifestPath, hash)
	if hit {
		stats.CacheHits++
	} else {
		stats.CacheMisses++
	}
	mu.Unlock()

	if hit {
		return Record{Meta: meta, Risk: risk.Merge(heuristic, &cached)}
	}

	mu.Lock()
	stats.Calls++
	mu.Unlock()

	external, err := a.Classifier.Classify(ctx, meta, hash)
	if err != nil {
		return Record{Meta: meta, Risk: heuristic}
	}

	mu.Lock()
	Store(doc, meta.ManifestPath, hash, external)
	mu.Unlock()

	return Record{Meta: meta, Risk: risk.Merge(heuristic, &external)}
}
