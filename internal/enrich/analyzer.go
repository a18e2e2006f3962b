// Package enrich attaches structured analysis to free-text expected-result
// fields. The capability is injected so tests can substitute a deterministic
// stub, and it is fail-soft: unavailability of a result is valid and must
// never abort the larger pipeline.
package enrich

import (
	"context"
	"errors"

	"github.com/harrison/testforge/internal/models"
)

// ErrUnavailable reports that the analyzer could not produce a result for a
// text. Callers treat it as "no analysis attached", never as a pipeline
// failure.
var ErrUnavailable = errors.New("analysis unavailable")

// Analyzer maps one free-text field to a structured analysis result.
type Analyzer interface {
	Analyze(ctx context.Context, text string) (*models.Analysis, error)
}

// Noop is an Analyzer that never produces a result. It is the default when
// enrichment is disabled or unconfigured.
type Noop struct{}

// Analyze always reports ErrUnavailable.
func (Noop) Analyze(ctx context.Context, text string) (*models.Analysis, error) {
	return nil, ErrUnavailable
}

// EnrichGroups analyzes the expected-result text of every test case,
// sequentially, one call per text field. Each call is independently
// fail-soft: on any error the case simply keeps a nil Analysis.
func EnrichGroups(ctx context.Context, analyzer Analyzer, groups *models.GroupSet) {
	if analyzer == nil {
		return
	}
	for _, g := range groups.Ordered() {
		for i := range g.Tests {
			if g.Tests[i].Expected == "" {
				continue
			}
			analysis, err := analyzer.Analyze(ctx, g.Tests[i].Expected)
			if err != nil {
				continue
			}
			g.Tests[i].Analysis = analysis
		}
	}
}
