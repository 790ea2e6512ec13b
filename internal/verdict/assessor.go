// Package verdict decides a verdict, confidence, citations and
// reasoning for a single claim from its retrieved evidence.
package verdict

import (
	"context"

	"github.com/factlens/factlens/internal/model"
)

// Assessor judges one claim against the evidence it is handed. Every
// citation in the returned assessment references a fact id present in
// that evidence, never the wider knowledge graph. Assessment never
// fails: all failure modes collapse to an Unverifiable result.
type Assessor interface {
	Assess(ctx context.Context, claim string, evidence []model.Evidence) model.Assessment
}

// factIDSet indexes the evidence list for has-fact membership tests.
func factIDSet(evidence []model.Evidence) map[string]struct{} {
	set := make(map[string]struct{}, len(evidence))
	for _, e := range evidence {
		set[e.FactID] = struct{}{}
	}
	return set
}

// unverifiable builds the stock degraded assessment.
func unverifiable(confidence float64, reasoning string) model.Assessment {
	return model.Assessment{
		Verdict:    model.VerdictUnverifiable,
		Confidence: confidence,
		Citations:  []string{},
		Reasoning:  reasoning,
	}
}
