// Package pipeline sequences the verification steps for a single
// request: claim extraction, entity linking, evidence search, verdict
// assessment, and result assembly.
package pipeline

import (
	"context"
	"strings"

	"github.com/factlens/factlens/internal/extract"
	"github.com/factlens/factlens/internal/kg"
	"github.com/factlens/factlens/internal/link"
	"github.com/factlens/factlens/internal/model"
	"github.com/factlens/factlens/internal/search"
	"github.com/factlens/factlens/internal/verdict"
)

// Options tunes a Verifier.
type Options struct {
	// TopK bounds the evidence set per claim; 0 uses search.DefaultTopK.
	TopK int

	// RequireEvidence short-circuits to Unverifiable when search finds
	// nothing. Leave false for the rule-based assessor, which carries
	// its own default branch and is meant to run even with empty
	// evidence.
	RequireEvidence bool
}

// Verifier runs the whole pipeline for one request. It holds only
// read-only state (the graph and its indexes), so a single Verifier
// serves arbitrarily many concurrent requests without locking.
type Verifier struct {
	graph     *kg.Graph
	linker    *link.Linker
	engine    *search.Engine
	extractor extract.Extractor
	assessor  verdict.Assessor
	opts      Options
}

// NewVerifier wires a verifier from its injected stages.
func NewVerifier(graph *kg.Graph, extractor extract.Extractor, assessor verdict.Assessor, opts Options) *Verifier {
	if opts.TopK <= 0 {
		opts.TopK = search.DefaultTopK
	}
	return &Verifier{
		graph:     graph,
		linker:    link.New(graph),
		engine:    search.New(graph),
		extractor: extractor,
		assessor:  assessor,
		opts:      opts,
	}
}

// Verify runs text through the pipeline and always returns a
// well-formed result. Every failure mode past transport has a defined
// terminal Unverifiable shape; nothing here returns an error.
func (v *Verifier) Verify(ctx context.Context, text string) *model.VerificationResult {
	if strings.TrimSpace(text) == "" {
		return terminal("", "No text was provided to verify.")
	}

	claims := v.extractor.Extract(ctx, text)
	if len(claims) == 0 {
		return terminal("", "No verifiable factual claim found in the text.")
	}
	claim := claims[0]

	entityIDs := v.linker.Link(claim)
	evidence := v.engine.Search(claim, entityIDs, v.opts.TopK)
	if len(evidence) == 0 && v.opts.RequireEvidence {
		return terminal(claim, "No relevant evidence was found in the knowledge graph.")
	}

	assessment := v.assessor.Assess(ctx, claim, evidence)

	// Re-resolve citations against the graph to attach source ids.
	// Unknown fact ids are dropped here even if the assessor let them
	// through.
	citations := make([]model.Citation, 0, len(assessment.Citations))
	for _, factID := range assessment.Citations {
		fact := v.graph.Fact(factID)
		if fact == nil {
			continue
		}
		citations = append(citations, model.Citation{FactID: factID, SourceID: fact.SourceID})
	}

	return &model.VerificationResult{
		Claim:      claim,
		Verdict:    assessment.Verdict,
		Confidence: assessment.Confidence,
		Citations:  citations,
		Reasoning:  assessment.Reasoning,
	}
}

// terminal is the Unverifiable-shaped result used by the pipeline's
// short-circuit states.
func terminal(claim, reasoning string) *model.VerificationResult {
	return &model.VerificationResult{
		Claim:      claim,
		Verdict:    model.VerdictUnverifiable,
		Confidence: 0.5,
		Citations:  []model.Citation{},
		Reasoning:  reasoning,
	}
}
