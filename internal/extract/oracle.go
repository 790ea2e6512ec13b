package extract

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/factlens/factlens/internal/oracle"
)

// extractSystem instructs the oracle to return verbatim claim
// substrings as a bare JSON array. The "whole text when uncertain"
// rule keeps downstream behavior close to the pattern strategy.
const extractSystem = `You isolate factual claims from social media posts.

Return ONLY a JSON array of strings. Each string must be a verbatim substring of the input text containing a checkable factual assertion. Order the claims by importance, most important first.

Rules:
- If you are uncertain how to segment the text, return the whole text as a single claim.
- Return an empty array [] only if the text contains no factual assertion at all.
- Do not paraphrase, translate, or add commentary.`

// OracleExtractor asks the external reasoning oracle to segment the
// text into claims, degrading to the local sentence heuristic when the
// oracle fails or replies with garbage. Oracle errors never propagate.
type OracleExtractor struct {
	client oracle.Client
}

// NewOracleExtractor creates an oracle-assisted claim extractor.
func NewOracleExtractor(client oracle.Client) *OracleExtractor {
	return &OracleExtractor{client: client}
}

// Extract implements Extractor.
func (e *OracleExtractor) Extract(ctx context.Context, text string) []string {
	t := strings.TrimSpace(normalizeInput(text))
	if t == "" {
		return nil
	}

	reply, err := e.client.Complete(ctx, oracle.Request{
		System: extractSystem,
		Prompt: t,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "claim extraction oracle failed, using heuristic: %v\n", err)
		return heuristicClaims(t)
	}

	claims, err := decodeClaims(reply)
	if err != nil {
		fmt.Fprintf(os.Stderr, "claim extraction reply unparseable, using heuristic: %v\n", err)
		return heuristicClaims(t)
	}

	// An explicit empty array means the oracle found nothing checkable.
	return claims
}
