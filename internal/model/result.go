package model

import "strings"

// Verdict is the outcome of assessing a single claim.
type Verdict string

const (
	VerdictTrue         Verdict = "True"
	VerdictFalse        Verdict = "False"
	VerdictPartlyTrue   Verdict = "Partly True"
	VerdictUnverifiable Verdict = "Unverifiable"
)

// ParseVerdict maps free-form verdict text onto a known Verdict.
// Anything unrecognized collapses to Unverifiable.
func ParseVerdict(s string) Verdict {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true":
		return VerdictTrue
	case "false":
		return VerdictFalse
	case "partly true", "partly_true", "partially true":
		return VerdictPartlyTrue
	default:
		return VerdictUnverifiable
	}
}

// Assessment is what a verdict assessor produces for one claim.
// Citations are fact ids and must be a subset of the evidence the
// assessor was given.
type Assessment struct {
	Verdict    Verdict  `json:"verdict"`
	Confidence float64  `json:"confidence"`
	Citations  []string `json:"citations"`
	Reasoning  string   `json:"reasoning"`
}

// Citation links a cited fact to the source it is attributed to.
type Citation struct {
	FactID   string `json:"fact_id"`
	SourceID string `json:"source_id"`
}

// VerificationResult is the final answer for one verification request.
// Immutable once assembled.
type VerificationResult struct {
	Claim      string     `json:"claim"`
	Verdict    Verdict    `json:"verdict"`
	Confidence float64    `json:"confidence"`
	Citations  []Citation `json:"citations"`
	Reasoning  string     `json:"reasoning"`
}
