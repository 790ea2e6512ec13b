package verdict

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	jsonrepair "github.com/kaptinlin/jsonrepair"

	"github.com/factlens/factlens/internal/model"
	"github.com/factlens/factlens/internal/oracle"
)

// assessSystem pins the oracle to the supplied evidence. The reply
// contract is one JSON object with exactly the four result fields;
// anything else is treated as malformed and degraded.
const assessSystem = `You are a careful fact checker. Judge the claim STRICTLY from the evidence records provided. Do not use outside knowledge.

Decompose the claim into sub-claims and check each against the evidence. Then return EXACTLY ONE JSON object, no markdown, with these fields:
- "verdict": one of "True", "False", "Partly True", "Unverifiable"
- "confidence": a number between 0 and 1
- "citations": an array of fact_id strings drawn ONLY from the evidence records
- "reasoning": a short natural-language justification referencing the evidence

If the evidence is insufficient to decide, the verdict is "Unverifiable".`

// evidenceView is the reduced, de-identified evidence record sent to
// the oracle: enough to judge, nothing internal.
type evidenceView struct {
	FactID          string `json:"fact_id"`
	Predicate       string `json:"predicate"`
	ObjectLabel     string `json:"object_label"`
	Date            string `json:"date,omitempty"`
	Severity        string `json:"severity,omitempty"`
	Subject         string `json:"subject,omitempty"`
	SourceTitle     string `json:"source_title,omitempty"`
	SourcePublisher string `json:"source_publisher,omitempty"`
	Snippet         string `json:"evidence_snippet,omitempty"`
}

// rawAssessment is the untrusted decode target for the oracle's reply.
// Pointer fields distinguish absent from zero-valued; all four are
// required.
type rawAssessment struct {
	Verdict    *string         `json:"verdict"`
	Confidence json.RawMessage `json:"confidence"`
	Citations  *[]string       `json:"citations"`
	Reasoning  *string         `json:"reasoning"`
}

// OracleAssessor delegates the verdict to the external reasoning
// oracle under strict evidence-only constraints, then validates the
// reply: citations are intersected against the evidence actually
// supplied, confidence is clamped, unknown verdicts collapse to
// Unverifiable. Transport and parse failures degrade to a fixed
// Unverifiable fallback and never surface as errors.
type OracleAssessor struct {
	client oracle.Client
}

// NewOracleAssessor creates an oracle-assisted verdict assessor.
func NewOracleAssessor(client oracle.Client) *OracleAssessor {
	return &OracleAssessor{client: client}
}

// Assess implements Assessor.
func (a *OracleAssessor) Assess(ctx context.Context, claim string, evidence []model.Evidence) model.Assessment {
	prompt, err := buildAssessPrompt(claim, evidence)
	if err != nil {
		return unverifiable(0.5, "The evidence could not be prepared for assessment.")
	}

	reply, err := a.client.Complete(ctx, oracle.Request{
		System: assessSystem,
		Prompt: prompt,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "verdict oracle failed: %v\n", err)
		return unverifiable(0.5, "The reasoning service could not be reached, so the claim could not be assessed against the evidence.")
	}

	raw, err := decodeAssessment(reply)
	if err != nil {
		fmt.Fprintf(os.Stderr, "verdict reply unparseable: %v\n", err)
		return unverifiable(0.5, "The reasoning service returned an unusable reply, so the claim could not be assessed against the evidence.")
	}

	return sanitize(raw, evidence)
}

func buildAssessPrompt(claim string, evidence []model.Evidence) (string, error) {
	views := make([]evidenceView, 0, len(evidence))
	for _, e := range evidence {
		v := evidenceView{
			FactID:      e.FactID,
			Predicate:   e.Predicate,
			ObjectLabel: e.ObjectLabel,
			Date:        e.Date,
			Severity:    e.Severity,
			Snippet:     e.Snippet,
		}
		if e.Subject != nil {
			v.Subject = e.Subject.Name
		}
		if e.Source != nil {
			v.SourceTitle = e.Source.Title
			v.SourcePublisher = e.Source.Publisher
		}
		views = append(views, v)
	}

	encoded, err := json.MarshalIndent(views, "", "  ")
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("Claim:\n%s\n\nEvidence records:\n%s", claim, encoded), nil
}

// decodeAssessment parses the reply as a single JSON object with all
// four required fields, attempting one JSON repair before giving up.
func decodeAssessment(reply string) (*rawAssessment, error) {
	text := stripFence(reply)

	var raw rawAssessment
	err := json.Unmarshal([]byte(text), &raw)
	if err != nil {
		repaired, repairErr := jsonrepair.JSONRepair(text)
		if repairErr != nil {
			return nil, err
		}
		if err = json.Unmarshal([]byte(repaired), &raw); err != nil {
			return nil, err
		}
	}

	switch {
	case raw.Verdict == nil:
		return nil, fmt.Errorf("missing required field %q", "verdict")
	case len(raw.Confidence) == 0:
		return nil, fmt.Errorf("missing required field %q", "confidence")
	case raw.Citations == nil:
		return nil, fmt.Errorf("missing required field %q", "citations")
	case raw.Reasoning == nil:
		return nil, fmt.Errorf("missing required field %q", "reasoning")
	}

	return &raw, nil
}

// sanitize converts the untrusted reply into a well-formed assessment:
// verdict normalized, confidence clamped into [0,1] (0.5 when not
// numeric), and citations filtered to fact ids actually present in the
// supplied evidence. Citations outside the evidence set are dropped
// silently, never trusted verbatim from the oracle.
func sanitize(raw *rawAssessment, evidence []model.Evidence) model.Assessment {
	confidence := 0.5
	var parsed float64
	if err := json.Unmarshal(raw.Confidence, &parsed); err == nil {
		confidence = clamp(parsed)
	}

	have := factIDSet(evidence)
	citations := []string{}
	seen := make(map[string]struct{})
	for _, id := range *raw.Citations {
		if _, ok := have[id]; !ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		citations = append(citations, id)
	}

	return model.Assessment{
		Verdict:    model.ParseVerdict(*raw.Verdict),
		Confidence: confidence,
		Citations:  citations,
		Reasoning:  strings.TrimSpace(*raw.Reasoning),
	}
}

func clamp(f float64) float64 {
	switch {
	case f < 0:
		return 0
	case f > 1:
		return 1
	default:
		return f
	}
}

// stripFence removes a surrounding markdown code fence from the reply.
func stripFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 && !strings.HasPrefix(s, "{") && !strings.HasPrefix(s, "[") {
		s = s[i+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
