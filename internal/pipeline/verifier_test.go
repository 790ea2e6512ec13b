package pipeline

import (
	"context"
	"testing"

	"github.com/factlens/factlens/internal/extract"
	"github.com/factlens/factlens/internal/kg"
	"github.com/factlens/factlens/internal/model"
	"github.com/factlens/factlens/internal/verdict"
)

func demoGraph() *kg.Graph {
	return kg.New(
		[]model.Entity{
			{ID: "ent_nwb", Name: "Northwind Weather Bureau", Type: "organization", Aliases: []string{"NWB", "Weather Bureau"}},
			{ID: "ent_lakeside_city", Name: "Lakeside City", Type: "location", Aliases: []string{"Lakeside"}},
			{ID: "ent_lmr", Name: "Lakeside Metro Rail", Type: "organization", Aliases: []string{"LMR"}},
		},
		[]model.Source{
			{ID: "src_nwb_bulletin", Title: "Severe Weather Bulletin", Publisher: "Northwind Weather Bureau", PublishedAt: "2023-03-21"},
			{ID: "src_lmr_notice", Title: "Service Notice", Publisher: "Lakeside Metro Rail", PublishedAt: "2023-03-21"},
			{ID: "src_nwb_faq", Title: "About the Bureau", Publisher: "Northwind Weather Bureau", PublishedAt: "2022-11-02"},
		},
		[]model.Fact{
			{
				ID:                verdict.FactAmberWarning,
				SubjectEntityID:   "ent_nwb",
				Predicate:         "issued_weather_warning",
				ObjectLabel:       "Amber Rain Warning for Lakeside City",
				ObjectType:        "weather_warning",
				Date:              "2023-03-21",
				Severity:          "amber",
				LocationEntityIDs: []string{"ent_lakeside_city"},
				EvidenceSnippet:   "On 21 March 2023 the Northwind Weather Bureau issued an amber rain warning for Lakeside City.",
				SourceID:          "src_nwb_bulletin",
			},
			{
				ID:                verdict.FactMetroNormal,
				SubjectEntityID:   "ent_lmr",
				Predicate:         "service_status",
				ObjectLabel:       "All lines operating on a normal weekday schedule",
				ObjectType:        "service_status",
				Date:              "2023-03-21",
				LocationEntityIDs: []string{"ent_lakeside_city"},
				EvidenceSnippet:   "Lakeside Metro Rail confirmed that all lines will operate on a normal weekday schedule and that no full network shutdown is planned.",
				SourceID:          "src_lmr_notice",
			},
			{
				ID:              verdict.FactNWBNoTransport,
				SubjectEntityID: "ent_nwb",
				Predicate:       "organizational_role",
				ObjectLabel:     "Does not make public transport operating decisions",
				ObjectType:      "role_clarification",
				EvidenceSnippet: "The Northwind Weather Bureau issues weather warnings only and does not announce closures of the metro or other public transport.",
				SourceID:        "src_nwb_faq",
			},
		},
	)
}

func ruleVerifier(opts Options) *Verifier {
	return NewVerifier(demoGraph(), extract.PatternExtractor{}, verdict.NewRuleAssessor(), opts)
}

func TestVerify_EmptyText(t *testing.T) {
	v := ruleVerifier(Options{})

	result := v.Verify(context.Background(), "   \n ")

	if result.Claim != "" {
		t.Errorf("Expected empty claim, got %q", result.Claim)
	}
	if result.Verdict != model.VerdictUnverifiable {
		t.Errorf("Expected Unverifiable, got %s", result.Verdict)
	}
	if result.Confidence != 0.5 {
		t.Errorf("Expected confidence 0.5, got %f", result.Confidence)
	}
	if result.Citations == nil || len(result.Citations) != 0 {
		t.Errorf("Expected empty (non-nil) citations, got %v", result.Citations)
	}
	if result.Reasoning != "No text was provided to verify." {
		t.Errorf("Unexpected reasoning: %q", result.Reasoning)
	}
}

type nilExtractor struct{}

func (nilExtractor) Extract(context.Context, string) []string { return nil }

func TestVerify_NoClaims(t *testing.T) {
	v := NewVerifier(demoGraph(), nilExtractor{}, verdict.NewRuleAssessor(), Options{})

	result := v.Verify(context.Background(), "some text")

	if result.Verdict != model.VerdictUnverifiable {
		t.Errorf("Expected Unverifiable, got %s", result.Verdict)
	}
	if result.Reasoning != "No verifiable factual claim found in the text." {
		t.Errorf("Unexpected reasoning: %q", result.Reasoning)
	}
}

func TestVerify_AmberWarningScenario(t *testing.T) {
	v := ruleVerifier(Options{})
	text := "The Northwind Weather Bureau issued an Amber Rain Warning for Lakeside City on 21 March 2023."

	result := v.Verify(context.Background(), text)

	if result.Claim != text {
		t.Errorf("Expected claim to be the whole text, got %q", result.Claim)
	}
	if result.Verdict != model.VerdictTrue {
		t.Errorf("Expected True, got %s", result.Verdict)
	}
	if result.Confidence != 0.95 {
		t.Errorf("Expected confidence 0.95, got %f", result.Confidence)
	}
	if len(result.Citations) != 1 {
		t.Fatalf("Expected 1 citation, got %d", len(result.Citations))
	}
	if result.Citations[0].FactID != verdict.FactAmberWarning {
		t.Errorf("Expected amber fact citation, got %s", result.Citations[0].FactID)
	}
	if result.Citations[0].SourceID != "src_nwb_bulletin" {
		t.Errorf("Expected source re-resolved from the graph, got %s", result.Citations[0].SourceID)
	}
}

func TestVerify_MetroNormalScenario(t *testing.T) {
	v := ruleVerifier(Options{})
	text := "Lakeside Metro Rail says all lines will operate on a normal weekday schedule, with no full network shutdown."

	result := v.Verify(context.Background(), text)

	if result.Verdict != model.VerdictTrue {
		t.Errorf("Expected True, got %s", result.Verdict)
	}
	if len(result.Citations) != 1 || result.Citations[0].FactID != verdict.FactMetroNormal {
		t.Errorf("Expected metro citation, got %v", result.Citations)
	}
}

func TestVerify_CancellationRumorScenario(t *testing.T) {
	v := ruleVerifier(Options{})
	text := "BREAKING: all Lakeside Metro Rail services are cancelled tomorrow because the Northwind Weather Bureau said the metro will not run!"

	result := v.Verify(context.Background(), text)

	if result.Verdict != model.VerdictPartlyTrue {
		t.Errorf("Expected Partly True, got %s", result.Verdict)
	}
	if result.Confidence != 0.9 {
		t.Errorf("Expected confidence 0.9, got %f", result.Confidence)
	}

	wantOrder := []struct{ factID, sourceID string }{
		{verdict.FactAmberWarning, "src_nwb_bulletin"},
		{verdict.FactMetroNormal, "src_lmr_notice"},
		{verdict.FactNWBNoTransport, "src_nwb_faq"},
	}
	if len(result.Citations) != len(wantOrder) {
		t.Fatalf("Expected %d citations, got %d", len(wantOrder), len(result.Citations))
	}
	for i, want := range wantOrder {
		if result.Citations[i].FactID != want.factID || result.Citations[i].SourceID != want.sourceID {
			t.Errorf("Citation %d: expected %s/%s, got %s/%s",
				i, want.factID, want.sourceID, result.Citations[i].FactID, result.Citations[i].SourceID)
		}
	}
}

func TestVerify_UnknownClaimFallsThrough(t *testing.T) {
	v := ruleVerifier(Options{})

	result := v.Verify(context.Background(), "The moon is made of cheese.")

	if result.Verdict != model.VerdictUnverifiable {
		t.Errorf("Expected Unverifiable, got %s", result.Verdict)
	}
	if result.Confidence != 0.5 {
		t.Errorf("Expected confidence 0.5, got %f", result.Confidence)
	}
}

func TestVerify_RequireEvidenceShortCircuits(t *testing.T) {
	v := ruleVerifier(Options{RequireEvidence: true})
	text := "Absolutely nothing matching any stored snippet whatsoever."

	result := v.Verify(context.Background(), text)

	if result.Verdict != model.VerdictUnverifiable {
		t.Errorf("Expected Unverifiable, got %s", result.Verdict)
	}
	if result.Reasoning != "No relevant evidence was found in the knowledge graph." {
		t.Errorf("Unexpected reasoning: %q", result.Reasoning)
	}
	if result.Claim != text {
		t.Errorf("Expected claim carried into the terminal result, got %q", result.Claim)
	}
}

func TestVerify_WithoutRequireEvidenceRulesStillRun(t *testing.T) {
	v := ruleVerifier(Options{RequireEvidence: false})

	result := v.Verify(context.Background(), "Absolutely nothing matching any stored snippet whatsoever.")

	if result.Reasoning != "The claim does not match any known patterns in this knowledge graph." {
		t.Errorf("Expected the assessor's default branch, got %q", result.Reasoning)
	}
}

type fixedAssessor struct {
	assessment model.Assessment
}

func (a fixedAssessor) Assess(context.Context, string, []model.Evidence) model.Assessment {
	return a.assessment
}

func TestVerify_DropsCitationsUnknownToGraph(t *testing.T) {
	assessor := fixedAssessor{assessment: model.Assessment{
		Verdict:    model.VerdictTrue,
		Confidence: 0.9,
		Citations:  []string{verdict.FactAmberWarning, "fact_invented"},
		Reasoning:  "r",
	}}
	v := NewVerifier(demoGraph(), extract.PatternExtractor{}, assessor, Options{})

	result := v.Verify(context.Background(), "Northwind Weather Bureau amber rain warning Lakeside City")

	if len(result.Citations) != 1 {
		t.Fatalf("Expected unknown citation dropped, got %v", result.Citations)
	}
	if result.Citations[0].FactID != verdict.FactAmberWarning {
		t.Errorf("Expected known citation kept, got %s", result.Citations[0].FactID)
	}
}
