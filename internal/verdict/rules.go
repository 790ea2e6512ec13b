package verdict

import (
	"context"
	"strings"

	"github.com/factlens/factlens/internal/model"
)

// Fact ids the demo rules check for. These name facts in the bundled
// knowledge graph; the rules only ever test them against the evidence
// list they are handed.
const (
	FactAmberWarning   = "fact_nwb_amber_lakeside_2023_03_21"
	FactMetroNormal    = "fact_lmr_operational_2023_03_21"
	FactNWBNoTransport = "fact_nwb_no_transport_decisions"
)

// Rule maps a claim phrasing onto a fixed outcome backed by named
// facts. Rules are evaluated in order and the first phrase match wins;
// the Supported outcome applies only when every required fact is
// present in the evidence, otherwise Unsupported applies.
type Rule struct {
	Name string

	// Match tests the lower-cased claim.
	Match func(claim string) bool

	// Requires lists the fact ids that must all appear in the evidence.
	Requires []string

	Supported   model.Assessment
	Unsupported model.Assessment
}

// RuleAssessor is the closed-world, fully deterministic strategy: a
// small ordered rule list over known claim phrasings, with a fixed
// default for anything it does not recognize. It is stateless and
// needs no oracle.
type RuleAssessor struct {
	rules []Rule
}

// NewRuleAssessor creates a rule assessor with the built-in demo rules.
func NewRuleAssessor() *RuleAssessor {
	return &RuleAssessor{rules: demoRules()}
}

// NewRuleAssessorWith creates a rule assessor over a custom rule list.
func NewRuleAssessorWith(rules []Rule) *RuleAssessor {
	return &RuleAssessor{rules: rules}
}

// Assess implements Assessor.
func (a *RuleAssessor) Assess(_ context.Context, claim string, evidence []model.Evidence) model.Assessment {
	lower := strings.ToLower(claim)
	have := factIDSet(evidence)

	for _, rule := range a.rules {
		if !rule.Match(lower) {
			continue
		}
		for _, id := range rule.Requires {
			if _, ok := have[id]; !ok {
				return rule.Unsupported
			}
		}
		return rule.Supported
	}

	return unverifiable(0.5, "The claim does not match any known patterns in this knowledge graph.")
}

func containsAll(claim string, phrases ...string) bool {
	for _, p := range phrases {
		if !strings.Contains(claim, p) {
			return false
		}
	}
	return true
}

func containsAny(claim string, phrases ...string) bool {
	for _, p := range phrases {
		if strings.Contains(claim, p) {
			return true
		}
	}
	return false
}

func demoRules() []Rule {
	return []Rule{
		{
			Name: "amber-warning-issued",
			Match: func(claim string) bool {
				return containsAll(claim, "northwind weather bureau", "amber rain warning", "lakeside city")
			},
			Requires: []string{FactAmberWarning},
			Supported: model.Assessment{
				Verdict:    model.VerdictTrue,
				Confidence: 0.95,
				Citations:  []string{FactAmberWarning},
				Reasoning: "The knowledge graph contains a fact stating that Northwind Weather Bureau issued an amber " +
					"rain warning for Lakeside City on 21 March 2023. This directly supports the claim.",
			},
			Unsupported: unverifiable(0.4, "No matching weather warning fact was found in the knowledge graph."),
		},
		{
			Name: "metro-normal-schedule",
			Match: func(claim string) bool {
				return containsAll(claim, "lakeside metro rail", "normal weekday schedule") &&
					containsAny(claim, "no full network shutdown", "no full shutdown")
			},
			Requires: []string{FactMetroNormal},
			Supported: model.Assessment{
				Verdict:    model.VerdictTrue,
				Confidence: 0.95,
				Citations:  []string{FactMetroNormal},
				Reasoning: "The knowledge graph contains a fact from Lakeside Metro Rail stating that all lines will " +
					"operate on a normal weekday schedule on 21 March 2023 and that no full network shutdown " +
					"is planned. This matches the claim.",
			},
			Unsupported: unverifiable(0.4, "No matching service-status fact for Lakeside Metro Rail was found in the knowledge graph."),
		},
		{
			Name: "metro-cancellation-rumor",
			Match: func(claim string) bool {
				if containsAll(claim, "all lakeside metro rail services") && containsAny(claim, "cancelled", "canceled") {
					return true
				}
				return strings.Contains(claim, "metro will not run")
			},
			Requires: []string{FactAmberWarning, FactMetroNormal, FactNWBNoTransport},
			Supported: model.Assessment{
				Verdict:    model.VerdictPartlyTrue,
				Confidence: 0.9,
				Citations:  []string{FactAmberWarning, FactMetroNormal, FactNWBNoTransport},
				Reasoning: "The knowledge graph confirms that an amber rain warning is in effect for Lakeside City on " +
					"21 March 2023. However, Lakeside Metro Rail has announced that all lines will operate on a " +
					"normal weekday schedule and that no full network shutdown is planned. In addition, the " +
					"Northwind Weather Bureau states that it does not announce closures of metro or other public " +
					"transport. Therefore the part of the claim about the weather warning is true, but the parts " +
					"about all metro services being cancelled and NWB saying the metro will not run are not " +
					"supported and are contradicted by the available evidence.",
			},
			Unsupported: unverifiable(0.4, "The claim alleges complete cancellation of metro services and that the weather bureau said the "+
				"metro will not run, but the knowledge graph does not contain enough conflicting or supporting "+
				"evidence to decide this claim."),
		},
	}
}
