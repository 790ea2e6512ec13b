// Package validate checks a loaded knowledge graph for referential
// problems. The pipeline tolerates dangling references at query time
// (they render as null), so these checks are advisory: operators run
// them on a graph document before shipping it.
package validate

import (
	"fmt"

	"github.com/factlens/factlens/internal/kg"
)

// Issue kinds.
const (
	KindEmptyID          = "empty_id"
	KindDuplicateID      = "duplicate_id"
	KindDanglingSubject  = "dangling_subject"
	KindDanglingLocation = "dangling_location"
	KindDanglingSource   = "dangling_source"
	KindEmptySnippet     = "empty_snippet"
)

// Issue is one problem found in the graph.
type Issue struct {
	Kind string
	// ID names the record carrying the problem.
	ID string
	// Ref is the id the record points at, for dangling references.
	Ref string
}

func (i Issue) String() string {
	switch i.Kind {
	case KindEmptyID:
		return fmt.Sprintf("%s: a record has no id", i.Kind)
	case KindDuplicateID:
		return fmt.Sprintf("%s: id %q appears more than once", i.Kind, i.ID)
	case KindDanglingSubject:
		return fmt.Sprintf("%s: fact %q references unknown subject entity %q", i.Kind, i.ID, i.Ref)
	case KindDanglingLocation:
		return fmt.Sprintf("%s: fact %q references unknown location entity %q", i.Kind, i.ID, i.Ref)
	case KindDanglingSource:
		return fmt.Sprintf("%s: fact %q references unknown source %q", i.Kind, i.ID, i.Ref)
	case KindEmptySnippet:
		return fmt.Sprintf("%s: fact %q has no evidence snippet; it can never be retrieved by search", i.Kind, i.ID)
	default:
		return fmt.Sprintf("%s: %s", i.Kind, i.ID)
	}
}

// Check runs every graph check and returns the issues found, in
// document order. An empty result means the graph is clean.
func Check(graph *kg.Graph) []Issue {
	var issues []Issue

	entityIDs := make(map[string]bool)
	for _, ent := range graph.Entities() {
		if ent.ID == "" {
			issues = append(issues, Issue{Kind: KindEmptyID})
			continue
		}
		if entityIDs[ent.ID] {
			issues = append(issues, Issue{Kind: KindDuplicateID, ID: ent.ID})
		}
		entityIDs[ent.ID] = true
	}

	factIDs := make(map[string]bool)
	for _, fact := range graph.Facts() {
		if fact.ID == "" {
			issues = append(issues, Issue{Kind: KindEmptyID})
			continue
		}
		if factIDs[fact.ID] {
			issues = append(issues, Issue{Kind: KindDuplicateID, ID: fact.ID})
		}
		factIDs[fact.ID] = true

		if fact.SubjectEntityID != "" && !entityIDs[fact.SubjectEntityID] {
			issues = append(issues, Issue{Kind: KindDanglingSubject, ID: fact.ID, Ref: fact.SubjectEntityID})
		}
		for _, loc := range fact.LocationEntityIDs {
			if !entityIDs[loc] {
				issues = append(issues, Issue{Kind: KindDanglingLocation, ID: fact.ID, Ref: loc})
			}
		}
		if fact.SourceID != "" && graph.Source(fact.SourceID) == nil {
			issues = append(issues, Issue{Kind: KindDanglingSource, ID: fact.ID, Ref: fact.SourceID})
		}
		if fact.EvidenceSnippet == "" && fact.ObjectLabel == "" {
			issues = append(issues, Issue{Kind: KindEmptySnippet, ID: fact.ID})
		}
	}

	return issues
}
