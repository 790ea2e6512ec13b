package model

// Entity is a named real-world subject (person, organization, place)
// in the knowledge graph, with optional aliases used for linking.
type Entity struct {
	ID      string   `json:"id" yaml:"id"`
	Name    string   `json:"name" yaml:"name"`
	Type    string   `json:"type" yaml:"type"`
	Aliases []string `json:"aliases,omitempty" yaml:"aliases,omitempty"`
}

// Source is a publication a fact is attributed to
type Source struct {
	ID          string `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Publisher   string `json:"publisher" yaml:"publisher"`
	PublishedAt string `json:"published_at" yaml:"published_at"`
	URL         string `json:"url" yaml:"url"`
}

// Fact is a single structured assertion in the knowledge graph,
// attributable to exactly one Source. Subject and location references
// may dangle; they are rendered as null rather than rejected at load.
type Fact struct {
	ID                string   `json:"id" yaml:"id"`
	SubjectEntityID   string   `json:"subject_entity_id" yaml:"subject_entity_id"`
	Predicate         string   `json:"predicate" yaml:"predicate"`
	ObjectLabel       string   `json:"object_label" yaml:"object_label"`
	ObjectType        string   `json:"object_type" yaml:"object_type"`
	Date              string   `json:"date,omitempty" yaml:"date,omitempty"`
	Severity          string   `json:"severity,omitempty" yaml:"severity,omitempty"`
	LocationEntityIDs []string `json:"location_entity_ids,omitempty" yaml:"location_entity_ids,omitempty"`
	EvidenceSnippet   string   `json:"evidence_snippet" yaml:"evidence_snippet"`
	SourceID          string   `json:"source_id" yaml:"source_id"`
}

// EntityRef is the reduced entity view embedded in evidence records.
type EntityRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// Evidence is a fact denormalized against the knowledge graph: subject,
// source and location references resolved, plus a relevance score from
// lexical search. Built fresh per query, never cached across requests.
type Evidence struct {
	FactID      string     `json:"fact_id"`
	Score       float64    `json:"score"`
	Subject     *EntityRef `json:"subject"`
	Predicate   string     `json:"predicate"`
	ObjectLabel string     `json:"object_label"`
	ObjectType  string     `json:"object_type"`
	Date        string     `json:"date,omitempty"`
	Severity    string     `json:"severity,omitempty"`
	Locations   []Entity   `json:"location_entities"`
	Source      *Source    `json:"source"`
	Snippet     string     `json:"evidence_snippet"`
}

// FactIDs returns the fact ids present in an evidence list, in order.
func FactIDs(evidence []Evidence) []string {
	ids := make([]string, 0, len(evidence))
	for _, e := range evidence {
		ids = append(ids, e.FactID)
	}
	return ids
}
