// Package search ranks knowledge graph facts against a query by lexical
// token overlap.
package search

import (
	"regexp"
	"sort"
	"strings"

	"github.com/factlens/factlens/internal/kg"
	"github.com/factlens/factlens/internal/model"
)

// DefaultTopK bounds result length when the caller does not.
const DefaultTopK = 5

var tokenPattern = regexp.MustCompile(`\w+`)

// Tokens extracts lower-cased word tokens (maximal alphanumeric plus
// underscore runs) in order of appearance, duplicates included.
func Tokens(s string) []string {
	return tokenPattern.FindAllString(strings.ToLower(s), -1)
}

// TokenSet collapses Tokens into a set; token order never matters for
// scoring.
func TokenSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, tok := range Tokens(s) {
		set[tok] = struct{}{}
	}
	return set
}

// Engine scores and ranks facts for a query.
type Engine struct {
	graph *kg.Graph
}

// New creates a search engine over the given graph.
func New(graph *kg.Graph) *Engine {
	return &Engine{graph: graph}
}

// Search returns up to topK evidence records for the query, ranked by
// descending token overlap. Facts scoring zero are excluded outright.
// A non-empty entityIDs filter keeps only facts whose subject or any
// location entity is in the filter; an empty or nil filter considers
// every fact (the permissive-empty reading — an empty linker result
// means "no filter", not "match nothing").
//
// Ties keep knowledge graph document order, so repeated calls with the
// same inputs return an identical sequence.
func (e *Engine) Search(query string, entityIDs []string, topK int) []model.Evidence {
	if topK <= 0 {
		topK = DefaultTopK
	}
	qTokens := TokenSet(query)

	filter := make(map[string]struct{}, len(entityIDs))
	for _, id := range entityIDs {
		filter[id] = struct{}{}
	}

	type scoredFact struct {
		fact  *model.Fact
		score int
	}

	facts := e.graph.Facts()
	var scored []scoredFact
	for i := range facts {
		fact := &facts[i]
		if len(filter) > 0 && !matchesFilter(fact, filter) {
			continue
		}
		score := overlap(qTokens, TokenSet(fact.ObjectLabel+" "+fact.EvidenceSnippet))
		if score == 0 {
			continue
		}
		scored = append(scored, scoredFact{fact: fact, score: score})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})
	if len(scored) > topK {
		scored = scored[:topK]
	}

	results := make([]model.Evidence, 0, len(scored))
	for _, s := range scored {
		results = append(results, e.denormalize(s.fact, s.score))
	}
	return results
}

// matchesFilter is a disjunction over the fact's entity references: the
// subject or any location being in the filter keeps the fact.
func matchesFilter(fact *model.Fact, filter map[string]struct{}) bool {
	if _, ok := filter[fact.SubjectEntityID]; ok {
		return true
	}
	for _, id := range fact.LocationEntityIDs {
		if _, ok := filter[id]; ok {
			return true
		}
	}
	return false
}

func overlap(a, b map[string]struct{}) int {
	if len(b) < len(a) {
		a, b = b, a
	}
	n := 0
	for tok := range a {
		if _, ok := b[tok]; ok {
			n++
		}
	}
	return n
}

// denormalize joins a fact with its resolved subject, source and
// location entities. Dangling references resolve to null, not errors.
func (e *Engine) denormalize(fact *model.Fact, score int) model.Evidence {
	ev := model.Evidence{
		FactID:      fact.ID,
		Score:       float64(score),
		Predicate:   fact.Predicate,
		ObjectLabel: fact.ObjectLabel,
		ObjectType:  fact.ObjectType,
		Date:        fact.Date,
		Severity:    fact.Severity,
		Locations:   []model.Entity{},
		Snippet:     fact.EvidenceSnippet,
	}
	if subj := e.graph.Entity(fact.SubjectEntityID); subj != nil {
		ev.Subject = &model.EntityRef{ID: subj.ID, Name: subj.Name, Type: subj.Type}
	}
	for _, id := range fact.LocationEntityIDs {
		if ent := e.graph.Entity(id); ent != nil {
			ev.Locations = append(ev.Locations, *ent)
		}
	}
	ev.Source = e.graph.Source(fact.SourceID)
	return ev
}
