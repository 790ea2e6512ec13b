// Package link matches entity mentions in free text against the
// knowledge graph.
package link

import (
	"strings"

	"github.com/factlens/factlens/internal/kg"
)

// Linker finds knowledge graph entities mentioned in text by
// case-insensitive substring matching of names and aliases. Matching is
// deliberately permissive: no word boundaries, no minimum length, and
// overlapping matches all count. False positives are acceptable; the
// result only narrows the evidence search.
type Linker struct {
	graph *kg.Graph
}

// New creates a linker over the given graph.
func New(graph *kg.Graph) *Linker {
	return &Linker{graph: graph}
}

// Link returns the ids of all entities whose name or any alias occurs
// in the text. The result is in knowledge graph document order so that
// downstream filtering is reproducible; an empty result means "no
// entity filter", never "filter to nothing".
func (l *Linker) Link(text string) []string {
	lower := strings.ToLower(text)

	var ids []string
	for _, ent := range l.graph.Entities() {
		if mentions(lower, ent.Name) {
			ids = append(ids, ent.ID)
			continue
		}
		for _, alias := range ent.Aliases {
			if mentions(lower, alias) {
				ids = append(ids, ent.ID)
				break
			}
		}
	}
	return ids
}

func mentions(lowerText, name string) bool {
	name = strings.ToLower(strings.TrimSpace(name))
	return name != "" && strings.Contains(lowerText, name)
}
