// Package kg holds the immutable in-memory knowledge graph: entities,
// sources and facts loaded once at startup from a static document.
// There are no mutation operations after load; the graph is shared
// freely across concurrent requests.
package kg

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/factlens/factlens/internal/model"
)

// LoadError reports a malformed or incomplete knowledge graph document.
// It is a startup-time fatal condition: the process must not start
// without a usable graph.
type LoadError struct {
	Reason string
	Err    error
}

func (e *LoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("load knowledge graph: %s: %v", e.Reason, e.Err)
	}
	return "load knowledge graph: " + e.Reason
}

func (e *LoadError) Unwrap() error { return e.Err }

// document mirrors the on-disk layout: exactly three top-level collections.
type document struct {
	Entities []model.Entity `json:"entities" yaml:"entities"`
	Sources  []model.Source `json:"sources" yaml:"sources"`
	Facts    []model.Fact   `json:"facts" yaml:"facts"`
}

// requiredCollections must all be present at the top level of the
// document, even when empty.
var requiredCollections = []string{"entities", "sources", "facts"}

// Graph is the loaded knowledge graph. Entity and source lookups are
// O(1); facts are exposed in document order, which downstream ranking
// relies on for deterministic tie-breaking.
type Graph struct {
	entities []model.Entity
	sources  []model.Source
	facts    []model.Fact

	entityByID map[string]*model.Entity
	sourceByID map[string]*model.Source
	factByID   map[string]*model.Fact
}

// New builds a graph from already-decoded collections. Used by Load and
// by tests that inject synthetic graphs.
func New(entities []model.Entity, sources []model.Source, facts []model.Fact) *Graph {
	g := &Graph{
		entities:   entities,
		sources:    sources,
		facts:      facts,
		entityByID: make(map[string]*model.Entity, len(entities)),
		sourceByID: make(map[string]*model.Source, len(sources)),
		factByID:   make(map[string]*model.Fact, len(facts)),
	}
	for i := range g.entities {
		g.entityByID[g.entities[i].ID] = &g.entities[i]
	}
	for i := range g.sources {
		g.sourceByID[g.sources[i].ID] = &g.sources[i]
	}
	for i := range g.facts {
		g.factByID[g.facts[i].ID] = &g.facts[i]
	}
	return g
}

// Load decodes a JSON knowledge graph document and indexes it.
func Load(data []byte) (*Graph, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &LoadError{Reason: "document is not valid JSON", Err: err}
	}
	for _, key := range requiredCollections {
		if _, ok := raw[key]; !ok {
			return nil, &LoadError{Reason: fmt.Sprintf("missing top-level collection %q", key)}
		}
	}
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &LoadError{Reason: "malformed collection", Err: err}
	}
	return New(doc.Entities, doc.Sources, doc.Facts), nil
}

// LoadYAML decodes a YAML knowledge graph document and indexes it.
func LoadYAML(data []byte) (*Graph, error) {
	var raw map[string]yaml.Node
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, &LoadError{Reason: "document is not valid YAML", Err: err}
	}
	for _, key := range requiredCollections {
		if _, ok := raw[key]; !ok {
			return nil, &LoadError{Reason: fmt.Sprintf("missing top-level collection %q", key)}
		}
	}
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &LoadError{Reason: "malformed collection", Err: err}
	}
	return New(doc.Entities, doc.Sources, doc.Facts), nil
}

// LoadFile loads a knowledge graph from disk, picking the decoder from
// the file extension (.json, .yaml, .yml).
func LoadFile(path string) (*Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Reason: fmt.Sprintf("read %s", path), Err: err}
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return LoadYAML(data)
	default:
		return Load(data)
	}
}

// Entity returns the entity with the given id, or nil.
func (g *Graph) Entity(id string) *model.Entity {
	return g.entityByID[id]
}

// Source returns the source with the given id, or nil.
func (g *Graph) Source(id string) *model.Source {
	return g.sourceByID[id]
}

// Fact returns the fact with the given id, or nil.
func (g *Graph) Fact(id string) *model.Fact {
	return g.factByID[id]
}

// Entities returns all entities in document order.
func (g *Graph) Entities() []model.Entity {
	return g.entities
}

// Facts returns all facts in document order.
func (g *Graph) Facts() []model.Fact {
	return g.facts
}

// Counts reports entity, source and fact counts, for health reporting.
func (g *Graph) Counts() (entities, sources, facts int) {
	return len(g.entities), len(g.sources), len(g.facts)
}
