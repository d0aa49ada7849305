// Package tabular compiles tabular transition-table specifications into the
// immutable Table artifact consumed by the runtime. Rows of the spec are
// states, columns are events, and a cell names the optional next state.
// Enumeration order is exactly the declaration order of the states and
// events lists, so identifiers are stable across compilations of the same
// spec.
package tabular

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// NameOverrides carries optional display-name replacements keyed by
// identifier. Identifiers without an override display as themselves.
type NameOverrides struct {
	States map[string]string `yaml:"states"`
	Events map[string]string `yaml:"events"`
}

// Schema is the parsed, not yet validated form of a table spec. It can be
// produced from YAML via Parse or assembled programmatically by a builder.
type Schema struct {
	Name        string                       `yaml:"name"`
	States      []string                     `yaml:"states"`
	Events      []string                     `yaml:"events"`
	Transitions map[string]map[string]string `yaml:"transitions"`
	Names       NameOverrides                `yaml:"names"`
}

// Parse decodes a YAML table spec into a Schema. The result is not
// validated; Compile performs validation.
func Parse(src []byte) (*Schema, error) {
	var s Schema
	if err := yaml.Unmarshal(src, &s); err != nil {
		return nil, fmt.Errorf("parse table spec: %w", err)
	}
	return &s, nil
}

// Compile validates the schema and builds the immutable Table artifact.
// Any structural problem is fatal here; a Table that compiles is total and
// safe for every in-range lookup.
func (s *Schema) Compile() (*Table, error) {
	if verr := s.Validate(); verr != nil {
		return nil, verr
	}

	t := &Table{
		name:       s.Name,
		next:       make([][]State, len(s.States)),
		stateNames: make([]string, len(s.States)),
		eventNames: make([]string, len(s.Events)),
		stateIndex: make(map[string]State, len(s.States)),
		eventIndex: make(map[string]Event, len(s.Events)),
	}

	for i, name := range s.States {
		t.stateIndex[name] = State(i)
		t.stateNames[i] = name
		if display, ok := s.Names.States[name]; ok {
			t.stateNames[i] = display
		}
	}
	for i, name := range s.Events {
		t.eventIndex[name] = Event(i)
		t.eventNames[i] = name
		if display, ok := s.Names.Events[name]; ok {
			t.eventNames[i] = display
		}
	}

	for i := range t.next {
		row := make([]State, len(s.Events))
		for j := range row {
			row[j] = noTransition
		}
		t.next[i] = row
	}
	for from, row := range s.Transitions {
		for event, to := range row {
			t.next[t.stateIndex[from]][t.eventIndex[event]] = t.stateIndex[to]
		}
	}

	return t, nil
}
