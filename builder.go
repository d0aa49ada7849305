package flowkit

import "github.com/shoo/voile-sub004/internal/tabular"

// TableBuilder provides a fluent API for constructing transition tables in
// code, an alternative to the YAML spec that goes through the same
// validation and produces the same artifact.
type TableBuilder struct {
	schema tabular.Schema
}

// NewTable creates a new TableBuilder with the given machine name.
func NewTable(name string) *TableBuilder {
	return &TableBuilder{
		schema: tabular.Schema{
			Name:        name,
			Transitions: make(map[string]map[string]string),
			Names: tabular.NameOverrides{
				States: make(map[string]string),
				Events: make(map[string]string),
			},
		},
	}
}

// States declares the state enumeration, in order.
func (b *TableBuilder) States(names ...string) *TableBuilder {
	b.schema.States = append(b.schema.States, names...)
	return b
}

// Events declares the event enumeration, in order.
func (b *TableBuilder) Events(names ...string) *TableBuilder {
	b.schema.Events = append(b.schema.Events, names...)
	return b
}

// Transition defines next(from, on) = to. Redefining a cell overwrites it.
func (b *TableBuilder) Transition(from, on, to string) *TableBuilder {
	row := b.schema.Transitions[from]
	if row == nil {
		row = make(map[string]string)
		b.schema.Transitions[from] = row
	}
	row[on] = to
	return b
}

// StateName overrides the display name of a state.
func (b *TableBuilder) StateName(id, display string) *TableBuilder {
	b.schema.Names.States[id] = display
	return b
}

// EventName overrides the display name of an event.
func (b *TableBuilder) EventName(id, display string) *TableBuilder {
	b.schema.Names.Events[id] = display
	return b
}

// Build validates and compiles the table. Structural problems are
// returned as a *ValidationError listing every issue found.
func (b *TableBuilder) Build() (*Table, error) {
	return b.schema.Compile()
}
