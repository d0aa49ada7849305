package tabular

import "fmt"

// Table is the immutable compiled transition-table artifact. It owns the
// dense state×event next-state matrix and the display name arrays for both
// enumerations. A Table is created once by Schema.Compile and never mutated
// afterwards, so it may be shared read-only across any number of machines.
type Table struct {
	name       string
	next       [][]State
	stateNames []string
	eventNames []string
	stateIndex map[string]State
	eventIndex map[string]Event
}

// Name returns the machine name declared in the spec, or "" if none was.
func (t *Table) Name() string {
	return t.name
}

// States returns the number of states in the enumeration.
func (t *Table) States() int {
	return len(t.stateNames)
}

// Events returns the number of events in the enumeration.
func (t *Table) Events() int {
	return len(t.eventNames)
}

// Next looks up the transition defined for the given pair. The second
// return value is false when no transition is defined, which is a normal
// outcome at this layer, not an error. Out-of-range inputs also report
// no transition.
func (t *Table) Next(s State, e Event) (State, bool) {
	if int(s) < 0 || int(s) >= len(t.next) {
		return noTransition, false
	}
	if int(e) < 0 || int(e) >= len(t.next[s]) {
		return noTransition, false
	}
	n := t.next[s][e]
	if n == noTransition {
		return noTransition, false
	}
	return n, true
}

// StateName returns the display name of s. Out-of-range values format as
// "state(N)" so diagnostics never panic on a bad identifier.
func (t *Table) StateName(s State) string {
	if int(s) < 0 || int(s) >= len(t.stateNames) {
		return fmt.Sprintf("state(%d)", int(s))
	}
	return t.stateNames[s]
}

// EventName returns the display name of e, or "event(N)" when out of range.
func (t *Table) EventName(e Event) string {
	if int(e) < 0 || int(e) >= len(t.eventNames) {
		return fmt.Sprintf("event(%d)", int(e))
	}
	return t.eventNames[e]
}

// StateByName resolves a state identifier from the spec to its State value.
func (t *Table) StateByName(name string) (State, bool) {
	s, ok := t.stateIndex[name]
	return s, ok
}

// EventByName resolves an event identifier from the spec to its Event value.
func (t *Table) EventByName(name string) (Event, bool) {
	e, ok := t.eventIndex[name]
	return e, ok
}

// Valid reports whether s is a valid state of this table.
func (t *Table) Valid(s State) bool {
	return int(s) >= 0 && int(s) < len(t.stateNames)
}
