package tabular

// State identifies a state within a compiled table. Values are dense
// indices into the table's state name array; a State is meaningless
// without the table that produced it.
type State int

// Event identifies an event within a compiled table. Like State, values
// are dense indices into the owning table's event name array.
type Event int

// noTransition marks an undefined (state, event) cell in the matrix.
const noTransition State = -1

// StateChange describes a completed transition from one state to another.
type StateChange struct {
	From State
	To   State
}
