package flowkit

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"
)

// Mode selects how many queued events one Consume call processes.
type Mode int

const (
	// Immediate drains every event queued at the start of the call
	Immediate Mode = iota
	// Separate processes at most one queued event per call
	Separate
)

// String returns the string representation of Mode
func (m Mode) String() string {
	switch m {
	case Immediate:
		return "immediate"
	case Separate:
		return "separate"
	default:
		return "unknown"
	}
}

// Machine is a table-driven state machine with a FIFO event queue. The
// transition table is borrowed read-only; the current state and the queue
// are the only mutable fields. A Machine belongs to one flow and one
// driver; it is not safe for concurrent use.
//
// Hosts observe the machine through its three notifier streams:
//
//	OnEvent  — an event was consumed, regardless of outcome
//	OnChange — the current state changed
//	OnError  — the consumed event had no transition in the current state
type Machine struct {
	table   *Table
	current State
	queue   []Event
	mode    Mode

	OnEvent  Notifier[Event]
	OnChange Notifier[StateChange]
	OnError  Notifier[Event]
}

// NewMachine creates a machine over the given table. A nil table or an
// out-of-range initial state is a construction error; a bad identifier is
// rejected here so that it can never surface per-event later.
func NewMachine(table *Table, initial State, mode Mode) (*Machine, error) {
	if table == nil {
		return nil, errors.New("flowkit: machine requires a table")
	}
	if !table.Valid(initial) {
		return nil, fmt.Errorf("flowkit: initial state %d out of range [0,%d)", int(initial), table.States())
	}
	return &Machine{
		table:   table,
		current: initial,
		mode:    mode,
	}, nil
}

// Current returns the machine's current state.
func (m *Machine) Current() State {
	return m.current
}

// Table returns the borrowed transition table.
func (m *Machine) Table() *Table {
	return m.table
}

// Mode returns the configured consume mode.
func (m *Machine) Mode() Mode {
	return m.mode
}

// Enqueue appends e to the event queue. It never blocks and never fails,
// even when the machine sits in a state with no outgoing transitions.
func (m *Machine) Enqueue(e Event) {
	m.queue = append(m.queue, e)
}

// QueueEmpty reports whether no events are waiting to be consumed.
func (m *Machine) QueueEmpty() bool {
	return len(m.queue) == 0
}

// QueueLen returns the number of queued events.
func (m *Machine) QueueLen() int {
	return len(m.queue)
}

// Consume processes queued events against the table. In Separate mode at
// most one event is processed; in Immediate mode every event present at
// the start of the call is (events enqueued by handlers mid-call wait for
// the next Consume).
//
// Per event: OnEvent fires unconditionally; a defined transition to a
// different state updates the current state and fires OnChange; a
// transition back to the same state is a no-op beyond OnEvent; an
// undefined pair leaves the state untouched and fires OnError. An
// unmatched pair is not a fault of the machine — the subscriber decides
// whether to ignore, retry, or escalate.
//
// The returned error aggregates every notifier-handler failure of the
// call; such failures never abort consumption.
func (m *Machine) Consume() error {
	var errs error
	limit := len(m.queue)
	for i := 0; i < limit && len(m.queue) > 0; i++ {
		e := m.queue[0]
		m.queue = m.queue[1:]

		errs = multierr.Append(errs, m.OnEvent.Fire(e))

		next, ok := m.table.Next(m.current, e)
		switch {
		case !ok:
			errs = multierr.Append(errs, m.OnError.Fire(e))
		case next != m.current:
			change := StateChange{From: m.current, To: next}
			m.current = next
			errs = multierr.Append(errs, m.OnChange.Fire(change))
		}

		if m.mode == Separate {
			break
		}
	}
	return errs
}
