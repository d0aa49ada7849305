// Package flowkit is a hierarchical finite-state-machine runtime for
// staged, event-reactive control logic: protocol handshakes, UI wizards,
// test orchestration. It combines a table-driven state machine with queued
// event consumption, a flow-composition driver that lets a machine delegate
// control to nested child flows, and a generic ordered multicast Notifier
// carrying every observability hook.
//
// The core never logs, prints, or blocks; hosts observe it exclusively
// through notifier subscriptions.
package flowkit

import "github.com/shoo/voile-sub004/internal/tabular"

// Re-export the compiled-table types from internal/tabular for public API
type (
	// State identifies a state of a compiled table
	State = tabular.State
	// Event identifies an event of a compiled table
	Event = tabular.Event
	// StateChange describes a completed transition
	StateChange = tabular.StateChange
	// Table is the immutable compiled transition-table artifact
	Table = tabular.Table
	// Schema is the parsed, pre-validation form of a table spec
	Schema = tabular.Schema
	// ValidationError aggregates the problems found while compiling a spec
	ValidationError = tabular.ValidationError
	// ValidationIssue is a single coded problem inside a ValidationError
	ValidationIssue = tabular.ValidationIssue
)
