package tabular

import (
	"fmt"
	"strings"
)

// ValidationIssue represents a single problem found in a table spec
type ValidationIssue struct {
	Code    string   // e.g., "UNKNOWN_STATE", "DUPLICATE_EVENT"
	Message string   // Human-readable description
	Path    []string // e.g., ["transitions", "idle", "connect"]
}

// String returns a human-readable representation of the issue
func (v ValidationIssue) String() string {
	if len(v.Path) > 0 {
		return fmt.Sprintf("[%s] %s (at %s)", v.Code, v.Message, strings.Join(v.Path, "."))
	}
	return fmt.Sprintf("[%s] %s", v.Code, v.Message)
}

// ValidationError contains all issues found while validating a spec
type ValidationError struct {
	Issues []ValidationIssue
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "validation failed"
	}
	if len(e.Issues) == 1 {
		return e.Issues[0].String()
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("validation failed with %d issues:\n", len(e.Issues)))
	for i, issue := range e.Issues {
		b.WriteString(fmt.Sprintf("  %d. %s\n", i+1, issue.String()))
	}
	return b.String()
}

// AddIssue adds a validation issue to the error
func (e *ValidationError) AddIssue(code, message string, path ...string) {
	e.Issues = append(e.Issues, ValidationIssue{
		Code:    code,
		Message: message,
		Path:    path,
	})
}

// HasIssues returns true if there are any validation issues
func (e *ValidationError) HasIssues() bool {
	return len(e.Issues) > 0
}

// Validation error codes
const (
	ErrCodeNoStates       = "NO_STATES"
	ErrCodeNoEvents       = "NO_EVENTS"
	ErrCodeDuplicateState = "DUPLICATE_STATE"
	ErrCodeDuplicateEvent = "DUPLICATE_EVENT"
	ErrCodeUnknownState   = "UNKNOWN_STATE"
	ErrCodeUnknownEvent   = "UNKNOWN_EVENT"
	ErrCodeEmptyName      = "EMPTY_NAME"
)

// Validate checks the schema for structural problems. It returns nil when
// the schema compiles cleanly.
func (s *Schema) Validate() *ValidationError {
	verr := &ValidationError{}

	if len(s.States) == 0 {
		verr.AddIssue(ErrCodeNoStates, "spec declares no states", "states")
	}
	if len(s.Events) == 0 {
		verr.AddIssue(ErrCodeNoEvents, "spec declares no events", "events")
	}

	states := make(map[string]bool, len(s.States))
	for i, name := range s.States {
		if name == "" {
			verr.AddIssue(ErrCodeEmptyName, "state identifier is empty", "states", fmt.Sprintf("%d", i))
			continue
		}
		if states[name] {
			verr.AddIssue(ErrCodeDuplicateState, fmt.Sprintf("state %q declared twice", name), "states", fmt.Sprintf("%d", i))
		}
		states[name] = true
	}

	events := make(map[string]bool, len(s.Events))
	for i, name := range s.Events {
		if name == "" {
			verr.AddIssue(ErrCodeEmptyName, "event identifier is empty", "events", fmt.Sprintf("%d", i))
			continue
		}
		if events[name] {
			verr.AddIssue(ErrCodeDuplicateEvent, fmt.Sprintf("event %q declared twice", name), "events", fmt.Sprintf("%d", i))
		}
		events[name] = true
	}

	for from, row := range s.Transitions {
		if !states[from] {
			verr.AddIssue(ErrCodeUnknownState, fmt.Sprintf("transition row for undeclared state %q", from), "transitions", from)
		}
		for event, to := range row {
			if !events[event] {
				verr.AddIssue(ErrCodeUnknownEvent, fmt.Sprintf("transition on undeclared event %q", event), "transitions", from, event)
			}
			if !states[to] {
				verr.AddIssue(ErrCodeUnknownState, fmt.Sprintf("transition targets undeclared state %q", to), "transitions", from, event)
			}
		}
	}

	for name := range s.Names.States {
		if !states[name] {
			verr.AddIssue(ErrCodeUnknownState, fmt.Sprintf("display name for undeclared state %q", name), "names", "states", name)
		}
	}
	for name := range s.Names.Events {
		if !events[name] {
			verr.AddIssue(ErrCodeUnknownEvent, fmt.Sprintf("display name for undeclared event %q", name), "names", "events", name)
		}
	}

	if verr.HasIssues() {
		return verr
	}
	return nil
}
