package flowkit

import "fmt"

// Flow is a composable unit of control. Update is called once per driver
// tick and must return promptly without blocking:
//
//	(f, nil)     — stay the active flow; ticked again next cycle
//	(other, nil) — hand control to other
//	(nil, nil)   — terminate this flow
//
// With no new input, repeated updates must not fabricate state changes.
// The error return carries notifier-handler failures upward; it never
// terminates anything by itself.
//
// Hooks exposes the flow's enter/exit notifiers. They are fired by the
// owning driver as the active flow changes, never by the flow itself.
type Flow interface {
	Update() (Flow, error)
	Hooks() *Hooks
}

// Hooks holds the per-flow lifecycle notifiers. EnterChild fires on the
// parent when the driver pushes one of its children; ExitChild fires on
// the parent when control returns from a child.
type Hooks struct {
	EnterChild Notifier[Flow]
	ExitChild  Notifier[Flow]
}

// Named is implemented by flows that carry a display name.
type Named interface {
	Name() string
}

// FlowName returns the flow's display name, falling back to its dynamic
// type. Capability accessor: callers never downcast to concrete flows for
// diagnostics.
func FlowName(f Flow) string {
	if n, ok := f.(Named); ok {
		return n.Name()
	}
	return fmt.Sprintf("%T", f)
}

// MachineHolder is implemented by flows backed by a state machine.
type MachineHolder interface {
	Machine() *Machine
}

// AsMachine returns the state machine backing f, if any. Capability
// accessor replacing downcasts to concrete flow types.
func AsMachine(f Flow) (*Machine, bool) {
	if h, ok := f.(MachineHolder); ok {
		return h.Machine(), true
	}
	return nil, false
}

// ChildBearer is implemented by flows that own child flows. The driver
// uses it to distinguish an enter-child handoff from a lateral one.
type ChildBearer interface {
	HasChild(Flow) bool
}

// LeafFlow is a terminal flow with no delegation. Its step function runs
// once per tick; a nil step function terminates on the first tick.
type LeafFlow struct {
	name  string
	step  func() (Flow, error)
	hooks Hooks
}

// NewLeafFlow creates a leaf flow. The step function receives no
// arguments; closures capture whatever state the leaf needs.
func NewLeafFlow(name string, step func() (Flow, error)) *LeafFlow {
	return &LeafFlow{name: name, step: step}
}

// Name returns the flow's display name.
func (f *LeafFlow) Name() string { return f.name }

// Hooks returns the flow's lifecycle notifiers.
func (f *LeafFlow) Hooks() *Hooks { return &f.hooks }

// Update runs the step function, or terminates when there is none.
func (f *LeafFlow) Update() (Flow, error) {
	if f.step == nil {
		return nil, nil
	}
	return f.step()
}

// MachineFlow drives a state machine from a scripted event sequence. Each
// update feeds the next scripted event only when the queue is empty (so
// externally enqueued events interleave naturally), consumes, and then
// decides its verdict from the current state: a state marked done
// terminates the flow, anything else stays.
type MachineFlow struct {
	name    string
	machine *Machine
	script  []Event
	done    map[State]bool
	hooks   Hooks
}

// NewMachineFlow wraps m in a flow.
func NewMachineFlow(name string, m *Machine) *MachineFlow {
	return &MachineFlow{
		name:    name,
		machine: m,
		done:    make(map[State]bool),
	}
}

// Script appends scripted events to feed, one per update, whenever the
// machine's queue is empty.
func (f *MachineFlow) Script(events ...Event) *MachineFlow {
	f.script = append(f.script, events...)
	return f
}

// DoneIn marks states in which the flow reports termination.
func (f *MachineFlow) DoneIn(states ...State) *MachineFlow {
	for _, s := range states {
		f.done[s] = true
	}
	return f
}

// Name returns the flow's display name.
func (f *MachineFlow) Name() string { return f.name }

// Hooks returns the flow's lifecycle notifiers.
func (f *MachineFlow) Hooks() *Hooks { return &f.hooks }

// Machine returns the backing state machine.
func (f *MachineFlow) Machine() *Machine { return f.machine }

// Update feeds at most one scripted event, consumes, and reports whether
// the machine reached a terminal state.
func (f *MachineFlow) Update() (Flow, error) {
	err := f.step()
	if f.done[f.machine.Current()] {
		return nil, err
	}
	return f, err
}

// step is the shared feed-then-consume half of Update, reused by
// CompositeFlow.
func (f *MachineFlow) step() error {
	if len(f.script) > 0 && f.machine.QueueEmpty() {
		f.machine.Enqueue(f.script[0])
		f.script = f.script[1:]
	}
	return f.machine.Consume()
}

// CompositeFlow is a MachineFlow that owns child flows. Entering a
// delegated state hands control to the mapped child; when the driver
// reports the child's exit, an optional resume event is enqueued so the
// parent machine can move past the delegating state.
type CompositeFlow struct {
	MachineFlow
	children map[State]Flow
	resume   Event
	resuming bool
}

// NewCompositeFlow wraps m in a flow that can delegate to children.
func NewCompositeFlow(name string, m *Machine) *CompositeFlow {
	return &CompositeFlow{
		MachineFlow: MachineFlow{
			name:    name,
			machine: m,
			done:    make(map[State]bool),
		},
		children: make(map[State]Flow),
	}
}

// Delegate maps a state of the parent machine to a child flow: whenever
// an update ends in that state, control transfers to the child. The child
// is exclusively owned by this composite and must not outlive it.
func (c *CompositeFlow) Delegate(state State, child Flow) *CompositeFlow {
	c.children[state] = child
	return c
}

// ResumeOn enqueues e into the parent machine each time a child exits, so
// the parent's table can transition out of the delegating state. Wired
// through the composite's own ExitChild hook; the first call subscribes,
// later calls only change the event.
func (c *CompositeFlow) ResumeOn(e Event) *CompositeFlow {
	c.resume = e
	if !c.resuming {
		c.resuming = true
		c.hooks.ExitChild.Subscribe(func(Flow) error {
			c.machine.Enqueue(c.resume)
			return nil
		})
	}
	return c
}

// Script appends scripted events, as on MachineFlow.
func (c *CompositeFlow) Script(events ...Event) *CompositeFlow {
	c.MachineFlow.Script(events...)
	return c
}

// DoneIn marks terminal states, as on MachineFlow.
func (c *CompositeFlow) DoneIn(states ...State) *CompositeFlow {
	c.MachineFlow.DoneIn(states...)
	return c
}

// HasChild reports whether f is one of the composite's delegated children.
func (c *CompositeFlow) HasChild(f Flow) bool {
	for _, child := range c.children {
		if child == f {
			return true
		}
	}
	return false
}

// Update consumes like a MachineFlow, then checks the resulting state for
// delegation before checking it for termination.
func (c *CompositeFlow) Update() (Flow, error) {
	err := c.step()
	cur := c.machine.Current()
	if child, ok := c.children[cur]; ok {
		return child, err
	}
	if c.done[cur] {
		return nil, err
	}
	return c, err
}
