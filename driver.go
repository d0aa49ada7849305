package flowkit

import (
	"errors"

	"go.uber.org/multierr"
)

// ErrDriverDone reports a tick on an already terminated driver. Driving a
// finished driver is a usage contract violation, distinct from the normal
// FSM error stream.
var ErrDriverDone = errors.New("flowkit: driver already terminated")

// Driver runs a root flow to termination. It borrows the root and keeps a
// stack of the currently active flows, the nesting path from the root to
// the flow being ticked. All enter/exit notifications for one handoff fire
// inside the tick that performed it; no other tick interleaves.
//
// The stack is empty only before the first tick and after the root
// terminates.
type Driver struct {
	root  Flow
	stack []Flow
	done  bool
}

// NewDriver creates a driver over root. The driver does not own the root;
// host wiring (notifier subscriptions, external enqueues) happens before
// or between ticks.
func NewDriver(root Flow) *Driver {
	return &Driver{root: root}
}

// Done reports whether the root flow has terminated.
func (d *Driver) Done() bool {
	return d.done
}

// Active returns the flow that the next tick will update, or nil after
// termination.
func (d *Driver) Active() Flow {
	if d.done {
		return nil
	}
	if len(d.stack) == 0 {
		return d.root
	}
	return d.stack[len(d.stack)-1]
}

// Depth returns the current nesting depth (0 before the first tick and
// after termination).
func (d *Driver) Depth() int {
	return len(d.stack)
}

// Tick updates the active flow once and applies its verdict:
//
//   - the flow itself: no change
//   - a direct child of the active flow: push it and fire the parent's
//     EnterChild, before any update of the child runs
//   - the flow one level up the stack: pop and fire that parent's
//     ExitChild
//   - any other flow: replace the stack top (lateral move, no
//     notifications)
//   - nil: pop; the driver terminates when the root pops, otherwise the
//     new top's ExitChild fires
//
// The returned error aggregates the update's own error with any hook
// handler failures; it never stops the driver.
func (d *Driver) Tick() error {
	if d.done {
		return ErrDriverDone
	}
	if len(d.stack) == 0 {
		d.stack = append(d.stack, d.root)
	}

	active := d.stack[len(d.stack)-1]
	next, err := active.Update()

	switch {
	case next == active:
		// stay

	case next == nil:
		d.stack = d.stack[:len(d.stack)-1]
		if len(d.stack) == 0 {
			d.done = true
			break
		}
		parent := d.stack[len(d.stack)-1]
		err = multierr.Append(err, parent.Hooks().ExitChild.Fire(active))

	case len(d.stack) > 1 && next == d.stack[len(d.stack)-2]:
		// control returned upward explicitly
		d.stack = d.stack[:len(d.stack)-1]
		err = multierr.Append(err, next.Hooks().ExitChild.Fire(active))

	default:
		if cb, ok := active.(ChildBearer); ok && cb.HasChild(next) {
			d.stack = append(d.stack, next)
			err = multierr.Append(err, active.Hooks().EnterChild.Fire(next))
			break
		}
		// lateral move
		d.stack[len(d.stack)-1] = next
	}
	return err
}

// Run ticks until the root terminates; it is the whole external control
// loop. Per-tick errors (notifier handler failures) never stop the run —
// only a nil verdict propagating up from the root does. The combined
// errors of all ticks are returned after termination.
func (d *Driver) Run() error {
	if d.done {
		return ErrDriverDone
	}
	var errs error
	for !d.done {
		errs = multierr.Append(errs, d.Tick())
	}
	return errs
}
