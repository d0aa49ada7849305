// Package flowlog wires flowkit notifier streams to a zap logger. The
// runtime core never logs; hosts that want visibility attach an observer
// here and detach it when done. Handlers always return nil so logging can
// never show up as a notifier failure.
package flowlog

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	flowkit "github.com/shoo/voile-sub004"
)

// Detach removes every subscription made by the call that returned it.
type Detach func()

// Machine subscribes to all three notifier streams of m and logs them
// under the given machine name, using the table's display names.
func Machine(log *zap.SugaredLogger, name string, m *flowkit.Machine) Detach {
	t := m.Table()
	subs := []flowkit.Subscription{
		m.OnEvent.Subscribe(func(e flowkit.Event) error {
			log.Debugw("event consumed",
				"machine", name,
				"event", t.EventName(e),
				"state", t.StateName(m.Current()))
			return nil
		}),
		m.OnChange.Subscribe(func(c flowkit.StateChange) error {
			log.Infow("state changed",
				"machine", name,
				"from", t.StateName(c.From),
				"to", t.StateName(c.To))
			return nil
		}),
		m.OnError.Subscribe(func(e flowkit.Event) error {
			log.Warnw("unmatched transition",
				"machine", name,
				"event", t.EventName(e),
				"state", t.StateName(m.Current()))
			return nil
		}),
	}
	return func() {
		for _, s := range subs {
			s.Unsubscribe()
		}
	}
}

// Flows subscribes to the enter/exit hooks of every given flow. All
// entries of one call share a generated run id so interleaved lifecycles
// can be correlated.
func Flows(log *zap.SugaredLogger, flows ...flowkit.Flow) Detach {
	run := uuid.NewString()
	var subs []flowkit.Subscription
	for _, f := range flows {
		parent := f
		h := parent.Hooks()
		subs = append(subs,
			h.EnterChild.Subscribe(func(child flowkit.Flow) error {
				log.Infow("entered child flow",
					"run", run,
					"parent", flowkit.FlowName(parent),
					"child", flowkit.FlowName(child))
				return nil
			}),
			h.ExitChild.Subscribe(func(child flowkit.Flow) error {
				log.Infow("exited child flow",
					"run", run,
					"parent", flowkit.FlowName(parent),
					"child", flowkit.FlowName(child))
				return nil
			}),
		)
	}
	return func() {
		for _, s := range subs {
			s.Unsubscribe()
		}
	}
}
