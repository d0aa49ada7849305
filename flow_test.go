package flowkit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeafFlow_NilStepTerminates(t *testing.T) {
	f := NewLeafFlow("noop", nil)
	next, err := f.Update()
	require.NoError(t, err)
	assert.Nil(t, next)
}

func TestLeafFlow_StepControlsVerdict(t *testing.T) {
	ticks := 0
	var f *LeafFlow
	f = NewLeafFlow("counter", func() (Flow, error) {
		ticks++
		if ticks < 3 {
			return f, nil
		}
		return nil, nil
	})

	next, err := f.Update()
	require.NoError(t, err)
	assert.Equal(t, Flow(f), next)

	f.Update()
	next, err = f.Update()
	require.NoError(t, err)
	assert.Nil(t, next)
	assert.Equal(t, 3, ticks)
}

func TestMachineFlow_ScriptFeedsOnlyWhenQueueEmpty(t *testing.T) {
	table := lifecycleTable(t)
	start, _ := table.EventByName("start")
	finish, _ := table.EventByName("finish")

	m, err := NewMachine(table, 0, Separate)
	require.NoError(t, err)
	f := NewMachineFlow("lifecycle", m).Script(finish)

	// An externally queued event takes precedence over the script.
	m.Enqueue(start)
	next, err := f.Update()
	require.NoError(t, err)
	assert.Equal(t, Flow(f), next)
	running, _ := table.StateByName("running")
	assert.Equal(t, running, m.Current())

	// Queue drained, so the scripted finish feeds now.
	next, err = f.Update()
	require.NoError(t, err)
	assert.Equal(t, Flow(f), next)
	done, _ := table.StateByName("done")
	assert.Equal(t, done, m.Current())
}

func TestMachineFlow_TerminatesInDoneState(t *testing.T) {
	table := lifecycleTable(t)
	start, _ := table.EventByName("start")
	finish, _ := table.EventByName("finish")
	done, _ := table.StateByName("done")

	m, err := NewMachine(table, 0, Immediate)
	require.NoError(t, err)
	f := NewMachineFlow("lifecycle", m).
		Script(start, finish).
		DoneIn(done)

	next, err := f.Update()
	require.NoError(t, err)
	assert.Equal(t, Flow(f), next)

	next, err = f.Update()
	require.NoError(t, err)
	assert.Nil(t, next)
}

func TestMachineFlow_UpdateWithoutInputIsIdempotent(t *testing.T) {
	table := lifecycleTable(t)

	m, err := NewMachine(table, 0, Immediate)
	require.NoError(t, err)
	r := record(m)
	f := NewMachineFlow("lifecycle", m)

	for i := 0; i < 5; i++ {
		next, err := f.Update()
		require.NoError(t, err)
		assert.Equal(t, Flow(f), next)
	}
	assert.Empty(t, r.events, "ticks without input must not fabricate activity")
}

func TestFlowName(t *testing.T) {
	assert.Equal(t, "noop", FlowName(NewLeafFlow("noop", nil)))

	var anon anonymousFlow
	assert.Contains(t, FlowName(&anon), "anonymousFlow")
}

type anonymousFlow struct{ hooks Hooks }

func (f *anonymousFlow) Update() (Flow, error) { return nil, nil }
func (f *anonymousFlow) Hooks() *Hooks         { return &f.hooks }

func TestAsMachine(t *testing.T) {
	table := lifecycleTable(t)
	m, err := NewMachine(table, 0, Immediate)
	require.NoError(t, err)

	mf := NewMachineFlow("plain", m)
	got, ok := AsMachine(mf)
	require.True(t, ok)
	assert.Same(t, m, got)

	cf := NewCompositeFlow("composite", m)
	got, ok = AsMachine(cf)
	require.True(t, ok)
	assert.Same(t, m, got)

	_, ok = AsMachine(NewLeafFlow("leaf", nil))
	assert.False(t, ok)
}

func TestCompositeFlow_DelegatesAndResumes(t *testing.T) {
	table, err := NewTable("parent").
		States("working", "delegating", "finished").
		Events("handoff", "resume").
		Transition("working", "handoff", "delegating").
		Transition("delegating", "resume", "finished").
		Build()
	require.NoError(t, err)

	handoff, _ := table.EventByName("handoff")
	resume, _ := table.EventByName("resume")
	delegating, _ := table.StateByName("delegating")
	finished, _ := table.StateByName("finished")

	m, err := NewMachine(table, 0, Immediate)
	require.NoError(t, err)

	child := NewLeafFlow("child", nil)
	c := NewCompositeFlow("parent", m).
		Script(handoff).
		DoneIn(finished).
		ResumeOn(resume).
		Delegate(delegating, child)

	assert.True(t, c.HasChild(child))
	assert.False(t, c.HasChild(NewLeafFlow("stranger", nil)))

	next, err := c.Update()
	require.NoError(t, err)
	assert.Equal(t, Flow(child), next, "entering the delegated state hands off")

	// The driver fires ExitChild when the child finishes; the composite's
	// resume wiring reacts by feeding its own machine.
	require.NoError(t, c.Hooks().ExitChild.Fire(child))
	require.Equal(t, 1, c.Machine().QueueLen())

	next, err = c.Update()
	require.NoError(t, err)
	assert.Nil(t, next)
	assert.Equal(t, finished, m.Current())
}
