package flowlog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	flowkit "github.com/shoo/voile-sub004"
)

func newMachine(t *testing.T) *flowkit.Machine {
	t.Helper()
	table, err := flowkit.NewTable("lifecycle").
		States("idle", "running", "done").
		Events("start", "finish").
		Transition("idle", "start", "running").
		Transition("running", "finish", "done").
		Build()
	require.NoError(t, err)

	m, err := flowkit.NewMachine(table, 0, flowkit.Immediate)
	require.NoError(t, err)
	return m
}

func TestMachine_LogsAllStreams(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := zap.New(core).Sugar()

	m := newMachine(t)
	detach := Machine(log, "lifecycle", m)
	defer detach()

	start, _ := m.Table().EventByName("start")
	finish, _ := m.Table().EventByName("finish")

	m.Enqueue(start)
	m.Enqueue(finish)
	m.Enqueue(start) // no transition from done
	require.NoError(t, m.Consume(), "logging handlers must never fail the fire round")

	assert.Len(t, logs.FilterMessage("event consumed").All(), 3)
	assert.Len(t, logs.FilterMessage("state changed").All(), 2)
	assert.Len(t, logs.FilterMessage("unmatched transition").All(), 1)

	changed := logs.FilterMessage("state changed").All()[0].ContextMap()
	assert.Equal(t, "idle", changed["from"])
	assert.Equal(t, "running", changed["to"])
}

func TestMachine_DetachStopsLogging(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := zap.New(core).Sugar()

	m := newMachine(t)
	detach := Machine(log, "lifecycle", m)
	detach()

	start, _ := m.Table().EventByName("start")
	m.Enqueue(start)
	require.NoError(t, m.Consume())

	assert.Zero(t, logs.Len())
}

func TestFlows_LogsLifecycleWithRunID(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := zap.New(core).Sugar()

	table, err := flowkit.NewTable("parent").
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

	m, err := flowkit.NewMachine(table, 0, flowkit.Immediate)
	require.NoError(t, err)

	parent := flowkit.NewCompositeFlow("parent", m).
		Script(handoff).
		DoneIn(finished).
		ResumeOn(resume).
		Delegate(delegating, flowkit.NewLeafFlow("child", nil))

	detach := Flows(log, parent)
	defer detach()

	require.NoError(t, flowkit.NewDriver(parent).Run())

	entered := logs.FilterMessage("entered child flow").All()
	exited := logs.FilterMessage("exited child flow").All()
	require.Len(t, entered, 1)
	require.Len(t, exited, 1)

	assert.Equal(t, "child", entered[0].ContextMap()["child"])
	assert.Equal(t, "parent", entered[0].ContextMap()["parent"])

	run := entered[0].ContextMap()["run"]
	assert.NotEmpty(t, run)
	assert.Equal(t, run, exited[0].ContextMap()["run"], "one attach shares one run id")
}
