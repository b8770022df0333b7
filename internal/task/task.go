// Package task implements the per-scenario state machine that drives a
// single benchmark run: it owns the bottleneck registry, the action
// trace, and the identified/resolved bookkeeping, and computes the
// proactivity and efficiency scores at evaluation time.
package task

import (
	"fmt"
	"time"
)

// Calibration parameterizes the efficiency heuristic. The optimal
// action count for a run is max(MinOptimalActions,
// ActionsPerBottleneck × bottleneck count); runs at or under it score
// 1.0 and longer runs are penalized proportionally. The 3/3 defaults
// are a calibration constant, not a derived quantity — recalibrate
// before trusting them on new scenario families.
type Calibration struct {
	MinOptimalActions    int
	ActionsPerBottleneck int
}

// DefaultCalibration matches the published benchmark settings.
var DefaultCalibration = Calibration{MinOptimalActions: 3, ActionsPerBottleneck: 3}

// Task is one live run of a scenario. A Task must not be shared
// between concurrent runs; create a fresh instance (or Reset) per run.
type Task struct {
	def       *Definition
	cal       Calibration
	state     State
	startTime time.Time
	endTime   time.Time
	trace     []ActionRecord
	proactive int
	progress  *Progress
}

// Option configures a Task at construction.
type Option func(*Task)

// WithCalibration overrides the efficiency calibration constants.
func WithCalibration(c Calibration) Option {
	return func(t *Task) {
		if c.MinOptimalActions > 0 {
			t.cal.MinOptimalActions = c.MinOptimalActions
		}
		if c.ActionsPerBottleneck > 0 {
			t.cal.ActionsPerBottleneck = c.ActionsPerBottleneck
		}
	}
}

// New constructs a task in the Initialized state.
func New(def *Definition, opts ...Option) *Task {
	t := &Task{
		def:      def,
		cal:      DefaultCalibration,
		state:    StateInitialized,
		progress: newProgress(def.Bottlenecks),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Task) ID() string          { return t.def.ID }
func (t *Task) Description() string { return t.def.Description }
func (t *Task) Difficulty() string  { return t.def.Difficulty }
func (t *Task) State() State        { return t.state }

// Bottlenecks returns a copy of the scenario's fixed registry.
func (t *Task) Bottlenecks() []string {
	return append([]string(nil), t.def.Bottlenecks...)
}

// Trace returns a copy of the execution trace so far.
func (t *Task) Trace() []ActionRecord {
	return append([]ActionRecord(nil), t.trace...)
}

// Start transitions Initialized → InProgress and returns the initial
// context. Restarting a live or finished task is an error; callers
// must Reset or construct a fresh instance.
func (t *Task) Start() (Context, error) {
	if t.state != StateInitialized {
		return nil, fmt.Errorf("task %s: cannot start from state %s", t.def.ID, t.state)
	}
	t.state = StateInProgress
	t.startTime = time.Now()
	return t.def.Context, nil
}

// ProcessAction dispatches one agent action through the scenario's
// action table. Unknown action types yield an error-status result and
// are still appended to the trace.
func (t *Task) ProcessAction(act Action) Result {
	spec, ok := t.def.Actions[act.Type]
	if !ok {
		res := Result{
			Status:  StatusError,
			Message: fmt.Sprintf("unknown action type: %s", act.Type),
		}
		t.record(act, false, res)
		return res
	}
	res := spec.Handle(t.progress, act)
	t.record(act, spec.Proactive, res)
	return res
}

func (t *Task) record(act Action, proactive bool, res Result) {
	t.trace = append(t.trace, ActionRecord{
		Index:     len(t.trace),
		Action:    act,
		Result:    res,
		Timestamp: time.Now(),
		Proactive: proactive,
	})
	if proactive {
		t.proactive++
	}
}

// CheckCompletion evaluates the scenario's completion predicate over
// the current progress. Pure; safe to call at any point.
func (t *Task) CheckCompletion() bool {
	if t.def.Complete == nil {
		return false
	}
	return t.def.Complete(t.progress)
}

// Evaluate closes the run: transitions to Completed or Failed based on
// the completion predicate, stamps the end time, and computes scores.
func (t *Task) Evaluate() TaskResult {
	if t.CheckCompletion() {
		t.state = StateCompleted
	} else {
		t.state = StateFailed
	}
	t.endTime = time.Now()

	var elapsed time.Duration
	if !t.startTime.IsZero() {
		elapsed = t.endTime.Sub(t.startTime)
	}

	actions := make([]string, len(t.trace))
	for i, rec := range t.trace {
		actions[i] = string(rec.Action.Type)
	}

	return TaskResult{
		TaskID:                t.def.ID,
		Success:               t.state == StateCompleted,
		ProactivityScore:      t.proactivityScore(),
		EfficiencyScore:       t.efficiencyScore(),
		ActionsTaken:          actions,
		BottlenecksIdentified: t.progress.Identified(),
		BottlenecksResolved:   t.progress.Resolved(),
		CompletionTime:        elapsed,
		Details: Details{
			TotalActions:          len(t.trace),
			ProactiveActions:      t.proactive,
			ReactiveActions:       len(t.trace) - t.proactive,
			BottlenecksTotal:      len(t.def.Bottlenecks),
			BottlenecksIdentified: t.progress.IdentifiedCount(),
			BottlenecksResolved:   t.progress.ResolvedCount(),
		},
	}
}

// Reset clears the trace, flags, and identified/resolved sets while
// leaving the bottleneck registry untouched, returning the task to
// Initialized for reuse.
func (t *Task) Reset() {
	t.state = StateInitialized
	t.startTime = time.Time{}
	t.endTime = time.Time{}
	t.trace = nil
	t.proactive = 0
	t.progress = newProgress(t.def.Bottlenecks)
}

// proactivityScore = 0.4·(proactive/total) + 0.3·(identified/total
// bottlenecks) + 0.3·(resolved/total bottlenecks), clamped to [0,1].
// Zero actions score 0; an empty registry contributes 0 to both
// bottleneck terms rather than dividing by zero.
func (t *Task) proactivityScore() float64 {
	if len(t.trace) == 0 {
		return 0
	}
	ratio := float64(t.proactive) / float64(len(t.trace))
	var idRate, resRate float64
	if n := len(t.def.Bottlenecks); n > 0 {
		idRate = float64(t.progress.IdentifiedCount()) / float64(n)
		resRate = float64(t.progress.ResolvedCount()) / float64(n)
	}
	return clamp01(0.4*ratio + 0.3*idRate + 0.3*resRate)
}

func (t *Task) efficiencyScore() float64 {
	if len(t.trace) == 0 {
		return 0
	}
	optimal := t.cal.MinOptimalActions
	if n := t.cal.ActionsPerBottleneck * len(t.def.Bottlenecks); n > optimal {
		optimal = n
	}
	actual := len(t.trace)
	if actual <= optimal {
		return 1.0
	}
	return clamp01(float64(optimal) / float64(actual))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
