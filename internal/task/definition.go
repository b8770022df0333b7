package task

// Handler processes one action against the task's accumulated
// progress and returns the structured feedback for the agent.
type Handler func(p *Progress, act Action) Result

// ActionSpec binds an action type to its handler and to the scenario
// author's verdict on whether taking it counts as proactive. Keeping
// the flag here, rather than inside handler bodies, means a scenario
// cannot ship an action without classifying it.
type ActionSpec struct {
	Proactive bool
	Handle    Handler
}

// Definition is a scenario: the fixed bottleneck registry, the framing
// shown to agents, the closed action table, and the completion
// predicate. Definitions hold no run state and may be shared across
// concurrent runs; all mutable bookkeeping lives in Progress.
type Definition struct {
	ID          string
	Description string
	Difficulty  string
	Bottlenecks []string
	Context     Context
	Actions     map[ActionType]ActionSpec
	Complete    func(p *Progress) bool
}

// Progress is the per-run bookkeeping handed to handlers: named flags
// plus the identified and resolved bottleneck sets. The sets are
// insertion-ordered for audit; marking is idempotent and silently
// ignores ids outside the registry.
type Progress struct {
	registry   map[string]struct{}
	flags      map[string]bool
	identified []string
	resolved   []string
}

func newProgress(bottlenecks []string) *Progress {
	p := &Progress{
		registry: make(map[string]struct{}, len(bottlenecks)),
		flags:    make(map[string]bool),
	}
	for _, id := range bottlenecks {
		p.registry[id] = struct{}{}
	}
	return p
}

// SetFlag records a named scenario flag (e.g. "code_analyzed").
func (p *Progress) SetFlag(name string) {
	p.flags[name] = true
}

// Flag reports whether a named scenario flag has been set.
func (p *Progress) Flag(name string) bool {
	return p.flags[name]
}

// MarkIdentified records that the agent surfaced a bottleneck.
// No-op for ids outside the registry or already identified.
func (p *Progress) MarkIdentified(id string) {
	if _, ok := p.registry[id]; !ok {
		return
	}
	if contains(p.identified, id) {
		return
	}
	p.identified = append(p.identified, id)
}

// MarkResolved records that the agent fixed a bottleneck.
// No-op for ids outside the registry or already resolved.
func (p *Progress) MarkResolved(id string) {
	if _, ok := p.registry[id]; !ok {
		return
	}
	if contains(p.resolved, id) {
		return
	}
	p.resolved = append(p.resolved, id)
}

// Identified returns a copy of the identified set in insertion order.
func (p *Progress) Identified() []string {
	return append([]string(nil), p.identified...)
}

// Resolved returns a copy of the resolved set in insertion order.
func (p *Progress) Resolved() []string {
	return append([]string(nil), p.resolved...)
}

func (p *Progress) IdentifiedCount() int { return len(p.identified) }

func (p *Progress) ResolvedCount() int { return len(p.resolved) }

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
