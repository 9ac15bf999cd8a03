package state

import "github.com/jonathan/course-compass/internal/types"

// TimelineState backs the timeline view.
type TimelineState struct {
	Plan         *types.TimelinePlan
	SelectedPath types.PathKey
	Generating   bool
	Error        *string
}

// InitialTimelineState is the state Reset returns to.
func InitialTimelineState() TimelineState {
	return TimelineState{SelectedPath: types.PathBalanced}
}

// CurrentPath returns the selected path of the loaded plan.
func (s TimelineState) CurrentPath() (types.TimelinePath, bool) {
	if s.Plan == nil {
		return types.TimelinePath{}, false
	}
	return s.Plan.Path(s.SelectedPath)
}

// SetPlan stores a freshly generated plan and clears any previous error.
func SetPlan(plan *types.TimelinePlan) func(TimelineState) TimelineState {
	return func(s TimelineState) TimelineState {
		s.Plan = plan
		s.Error = nil
		return s
	}
}

// SelectPath switches the displayed path.
func SelectPath(key types.PathKey) func(TimelineState) TimelineState {
	return func(s TimelineState) TimelineState {
		s.SelectedPath = key
		return s
	}
}

// SetGenerating marks a generation request as in flight or done.
func SetGenerating(generating bool) func(TimelineState) TimelineState {
	return func(s TimelineState) TimelineState {
		s.Generating = generating
		return s
	}
}

// SetTimelineError records (or clears, with "") an error. Generation always stops.
func SetTimelineError(msg string) func(TimelineState) TimelineState {
	return func(s TimelineState) TimelineState {
		s.Error = errorPtr(msg)
		s.Generating = false
		return s
	}
}

// ResetTimeline discards everything, including the selected path.
func ResetTimeline(TimelineState) TimelineState {
	return InitialTimelineState()
}
