package hotreload

import "time"

// Phase is the position of a reload attempt in its lifecycle. Within one
// attempt phases only move forward; the reset to PhaseIdle happens between
// attempts.
type Phase int

const (
	PhaseIdle Phase = iota
	PhasePreparing
	PhaseCompiling
	PhaseLoading
	PhaseUpdatingInstances
	PhaseUpdatingSystems
	PhaseResuming
	PhaseComplete
	PhaseFailed
)

// InProgress reports whether a reload attempt is currently underway.
// Idle, Complete and Failed are terminal/resting states.
func (p Phase) InProgress() bool {
	return p != PhaseIdle && p != PhaseComplete && p != PhaseFailed
}

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhasePreparing:
		return "preparing"
	case PhaseCompiling:
		return "compiling"
	case PhaseLoading:
		return "loading"
	case PhaseUpdatingInstances:
		return "updating instances"
	case PhaseUpdatingSystems:
		return "updating systems"
	case PhaseResuming:
		return "resuming"
	case PhaseComplete:
		return "complete"
	case PhaseFailed:
		return "failed"
	}
	return "unknown"
}

// Status is a read-only snapshot of the coordinator's state. Callers receive
// copies and never mutate coordinator internals through one.
type Status struct {
	Phase            Phase
	Err              string
	StartTime        time.Time
	UpdatedInstances int
	UpdatedSystems   int
}
