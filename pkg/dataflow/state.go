package dataflow

// State is the Dataflow job state as reported by the service.
type State string

const (
	StateUnknown   State = "JOB_STATE_UNKNOWN"
	StateStopped   State = "JOB_STATE_STOPPED"
	StateRunning   State = "JOB_STATE_RUNNING"
	StateDone      State = "JOB_STATE_DONE"
	StateFailed    State = "JOB_STATE_FAILED"
	StateCancelled State = "JOB_STATE_CANCELLED"
	StateUpdated   State = "JOB_STATE_UPDATED"
	StateDraining  State = "JOB_STATE_DRAINING"
	StateDrained   State = "JOB_STATE_DRAINED"
	StatePending   State = "JOB_STATE_PENDING"
	StateQueued    State = "JOB_STATE_QUEUED"
)

// Terminal reports whether no further state transition can occur.
func (s State) Terminal() bool {
	switch s {
	case StateDone, StateFailed, StateCancelled, StateUpdated, StateDrained:
		return true
	}
	return false
}

// Succeeded reports whether the job finished successfully.
func (s State) Succeeded() bool {
	return s == StateDone
}
