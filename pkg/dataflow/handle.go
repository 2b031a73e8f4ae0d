package dataflow

import (
	"context"
	"sync"
)

// JobHandle is the caller's reference to one remote job. It exposes the
// current state synchronously and a completion marker that resolves once
// the job reaches a terminal state. A handle is created by exactly one
// Submit call and is read-only for every other component.
type JobHandle struct {
	jobID string

	mu    sync.Mutex
	state State
	err   error
	done  chan struct{}
}

func NewJobHandle(jobID string) *JobHandle {
	return &JobHandle{
		jobID: jobID,
		state: StateUnknown,
		done:  make(chan struct{}),
	}
}

func (h *JobHandle) JobID() string {
	return h.jobID
}

// State returns the most recently observed job state.
func (h *JobHandle) State() State {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

// SetState records a state observation. Observations after the handle has
// resolved are ignored.
func (h *JobHandle) SetState(state State) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.resolvedLocked() {
		return
	}
	h.state = state
}

// Resolve marks the handle terminal with the given state. A non-nil err
// indicates the job could not be tracked to completion, not that the job
// itself failed; job failure is expressed through the state. Only the
// first call has any effect.
func (h *JobHandle) Resolve(state State, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.resolvedLocked() {
		return
	}
	h.state = state
	h.err = err
	close(h.done)
}

func (h *JobHandle) resolvedLocked() bool {
	select {
	case <-h.done:
		return true
	default:
		return false
	}
}

// Done returns the completion marker. It is closed once the job has
// reached a terminal state.
func (h *JobHandle) Done() <-chan struct{} {
	return h.done
}

// Err returns the tracking error, if any. Valid only after Done is closed.
func (h *JobHandle) Err() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.err
}

// Await blocks until the job resolves or ctx is cancelled.
func (h *JobHandle) Await(ctx context.Context) (State, error) {
	select {
	case <-ctx.Done():
		return h.State(), ctx.Err()
	case <-h.done:
		return h.State(), h.Err()
	}
}
