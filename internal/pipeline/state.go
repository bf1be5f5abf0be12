package pipeline

import "sync"

// State is a snapshot of one run's progress. External readers only
// ever see copies; the pipeline worker is the sole mutator.
type State struct {
	Percent         int
	Status          string
	Log             []string
	IsRunning       bool
	IsComplete      bool
	CancelRequested bool
	OutputPath      string
	Err             string
}

// stateStore guards the live run state behind a single lock so a
// reader never observes a torn update (percent advanced but status
// stale).
type stateStore struct {
	mu sync.Mutex
	s  State
}

// reset tears the previous run's state down at the start of a new run.
func (st *stateStore) reset() {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.s = State{IsRunning: true}
}

// snapshot returns a deep copy of the current state.
func (st *stateStore) snapshot() State {
	st.mu.Lock()
	defer st.mu.Unlock()
	out := st.s
	out.Log = append([]string(nil), st.s.Log...)
	return out
}

// setProgress advances percent and status. Percent never decreases
// within a run.
func (st *stateStore) setProgress(percent int, status string) (int, string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	if percent < st.s.Percent {
		percent = st.s.Percent
	}
	st.s.Percent = percent
	st.s.Status = status
	return percent, status
}

// appendLog appends to the run log, which is never truncated mid-run.
func (st *stateStore) appendLog(message string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.s.Log = append(st.s.Log, message)
}

// requestCancel flips the cooperative cancellation flag.
func (st *stateStore) requestCancel() {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.s.CancelRequested = true
}

func (st *stateStore) cancelRequested() bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.s.CancelRequested
}

// finish records the terminal outcome and marks the run stopped.
func (st *stateStore) finish(res Result) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.s.IsRunning = false
	st.s.IsComplete = res.Success
	st.s.OutputPath = res.OutputPath
	if res.Err != nil {
		st.s.Err = res.Err.Error()
	}
}
