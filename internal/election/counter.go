package election

import "sync/atomic"

// StateCounter is the single observable integer named "Election State".
// It is single-writer (the FSM's own goroutine), multiple-reader; writes
// use a release-ordered store so external observers — the status
// endpoint, tests — see monotonic code transitions without needing a
// lock. Allocated lazily on the first INIT tick, released on Close.
type StateCounter struct {
	value atomic.Uint64
}

// NewStateCounter allocates a new counter, initialized to INIT's code.
func NewStateCounter() *StateCounter {
	c := &StateCounter{}
	c.value.Store(StateInit.code())
	return c
}

// Set publishes a new state code. Called only from goto, on the FSM's
// single thread.
func (c *StateCounter) Set(s State) {
	c.value.Store(s.code())
}

// Get reads the current published state code.
func (c *StateCounter) Get() State {
	return stateFromCode(c.value.Load())
}

// Close releases the counter. There is no underlying OS resource in this
// port (the teacher's Java source allocates a shared-memory counter via
// an Aeron counters manager); Close exists so callers have one place to
// stop reading after an election completes.
func (c *StateCounter) Close() {}
