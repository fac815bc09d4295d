package election

import (
	"sync"
	"time"
)

// electionContext is the FSM's mutable state, guarded by a mutex so the
// status endpoint can take a safe read-only snapshot from another
// goroutine while the FSM's own thread mutates it — the same
// get/set-behind-a-lock shape the teacher uses for its serverState.
type electionContext struct {
	mu sync.RWMutex

	state State

	leadershipTermID int64
	logPosition      int64
	logSessionID     int32
	leaderMember     *MemberID
	isStartup        bool

	timeOfLastStateChange time.Time
	timeOfLastBroadcast   time.Time
	nominationDeadline    time.Time

	catchUp *CatchUpCoordinator
}

func (c *electionContext) getState() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

func (c *electionContext) setState(s State) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = s
}

func (c *electionContext) getLeadershipTermID() int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.leadershipTermID
}

func (c *electionContext) setLeadershipTermID(term int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.leadershipTermID = term
}

func (c *electionContext) getLogPosition() int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.logPosition
}

func (c *electionContext) setLogPosition(pos int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.logPosition = pos
}

func (c *electionContext) getLogSessionID() int32 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.logSessionID
}

func (c *electionContext) setLogSessionID(id int32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.logSessionID = id
}

func (c *electionContext) getLeaderMember() *MemberID {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.leaderMember
}

func (c *electionContext) setLeaderMember(id MemberID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.leaderMember = &id
}

func (c *electionContext) getTimeOfLastStateChange() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.timeOfLastStateChange
}

func (c *electionContext) setTimeOfLastStateChange(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.timeOfLastStateChange = now
}

func (c *electionContext) getTimeOfLastBroadcast() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.timeOfLastBroadcast
}

func (c *electionContext) setTimeOfLastBroadcast(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.timeOfLastBroadcast = now
}

func (c *electionContext) getNominationDeadline() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.nominationDeadline
}

func (c *electionContext) setNominationDeadline(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nominationDeadline = t
}

func (c *electionContext) getCatchUp() *CatchUpCoordinator {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.catchUp
}

func (c *electionContext) setCatchUp(cu *CatchUpCoordinator) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.catchUp = cu
}
