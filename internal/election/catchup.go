package election

// CatchUpCoordinator is the sub-FSM that brings a lagging follower's log
// up to the new leader's log before it subscribes to the live stream. It
// is instantiated lazily by onNewLeadershipTerm/onCommitPosition and
// owned exclusively by the FOLLOWER_CATCHUP state, which guarantees its
// release on every exit path via the state's exit hook.
type CatchUpCoordinator struct {
	leaderMemberID MemberID
	thisMemberID   MemberID
	fromPosition   int64
	target         int64

	archive ArchiveClient
	metrics *Metrics

	recoveryPlan   *RecoveryPlan
	leaderLogFound bool

	current int64
	done    bool
	lastErr error
}

// NewCatchUpCoordinator constructs a coordinator for copying the gap
// between fromPosition and targetPosition from leaderMemberID. The
// leader's recovery plan is not a constructor argument; it arrives later
// through OnLeaderRecoveryPlan.
func NewCatchUpCoordinator(leaderMemberID, thisMemberID MemberID, fromPosition, targetPosition int64, archive ArchiveClient, metrics *Metrics) *CatchUpCoordinator {
	return &CatchUpCoordinator{
		leaderMemberID: leaderMemberID,
		thisMemberID:   thisMemberID,
		fromPosition:   fromPosition,
		target:         targetPosition,
		archive:        archive,
		metrics:        metrics,
		current:        fromPosition,
	}
}

// OnLeaderRecoveryPlan accepts the leader's recovery-plan metadata,
// preserving the source's handler ordering: recovery plan before
// recording log, both before doWork/isDone polling begins in earnest.
func (c *CatchUpCoordinator) OnLeaderRecoveryPlan(plan RecoveryPlan) {
	c.recoveryPlan = &plan
}

// OnLeaderRecordingLog accepts the leader's recording-log metadata. This
// port doesn't need the payload beyond acknowledging receipt — the
// archive client handles actual segment addressing internally.
func (c *CatchUpCoordinator) OnLeaderRecordingLog() {
	c.leaderLogFound = true
}

// DoWork makes forward progress, returning the number of bytes copied by
// this call. A non-nil error indicates the underlying ArchiveClient
// failed; the caller (FOLLOWER_CATCHUP) is responsible for translating
// that into a CatchUpError and falling back to CANVASS.
func (c *CatchUpCoordinator) DoWork() (int64, error) {
	if c.done {
		return 0, nil
	}
	bytesCopied, newPosition, err := c.archive.FetchSegment(c.leaderMemberID, c.current, c.target)
	if err != nil {
		c.lastErr = err
		return 0, &CatchUpError{MemberID: c.leaderMemberID, Err: err}
	}
	if c.metrics != nil {
		c.metrics.RecordCatchUpBytes(bytesCopied)
	}
	c.current = newPosition
	if c.current >= c.target {
		c.current = c.target
		c.done = true
		if c.metrics != nil {
			c.metrics.RecordCatchUp()
		}
	}
	return bytesCopied, nil
}

// IsDone reports whether the local log end has reached the target.
func (c *CatchUpCoordinator) IsDone() bool { return c.done }

// TargetPosition is the position to adopt on completion.
func (c *CatchUpCoordinator) TargetPosition() int64 { return c.target }

// LeaderMemberID is the leader being caught up from.
func (c *CatchUpCoordinator) LeaderMemberID() MemberID { return c.leaderMemberID }

// Close releases the underlying ArchiveClient's resources. Called from
// the FOLLOWER_CATCHUP exit hook on every transition out of that state.
func (c *CatchUpCoordinator) Close() error {
	if c.archive == nil {
		return nil
	}
	return c.archive.Close()
}
