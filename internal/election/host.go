package election

// HostRole is the role hint the FSM pushes to the host agent. The FSM's
// own State is the source of truth; this is advisory, mirroring the
// teacher's serverState.state role tracking.
type HostRole int8

const (
	RoleFollower HostRole = iota
	RoleCandidate
)

// HostAgent is the external collaborator that owns the log stream, serves
// clients, and tracks a member's high-level role. The FSM instructs it
// through this small command surface; it never reaches into the host's
// internals.
type HostAgent interface {
	// Role pushes a role hint. The host uses this only to answer "am I
	// still a candidate for this exact term/id" queries from onVote; it
	// never drives FSM behavior on its own.
	Role(role HostRole)

	// CurrentRole reports the host's last-pushed role hint. onVote
	// consults this to guard against a stale Vote arriving after the FSM
	// has moved past CANDIDATE_BALLOT in the same tick the role hint has
	// not yet been updated for.
	CurrentRole() HostRole

	// BecomeLeader prepares a leader log stream and returns the session
	// id new followers subscribe under. Must succeed or the FSM is
	// aborted.
	BecomeLeader() (logSessionID int32, err error)

	// UpdateMemberDetails refreshes the host's view of peers after catch-up.
	UpdateMemberDetails()

	// RecordLogAsFollower instructs the host to begin recording the given
	// log-stream channel.
	RecordLogAsFollower(channelURI string, logSessionID int32) error

	// AwaitServicesReady blocks the host's own startup gating, not the
	// FSM; the FSM calls it once on the FOLLOWER_TRANSITION path and
	// treats it as fire-and-forget from its own perspective.
	AwaitServicesReady(channelURI string, logSessionID int32)

	// CatchupLog hands the completed catch-up result to the host so it
	// can transition its log writer.
	CatchupLog(coordinator *CatchUpCoordinator)

	// ElectionComplete is terminal: after this call the FSM releases its
	// resources and must not be ticked again.
	ElectionComplete()
}
