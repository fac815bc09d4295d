package election

// MemberID is the stable small integer identity of a cluster member.
type MemberID int32

// State is the election FSM's current state. Codes are stable for
// external observability — the *Election State* counter publishes this
// value verbatim.
type State uint64

const (
	StateInit State = iota
	StateCanvass
	StateNominate
	StateCandidateBallot
	StateFollowerBallot
	StateLeaderTransition
	StateLeaderReady
	StateFollowerCatchup
	StateFollowerTransition
	StateFollowerReady
)

// String returns the name of the state, as used in log fields.
func (s State) String() string {
	switch s {
	case StateInit:
		return "INIT"
	case StateCanvass:
		return "CANVASS"
	case StateNominate:
		return "NOMINATE"
	case StateCandidateBallot:
		return "CANDIDATE_BALLOT"
	case StateFollowerBallot:
		return "FOLLOWER_BALLOT"
	case StateLeaderTransition:
		return "LEADER_TRANSITION"
	case StateLeaderReady:
		return "LEADER_READY"
	case StateFollowerCatchup:
		return "FOLLOWER_CATCHUP"
	case StateFollowerTransition:
		return "FOLLOWER_TRANSITION"
	case StateFollowerReady:
		return "FOLLOWER_READY"
	default:
		return "UNKNOWN"
	}
}

// code returns the stable numeric code for the state, per the state table.
// It is the same value as the State's own uint64 representation; kept as a
// named accessor so callers reading the observable counter don't have to
// know that State is backed by an integer.
func (s State) code() uint64 { return uint64(s) }

// stateFromCode looks up a State by its stable code, mirroring the Java
// source's State.get(code) static lookup. It panics on an unknown code —
// an invariant violation, not a recoverable error.
func stateFromCode(code uint64) State {
	if code > uint64(StateFollowerReady) {
		panic(&ElectionPanic{Reason: "unknown state code read back from observable counter"})
	}
	return State(code)
}

// VoteState is the tri-state of a member's recorded vote in the current
// ballot: unknown (not yet reported), yes, or no.
type VoteState int8

const (
	VoteUnknown VoteState = iota
	VoteYes
	VoteNo
)

// sentinelLogPosition marks a MemberTable row whose log position has not
// yet been reported, or has been deliberately reset (e.g. on entering
// LEADER_TRANSITION).
const sentinelLogPosition int64 = -1

// RecoveryPlan describes where this member's log ends on entry to the
// election. Only LastAppendedLogPosition is used by the core; the rest of
// the plan (segment layout, snapshot markers) belongs to the host agent.
type RecoveryPlan struct {
	LastAppendedLogPosition int64
}
