package election

// CanvassPosition is broadcast periodically during CANVASS so peers can
// discover the best-positioned candidate.
type CanvassPosition struct {
	LogPos   int64
	Term     int64
	SenderID MemberID
}

// RequestVote is sent to every peer from CANDIDATE_BALLOT, one per
// ballot-unsent row.
type RequestVote struct {
	LogPos      int64
	Term        int64
	CandidateID MemberID
}

// Vote is the reply to a RequestVote.
type Vote struct {
	Term        int64
	CandidateID MemberID
	VoterID     MemberID
	VoteYes     bool
}

// NewLeadershipTerm is broadcast from LEADER_READY as a heartbeat, and
// sent from LEADER_READY directly to a peer whose CanvassPosition carries
// a term no higher than the leader's, to bring it in under that term.
type NewLeadershipTerm struct {
	LogPos       int64
	Term         int64
	LeaderID     MemberID
	LogSessionID int32
}

// AppendedPosition is sent from FOLLOWER_READY to the leader to confirm
// the follower has appended up to LogPos under Term, and is the signal
// LEADER_READY waits for before calling electionComplete.
type AppendedPosition struct {
	LogPos   int64
	Term     int64
	SenderID MemberID
}

// CommitPosition is a narrowly-scoped sixth inbound message, carrying no
// action beyond detecting a higher term than self — handled identically
// to a higher-term NewLeadershipTerm. It is not part of the FSM's own
// outbound vocabulary.
type CommitPosition struct {
	LogPos   int64
	Term     int64
	LeaderID MemberID
}

// MessageTransport is the non-blocking pub/sub transport the FSM sends
// and receives messages over. Offer is fallible: a false return is
// back-pressure, to be retried on a later tick; it must never block.
type MessageTransport interface {
	OfferCanvassPosition(msg CanvassPosition) bool
	OfferRequestVote(to MemberID, msg RequestVote) bool
	OfferVote(to MemberID, msg Vote) bool
	OfferNewLeadershipTerm(msg NewLeadershipTerm) bool
	OfferNewLeadershipTermTo(to MemberID, msg NewLeadershipTerm) bool
	OfferAppendedPosition(to MemberID, msg AppendedPosition) bool
}
