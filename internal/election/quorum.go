package election

// QuorumCalculator is a namespace for the pure quorum-arithmetic
// functions over a MemberTable. It holds no state of its own; every
// function takes the table explicitly, so these are trivially unit
// testable without constructing an FSM.
type QuorumCalculator struct{}

// UnanimousCandidate reports whether every peer has reported a
// non-sentinel (term, pos) and self's (term, pos, id) is the greatest by
// lexicographic order over all members, including self.
func (QuorumCalculator) UnanimousCandidate(t *MemberTable) bool {
	selfKey := t.keyOf(t.Self())
	for _, peer := range t.Peers() {
		if t.LeadershipTermID(peer) == sentinelLogPosition && t.LogPosition(peer) == sentinelLogPosition {
			return false
		}
		if selfKey.less(t.keyOf(peer)) {
			return false
		}
	}
	return true
}

// QuorumCandidate reports whether at least m members (including self)
// have reported, and self's key dominates every reporter's key.
func (QuorumCalculator) QuorumCandidate(t *MemberTable) bool {
	selfKey := t.keyOf(t.Self())
	reported := 1 // self always counts as reported
	for _, peer := range t.Peers() {
		if t.LeadershipTermID(peer) == sentinelLogPosition && t.LogPosition(peer) == sentinelLogPosition {
			continue
		}
		reported++
		if selfKey.less(t.keyOf(peer)) {
			return false
		}
	}
	return reported >= t.Quorum()
}

// HasWonVoteOnFullCount reports whether every member has a definite vote
// recorded for term and yes-votes reach quorum.
func (QuorumCalculator) HasWonVoteOnFullCount(t *MemberTable, term int64) bool {
	yes := 0
	for _, id := range t.IDs() {
		switch t.VoteOf(id) {
		case VoteYes:
			yes++
		case VoteNo:
			// definite, counted as reported but not yes
		default:
			return false
		}
	}
	_ = term // votes are scoped to the current ballot's term by construction
	return yes >= t.Quorum()
}

// HasMajorityVote reports whether yes-votes for the current ballot reach
// quorum, irrespective of any still-outstanding abstentions.
func (QuorumCalculator) HasMajorityVote(t *MemberTable, term int64) bool {
	yes := 0
	for _, id := range t.IDs() {
		if t.VoteOf(id) == VoteYes {
			yes++
		}
	}
	_ = term
	return yes >= t.Quorum()
}

// HaveVotersReachedPosition reports whether every member that voted yes
// has reported logPosition >= pos under exactly leadershipTermID == term.
func (QuorumCalculator) HaveVotersReachedPosition(t *MemberTable, pos int64, term int64) bool {
	for _, id := range t.IDs() {
		if t.VoteOf(id) != VoteYes {
			continue
		}
		if t.LogPosition(id) < pos || t.LeadershipTermID(id) != term {
			return false
		}
	}
	return true
}
