package election

import "sort"

// memberRow is one peer's mutable state. It has no lock of its own; see
// MemberTable.
type memberRow struct {
	id               MemberID
	logPosition      int64
	leadershipTermID int64
	votedFor         VoteState
	isBallotSent     bool
}

// MemberTable holds the per-peer state for every member known to the
// election, including thisMember (self). The set of members is fixed for
// the election's duration; only the rows' contents change. It is mutated
// only by the FSM's single thread and has no internal locking.
type MemberTable struct {
	selfID MemberID
	rows   map[MemberID]*memberRow
	order  []MemberID // stable iteration order, ids ascending
}

// NewMemberTable builds a table for the given self id and peer ids. Self
// is included in ids or added automatically if missing.
func NewMemberTable(selfID MemberID, ids []MemberID) *MemberTable {
	seen := make(map[MemberID]bool, len(ids)+1)
	all := make([]MemberID, 0, len(ids)+1)
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			all = append(all, id)
		}
	}
	if !seen[selfID] {
		all = append(all, selfID)
	}
	sort.Slice(all, func(i, j int) bool { return all[i] < all[j] })

	t := &MemberTable{
		selfID: selfID,
		rows:   make(map[MemberID]*memberRow, len(all)),
		order:  all,
	}
	for _, id := range all {
		t.rows[id] = &memberRow{id: id, logPosition: sentinelLogPosition, leadershipTermID: sentinelLogPosition, votedFor: VoteUnknown}
	}
	return t
}

// Self returns self's own member id.
func (t *MemberTable) Self() MemberID { return t.selfID }

// Size returns the total member count, n.
func (t *MemberTable) Size() int { return len(t.order) }

// Quorum returns m = floor(n/2) + 1.
func (t *MemberTable) Quorum() int { return t.Size()/2 + 1 }

// IDs returns every member id in stable ascending order, including self.
func (t *MemberTable) IDs() []MemberID {
	out := make([]MemberID, len(t.order))
	copy(out, t.order)
	return out
}

// Peers returns every member id except self, in stable ascending order.
func (t *MemberTable) Peers() []MemberID {
	out := make([]MemberID, 0, len(t.order)-1)
	for _, id := range t.order {
		if id != t.selfID {
			out = append(out, id)
		}
	}
	return out
}

func (t *MemberTable) row(id MemberID) *memberRow {
	r, ok := t.rows[id]
	if !ok {
		panic(&ElectionPanic{Reason: "unknown sender id in MemberTable"})
	}
	return r
}

// Has reports whether id is a known member.
func (t *MemberTable) Has(id MemberID) bool {
	_, ok := t.rows[id]
	return ok
}

// UpdatePosition records a reported (term, logPosition) for id,
// last-write-wins.
func (t *MemberTable) UpdatePosition(id MemberID, term, logPosition int64) {
	r := t.row(id)
	r.leadershipTermID = term
	r.logPosition = logPosition
}

// LogPosition returns id's last-reported log position.
func (t *MemberTable) LogPosition(id MemberID) int64 { return t.row(id).logPosition }

// LeadershipTermID returns id's last-reported leadership term.
func (t *MemberTable) LeadershipTermID(id MemberID) int64 { return t.row(id).leadershipTermID }

// SetLeadershipTermID records id's last-reported leadership term alone,
// without touching its log position — used by onVote, which carries no
// log position in its payload.
func (t *MemberTable) SetLeadershipTermID(id MemberID, term int64) { t.row(id).leadershipTermID = term }

// SetVote records id's vote in the current ballot.
func (t *MemberTable) SetVote(id MemberID, vote VoteState) { t.row(id).votedFor = vote }

// VoteOf returns id's recorded vote.
func (t *MemberTable) VoteOf(id MemberID) VoteState { return t.row(id).votedFor }

// IsBallotSent reports whether a RequestVote has already been sent to id
// in the current ballot.
func (t *MemberTable) IsBallotSent(id MemberID) bool { return t.row(id).isBallotSent }

// SetBallotSent marks id as having received a RequestVote in the current
// ballot. Called only after the transport accepts the send.
func (t *MemberTable) SetBallotSent(id MemberID, sent bool) { t.row(id).isBallotSent = sent }

// ResetCandidacy resets every row's ballot-sent/vote flags, used both on
// entering CANVASS (per the goto primitive) and on entering NOMINATE
// (self-vote yes).
func (t *MemberTable) ResetCandidacy() {
	for _, id := range t.order {
		r := t.rows[id]
		r.votedFor = VoteUnknown
		r.isBallotSent = false
	}
}

// ResetLogPositions sets every row's log position back to the sentinel,
// used on entering LEADER_TRANSITION before self's real position is
// republished.
func (t *MemberTable) ResetLogPositions() {
	for _, id := range t.order {
		t.rows[id].logPosition = sentinelLogPosition
	}
}

// candidateKey is the lexicographic ordering key (term, pos, id) used by
// both unanimousCandidate and quorumCandidate.
type candidateKey struct {
	term int64
	pos  int64
	id   MemberID
}

func (k candidateKey) less(o candidateKey) bool {
	if k.term != o.term {
		return k.term < o.term
	}
	if k.pos != o.pos {
		return k.pos < o.pos
	}
	return k.id < o.id
}

func (t *MemberTable) keyOf(id MemberID) candidateKey {
	r := t.row(id)
	return candidateKey{term: r.leadershipTermID, pos: r.logPosition, id: id}
}
