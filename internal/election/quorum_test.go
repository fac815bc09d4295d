package election

import "testing"

func TestQuorumCalculator_UnanimousCandidate(t *testing.T) {
	q := QuorumCalculator{}

	t.Run("false when a peer hasn't reported", func(t *testing.T) {
		tbl := NewMemberTable(1, []MemberID{1, 2, 3})
		tbl.UpdatePosition(1, 5, 100)
		if q.UnanimousCandidate(tbl) {
			t.Fatal("expected false: peers haven't reported")
		}
	})

	t.Run("true when self dominates every reporter", func(t *testing.T) {
		tbl := NewMemberTable(1, []MemberID{1, 2, 3})
		tbl.UpdatePosition(1, 5, 100)
		tbl.UpdatePosition(2, 4, 90)
		tbl.UpdatePosition(3, 5, 80)
		if !q.UnanimousCandidate(tbl) {
			t.Fatal("expected true: self's (term,pos,id) dominates")
		}
	})

	t.Run("false when a peer's key dominates self", func(t *testing.T) {
		tbl := NewMemberTable(1, []MemberID{1, 2, 3})
		tbl.UpdatePosition(1, 5, 100)
		tbl.UpdatePosition(2, 6, 90)
		tbl.UpdatePosition(3, 5, 80)
		if q.UnanimousCandidate(tbl) {
			t.Fatal("expected false: member 2 has a higher term")
		}
	})
}

func TestQuorumCalculator_QuorumCandidate(t *testing.T) {
	q := QuorumCalculator{}

	t.Run("true once quorum has reported and self dominates", func(t *testing.T) {
		tbl := NewMemberTable(1, []MemberID{1, 2, 3, 4, 5})
		tbl.UpdatePosition(1, 5, 100)
		tbl.UpdatePosition(2, 4, 90)
		// Quorum for 5 members is 3; self + member 2 = 2 reported, not enough yet.
		if q.QuorumCandidate(tbl) {
			t.Fatal("expected false: only 2 of 5 reported")
		}
		tbl.UpdatePosition(3, 4, 80)
		if !q.QuorumCandidate(tbl) {
			t.Fatal("expected true: 3 of 5 reported and self dominates")
		}
	})

	t.Run("false when a reporter dominates self", func(t *testing.T) {
		tbl := NewMemberTable(1, []MemberID{1, 2, 3})
		tbl.UpdatePosition(1, 5, 100)
		tbl.UpdatePosition(2, 5, 200)
		if q.QuorumCandidate(tbl) {
			t.Fatal("expected false: member 2 has a higher log position")
		}
	})
}

func TestQuorumCalculator_HasWonVoteOnFullCount(t *testing.T) {
	q := QuorumCalculator{}
	tbl := NewMemberTable(1, []MemberID{1, 2, 3})

	if q.HasWonVoteOnFullCount(tbl, 1) {
		t.Fatal("expected false: no votes recorded yet")
	}

	tbl.SetVote(1, VoteYes)
	tbl.SetVote(2, VoteYes)
	tbl.SetVote(3, VoteNo)
	if !q.HasWonVoteOnFullCount(tbl, 1) {
		t.Fatal("expected true: 2 of 3 yes, quorum=2, all reported")
	}
}

func TestQuorumCalculator_HasWonVoteOnFullCount_OutstandingAbstention(t *testing.T) {
	q := QuorumCalculator{}
	tbl := NewMemberTable(1, []MemberID{1, 2, 3})
	tbl.SetVote(1, VoteYes)
	tbl.SetVote(2, VoteYes)
	// member 3 still VoteUnknown

	if q.HasWonVoteOnFullCount(tbl, 1) {
		t.Fatal("expected false: not every member has a definite vote")
	}
}

func TestQuorumCalculator_HasMajorityVote(t *testing.T) {
	q := QuorumCalculator{}
	tbl := NewMemberTable(1, []MemberID{1, 2, 3})
	tbl.SetVote(1, VoteYes)
	tbl.SetVote(2, VoteYes)
	// member 3 still outstanding

	if !q.HasMajorityVote(tbl, 1) {
		t.Fatal("expected true: 2 yes votes reach quorum regardless of abstention")
	}
}

func TestQuorumCalculator_HaveVotersReachedPosition(t *testing.T) {
	q := QuorumCalculator{}
	tbl := NewMemberTable(1, []MemberID{1, 2, 3})
	tbl.SetVote(1, VoteYes)
	tbl.SetVote(2, VoteYes)
	tbl.SetVote(3, VoteNo)

	tbl.UpdatePosition(1, 5, 100)
	tbl.UpdatePosition(2, 5, 100)
	tbl.UpdatePosition(3, 1, 1) // voted no, shouldn't matter

	if !q.HaveVotersReachedPosition(tbl, 100, 5) {
		t.Fatal("expected true: every yes-voter has reached pos=100 at term=5")
	}

	tbl.UpdatePosition(2, 5, 50)
	if q.HaveVotersReachedPosition(tbl, 100, 5) {
		t.Fatal("expected false: member 2 hasn't reached pos=100")
	}
}
