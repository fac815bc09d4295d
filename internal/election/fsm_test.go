package election

import (
	"errors"
	"testing"
	"time"

	mocks "electionfsm/internal/electiontest"
)

var (
	errTestArchiveDown        = errors.New("archive: connection reset")
	errTestBecomeLeaderFailed = errors.New("hostagent: becomeLeader failed")
)

func newTestConfig() Config {
	return Config{
		StatusInterval:          10 * time.Millisecond,
		LeaderHeartbeatInterval: 10 * time.Millisecond,
		ElectionTimeout:         100 * time.Millisecond,
		StartupStatusTimeout:    200 * time.Millisecond,
		LogChannel:              "election-log",
		Random:                  mocks.FixedRandom{Value: 0},
	}
}

func newTestFSM(selfID MemberID, peerIDs []MemberID, cfg Config, host *mocks.MockHostAgent, transport *mocks.MockTransport, recLog *mocks.MockRecordingLog, archive *mocks.MockArchiveClient) *ElectionFSM {
	members := NewMemberTable(selfID, peerIDs)
	metrics := NewMetrics()
	logger := mocks.NewMockLogger()
	return NewElectionFSM(members, cfg, transport, host, recLog, archive, metrics, logger, true)
}

func TestElectionFSM_SingleMemberClusterBecomesLeaderImmediately(t *testing.T) {
	host := mocks.NewMockHostAgent()
	transport := mocks.NewMockTransport()
	recLog := mocks.NewMockRecordingLog()
	fsm := newTestFSM(1, nil, newTestConfig(), host, transport, recLog, nil)

	now := time.Now()

	if err := fsm.Tick(now); err != nil { // INIT
		t.Fatalf("init tick: %v", err)
	}
	if fsm.State() != StateLeaderTransition {
		t.Fatalf("state after init = %v, want StateLeaderTransition", fsm.State())
	}

	if err := fsm.Tick(now); err != nil { // LEADER_TRANSITION
		t.Fatalf("leader-transition tick: %v", err)
	}
	if fsm.State() != StateLeaderReady {
		t.Fatalf("state after leader-transition = %v, want StateLeaderReady", fsm.State())
	}
	if host.BecomeLeaderCalls != 1 {
		t.Fatalf("BecomeLeaderCalls = %d, want 1", host.BecomeLeaderCalls)
	}

	if err := fsm.Tick(now); err != nil { // LEADER_READY -> finish
		t.Fatalf("leader-ready tick: %v", err)
	}
	if host.ElectionCompleteCalls != 1 {
		t.Fatalf("ElectionCompleteCalls = %d, want 1", host.ElectionCompleteCalls)
	}

	if err := fsm.Tick(now); err != ErrClosed {
		t.Fatalf("Tick after completion = %v, want ErrClosed", err)
	}
}

func TestElectionFSM_AppointedLeaderNominatesDirectly(t *testing.T) {
	host := mocks.NewMockHostAgent()
	transport := mocks.NewMockTransport()
	recLog := mocks.NewMockRecordingLog()
	cfg := newTestConfig()
	self := MemberID(1)
	cfg.AppointedLeaderID = &self

	fsm := newTestFSM(1, []MemberID{2, 3}, cfg, host, transport, recLog, nil)

	now := time.Now()
	if err := fsm.Tick(now); err != nil {
		t.Fatalf("init tick: %v", err)
	}
	if fsm.State() != StateNominate {
		t.Fatalf("state after init = %v, want StateNominate", fsm.State())
	}
}

func TestElectionFSM_UnanimousCandidacyAdvancesToNominate(t *testing.T) {
	host := mocks.NewMockHostAgent()
	transport := mocks.NewMockTransport()
	recLog := mocks.NewMockRecordingLog()
	// Self has the highest id, so it wins the (term, pos, id) tie-break
	// against peers reporting the same (term, pos).
	fsm := newTestFSM(3, []MemberID{1, 2}, newTestConfig(), host, transport, recLog, nil)

	now := time.Now()
	if err := fsm.Tick(now); err != nil { // INIT -> CANVASS
		t.Fatalf("init tick: %v", err)
	}
	if fsm.State() != StateCanvass {
		t.Fatalf("state after init = %v, want StateCanvass", fsm.State())
	}

	fsm.OnCanvassPosition(CanvassPosition{LogPos: 0, Term: 0, SenderID: 1}, now)
	fsm.OnCanvassPosition(CanvassPosition{LogPos: 0, Term: 0, SenderID: 2}, now)

	if err := fsm.Tick(now.Add(time.Millisecond)); err != nil {
		t.Fatalf("canvass tick: %v", err)
	}
	if fsm.State() != StateNominate {
		t.Fatalf("state after unanimous canvass = %v, want StateNominate", fsm.State())
	}
}

func TestElectionFSM_CandidateWinsQuorumAndBecomesLeader(t *testing.T) {
	host := mocks.NewMockHostAgent()
	transport := mocks.NewMockTransport()
	recLog := mocks.NewMockRecordingLog()
	fsm := newTestFSM(3, []MemberID{1, 2}, newTestConfig(), host, transport, recLog, nil)

	now := time.Now()
	_ = fsm.Tick(now) // INIT -> CANVASS

	fsm.OnCanvassPosition(CanvassPosition{LogPos: 0, Term: 0, SenderID: 1}, now)
	fsm.OnCanvassPosition(CanvassPosition{LogPos: 0, Term: 0, SenderID: 2}, now)

	now = now.Add(time.Millisecond)
	_ = fsm.Tick(now) // CANVASS -> NOMINATE

	now = now.Add(time.Millisecond)
	if err := fsm.Tick(now); err != nil { // NOMINATE -> CANDIDATE_BALLOT
		t.Fatalf("nominate tick: %v", err)
	}
	if fsm.State() != StateCandidateBallot {
		t.Fatalf("state = %v, want StateCandidateBallot", fsm.State())
	}
	if fsm.LeadershipTermID() != 1 {
		t.Fatalf("LeadershipTermID() = %d, want 1", fsm.LeadershipTermID())
	}

	if err := fsm.Tick(now); err != nil { // sends RequestVote to peers
		t.Fatalf("candidate-ballot tick: %v", err)
	}
	if len(transport.RequestVotesSent) != 2 {
		t.Fatalf("RequestVotesSent = %d, want 2", len(transport.RequestVotesSent))
	}

	fsm.OnVote(Vote{Term: 1, CandidateID: 3, VoterID: 1, VoteYes: true}, now)
	fsm.OnVote(Vote{Term: 1, CandidateID: 3, VoterID: 2, VoteYes: true}, now)

	if err := fsm.Tick(now); err != nil { // CANDIDATE_BALLOT -> LEADER_TRANSITION
		t.Fatalf("tick: %v", err)
	}
	if fsm.State() != StateLeaderTransition {
		t.Fatalf("state = %v, want StateLeaderTransition", fsm.State())
	}

	if err := fsm.Tick(now); err != nil { // LEADER_TRANSITION -> LEADER_READY
		t.Fatalf("leader-transition tick: %v", err)
	}
	if fsm.State() != StateLeaderReady {
		t.Fatalf("state = %v, want StateLeaderReady", fsm.State())
	}

	// Not yet finished: followers haven't reported reaching the new position.
	// The heartbeat shares the canvass broadcast timer, so let one
	// LeaderHeartbeatInterval pass before expecting a broadcast.
	now = now.Add(10 * time.Millisecond)
	if err := fsm.Tick(now); err != nil {
		t.Fatalf("leader-ready tick: %v", err)
	}
	if host.ElectionCompleteCalls != 0 {
		t.Fatal("expected election not yet complete: followers haven't caught up")
	}
	if len(transport.NewLeadershipTermsSent) == 0 {
		t.Fatal("expected a leader heartbeat to have been broadcast")
	}

	fsm.OnAppendedPosition(AppendedPosition{LogPos: fsm.LogPosition(), Term: fsm.LeadershipTermID(), SenderID: 1}, now)
	fsm.OnAppendedPosition(AppendedPosition{LogPos: fsm.LogPosition(), Term: fsm.LeadershipTermID(), SenderID: 2}, now)

	if err := fsm.Tick(now); err != nil {
		t.Fatalf("leader-ready final tick: %v", err)
	}
	if host.ElectionCompleteCalls != 1 {
		t.Fatalf("ElectionCompleteCalls = %d, want 1", host.ElectionCompleteCalls)
	}
}

func TestElectionFSM_CandidateBallotTimeoutFallsBackToCanvass(t *testing.T) {
	host := mocks.NewMockHostAgent()
	transport := mocks.NewMockTransport()
	recLog := mocks.NewMockRecordingLog()
	fsm := newTestFSM(3, []MemberID{1, 2}, newTestConfig(), host, transport, recLog, nil)

	now := time.Now()
	_ = fsm.Tick(now) // INIT -> CANVASS

	fsm.OnCanvassPosition(CanvassPosition{LogPos: 0, Term: 0, SenderID: 1}, now)
	fsm.OnCanvassPosition(CanvassPosition{LogPos: 0, Term: 0, SenderID: 2}, now)
	now = now.Add(time.Millisecond)
	_ = fsm.Tick(now) // CANVASS -> NOMINATE
	now = now.Add(time.Millisecond)
	_ = fsm.Tick(now) // NOMINATE -> CANDIDATE_BALLOT

	// No votes granted; let the election timeout elapse with no majority.
	timedOut := now.Add(200 * time.Millisecond)
	if err := fsm.Tick(timedOut); err != nil {
		t.Fatalf("tick: %v", err)
	}
	if fsm.State() != StateCanvass {
		t.Fatalf("state after timeout with no majority = %v, want StateCanvass", fsm.State())
	}
}

func TestElectionFSM_OnRequestVote_DeniedLowerTerm(t *testing.T) {
	host := mocks.NewMockHostAgent()
	transport := mocks.NewMockTransport()
	recLog := mocks.NewMockRecordingLog()
	fsm := newTestFSM(1, []MemberID{2, 3}, newTestConfig(), host, transport, recLog, nil)

	now := time.Now()
	_ = fsm.Tick(now) // INIT -> CANVASS, term stays 0

	fsm.ctx.setLeadershipTermID(5)

	fsm.OnRequestVote(RequestVote{LogPos: 0, Term: 3, CandidateID: 2}, now)

	if len(transport.VotesSent) != 1 {
		t.Fatalf("VotesSent = %d, want 1", len(transport.VotesSent))
	}
	if transport.VotesSent[0].Msg.VoteYes {
		t.Fatal("expected vote to be denied for a stale term")
	}
	if transport.VotesSent[0].Msg.Term != 3 {
		t.Fatalf("denied vote term = %d, want candidate's term 3", transport.VotesSent[0].Msg.Term)
	}
}

func TestElectionFSM_OnRequestVote_GrantedHigherTerm(t *testing.T) {
	host := mocks.NewMockHostAgent()
	transport := mocks.NewMockTransport()
	recLog := mocks.NewMockRecordingLog()
	fsm := newTestFSM(1, []MemberID{2, 3}, newTestConfig(), host, transport, recLog, nil)

	now := time.Now()
	_ = fsm.Tick(now) // INIT -> CANVASS, term 0, logPosition 0

	fsm.OnRequestVote(RequestVote{LogPos: 0, Term: 1, CandidateID: 2}, now)

	if fsm.State() != StateFollowerBallot {
		t.Fatalf("state = %v, want StateFollowerBallot", fsm.State())
	}
	if fsm.LeadershipTermID() != 1 {
		t.Fatalf("LeadershipTermID() = %d, want 1", fsm.LeadershipTermID())
	}
	if len(transport.VotesSent) != 1 || !transport.VotesSent[0].Msg.VoteYes {
		t.Fatal("expected a granted vote to be sent")
	}
	if recLog.LastTerm().Term != 1 {
		t.Fatalf("recorded term = %d, want 1", recLog.LastTerm().Term)
	}
}

func TestElectionFSM_OnRequestVote_DeniedBehindLog(t *testing.T) {
	host := mocks.NewMockHostAgent()
	transport := mocks.NewMockTransport()
	recLog := mocks.NewMockRecordingLog()
	fsm := newTestFSM(1, []MemberID{2, 3}, newTestConfig(), host, transport, recLog, nil)

	now := time.Now()
	_ = fsm.Tick(now)
	fsm.ctx.setLogPosition(500)

	fsm.OnRequestVote(RequestVote{LogPos: 100, Term: 1, CandidateID: 2}, now)

	if fsm.State() != StateCanvass {
		t.Fatalf("state = %v, want StateCanvass (candidate is behind our log)", fsm.State())
	}
	if len(transport.VotesSent) != 1 || transport.VotesSent[0].Msg.VoteYes {
		t.Fatal("expected the vote to be denied")
	}
}

func TestElectionFSM_FollowerCatchupThenTransition(t *testing.T) {
	host := mocks.NewMockHostAgent()
	transport := mocks.NewMockTransport()
	recLog := mocks.NewMockRecordingLog()
	archive := mocks.NewMockArchiveClient(40)
	fsm := newTestFSM(1, []MemberID{2, 3}, newTestConfig(), host, transport, recLog, archive)

	now := time.Now()
	_ = fsm.Tick(now) // INIT -> CANVASS
	if err := fsm.Tick(now); err != nil {
		t.Fatalf("canvass tick: %v", err)
	}

	// Member 2 announces a new term at a position we haven't reached yet.
	fsm.OnNewLeadershipTerm(NewLeadershipTerm{LogPos: 100, Term: 1, LeaderID: 2, LogSessionID: 9}, now)

	if fsm.State() != StateFollowerCatchup {
		t.Fatalf("state = %v, want StateFollowerCatchup", fsm.State())
	}

	for i := 0; i < 5 && fsm.State() == StateFollowerCatchup; i++ {
		now = now.Add(time.Millisecond)
		if err := fsm.Tick(now); err != nil {
			t.Fatalf("catchup tick: %v", err)
		}
	}

	if fsm.State() != StateFollowerTransition {
		t.Fatalf("state = %v, want StateFollowerTransition", fsm.State())
	}
	if fsm.LogPosition() != 100 {
		t.Fatalf("LogPosition() = %d, want 100", fsm.LogPosition())
	}
	if host.CatchupCalls != 1 {
		t.Fatalf("CatchupCalls = %d, want 1", host.CatchupCalls)
	}

	now = now.Add(time.Millisecond)
	if err := fsm.Tick(now); err != nil { // FOLLOWER_TRANSITION -> FOLLOWER_READY
		t.Fatalf("follower-transition tick: %v", err)
	}
	if fsm.State() != StateFollowerReady {
		t.Fatalf("state = %v, want StateFollowerReady", fsm.State())
	}
	if host.RecordedChannel == "" {
		t.Fatal("expected a recording channel to have been set")
	}
}

func TestElectionFSM_FollowerCatchupFallsBackOnArchiveError(t *testing.T) {
	host := mocks.NewMockHostAgent()
	transport := mocks.NewMockTransport()
	recLog := mocks.NewMockRecordingLog()
	archive := mocks.NewMockArchiveClient(40)
	fsm := newTestFSM(1, []MemberID{2, 3}, newTestConfig(), host, transport, recLog, archive)

	now := time.Now()
	_ = fsm.Tick(now)
	_ = fsm.Tick(now)

	fsm.OnNewLeadershipTerm(NewLeadershipTerm{LogPos: 100, Term: 1, LeaderID: 2, LogSessionID: 9}, now)
	if fsm.State() != StateFollowerCatchup {
		t.Fatalf("state = %v, want StateFollowerCatchup", fsm.State())
	}

	archive.Err = errTestArchiveDown

	now = now.Add(time.Millisecond)
	if err := fsm.Tick(now); err != nil {
		t.Fatalf("tick: %v", err)
	}
	if fsm.State() != StateCanvass {
		t.Fatalf("state = %v, want StateCanvass after archive failure", fsm.State())
	}
}

func TestElectionFSM_OnCanvassPositionFromUnknownMemberPanics(t *testing.T) {
	host := mocks.NewMockHostAgent()
	transport := mocks.NewMockTransport()
	recLog := mocks.NewMockRecordingLog()
	fsm := newTestFSM(1, []MemberID{2, 3}, newTestConfig(), host, transport, recLog, nil)

	now := time.Now()
	_ = fsm.Tick(now)

	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected a panic for an unknown sender")
		} else if _, ok := r.(*ElectionPanic); !ok {
			t.Fatalf("expected *ElectionPanic, got %T", r)
		}
	}()
	fsm.OnCanvassPosition(CanvassPosition{LogPos: 0, Term: 0, SenderID: 99}, now)
}

func TestElectionFSM_TickRecoversElectionPanicIntoError(t *testing.T) {
	host := mocks.NewMockHostAgent()
	host.BecomeLeaderErr = errTestBecomeLeaderFailed
	transport := mocks.NewMockTransport()
	recLog := mocks.NewMockRecordingLog()
	fsm := newTestFSM(1, nil, newTestConfig(), host, transport, recLog, nil)

	now := time.Now()
	_ = fsm.Tick(now) // INIT -> LEADER_TRANSITION (single member)

	err := fsm.Tick(now) // LEADER_TRANSITION: BecomeLeader fails -> panic -> recovered
	if err == nil {
		t.Fatal("expected Tick to return an error instead of panicking")
	}
}
