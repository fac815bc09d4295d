package election

import (
	"errors"
	"fmt"
	"time"
)

// ErrClosed is returned by Tick once the FSM has called
// hostAgent.ElectionComplete() or been explicitly Closed.
var ErrClosed = errors.New("election: tick called after election completed or closed")

// RandomSource is the injectable PRNG the design notes require for
// deterministic tests of the NOMINATE backoff. *math/rand.Rand satisfies
// this directly.
type RandomSource interface {
	Int63n(n int64) int64
}

// Logger is the minimal structured-logging surface the FSM needs. It is
// satisfied by internal/logging's wrapper around logrus.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
}

// Config holds the election's tunable timings and static options, loaded
// by internal/config from flags.
type Config struct {
	StatusInterval          time.Duration
	LeaderHeartbeatInterval time.Duration
	ElectionTimeout         time.Duration
	StartupStatusTimeout    time.Duration
	AppointedLeaderID       *MemberID
	LogChannel              string
	Random                  RandomSource
}

// ElectionFSM is the per-member leader-election state machine. It is
// owned and ticked by one host-agent thread; it never blocks and reads
// no wall clock of its own — every timing decision is a function of the
// now passed into Tick.
type ElectionFSM struct {
	ctx     electionContext
	members *MemberTable
	cfg     Config

	transport    MessageTransport
	host         HostAgent
	recordingLog RecordingLog
	archive      ArchiveClient
	metrics      *Metrics
	log          Logger

	counter *StateCounter
	quorum  QuorumCalculator

	inited        bool
	closed        bool
	electionStart time.Time
}

// NewElectionFSM constructs an election FSM for the given member table
// and collaborators. isStartup affects only the canvass deadline in
// CANVASS.
func NewElectionFSM(members *MemberTable, cfg Config, transport MessageTransport, host HostAgent, recordingLog RecordingLog, archive ArchiveClient, metrics *Metrics, log Logger, isStartup bool) *ElectionFSM {
	f := &ElectionFSM{
		members:      members,
		cfg:          cfg,
		transport:    transport,
		host:         host,
		recordingLog: recordingLog,
		archive:      archive,
		metrics:      metrics,
		log:          log,
	}
	f.ctx.state = StateInit
	f.ctx.isStartup = isStartup
	f.ctx.logPosition = 0
	f.ctx.leadershipTermID = 0
	return f
}

func (f *ElectionFSM) logf(format string, args ...interface{}) {
	if f.log != nil {
		f.log.Debugf(format, args...)
	}
}

func (f *ElectionFSM) infof(format string, args ...interface{}) {
	if f.log != nil {
		f.log.Infof(format, args...)
	}
}

// State returns the FSM's current state.
func (f *ElectionFSM) State() State { return f.ctx.getState() }

// LeadershipTermID returns the FSM's current leadership term.
func (f *ElectionFSM) LeadershipTermID() int64 { return f.ctx.getLeadershipTermID() }

// LogPosition returns the FSM's current log position.
func (f *ElectionFSM) LogPosition() int64 { return f.ctx.getLogPosition() }

// LeaderMember returns the current leader, if known.
func (f *ElectionFSM) LeaderMember() *MemberID { return f.ctx.getLeaderMember() }

// Tick advances the FSM by one step. now must be monotonically
// non-decreasing across calls; the FSM reads no other clock.
func (f *ElectionFSM) Tick(now time.Time) (err error) {
	if f.closed {
		return ErrClosed
	}

	defer func() {
		if r := recover(); r != nil {
			if ep, ok := r.(*ElectionPanic); ok {
				err = ep
				return
			}
			panic(r)
		}
	}()

	if !f.inited {
		f.counter = NewStateCounter()
		f.electionStart = now
		f.inited = true
		f.init(now)
		return nil
	}

	switch f.ctx.getState() {
	case StateCanvass:
		f.canvass(now)
	case StateNominate:
		f.nominate(now)
	case StateCandidateBallot:
		f.candidateBallot(now)
	case StateFollowerBallot:
		f.followerBallot(now)
	case StateLeaderTransition:
		f.leaderTransition(now)
	case StateLeaderReady:
		f.leaderReady(now)
	case StateFollowerCatchup:
		f.followerCatchup(now)
	case StateFollowerTransition:
		f.followerTransition(now)
	case StateFollowerReady:
		f.followerReady(now)
	case StateInit:
		// already handled above on the first tick; INIT is one-shot.
	default:
		panic(&ElectionPanic{Reason: fmt.Sprintf("tick dispatched on unknown state %v", f.ctx.getState())})
	}
	return nil
}

// Close releases owned resources without completing the election. Safe
// to call multiple times.
func (f *ElectionFSM) Close() {
	if f.closed {
		return
	}
	if cu := f.ctx.getCatchUp(); cu != nil {
		_ = cu.Close()
		f.ctx.setCatchUp(nil)
	}
	if f.counter != nil {
		f.counter.Close()
	}
	f.closed = true
}

// goTo is the transition primitive: record the state-change timestamp,
// run the outgoing state's exit hook, assign and publish the new state,
// then apply CANVASS's entry side effects when relevant.
func (f *ElectionFSM) goTo(next State, now time.Time) {
	current := f.ctx.getState()
	f.ctx.setTimeOfLastStateChange(now)
	f.exitHook(current)
	f.ctx.setState(next)
	f.counter.Set(next)

	if next == StateCanvass {
		f.members.ResetCandidacy()
		f.members.UpdatePosition(f.members.Self(), f.ctx.getLeadershipTermID(), f.ctx.getLogPosition())
		f.host.Role(RoleFollower)
	}

	f.infof("election: %v -> %v (term=%d pos=%d)", current, next, f.ctx.getLeadershipTermID(), f.ctx.getLogPosition())
}

func (f *ElectionFSM) exitHook(state State) {
	if state != StateFollowerCatchup {
		return
	}
	if cu := f.ctx.getCatchUp(); cu != nil {
		_ = cu.Close()
		f.ctx.setCatchUp(nil)
	}
}

func (f *ElectionFSM) finish(now time.Time) {
	if f.metrics != nil {
		f.metrics.RecordElection()
		f.metrics.RecordElectionDuration(now.Sub(f.electionStart))
	}
	f.host.ElectionComplete()
	f.Close()
}

// init runs once, on the first Tick.
func (f *ElectionFSM) init(now time.Time) {
	self := f.members.Self()

	if f.members.Size() == 1 {
		f.ctx.setLeaderMember(self)
		f.ctx.setLeadershipTermID(f.ctx.getLeadershipTermID() + 1)
		f.appendTerm(now)
		f.goTo(StateLeaderTransition, now)
		return
	}

	if f.cfg.AppointedLeaderID != nil && *f.cfg.AppointedLeaderID == self {
		f.ctx.setNominationDeadline(now)
		f.goTo(StateNominate, now)
		return
	}

	f.goTo(StateCanvass, now)
}

func (f *ElectionFSM) appendTerm(now time.Time) {
	if f.recordingLog == nil {
		return
	}
	if err := f.recordingLog.AppendTerm(f.ctx.getLeadershipTermID(), f.ctx.getLogPosition(), now); err != nil {
		f.logf("election: appendTerm failed: %v", err)
	}
}

func (f *ElectionFSM) appendTermAt(term, pos int64, now time.Time) {
	if f.recordingLog == nil {
		return
	}
	if err := f.recordingLog.AppendTerm(term, pos, now); err != nil {
		f.logf("election: appendTerm failed: %v", err)
	}
}

func (f *ElectionFSM) canvassTimeout() time.Duration {
	if f.ctx.isStartup {
		return f.cfg.StartupStatusTimeout
	}
	return f.cfg.ElectionTimeout
}

func (f *ElectionFSM) broadcastCanvass(now time.Time) {
	self := f.members.Self()
	msg := CanvassPosition{
		LogPos:   f.ctx.getLogPosition(),
		Term:     f.ctx.getLeadershipTermID(),
		SenderID: self,
	}
	if f.transport.OfferCanvassPosition(msg) {
		f.ctx.setTimeOfLastBroadcast(now)
		if f.metrics != nil {
			f.metrics.RecordCanvassBroadcast()
		}
	}
}

func (f *ElectionFSM) canvass(now time.Time) {
	if now.Sub(f.ctx.getTimeOfLastBroadcast()) >= f.cfg.StatusInterval {
		f.broadcastCanvass(now)
	}

	if f.cfg.AppointedLeaderID != nil {
		// Only the appointee advances out of NOMINATE; everyone else
		// waits here for a NewLeadershipTerm.
		return
	}

	unanimous := f.quorum.UnanimousCandidate(f.members)
	quorumCand := f.quorum.QuorumCandidate(f.members)
	timedOut := now.Sub(f.ctx.getTimeOfLastStateChange()) >= f.canvassTimeout()

	if unanimous || (quorumCand && timedOut) {
		backoff := time.Duration(f.cfg.Random.Int63n(int64(f.cfg.StatusInterval)))
		f.ctx.setNominationDeadline(now.Add(backoff))
		f.goTo(StateNominate, now)
	}
}

func (f *ElectionFSM) nominate(now time.Time) {
	if now.Before(f.ctx.getNominationDeadline()) {
		return
	}

	self := f.members.Self()
	f.ctx.setLeadershipTermID(f.ctx.getLeadershipTermID() + 1)
	f.members.UpdatePosition(self, f.ctx.getLeadershipTermID(), f.ctx.getLogPosition())
	f.members.ResetCandidacy()
	f.members.SetVote(self, VoteYes)
	f.appendTerm(now)
	f.host.Role(RoleCandidate)
	f.goTo(StateCandidateBallot, now)
}

func (f *ElectionFSM) candidateBallot(now time.Time) {
	term := f.ctx.getLeadershipTermID()
	self := f.members.Self()

	if f.quorum.HasWonVoteOnFullCount(f.members, term) {
		f.ctx.setLeaderMember(self)
		f.goTo(StateLeaderTransition, now)
		return
	}

	if now.Sub(f.ctx.getTimeOfLastStateChange()) >= f.cfg.ElectionTimeout {
		if f.quorum.HasMajorityVote(f.members, term) {
			f.ctx.setLeaderMember(self)
			f.goTo(StateLeaderTransition, now)
		} else {
			f.goTo(StateCanvass, now)
		}
		return
	}

	for _, peer := range f.members.Peers() {
		if f.members.IsBallotSent(peer) {
			continue
		}
		msg := RequestVote{LogPos: f.ctx.getLogPosition(), Term: term, CandidateID: self}
		if f.transport.OfferRequestVote(peer, msg) {
			f.members.SetBallotSent(peer, true)
			if f.metrics != nil {
				f.metrics.RecordRequestVoteSent()
			}
		}
	}
}

func (f *ElectionFSM) followerBallot(now time.Time) {
	if now.Sub(f.ctx.getTimeOfLastStateChange()) >= f.cfg.ElectionTimeout {
		f.goTo(StateCanvass, now)
	}
}

func (f *ElectionFSM) leaderTransition(now time.Time) {
	sessionID, err := f.host.BecomeLeader()
	if err != nil {
		panic(&ElectionPanic{Reason: fmt.Sprintf("becomeLeader failed: %v", err)})
	}
	self := f.members.Self()
	f.members.ResetLogPositions()
	f.members.UpdatePosition(self, f.ctx.getLeadershipTermID(), f.ctx.getLogPosition())
	f.ctx.setLogSessionID(sessionID)
	f.goTo(StateLeaderReady, now)
}

func (f *ElectionFSM) leaderReady(now time.Time) {
	term := f.ctx.getLeadershipTermID()
	pos := f.ctx.getLogPosition()

	if f.quorum.HaveVotersReachedPosition(f.members, pos, term) {
		f.finish(now)
		return
	}

	if now.Sub(f.ctx.getTimeOfLastBroadcast()) >= f.cfg.LeaderHeartbeatInterval {
		msg := NewLeadershipTerm{
			LogPos:       pos,
			Term:         term,
			LeaderID:     f.members.Self(),
			LogSessionID: f.ctx.getLogSessionID(),
		}
		if f.transport.OfferNewLeadershipTerm(msg) {
			f.ctx.setTimeOfLastBroadcast(now)
			if f.metrics != nil {
				f.metrics.RecordLeaderHeartbeat()
			}
		}
	}
}

func (f *ElectionFSM) followerCatchup(now time.Time) {
	cu := f.ctx.getCatchUp()
	if cu == nil {
		// Invariant 5 says catchUp is non-none iff state ==
		// FOLLOWER_CATCHUP; reaching here without one is a bug in the
		// caller that put us in this state.
		panic(&ElectionPanic{Reason: "FOLLOWER_CATCHUP entered without a CatchUpCoordinator"})
	}

	if _, err := cu.DoWork(); err != nil {
		f.logf("election: catch-up failed, falling back to canvass: %v", err)
		f.goTo(StateCanvass, now)
		return
	}

	if cu.IsDone() {
		f.ctx.setLogPosition(cu.TargetPosition())
		f.host.CatchupLog(cu)
		f.goTo(StateFollowerTransition, now)
	}
}

func (f *ElectionFSM) followerTransition(now time.Time) {
	f.host.UpdateMemberDetails()

	leader := f.ctx.getLeaderMember()
	leaderID := MemberID(-1)
	if leader != nil {
		leaderID = *leader
	}
	channelURI := fmt.Sprintf("%s|leader=%d|session=%d", f.cfg.LogChannel, leaderID, f.ctx.getLogSessionID())

	if err := f.host.RecordLogAsFollower(channelURI, f.ctx.getLogSessionID()); err != nil {
		f.logf("election: recordLogAsFollower failed: %v", err)
	}
	f.host.AwaitServicesReady(channelURI, f.ctx.getLogSessionID())
	f.goTo(StateFollowerReady, now)
}

func (f *ElectionFSM) followerReady(now time.Time) {
	leader := f.ctx.getLeaderMember()
	if leader == nil {
		panic(&ElectionPanic{Reason: "FOLLOWER_READY entered without a known leader"})
	}

	msg := AppendedPosition{
		LogPos:   f.ctx.getLogPosition(),
		Term:     f.ctx.getLeadershipTermID(),
		SenderID: f.members.Self(),
	}
	if f.transport.OfferAppendedPosition(*leader, msg) {
		f.finish(now)
		return
	}

	if now.Sub(f.ctx.getTimeOfLastStateChange()) >= f.cfg.ElectionTimeout {
		f.goTo(StateCanvass, now)
	}
}

// OnCanvassPosition handles an inbound CanvassPosition message.
func (f *ElectionFSM) OnCanvassPosition(msg CanvassPosition, now time.Time) {
	if !f.members.Has(msg.SenderID) {
		panic(&ElectionPanic{Reason: fmt.Sprintf("CanvassPosition from unknown member %d", msg.SenderID)})
	}
	f.members.UpdatePosition(msg.SenderID, msg.Term, msg.LogPos)

	state := f.ctx.getState()
	term := f.ctx.getLeadershipTermID()

	if state == StateLeaderReady && msg.Term <= term {
		reply := NewLeadershipTerm{
			LogPos:       f.ctx.getLogPosition(),
			Term:         term,
			LeaderID:     f.members.Self(),
			LogSessionID: f.ctx.getLogSessionID(),
		}
		f.transport.OfferNewLeadershipTermTo(msg.SenderID, reply)
	}

	if state != StateCanvass && msg.Term > term {
		f.goTo(StateCanvass, now)
	}
}

// OnRequestVote handles an inbound RequestVote message.
func (f *ElectionFSM) OnRequestVote(msg RequestVote, now time.Time) {
	if !f.members.Has(msg.CandidateID) {
		panic(&ElectionPanic{Reason: fmt.Sprintf("RequestVote from unknown member %d", msg.CandidateID)})
	}

	self := f.members.Self()
	term := f.ctx.getLeadershipTermID()

	switch {
	case msg.Term <= term:
		f.transport.OfferVote(msg.CandidateID, Vote{Term: msg.Term, CandidateID: msg.CandidateID, VoterID: self, VoteYes: false})
		if f.metrics != nil {
			f.metrics.RecordRequestVoteDenied()
		}

	case msg.Term == term+1 && msg.LogPos < f.ctx.getLogPosition():
		f.transport.OfferVote(msg.CandidateID, Vote{Term: msg.Term, CandidateID: msg.CandidateID, VoterID: self, VoteYes: false})
		if f.metrics != nil {
			f.metrics.RecordRequestVoteDenied()
		}
		f.ctx.setLeadershipTermID(msg.Term)
		f.appendTerm(now)
		f.goTo(StateCanvass, now)

	default:
		f.ctx.setLeadershipTermID(msg.Term)
		f.appendTermAt(msg.Term, msg.LogPos, now)
		f.goTo(StateFollowerBallot, now)
		f.transport.OfferVote(msg.CandidateID, Vote{Term: msg.Term, CandidateID: msg.CandidateID, VoterID: self, VoteYes: true})
		if f.metrics != nil {
			f.metrics.RecordVoteGranted()
		}
	}
}

// OnVote handles an inbound Vote reply.
func (f *ElectionFSM) OnVote(msg Vote, now time.Time) {
	_ = now
	if f.host.CurrentRole() != RoleCandidate {
		return
	}
	if msg.Term != f.ctx.getLeadershipTermID() || msg.CandidateID != f.members.Self() {
		return
	}
	if !f.members.Has(msg.VoterID) {
		panic(&ElectionPanic{Reason: fmt.Sprintf("Vote from unknown member %d", msg.VoterID)})
	}

	f.members.SetLeadershipTermID(msg.VoterID, msg.Term)
	if msg.VoteYes {
		f.members.SetVote(msg.VoterID, VoteYes)
	} else {
		f.members.SetVote(msg.VoterID, VoteNo)
	}
}

// OnNewLeadershipTerm handles an inbound NewLeadershipTerm message.
func (f *ElectionFSM) OnNewLeadershipTerm(msg NewLeadershipTerm, now time.Time) {
	if !f.members.Has(msg.LeaderID) {
		panic(&ElectionPanic{Reason: fmt.Sprintf("NewLeadershipTerm from unknown member %d", msg.LeaderID)})
	}

	state := f.ctx.getState()
	term := f.ctx.getLeadershipTermID()

	if (state == StateFollowerBallot || state == StateCandidateBallot) && msg.Term == term {
		f.adoptLeader(msg.LeaderID, msg.LogPos, msg.LogSessionID, now)
		return
	}

	if msg.Term > term {
		// Supplemented per the higher-term open question: treat as a
		// recoverable gap, adopt the term, and catch up against the
		// announcing leader.
		f.ctx.setLeadershipTermID(msg.Term)
		f.appendTermAt(msg.Term, msg.LogPos, now)
		f.adoptLeader(msg.LeaderID, msg.LogPos, msg.LogSessionID, now)
	}
}

// OnCommitPosition handles the supplemented CommitPosition hook: it only
// detects a higher term than self, handled identically to a higher-term
// NewLeadershipTerm.
func (f *ElectionFSM) OnCommitPosition(msg CommitPosition, now time.Time) {
	term := f.ctx.getLeadershipTermID()
	if msg.Term <= term {
		return
	}
	if !f.members.Has(msg.LeaderID) {
		panic(&ElectionPanic{Reason: fmt.Sprintf("CommitPosition from unknown member %d", msg.LeaderID)})
	}
	f.ctx.setLeadershipTermID(msg.Term)
	f.appendTermAt(msg.Term, msg.LogPos, now)
	f.adoptLeader(msg.LeaderID, msg.LogPos, f.ctx.getLogSessionID(), now)
}

// adoptLeader records the announced leader and session, and either enters
// catch-up or transitions straight to FOLLOWER_TRANSITION, depending on
// whether this member's log is already caught up.
func (f *ElectionFSM) adoptLeader(leaderID MemberID, leaderLogPos int64, logSessionID int32, now time.Time) {
	f.ctx.setLeaderMember(leaderID)
	f.ctx.setLogSessionID(logSessionID)

	if f.ctx.getLogPosition() < leaderLogPos && f.ctx.getCatchUp() == nil {
		cu := NewCatchUpCoordinator(leaderID, f.members.Self(), f.ctx.getLogPosition(), leaderLogPos, f.archive, f.metrics)
		f.ctx.setCatchUp(cu)
		f.goTo(StateFollowerCatchup, now)
		return
	}
	f.goTo(StateFollowerTransition, now)
}

// OnAppendedPosition handles an inbound AppendedPosition message,
// unconditionally updating the sender's row.
func (f *ElectionFSM) OnAppendedPosition(msg AppendedPosition, now time.Time) {
	_ = now
	if !f.members.Has(msg.SenderID) {
		panic(&ElectionPanic{Reason: fmt.Sprintf("AppendedPosition from unknown member %d", msg.SenderID)})
	}
	f.members.UpdatePosition(msg.SenderID, msg.Term, msg.LogPos)
}
