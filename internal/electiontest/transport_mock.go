package mocks

import (
	"sync"

	"electionfsm/internal/election"
)

// MockTransport is a hand-rolled fake of election.MessageTransport. Every
// Offer call is recorded and, unless Drop is set, reported as
// successfully sent -- tests that need to exercise the "offer failed,
// retry next tick" path set Drop to force a false return.
type MockTransport struct {
	mu sync.Mutex

	Drop bool

	CanvassSent            []election.CanvassPosition
	RequestVotesSent       []sentRequestVote
	VotesSent              []sentVote
	NewLeadershipTermsSent []election.NewLeadershipTerm
	NewLeadershipTermsTo   []sentNewLeadershipTermTo
	AppendedPositionsSent  []sentAppendedPosition
}

type sentRequestVote struct {
	To  election.MemberID
	Msg election.RequestVote
}

type sentVote struct {
	To  election.MemberID
	Msg election.Vote
}

type sentNewLeadershipTermTo struct {
	To  election.MemberID
	Msg election.NewLeadershipTerm
}

type sentAppendedPosition struct {
	To  election.MemberID
	Msg election.AppendedPosition
}

// NewMockTransport creates an empty fake transport that accepts every
// offer.
func NewMockTransport() *MockTransport {
	return &MockTransport{}
}

func (t *MockTransport) OfferCanvassPosition(msg election.CanvassPosition) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.CanvassSent = append(t.CanvassSent, msg)
	return !t.Drop
}

func (t *MockTransport) OfferRequestVote(to election.MemberID, msg election.RequestVote) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.RequestVotesSent = append(t.RequestVotesSent, sentRequestVote{To: to, Msg: msg})
	return !t.Drop
}

func (t *MockTransport) OfferVote(to election.MemberID, msg election.Vote) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.VotesSent = append(t.VotesSent, sentVote{To: to, Msg: msg})
	return !t.Drop
}

func (t *MockTransport) OfferNewLeadershipTerm(msg election.NewLeadershipTerm) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.NewLeadershipTermsSent = append(t.NewLeadershipTermsSent, msg)
	return !t.Drop
}

func (t *MockTransport) OfferNewLeadershipTermTo(to election.MemberID, msg election.NewLeadershipTerm) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.NewLeadershipTermsTo = append(t.NewLeadershipTermsTo, sentNewLeadershipTermTo{To: to, Msg: msg})
	return !t.Drop
}

func (t *MockTransport) OfferAppendedPosition(to election.MemberID, msg election.AppendedPosition) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.AppendedPositionsSent = append(t.AppendedPositionsSent, sentAppendedPosition{To: to, Msg: msg})
	return !t.Drop
}

var _ election.MessageTransport = (*MockTransport)(nil)
