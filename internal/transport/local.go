package transport

import (
	"sync/atomic"
	"time"

	"electionfsm/internal/election"
	"electionfsm/internal/pubsub"
)

// Event types carried over the in-process bus. Point-to-point kinds
// (request-vote, vote, targeted new-leadership-term, appended-position)
// are broadcast like everything else on a PubSubClient; each member's
// LocalTransport filters for its own id on delivery.
const (
	evtCanvassPosition pubsub.EventType = iota
	evtRequestVote
	evtVote
	evtNewLeadershipTerm
	evtNewLeadershipTermTo
	evtAppendedPosition
)

type targeted[T any] struct {
	To  election.MemberID
	Msg T
}

// LocalTransport is an in-process election.MessageTransport built on
// internal/pubsub's typed broker, for running a full cluster of
// ElectionFSMs in one process (cmd/election/demo) without a socket in
// sight. Every member in a demo cluster shares one *pubsub.PubSubClient
// and owns one LocalTransport wired to its own FSM.
type LocalTransport struct {
	self election.MemberID
	bus  *pubsub.PubSubClient
	fsm  atomic.Pointer[election.ElectionFSM]
}

// NewLocalTransport creates a transport for self and subscribes to every
// message kind on bus. The transport and the FSM it delivers to have a
// circular dependency -- the FSM needs the transport to send with, the
// transport needs the FSM to deliver to -- so construction is two steps:
// build the transport, construct the FSM with it as the MessageTransport,
// then call Attach. Inbound messages received before Attach are simply
// dropped, matching a real network listener that isn't accepting
// connections yet.
func NewLocalTransport(self election.MemberID, bus *pubsub.PubSubClient) *LocalTransport {
	t := &LocalTransport{self: self, bus: bus}
	t.subscribe()
	return t
}

// Attach wires the transport to the FSM it should deliver inbound
// messages to. Must be called once, after the FSM is constructed.
func (t *LocalTransport) Attach(fsm *election.ElectionFSM) {
	t.fsm.Store(fsm)
}

func (t *LocalTransport) subscribe() {
	canvassCh := make(chan *pubsub.Event[election.CanvassPosition], 64)
	pubsub.Subscribe(t.bus, evtCanvassPosition, canvassCh, pubsub.SubscriptionOptions{})
	go func() {
		for ev := range canvassCh {
			if fsm := t.fsm.Load(); fsm != nil {
				fsm.OnCanvassPosition(ev.Payload, time.Now())
			}
		}
	}()

	requestVoteCh := make(chan *pubsub.Event[targeted[election.RequestVote]], 64)
	pubsub.Subscribe(t.bus, evtRequestVote, requestVoteCh, pubsub.SubscriptionOptions{})
	go func() {
		for ev := range requestVoteCh {
			if ev.Payload.To != t.self {
				continue
			}
			if fsm := t.fsm.Load(); fsm != nil {
				fsm.OnRequestVote(ev.Payload.Msg, time.Now())
			}
		}
	}()

	voteCh := make(chan *pubsub.Event[targeted[election.Vote]], 64)
	pubsub.Subscribe(t.bus, evtVote, voteCh, pubsub.SubscriptionOptions{})
	go func() {
		for ev := range voteCh {
			if ev.Payload.To != t.self {
				continue
			}
			if fsm := t.fsm.Load(); fsm != nil {
				fsm.OnVote(ev.Payload.Msg, time.Now())
			}
		}
	}()

	newTermCh := make(chan *pubsub.Event[election.NewLeadershipTerm], 64)
	pubsub.Subscribe(t.bus, evtNewLeadershipTerm, newTermCh, pubsub.SubscriptionOptions{})
	go func() {
		for ev := range newTermCh {
			if fsm := t.fsm.Load(); fsm != nil {
				fsm.OnNewLeadershipTerm(ev.Payload, time.Now())
			}
		}
	}()

	newTermToCh := make(chan *pubsub.Event[targeted[election.NewLeadershipTerm]], 64)
	pubsub.Subscribe(t.bus, evtNewLeadershipTermTo, newTermToCh, pubsub.SubscriptionOptions{})
	go func() {
		for ev := range newTermToCh {
			if ev.Payload.To != t.self {
				continue
			}
			if fsm := t.fsm.Load(); fsm != nil {
				fsm.OnNewLeadershipTerm(ev.Payload.Msg, time.Now())
			}
		}
	}()

	appendedCh := make(chan *pubsub.Event[targeted[election.AppendedPosition]], 64)
	pubsub.Subscribe(t.bus, evtAppendedPosition, appendedCh, pubsub.SubscriptionOptions{})
	go func() {
		for ev := range appendedCh {
			if ev.Payload.To != t.self {
				continue
			}
			if fsm := t.fsm.Load(); fsm != nil {
				fsm.OnAppendedPosition(ev.Payload.Msg, time.Now())
			}
		}
	}()
}

func (t *LocalTransport) OfferCanvassPosition(msg election.CanvassPosition) bool {
	pubsub.Publish(t.bus, pubsub.NewEvent(evtCanvassPosition, msg))
	return true
}

func (t *LocalTransport) OfferRequestVote(to election.MemberID, msg election.RequestVote) bool {
	pubsub.Publish(t.bus, pubsub.NewEvent(evtRequestVote, targeted[election.RequestVote]{To: to, Msg: msg}))
	return true
}

func (t *LocalTransport) OfferVote(to election.MemberID, msg election.Vote) bool {
	pubsub.Publish(t.bus, pubsub.NewEvent(evtVote, targeted[election.Vote]{To: to, Msg: msg}))
	return true
}

func (t *LocalTransport) OfferNewLeadershipTerm(msg election.NewLeadershipTerm) bool {
	pubsub.Publish(t.bus, pubsub.NewEvent(evtNewLeadershipTerm, msg))
	return true
}

func (t *LocalTransport) OfferNewLeadershipTermTo(to election.MemberID, msg election.NewLeadershipTerm) bool {
	pubsub.Publish(t.bus, pubsub.NewEvent(evtNewLeadershipTermTo, targeted[election.NewLeadershipTerm]{To: to, Msg: msg}))
	return true
}

func (t *LocalTransport) OfferAppendedPosition(to election.MemberID, msg election.AppendedPosition) bool {
	pubsub.Publish(t.bus, pubsub.NewEvent(evtAppendedPosition, targeted[election.AppendedPosition]{To: to, Msg: msg}))
	return true
}

var _ election.MessageTransport = (*LocalTransport)(nil)
