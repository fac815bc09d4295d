package transport

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"

	"electionfsm/internal/election"
	pb "electionfsm/internal/transport/electionpb"
)

// peerMemberIDHeader carries the sending member's id on every outgoing
// RPC, so the receiving server can attribute a request to a member
// without trusting the payload alone.
const peerMemberIDHeader = "x-election-member-id"

// RPCTimeout bounds a single offer attempt. Offers are non-blocking from
// the FSM's point of view -- Tick never waits on the network. An offer
// reports success as soon as a pooled connection exists, so a failed or
// timed-out RPC is not reported back and is not retried; only the
// periodic canvass and heartbeat broadcasts go out again on their own
// intervals.
const RPCTimeout = 50 * time.Millisecond

// GRPCTransport is a MessageTransport backed by grpc.ClientConn, one per
// peer, resolved through the "election" scheme registered in
// resolver.go. It mirrors the teacher's connection-pool shape: a
// sync.Map keyed by member id instead of a single fixed peer.
type GRPCTransport struct {
	selfID election.MemberID

	clientsConnPool *sync.Map // election.MemberID -> *grpc.ClientConn

	peersMu sync.RWMutex
	peers   []election.MemberID

	metrics *election.Metrics
}

// NewGRPCTransport dials every peer eagerly. grpc.NewClient is lazy about
// the actual TCP handshake, so an unreachable peer at startup doesn't
// block cluster bring-up; RegisterPeerAddr/AddPeer update the resolver
// once an address becomes known.
func NewGRPCTransport(selfID election.MemberID, peers []election.MemberID, metrics *election.Metrics) *GRPCTransport {
	t := &GRPCTransport{
		selfID:          selfID,
		clientsConnPool: &sync.Map{},
		peers:           append([]election.MemberID(nil), peers...),
		metrics:         metrics,
	}
	t.dial(peers)
	return t
}

func (t *GRPCTransport) dial(peers []election.MemberID) {
	for _, id := range peers {
		target := fmt.Sprintf("%s:///%d", electionScheme, id)
		conn, err := grpc.NewClient(target, grpc.WithTransportCredentials(insecure.NewCredentials()))
		if err != nil {
			log.Printf("[TRANSPORT] failed establishing channel to member %d: %v", id, err)
			continue
		}
		t.clientsConnPool.Store(id, conn)
	}
}

func (t *GRPCTransport) getClientConn(id election.MemberID) (*grpc.ClientConn, error) {
	v, ok := t.clientsConnPool.Load(id)
	if !ok {
		return nil, fmt.Errorf("no gRPC connection for member %d", id)
	}
	conn, ok := v.(*grpc.ClientConn)
	if !ok {
		return nil, fmt.Errorf("invalid connection type for member %d: %T", id, v)
	}
	return conn, nil
}

// offer fires a single one-way RPC on its own goroutine with a short
// per-attempt timeout, and returns immediately: Tick must never block on
// a peer that is down or slow to answer.
func (t *GRPCTransport) offer(id election.MemberID, fn func(client pb.ElectionServiceClient, ctx context.Context)) bool {
	conn, err := t.getClientConn(id)
	if err != nil {
		return false
	}
	client := pb.NewElectionServiceClient(conn)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), RPCTimeout)
		defer cancel()
		ctx = metadata.AppendToOutgoingContext(ctx, peerMemberIDHeader, fmt.Sprintf("%d", t.selfID))
		fn(client, ctx)
	}()
	return true
}

func (t *GRPCTransport) broadcast(fn func(id election.MemberID) bool) bool {
	t.peersMu.RLock()
	peers := append([]election.MemberID(nil), t.peers...)
	t.peersMu.RUnlock()

	sent := false
	for _, id := range peers {
		if fn(id) {
			sent = true
		}
	}
	return sent
}

func (t *GRPCTransport) OfferCanvassPosition(msg election.CanvassPosition) bool {
	return t.broadcast(func(id election.MemberID) bool {
		return t.offer(id, func(client pb.ElectionServiceClient, ctx context.Context) {
			_, _ = client.CanvassPosition(ctx, &pb.CanvassPositionRequest{
				LogPosition: msg.LogPos,
				Term:        msg.Term,
				SenderId:    int32(msg.SenderID),
			})
		})
	})
}

func (t *GRPCTransport) OfferRequestVote(to election.MemberID, msg election.RequestVote) bool {
	return t.offer(to, func(client pb.ElectionServiceClient, ctx context.Context) {
		_, _ = client.RequestVote(ctx, &pb.RequestVoteRequest{
			LogPosition: msg.LogPos,
			Term:        msg.Term,
			CandidateId: int32(msg.CandidateID),
		})
	})
}

func (t *GRPCTransport) OfferVote(to election.MemberID, msg election.Vote) bool {
	return t.offer(to, func(client pb.ElectionServiceClient, ctx context.Context) {
		_, _ = client.Vote(ctx, &pb.VoteRequest{
			Term:        msg.Term,
			CandidateId: int32(msg.CandidateID),
			VoterId:     int32(msg.VoterID),
			VoteYes:     msg.VoteYes,
		})
	})
}

func (t *GRPCTransport) OfferNewLeadershipTerm(msg election.NewLeadershipTerm) bool {
	return t.broadcast(func(id election.MemberID) bool {
		return t.offer(id, func(client pb.ElectionServiceClient, ctx context.Context) {
			_, _ = client.NewLeadershipTerm(ctx, &pb.NewLeadershipTermRequest{
				LogPosition:  msg.LogPos,
				Term:         msg.Term,
				LeaderId:     int32(msg.LeaderID),
				LogSessionId: msg.LogSessionID,
			})
		})
	})
}

func (t *GRPCTransport) OfferNewLeadershipTermTo(to election.MemberID, msg election.NewLeadershipTerm) bool {
	return t.offer(to, func(client pb.ElectionServiceClient, ctx context.Context) {
		_, _ = client.NewLeadershipTerm(ctx, &pb.NewLeadershipTermRequest{
			LogPosition:  msg.LogPos,
			Term:         msg.Term,
			LeaderId:     int32(msg.LeaderID),
			LogSessionId: msg.LogSessionID,
		})
	})
}

func (t *GRPCTransport) OfferAppendedPosition(to election.MemberID, msg election.AppendedPosition) bool {
	return t.offer(to, func(client pb.ElectionServiceClient, ctx context.Context) {
		_, _ = client.AppendedPosition(ctx, &pb.AppendedPositionRequest{
			LogPosition: msg.LogPos,
			Term:        msg.Term,
			SenderId:    int32(msg.SenderID),
		})
	})
}

// OfferCommitPosition sends the supplemented out-of-band commit notice.
// It isn't part of election.MessageTransport -- CommitPosition is a
// leader-initiated nudge, not something every tick needs to offer -- and
// nothing in this module calls it; Server.CommitPosition handles the
// receiving side.
func (t *GRPCTransport) OfferCommitPosition(to election.MemberID, msg election.CommitPosition) bool {
	return t.offer(to, func(client pb.ElectionServiceClient, ctx context.Context) {
		_, _ = client.CommitPosition(ctx, &pb.CommitPositionRequest{
			LogPosition: msg.LogPos,
			Term:        msg.Term,
			LeaderId:    int32(msg.LeaderID),
		})
	})
}

// ArchiveClientFor satisfies internal/archiveclient's Dialer, reusing
// the same pooled connection the message transport dials with.
func (t *GRPCTransport) ArchiveClientFor(id election.MemberID) (pb.ArchiveServiceClient, error) {
	conn, err := t.getClientConn(id)
	if err != nil {
		return nil, err
	}
	return pb.NewArchiveServiceClient(conn), nil
}

// AddPeer registers a newly discovered member's address and dials it,
// for clusters that grow after startup.
func (t *GRPCTransport) AddPeer(id election.MemberID, addr string) {
	RegisterPeerAddr(id, addr)

	if _, err := t.getClientConn(id); err != nil {
		t.dial([]election.MemberID{id})
	}

	t.peersMu.Lock()
	defer t.peersMu.Unlock()
	for _, p := range t.peers {
		if p == id {
			return
		}
	}
	t.peers = append(t.peers, id)
}

// Close tears down every pooled connection.
func (t *GRPCTransport) Close() {
	t.clientsConnPool.Range(func(key, value any) bool {
		if conn, ok := value.(*grpc.ClientConn); ok {
			if err := conn.Close(); err != nil {
				log.Printf("[TRANSPORT] failed closing connection to %v: %v", key, err)
			}
		}
		return true
	})
}

var _ election.MessageTransport = (*GRPCTransport)(nil)
