package transport

import (
	"context"
	"log"
	"net"
	"strconv"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"

	"electionfsm/internal/election"
	"electionfsm/internal/logstore"
	pb "electionfsm/internal/transport/electionpb"
)

// Server adapts the generated ElectionService/ArchiveService contracts
// onto a single node's ElectionFSM and log store. Every election RPC is
// fire-and-forget from the caller's perspective: handlers feed the
// message into the FSM and return an empty Ack immediately, same as a
// real Aeron Cluster transport never blocking its caller on a peer's
// processing.
type Server struct {
	pb.UnimplementedElectionServiceServer
	pb.UnimplementedArchiveServiceServer

	fsm   *election.ElectionFSM
	store *logstore.Store

	grpcServer *grpc.Server
}

// NewServer wires fsm and store into a Server ready to Register and
// Serve.
func NewServer(fsm *election.ElectionFSM, store *logstore.Store) *Server {
	return &Server{fsm: fsm, store: store}
}

func (s *Server) CanvassPosition(ctx context.Context, req *pb.CanvassPositionRequest) (*pb.Ack, error) {
	s.checkDeclaredSender(ctx, election.MemberID(req.SenderId))
	s.fsm.OnCanvassPosition(election.CanvassPosition{
		LogPos:   req.LogPosition,
		Term:     req.Term,
		SenderID: election.MemberID(req.SenderId),
	}, time.Now())
	return &pb.Ack{}, nil
}

func (s *Server) RequestVote(ctx context.Context, req *pb.RequestVoteRequest) (*pb.Ack, error) {
	s.checkDeclaredSender(ctx, election.MemberID(req.CandidateId))
	s.fsm.OnRequestVote(election.RequestVote{
		LogPos:      req.LogPosition,
		Term:        req.Term,
		CandidateID: election.MemberID(req.CandidateId),
	}, time.Now())
	return &pb.Ack{}, nil
}

func (s *Server) Vote(ctx context.Context, req *pb.VoteRequest) (*pb.Ack, error) {
	s.checkDeclaredSender(ctx, election.MemberID(req.VoterId))
	s.fsm.OnVote(election.Vote{
		Term:        req.Term,
		CandidateID: election.MemberID(req.CandidateId),
		VoterID:     election.MemberID(req.VoterId),
		VoteYes:     req.VoteYes,
	}, time.Now())
	return &pb.Ack{}, nil
}

func (s *Server) NewLeadershipTerm(ctx context.Context, req *pb.NewLeadershipTermRequest) (*pb.Ack, error) {
	s.checkDeclaredSender(ctx, election.MemberID(req.LeaderId))
	s.fsm.OnNewLeadershipTerm(election.NewLeadershipTerm{
		LogPos:       req.LogPosition,
		Term:         req.Term,
		LeaderID:     election.MemberID(req.LeaderId),
		LogSessionID: req.LogSessionId,
	}, time.Now())
	return &pb.Ack{}, nil
}

func (s *Server) AppendedPosition(ctx context.Context, req *pb.AppendedPositionRequest) (*pb.Ack, error) {
	s.checkDeclaredSender(ctx, election.MemberID(req.SenderId))
	s.fsm.OnAppendedPosition(election.AppendedPosition{
		LogPos:   req.LogPosition,
		Term:     req.Term,
		SenderID: election.MemberID(req.SenderId),
	}, time.Now())
	return &pb.Ack{}, nil
}

func (s *Server) CommitPosition(ctx context.Context, req *pb.CommitPositionRequest) (*pb.Ack, error) {
	s.checkDeclaredSender(ctx, election.MemberID(req.LeaderId))
	s.fsm.OnCommitPosition(election.CommitPosition{
		LogPos:   req.LogPosition,
		Term:     req.Term,
		LeaderID: election.MemberID(req.LeaderId),
	}, time.Now())
	return &pb.Ack{}, nil
}

// checkDeclaredSender logs a warning when the member id the transport
// attached to the request (via peerMemberIDUnaryInterceptor) disagrees
// with the id the message payload itself claims. It never rejects the
// request -- a mismatch here means an address got reused under a new
// id, not something the FSM should treat as a protocol violation.
func (s *Server) checkDeclaredSender(ctx context.Context, declared election.MemberID) {
	if peer, ok := peerMemberIDFromContext(ctx); ok && peer != declared {
		log.Printf("[TRANSPORT] request metadata claims member %d but payload declares sender %d", peer, declared)
	}
}

// FetchSegment serves recorded bytes out of the node's log store for a
// lagging peer's catch-up run.
func (s *Server) FetchSegment(_ context.Context, req *pb.FetchSegmentRequest) (*pb.FetchSegmentResponse, error) {
	data, err := s.store.Read(req.FromPosition, req.Length)
	if err != nil {
		return nil, err
	}
	return &pb.FetchSegmentResponse{Data: data}, nil
}

// Serve registers both services and blocks accepting connections on
// lis, the same shape as protoc-gen-go-grpc's generated registration
// calls wired up by hand in a cmd/ main.
func (s *Server) Serve(lis net.Listener) error {
	s.grpcServer = grpc.NewServer(grpc.UnaryInterceptor(peerMemberIDUnaryInterceptor))
	pb.RegisterElectionServiceServer(s.grpcServer, s)
	pb.RegisterArchiveServiceServer(s.grpcServer, s)
	return s.grpcServer.Serve(lis)
}

// peerMemberIDUnaryInterceptor lifts the x-election-member-id header
// GRPCTransport attaches to every outgoing call into the request
// context, so handlers can read it back with peerMemberIDFromContext.
func peerMemberIDUnaryInterceptor(ctx context.Context, req any, _ *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(peerMemberIDHeader); len(values) == 1 {
			if id, err := strconv.Atoi(values[0]); err == nil {
				ctx = withPeerMemberID(ctx, election.MemberID(id))
			}
		}
	}
	return handler(ctx, req)
}

// Stop gracefully stops the underlying grpc.Server, if Serve was called.
func (s *Server) Stop() {
	if s.grpcServer != nil {
		s.grpcServer.GracefulStop()
	}
}

var (
	_ pb.ElectionServiceServer = (*Server)(nil)
	_ pb.ArchiveServiceServer  = (*Server)(nil)
)
