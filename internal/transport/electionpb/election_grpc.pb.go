// Code generated by protoc-gen-go-grpc style hand port; DO NOT regenerate
// with protoc in this environment. Service shape mirrors
// internal/raft/proto's RaftServiceClient/RaftServiceServer pair: one
// interface per service, built directly on grpc.ClientConnInterface and
// grpc.ServiceDesc the way protoc-gen-go-grpc emits them.
package electionpb

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	ElectionService_CanvassPosition_FullMethodName    = "/electionpb.ElectionService/CanvassPosition"
	ElectionService_RequestVote_FullMethodName        = "/electionpb.ElectionService/RequestVote"
	ElectionService_Vote_FullMethodName                = "/electionpb.ElectionService/Vote"
	ElectionService_NewLeadershipTerm_FullMethodName   = "/electionpb.ElectionService/NewLeadershipTerm"
	ElectionService_AppendedPosition_FullMethodName    = "/electionpb.ElectionService/AppendedPosition"
	ElectionService_CommitPosition_FullMethodName      = "/electionpb.ElectionService/CommitPosition"
)

// ElectionServiceClient is the gRPC-generated client stub for the six
// non-blocking election messages. Every RPC returns an Ack; callers treat
// a non-nil error as "offer failed, retry next tick" and never block
// waiting on it beyond the per-call context deadline.
type ElectionServiceClient interface {
	CanvassPosition(ctx context.Context, in *CanvassPositionRequest, opts ...grpc.CallOption) (*Ack, error)
	RequestVote(ctx context.Context, in *RequestVoteRequest, opts ...grpc.CallOption) (*Ack, error)
	Vote(ctx context.Context, in *VoteRequest, opts ...grpc.CallOption) (*Ack, error)
	NewLeadershipTerm(ctx context.Context, in *NewLeadershipTermRequest, opts ...grpc.CallOption) (*Ack, error)
	AppendedPosition(ctx context.Context, in *AppendedPositionRequest, opts ...grpc.CallOption) (*Ack, error)
	CommitPosition(ctx context.Context, in *CommitPositionRequest, opts ...grpc.CallOption) (*Ack, error)
}

type electionServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewElectionServiceClient(cc grpc.ClientConnInterface) ElectionServiceClient {
	return &electionServiceClient{cc}
}

func (c *electionServiceClient) CanvassPosition(ctx context.Context, in *CanvassPositionRequest, opts ...grpc.CallOption) (*Ack, error) {
	out := new(Ack)
	if err := c.cc.Invoke(ctx, ElectionService_CanvassPosition_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *electionServiceClient) RequestVote(ctx context.Context, in *RequestVoteRequest, opts ...grpc.CallOption) (*Ack, error) {
	out := new(Ack)
	if err := c.cc.Invoke(ctx, ElectionService_RequestVote_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *electionServiceClient) Vote(ctx context.Context, in *VoteRequest, opts ...grpc.CallOption) (*Ack, error) {
	out := new(Ack)
	if err := c.cc.Invoke(ctx, ElectionService_Vote_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *electionServiceClient) NewLeadershipTerm(ctx context.Context, in *NewLeadershipTermRequest, opts ...grpc.CallOption) (*Ack, error) {
	out := new(Ack)
	if err := c.cc.Invoke(ctx, ElectionService_NewLeadershipTerm_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *electionServiceClient) AppendedPosition(ctx context.Context, in *AppendedPositionRequest, opts ...grpc.CallOption) (*Ack, error) {
	out := new(Ack)
	if err := c.cc.Invoke(ctx, ElectionService_AppendedPosition_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *electionServiceClient) CommitPosition(ctx context.Context, in *CommitPositionRequest, opts ...grpc.CallOption) (*Ack, error) {
	out := new(Ack)
	if err := c.cc.Invoke(ctx, ElectionService_CommitPosition_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// ElectionServiceServer is the server-side contract; internal/transport's
// grpc server adapts it onto an election.ElectionFSM's On* handlers.
type ElectionServiceServer interface {
	CanvassPosition(context.Context, *CanvassPositionRequest) (*Ack, error)
	RequestVote(context.Context, *RequestVoteRequest) (*Ack, error)
	Vote(context.Context, *VoteRequest) (*Ack, error)
	NewLeadershipTerm(context.Context, *NewLeadershipTermRequest) (*Ack, error)
	AppendedPosition(context.Context, *AppendedPositionRequest) (*Ack, error)
	CommitPosition(context.Context, *CommitPositionRequest) (*Ack, error)
}

// UnimplementedElectionServiceServer embeds into a partial server
// implementation; unset methods fail with Unimplemented instead of a nil
// pointer panic, the same forward-compatibility shim protoc-gen-go-grpc
// emits for every service.
type UnimplementedElectionServiceServer struct{}

func (UnimplementedElectionServiceServer) CanvassPosition(context.Context, *CanvassPositionRequest) (*Ack, error) {
	return nil, status.Errorf(codes.Unimplemented, "method CanvassPosition not implemented")
}
func (UnimplementedElectionServiceServer) RequestVote(context.Context, *RequestVoteRequest) (*Ack, error) {
	return nil, status.Errorf(codes.Unimplemented, "method RequestVote not implemented")
}
func (UnimplementedElectionServiceServer) Vote(context.Context, *VoteRequest) (*Ack, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Vote not implemented")
}
func (UnimplementedElectionServiceServer) NewLeadershipTerm(context.Context, *NewLeadershipTermRequest) (*Ack, error) {
	return nil, status.Errorf(codes.Unimplemented, "method NewLeadershipTerm not implemented")
}
func (UnimplementedElectionServiceServer) AppendedPosition(context.Context, *AppendedPositionRequest) (*Ack, error) {
	return nil, status.Errorf(codes.Unimplemented, "method AppendedPosition not implemented")
}
func (UnimplementedElectionServiceServer) CommitPosition(context.Context, *CommitPositionRequest) (*Ack, error) {
	return nil, status.Errorf(codes.Unimplemented, "method CommitPosition not implemented")
}

func RegisterElectionServiceServer(s grpc.ServiceRegistrar, srv ElectionServiceServer) {
	s.RegisterService(&ElectionService_ServiceDesc, srv)
}

func _ElectionService_CanvassPosition_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(CanvassPositionRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ElectionServiceServer).CanvassPosition(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: ElectionService_CanvassPosition_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ElectionServiceServer).CanvassPosition(ctx, req.(*CanvassPositionRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _ElectionService_RequestVote_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(RequestVoteRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ElectionServiceServer).RequestVote(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: ElectionService_RequestVote_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ElectionServiceServer).RequestVote(ctx, req.(*RequestVoteRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _ElectionService_Vote_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(VoteRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ElectionServiceServer).Vote(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: ElectionService_Vote_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ElectionServiceServer).Vote(ctx, req.(*VoteRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _ElectionService_NewLeadershipTerm_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(NewLeadershipTermRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ElectionServiceServer).NewLeadershipTerm(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: ElectionService_NewLeadershipTerm_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ElectionServiceServer).NewLeadershipTerm(ctx, req.(*NewLeadershipTermRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _ElectionService_AppendedPosition_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(AppendedPositionRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ElectionServiceServer).AppendedPosition(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: ElectionService_AppendedPosition_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ElectionServiceServer).AppendedPosition(ctx, req.(*AppendedPositionRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _ElectionService_CommitPosition_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(CommitPositionRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ElectionServiceServer).CommitPosition(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: ElectionService_CommitPosition_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ElectionServiceServer).CommitPosition(ctx, req.(*CommitPositionRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// ElectionService_ServiceDesc is the grpc.ServiceDesc for ElectionService,
// wired up by RegisterElectionServiceServer.
var ElectionService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "electionpb.ElectionService",
	HandlerType: (*ElectionServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "CanvassPosition", Handler: _ElectionService_CanvassPosition_Handler},
		{MethodName: "RequestVote", Handler: _ElectionService_RequestVote_Handler},
		{MethodName: "Vote", Handler: _ElectionService_Vote_Handler},
		{MethodName: "NewLeadershipTerm", Handler: _ElectionService_NewLeadershipTerm_Handler},
		{MethodName: "AppendedPosition", Handler: _ElectionService_AppendedPosition_Handler},
		{MethodName: "CommitPosition", Handler: _ElectionService_CommitPosition_Handler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "election.proto",
}

const ArchiveService_FetchSegment_FullMethodName = "/electionpb.ArchiveService/FetchSegment"

// ArchiveServiceClient fetches recorded log segments from a leader's
// archive during catch-up.
type ArchiveServiceClient interface {
	FetchSegment(ctx context.Context, in *FetchSegmentRequest, opts ...grpc.CallOption) (*FetchSegmentResponse, error)
}

type archiveServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewArchiveServiceClient(cc grpc.ClientConnInterface) ArchiveServiceClient {
	return &archiveServiceClient{cc}
}

func (c *archiveServiceClient) FetchSegment(ctx context.Context, in *FetchSegmentRequest, opts ...grpc.CallOption) (*FetchSegmentResponse, error) {
	out := new(FetchSegmentResponse)
	if err := c.cc.Invoke(ctx, ArchiveService_FetchSegment_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// ArchiveServiceServer serves recorded log segments out of a node's own
// RecordingLog-backed storage.
type ArchiveServiceServer interface {
	FetchSegment(context.Context, *FetchSegmentRequest) (*FetchSegmentResponse, error)
}

type UnimplementedArchiveServiceServer struct{}

func (UnimplementedArchiveServiceServer) FetchSegment(context.Context, *FetchSegmentRequest) (*FetchSegmentResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method FetchSegment not implemented")
}

func RegisterArchiveServiceServer(s grpc.ServiceRegistrar, srv ArchiveServiceServer) {
	s.RegisterService(&ArchiveService_ServiceDesc, srv)
}

func _ArchiveService_FetchSegment_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(FetchSegmentRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ArchiveServiceServer).FetchSegment(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: ArchiveService_FetchSegment_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ArchiveServiceServer).FetchSegment(ctx, req.(*FetchSegmentRequest))
	}
	return interceptor(ctx, in, info, handler)
}

var ArchiveService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "electionpb.ArchiveService",
	HandlerType: (*ArchiveServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "FetchSegment", Handler: _ArchiveService_FetchSegment_Handler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "election.proto",
}
