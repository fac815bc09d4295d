// Code generated by protoc-gen-go style hand port; DO NOT regenerate with
// protoc in this environment. Message shapes mirror internal/raft/proto's
// RequestVoteRequest/AppendEntriesRequest layout: plain structs tagged with
// protobuf field descriptors, wrapped through protobuf-go's legacy v1
// adapter (google.golang.org/grpc/encoding/proto dispatches any Reset/
// String/ProtoMessage type through protoadapt.MessageV1ToV2 automatically).
package electionpb

// CanvassPositionRequest carries a CANVASS_POSITION broadcast.
type CanvassPositionRequest struct {
	LogPosition int64 `protobuf:"varint,1,opt,name=log_position,json=logPosition,proto3" json:"log_position,omitempty"`
	Term        int64 `protobuf:"varint,2,opt,name=term,proto3" json:"term,omitempty"`
	SenderId    int32 `protobuf:"varint,3,opt,name=sender_id,json=senderId,proto3" json:"sender_id,omitempty"`
}

func (m *CanvassPositionRequest) Reset()         { *m = CanvassPositionRequest{} }
func (m *CanvassPositionRequest) String() string { return protoString(m) }
func (m *CanvassPositionRequest) ProtoMessage()  {}

// Ack is the empty response every one-way election RPC returns; the
// transport only cares about err == nil, never the payload.
type Ack struct{}

func (m *Ack) Reset()         { *m = Ack{} }
func (m *Ack) String() string { return "{}" }
func (m *Ack) ProtoMessage()  {}

// RequestVoteRequest carries a vote request to a single candidate peer.
type RequestVoteRequest struct {
	LogPosition int64 `protobuf:"varint,1,opt,name=log_position,json=logPosition,proto3" json:"log_position,omitempty"`
	Term        int64 `protobuf:"varint,2,opt,name=term,proto3" json:"term,omitempty"`
	CandidateId int32 `protobuf:"varint,3,opt,name=candidate_id,json=candidateId,proto3" json:"candidate_id,omitempty"`
}

func (m *RequestVoteRequest) Reset()         { *m = RequestVoteRequest{} }
func (m *RequestVoteRequest) String() string { return protoString(m) }
func (m *RequestVoteRequest) ProtoMessage()  {}

// VoteRequest is the candidate-bound ballot reply (yes or no).
type VoteRequest struct {
	Term        int64 `protobuf:"varint,1,opt,name=term,proto3" json:"term,omitempty"`
	CandidateId int32 `protobuf:"varint,2,opt,name=candidate_id,json=candidateId,proto3" json:"candidate_id,omitempty"`
	VoterId     int32 `protobuf:"varint,3,opt,name=voter_id,json=voterId,proto3" json:"voter_id,omitempty"`
	VoteYes     bool  `protobuf:"varint,4,opt,name=vote_yes,json=voteYes,proto3" json:"vote_yes,omitempty"`
}

func (m *VoteRequest) Reset()         { *m = VoteRequest{} }
func (m *VoteRequest) String() string { return protoString(m) }
func (m *VoteRequest) ProtoMessage()  {}

// NewLeadershipTermRequest announces a newly elected leader.
type NewLeadershipTermRequest struct {
	LogPosition  int64 `protobuf:"varint,1,opt,name=log_position,json=logPosition,proto3" json:"log_position,omitempty"`
	Term         int64 `protobuf:"varint,2,opt,name=term,proto3" json:"term,omitempty"`
	LeaderId     int32 `protobuf:"varint,3,opt,name=leader_id,json=leaderId,proto3" json:"leader_id,omitempty"`
	LogSessionId int32 `protobuf:"varint,4,opt,name=log_session_id,json=logSessionId,proto3" json:"log_session_id,omitempty"`
}

func (m *NewLeadershipTermRequest) Reset()         { *m = NewLeadershipTermRequest{} }
func (m *NewLeadershipTermRequest) String() string { return protoString(m) }
func (m *NewLeadershipTermRequest) ProtoMessage()  {}

// AppendedPositionRequest reports a follower's durable log position to
// the leader, both during steady state and as the FOLLOWER_READY ack.
type AppendedPositionRequest struct {
	LogPosition int64 `protobuf:"varint,1,opt,name=log_position,json=logPosition,proto3" json:"log_position,omitempty"`
	Term        int64 `protobuf:"varint,2,opt,name=term,proto3" json:"term,omitempty"`
	SenderId    int32 `protobuf:"varint,3,opt,name=sender_id,json=senderId,proto3" json:"sender_id,omitempty"`
}

func (m *AppendedPositionRequest) Reset()         { *m = AppendedPositionRequest{} }
func (m *AppendedPositionRequest) String() string { return protoString(m) }
func (m *AppendedPositionRequest) ProtoMessage()  {}

// CommitPositionRequest is the supplemented out-of-band notification a
// leader may send to a lagging member so it can fast-forward its term
// without waiting on the regular heartbeat cadence.
type CommitPositionRequest struct {
	LogPosition int64 `protobuf:"varint,1,opt,name=log_position,json=logPosition,proto3" json:"log_position,omitempty"`
	Term        int64 `protobuf:"varint,2,opt,name=term,proto3" json:"term,omitempty"`
	LeaderId    int32 `protobuf:"varint,3,opt,name=leader_id,json=leaderId,proto3" json:"leader_id,omitempty"`
}

func (m *CommitPositionRequest) Reset()         { *m = CommitPositionRequest{} }
func (m *CommitPositionRequest) String() string { return protoString(m) }
func (m *CommitPositionRequest) ProtoMessage()  {}

// FetchSegmentRequest asks a leader's archive for up to Length bytes of
// recorded log starting at FromPosition, tagged with the catch-up run's
// correlation id.
type FetchSegmentRequest struct {
	SessionId    string `protobuf:"bytes,1,opt,name=session_id,json=sessionId,proto3" json:"session_id,omitempty"`
	FromPosition int64  `protobuf:"varint,2,opt,name=from_position,json=fromPosition,proto3" json:"from_position,omitempty"`
	Length       int64  `protobuf:"varint,3,opt,name=length,proto3" json:"length,omitempty"`
}

func (m *FetchSegmentRequest) Reset()         { *m = FetchSegmentRequest{} }
func (m *FetchSegmentRequest) String() string { return protoString(m) }
func (m *FetchSegmentRequest) ProtoMessage()  {}

// FetchSegmentResponse carries the bytes actually available; Data may be
// shorter than the requested Length near the end of the recording.
type FetchSegmentResponse struct {
	Data []byte `protobuf:"bytes,1,opt,name=data,proto3" json:"data,omitempty"`
}

func (m *FetchSegmentResponse) Reset()         { *m = FetchSegmentResponse{} }
func (m *FetchSegmentResponse) String() string { return protoString(m) }
func (m *FetchSegmentResponse) ProtoMessage()  {}

func protoString(m any) string {
	return "electionpb." + typeName(m)
}

func typeName(m any) string {
	type named interface{ String() string }
	_ = named(nil)
	switch m.(type) {
	case *CanvassPositionRequest:
		return "CanvassPositionRequest"
	case *RequestVoteRequest:
		return "RequestVoteRequest"
	case *VoteRequest:
		return "VoteRequest"
	case *NewLeadershipTermRequest:
		return "NewLeadershipTermRequest"
	case *AppendedPositionRequest:
		return "AppendedPositionRequest"
	case *CommitPositionRequest:
		return "CommitPositionRequest"
	case *FetchSegmentRequest:
		return "FetchSegmentRequest"
	case *FetchSegmentResponse:
		return "FetchSegmentResponse"
	default:
		return "Message"
	}
}
