package transport

import (
	"context"

	"electionfsm/internal"
	"electionfsm/internal/election"
)

// peerMemberIDKey carries the member id a gRPC request metadata declared
// it came from, the same typed-context-key pattern the teacher's raft
// server package uses for its own per-request term/id/addr values.
var peerMemberIDKey = internal.NewCtxKey[election.MemberID]("peerMemberID")

func withPeerMemberID(ctx context.Context, id election.MemberID) context.Context {
	return internal.SetCtxKey(ctx, peerMemberIDKey, id)
}

// peerMemberIDFromContext returns the member id attached by
// peerMemberIDUnaryInterceptor, if the incoming request carried one.
func peerMemberIDFromContext(ctx context.Context) (election.MemberID, bool) {
	return internal.GetCtxKey(ctx, peerMemberIDKey)
}
