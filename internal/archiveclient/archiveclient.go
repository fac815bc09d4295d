package archiveclient

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"electionfsm/internal/election"
	pb "electionfsm/internal/transport/electionpb"
)

// segmentSize is the maximum number of bytes requested per FetchSegment
// call; catch-up makes forward progress in bounded chunks so a single
// DoWork call never blocks for the whole gap.
const segmentSize = 64 * 1024

// Dialer resolves a member id to a gRPC client connection. internal/transport
// provides the real implementation; tests supply a fake.
type Dialer interface {
	ArchiveClientFor(id election.MemberID) (pb.ArchiveServiceClient, error)
}

// GRPCArchiveClient copies log segments from a remote leader over gRPC
// during catch-up. It makes exactly one RPC attempt per FetchSegment
// call, with no retry or backoff loop, and returns the error on failure.
// The attempt runs synchronously on the caller's goroutine (the FSM's
// FOLLOWER_CATCHUP tick) and can hold it for up to the client's timeout.
// On a failure the FSM falls back to CANVASS and drops the coordinator;
// catch-up starts over when a later leader announcement arrives.
type GRPCArchiveClient struct {
	dialer  Dialer
	timeout time.Duration

	sessionID string
}

// NewGRPCArchiveClient creates a client tagged with a fresh correlation
// id, sent with every fetch it makes, so its fetches and the leader's
// logs can be joined on a single session. cmd/election/node creates one
// per process and reuses it for every catch-up run.
func NewGRPCArchiveClient(dialer Dialer, timeout time.Duration) *GRPCArchiveClient {
	return &GRPCArchiveClient{dialer: dialer, timeout: timeout, sessionID: uuid.NewString()}
}

// FetchSegment requests up to segmentSize bytes of log starting at
// fromPosition from leaderID in a single attempt. The call waits for the
// leader's reply or for the client's timeout, whichever comes first.
func (c *GRPCArchiveClient) FetchSegment(leaderID election.MemberID, fromPosition, targetPosition int64) (int64, int64, error) {
	want := targetPosition - fromPosition
	if want > segmentSize {
		want = segmentSize
	}
	if want <= 0 {
		return 0, fromPosition, nil
	}

	client, err := c.dialer.ArchiveClientFor(leaderID)
	if err != nil {
		return 0, fromPosition, fmt.Errorf("dial leader %d: %w", leaderID, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()
	resp, err := client.FetchSegment(ctx, &pb.FetchSegmentRequest{
		SessionId:    c.sessionID,
		FromPosition: fromPosition,
		Length:       want,
	})
	if err != nil {
		return 0, fromPosition, fmt.Errorf("fetch segment from %d: %w", leaderID, err)
	}
	return int64(len(resp.Data)), fromPosition + int64(len(resp.Data)), nil
}

// Close is a no-op: connections are owned and pooled by the dialer, not
// by this per-run client.
func (c *GRPCArchiveClient) Close() error { return nil }

var _ election.ArchiveClient = (*GRPCArchiveClient)(nil)
