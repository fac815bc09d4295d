package election

// ArchiveClient copies historical log segments between members during
// catch-up. The CatchUpCoordinator drives it; segment fetch mechanics,
// verification, and transport are entirely the client's concern.
type ArchiveClient interface {
	// FetchSegment requests the next chunk of log starting at fromPosition
	// from leaderID, up to the coordinator's target. It returns the
	// number of bytes actually copied by this call and the new local log
	// position (fromPosition + bytes copied, when contiguous), or an
	// error if the leader could not serve the request.
	FetchSegment(leaderID MemberID, fromPosition int64, targetPosition int64) (bytesCopied int64, newPosition int64, err error)

	// Close releases any resources (connections, temp files) held by the
	// client for the in-flight catch-up run.
	Close() error
}
