package hostagent

import (
	"fmt"
	"sync"

	"electionfsm/internal/election"
)

// InMemoryHost is a HostAgent that tracks role and log-stream state
// entirely in memory, behind a mutex-guarded struct in the same get/set
// shape the rest of the cluster uses for its own per-node state. It
// doesn't run a real log-replication service of its own; cmd/election's
// node and demo binaries use it as the election's only collaborator,
// since driving an actual clustered log service is outside what this
// package is responsible for.
type InMemoryHost struct {
	mu sync.RWMutex

	role             election.HostRole
	isLeader         bool
	recordingChannel string
	servicesReady    bool
	completed        bool
	memberDetailsN   int
	catchUps         int

	nextLogSessionID int32
}

// NewInMemoryHost creates a new in-memory host agent, starting as a
// follower with no log stream open.
func NewInMemoryHost() *InMemoryHost {
	return &InMemoryHost{role: election.RoleFollower, nextLogSessionID: 1}
}

func (h *InMemoryHost) Role(role election.HostRole) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.role = role
}

func (h *InMemoryHost) CurrentRole() election.HostRole {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.role
}

func (h *InMemoryHost) BecomeLeader() (int32, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.isLeader = true
	sessionID := h.nextLogSessionID
	h.nextLogSessionID++
	return sessionID, nil
}

func (h *InMemoryHost) UpdateMemberDetails() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.memberDetailsN++
}

func (h *InMemoryHost) RecordLogAsFollower(channelURI string, logSessionID int32) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.recordingChannel = channelURI
	return nil
}

func (h *InMemoryHost) AwaitServicesReady(channelURI string, logSessionID int32) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.servicesReady = true
}

func (h *InMemoryHost) CatchupLog(coordinator *election.CatchUpCoordinator) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.catchUps++
}

func (h *InMemoryHost) ElectionComplete() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.completed = true
}

// IsLeader reports whether BecomeLeader has been called.
func (h *InMemoryHost) IsLeader() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.isLeader
}

// Completed reports whether ElectionComplete has been called.
func (h *InMemoryHost) Completed() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.completed
}

// RecordingChannel returns the channel URI last passed to
// RecordLogAsFollower, or "" if none.
func (h *InMemoryHost) RecordingChannel() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.recordingChannel
}

// String renders a short summary, useful for demo log lines.
func (h *InMemoryHost) String() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return fmt.Sprintf("role=%v leader=%v completed=%v", h.role, h.isLeader, h.completed)
}

var _ election.HostAgent = (*InMemoryHost)(nil)
