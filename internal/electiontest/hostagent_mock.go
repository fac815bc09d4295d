package mocks

import (
	"sync"

	"electionfsm/internal/election"
)

// MockHostAgent is a hand-rolled fake of election.HostAgent, recording
// every call it receives so fsm tests can assert on sequencing without
// a real cluster runtime behind it.
type MockHostAgent struct {
	mu sync.Mutex

	role election.HostRole

	BecomeLeaderCalls      int
	BecomeLeaderErr        error
	NextLogSessionID       int32
	RecordLogAsFollowerErr error

	RecordedChannel       string
	RecordedSessionID     int32
	AwaitCalls            int
	CatchupCalls          int
	ElectionCompleteCalls int
	MemberDetailsCalls    int

	CatchupCoordinators []*election.CatchUpCoordinator
}

// NewMockHostAgent creates a fake starting as a follower.
func NewMockHostAgent() *MockHostAgent {
	return &MockHostAgent{role: election.RoleFollower, NextLogSessionID: 1}
}

func (m *MockHostAgent) Role(role election.HostRole) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.role = role
}

func (m *MockHostAgent) CurrentRole() election.HostRole {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.role
}

func (m *MockHostAgent) BecomeLeader() (int32, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.BecomeLeaderCalls++
	if m.BecomeLeaderErr != nil {
		return 0, m.BecomeLeaderErr
	}
	id := m.NextLogSessionID
	m.NextLogSessionID++
	return id, nil
}

func (m *MockHostAgent) UpdateMemberDetails() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.MemberDetailsCalls++
}

func (m *MockHostAgent) RecordLogAsFollower(channelURI string, logSessionID int32) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.RecordLogAsFollowerErr != nil {
		return m.RecordLogAsFollowerErr
	}
	m.RecordedChannel = channelURI
	m.RecordedSessionID = logSessionID
	return nil
}

func (m *MockHostAgent) AwaitServicesReady(channelURI string, logSessionID int32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AwaitCalls++
}

func (m *MockHostAgent) CatchupLog(coordinator *election.CatchUpCoordinator) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CatchupCalls++
	m.CatchupCoordinators = append(m.CatchupCoordinators, coordinator)
}

func (m *MockHostAgent) ElectionComplete() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ElectionCompleteCalls++
}

var _ election.HostAgent = (*MockHostAgent)(nil)
