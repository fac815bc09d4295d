package hostagent

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"electionfsm/internal/election"
)

func TestNewInMemoryHost(t *testing.T) {
	h := NewInMemoryHost()

	assert.Equal(t, election.RoleFollower, h.CurrentRole())
	assert.False(t, h.IsLeader())
	assert.False(t, h.Completed())
}

func TestInMemoryHost_Role(t *testing.T) {
	h := NewInMemoryHost()

	h.Role(election.RoleCandidate)
	assert.Equal(t, election.RoleCandidate, h.CurrentRole())

	h.Role(election.RoleFollower)
	assert.Equal(t, election.RoleFollower, h.CurrentRole())
}

func TestInMemoryHost_BecomeLeader(t *testing.T) {
	h := NewInMemoryHost()

	sessionID, err := h.BecomeLeader()
	assert.NoError(t, err)
	assert.True(t, h.IsLeader())

	sessionID2, err := h.BecomeLeader()
	assert.NoError(t, err)
	assert.NotEqual(t, sessionID, sessionID2)
}

func TestInMemoryHost_RecordLogAsFollower(t *testing.T) {
	h := NewInMemoryHost()

	err := h.RecordLogAsFollower("channel-uri", 5)
	assert.NoError(t, err)
	assert.Equal(t, "channel-uri", h.RecordingChannel())
}

func TestInMemoryHost_ElectionComplete(t *testing.T) {
	h := NewInMemoryHost()

	assert.False(t, h.Completed())
	h.ElectionComplete()
	assert.True(t, h.Completed())
}

func TestInMemoryHost_UpdateMemberDetailsAndCatchupLog(t *testing.T) {
	h := NewInMemoryHost()

	h.UpdateMemberDetails()
	h.CatchupLog(nil)
	h.AwaitServicesReady("uri", 1)

	assert.Equal(t, 1, h.memberDetailsN)
	assert.Equal(t, 1, h.catchUps)
	assert.True(t, h.servicesReady)
}

func TestInMemoryHost_Concurrency(t *testing.T) {
	h := NewInMemoryHost()

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			h.Role(election.RoleCandidate)
			h.CurrentRole()
			h.UpdateMemberDetails()
		}()
	}
	wg.Wait()
}
