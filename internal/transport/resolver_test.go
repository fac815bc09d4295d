package transport

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/resolver"
	"google.golang.org/grpc/serviceconfig"

	"electionfsm/internal/election"
)

func resetRegistry() {
	globalIDRegistry.mu.Lock()
	globalIDRegistry.records = make(map[election.MemberID]string)
	globalIDRegistry.watchers = make(map[election.MemberID]map[*electionResolver]struct{})
	globalIDRegistry.mu.Unlock()
}

func TestElectionBuilder_Scheme(t *testing.T) {
	builder := electionBuilder{}
	assert.Equal(t, "election", builder.Scheme())
}

func TestRegisterPeerAddr(t *testing.T) {
	resetRegistry()

	t.Run("registers peer address", func(t *testing.T) {
		id := election.MemberID(1)
		RegisterPeerAddr(id, "localhost:5001")

		globalIDRegistry.mu.RLock()
		addr, ok := globalIDRegistry.records[id]
		globalIDRegistry.mu.RUnlock()

		assert.True(t, ok)
		assert.Equal(t, "localhost:5001", addr)
	})

	t.Run("updates existing peer address", func(t *testing.T) {
		id := election.MemberID(2)

		RegisterPeerAddr(id, "localhost:5002")
		RegisterPeerAddr(id, "localhost:5003")

		globalIDRegistry.mu.RLock()
		addr := globalIDRegistry.records[id]
		globalIDRegistry.mu.RUnlock()

		assert.Equal(t, "localhost:5003", addr)
	})
}

func TestElectionResolver_Build(t *testing.T) {
	resetRegistry()
	builder := electionBuilder{}

	t.Run("builds resolver with endpoint in target", func(t *testing.T) {
		target := resolver.Target{URL: url.URL{Scheme: "election", Path: "/3"}}
		cc := &mockClientConn{}

		res, err := builder.Build(target, cc, resolver.BuildOptions{})
		assert.NoError(t, err)
		assert.NotNil(t, res)
		res.Close()
	})

	t.Run("returns error for empty endpoint", func(t *testing.T) {
		target := resolver.Target{URL: url.URL{Scheme: "election", Path: ""}}
		cc := &mockClientConn{}

		_, err := builder.Build(target, cc, resolver.BuildOptions{})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "empty target endpoint")
	})

	t.Run("returns error for non-numeric endpoint", func(t *testing.T) {
		target := resolver.Target{URL: url.URL{Scheme: "election", Path: "/not-a-number"}}
		cc := &mockClientConn{}

		_, err := builder.Build(target, cc, resolver.BuildOptions{})
		assert.Error(t, err)
	})
}

func TestElectionResolver_ResolveNow(t *testing.T) {
	resetRegistry()
	id := election.MemberID(10)
	RegisterPeerAddr(id, "localhost:6001")

	builder := electionBuilder{}
	target := resolver.Target{URL: url.URL{Scheme: "election", Path: "/10"}}

	cc := &mockClientConn{}
	res, err := builder.Build(target, cc, resolver.BuildOptions{})
	assert.NoError(t, err)

	res.ResolveNow(resolver.ResolveNowOptions{})

	assert.Len(t, cc.states, 2)
	res.Close()
}

func TestElectionResolver_Close(t *testing.T) {
	resetRegistry()
	id := election.MemberID(11)
	RegisterPeerAddr(id, "localhost:7001")

	builder := electionBuilder{}
	target := resolver.Target{URL: url.URL{Scheme: "election", Path: "/11"}}

	cc := &mockClientConn{}
	res, err := builder.Build(target, cc, resolver.BuildOptions{})
	assert.NoError(t, err)

	globalIDRegistry.mu.RLock()
	watchers := globalIDRegistry.watchers[id]
	globalIDRegistry.mu.RUnlock()
	assert.Len(t, watchers, 1)

	res.Close()

	globalIDRegistry.mu.RLock()
	watchers = globalIDRegistry.watchers[id]
	globalIDRegistry.mu.RUnlock()
	assert.Len(t, watchers, 0)
}

func TestElectionResolver_PushCurrent(t *testing.T) {
	resetRegistry()

	t.Run("pushes address when available", func(t *testing.T) {
		id := election.MemberID(12)
		RegisterPeerAddr(id, "localhost:8001")

		builder := electionBuilder{}
		target := resolver.Target{URL: url.URL{Scheme: "election", Path: "/12"}}

		cc := &mockClientConn{}
		res, err := builder.Build(target, cc, resolver.BuildOptions{})
		assert.NoError(t, err)
		defer res.Close()

		assert.NotEmpty(t, cc.states)
		lastState := cc.states[len(cc.states)-1]
		assert.Len(t, lastState.Addresses, 1)
		assert.Equal(t, "localhost:8001", lastState.Addresses[0].Addr)
	})

	t.Run("pushes empty when address not available", func(t *testing.T) {
		id := election.MemberID(13)

		builder := electionBuilder{}
		target := resolver.Target{URL: url.URL{Scheme: "election", Path: "/13"}}

		cc := &mockClientConn{}
		res, err := builder.Build(target, cc, resolver.BuildOptions{})
		assert.NoError(t, err)
		defer res.Close()

		assert.NotEmpty(t, cc.states)
		lastState := cc.states[len(cc.states)-1]
		assert.Len(t, lastState.Addresses, 0)
	})
}

func TestElectionResolver_UpdateOnRegister(t *testing.T) {
	resetRegistry()
	id := election.MemberID(14)

	builder := electionBuilder{}
	target := resolver.Target{URL: url.URL{Scheme: "election", Path: "/14"}}

	cc := &mockClientConn{}
	res, err := builder.Build(target, cc, resolver.BuildOptions{})
	assert.NoError(t, err)
	defer res.Close()

	initialStates := len(cc.states)

	RegisterPeerAddr(id, "localhost:9001")

	assert.Greater(t, len(cc.states), initialStates)
}

type mockClientConn struct {
	states []resolver.State
}

func (m *mockClientConn) UpdateState(s resolver.State) error {
	m.states = append(m.states, s)
	return nil
}

func (m *mockClientConn) ReportError(err error) {}

func (m *mockClientConn) NewAddress(addresses []resolver.Address) {}

func (m *mockClientConn) NewServiceConfig(serviceConfig string) {}

func (m *mockClientConn) ParseServiceConfig(serviceConfigJSON string) *serviceconfig.ParseResult {
	return &serviceconfig.ParseResult{}
}
