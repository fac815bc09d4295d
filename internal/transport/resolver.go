package transport

import (
	"fmt"
	"strconv"
	"sync"

	"google.golang.org/grpc/resolver"

	"electionfsm/internal/election"
)

// ---- Simple in-process registry: MemberID -> network address ----

type idRegistry struct {
	mu       sync.RWMutex
	records  map[election.MemberID]string
	watchers map[election.MemberID]map[*electionResolver]struct{}
}

var globalIDRegistry = &idRegistry{
	records:  make(map[election.MemberID]string),
	watchers: make(map[election.MemberID]map[*electionResolver]struct{}),
}

// RegisterPeerAddr sets/updates the dial address for a member id and
// notifies any active resolvers, so a peer that joins or moves after the
// transport is already running is picked up on the next dial attempt.
func RegisterPeerAddr(id election.MemberID, addr string) {
	globalIDRegistry.mu.Lock()
	globalIDRegistry.records[id] = addr
	watchers := globalIDRegistry.watchers[id]
	globalIDRegistry.mu.Unlock()

	for w := range watchers {
		w.pushCurrent()
	}
}

// ---- gRPC name resolver ("election" scheme) ----

const electionScheme = "election"

type electionBuilder struct{}

func (electionBuilder) Scheme() string { return electionScheme }

func (electionBuilder) Build(target resolver.Target, cc resolver.ClientConn, _ resolver.BuildOptions) (resolver.Resolver, error) {
	endpoint := target.Endpoint()
	if endpoint == "" {
		if p := target.URL.Path; len(p) > 0 {
			if p[0] == '/' {
				p = p[1:]
			}
			endpoint = p
		}
	}
	if endpoint == "" {
		return nil, fmt.Errorf("election resolver: empty target endpoint: %+v", target)
	}
	n, err := strconv.Atoi(endpoint)
	if err != nil {
		return nil, fmt.Errorf("election resolver: invalid member id %q: %w", endpoint, err)
	}

	r := &electionResolver{id: election.MemberID(n), cc: cc}
	r.subscribe()
	r.pushCurrent()
	return r, nil
}

type electionResolver struct {
	id election.MemberID
	cc resolver.ClientConn
}

func (r *electionResolver) ResolveNow(resolver.ResolveNowOptions) { r.pushCurrent() }

func (r *electionResolver) Close() {
	globalIDRegistry.mu.Lock()
	defer globalIDRegistry.mu.Unlock()
	if set, ok := globalIDRegistry.watchers[r.id]; ok {
		delete(set, r)
		if len(set) == 0 {
			delete(globalIDRegistry.watchers, r.id)
		}
	}
}

func (r *electionResolver) subscribe() {
	globalIDRegistry.mu.Lock()
	defer globalIDRegistry.mu.Unlock()
	set := globalIDRegistry.watchers[r.id]
	if set == nil {
		set = make(map[*electionResolver]struct{})
		globalIDRegistry.watchers[r.id] = set
	}
	set[r] = struct{}{}
}

func (r *electionResolver) pushCurrent() {
	globalIDRegistry.mu.RLock()
	addr, ok := globalIDRegistry.records[r.id]
	globalIDRegistry.mu.RUnlock()

	if !ok || addr == "" {
		_ = r.cc.UpdateState(resolver.State{Addresses: nil})
		return
	}

	_ = r.cc.UpdateState(resolver.State{
		Addresses: []resolver.Address{{Addr: addr}},
	})
}

func init() {
	resolver.Register(electionBuilder{})
}
