// Command demo runs a full election cluster in one process, over the
// in-process pubsub transport instead of real sockets, and prints the
// outcome once every member has either settled on a leader or given up
// waiting. It's meant for watching the state machine run end-to-end
// without standing up a real cluster.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"electionfsm/internal/election"
	"electionfsm/internal/hostagent"
	"electionfsm/internal/logging"
	"electionfsm/internal/pubsub"
	"electionfsm/internal/transport"
)

// noopArchiveClient satisfies election.ArchiveClient for the demo, where
// every member starts at log position 0 under the same term and so never
// actually enters FOLLOWER_CATCHUP; it exists only so adoptLeader always
// has a non-nil archive to hand a CatchUpCoordinator.
type noopArchiveClient struct{}

func (noopArchiveClient) FetchSegment(_ election.MemberID, fromPosition, targetPosition int64) (int64, int64, error) {
	return targetPosition - fromPosition, targetPosition, nil
}

func (noopArchiveClient) Close() error { return nil }

var _ election.ArchiveClient = noopArchiveClient{}

func main() {
	memberCount := flag.Int("members", 3, "number of members in the demo cluster")
	runFor := flag.Duration("for", 5*time.Second, "how long to run the demo before giving up")
	appointedLeader := flag.Int("appointed-leader-id", -1, "statically appoint this member id as leader (-1 disables)")
	flag.Parse()

	if *memberCount < 1 {
		fmt.Fprintln(os.Stderr, "-members must be at least 1")
		os.Exit(2)
	}

	ids := make([]election.MemberID, *memberCount)
	for i := range ids {
		ids[i] = election.MemberID(i + 1)
	}

	var appointed *election.MemberID
	if *appointedLeader >= 0 {
		id := election.MemberID(*appointedLeader)
		appointed = &id
	}

	bus := pubsub.NewPubSub()
	defer bus.GracefulShutdown()

	type member struct {
		id   election.MemberID
		fsm  *election.ElectionFSM
		host *hostagent.InMemoryHost
		log  *logging.Logger
	}

	members := make([]*member, 0, len(ids))
	for _, id := range ids {
		table := election.NewMemberTable(id, ids)
		metrics := election.NewMetrics()
		log := logging.New(int32(id))
		host := hostagent.NewInMemoryHost()

		cfg := election.Config{
			StatusInterval:          50 * time.Millisecond,
			LeaderHeartbeatInterval: 100 * time.Millisecond,
			ElectionTimeout:         800 * time.Millisecond,
			StartupStatusTimeout:    300 * time.Millisecond,
			AppointedLeaderID:       appointed,
			LogChannel:              "demo-election-log",
			Random:                  rand.New(rand.NewSource(int64(id))),
		}

		localTransport := transport.NewLocalTransport(id, bus)
		fsm := election.NewElectionFSM(table, cfg, localTransport, host, nil, noopArchiveClient{}, metrics, log, true)
		localTransport.Attach(fsm)

		members = append(members, &member{id: id, fsm: fsm, host: host, log: log})
	}

	deadline := time.Now().Add(*runFor)
	ticker := time.NewTicker(5 * time.Millisecond)
	defer ticker.Stop()

	for now := range ticker.C {
		done := true
		for _, m := range members {
			if err := m.fsm.Tick(now); err != nil && err != election.ErrClosed {
				m.log.Warnf("tick error: %v", err)
			}
			if !m.host.Completed() {
				done = false
			}
		}
		if done || now.After(deadline) {
			break
		}
	}

	fmt.Println("=== election demo result ===")
	for _, m := range members {
		fmt.Printf("member %d: state=%v term=%d completed=%v %s\n",
			m.id, m.fsm.State(), m.fsm.LeadershipTermID(), m.host.Completed(), m.host.String())
	}
}
