package config

import (
	"flag"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"electionfsm/internal/election"
)

// Peer is a cluster member's id and gRPC address, as parsed from the
// -peers flag.
type Peer struct {
	ID   election.MemberID
	Addr string
}

// Config is the fully-loaded configuration for one election node,
// covering the options spec.md §6 requires plus the cluster membership
// needed to construct a MemberTable and dial peers.
type Config struct {
	SelfID election.MemberID
	Port   int
	Peers  []Peer

	StatusInterval          time.Duration
	LeaderHeartbeatInterval time.Duration
	ElectionTimeout         time.Duration
	StartupStatusTimeout    time.Duration
	AppointedLeaderID       *election.MemberID
	LogChannel              string

	DataDir    string
	StatusAddr string
}

// Load parses the process's command-line flags into a Config, following
// the teacher's flag.Int/flag.String loading pattern from
// cmd/raft/single-server/main.go.
func Load(args []string) (*Config, error) {
	fs := flag.NewFlagSet("election", flag.ContinueOnError)

	selfID := fs.Int("id", 0, "this member's id")
	port := fs.Int("port", 50060, "port to run the gRPC transport on")
	peersFlag := fs.String("peers", "", "comma-separated id=host:port peer list, e.g. 1=localhost:50061,2=localhost:50062")

	statusIntervalMs := fs.Int64("status-interval-ms", 100, "canvass broadcast interval in milliseconds")
	leaderHeartbeatMs := fs.Int64("leader-heartbeat-ms", 250, "leader heartbeat interval in milliseconds")
	electionTimeoutMs := fs.Int64("election-timeout-ms", 1000, "election timeout in milliseconds")
	startupStatusTimeoutMs := fs.Int64("startup-status-timeout-ms", 5000, "startup canvass timeout in milliseconds")
	appointedLeader := fs.Int("appointed-leader-id", -1, "statically appoint this member id as leader (-1 disables)")
	logChannel := fs.String("log-channel", "election-log", "log channel URI template for the follower's subscription")

	dataDir := fs.String("data-dir", "./data", "directory for the bbolt recording log")
	statusAddr := fs.String("status-addr", ":0", "address for the read-only HTTP status endpoint")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	peers, err := parsePeers(*peersFlag)
	if err != nil {
		return nil, fmt.Errorf("invalid -peers: %w", err)
	}

	cfg := &Config{
		SelfID:                  election.MemberID(*selfID),
		Port:                    *port,
		Peers:                   peers,
		StatusInterval:          time.Duration(*statusIntervalMs) * time.Millisecond,
		LeaderHeartbeatInterval: time.Duration(*leaderHeartbeatMs) * time.Millisecond,
		ElectionTimeout:         time.Duration(*electionTimeoutMs) * time.Millisecond,
		StartupStatusTimeout:    time.Duration(*startupStatusTimeoutMs) * time.Millisecond,
		LogChannel:              *logChannel,
		DataDir:                 *dataDir,
		StatusAddr:              *statusAddr,
	}
	if *appointedLeader >= 0 {
		id := election.MemberID(*appointedLeader)
		cfg.AppointedLeaderID = &id
	}
	return cfg, nil
}

func parsePeers(s string) ([]Peer, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	peers := make([]Peer, 0, len(parts))
	for _, p := range parts {
		kv := strings.SplitN(p, "=", 2)
		if len(kv) != 2 {
			return nil, fmt.Errorf("malformed peer entry %q, want id=host:port", p)
		}
		id, err := strconv.Atoi(kv[0])
		if err != nil {
			return nil, fmt.Errorf("malformed peer id %q: %w", kv[0], err)
		}
		peers = append(peers, Peer{ID: election.MemberID(id), Addr: kv[1]})
	}
	return peers, nil
}

// ElectionConfig builds the election.Config value consumed by the FSM,
// wiring a fresh math/rand source seeded from SelfID+1 as the injectable
// PRNG for the nomination backoff (tests construct their own
// election.Config with a deterministic source instead of calling this).
func (c *Config) ElectionConfig() election.Config {
	return election.Config{
		StatusInterval:          c.StatusInterval,
		LeaderHeartbeatInterval: c.LeaderHeartbeatInterval,
		ElectionTimeout:         c.ElectionTimeout,
		StartupStatusTimeout:    c.StartupStatusTimeout,
		AppointedLeaderID:       c.AppointedLeaderID,
		LogChannel:              c.LogChannel,
		Random:                  rand.New(rand.NewSource(int64(c.SelfID) + 1)),
	}
}
