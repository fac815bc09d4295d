package election

import (
	"fmt"
	"math"
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// Metrics collects counters and latency samples for a running Election,
// mirroring the counter/percentile shape the rest of the cluster uses for
// its own RPC and command metrics.
type Metrics struct {
	// Broadcast and vote-message counters.
	canvassBroadcastCount  atomic.Uint64
	requestVoteSentCount   atomic.Uint64
	requestVoteDeniedCount atomic.Uint64
	voteGrantedCount       atomic.Uint64
	leaderHeartbeatCount   atomic.Uint64

	// Catch-up progress.
	catchUpBytesCopied atomic.Uint64
	catchUpCount       atomic.Uint64

	startTime time.Time

	// Election duration samples, start-of-INIT to electionComplete().
	electionCount    atomic.Uint64
	electionDuration []time.Duration
	electionMu       sync.Mutex
}

// NewMetrics creates a new, empty Metrics collector.
func NewMetrics() *Metrics {
	return &Metrics{
		electionDuration: make([]time.Duration, 0, 100),
		startTime:        time.Now(),
	}
}

// RecordCanvassBroadcast counts one CanvassPosition broadcast sent by this member.
func (m *Metrics) RecordCanvassBroadcast() { m.canvassBroadcastCount.Add(1) }

// RecordRequestVoteSent counts one RequestVote sent to a peer during CANDIDATE_BALLOT.
func (m *Metrics) RecordRequestVoteSent() { m.requestVoteSentCount.Add(1) }

// RecordRequestVoteDenied counts one negative Vote reply received or sent.
func (m *Metrics) RecordRequestVoteDenied() { m.requestVoteDeniedCount.Add(1) }

// RecordVoteGranted counts one affirmative Vote reply received or sent.
func (m *Metrics) RecordVoteGranted() { m.voteGrantedCount.Add(1) }

// RecordLeaderHeartbeat counts one NewLeadershipTerm/heartbeat broadcast sent from LEADER_READY.
func (m *Metrics) RecordLeaderHeartbeat() { m.leaderHeartbeatCount.Add(1) }

// RecordCatchUpBytes accumulates bytes copied by the CatchUpCoordinator.
func (m *Metrics) RecordCatchUpBytes(n int64) {
	if n > 0 {
		m.catchUpBytesCopied.Add(uint64(n))
	}
}

// RecordCatchUp counts one completed catch-up run.
func (m *Metrics) RecordCatchUp() { m.catchUpCount.Add(1) }

// RecordElection records a completed election occurrence and its duration.
func (m *Metrics) RecordElection() { m.electionCount.Add(1) }

// RecordElectionDuration records how long one election took, from the first
// INIT tick through electionComplete().
func (m *Metrics) RecordElectionDuration(d time.Duration) {
	m.electionMu.Lock()
	m.electionDuration = append(m.electionDuration, d)
	m.electionMu.Unlock()
}

// DurationStats contains percentile statistics over a set of durations.
type DurationStats struct {
	Count int     `json:"count"`
	Min   float64 `json:"min_ms"`
	Max   float64 `json:"max_ms"`
	Mean  float64 `json:"mean_ms"`
	P50   float64 `json:"p50_ms"`
	P95   float64 `json:"p95_ms"`
	P99   float64 `json:"p99_ms"`
}

// GetElectionStats computes percentile statistics over recorded election durations.
func (m *Metrics) GetElectionStats() DurationStats {
	m.electionMu.Lock()
	durations := make([]time.Duration, len(m.electionDuration))
	copy(durations, m.electionDuration)
	m.electionMu.Unlock()

	if len(durations) == 0 {
		return DurationStats{}
	}

	sort.Slice(durations, func(i, j int) bool { return durations[i] < durations[j] })

	ms := make([]float64, len(durations))
	var sum float64
	for i, d := range durations {
		v := float64(d.Microseconds()) / 1000.0
		ms[i] = v
		sum += v
	}
	mean := sum / float64(len(ms))

	return DurationStats{
		Count: len(ms),
		Min:   ms[0],
		Max:   ms[len(ms)-1],
		Mean:  mean,
		P50:   percentile(ms, 50),
		P95:   percentile(ms, 95),
		P99:   percentile(ms, 99),
	}
}

func percentile(sorted []float64, p int) float64 {
	if len(sorted) == 0 {
		return 0
	}
	index := float64(p) / 100.0 * float64(len(sorted)-1)
	lower := int(math.Floor(index))
	upper := int(math.Ceil(index))
	if lower == upper {
		return sorted[lower]
	}
	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// Report is a comprehensive, point-in-time snapshot of the collected metrics.
type Report struct {
	Uptime float64 `json:"uptime_seconds"`

	CanvassBroadcasts  uint64 `json:"canvass_broadcasts"`
	RequestVotesSent   uint64 `json:"request_votes_sent"`
	RequestVotesDenied uint64 `json:"request_votes_denied"`
	VotesGranted       uint64 `json:"votes_granted"`
	LeaderHeartbeats   uint64 `json:"leader_heartbeats"`

	CatchUpCount       uint64 `json:"catch_up_count"`
	CatchUpBytesCopied uint64 `json:"catch_up_bytes_copied"`

	ElectionCount uint64        `json:"election_count"`
	ElectionStats DurationStats `json:"election_stats"`
}

// GetReport builds a Report from the current counters.
func (m *Metrics) GetReport() Report {
	return Report{
		Uptime:             time.Since(m.startTime).Seconds(),
		CanvassBroadcasts:  m.canvassBroadcastCount.Load(),
		RequestVotesSent:   m.requestVoteSentCount.Load(),
		RequestVotesDenied: m.requestVoteDeniedCount.Load(),
		VotesGranted:       m.voteGrantedCount.Load(),
		LeaderHeartbeats:   m.leaderHeartbeatCount.Load(),
		CatchUpCount:       m.catchUpCount.Load(),
		CatchUpBytesCopied: m.catchUpBytesCopied.Load(),
		ElectionCount:      m.electionCount.Load(),
		ElectionStats:      m.GetElectionStats(),
	}
}

// PrintReport prints the report in a human-readable format.
func (r *Report) PrintReport() {
	fmt.Println("\nELECTION METRICS")
	fmt.Printf("  Uptime: %.2f seconds\n", r.Uptime)
	fmt.Printf("\nMessages:\n")
	fmt.Printf("  Canvass broadcasts: %d\n", r.CanvassBroadcasts)
	fmt.Printf("  RequestVotes sent: %d\n", r.RequestVotesSent)
	fmt.Printf("  Votes granted: %d\n", r.VotesGranted)
	fmt.Printf("  Votes denied: %d\n", r.RequestVotesDenied)
	fmt.Printf("  Leader heartbeats: %d\n", r.LeaderHeartbeats)
	fmt.Printf("\nCatch-up:\n")
	fmt.Printf("  Runs: %d\n", r.CatchUpCount)
	fmt.Printf("  Bytes copied: %d\n", r.CatchUpBytesCopied)
	fmt.Printf("\nElections:\n")
	fmt.Printf("  Count: %d\n", r.ElectionCount)
	if r.ElectionStats.Count > 0 {
		fmt.Printf("  Mean duration: %.3f ms\n", r.ElectionStats.Mean)
		fmt.Printf("  P50: %.3f ms\n", r.ElectionStats.P50)
		fmt.Printf("  P99: %.3f ms\n", r.ElectionStats.P99)
	}
}

// Reset clears all collected metrics.
func (m *Metrics) Reset() {
	m.canvassBroadcastCount.Store(0)
	m.requestVoteSentCount.Store(0)
	m.requestVoteDeniedCount.Store(0)
	m.voteGrantedCount.Store(0)
	m.leaderHeartbeatCount.Store(0)
	m.catchUpBytesCopied.Store(0)
	m.catchUpCount.Store(0)
	m.electionCount.Store(0)

	m.electionMu.Lock()
	m.electionDuration = make([]time.Duration, 0, 100)
	m.electionMu.Unlock()

	m.startTime = time.Now()
}
