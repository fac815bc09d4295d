package election

import "time"

// RecordingLog is the durable, append-only term/position journal the FSM
// appends to on every nomination (including the single-member shortcut in
// INIT), on answering a higher-term RequestVote, and on adopting a higher
// term announced by a leader.
// AppendTerm must be idempotent on an identical (term, logPosition) pair;
// the FSM never relies on truncation of a speculative tail, since it only
// appends in observed, monotonically-ordered calls.
type RecordingLog interface {
	AppendTerm(term int64, logPosition int64, timestamp time.Time) error
}
