package mocks

import (
	"sync"
	"time"

	"electionfsm/internal/election"
)

// MockRecordingLog is a hand-rolled fake of election.RecordingLog. It
// keeps appended terms in a slice rather than a map so tests can assert
// on append order, and supports error injection for the append-failure
// path (the FSM logs a failed append and carries on).
type MockRecordingLog struct {
	mu sync.Mutex

	Terms []TermAppend

	AppendTermErr error
}

// TermAppend is one recorded (term, logPosition, timestamp) call.
type TermAppend struct {
	Term        int64
	LogPosition int64
	Timestamp   time.Time
}

// NewMockRecordingLog creates an empty fake recording log.
func NewMockRecordingLog() *MockRecordingLog {
	return &MockRecordingLog{}
}

func (m *MockRecordingLog) AppendTerm(term int64, logPosition int64, timestamp time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.AppendTermErr != nil {
		return m.AppendTermErr
	}
	m.Terms = append(m.Terms, TermAppend{Term: term, LogPosition: logPosition, Timestamp: timestamp})
	return nil
}

// LastTerm returns the most recently appended term record, or the zero
// value if nothing has been appended.
func (m *MockRecordingLog) LastTerm() TermAppend {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Terms) == 0 {
		return TermAppend{}
	}
	return m.Terms[len(m.Terms)-1]
}

var _ election.RecordingLog = (*MockRecordingLog)(nil)
