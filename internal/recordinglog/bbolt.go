package recordinglog

import (
	"encoding/binary"
	"fmt"
	"time"

	"go.etcd.io/bbolt"

	"electionfsm/internal/election"
)

var (
	termsBucket = []byte("terms")
)

// BboltLog is a durable, idempotent RecordingLog backed by bbolt. Each
// record is keyed by (term, logPosition) so AppendTerm is naturally
// idempotent on a repeat of the identical pair — a re-put of the same
// key, leaving one record whose timestamp is the latest call's.
type BboltLog struct {
	conn *bbolt.DB
}

// Open opens (creating if necessary) a bbolt-backed RecordingLog at path.
func Open(path string) (*BboltLog, error) {
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open bbolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(termsBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &BboltLog{conn: db}, nil
}

// AppendTerm persists a term record at (term, logPosition, timestamp).
// The key is the big-endian encoding of (term, logPosition), so repeated
// calls with the same pair overwrite the same key; the stored timestamp
// is the one from the latest call.
func (b *BboltLog) AppendTerm(term int64, logPosition int64, timestamp time.Time) error {
	return b.conn.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(termsBucket)
		key := termKey(term, logPosition)
		value := make([]byte, 8)
		binary.BigEndian.PutUint64(value, uint64(timestamp.UnixNano()))
		return bucket.Put(key, value)
	})
}

// Records returns every persisted (term, logPosition, timestamp) in key
// order, for diagnostics and tests.
func (b *BboltLog) Records() ([]TermRecord, error) {
	var records []TermRecord
	err := b.conn.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(termsBucket)
		cursor := bucket.Cursor()
		for k, v := cursor.First(); k != nil; k, v = cursor.Next() {
			term, pos := decodeTermKey(k)
			ts := time.Unix(0, int64(binary.BigEndian.Uint64(v)))
			records = append(records, TermRecord{Term: term, LogPosition: pos, Timestamp: ts})
		}
		return nil
	})
	return records, err
}

// Close closes the underlying bbolt database.
func (b *BboltLog) Close() error {
	return b.conn.Close()
}

// TermRecord is one persisted (term, logPosition, timestamp) entry.
type TermRecord struct {
	Term        int64
	LogPosition int64
	Timestamp   time.Time
}

func termKey(term, logPosition int64) []byte {
	key := make([]byte, 16)
	binary.BigEndian.PutUint64(key[:8], uint64(term))
	binary.BigEndian.PutUint64(key[8:], uint64(logPosition))
	return key
}

func decodeTermKey(key []byte) (term int64, logPosition int64) {
	return int64(binary.BigEndian.Uint64(key[:8])), int64(binary.BigEndian.Uint64(key[8:]))
}

var _ election.RecordingLog = (*BboltLog)(nil)
