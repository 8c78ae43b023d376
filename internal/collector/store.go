package collector

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

const defaultStoreSize = 200

// ReceivedRecord is one record accepted by the collector.
type ReceivedRecord struct {
	ID         uuid.UUID      `json:"id"`
	LogType    string         `json:"log_type"`
	ReceivedAt time.Time      `json:"received_at"`
	Fields     map[string]any `json:"fields"`
}

// RecordStore keeps the most recently accepted records in memory, newest
// first.
type RecordStore struct {
	mu   sync.Mutex
	recs []ReceivedRecord
	max  int
}

func newRecordStore(max int) *RecordStore {
	if max <= 0 {
		max = defaultStoreSize
	}
	return &RecordStore{max: max}
}

// Add stores a record, evicting the oldest when the store is full.
func (s *RecordStore) Add(rec ReceivedRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recs = append(s.recs, rec)
	if len(s.recs) > s.max {
		s.recs = s.recs[len(s.recs)-s.max:]
	}
}

// Recent returns stored records, newest first.
func (s *RecordStore) Recent() []ReceivedRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]ReceivedRecord, len(s.recs))
	for i, r := range s.recs {
		out[len(s.recs)-1-i] = r
	}
	return out
}

// Len returns the number of stored records.
func (s *RecordStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.recs)
}
