package core

import (
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/ethereum/go-ethereum/rlp"
)

// KeyValueLedger is the persistent-storage collaborator the core consumes
// for replay detection and row writes (spec §1, §6): `count_by_id` and
// `save_rows`. Storage itself is out of scope; this interface is all the
// core depends on.
type KeyValueLedger interface {
	CountByID(id string) (uint64, error)
	SaveRows(rows []Row) error
}

// walEntry is the RLP-encoded record MemoryLedger appends for each saved
// row. RLP is not consensus-critical here — this is an internal write-ahead
// log, not the canonical transaction encoding from codec.go — but it keeps
// the ledger on the same serialization stack (go-ethereum/rlp) the rest of
// the pack's storage layers use rather than hand-rolling one.
type walEntry struct {
	Table  string
	Keys   []string
	Values []string
}

// MemoryLedger is a reference KeyValueLedger for tests and the CLI. It
// keeps an exact per-id save count (unbounded, held in memory), records
// recently saved ids in an LRU cache, and keeps an in-memory append-only
// RLP-encoded write-ahead log with one entry per saved row.
type MemoryLedger struct {
	mu      sync.Mutex
	seen    *lru.Cache[string, struct{}]
	wal     [][]byte
	idCount map[string]uint64
}

// NewMemoryLedger returns a MemoryLedger whose id-seen cache holds up to
// cacheSize recent transaction ids.
func NewMemoryLedger(cacheSize int) (*MemoryLedger, error) {
	cache, err := lru.New[string, struct{}](cacheSize)
	if err != nil {
		return nil, WrapError(ErrStoreError, "failed to construct ledger id cache", err)
	}
	return &MemoryLedger{seen: cache, idCount: make(map[string]uint64)}, nil
}

// CountByID reports how many times id has been saved, read from the exact
// count map; the LRU cache is not consulted. A zero count is the "not seen"
// signal for replay detection.
func (l *MemoryLedger) CountByID(id string) (uint64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.idCount[id], nil
}

// SaveRows appends rows to the write-ahead log, RLP-encoding each row as
// a walEntry, and marks every row's id as seen.
func (l *MemoryLedger) SaveRows(rows []Row) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, row := range rows {
		entry := walEntry{Table: row.Table}
		for k, v := range row.Fields {
			entry.Keys = append(entry.Keys, k)
			entry.Values = append(entry.Values, v)
		}
		encoded, err := rlp.EncodeToBytes(entry)
		if err != nil {
			return WrapError(ErrStoreError, "failed to rlp-encode row", err)
		}
		l.wal = append(l.wal, encoded)

		if id, ok := row.Fields["id"]; ok && id != "" {
			l.idCount[id]++
			l.seen.Add(id, struct{}{})
		}
	}
	return nil
}

// WAL returns the raw RLP-encoded log entries, exposed for tests that check
// persistence round-trips without a real database.
func (l *MemoryLedger) WAL() [][]byte {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([][]byte(nil), l.wal...)
}
