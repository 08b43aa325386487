// Package history keeps the append-only log of completed game sessions.
//
// The full log is persisted as one JSON array under a single key-value entry.
// Loading is forgiving: absent or malformed data yields an empty history,
// never an error. Appending is best-effort durable: the in-memory append
// always stands, and a failed persist only degrades the rest of the session
// to memory-only.
package history

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/abhisek/neuroboost/internal/game"
	"github.com/abhisek/neuroboost/internal/store"
)

// Key is the key-value entry the history is persisted under.
const Key = "history"

// Store is the in-memory view of the persisted history. It is not safe for
// concurrent use; the UI drives it from a single goroutine.
type Store struct {
	kv      store.KVRepo
	results []game.Result
	version int64
	memOnly bool
}

// Load reads the persisted history. Stored data that fails to read, parse,
// or validate against the history schema is treated as empty.
func Load(ctx context.Context, kv store.KVRepo) *Store {
	s := &Store{kv: kv}
	s.results, s.version = readValid(ctx, kv)
	return s
}

// All returns the results in append (chronological) order.
func (s *Store) All() []game.Result {
	out := make([]game.Result, len(s.results))
	copy(out, s.results)
	return out
}

// Len returns the number of recorded results.
func (s *Store) Len() int {
	return len(s.results)
}

// Append records one completed session and persists the full sequence.
// A version conflict (another process appended concurrently) is resolved by
// re-reading the stored sequence, re-appending r, and retrying once. Any
// persistence failure leaves the in-memory append in place and switches the
// store to memory-only for the remainder of the session.
func (s *Store) Append(ctx context.Context, r game.Result) {
	s.results = append(s.results, r)
	if s.memOnly {
		return
	}

	err := s.persist(ctx)
	if err == store.ErrVersionConflict {
		// Lost the race: adopt the other writer's sequence and re-append.
		stored, version := readValid(ctx, s.kv)
		s.results = append(stored, r)
		s.version = version
		err = s.persist(ctx)
	}
	if err != nil {
		s.memOnly = true
	}
}

func (s *Store) persist(ctx context.Context) error {
	data, err := json.Marshal(s.results)
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}
	if err := s.kv.Put(ctx, Key, data, s.version); err != nil {
		return err
	}
	s.version++
	return nil
}

// readValid loads and validates the stored history, returning the decoded
// sequence and its version. Anything unreadable counts as empty.
func readValid(ctx context.Context, kv store.KVRepo) ([]game.Result, int64) {
	data, version, err := kv.Get(ctx, Key)
	if err != nil || len(data) == 0 {
		return nil, version
	}
	if err := validate(data); err != nil {
		return nil, version
	}
	var results []game.Result
	if err := json.Unmarshal(data, &results); err != nil {
		return nil, version
	}
	return results, version
}
