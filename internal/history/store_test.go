package history

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/abhisek/neuroboost/internal/game"
	"github.com/abhisek/neuroboost/internal/store"
)

func testKV(t *testing.T) store.KVRepo {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "neuroboost.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s.KV()
}

func result(typ game.Type, score int) game.Result {
	return game.Result{
		Date:  time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Type:  typ,
		Score: score,
	}
}

func TestLoad_EmptyDatabase(t *testing.T) {
	s := Load(context.Background(), testKV(t))
	if s.Len() != 0 {
		t.Errorf("Len = %d, want 0", s.Len())
	}
}

func TestAppendThenLoad_RoundTrip(t *testing.T) {
	kv := testKV(t)
	ctx := context.Background()

	s := Load(ctx, kv)
	want := []game.Result{
		game.NewReflexResult([]int{250, 300, 280, 260, 310}, time.Now().UTC()),
		game.NewCalculationResult(12, time.Now().UTC()),
		game.NewMemoryResult(4, time.Now().UTC()),
	}
	for _, r := range want {
		s.Append(ctx, r)
	}

	reloaded := Load(ctx, kv)
	got := reloaded.All()
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].Type != want[i].Type || got[i].Score != want[i].Score || got[i].Details != want[i].Details {
			t.Errorf("result[%d] = %+v, want %+v", i, got[i], want[i])
		}
		if !got[i].Date.Equal(want[i].Date) {
			t.Errorf("result[%d].Date = %v, want %v", i, got[i].Date, want[i].Date)
		}
	}
}

func TestLoad_MalformedDataTreatedAsEmpty(t *testing.T) {
	kv := testKV(t)
	ctx := context.Background()

	cases := []struct {
		name string
		data []byte
	}{
		{"garbage", []byte("not json at all")},
		{"wrong shape", []byte(`{"history": []}`)},
		{"unknown type", []byte(`[{"date":"2026-01-02T03:04:05Z","type":"CHESS","score":1}]`)},
		{"negative score", []byte(`[{"date":"2026-01-02T03:04:05Z","type":"REFLEX","score":-5}]`)},
		{"missing fields", []byte(`[{"type":"REFLEX"}]`)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := kv.Delete(ctx, Key); err != nil {
				t.Fatalf("reset: %v", err)
			}
			if err := kv.Put(ctx, Key, tc.data, 0); err != nil {
				t.Fatalf("seed: %v", err)
			}

			s := Load(ctx, kv)
			if s.Len() != 0 {
				t.Errorf("Len = %d, want 0", s.Len())
			}
		})
	}
}

func TestAppend_RecoversAfterCorruption(t *testing.T) {
	kv := testKV(t)
	ctx := context.Background()

	if err := kv.Put(ctx, Key, []byte("corrupt"), 0); err != nil {
		t.Fatalf("seed: %v", err)
	}

	s := Load(ctx, kv)
	s.Append(ctx, result(game.TypeReflex, 720))

	reloaded := Load(ctx, kv)
	if reloaded.Len() != 1 {
		t.Fatalf("Len = %d, want 1", reloaded.Len())
	}
	if reloaded.All()[0].Score != 720 {
		t.Errorf("Score = %d, want 720", reloaded.All()[0].Score)
	}
}

func TestAppend_ConcurrentWriterMerged(t *testing.T) {
	kv := testKV(t)
	ctx := context.Background()

	// Two stores over the same database, as with two open app instances.
	a := Load(ctx, kv)
	b := Load(ctx, kv)

	a.Append(ctx, result(game.TypeReflex, 700))
	b.Append(ctx, result(game.TypeMemory, 300)) // b's version is now stale

	reloaded := Load(ctx, kv)
	got := reloaded.All()
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2 (no lost update)", len(got))
	}
	if got[0].Type != game.TypeReflex || got[1].Type != game.TypeMemory {
		t.Errorf("order = %v, %v; want REFLEX, MEMORY", got[0].Type, got[1].Type)
	}
}

type failingKV struct {
	store.KVRepo
	fail bool
}

func (f *failingKV) Put(ctx context.Context, key string, value []byte, expect int64) error {
	if f.fail {
		return errors.New("disk full")
	}
	return f.KVRepo.Put(ctx, key, value, expect)
}

func TestAppend_PersistFailureKeepsMemory(t *testing.T) {
	kv := &failingKV{KVRepo: testKV(t), fail: true}
	ctx := context.Background()

	s := Load(ctx, kv)
	s.Append(ctx, result(game.TypeCalculation, 120))
	s.Append(ctx, result(game.TypeMemory, 300))

	// In-memory view keeps both appends.
	if s.Len() != 2 {
		t.Errorf("Len = %d, want 2", s.Len())
	}

	// Nothing was persisted.
	kv.fail = false
	if Load(ctx, kv).Len() != 0 {
		t.Error("expected nothing persisted after write failures")
	}
}
