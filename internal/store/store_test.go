package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "neuroboost.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		if err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got); err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestKV_GetMissingKey(t *testing.T) {
	kv := openTestStore(t).KV()

	value, version, err := kv.Get(context.Background(), "absent")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if value != nil || version != 0 {
		t.Errorf("Get(absent) = (%v, %d), want (nil, 0)", value, version)
	}
}

func TestKV_PutGetRoundTrip(t *testing.T) {
	kv := openTestStore(t).KV()
	ctx := context.Background()

	if err := kv.Put(ctx, "history", []byte(`[1,2]`), 0); err != nil {
		t.Fatalf("initial Put: %v", err)
	}

	value, version, err := kv.Get(ctx, "history")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(value) != `[1,2]` {
		t.Errorf("value = %q, want %q", value, `[1,2]`)
	}
	if version != 1 {
		t.Errorf("version = %d, want 1", version)
	}

	if err := kv.Put(ctx, "history", []byte(`[1,2,3]`), version); err != nil {
		t.Fatalf("second Put: %v", err)
	}
	value, version, _ = kv.Get(ctx, "history")
	if string(value) != `[1,2,3]` || version != 2 {
		t.Errorf("after update: (%q, %d), want ([1,2,3], 2)", value, version)
	}
}

func TestKV_PutVersionConflict(t *testing.T) {
	kv := openTestStore(t).KV()
	ctx := context.Background()

	if err := kv.Put(ctx, "k", []byte("a"), 0); err != nil {
		t.Fatalf("Put: %v", err)
	}

	// Stale insert (key already exists).
	if err := kv.Put(ctx, "k", []byte("b"), 0); !errors.Is(err, ErrVersionConflict) {
		t.Errorf("stale insert err = %v, want ErrVersionConflict", err)
	}

	// Stale update (wrong version).
	if err := kv.Put(ctx, "k", []byte("b"), 99); !errors.Is(err, ErrVersionConflict) {
		t.Errorf("stale update err = %v, want ErrVersionConflict", err)
	}

	// Value untouched by failed writes.
	value, version, _ := kv.Get(ctx, "k")
	if string(value) != "a" || version != 1 {
		t.Errorf("after conflicts: (%q, %d), want (a, 1)", value, version)
	}
}

func TestKV_Delete(t *testing.T) {
	kv := openTestStore(t).KV()
	ctx := context.Background()

	if err := kv.Put(ctx, "k", []byte("a"), 0); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := kv.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, version, _ := kv.Get(ctx, "k"); version != 0 {
		t.Errorf("version after delete = %d, want 0", version)
	}

	// Deleting again is fine.
	if err := kv.Delete(ctx, "k"); err != nil {
		t.Errorf("second Delete: %v", err)
	}
}

func TestLLMEvents_AppendAndQuery(t *testing.T) {
	repo := openTestStore(t).LLMEvents()
	ctx := context.Background()

	err := repo.Append(ctx, LLMRequestData{
		SessionID:   "s-1",
		Provider:    "mock",
		Model:       "mock",
		Purpose:     "riddle",
		InputTokens: 10, OutputTokens: 20, LatencyMs: 42,
		Success:     true,
		RequestBody: "[user]\nhello",
	})
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	err = repo.Append(ctx, LLMRequestData{
		Provider: "mock", Model: "mock", Purpose: "analysis",
		Success: false, ErrorMessage: "boom",
	})
	if err != nil {
		t.Fatalf("Append: %v", err)
	}

	events, err := repo.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("len(events) = %d, want 2", len(events))
	}
	// Newest first.
	if events[0].Purpose != "analysis" {
		t.Errorf("events[0].Purpose = %q, want analysis", events[0].Purpose)
	}
	if events[0].Success {
		t.Error("events[0].Success = true, want false")
	}
	if events[1].InputTokens != 10 || events[1].OutputTokens != 20 {
		t.Errorf("events[1] tokens = %d/%d, want 10/20", events[1].InputTokens, events[1].OutputTokens)
	}

	got, err := repo.Get(ctx, events[1].ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got == nil || got.SessionID != "s-1" {
		t.Errorf("Get(%d) = %+v, want session s-1", events[1].ID, got)
	}

	missing, err := repo.Get(ctx, 9999)
	if err != nil {
		t.Fatalf("Get missing: %v", err)
	}
	if missing != nil {
		t.Errorf("Get(9999) = %+v, want nil", missing)
	}
}
