package fsstore

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/mutabaa-labs/mutabaa-core/internal/core/domain"
)

func newTestEntryStore(t *testing.T) *EntryStore {
	t.Helper()
	store, err := NewEntryStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewEntryStore failed: %v", err)
	}
	return store
}

func TestEntryStore_AppendAndList(t *testing.T) {
	store := newTestEntryStore(t)
	ctx := context.Background()

	entries := []domain.Entry{
		{ProjectID: "airport", Text: "تم صب الخرسانة", Timestamp: "2024-01-01T09:00:00"},
		{ProjectID: "airport", Text: "تم تأجيل التسليم", Timestamp: "2024-02-01T09:00:00"},
	}
	for _, e := range entries {
		if err := store.Append(ctx, e); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	got, err := store.List(ctx, "airport")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d entries, want 2", len(got))
	}
	// Log order is append order.
	if got[0].Text != entries[0].Text || got[1].Text != entries[1].Text {
		t.Errorf("entries out of order: %+v", got)
	}
}

func TestEntryStore_ListMissingLog(t *testing.T) {
	store := newTestEntryStore(t)

	_, err := store.List(context.Background(), "missing")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("want ErrNotFound, got %v", err)
	}
}

func TestEntryStore_ListCorruptLog(t *testing.T) {
	dir := t.TempDir()
	store, err := NewEntryStore(dir)
	if err != nil {
		t.Fatalf("NewEntryStore failed: %v", err)
	}

	path := filepath.Join(dir, "entries_airport.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write corrupt log: %v", err)
	}

	_, err = store.List(context.Background(), "airport")
	if !errors.Is(err, domain.ErrStorage) {
		t.Errorf("want ErrStorage, got %v", err)
	}
}

func TestEntryStore_Replace(t *testing.T) {
	store := newTestEntryStore(t)
	ctx := context.Background()

	_ = store.Append(ctx, domain.Entry{ProjectID: "airport", Text: "old", Timestamp: "2024-01-01T09:00:00"})

	replacement := []domain.Entry{
		{ProjectID: "airport", Text: "new one", Timestamp: "2024-02-01T09:00:00"},
		{ProjectID: "airport", Text: "new two", Timestamp: "2024-03-01T09:00:00"},
	}
	if err := store.Replace(ctx, "airport", replacement); err != nil {
		t.Fatalf("Replace failed: %v", err)
	}

	got, err := store.List(ctx, "airport")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 2 || got[0].Text != "new one" {
		t.Errorf("replace did not take: %+v", got)
	}
}

func TestEntryStore_ReplaceEmptyLeavesReadableLog(t *testing.T) {
	store := newTestEntryStore(t)
	ctx := context.Background()

	_ = store.Append(ctx, domain.Entry{ProjectID: "airport", Text: "x", Timestamp: "2024-01-01T09:00:00"})
	if err := store.Replace(ctx, "airport", nil); err != nil {
		t.Fatalf("Replace failed: %v", err)
	}

	got, err := store.List(ctx, "airport")
	if err != nil {
		t.Fatalf("an emptied log must still exist: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %d entries, want 0", len(got))
	}
}

func TestEntryStore_ProjectIDs(t *testing.T) {
	store := newTestEntryStore(t)
	ctx := context.Background()

	_ = store.Append(ctx, domain.Entry{ProjectID: "airport", Text: "a", Timestamp: "2024-01-01T09:00:00"})
	_ = store.Append(ctx, domain.Entry{ProjectID: "bridge", Text: "b", Timestamp: "2024-01-01T09:00:00"})

	ids, err := store.ProjectIDs(ctx)
	if err != nil {
		t.Fatalf("ProjectIDs failed: %v", err)
	}
	sort.Strings(ids)
	if len(ids) != 2 || ids[0] != "airport" || ids[1] != "bridge" {
		t.Errorf("project IDs = %v", ids)
	}
}

func TestEntryStore_RejectsPathTraversal(t *testing.T) {
	store := newTestEntryStore(t)
	ctx := context.Background()

	bad := []string{"", "../evil", "a/b", `a\b`}
	for _, id := range bad {
		if _, err := store.List(ctx, id); !errors.Is(err, domain.ErrInvalidInput) {
			t.Errorf("List(%q): want ErrInvalidInput, got %v", id, err)
		}
	}
}
