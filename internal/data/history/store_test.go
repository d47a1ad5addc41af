package history

import (
	"path/filepath"
	"testing"
	"time"

	"typemeta/internal/store"
)

func TestStore_OpenInitializesSchemaAndSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	hs, err := Open(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer hs.Close()

	base := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)
	first := Snapshot{
		SessionID:  "session-1",
		Timestamp:  base,
		IndexCount: 2,
		KeyCount:   10,
		EntryCount: 25,
	}
	second := Snapshot{
		SessionID:     "session-2",
		Timestamp:     base.Add(2 * time.Hour),
		IndexCount:    2,
		KeyCount:      14,
		EntryCount:    40,
		ExternalCount: 3,
	}

	if err := hs.SaveSnapshot("project-a", first); err != nil {
		t.Fatalf("save first snapshot: %v", err)
	}
	if err := hs.SaveSnapshot("project-a", second); err != nil {
		t.Fatalf("save second snapshot: %v", err)
	}

	got, err := hs.LoadSnapshots("project-a", time.Time{})
	if err != nil {
		t.Fatalf("load snapshots: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 snapshots, got %d", len(got))
	}
	if got[0].SessionID != "session-1" || got[1].SessionID != "session-2" {
		t.Fatalf("expected chronological order, got %+v", got)
	}
	if got[1].ExternalCount != 3 {
		t.Errorf("expected external count 3, got %d", got[1].ExternalCount)
	}
	if got[0].SchemaVersion != SchemaVersion {
		t.Errorf("expected schema version %d, got %d", SchemaVersion, got[0].SchemaVersion)
	}
}

func TestStore_SaveSnapshotUpsertsSameKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	hs, err := Open(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer hs.Close()

	ts := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)
	snap := Snapshot{SessionID: "s", Timestamp: ts, EntryCount: 5}
	if err := hs.SaveSnapshot("p", snap); err != nil {
		t.Fatalf("save: %v", err)
	}
	snap.EntryCount = 9
	if err := hs.SaveSnapshot("p", snap); err != nil {
		t.Fatalf("save update: %v", err)
	}

	got, err := hs.LoadSnapshots("p", time.Time{})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected upsert to keep 1 row, got %d", len(got))
	}
	if got[0].EntryCount != 9 {
		t.Errorf("expected updated entry count 9, got %d", got[0].EntryCount)
	}
}

func TestStore_LoadSnapshotsSinceFilter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	hs, err := Open(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer hs.Close()

	base := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		snap := Snapshot{SessionID: "s", Timestamp: base.Add(time.Duration(i) * time.Hour)}
		if err := hs.SaveSnapshot("p", snap); err != nil {
			t.Fatalf("save snapshot %d: %v", i, err)
		}
	}

	got, err := hs.LoadSnapshots("p", base.Add(time.Hour))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 snapshots since filter, got %d", len(got))
	}
}

func TestStore_OpenRejectsEmptyPath(t *testing.T) {
	if _, err := Open("  "); err == nil {
		t.Error("expected error for empty path")
	}
}

func TestStore_OpenRejectsDirectory(t *testing.T) {
	if _, err := Open(t.TempDir()); err == nil {
		t.Error("expected error for directory path")
	}
}

func TestCapture(t *testing.T) {
	s := store.New("subtypes", "annotations")
	s.Put("subtypes", "Base", store.Entry{Name: "Mid"})
	s.Put("subtypes", "Mid", store.Entry{Name: "Leaf", External: true})
	s.Put("annotations", "Marker", store.Entry{Name: "Annotated"})

	snap := Capture(s)
	if snap.SessionID == "" {
		t.Error("expected a generated session id")
	}
	if snap.IndexCount != 2 || snap.KeyCount != 3 || snap.EntryCount != 3 || snap.ExternalCount != 1 {
		t.Errorf("unexpected snapshot counts: %+v", snap)
	}
	if snap.Timestamp.IsZero() {
		t.Error("expected a timestamp")
	}
}
