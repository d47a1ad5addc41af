package history

import (
	"time"

	"typemeta/internal/store"

	"github.com/google/uuid"
)

const SchemaVersion = 1

// Snapshot is a point-in-time size record of one store: how many indexes it
// carries and how many keys/entries they hold. Statistics only — store
// contents are never persisted.
type Snapshot struct {
	ProjectKey    string    `json:"project_key"`
	SchemaVersion int       `json:"schema_version"`
	SessionID     string    `json:"session_id"`
	Timestamp     time.Time `json:"timestamp"`
	IndexCount    int       `json:"index_count"`
	KeyCount      int       `json:"key_count"`
	EntryCount    int       `json:"entry_count"`
	ExternalCount int       `json:"external_count"`
}

// Capture summarizes a live store into a Snapshot with a fresh session ID.
func Capture(st *store.Store) Snapshot {
	snap := Snapshot{
		SchemaVersion: SchemaVersion,
		SessionID:     uuid.NewString(),
		Timestamp:     time.Now().UTC(),
	}
	for _, stats := range st.Stats() {
		snap.IndexCount++
		snap.KeyCount += stats.KeyCount
		snap.EntryCount += stats.EntryCount
		snap.ExternalCount += stats.ExternalCount
	}
	return snap
}
