// # internal/store/store.go
package store

import (
	"sort"
	"sync"

	"typemeta/internal/core/errors"
	"typemeta/internal/shared/observability"
)

// Entry is one recorded relationship endpoint: an opaque name (typically a
// fully-qualified type name) and whether it was only referenced from outside
// the scanned universe. Entries are compared by identity of the whole pair,
// so the zero-cost comparable struct doubles as the visited-set key during
// closure traversal.
type Entry struct {
	Name     string
	External bool
}

// index is one named multimap: key -> ordered sequence of entries.
// Duplicates are preserved; each index synchronizes its own keys and
// sequence appends independently.
type index struct {
	mu   sync.RWMutex
	keys map[string][]Entry
}

func newIndex() *index {
	return &index{keys: make(map[string][]Entry)}
}

func (ix *index) append(key string, e Entry) {
	ix.mu.Lock()
	ix.keys[key] = append(ix.keys[key], e)
	ix.mu.Unlock()
}

// entries returns a copy of the sequence stored under key, nil if absent.
func (ix *index) entries(key string) []Entry {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	seq, ok := ix.keys[key]
	if !ok {
		return nil
	}
	return append([]Entry(nil), seq...)
}

// snapshot copies the whole key multimap. Used by Merge and enumeration.
func (ix *index) snapshot() map[string][]Entry {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	out := make(map[string][]Entry, len(ix.keys))
	for key, seq := range ix.keys {
		out[key] = append([]Entry(nil), seq...)
	}
	return out
}

// Store records relationships discovered by independent scanning passes,
// one named index per relationship type. The read API is strict about index
// names; the write API auto-creates indexes on demand so producers never
// fail on an index that was not declared up front.
type Store struct {
	mu      sync.RWMutex
	indexes map[string]*index
}

// New creates a store with one empty index per name. A store built with no
// names is usable for writes but reports NOT_CONFIGURED on the first query.
func New(indexNames ...string) *Store {
	s := &Store{indexes: make(map[string]*index, len(indexNames))}
	for _, name := range indexNames {
		if _, ok := s.indexes[name]; !ok {
			s.indexes[name] = newIndex()
		}
	}
	return s
}

// IndexNames returns every configured or auto-created index name, sorted.
func (s *Store) IndexNames() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.indexes))
	for name := range s.indexes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// lookup is the strict read-path resolution of an index name.
func (s *Store) lookup(indexName string) (*index, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.indexes) == 0 {
		return nil, errors.New(errors.CodeNotConfigured, "store has no configured indexes")
	}
	ix, ok := s.indexes[indexName]
	if !ok {
		err := errors.New(errors.CodeUnknownIndex, "index was not configured")
		return nil, errors.AddContext(err, errors.CtxIndex, indexName)
	}
	return ix, nil
}

// ensure resolves an index for the write path, creating it if absent.
func (s *Store) ensure(indexName string) *index {
	s.mu.RLock()
	ix, ok := s.indexes[indexName]
	s.mu.RUnlock()
	if ok {
		return ix
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if ix, ok := s.indexes[indexName]; ok {
		return ix
	}
	ix = newIndex()
	s.indexes[indexName] = ix
	return ix
}

// Put appends e to the sequence stored under key in the named index, creating
// the index and the key's sequence as needed. Duplicates are preserved.
// The boolean reports whether the entry was added; with the plain sequence
// used here it is always true and exists as a hook for deduplicating
// implementations of the same contract.
func (s *Store) Put(indexName, key string, e Entry) bool {
	s.ensure(indexName).append(key, e)
	observability.StorePutsTotal.WithLabelValues(indexName).Inc()
	return true
}

// Get unions the sequences stored under each requested key into an ordered
// set: first-seen insertion order across keys, deduplicated by Entry
// identity. Keys with no entries contribute nothing. Unknown index names are
// an error on this path.
func (s *Store) Get(indexName string, keys ...string) ([]Entry, error) {
	ix, err := s.lookup(indexName)
	if err != nil {
		return nil, err
	}

	seen := make(map[Entry]bool)
	result := make([]Entry, 0)
	for _, key := range keys {
		for _, e := range ix.entries(key) {
			if seen[e] {
				continue
			}
			seen[e] = true
			result = append(result, e)
		}
	}
	return result, nil
}

// Keys enumerates every key recorded under the index, sorted. Unlike Get,
// an unknown index yields an empty result rather than an error: enumeration
// of "nothing recorded yet" is not a usage mistake.
func (s *Store) Keys(indexName string) []string {
	s.mu.RLock()
	ix, ok := s.indexes[indexName]
	s.mu.RUnlock()
	if !ok {
		return []string{}
	}

	ix.mu.RLock()
	defer ix.mu.RUnlock()
	keys := make([]string, 0, len(ix.keys))
	for key := range ix.keys {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Values enumerates every distinct entry name recorded under the index,
// sorted. Tolerates unknown index names the same way Keys does.
func (s *Store) Values(indexName string) []string {
	s.mu.RLock()
	ix, ok := s.indexes[indexName]
	s.mu.RUnlock()
	if !ok {
		return []string{}
	}

	ix.mu.RLock()
	defer ix.mu.RUnlock()
	seen := make(map[string]bool)
	for _, seq := range ix.keys {
		for _, e := range seq {
			seen[e.Name] = true
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetAllIncluding computes the transitive closure reachable from seeds:
// a FIFO work-list walk over the implicit graph where each entry's name is
// looked up as a key and its members become new work items. The visited set
// keyed by Entry identity makes cycles terminate and keeps the walk
// iterative, never recursive. External entries are traversed through but
// excluded from the result; returned names are in first-visit order.
func (s *Store) GetAllIncluding(indexName string, seeds []Entry) ([]string, error) {
	ix, err := s.lookup(indexName)
	if err != nil {
		return nil, err
	}

	work := append([]Entry(nil), seeds...)
	visited := make(map[Entry]bool, len(work))
	names := make([]string, 0, len(work))

	for i := 0; i < len(work); i++ {
		e := work[i]
		if visited[e] {
			continue
		}
		visited[e] = true
		if !e.External {
			names = append(names, e.Name)
		}
		work = append(work, ix.entries(e.Name)...)
	}

	observability.ClosureVisitedEntries.Observe(float64(len(visited)))
	return names, nil
}

// GetAll resolves key via Get and computes the closure of what it finds.
// The seed's own entries start the work-list, so they appear in the result
// unless flagged external; callers needing strict seed exclusion filter the
// result themselves.
func (s *Store) GetAll(indexName, key string) ([]string, error) {
	seeds, err := s.Get(indexName, key)
	if err != nil {
		return nil, err
	}
	return s.GetAllIncluding(indexName, seeds)
}

// GetAllFrom is GetAll over a collection of already-resolved seed entries.
func (s *Store) GetAllFrom(indexName string, seeds []Entry) ([]string, error) {
	resolved := make([]Entry, 0, len(seeds))
	seen := make(map[Entry]bool, len(seeds))
	for _, seed := range seeds {
		entries, err := s.Get(indexName, seed.Name)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			if seen[e] {
				continue
			}
			seen[e] = true
			resolved = append(resolved, e)
		}
	}
	return s.GetAllIncluding(indexName, resolved)
}

// Merge re-inserts every (index, key, entry) triple of other into s via Put,
// auto-creating destination indexes. Purely additive: duplicates from both
// sides survive, destination sequences keep their entries followed by the
// source's. Not atomic; concurrent readers may observe a partial merge.
func (s *Store) Merge(other *Store) {
	if other == nil || other == s {
		return
	}
	for _, name := range other.IndexNames() {
		other.mu.RLock()
		ix := other.indexes[name]
		other.mu.RUnlock()
		if ix == nil {
			continue
		}
		for key, seq := range ix.snapshot() {
			for _, e := range seq {
				s.Put(name, key, e)
				observability.MergeEntriesTotal.Inc()
			}
		}
	}
}

// IndexStats is a point-in-time size summary of one index.
type IndexStats struct {
	Name          string
	KeyCount      int
	EntryCount    int
	ExternalCount int
}

// Stats summarizes every index, sorted by name. Counts include duplicates.
func (s *Store) Stats() []IndexStats {
	stats := make([]IndexStats, 0)
	for _, name := range s.IndexNames() {
		s.mu.RLock()
		ix := s.indexes[name]
		s.mu.RUnlock()
		if ix == nil {
			continue
		}

		st := IndexStats{Name: name}
		ix.mu.RLock()
		st.KeyCount = len(ix.keys)
		for _, seq := range ix.keys {
			st.EntryCount += len(seq)
			for _, e := range seq {
				if e.External {
					st.ExternalCount++
				}
			}
		}
		ix.mu.RUnlock()
		stats = append(stats, st)
	}
	return stats
}
