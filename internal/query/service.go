package query

import (
	"context"
	"time"

	"typemeta/internal/core/errors"
	"typemeta/internal/shared/observability"
	"typemeta/internal/store"

	"github.com/gobwas/glob"
)

// Service is the read-side facade over a populated store. Every method takes
// a context and checks it before touching the store; results are
// deterministic for identical store contents.
type Service struct {
	store      *store.Store
	maxResults int
}

// NewService wraps st. maxResults caps enumeration-style results; zero means
// unlimited.
func NewService(st *store.Store, maxResults int) *Service {
	return &Service{
		store:      st,
		maxResults: maxResults,
	}
}

// Lookup returns the names of the entries stored under the given keys,
// first-seen order, deduplicated by entry identity then by name.
func (s *Service) Lookup(ctx context.Context, indexName string, keys ...string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	defer s.observe("lookup", time.Now())

	entries, err := s.store.Get(indexName, keys...)
	if err != nil {
		return nil, errors.AddContext(err, errors.CtxOperation, "lookup")
	}

	seen := make(map[string]bool, len(entries))
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if seen[e.Name] {
			continue
		}
		seen[e.Name] = true
		names = append(names, e.Name)
	}
	return s.capped(names), nil
}

// TransitiveClosure resolves the seed keys through the index and walks the
// reachability closure from whatever they map to. Members are reported in
// first-visit order with external entries excluded; the seeds' own targets
// appear unless external.
func (s *Service) TransitiveClosure(ctx context.Context, indexName string, seedKeys ...string) (ClosureResult, error) {
	ctx, span := observability.Tracer.Start(ctx, "query.TransitiveClosure")
	defer span.End()
	if err := ctx.Err(); err != nil {
		return ClosureResult{}, err
	}
	defer s.observe("closure", time.Now())

	seeds, err := s.store.Get(indexName, seedKeys...)
	if err != nil {
		return ClosureResult{}, errors.AddContext(err, errors.CtxOperation, "closure")
	}
	members, err := s.store.GetAllIncluding(indexName, seeds)
	if err != nil {
		return ClosureResult{}, errors.AddContext(err, errors.CtxOperation, "closure")
	}

	return ClosureResult{
		Index:       indexName,
		SeedCount:   len(seedKeys),
		MemberCount: len(members),
		Members:     members,
	}, nil
}

// KeysMatching filters the index's recorded keys through a glob pattern.
// Unknown indexes yield an empty result, matching the enumeration contract.
func (s *Service) KeysMatching(ctx context.Context, indexName, pattern string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	defer s.observe("keys_matching", time.Now())

	matcher, err := glob.Compile(pattern)
	if err != nil {
		wrapped := errors.Wrap(err, errors.CodeValidationError, "invalid key pattern")
		return nil, errors.AddContext(wrapped, errors.CtxOperation, "keys_matching")
	}

	matched := make([]string, 0)
	for _, key := range s.store.Keys(indexName) {
		if matcher.Match(key) {
			matched = append(matched, key)
		}
	}
	return s.capped(matched), nil
}

// Summary reports per-index sizes, sorted by index name.
func (s *Service) Summary(ctx context.Context) ([]IndexSummary, error) {
	ctx, span := observability.Tracer.Start(ctx, "query.Summary")
	defer span.End()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	stats := s.store.Stats()
	rows := make([]IndexSummary, 0, len(stats))
	for _, st := range stats {
		rows = append(rows, IndexSummary{
			Name:          st.Name,
			KeyCount:      st.KeyCount,
			EntryCount:    st.EntryCount,
			ExternalCount: st.ExternalCount,
		})
	}
	return rows, nil
}

func (s *Service) capped(names []string) []string {
	if s.maxResults > 0 && len(names) > s.maxResults {
		return names[:s.maxResults]
	}
	return names
}

func (s *Service) observe(operation string, start time.Time) {
	observability.QueryDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}
