package rank

import (
	"context"
	"log"

	"jobrank/internal/domain/job"
)

// JobStore is the read-only query surface over the job corpus.
// Implementations compile the predicate to their own query language with
// every term bound as a parameter.
type JobStore interface {
	Select(ctx context.Context, p Predicate) ([]job.Record, error)
}

// Selector turns an intent into a capped candidate set. An empty result is
// not an error; the ranker reports it as "no relevant jobs found". Store
// failures propagate: a dead corpus is the one condition without a fallback.
type Selector struct {
	store  JobStore
	rules  Rules
	logger *log.Logger
}

func NewSelector(store JobStore, rules Rules, logger *log.Logger) *Selector {
	return &Selector{store: store, rules: rules, logger: logger}
}

func (s *Selector) Select(ctx context.Context, intent Intent, rawQuery string) ([]job.Record, error) {
	p := BuildPredicate(intent, rawQuery, s.rules)
	if len(p.Matches) == 0 {
		// Nothing usable even for the broad fallback (e.g. empty query).
		return nil, nil
	}

	candidates, err := s.store.Select(ctx, p)
	if err != nil {
		return nil, err
	}

	if s.logger != nil && p.Broad() {
		s.logger.Printf("[Rank] broad fallback selection used, candidates=%d", len(candidates))
	}

	if len(candidates) > p.Limit && p.Limit > 0 {
		candidates = candidates[:p.Limit]
	}
	return candidates, nil
}
