package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"jobrank/internal/rank"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrInternal          = errors.New("internal error")
	ErrCorpusUnavailable = errors.New("job corpus unavailable")
)

// SearchCache is the result cache surface; the redis implementation degrades
// to no-ops when unavailable.
type SearchCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	SetIfNotExists(ctx context.Context, key string, value string, ttl time.Duration) (bool, error)
}

// RecommendationOutput bundles the ranked result with the intent analysis
// that produced it; the intent is carried for observability in responses.
type RecommendationOutput struct {
	Result rank.Result
	Intent rank.Intent
}

type RecommendationUsecase interface {
	Recommend(ctx context.Context, query string) (RecommendationOutput, error)
}

// Recommendation runs the three-stage pipeline: intent extraction, candidate
// selection, relevance ranking. Oracle failures never surface; the one hard
// failure is a dead corpus, mapped to ErrCorpusUnavailable.
type Recommendation struct {
	extractor *rank.Extractor
	selector  *rank.Selector
	ranker    *rank.Ranker
	cache     SearchCache
	logger    *log.Logger
}

func NewRecommendationUsecase(extractor *rank.Extractor, selector *rank.Selector, ranker *rank.Ranker, cache SearchCache, logger *log.Logger) *Recommendation {
	return &Recommendation{
		extractor: extractor,
		selector:  selector,
		ranker:    ranker,
		cache:     cache,
		logger:    logger,
	}
}

func (u *Recommendation) Recommend(ctx context.Context, query string) (RecommendationOutput, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return RecommendationOutput{
			Result: rank.Result{Alternates: []rank.ScoredJob{}, Message: rank.NoJobsMessage},
		}, nil
	}

	cacheKey := RecommendationCacheKey(query)
	lockKey := RecommendationLockKey(cacheKey)

	if u.cache != nil {
		var cached RecommendationOutput
		if hit, err := u.cache.GetJSON(ctx, cacheKey, &cached); err == nil && hit {
			if u.logger != nil {
				u.logger.Printf("[Rank] cache HIT: %s", cacheKey)
			}
			return cached, nil
		}

		// Single-flight: the loser of the SetNX race waits briefly and
		// re-checks before recomputing, so a hot query does not fan out
		// into parallel oracle calls.
		if ok, err := u.cache.SetIfNotExists(ctx, lockKey, "1", 30*time.Second); err == nil && !ok {
			time.Sleep(300 * time.Millisecond)
			if hit, err := u.cache.GetJSON(ctx, cacheKey, &cached); err == nil && hit {
				return cached, nil
			}
		}
	}

	intent := u.extractor.Extract(ctx, query)

	candidates, err := u.selector.Select(ctx, intent, query)
	if err != nil {
		if u.logger != nil {
			u.logger.Printf("[Rank] candidate selection failed: %v", err)
		}
		return RecommendationOutput{}, ErrCorpusUnavailable
	}

	result := u.ranker.Rank(ctx, candidates, query, intent)
	out := RecommendationOutput{Result: result, Intent: intent}

	if u.cache != nil {
		if err := u.cache.SetJSON(ctx, cacheKey, out, 0); err != nil && u.logger != nil {
			u.logger.Printf("[Rank] cache write failed: %v", err)
		}
	}

	return out, nil
}
