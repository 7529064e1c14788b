package rank

import (
	"context"
	"log"
	"sort"

	"jobrank/internal/domain/job"
)

// NoJobsMessage is the user-visible text for an empty result. Its presence is
// part of the response contract: callers show it verbatim.
const NoJobsMessage = "No relevant jobs found. Please try a different search."

// ScoredJob pairs a candidate with its final relevance score. Scores are
// non-negative integers in [0,100] after penalties and clamping.
type ScoredJob struct {
	Job    job.Record
	Score  int
	Reason string
}

// Result is the ranked outcome: the best match, up to MaxAlternates
// runners-up with no duplicate (title, company) pairs, and a message when
// nothing matched.
type Result struct {
	Best       *ScoredJob
	Alternates []ScoredJob
	Message    string
}

// OracleScore is one per-candidate judgment from the scoring oracle. Reason
// is carried through for observability only and never influences ordering.
type OracleScore struct {
	Score  int
	Reason string
}

// ScoringOracle scores candidates (keyed by input index) against the query.
// Errors cover transport failures and malformed responses alike.
type ScoringOracle interface {
	ScoreJobs(ctx context.Context, candidates []job.Record, query string, intent Intent) (map[int]OracleScore, error)
}

// Ranker orders candidates by relevance. The oracle supplies fine-grained
// ordering within a category; the deterministic penalty pass enforces hard
// category exclusions regardless of what the oracle said.
type Ranker struct {
	oracle ScoringOracle
	rules  Rules
	logger *log.Logger
}

func NewRanker(oracle ScoringOracle, rules Rules, logger *log.Logger) *Ranker {
	return &Ranker{oracle: oracle, rules: rules, logger: logger}
}

func (r *Ranker) Rank(ctx context.Context, candidates []job.Record, rawQuery string, intent Intent) Result {
	if len(candidates) == 0 {
		return Result{Alternates: []ScoredJob{}, Message: NoJobsMessage}
	}

	scored := r.oracleScore(ctx, candidates, rawQuery, intent)
	if scored == nil {
		scored = r.fallbackScore(candidates, intent)
	}

	scored = dedupe(scored)
	scored = applyQualityFloor(scored, r.rules.Tunables)

	if len(scored) == 0 {
		return Result{Alternates: []ScoredJob{}, Message: NoJobsMessage}
	}

	best := scored[0]
	maxAlt := r.rules.Tunables.MaxAlternates
	alternates := scored[1:]
	if len(alternates) > maxAlt {
		alternates = alternates[:maxAlt]
	}
	out := make([]ScoredJob, len(alternates))
	copy(out, alternates)

	return Result{Best: &best, Alternates: out}
}

// oracleScore runs the primary path. The top OracleBatch candidates are
// submitted; everything past the batch gets a fixed low default and is
// appended after the scored set in selector order. Returns nil when the
// oracle is missing or failed, signalling the caller to take the fallback.
func (r *Ranker) oracleScore(ctx context.Context, candidates []job.Record, rawQuery string, intent Intent) []ScoredJob {
	if r.oracle == nil {
		return nil
	}

	batch := r.rules.Tunables.OracleBatch
	if batch > len(candidates) {
		batch = len(candidates)
	}

	scores, err := r.oracle.ScoreJobs(ctx, candidates[:batch], rawQuery, intent)
	if err != nil {
		if r.logger != nil {
			r.logger.Printf("[Rank] scoring oracle failed, using rule scorer: %v", err)
		}
		return nil
	}

	scored := make([]ScoredJob, 0, len(candidates))
	for i, rec := range candidates[:batch] {
		os, ok := scores[i]
		if !ok {
			os = OracleScore{Score: 30}
		}
		score := clampScore(os.Score) - categoryPenalty(rec, intent.PrimaryCategory, r.rules)
		scored = append(scored, ScoredJob{Job: rec, Score: clampScore(score), Reason: os.Reason})
	}
	sortByScore(scored, MonthsFor(intent.ExperienceLevel))

	for _, rec := range candidates[batch:] {
		scored = append(scored, ScoredJob{Job: rec, Score: r.rules.Tunables.UnscoredDefault})
	}
	return scored
}

func (r *Ranker) fallbackScore(candidates []job.Record, intent Intent) []ScoredJob {
	scored := make([]ScoredJob, 0, len(candidates))
	for _, rec := range candidates {
		scored = append(scored, ScoredJob{Job: rec, Score: ruleScore(rec, intent.PrimaryCategory, r.rules)})
	}
	sortByScore(scored, MonthsFor(intent.ExperienceLevel))
	return scored
}

// sortByScore orders descending by score. Ties break first by experience
// proximity (a senior query prefers a 60-month posting over an entry-level
// one), then by recency (newest first). The sort is stable so fully tied
// candidates keep the selector's relevance-tier order.
func sortByScore(scored []ScoredJob, wantMonths int) {
	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		di := experienceDistance(scored[i].Job, wantMonths)
		dj := experienceDistance(scored[j].Job, wantMonths)
		if di != dj {
			return di < dj
		}
		return scored[i].Job.CreatedAt.After(scored[j].Job.CreatedAt)
	})
}

// experienceDistance is how far a posting's requirement sits from the band
// the query asked for. Unknown requirements count as entry-level.
func experienceDistance(rec job.Record, wantMonths int) int {
	months := 0
	if rec.ExperienceMonths != nil {
		months = *rec.ExperienceMonths
	}
	if months > wantMonths {
		return months - wantMonths
	}
	return wantMonths - months
}

// dedupe keeps the first (highest-scored) occurrence of each
// (title, company) pair.
func dedupe(scored []ScoredJob) []ScoredJob {
	seen := make(map[job.Key]struct{}, len(scored))
	out := scored[:0]
	for _, s := range scored {
		k := s.Job.DedupKey()
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, s)
	}
	return out
}

// applyQualityFloor drops weak entries only when the result set is strong
// enough to afford it: with at least MinStrong candidates at or above
// StrongScore, everything below FloorScore goes. A weak result set is left
// intact rather than emptied.
func applyQualityFloor(scored []ScoredJob, t Tunables) []ScoredJob {
	strong := 0
	for _, s := range scored {
		if s.Score >= t.StrongScore {
			strong++
		}
	}
	if strong < t.MinStrong {
		return scored
	}

	out := scored[:0]
	for _, s := range scored {
		if s.Score >= t.FloorScore {
			out = append(out, s)
		}
	}
	return out
}
