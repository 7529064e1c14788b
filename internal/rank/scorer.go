package rank

import (
	"strings"

	"jobrank/internal/domain/job"
)

// ruleScore is the deterministic scorer used when the scoring oracle is
// unavailable: a flat base, a bonus when a category-positive term appears in
// the title, and a hard drop when a category-negative term does. No
// randomness, so identical inputs always produce identical output.
func ruleScore(rec job.Record, cat Category, rules Rules) int {
	title := strings.ToLower(rec.Title)
	score := rules.Tunables.BaseScore

	cr, ok := rules.RuleFor(cat)
	if !ok {
		return score
	}

	for _, term := range cr.Positive {
		if strings.Contains(title, term) {
			score = rules.Tunables.BaseScore + rules.Tunables.PositiveBonus
			break
		}
	}
	for _, term := range cr.Negative {
		if strings.Contains(title, term) {
			return rules.Tunables.NegativeScore
		}
	}
	return score
}

// categoryPenalty re-validates category alignment after oracle scoring. The
// oracle is not trusted to enforce hard category exclusions; this pass is the
// actual correctness guarantee, the oracle only orders within a category.
func categoryPenalty(rec job.Record, cat Category, rules Rules) int {
	cr, ok := rules.RuleFor(cat)
	if !ok {
		return 0
	}
	title := strings.ToLower(rec.Title)
	for _, term := range cr.PenaltyTerms {
		if strings.Contains(title, term) {
			return cr.Penalty
		}
	}
	return 0
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
