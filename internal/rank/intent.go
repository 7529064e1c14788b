package rank

import (
	"context"
	"log"
	"strings"
)

// Intent is the structured reading of a free-text job query. It is derived
// fresh per request and never persisted.
type Intent struct {
	PrimaryCategory     Category        `json:"primary_category"`
	JobRoles            []string        `json:"job_roles"`
	Skills              []string        `json:"skills"`
	Industries          []string        `json:"industries"`
	ExperienceLevel     ExperienceLevel `json:"experience_level"`
	LocationPreferences []string        `json:"location_preferences"`
	JobTypes            []string        `json:"job_types"`
	SalaryExpectations  string          `json:"salary_expectations"`
	KeyRequirements     []string        `json:"key_requirements"`
	CareerGoals         string          `json:"career_goals"`
	SearchIntent        string          `json:"search_intent"`
}

// IntentOracle is the external natural-language analyzer. Implementations
// return an error for transport failures and malformed output alike; the
// extractor treats both identically.
type IntentOracle interface {
	AnalyzeIntent(ctx context.Context, query string) (Intent, error)
}

// Extractor turns a raw query into an Intent. It never fails: when the oracle
// is unavailable or returns something unusable, a deterministic rule-based
// classifier takes over, so downstream stages always have a category to
// filter on.
type Extractor struct {
	oracle IntentOracle
	rules  Rules
	logger *log.Logger
}

func NewExtractor(oracle IntentOracle, rules Rules, logger *log.Logger) *Extractor {
	return &Extractor{oracle: oracle, rules: rules, logger: logger}
}

func (e *Extractor) Extract(ctx context.Context, query string) Intent {
	query = strings.TrimSpace(query)

	if e.oracle != nil {
		intent, err := e.oracle.AnalyzeIntent(ctx, query)
		if err == nil {
			return e.validate(intent, query)
		}
		if e.logger != nil {
			e.logger.Printf("[Rank] intent oracle failed, using rule classifier: %v", err)
		}
	}

	return e.fallback(query)
}

// validate repairs an oracle intent so the pipeline invariants hold: the
// primary category is always a member of the closed set and never empty.
func (e *Extractor) validate(intent Intent, query string) Intent {
	if !knownCategory(intent.PrimaryCategory) {
		intent.PrimaryCategory = ""
	}
	if intent.PrimaryCategory == "" {
		for _, role := range intent.JobRoles {
			if cat, ok := e.classify(role); ok {
				intent.PrimaryCategory = cat
				break
			}
		}
	}
	if intent.PrimaryCategory == "" {
		if cat, ok := e.classify(query); ok {
			intent.PrimaryCategory = cat
		} else {
			intent.PrimaryCategory = CategoryOther
		}
	}
	if intent.ExperienceLevel == "" {
		intent.ExperienceLevel = ExperienceEntry
	}
	return intent
}

// fallback is the deterministic classifier used when the oracle is down.
func (e *Extractor) fallback(query string) Intent {
	cat, ok := e.classify(query)
	if !ok {
		cat = CategoryOther
	}

	intent := Intent{
		PrimaryCategory:    cat,
		ExperienceLevel:    classifyExperience(query),
		SalaryExpectations: "not_mentioned",
		SearchIntent:       "job_search",
	}
	if q := strings.TrimSpace(query); q != "" {
		intent.JobRoles = []string{strings.ToLower(q)}
		intent.Skills = SignificantWords(q, 10)
	}
	return intent
}

// classify scans lowercased text for category trigger terms. Conflicting
// signals resolve first-match-wins in the fixed rule order (software before
// data before sales before teacher before delivery in the default tables).
func (e *Extractor) classify(text string) (Category, bool) {
	text = strings.ToLower(text)
	if strings.TrimSpace(text) == "" {
		return "", false
	}
	for _, cr := range e.rules.Categories {
		for _, term := range cr.Triggers {
			if strings.Contains(text, term) {
				return cr.Category, true
			}
		}
	}
	return "", false
}

var experienceTriggers = []struct {
	level ExperienceLevel
	terms []string
}{
	{ExperienceExpert, []string{"expert", "principal", "10+ year", "ten years"}},
	{ExperienceSenior, []string{"senior", "experienced", "5+", "five years", "lead"}},
	{ExperienceMid, []string{"mid", "intermediate", "3 year", "4 year", "few years"}},
	{ExperienceJunior, []string{"junior", "1 year", "2 year"}},
	{ExperienceEntry, []string{"fresher", "entry", "graduate", "beginner", "new to"}},
}

func classifyExperience(query string) ExperienceLevel {
	q := strings.ToLower(query)
	for _, t := range experienceTriggers {
		for _, term := range t.terms {
			if strings.Contains(q, term) {
				return t.level
			}
		}
	}
	return ExperienceEntry
}

func knownCategory(cat Category) bool {
	switch cat {
	case CategorySoftwareEngineer, CategoryDataAnalyst, CategorySales,
		CategoryTeacher, CategoryDelivery, CategoryCustomerService,
		CategoryHealthcare, CategoryFinance, CategoryOther:
		return true
	}
	return false
}
