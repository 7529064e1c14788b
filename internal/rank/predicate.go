package rank

import "strings"

// MatchField names a queryable job attribute. The store compiles these to
// its own column set.
type MatchField string

const (
	FieldTitle       MatchField = "title"
	FieldSkills      MatchField = "skills"
	FieldIndustry    MatchField = "industry"
	FieldSector      MatchField = "sector"
	FieldLocation    MatchField = "location"
	FieldDescription MatchField = "description"
)

// MatchClause admits jobs where the term appears (substring, case-insensitive)
// in any of the listed fields.
type MatchClause struct {
	Fields []MatchField
	Term   string
}

// Predicate is the structured query the selector hands to the job store.
// Matches are OR-combined with each other; ExcludeTitle entries are
// AND-combined NOT-LIKE constraints on the title. Terms are data, never SQL:
// stores must bind every term as a parameter.
type Predicate struct {
	Matches      []MatchClause
	ExcludeTitle []string

	// MaxExperienceMonths admits jobs whose normalized requirement is at most
	// this many months, or whose requirement is unknown. Nil disables the
	// filter.
	MaxExperienceMonths *int

	// OrderTerm drives the relevance tier: title matches rank above
	// skill-only matches, then recency. Empty means recency only.
	OrderTerm string

	Limit int
}

// Broad reports whether the predicate came from the significant-word fallback
// rather than from structured intent.
func (p Predicate) Broad() bool {
	for _, m := range p.Matches {
		for _, f := range m.Fields {
			if f == FieldDescription {
				return true
			}
		}
	}
	return false
}

// BuildPredicate translates an intent into the candidate-selection predicate.
// Positive clauses come from roles, skills, industries and locations; title
// exclusions come from every category the intent implicates. When no positive
// clause is constructible, the top significant words of the raw query form a
// broad title/description disjunction instead.
func BuildPredicate(intent Intent, rawQuery string, rules Rules) Predicate {
	p := Predicate{Limit: rules.Tunables.SelectLimit}

	exclude := newTermSet()

	if cr, ok := rules.RuleFor(intent.PrimaryCategory); ok {
		exclude.addAll(cr.Exclusions)
	}

	for _, role := range intent.JobRoles {
		role = strings.ToLower(strings.TrimSpace(role))
		if role == "" {
			continue
		}
		p.Matches = append(p.Matches, MatchClause{Fields: []MatchField{FieldTitle}, Term: role})
		addImplicatedExclusions(role, rules, exclude)
	}

	for _, skill := range intent.Skills {
		skill = strings.ToLower(strings.TrimSpace(skill))
		if len(skill) <= 2 {
			continue
		}
		p.Matches = append(p.Matches, MatchClause{Fields: []MatchField{FieldTitle, FieldSkills}, Term: skill})
		addImplicatedExclusions(skill, rules, exclude)
	}

	for _, industry := range intent.Industries {
		industry = strings.ToLower(strings.TrimSpace(industry))
		if industry == "" {
			continue
		}
		p.Matches = append(p.Matches, MatchClause{Fields: []MatchField{FieldIndustry, FieldSector}, Term: industry})
	}

	for _, loc := range intent.LocationPreferences {
		loc = strings.ToLower(strings.TrimSpace(loc))
		if loc == "" {
			continue
		}
		p.Matches = append(p.Matches, MatchClause{Fields: []MatchField{FieldLocation}, Term: loc})
	}

	if len(p.Matches) == 0 {
		for _, w := range SignificantWords(rawQuery, 3) {
			p.Matches = append(p.Matches, MatchClause{Fields: []MatchField{FieldTitle, FieldDescription}, Term: w})
		}
	}

	p.ExcludeTitle = exclude.slice()

	maxMonths := MonthsFor(intent.ExperienceLevel) + rules.Tunables.ExperienceFlex
	p.MaxExperienceMonths = &maxMonths

	if len(intent.JobRoles) > 0 {
		p.OrderTerm = strings.ToLower(strings.TrimSpace(intent.JobRoles[0]))
	} else if words := SignificantWords(rawQuery, 1); len(words) > 0 {
		p.OrderTerm = words[0]
	}

	return p
}

// addImplicatedExclusions merges the denylist of every category whose trigger
// terms appear in the given role or skill text. This is what keeps a
// software-engineer search from surfacing telecaller postings.
func addImplicatedExclusions(text string, rules Rules, set *termSet) {
	for _, cr := range rules.Categories {
		for _, trigger := range cr.Triggers {
			if strings.Contains(text, trigger) {
				set.addAll(cr.Exclusions)
				break
			}
		}
	}
}

type termSet struct {
	seen  map[string]struct{}
	terms []string
}

func newTermSet() *termSet {
	return &termSet{seen: make(map[string]struct{})}
}

func (s *termSet) addAll(terms []string) {
	for _, t := range terms {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if _, ok := s.seen[t]; ok {
			continue
		}
		s.seen[t] = struct{}{}
		s.terms = append(s.terms, t)
	}
}

func (s *termSet) slice() []string {
	return s.terms
}
