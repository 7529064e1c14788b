package rank

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Category is the closed set of job categories the pipeline reasons about.
type Category string

const (
	CategorySoftwareEngineer Category = "software_engineer"
	CategoryDataAnalyst      Category = "data_analyst"
	CategorySales            Category = "sales"
	CategoryTeacher          Category = "teacher"
	CategoryDelivery         Category = "delivery"
	CategoryCustomerService  Category = "customer_service"
	CategoryHealthcare       Category = "healthcare"
	CategoryFinance          Category = "finance"
	CategoryOther            Category = "other"
)

// ExperienceLevel is the coarse experience band extracted from a query.
type ExperienceLevel string

const (
	ExperienceEntry  ExperienceLevel = "entry"
	ExperienceJunior ExperienceLevel = "junior"
	ExperienceMid    ExperienceLevel = "mid"
	ExperienceSenior ExperienceLevel = "senior"
	ExperienceExpert ExperienceLevel = "expert"
)

// ExperienceMonths maps a band to its floor in whole months.
var ExperienceMonths = map[ExperienceLevel]int{
	ExperienceEntry:  0,
	ExperienceJunior: 12,
	ExperienceMid:    24,
	ExperienceSenior: 60,
	ExperienceExpert: 120,
}

// MonthsFor returns the band floor, defaulting to entry for unknown bands.
func MonthsFor(level ExperienceLevel) int {
	if m, ok := ExperienceMonths[level]; ok {
		return m
	}
	return 0
}

// CategoryRule drives both the fallback classifier and the scorers for one
// category. Triggers classify queries, Exclusions filter candidate titles at
// selection time, PenaltyTerms disqualify titles after oracle scoring, and
// Positive/Negative terms feed the rule-based fallback scorer.
type CategoryRule struct {
	Category     Category `yaml:"category"`
	Triggers     []string `yaml:"triggers"`
	Exclusions   []string `yaml:"exclusions"`
	PenaltyTerms []string `yaml:"penalty_terms"`
	Penalty      int      `yaml:"penalty"`
	Positive     []string `yaml:"positive"`
	Negative     []string `yaml:"negative"`
}

// Tunables are the scoring knobs that have no first-principles derivation and
// exist for compatibility with observed behavior. The quality floor in
// particular ("drop <FloorScore when at least MinStrongMatches scored
// >=StrongScore") is a noise-reduction heuristic, kept tunable on purpose.
type Tunables struct {
	SelectLimit     int `yaml:"select_limit"`
	OracleBatch     int `yaml:"oracle_batch"`
	UnscoredDefault int `yaml:"unscored_default"`
	BaseScore       int `yaml:"base_score"`
	PositiveBonus   int `yaml:"positive_bonus"`
	NegativeScore   int `yaml:"negative_score"`
	MinStrong       int `yaml:"min_strong"`
	StrongScore     int `yaml:"strong_score"`
	FloorScore      int `yaml:"floor_score"`
	MaxAlternates   int `yaml:"max_alternates"`
	ExperienceFlex  int `yaml:"experience_flex_months"`
}

// Rules bundles everything configurable about the ranking behavior.
// Order of Categories matters: the fallback classifier resolves conflicting
// trigger signals first-match-wins in this order.
type Rules struct {
	Categories []CategoryRule `yaml:"categories"`
	Tunables   Tunables       `yaml:"tunables"`
}

// DefaultRules returns the built-in tables. They mirror the portal's
// production behavior and are the baseline a rules file overrides.
func DefaultRules() Rules {
	return Rules{
		Categories: []CategoryRule{
			{
				Category:     CategorySoftwareEngineer,
				Triggers:     []string{"software", "developer", "engineer", "programmer", "coding", "programming"},
				Exclusions:   []string{"telecaller", "telemarketing", "call center", "sales", "delivery", "driver", "cook", "cleaner", "guard", "security"},
				PenaltyTerms: []string{"telecaller", "call center", "sales", "delivery", "driver", "cook", "cleaner"},
				Penalty:      50,
				Positive:     []string{"software", "developer", "engineer", "programmer"},
				Negative:     []string{"telecaller", "sales", "delivery"},
			},
			{
				Category:     CategoryDataAnalyst,
				Triggers:     []string{"analyst", "data"},
				Exclusions:   []string{"telecaller", "telemarketing", "delivery", "driver", "cook", "cleaner", "guard"},
				PenaltyTerms: []string{"telecaller", "delivery", "driver", "cook", "cleaner", "guard"},
				Penalty:      50,
				Positive:     []string{"analyst", "data"},
				Negative:     []string{"telecaller", "delivery"},
			},
			{
				Category:     CategorySales,
				Triggers:     []string{"sales", "business development"},
				Exclusions:   []string{"cook", "cleaner", "guard"},
				PenaltyTerms: []string{"developer", "engineer", "programmer", "analyst"},
				Penalty:      30,
				Positive:     []string{"sales", "business development", "account manager"},
				Negative:     []string{"developer", "engineer"},
			},
			{
				Category:     CategoryTeacher,
				Triggers:     []string{"teacher", "education", "tutor", "instructor"},
				Exclusions:   []string{"telecaller", "telemarketing", "delivery", "driver", "software", "developer"},
				PenaltyTerms: []string{"telecaller", "delivery", "driver", "software", "developer"},
				Penalty:      50,
				Positive:     []string{"teacher", "tutor", "instructor", "trainer"},
				Negative:     []string{"telecaller", "delivery"},
			},
			{
				Category:     CategoryDelivery,
				Triggers:     []string{"delivery", "driver", "courier"},
				Exclusions:   nil,
				PenaltyTerms: []string{"developer", "engineer", "analyst", "teacher"},
				Penalty:      50,
				Positive:     []string{"delivery", "driver", "courier", "logistics"},
				Negative:     []string{"developer", "analyst"},
			},
			{
				Category:     CategoryCustomerService,
				Triggers:     []string{"customer service", "call center", "telecaller", "support"},
				Exclusions:   nil,
				PenaltyTerms: []string{"developer", "engineer", "surgeon"},
				Penalty:      30,
				Positive:     []string{"customer service", "call center", "telecaller", "support"},
				Negative:     []string{"developer", "engineer"},
			},
			{
				Category:     CategoryHealthcare,
				Triggers:     []string{"nurse", "doctor", "medical", "healthcare", "hospital"},
				Exclusions:   []string{"telecaller", "software", "developer", "delivery", "driver"},
				PenaltyTerms: []string{"telecaller", "software", "developer", "delivery", "driver"},
				Penalty:      50,
				Positive:     []string{"nurse", "doctor", "medical", "healthcare"},
				Negative:     []string{"telecaller", "developer"},
			},
			{
				Category:     CategoryFinance,
				Triggers:     []string{"finance", "accounting", "accountant", "bank"},
				Exclusions:   []string{"delivery", "driver", "cook", "cleaner"},
				PenaltyTerms: []string{"delivery", "driver", "cook", "cleaner"},
				Penalty:      50,
				Positive:     []string{"finance", "accountant", "accounting", "banking"},
				Negative:     []string{"delivery", "driver"},
			},
		},
		Tunables: Tunables{
			SelectLimit:     30,
			OracleBatch:     20,
			UnscoredDefault: 20,
			BaseScore:       40,
			PositiveBonus:   30,
			NegativeScore:   10,
			MinStrong:       5,
			StrongScore:     60,
			FloorScore:      40,
			MaxAlternates:   5,
			ExperienceFlex:  24,
		},
	}
}

// LoadRules reads a YAML rules file and merges it over the defaults.
// An empty path returns the defaults unchanged.
func LoadRules(path string) (Rules, error) {
	rules := DefaultRules()
	path = strings.TrimSpace(path)
	if path == "" {
		return rules, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return rules, err
	}

	var override Rules
	if err := yaml.Unmarshal(b, &override); err != nil {
		return rules, err
	}

	if len(override.Categories) > 0 {
		rules.Categories = override.Categories
	}
	merged := rules.Tunables
	if override.Tunables.SelectLimit > 0 {
		merged.SelectLimit = override.Tunables.SelectLimit
	}
	if override.Tunables.OracleBatch > 0 {
		merged.OracleBatch = override.Tunables.OracleBatch
	}
	if override.Tunables.UnscoredDefault > 0 {
		merged.UnscoredDefault = override.Tunables.UnscoredDefault
	}
	if override.Tunables.BaseScore > 0 {
		merged.BaseScore = override.Tunables.BaseScore
	}
	if override.Tunables.PositiveBonus > 0 {
		merged.PositiveBonus = override.Tunables.PositiveBonus
	}
	if override.Tunables.NegativeScore > 0 {
		merged.NegativeScore = override.Tunables.NegativeScore
	}
	if override.Tunables.MinStrong > 0 {
		merged.MinStrong = override.Tunables.MinStrong
	}
	if override.Tunables.StrongScore > 0 {
		merged.StrongScore = override.Tunables.StrongScore
	}
	if override.Tunables.FloorScore > 0 {
		merged.FloorScore = override.Tunables.FloorScore
	}
	if override.Tunables.MaxAlternates > 0 {
		merged.MaxAlternates = override.Tunables.MaxAlternates
	}
	if override.Tunables.ExperienceFlex > 0 {
		merged.ExperienceFlex = override.Tunables.ExperienceFlex
	}
	rules.Tunables = merged

	return rules, nil
}

// RuleFor returns the table entry for a category, or false for categories
// without special handling (CategoryOther in the default tables).
func (r Rules) RuleFor(cat Category) (CategoryRule, bool) {
	for _, cr := range r.Categories {
		if cr.Category == cat {
			return cr, true
		}
	}
	return CategoryRule{}, false
}
