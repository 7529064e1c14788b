package rank

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadRules_EmptyPathReturnsDefaults(t *testing.T) {
	rules, err := LoadRules("")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if rules.Tunables.SelectLimit != 30 {
		t.Fatalf("expected select limit 30, got %d", rules.Tunables.SelectLimit)
	}
	if len(rules.Categories) != 8 {
		t.Fatalf("expected 8 category rules, got %d", len(rules.Categories))
	}
	if rules.Categories[0].Category != CategorySoftwareEngineer {
		t.Fatalf("software must be the first rule, got %s", rules.Categories[0].Category)
	}
}

func TestLoadRules_MergesOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.yaml")
	content := []byte(`
tunables:
  select_limit: 10
  max_alternates: 2
categories:
  - category: software_engineer
    triggers: ["software"]
    exclusions: ["telecaller"]
    penalty_terms: ["telecaller"]
    penalty: 50
    positive: ["software"]
    negative: ["telecaller"]
`)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("write rules: %v", err)
	}

	rules, err := LoadRules(path)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if rules.Tunables.SelectLimit != 10 {
		t.Fatalf("expected overridden limit 10, got %d", rules.Tunables.SelectLimit)
	}
	if rules.Tunables.MaxAlternates != 2 {
		t.Fatalf("expected overridden alternates 2, got %d", rules.Tunables.MaxAlternates)
	}
	// Untouched knobs keep their defaults.
	if rules.Tunables.OracleBatch != 20 {
		t.Fatalf("expected default batch 20, got %d", rules.Tunables.OracleBatch)
	}
	if len(rules.Categories) != 1 {
		t.Fatalf("expected replaced category table, got %d rules", len(rules.Categories))
	}
}

func TestLoadRules_MissingFile(t *testing.T) {
	if _, err := LoadRules(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestRuleFor(t *testing.T) {
	rules := DefaultRules()
	if _, ok := rules.RuleFor(CategorySoftwareEngineer); !ok {
		t.Fatalf("expected software rule")
	}
	if _, ok := rules.RuleFor(CategoryOther); ok {
		t.Fatalf("other must have no rule table")
	}
}

func TestMonthsFor(t *testing.T) {
	if m := MonthsFor(ExperienceSenior); m != 60 {
		t.Fatalf("expected 60, got %d", m)
	}
	if m := MonthsFor("unknown"); m != 0 {
		t.Fatalf("expected 0 for unknown band, got %d", m)
	}
}
