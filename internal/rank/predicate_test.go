package rank

import "testing"

func containsTerm(terms []string, want string) bool {
	for _, t := range terms {
		if t == want {
			return true
		}
	}
	return false
}

func TestBuildPredicate_RolesAndSkills(t *testing.T) {
	intent := Intent{
		PrimaryCategory: CategorySoftwareEngineer,
		JobRoles:        []string{"Software Developer"},
		Skills:          []string{"Python", "go"},
		ExperienceLevel: ExperienceEntry,
	}
	p := BuildPredicate(intent, "software developer", DefaultRules())

	if p.Limit != 30 {
		t.Fatalf("expected limit 30, got %d", p.Limit)
	}
	if len(p.Matches) != 2 {
		t.Fatalf("expected 2 matches (role + python, 'go' too short), got %d", len(p.Matches))
	}
	if p.Matches[0].Term != "software developer" || p.Matches[0].Fields[0] != FieldTitle {
		t.Fatalf("unexpected first clause: %+v", p.Matches[0])
	}
	if p.Matches[1].Term != "python" || len(p.Matches[1].Fields) != 2 {
		t.Fatalf("unexpected skill clause: %+v", p.Matches[1])
	}
	if !containsTerm(p.ExcludeTitle, "telecaller") {
		t.Fatalf("expected telecaller exclusion, got %v", p.ExcludeTitle)
	}
	if p.OrderTerm != "software developer" {
		t.Fatalf("unexpected order term %q", p.OrderTerm)
	}
	if p.Broad() {
		t.Fatalf("structured predicate must not be broad")
	}
}

func TestBuildPredicate_ExperienceCeiling(t *testing.T) {
	rules := DefaultRules()

	entry := BuildPredicate(Intent{PrimaryCategory: CategoryOther, JobRoles: []string{"clerk"}, ExperienceLevel: ExperienceEntry}, "clerk", rules)
	if entry.MaxExperienceMonths == nil || *entry.MaxExperienceMonths != 24 {
		t.Fatalf("entry ceiling: got %v", entry.MaxExperienceMonths)
	}

	senior := BuildPredicate(Intent{PrimaryCategory: CategoryOther, JobRoles: []string{"clerk"}, ExperienceLevel: ExperienceSenior}, "clerk", rules)
	if senior.MaxExperienceMonths == nil || *senior.MaxExperienceMonths != 84 {
		t.Fatalf("senior ceiling: got %v", senior.MaxExperienceMonths)
	}
}

func TestBuildPredicate_ImplicatedExclusions(t *testing.T) {
	// The category is unknown but the role text triggers the software rule,
	// so its denylist still applies.
	intent := Intent{
		PrimaryCategory: CategoryOther,
		JobRoles:        []string{"java developer"},
	}
	p := BuildPredicate(intent, "java developer", DefaultRules())

	if !containsTerm(p.ExcludeTitle, "telecaller") {
		t.Fatalf("expected implicated telecaller exclusion, got %v", p.ExcludeTitle)
	}
	if !containsTerm(p.ExcludeTitle, "sales") {
		t.Fatalf("expected implicated sales exclusion, got %v", p.ExcludeTitle)
	}
}

func TestBuildPredicate_BroadFallback(t *testing.T) {
	intent := Intent{PrimaryCategory: CategoryOther}
	p := BuildPredicate(intent, "marketing manager in punjab", DefaultRules())

	if len(p.Matches) == 0 {
		t.Fatalf("expected broad fallback clauses")
	}
	if !p.Broad() {
		t.Fatalf("fallback predicate must report broad")
	}
	for _, m := range p.Matches {
		if len(m.Fields) != 2 || m.Fields[0] != FieldTitle || m.Fields[1] != FieldDescription {
			t.Fatalf("unexpected broad clause fields: %+v", m)
		}
	}
	if p.OrderTerm != "marketing" {
		t.Fatalf("unexpected order term %q", p.OrderTerm)
	}
}

func TestBuildPredicate_EmptyQuery(t *testing.T) {
	p := BuildPredicate(Intent{PrimaryCategory: CategoryOther}, "", DefaultRules())
	if len(p.Matches) != 0 {
		t.Fatalf("expected no matches for empty query, got %d", len(p.Matches))
	}
}

func TestBuildPredicate_DeduplicatesExclusions(t *testing.T) {
	intent := Intent{
		PrimaryCategory: CategorySoftwareEngineer,
		JobRoles:        []string{"software developer", "backend engineer"},
	}
	p := BuildPredicate(intent, "software developer", DefaultRules())

	seen := map[string]int{}
	for _, term := range p.ExcludeTitle {
		seen[term]++
		if seen[term] > 1 {
			t.Fatalf("duplicate exclusion %q", term)
		}
	}
}
