package repository

import (
	"context"
	"strings"
	"testing"
	"time"

	"jobrank/internal/database"
	"jobrank/internal/database/sqlite"
	"jobrank/internal/domain/job"
	"jobrank/internal/rank"
)

func titlePredicate(term string, limit int) rank.Predicate {
	return rank.Predicate{
		Matches: []rank.MatchClause{{Fields: []rank.MatchField{rank.FieldTitle}, Term: term}},
		Limit:   limit,
	}
}

func TestCompilePredicate_BindsEveryTerm(t *testing.T) {
	max := 24
	p := rank.Predicate{
		Matches: []rank.MatchClause{
			{Fields: []rank.MatchField{rank.FieldTitle}, Term: "software'; DROP TABLE job_postings; --"},
			{Fields: []rank.MatchField{rank.FieldTitle, rank.FieldSkills}, Term: "python"},
		},
		ExcludeTitle:        []string{"telecaller"},
		MaxExperienceMonths: &max,
		OrderTerm:           "software",
		Limit:               30,
	}

	query, args := compilePredicate(p, database.DialectSQLite)

	if strings.Contains(query, "DROP TABLE") {
		t.Fatalf("term leaked into query text: %s", query)
	}
	for _, a := range args {
		if s, ok := a.(string); ok && strings.Contains(query, s) {
			t.Fatalf("bound value %q appears in query text", s)
		}
	}
	if !strings.Contains(query, "is_active = ?") {
		t.Fatalf("expected active filter, got %s", query)
	}
	if !strings.Contains(query, "NOT LIKE") {
		t.Fatalf("expected title exclusion, got %s", query)
	}
	if !strings.Contains(query, "experience_months IS NULL") {
		t.Fatalf("expected null-experience admission, got %s", query)
	}
	if !strings.Contains(query, "ORDER BY CASE WHEN LOWER(title) LIKE") {
		t.Fatalf("expected relevance-tier ordering, got %s", query)
	}
}

func TestCompilePredicate_PostgresReusesPlaceholders(t *testing.T) {
	p := titlePredicate("software", 30)
	p.OrderTerm = "software"

	query, args := compilePredicate(p, database.DialectPostgres)

	if strings.Contains(query, "?") {
		t.Fatalf("postgres query must use numbered placeholders: %s", query)
	}
	// The match term and order term are the same LIKE pattern; it must bind once.
	seen := map[any]int{}
	for _, a := range args {
		seen[a]++
		if seen[a] > 1 {
			t.Fatalf("value %v bound twice", a)
		}
	}
}

func newTestStore(t *testing.T) *SQLJobStore {
	t.Helper()
	ctx := context.Background()

	db, err := sqlite.OpenMemory(ctx)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	store := NewSQLJobStore(db)
	if err := store.EnsureSchema(ctx); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}
	return store
}

func seedJob(t *testing.T, store *SQLJobStore, rec job.Record) {
	t.Helper()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	if err := store.InsertJob(context.Background(), rec); err != nil {
		t.Fatalf("insert %q: %v", rec.Title, err)
	}
}

func TestSQLJobStore_SelectByTitle(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	seedJob(t, store, job.Record{Title: "Software Engineer", Company: "TechCo", IsActive: true})
	seedJob(t, store, job.Record{Title: "Telecaller Executive", Company: "CallCo", IsActive: true})
	seedJob(t, store, job.Record{Title: "Software Intern", Company: "GoneCo", IsActive: false})

	got, err := store.Select(ctx, titlePredicate("software", 30))
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 active software job, got %d", len(got))
	}
	if got[0].Title != "Software Engineer" {
		t.Fatalf("unexpected job %q", got[0].Title)
	}
}

func TestSQLJobStore_TitleExclusions(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	seedJob(t, store, job.Record{Title: "Software Engineer", Company: "TechCo", IsActive: true})
	seedJob(t, store, job.Record{Title: "Software Sales Executive", Company: "SellCo", IsActive: true})

	p := titlePredicate("software", 30)
	p.ExcludeTitle = []string{"sales"}

	got, err := store.Select(ctx, p)
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if len(got) != 1 || got[0].Title != "Software Engineer" {
		t.Fatalf("exclusion not applied, got %+v", got)
	}
}

func TestSQLJobStore_ExperienceFilterAdmitsUnknown(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	seedJob(t, store, job.Record{Title: "Software Engineer", Company: "A", ExperienceRequired: "5 years", IsActive: true})
	seedJob(t, store, job.Record{Title: "Software Developer", Company: "B", ExperienceRequired: "1 year", IsActive: true})
	seedJob(t, store, job.Record{Title: "Software Intern", Company: "C", ExperienceRequired: "", IsActive: true})

	maxMonths := 24
	p := titlePredicate("software", 30)
	p.MaxExperienceMonths = &maxMonths

	got, err := store.Select(ctx, p)
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 12-month and unknown-experience jobs, got %d", len(got))
	}
	for _, rec := range got {
		if rec.Title == "Software Engineer" {
			t.Fatalf("60-month requirement must be filtered out")
		}
	}
}

func TestSQLJobStore_OrderTermTiersAboveRecency(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	now := time.Now().UTC()
	seedJob(t, store, job.Record{
		Title: "Operations Coordinator", Company: "A", Description: "hiring software team support",
		IsActive: true, CreatedAt: now,
	})
	seedJob(t, store, job.Record{
		Title: "Software Engineer", Company: "B", Description: "backend role",
		IsActive: true, CreatedAt: now.Add(-24 * time.Hour),
	})

	p := rank.Predicate{
		Matches: []rank.MatchClause{
			{Fields: []rank.MatchField{rank.FieldTitle, rank.FieldDescription}, Term: "software"},
		},
		OrderTerm: "software",
		Limit:     30,
	}

	got, err := store.Select(ctx, p)
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected both jobs, got %d", len(got))
	}
	if got[0].Title != "Software Engineer" {
		t.Fatalf("title match must outrank newer description match, got %q first", got[0].Title)
	}
}

func TestSQLJobStore_SkillsRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	seedJob(t, store, job.Record{
		Title: "Software Engineer", Company: "TechCo", IsActive: true,
		SkillsRequired: []string{"Go", "PostgreSQL"},
		Tags:           []string{"backend"},
	})

	got, err := store.Select(ctx, titlePredicate("software", 30))
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 job, got %d", len(got))
	}
	if len(got[0].SkillsRequired) != 2 || got[0].SkillsRequired[0] != "Go" {
		t.Fatalf("skills did not round-trip: %v", got[0].SkillsRequired)
	}
	if got[0].ExperienceMonths != nil {
		t.Fatalf("expected nil experience months, got %d", *got[0].ExperienceMonths)
	}
}

func TestSQLJobStore_LimitApplied(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		seedJob(t, store, job.Record{Title: "Software Engineer", Company: string(rune('A' + i)), IsActive: true})
	}

	got, err := store.Select(ctx, titlePredicate("software", 3))
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected limit 3, got %d", len(got))
	}
}
