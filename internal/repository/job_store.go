package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"jobrank/internal/database"
	"jobrank/internal/domain/job"
	"jobrank/internal/rank"

	"github.com/google/uuid"
)

// SQLJobStore compiles rank.Predicate into parameterized SQL over the
// job_postings table. Every user-derived term is bound as a parameter; no
// term ever reaches the query text, on either dialect.
type SQLJobStore struct {
	db database.DB
}

func NewSQLJobStore(db database.DB) *SQLJobStore {
	return &SQLJobStore{db: db}
}

const selectColumns = `id, title, company, location, salary_range, description,
	industry, sector, job_type, employment_type, experience_required,
	experience_months, skills_required, tags, source, company_contact,
	apply_url, is_active, created_at`

var matchColumns = map[rank.MatchField]string{
	rank.FieldTitle:       "title",
	rank.FieldSkills:      "skills_required",
	rank.FieldIndustry:    "industry",
	rank.FieldSector:      "sector",
	rank.FieldLocation:    "location",
	rank.FieldDescription: "description",
}

// Select implements rank.JobStore.
func (s *SQLJobStore) Select(ctx context.Context, p rank.Predicate) ([]job.Record, error) {
	query, args := compilePredicate(p, s.db.Dialect())

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]job.Record, 0, p.Limit)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// compilePredicate builds the WHERE/ORDER/LIMIT clauses. Positive match
// clauses are OR-combined, title exclusions AND-combined, and the relevance
// tier orders exact title matches above skill-only matches before recency.
func compilePredicate(p rank.Predicate, dialect database.Dialect) (string, []any) {
	q := newQueryBuilder(dialect)

	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(selectColumns)
	sb.WriteString(" FROM job_postings WHERE is_active = ")
	sb.WriteString(q.bind(true))

	if len(p.Matches) > 0 {
		parts := make([]string, 0, len(p.Matches))
		for _, m := range p.Matches {
			fields := make([]string, 0, len(m.Fields))
			for _, f := range m.Fields {
				col, ok := matchColumns[f]
				if !ok {
					continue
				}
				fields = append(fields, "LOWER("+col+") LIKE "+q.bind(likeTerm(m.Term)))
			}
			if len(fields) > 0 {
				parts = append(parts, "("+strings.Join(fields, " OR ")+")")
			}
		}
		if len(parts) > 0 {
			sb.WriteString(" AND (")
			sb.WriteString(strings.Join(parts, " OR "))
			sb.WriteString(")")
		}
	}

	for _, term := range p.ExcludeTitle {
		sb.WriteString(" AND LOWER(title) NOT LIKE ")
		sb.WriteString(q.bind(likeTerm(term)))
	}

	if p.MaxExperienceMonths != nil {
		sb.WriteString(" AND (experience_months <= ")
		sb.WriteString(q.bind(*p.MaxExperienceMonths))
		sb.WriteString(" OR experience_months IS NULL)")
	}

	sb.WriteString(" ORDER BY ")
	if term := strings.TrimSpace(p.OrderTerm); term != "" {
		sb.WriteString("CASE WHEN LOWER(title) LIKE ")
		sb.WriteString(q.bind(likeTerm(term)))
		sb.WriteString(" THEN 3 WHEN LOWER(skills_required) LIKE ")
		sb.WriteString(q.bind(likeTerm(term)))
		sb.WriteString(" THEN 2 ELSE 1 END DESC, ")
	}
	sb.WriteString("created_at DESC")

	limit := p.Limit
	if limit <= 0 {
		limit = 30
	}
	sb.WriteString(" LIMIT ")
	sb.WriteString(q.bind(limit))

	return sb.String(), q.args
}

func likeTerm(term string) string {
	return "%" + strings.ToLower(strings.TrimSpace(term)) + "%"
}

// queryBuilder tracks bound arguments and renders the dialect's placeholder.
// Binding the same value twice is deliberate on the positional dialect.
type queryBuilder struct {
	dialect database.Dialect
	args    []any
	seen    map[any]string
}

func newQueryBuilder(dialect database.Dialect) *queryBuilder {
	return &queryBuilder{dialect: dialect, seen: make(map[any]string)}
}

func (q *queryBuilder) bind(v any) string {
	if q.dialect == database.DialectPostgres {
		if ph, ok := q.seen[v]; ok {
			return ph
		}
		q.args = append(q.args, v)
		ph := fmt.Sprintf("$%d", len(q.args))
		q.seen[v] = ph
		return ph
	}
	q.args = append(q.args, v)
	return "?"
}

func scanRecord(rows database.Rows) (job.Record, error) {
	var (
		rec       job.Record
		id        string
		expMonths *int64
		skillsRaw *string
		tagsRaw   *string
		createdAt time.Time
	)

	err := rows.Scan(
		&id, &rec.Title, &rec.Company, &rec.Location, &rec.SalaryRange,
		&rec.Description, &rec.Industry, &rec.Sector, &rec.JobType,
		&rec.EmploymentType, &rec.ExperienceRequired, &expMonths,
		&skillsRaw, &tagsRaw, &rec.Source, &rec.CompanyContact,
		&rec.ApplyURL, &rec.IsActive, &createdAt,
	)
	if err != nil {
		return rec, err
	}

	if parsed, err := uuid.Parse(id); err == nil {
		rec.ID = parsed
	}
	if expMonths != nil {
		m := int(*expMonths)
		rec.ExperienceMonths = &m
	}
	rec.SkillsRequired = decodeStringList(skillsRaw)
	rec.Tags = decodeStringList(tagsRaw)
	rec.CreatedAt = createdAt

	return rec, nil
}

// decodeStringList accepts either a JSON array or a comma-separated string;
// imported corpora carry both encodings.
func decodeStringList(raw *string) []string {
	if raw == nil {
		return nil
	}
	s := strings.TrimSpace(*raw)
	if s == "" || s == "null" {
		return nil
	}

	var list []string
	if err := json.Unmarshal([]byte(s), &list); err == nil {
		return list
	}

	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
