package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"jobrank/internal/database"
	"jobrank/internal/domain/job"

	"github.com/google/uuid"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS job_postings (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL DEFAULT '',
	company TEXT NOT NULL DEFAULT '',
	location TEXT NOT NULL DEFAULT '',
	salary_range TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL DEFAULT '',
	industry TEXT NOT NULL DEFAULT '',
	sector TEXT NOT NULL DEFAULT '',
	job_type TEXT NOT NULL DEFAULT '',
	employment_type TEXT NOT NULL DEFAULT '',
	experience_required TEXT NOT NULL DEFAULT '',
	experience_months INTEGER,
	skills_required TEXT,
	tags TEXT,
	source TEXT NOT NULL DEFAULT '',
	company_contact TEXT NOT NULL DEFAULT '',
	apply_url TEXT NOT NULL DEFAULT '',
	is_active BOOLEAN NOT NULL DEFAULT 1,
	created_at TIMESTAMP NOT NULL
)`

const postgresSchema = `
CREATE TABLE IF NOT EXISTS job_postings (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL DEFAULT '',
	company TEXT NOT NULL DEFAULT '',
	location TEXT NOT NULL DEFAULT '',
	salary_range TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL DEFAULT '',
	industry TEXT NOT NULL DEFAULT '',
	sector TEXT NOT NULL DEFAULT '',
	job_type TEXT NOT NULL DEFAULT '',
	employment_type TEXT NOT NULL DEFAULT '',
	experience_required TEXT NOT NULL DEFAULT '',
	experience_months INTEGER,
	skills_required TEXT,
	tags TEXT,
	source TEXT NOT NULL DEFAULT '',
	company_contact TEXT NOT NULL DEFAULT '',
	apply_url TEXT NOT NULL DEFAULT '',
	is_active BOOLEAN NOT NULL DEFAULT TRUE,
	created_at TIMESTAMPTZ NOT NULL
)`

// EnsureSchema creates the job_postings table when missing. The ranking
// service normally runs against an externally owned corpus; this exists for
// the embedded sqlite mode and for tests.
func (s *SQLJobStore) EnsureSchema(ctx context.Context) error {
	ddl := sqliteSchema
	if s.db.Dialect() == database.DialectPostgres {
		ddl = postgresSchema
	}
	_, err := s.db.Exec(ctx, ddl)
	return err
}

// InsertJob writes one posting. The experience_months column is normalized
// from the free-text requirement at write time so the selector's range filter
// stays a plain integer comparison.
func (s *SQLJobStore) InsertJob(ctx context.Context, rec job.Record) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.ExperienceMonths == nil {
		rec.ExperienceMonths = job.ParseExperienceMonths(rec.ExperienceRequired)
	}

	skills, err := encodeStringList(rec.SkillsRequired)
	if err != nil {
		return err
	}
	tags, err := encodeStringList(rec.Tags)
	if err != nil {
		return err
	}

	q := newQueryBuilder(s.db.Dialect())
	args := []any{
		rec.ID.String(), rec.Title, rec.Company, rec.Location, rec.SalaryRange,
		rec.Description, rec.Industry, rec.Sector, rec.JobType,
		rec.EmploymentType, rec.ExperienceRequired, rec.ExperienceMonths,
		skills, tags, rec.Source, rec.CompanyContact, rec.ApplyURL,
		rec.IsActive, rec.CreatedAt,
	}
	placeholders := make([]string, 0, len(args))
	for _, a := range args {
		placeholders = append(placeholders, q.bindAlways(a))
	}

	query := fmt.Sprintf(
		"INSERT INTO job_postings (%s) VALUES (%s)",
		selectColumns,
		strings.Join(placeholders, ", "),
	)
	_, err = s.db.Exec(ctx, query, q.args...)
	return err
}

func encodeStringList(list []string) (*string, error) {
	if len(list) == 0 {
		return nil, nil
	}
	b, err := json.Marshal(list)
	if err != nil {
		return nil, err
	}
	s := string(b)
	return &s, nil
}

// bindAlways never reuses placeholders; inserts bind every column positionally.
func (q *queryBuilder) bindAlways(v any) string {
	q.args = append(q.args, v)
	if q.dialect == database.DialectPostgres {
		return fmt.Sprintf("$%d", len(q.args))
	}
	return "?"
}
