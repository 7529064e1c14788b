package job

import (
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
)

// Record is a single job posting as the ranking pipeline sees it.
// The pipeline is read-only over the corpus: no component mutates a Record,
// and deactivation happens upstream via the IsActive flag.
type Record struct {
	ID                 uuid.UUID
	Title              string
	Company            string
	Location           string
	SalaryRange        string
	Description        string
	Industry           string
	Sector             string
	JobType            string
	EmploymentType     string
	ExperienceRequired string
	ExperienceMonths   *int
	SkillsRequired     []string
	Tags               []string
	Source             string
	CompanyContact     string
	ApplyURL           string
	IsActive           bool
	CreatedAt          time.Time
}

// Key identifies a posting for deduplication purposes.
type Key struct {
	Title   string
	Company string
}

// DedupKey normalizes (title, company) so postings that differ only in casing
// or surrounding whitespace collapse to the same key.
func (r Record) DedupKey() Key {
	return Key{
		Title:   strings.ToLower(strings.TrimSpace(r.Title)),
		Company: strings.ToLower(strings.TrimSpace(r.Company)),
	}
}

// ParseExperienceMonths extracts a month count from the free-text experience
// requirement carried by the corpus ("2 years", "24", "5+ yrs", "6 months").
// Returns nil when no usable number is present; the selector treats nil as
// "requirement unknown" and admits the job.
func ParseExperienceMonths(raw string) *int {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" || s == "null" || s == "none" || s == "fresher" {
		return nil
	}

	start := -1
	for i, r := range s {
		if unicode.IsDigit(r) {
			start = i
			break
		}
	}
	if start < 0 {
		return nil
	}
	end := start
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}

	n, err := strconv.Atoi(s[start:end])
	if err != nil {
		return nil
	}

	if strings.Contains(s, "year") || strings.Contains(s, "yr") {
		n *= 12
	}

	if n < 0 {
		n = 0
	}
	if n > 600 {
		n = 600
	}
	return &n
}
