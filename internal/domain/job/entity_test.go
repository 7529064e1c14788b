package job

import "testing"

func TestDedupKey(t *testing.T) {
	a := Record{Title: "  Software Engineer ", Company: "TECHCO"}
	b := Record{Title: "software engineer", Company: "techco"}
	if a.DedupKey() != b.DedupKey() {
		t.Fatalf("casing and whitespace variants must collapse")
	}

	c := Record{Title: "software engineer", Company: "otherco"}
	if a.DedupKey() == c.DedupKey() {
		t.Fatalf("different companies must not collapse")
	}
}

func TestParseExperienceMonths(t *testing.T) {
	cases := []struct {
		in   string
		want int
		none bool
	}{
		{"2 years", 24, false},
		{"5+ yrs", 60, false},
		{"6 months", 6, false},
		{"24", 24, false},
		{"Fresher", 0, true},
		{"null", 0, true},
		{"", 0, true},
		{"no experience needed", 0, true},
		{"100 years", 600, false},
	}
	for _, tc := range cases {
		got := ParseExperienceMonths(tc.in)
		if tc.none {
			if got != nil {
				t.Fatalf("ParseExperienceMonths(%q) = %d, want nil", tc.in, *got)
			}
			continue
		}
		if got == nil || *got != tc.want {
			t.Fatalf("ParseExperienceMonths(%q) = %v, want %d", tc.in, got, tc.want)
		}
	}
}
