package rank

import (
	"strings"
	"unicode"
)

var stopwords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "job": {}, "jobs": {}, "work": {},
	"looking": {}, "want": {}, "need": {}, "with": {}, "any": {}, "some": {},
	"find": {}, "searching": {}, "opportunity": {}, "position": {},
}

// NormalizeQuery lowercases the input and strips everything that is not a
// letter, digit or single space.
func NormalizeQuery(input string) string {
	input = strings.TrimSpace(input)
	if input == "" {
		return ""
	}
	input = strings.ToLower(input)

	b := strings.Builder{}
	b.Grow(len(input))
	lastWasSpace := false

	for _, r := range input {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			b.WriteRune(r)
			lastWasSpace = false
			continue
		}
		if unicode.IsSpace(r) {
			if b.Len() == 0 || lastWasSpace {
				continue
			}
			b.WriteByte(' ')
			lastWasSpace = true
			continue
		}
		// drop all other characters
	}

	return strings.TrimSpace(b.String())
}

// SignificantWords returns up to max content words from the query: longer
// than two characters and not a stopword. Used by the selector's broad
// fallback when intent extraction produced nothing usable.
func SignificantWords(query string, max int) []string {
	if max <= 0 {
		return nil
	}

	out := make([]string, 0, max)
	seen := make(map[string]struct{}, max)
	for _, w := range strings.Fields(NormalizeQuery(query)) {
		if len(w) <= 2 {
			continue
		}
		if _, stop := stopwords[w]; stop {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
		if len(out) == max {
			break
		}
	}
	return out
}
