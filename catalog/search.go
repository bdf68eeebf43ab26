package catalog

import (
	"strings"

	"github.com/s0up4200/cinelist/movieapi"
)

// Filter returns, in order, the records whose title or genre contains query,
// ignoring case and surrounding whitespace. An empty query matches everything.
// The input slice is never modified; the result is always a fresh slice.
func Filter(records []movieapi.Movie, query string) []movieapi.Movie {
	q := strings.ToLower(strings.TrimSpace(query))

	matches := make([]movieapi.Movie, 0, len(records))
	for _, m := range records {
		if Matches(m, q) {
			matches = append(matches, m)
		}
	}
	return matches
}

// Matches reports whether a record matches an already lowercased query
func Matches(m movieapi.Movie, lowerQuery string) bool {
	if lowerQuery == "" {
		return true
	}
	return strings.Contains(strings.ToLower(m.Title), lowerQuery) ||
		strings.Contains(strings.ToLower(m.Genre), lowerQuery)
}
