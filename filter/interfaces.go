package filter

import (
	"github.com/s0up4200/cinelist/movieapi"
)

// Filter defines the basic interface for movie filters
type Filter interface {
	// Evaluate checks if a movie matches the filter criteria
	Evaluate(movie movieapi.Movie) bool
}

// CompiledFilter represents a pre-compiled filter ready for evaluation
type CompiledFilter interface {
	Filter

	// Expression returns the original filter expression
	Expression() string
}

// Compiler compiles filter expressions into executable filters
type Compiler interface {
	// Compile parses and compiles a filter expression
	Compile(expression string) (CompiledFilter, error)
}

// CachingCompiler provides caching for compiled filters
type CachingCompiler interface {
	Compiler

	// Clear removes all cached filters
	Clear()

	// Size returns the number of cached filters
	Size() int
}

// Func adapts a plain predicate to Filter
type Func func(movieapi.Movie) bool

// Evaluate calls f
func (f Func) Evaluate(movie movieapi.Movie) bool {
	return f(movie)
}

// Apply returns, in order, the movies matching f. The input is not modified.
func Apply(f Filter, movies []movieapi.Movie) []movieapi.Movie {
	matches := make([]movieapi.Movie, 0, len(movies))
	for _, movie := range movies {
		if f.Evaluate(movie) {
			matches = append(matches, movie)
		}
	}
	return matches
}
