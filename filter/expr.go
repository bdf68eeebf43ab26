package filter

import (
	"maps"
	"strconv"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/s0up4200/cinelist/movieapi"
)

// exprFilter implements CompiledFilter using the expr language
type exprFilter struct {
	expression string
	program    *vm.Program
	extra      map[string]any
}

// ExprCompilerOption configures an expr compiler
type ExprCompilerOption func(*exprCompiler)

// WithCache enables filter caching with the specified size
func WithCache(size int) ExprCompilerOption {
	return func(c *exprCompiler) {
		if size > 0 {
			c.cache = newLRUCache[CompiledFilter](size)
		}
	}
}

// WithCustomFunctions adds custom helper functions
func WithCustomFunctions(funcs map[string]any) ExprCompilerOption {
	return func(c *exprCompiler) {
		maps.Copy(c.helperFuncs, funcs)
	}
}

// NewExprCompiler creates a new expr-based filter compiler.
//
// Expressions see the movie fields Title, Genre, Year (an int, 0 when the
// stored year is not numeric), YearText and ID, plus string helpers such as
// contains, startsWith and matches.
func NewExprCompiler(opts ...ExprCompilerOption) CachingCompiler {
	c := &exprCompiler{
		helperFuncs: createHelperFunctions(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// exprCompiler implements Compiler for expr-based filters
type exprCompiler struct {
	helperFuncs map[string]any
	cache       *lruCache[CompiledFilter]
}

// Compile compiles an expression into an executable filter
func (c *exprCompiler) Compile(expression string) (CompiledFilter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "empty expression",
		}
	}

	if c.cache != nil {
		if cached, ok := c.cache.Get(expression); ok {
			return cached, nil
		}
	}

	env := createEnvironment(movieapi.Movie{}, c.helperFuncs)
	program, err := expr.Compile(expression,
		expr.Env(env),
		expr.AsBool(),
	)
	if err != nil {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "failed to compile expression",
			Err:        err,
		}
	}

	filter := &exprFilter{
		expression: expression,
		program:    program,
		extra:      c.helperFuncs,
	}

	if c.cache != nil {
		c.cache.Put(expression, filter)
	}

	return filter, nil
}

// Clear removes all cached filters
func (c *exprCompiler) Clear() {
	if c.cache != nil {
		c.cache.Clear()
	}
}

// Size returns the number of cached filters
func (c *exprCompiler) Size() int {
	if c.cache != nil {
		return c.cache.Len()
	}
	return 0
}

// Evaluate evaluates the filter against a movie. Runtime errors count as no match.
func (f *exprFilter) Evaluate(movie movieapi.Movie) bool {
	matched, err := f.Run(movie)
	return err == nil && matched
}

// Run evaluates the filter and reports runtime errors
func (f *exprFilter) Run(movie movieapi.Movie) (bool, error) {
	result, err := expr.Run(f.program, createEnvironment(movie, f.extra))
	if err != nil {
		return false, &EvaluationError{
			Expression: f.expression,
			MovieTitle: movie.Title,
			Err:        err,
		}
	}

	// AsBool guarantees the type
	return result.(bool), nil
}

// Expression returns the original expression
func (f *exprFilter) Expression() string {
	return f.expression
}

// createHelperFunctions creates the static helper functions
func createHelperFunctions() map[string]any {
	return map[string]any{
		"contains": func(str, substr string) bool {
			return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
		},
		"startsWith": func(str, prefix string) bool {
			return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
		},
		"endsWith": func(str, suffix string) bool {
			return strings.HasSuffix(strings.ToLower(str), strings.ToLower(suffix))
		},
		"lower": strings.ToLower,
		"upper": strings.ToUpper,
		"between": func(n, lo, hi int) bool {
			return n >= lo && n <= hi
		},
	}
}

// createEnvironment builds the evaluation environment for one movie
func createEnvironment(movie movieapi.Movie, helpers map[string]any) map[string]any {
	env := make(map[string]any, len(helpers)+8)
	maps.Copy(env, helpers)

	year, err := strconv.Atoi(strings.TrimSpace(movie.Year))
	if err != nil {
		year = 0
	}

	env["Title"] = movie.Title
	env["Genre"] = movie.Genre
	env["Year"] = year
	env["YearText"] = movie.Year
	env["ID"] = movie.ID.String()

	// Same semantics as the search box: title or genre, case-insensitive
	env["matches"] = func(q string) bool {
		q = strings.ToLower(strings.TrimSpace(q))
		if q == "" {
			return true
		}
		return strings.Contains(strings.ToLower(movie.Title), q) ||
			strings.Contains(strings.ToLower(movie.Genre), q)
	}

	return env
}
