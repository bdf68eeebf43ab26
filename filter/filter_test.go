package filter

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/s0up4200/cinelist/movieapi"
)

func testMovies() []movieapi.Movie {
	return []movieapi.Movie{
		{ID: "1", Title: "Inception", Genre: "Sci-Fi", Year: "2010"},
		{ID: "2", Title: "Heat", Genre: "Crime", Year: "1995"},
		{ID: "3", Title: "Dune", Genre: "Sci-Fi", Year: "2021"},
		{ID: "4", Title: "Legacy Entry", Genre: "Drama", Year: "unknown"},
	}
}

func TestCompile(t *testing.T) {
	tests := []struct {
		name        string
		expression  string
		wantErr     bool
		errContains string
	}{
		{
			name:       "valid expression",
			expression: `Genre == "Sci-Fi"`,
		},
		{
			name:        "empty expression",
			expression:  "   ",
			wantErr:     true,
			errContains: "empty expression",
		},
		{
			name:       "invalid syntax",
			expression: `contains(Title, "unclosed`,
			wantErr:    true,
		},
		{
			name:       "unknown field",
			expression: `Rating > 7`,
			wantErr:    true,
		},
		{
			name:       "non boolean result",
			expression: `Year + 1`,
			wantErr:    true,
		},
		{
			name:       "complex expression",
			expression: `startsWith(Title, "in") and Year >= 2000 and between(Year, 2000, 2020)`,
		},
	}

	compiler := NewExprCompiler()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter, err := compiler.Compile(tt.expression)

			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error but got none")
				}
				var compErr *CompilationError
				if !errors.As(err, &compErr) {
					t.Errorf("expected CompilationError, got %T", err)
				}
				if tt.errContains != "" && !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("error %q does not contain %q", err.Error(), tt.errContains)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if filter.Expression() != tt.expression {
				t.Errorf("Expression() = %q, want %q", filter.Expression(), tt.expression)
			}
		})
	}
}

func TestApply(t *testing.T) {
	tests := []struct {
		name       string
		expression string
		want       []string
	}{
		{
			name:       "genre equality",
			expression: `Genre == "Sci-Fi"`,
			want:       []string{"Inception", "Dune"},
		},
		{
			name:       "numeric year",
			expression: `Year > 2000`,
			want:       []string{"Inception", "Dune"},
		},
		{
			name:       "non numeric year is zero",
			expression: `Year == 0`,
			want:       []string{"Legacy Entry"},
		},
		{
			name:       "raw year text",
			expression: `YearText == "unknown"`,
			want:       []string{"Legacy Entry"},
		},
		{
			name:       "case insensitive contains",
			expression: `contains(Title, "HEA")`,
			want:       []string{"Heat"},
		},
		{
			name:       "search semantics",
			expression: `matches("sci")`,
			want:       []string{"Inception", "Dune"},
		},
		{
			name:       "id lookup",
			expression: `ID == "3"`,
			want:       []string{"Dune"},
		},
		{
			name:       "no match",
			expression: `endsWith(Title, "zzz")`,
			want:       []string{},
		},
	}

	compiler := NewExprCompiler()
	movies := testMovies()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter, err := compiler.Compile(tt.expression)
			if err != nil {
				t.Fatalf("compile: %v", err)
			}

			got := Apply(filter, movies)
			titles := make([]string, 0, len(got))
			for _, m := range got {
				titles = append(titles, m.Title)
			}

			if strings.Join(titles, ",") != strings.Join(tt.want, ",") {
				t.Errorf("Apply() = %v, want %v", titles, tt.want)
			}
		})
	}

	if len(movies) != 4 || movies[0].Title != "Inception" {
		t.Errorf("Apply modified its input: %v", movies)
	}
}

func TestCustomFunctions(t *testing.T) {
	compiler := NewExprCompiler(WithCustomFunctions(map[string]any{
		"isClassic": func(year int) bool { return year > 0 && year < 2000 },
	}))

	filter, err := compiler.Compile(`isClassic(Year)`)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	got := Apply(filter, testMovies())
	if len(got) != 1 || got[0].Title != "Heat" {
		t.Errorf("got %v, want only Heat", got)
	}
}

func TestFuncAdapter(t *testing.T) {
	f := Func(func(m movieapi.Movie) bool { return m.Genre == "Crime" })
	got := Apply(f, testMovies())
	if len(got) != 1 || got[0].ID != "2" {
		t.Errorf("got %v", got)
	}
}

func TestConcurrentEvaluation(t *testing.T) {
	filter, err := NewExprCompiler().Compile(`Year > 2000 and contains(Genre, "sci")`)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	movies := testMovies()
	var wg sync.WaitGroup
	errs := make(chan string, 100)

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if n := len(Apply(filter, movies)); n != 2 {
				errs <- "unexpected match count"
			}
		}()
	}

	wg.Wait()
	close(errs)

	for e := range errs {
		t.Error(e)
	}
}

func TestCacheEffectiveness(t *testing.T) {
	compiler := NewExprCompiler(WithCache(2))

	first, err := compiler.Compile(`Year > 2000`)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	second, _ := compiler.Compile(`Year > 2000`)
	if first != second {
		t.Error("expected cached filter to be reused")
	}

	_, _ = compiler.Compile(`Year > 1990`)
	_, _ = compiler.Compile(`Year > 1980`)
	if compiler.Size() != 2 {
		t.Errorf("cache size = %d, want 2", compiler.Size())
	}

	compiler.Clear()
	if compiler.Size() != 0 {
		t.Errorf("cache size after Clear = %d, want 0", compiler.Size())
	}
}

func TestLRUEviction(t *testing.T) {
	cache := newLRUCache[int](2)
	cache.Put("a", 1)
	cache.Put("b", 2)
	cache.Get("a")
	cache.Put("c", 3)

	if _, ok := cache.Get("b"); ok {
		t.Error("expected least recently used entry to be evicted")
	}
	if v, ok := cache.Get("a"); !ok || v != 1 {
		t.Errorf("Get(a) = %d, %v", v, ok)
	}
}
