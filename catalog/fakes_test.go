package catalog

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/s0up4200/cinelist/movieapi"
)

var errUnavailable = errors.New("connection refused")

// fakeAPI is an in-memory movieapi.API that records every call
type fakeAPI struct {
	mu      sync.Mutex
	movies  []movieapi.Movie
	nextID  int
	calls   []string
	creates []movieapi.MovieInput

	listErr   error
	createErr error
	updateErr error
	deleteErr map[movieapi.ID]error
}

func newFakeAPI(movies ...movieapi.Movie) *fakeAPI {
	return &fakeAPI{movies: movies, nextID: 100, deleteErr: map[movieapi.ID]error{}}
}

func (f *fakeAPI) record(call string) {
	f.calls = append(f.calls, call)
}

func (f *fakeAPI) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeAPI) count(prefix string) int {
	n := 0
	for _, c := range f.Calls() {
		if strings.HasPrefix(c, prefix) {
			n++
		}
	}
	return n
}

func (f *fakeAPI) ListMovies(ctx context.Context) ([]movieapi.Movie, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("GET /movies")
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]movieapi.Movie{}, f.movies...), nil
}

func (f *fakeAPI) CreateMovie(ctx context.Context, input movieapi.MovieInput) (*movieapi.Movie, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("POST /movies")
	f.creates = append(f.creates, input)
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextID++
	m := movieapi.Movie{ID: movieapi.ID(fmt.Sprint(f.nextID)), Title: input.Title, Genre: input.Genre, Year: input.Year}
	f.movies = append(f.movies, m)
	return &m, nil
}

func (f *fakeAPI) ReplaceMovie(ctx context.Context, id movieapi.ID, input movieapi.MovieInput) (*movieapi.Movie, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("PUT /movies/" + id.String())
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	for i, m := range f.movies {
		if m.ID == id {
			f.movies[i] = movieapi.Movie{ID: id, Title: input.Title, Genre: input.Genre, Year: input.Year}
			out := f.movies[i]
			return &out, nil
		}
	}
	return nil, &movieapi.APIError{Method: "PUT", Path: "/movies/" + id.String(), StatusCode: 404}
}

func (f *fakeAPI) DeleteMovie(ctx context.Context, id movieapi.ID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("DELETE /movies/" + id.String())
	if err := f.deleteErr[id]; err != nil {
		return err
	}
	for i, m := range f.movies {
		if m.ID == id {
			f.movies = append(f.movies[:i], f.movies[i+1:]...)
			return nil
		}
	}
	return nil
}

// fakePrompter answers dialogs from queued responses
type fakePrompter struct {
	alerts   []string
	confirms []string
	prompts  []string

	confirmAnswer bool
	answers       []promptAnswer
}

type promptAnswer struct {
	value string
	ok    bool
}

func (p *fakePrompter) Alert(message string) {
	p.alerts = append(p.alerts, message)
}

func (p *fakePrompter) Confirm(message string) bool {
	p.confirms = append(p.confirms, message)
	return p.confirmAnswer
}

func (p *fakePrompter) Prompt(label, def string) (string, bool) {
	p.prompts = append(p.prompts, label+"="+def)
	if len(p.answers) == 0 {
		return def, true
	}
	a := p.answers[0]
	p.answers = p.answers[1:]
	return a.value, a.ok
}

func newTestCatalog(api movieapi.API, p Prompter, opts ...Option) (*Catalog, *bytes.Buffer) {
	var out bytes.Buffer
	opts = append([]Option{WithOutput(&out), WithPrompter(p)}, opts...)
	return New(api, zerolog.Nop(), opts...), &out
}

func sampleMovies() []movieapi.Movie {
	return []movieapi.Movie{
		{ID: "1", Title: "Inception", Genre: "Sci-Fi", Year: "2010"},
		{ID: "2", Title: "Heat", Genre: "Crime", Year: "1995"},
	}
}
