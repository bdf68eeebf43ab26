package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/cinelist/catalog"
	"github.com/s0up4200/cinelist/movieapi"
	"github.com/s0up4200/cinelist/server"
)

func TestParseShellLine(t *testing.T) {
	tests := []struct {
		line string
		want shellCommand
	}{
		{line: "", want: shellCommand{}},
		{line: "   list  ", want: shellCommand{name: "list"}},
		{line: "SEARCH  Blade Runner ", want: shellCommand{name: "search", arg: "Blade Runner"}},
		{line: `filter Year > 2000 and contains(Genre, "sci")`, want: shellCommand{name: "filter", arg: `Year > 2000 and contains(Genre, "sci")`}},
		{line: "edit 2", want: shellCommand{name: "edit", arg: "2"}},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.want, parseShellLine(tt.line))
		})
	}
}

func TestWriteMovies(t *testing.T) {
	movies := []movieapi.Movie{{ID: "1", Title: "Heat", Genre: "Crime", Year: "1995"}}

	var buf bytes.Buffer
	require.NoError(t, writeMovies(&buf, movies, "json"))
	assert.JSONEq(t, `[{"id":"1","title":"Heat","genre":"Crime","year":"1995"}]`, buf.String())

	buf.Reset()
	require.NoError(t, writeMovies(&buf, movies, "YAML"))
	assert.Contains(t, buf.String(), "- id: \"1\"")
	assert.Contains(t, buf.String(), "title: Heat")

	decoded, err := server.DecodeMovies(buf.Bytes(), false)
	require.NoError(t, err)
	assert.Equal(t, []movieapi.MovieInput{movies[0].Input()}, decoded)

	assert.Error(t, writeMovies(&buf, movies, "xml"))
}

func newReferenceAPI(t *testing.T) string {
	t.Helper()

	store, err := server.OpenStore(context.Background(), filepath.Join(t.TempDir(), "movies.db"), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	ts := httptest.NewServer(server.New(store, zerolog.Nop()).Handler())
	t.Cleanup(ts.Close)

	return ts.URL
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	err := executeContext(context.Background(), &out, strings.NewReader(stdin), args...)
	return out.String(), err
}

// executeContext runs the root command with every flag back at its default
func executeContext(ctx context.Context, out io.Writer, in io.Reader, args ...string) error {
	resetFlags(rootCmd)

	rootCmd.SetOut(out)
	rootCmd.SetErr(out)
	rootCmd.SetIn(in)
	rootCmd.SetArgs(args)

	return rootCmd.ExecuteContext(ctx)
}

func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)

	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func listJSON(t *testing.T, url string) []movieapi.Movie {
	t.Helper()

	out, err := execute(t, "", "--url", url, "list", "--json")
	require.NoError(t, err)

	var movies []movieapi.Movie
	require.NoError(t, json.Unmarshal([]byte(out), &movies), out)
	return movies
}

func TestCommandsAgainstReferenceServer(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	url := newReferenceAPI(t)

	out, err := execute(t, "", "--url", url, "add", "--title", "Dune", "--year", "2021")
	require.NoError(t, err)
	assert.Contains(t, out, "Dune")
	assert.Contains(t, out, catalog.DefaultGenre)

	out, err = execute(t, "", "--url", url, "add", "--title", "Old", "--year", "1800")
	require.Error(t, err)
	assert.Contains(t, out, "Please enter a valid year between 1900 and 2025")

	movies := listJSON(t, url)
	require.Len(t, movies, 1)
	assert.Equal(t, "Dune", movies[0].Title)
	assert.Equal(t, catalog.DefaultGenre, movies[0].Genre)

	out, err = execute(t, "help\nsearch zzz\nsearch dune\nquit\n", "--url", url, "shell")
	require.NoError(t, err)
	assert.Contains(t, out, "Commands:")
	assert.Contains(t, out, catalog.EmptyPlaceholder)
	assert.Contains(t, out, "Movie (1):")

	_, err = execute(t, "", "--url", url, "edit", movies[0].ID.String(), "--genre", "Sci-Fi")
	require.NoError(t, err)
	assert.Equal(t, "Sci-Fi", listJSON(t, url)[0].Genre)

	_, err = execute(t, "", "--url", url, "delete", movies[0].ID.String(), "--no-confirm")
	require.NoError(t, err)
	assert.Empty(t, listJSON(t, url))
}

func TestListFailsWhenAPIUnavailable(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	ts := httptest.NewServer(nil)
	url := ts.URL
	ts.Close()

	out, err := execute(t, "", "--url", url, "list", "--json")
	require.Error(t, err)
	assert.Contains(t, out, catalog.ErrorPlaceholder)
}

type blockingReader struct {
	release chan struct{}
}

func (r blockingReader) ReadLine() (string, bool) {
	<-r.release
	return "", false
}

func TestReadLineCancelled(t *testing.T) {
	r := blockingReader{release: make(chan struct{})}
	defer close(r.release)

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(50*time.Millisecond, cancel)

	done := make(chan bool, 1)
	go func() {
		_, ok := readLine(ctx, r)
		done <- ok
	}()

	select {
	case ok := <-done:
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("readLine did not return after cancellation")
	}
}

func TestShellStopsOnCancel(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	url := newReferenceAPI(t)

	pr, pw := io.Pipe()
	t.Cleanup(func() { pw.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var out bytes.Buffer
	done := make(chan error, 1)
	go func() {
		done <- executeContext(ctx, &out, pr, "--url", url, "shell")
	}()

	// Returns once the shell has consumed the line
	_, err := io.WriteString(pw, "help\n")
	require.NoError(t, err)

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
		assert.Contains(t, out.String(), "Commands:")
	case <-time.After(2 * time.Second):
		t.Fatal("shell kept waiting for input after the context was cancelled")
	}
}

func TestMixedCasePreset(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	url := newReferenceAPI(t)

	client, err := movieapi.NewClient(url, zerolog.Nop())
	require.NoError(t, err)
	for _, in := range []movieapi.MovieInput{
		{Title: "Alien", Genre: "Horror", Year: "1979"},
		{Title: "Dune", Genre: "Sci-Fi", Year: "2021"},
	} {
		_, err := client.CreateMovie(context.Background(), in)
		require.NoError(t, err)
	}

	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("filter:\n  presets:\n    MyClassics: \"Year < 1980\"\n"), 0o644))

	t.Run("list", func(t *testing.T) {
		out, err := execute(t, "", "--config", configPath, "--url", url, "list", "--preset", "MyClassics", "--json")
		require.NoError(t, err)

		var movies []movieapi.Movie
		require.NoError(t, json.Unmarshal([]byte(out), &movies), out)
		require.Len(t, movies, 1)
		assert.Equal(t, "Alien", movies[0].Title)
	})

	t.Run("shell", func(t *testing.T) {
		out, err := execute(t, "filter MyClassics\nquit\n", "--config", configPath, "--url", url, "shell")
		require.NoError(t, err)

		assert.Contains(t, out, "Movies (2):")
		assert.Contains(t, out, "Movie (1):")
		assert.NotContains(t, out, "✗")
	})
}
