package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/s0up4200/cinelist/filter"
	"github.com/s0up4200/cinelist/movieapi"
)

// Catalog is the movie catalog client: it keeps the cache in sync with the
// API, renders it, and handles the user-facing add/edit/delete/search flows.
//
// Every mutation is followed by a full reload; the cache is never patched.
type Catalog struct {
	api      movieapi.API
	state    *State
	renderer Renderer
	out      io.Writer
	prompter Prompter
	compiler filter.Compiler
	logger   zerolog.Logger

	reapplySearch bool
}

// Option configures a Catalog
type Option func(*Catalog)

// WithState injects the cache the catalog operates on
func WithState(state *State) Option {
	return func(c *Catalog) {
		if state != nil {
			c.state = state
		}
	}
}

// WithRenderer sets how records are drawn
func WithRenderer(renderer Renderer) Option {
	return func(c *Catalog) {
		if renderer != nil {
			c.renderer = renderer
		}
	}
}

// WithOutput sets where rendered output goes
func WithOutput(w io.Writer) Option {
	return func(c *Catalog) {
		if w != nil {
			c.out = w
		}
	}
}

// WithPrompter sets the dialog implementation
func WithPrompter(p Prompter) Option {
	return func(c *Catalog) {
		if p != nil {
			c.prompter = p
		}
	}
}

// WithCompiler sets the compiler used by Query
func WithCompiler(compiler filter.Compiler) Option {
	return func(c *Catalog) {
		if compiler != nil {
			c.compiler = compiler
		}
	}
}

// WithReapplySearch keeps the last search query across reloads. By default a
// reload clears the query and shows the unfiltered list.
func WithReapplySearch(enabled bool) Option {
	return func(c *Catalog) {
		c.reapplySearch = enabled
	}
}

// New creates a catalog over api with an empty cache
func New(api movieapi.API, logger zerolog.Logger, opts ...Option) *Catalog {
	c := &Catalog{
		api:      api,
		state:    NewState(),
		renderer: NewConsoleFormatter(),
		out:      os.Stdout,
		prompter: NewTerminalPrompter(os.Stdin, os.Stdout),
		compiler: filter.NewExprCompiler(filter.WithCache(32)),
		logger:   logger.With().Str("module", "catalog").Logger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// State returns the cache owned by the catalog
func (c *Catalog) State() *State {
	return c.state
}

// Prompter returns the dialog implementation in use
func (c *Catalog) Prompter() Prompter {
	return c.prompter
}

// LoadAll fetches the whole collection and replaces the cache with it.
//
// On failure the cache is left as it was, the error placeholder is drawn in
// place of the list and the error is logged and returned.
func (c *Catalog) LoadAll(ctx context.Context) error {
	movies, err := c.api.ListMovies(ctx)
	if err != nil {
		c.state.MarkFailed()
		c.logger.Error().Err(err).Msg("Error fetching movies")
		c.renderError(ErrorPlaceholder)
		return fmt.Errorf("failed to load movies: %w", err)
	}

	c.state.Replace(movies)
	if !c.reapplySearch {
		c.state.SetQuery("")
	}

	c.logger.Debug().Int("count", len(movies)).Msg("Catalog reloaded")
	c.render(c.state.View())
	return nil
}

// Create adds a movie and reloads on success
func (c *Catalog) Create(ctx context.Context, input movieapi.MovieInput) error {
	if _, err := c.api.CreateMovie(ctx, input); err != nil {
		return c.mutationFailed(err, "Error adding movie", msgAddFailed)
	}

	c.reload(ctx)
	return nil
}

// Update replaces every field of a movie and reloads on success
func (c *Catalog) Update(ctx context.Context, id movieapi.ID, input movieapi.MovieInput) error {
	if _, err := c.api.ReplaceMovie(ctx, id, input); err != nil {
		return c.mutationFailed(err, "Error updating movie", msgUpdateFailed)
	}

	c.reload(ctx)
	return nil
}

// Remove deletes a movie and reloads on success
func (c *Catalog) Remove(ctx context.Context, id movieapi.ID) error {
	if err := c.api.DeleteMovie(ctx, id); err != nil {
		return c.mutationFailed(err, "Error deleting movie", msgDeleteFailed)
	}

	c.reload(ctx)
	return nil
}

// reload resynchronizes after a successful write. A failed reload has
// already been drawn and logged by LoadAll and does not fail the write.
func (c *Catalog) reload(ctx context.Context) {
	_ = c.LoadAll(ctx)
}

func (c *Catalog) mutationFailed(err error, logMsg, alert string) error {
	c.logger.Error().Err(err).Msg(logMsg)
	c.prompter.Alert(alert)
	return err
}

func (c *Catalog) alertValidation(err error) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		c.prompter.Alert(ve.Reason)
		return
	}
	c.prompter.Alert(err.Error())
}

func (c *Catalog) render(records []movieapi.Movie) {
	if err := c.renderer.Render(c.out, records); err != nil {
		c.logger.Warn().Err(err).Msg("Failed to render movies")
	}
}

func (c *Catalog) renderError(message string) {
	if err := c.renderer.RenderError(c.out, message); err != nil {
		c.logger.Warn().Err(err).Msg("Failed to render error")
	}
}
