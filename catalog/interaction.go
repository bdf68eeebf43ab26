package catalog

import (
	"context"
	"fmt"

	"github.com/s0up4200/cinelist/filter"
	"github.com/s0up4200/cinelist/movieapi"
)

// Add validates the draft and creates the movie. The draft is cleared only
// when the create succeeds; on any failure the user's input is left as is.
func (c *Catalog) Add(ctx context.Context, d *Draft) error {
	input, err := d.Validate()
	if err != nil {
		c.alertValidation(err)
		return err
	}

	if err := c.Create(ctx, input); err != nil {
		return err
	}

	d.Reset()
	return nil
}

// Delete asks for confirmation and removes the movie. Declining sends nothing.
func (c *Catalog) Delete(ctx context.Context, id movieapi.ID) error {
	if !c.prompter.Confirm(msgConfirmDel) {
		c.logger.Info().Str("id", id.String()).Msg("Deletion cancelled by user")
		return nil
	}

	return c.Remove(ctx, id)
}

// BeginEdit opens an edit session for a cached movie
func (c *Catalog) BeginEdit(id movieapi.ID) (*EditSession, error) {
	movie, ok := c.state.Find(id)
	if !ok {
		c.logger.Error().Str("id", id.String()).Msg("Movie not found for edit")
		c.prompter.Alert(msgNotFound)
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	return &EditSession{
		catalog:  c,
		original: movie,
		draft:    DraftFrom(movie),
	}, nil
}

// Edit walks the user through title, genre and year prompts pre-filled with
// the current values. Cancelling any prompt abandons the whole edit.
func (c *Catalog) Edit(ctx context.Context, id movieapi.ID) error {
	session, err := c.BeginEdit(id)
	if err != nil {
		return err
	}

	steps := []struct {
		label string
		get   func(Draft) string
		set   func(*EditSession, string)
	}{
		{"Edit movie title", func(d Draft) string { return d.Title }, (*EditSession).SetTitle},
		{"Edit genre", func(d Draft) string { return d.Genre }, (*EditSession).SetGenre},
		{"Edit year", func(d Draft) string { return d.Year }, (*EditSession).SetYear},
	}

	for _, step := range steps {
		value, ok := c.prompter.Prompt(step.label, step.get(session.Draft()))
		if !ok {
			session.Cancel()
			c.logger.Info().Str("id", id.String()).Msg("Edit cancelled by user")
			return nil
		}
		step.set(session, value)
	}

	return session.Submit(ctx)
}

// Search filters the cache by title or genre and redraws. No request is made.
func (c *Catalog) Search(query string) []movieapi.Movie {
	c.state.SetQuery(query)
	visible := c.state.View()
	c.render(visible)
	return visible
}

// Query filters the cache with a compiled expression and redraws the matches
func (c *Catalog) Query(expression string) ([]movieapi.Movie, error) {
	f, err := c.compiler.Compile(expression)
	if err != nil {
		c.prompter.Alert(err.Error())
		return nil, err
	}

	matches := filter.Apply(f, c.state.Records())
	c.render(matches)
	return matches, nil
}
