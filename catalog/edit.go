package catalog

import (
	"context"
	"errors"

	"github.com/s0up4200/cinelist/movieapi"
)

// ErrSessionClosed is returned when a submitted or cancelled session is reused
var ErrSessionClosed = errors.New("edit session is closed")

// EditSession is an in-progress edit of one cached movie. Field changes stay
// local until Submit; Cancel discards them without any request.
type EditSession struct {
	catalog  *Catalog
	original movieapi.Movie
	draft    Draft
	closed   bool
}

// ID returns the identifier of the movie being edited
func (s *EditSession) ID() movieapi.ID {
	return s.original.ID
}

// Original returns the record as it was when the session opened
func (s *EditSession) Original() movieapi.Movie {
	return s.original
}

// Draft returns the pending field values
func (s *EditSession) Draft() Draft {
	return s.draft
}

// SetTitle stages a new title
func (s *EditSession) SetTitle(v string) {
	s.draft.Title = v
}

// SetGenre stages a new genre
func (s *EditSession) SetGenre(v string) {
	s.draft.Genre = v
}

// SetYear stages a new year
func (s *EditSession) SetYear(v string) {
	s.draft.Year = v
}

// Changed reports whether any staged field differs from the original
func (s *EditSession) Changed() bool {
	return s.draft != DraftFrom(s.original)
}

// Closed reports whether the session was submitted or cancelled
func (s *EditSession) Closed() bool {
	return s.closed
}

// Cancel abandons the session
func (s *EditSession) Cancel() {
	s.closed = true
}

// Submit validates the staged fields and replaces the movie.
//
// A validation failure alerts the user and leaves the session open so the
// fields can be corrected. A failed request also leaves it open.
func (s *EditSession) Submit(ctx context.Context) error {
	if s.closed {
		return ErrSessionClosed
	}

	input, err := s.draft.Validate()
	if err != nil {
		s.catalog.alertValidation(err)
		return err
	}

	if err := s.catalog.Update(ctx, s.original.ID, input); err != nil {
		return err
	}

	s.closed = true
	return nil
}
