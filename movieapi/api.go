package movieapi

import (
	"context"
)

// API defines the movie collection operations the catalog depends on
type API interface {
	// ListMovies fetches the full collection
	ListMovies(ctx context.Context) ([]Movie, error)

	// CreateMovie adds a movie; the server assigns the ID
	CreateMovie(ctx context.Context, input MovieInput) (*Movie, error)

	// ReplaceMovie overwrites every field of the movie with the given ID
	ReplaceMovie(ctx context.Context, id ID, input MovieInput) (*Movie, error)

	// DeleteMovie removes the movie with the given ID
	DeleteMovie(ctx context.Context, id ID) error
}

var _ API = (*Client)(nil)
