package server

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/s0up4200/cinelist/movieapi"
)

// LoadMovies reads a YAML or JSON list of movies. JSON is chosen by a .json
// extension or a leading '['; anything else is parsed as YAML.
func LoadMovies(path string) ([]movieapi.MovieInput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "could not read movie file")
	}

	movies, err := DecodeMovies(data, strings.EqualFold(filepath.Ext(path), ".json"))
	if err != nil {
		return nil, errors.Wrapf(err, "could not parse %s", path)
	}

	return movies, nil
}

// DecodeMovies parses a movie list from JSON or YAML
func DecodeMovies(data []byte, isJSON bool) ([]movieapi.MovieInput, error) {
	var movies []movieapi.MovieInput

	trimmed := bytes.TrimSpace(data)
	if isJSON || bytes.HasPrefix(trimmed, []byte("[")) {
		if err := json.Unmarshal(trimmed, &movies); err != nil {
			return nil, errors.Wrap(err, "invalid JSON")
		}
		return movies, nil
	}

	if err := yaml.Unmarshal(trimmed, &movies); err != nil {
		return nil, errors.Wrap(err, "invalid YAML")
	}
	return movies, nil
}

// Seed inserts movies from path when the store is empty
func (s *Store) Seed(ctx context.Context, path string) (int, error) {
	n, err := s.Count(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.log.Debug().Int("existing", n).Msg("Store not empty, skipping seed")
		return 0, nil
	}

	movies, err := LoadMovies(path)
	if err != nil {
		return 0, err
	}

	for _, m := range movies {
		if _, err := s.Create(ctx, m); err != nil {
			return 0, errors.Wrapf(err, "could not seed %q", m.Title)
		}
	}

	s.log.Info().Int("count", len(movies)).Str("file", path).Msg("Seeded movies")
	return len(movies), nil
}
