package server

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/segmentio/ksuid"
	_ "modernc.org/sqlite"

	"github.com/s0up4200/cinelist/movieapi"
)

// ErrMovieNotFound is returned when no row has the requested id
var ErrMovieNotFound = errors.New("movie not found")

// Store persists movies in SQLite
type Store struct {
	handler  *sql.DB
	log      zerolog.Logger
	lock     sync.RWMutex
	squirrel sq.StatementBuilderType
}

// OpenStore opens (creating if needed) the database at path and migrates it
func OpenStore(ctx context.Context, path string, log zerolog.Logger) (*Store, error) {
	s := &Store{
		log:      log.With().Str("module", "store").Logger(),
		squirrel: sq.StatementBuilder.PlaceholderFormat(sq.Question),
	}

	dsn := path + "?_pragma=busy_timeout%3d1000&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)"

	var err error
	s.handler, err = sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "unable to open database")
	}

	// SQLite has a single writer
	s.handler.SetMaxOpenConns(1)

	if err := s.Migrate(ctx); err != nil {
		s.handler.Close()
		return nil, errors.Wrap(err, "failed to migrate schema")
	}

	return s, nil
}

// Close closes the database
func (s *Store) Close() error {
	return s.handler.Close()
}

// Ping checks the database connection
func (s *Store) Ping(ctx context.Context) error {
	return s.handler.PingContext(ctx)
}

// Migrate brings the schema up to the latest version using PRAGMA user_version
func (s *Store) Migrate(ctx context.Context) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	var version int
	if err := s.handler.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return errors.Wrap(err, "failed to query schema version")
	}

	if version == len(migrations) {
		s.log.Debug().Int("version", version).Msg("Database schema is up to date")
		return nil
	} else if version > len(migrations) {
		return errors.Errorf("database schema version (%d) is newer than supported (%d)", version, len(migrations))
	}

	s.log.Info().Msgf("Beginning database schema upgrade from version %v to version: %v", version, len(migrations))

	tx, err := s.handler.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "failed to begin transaction")
	}
	defer tx.Rollback()

	if version == 0 {
		if _, err := tx.ExecContext(ctx, schema); err != nil {
			return errors.Wrap(err, "failed to initialize schema")
		}
	} else {
		for i := version; i < len(migrations); i++ {
			if migrations[i] == "" {
				continue
			}
			s.log.Info().Msgf("Upgrading database schema to version: %v", i+1)
			if _, err := tx.ExecContext(ctx, migrations[i]); err != nil {
				return errors.Wrapf(err, "failed to execute migration #%v", i)
			}
		}
	}

	if _, err := tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", len(migrations))); err != nil {
		return errors.Wrap(err, "failed to bump schema version")
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "failed to commit migration")
	}

	s.log.Info().Msgf("Database schema upgraded to version: %v", len(migrations))
	return nil
}

// List returns every movie in insertion order
func (s *Store) List(ctx context.Context) ([]movieapi.Movie, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	query, args, err := s.squirrel.
		Select("id", "title", "genre", "year").
		From("movies").
		OrderBy("rowid").
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "error building query")
	}

	s.log.Trace().Str("query", query).Msg("List")

	rows, err := s.handler.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "error executing query")
	}
	defer rows.Close()

	movies := make([]movieapi.Movie, 0)
	for rows.Next() {
		var m movieapi.Movie
		if err := rows.Scan(&m.ID, &m.Title, &m.Genre, &m.Year); err != nil {
			return nil, errors.Wrap(err, "error scanning row")
		}
		movies = append(movies, m)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "error iterating rows")
	}

	return movies, nil
}

// Get returns one movie or ErrMovieNotFound
func (s *Store) Get(ctx context.Context, id movieapi.ID) (*movieapi.Movie, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	return s.get(ctx, id)
}

func (s *Store) get(ctx context.Context, id movieapi.ID) (*movieapi.Movie, error) {
	query, args, err := s.squirrel.
		Select("id", "title", "genre", "year").
		From("movies").
		Where(sq.Eq{"id": id.String()}).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "error building query")
	}

	var m movieapi.Movie
	err = s.handler.QueryRowContext(ctx, query, args...).Scan(&m.ID, &m.Title, &m.Genre, &m.Year)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMovieNotFound
		}
		return nil, errors.Wrap(err, "error executing query")
	}

	return &m, nil
}

// Create inserts a movie under a fresh ksuid
func (s *Store) Create(ctx context.Context, input movieapi.MovieInput) (*movieapi.Movie, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	m := movieapi.Movie{
		ID:    movieapi.ID(ksuid.New().String()),
		Title: input.Title,
		Genre: input.Genre,
		Year:  input.Year,
	}

	query, args, err := s.squirrel.
		Insert("movies").
		Columns("id", "title", "genre", "year").
		Values(m.ID.String(), m.Title, m.Genre, m.Year).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "error building query")
	}

	s.log.Trace().Str("query", query).Interface("args", args).Msg("Create")

	if _, err := s.handler.ExecContext(ctx, query, args...); err != nil {
		return nil, errors.Wrap(err, "error executing query")
	}

	return &m, nil
}

// Replace overwrites every writable field of a movie
func (s *Store) Replace(ctx context.Context, id movieapi.ID, input movieapi.MovieInput) (*movieapi.Movie, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	query, args, err := s.squirrel.
		Update("movies").
		Set("title", input.Title).
		Set("genre", input.Genre).
		Set("year", input.Year).
		Set("updated_at", time.Now().UTC().Format(time.RFC3339)).
		Where(sq.Eq{"id": id.String()}).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "error building query")
	}

	s.log.Trace().Str("query", query).Interface("args", args).Msg("Replace")

	res, err := s.handler.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "error executing query")
	}

	if err := requireAffected(res); err != nil {
		return nil, err
	}

	return &movieapi.Movie{ID: id, Title: input.Title, Genre: input.Genre, Year: input.Year}, nil
}

// Delete removes a movie
func (s *Store) Delete(ctx context.Context, id movieapi.ID) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	query, args, err := s.squirrel.
		Delete("movies").
		Where(sq.Eq{"id": id.String()}).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "error building query")
	}

	s.log.Trace().Str("query", query).Interface("args", args).Msg("Delete")

	res, err := s.handler.ExecContext(ctx, query, args...)
	if err != nil {
		return errors.Wrap(err, "error executing query")
	}

	return requireAffected(res)
}

// Count returns the number of stored movies
func (s *Store) Count(ctx context.Context) (int, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	query, args, err := s.squirrel.Select("COUNT(*)").From("movies").ToSql()
	if err != nil {
		return 0, errors.Wrap(err, "error building query")
	}

	var n int
	if err := s.handler.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, errors.Wrap(err, "error executing query")
	}

	return n, nil
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "error reading affected rows")
	}
	if n == 0 {
		return ErrMovieNotFound
	}
	return nil
}
