package movieapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog"
)

const moviesPath = "/movies"

// Client represents a movie API client
type Client struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
	logger     zerolog.Logger
}

// NewClient creates a new movie API client. It does not contact the server;
// use TestConnection for that.
func NewClient(baseURL string, logger zerolog.Logger, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("%w: base URL is required", ErrInvalidConfig)
	}

	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: invalid base URL %q", ErrInvalidConfig, baseURL)
	}

	client := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{},
		userAgent:  "cinelist",
		logger:     logger.With().Str("module", "movieapi").Logger(),
	}

	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}

// BaseURL returns the normalized API root
func (c *Client) BaseURL() string {
	return c.baseURL
}

// doRequest performs an HTTP request and returns the body of a 2xx response
func (c *Client) doRequest(ctx context.Context, method, endpoint string, payload any) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		buf, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	c.logger.Debug().
		Str("method", method).
		Str("endpoint", endpoint).
		Msg("Making movie API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{
			Method:     method,
			Path:       endpoint,
			StatusCode: resp.StatusCode,
			Message:    http.StatusText(resp.StatusCode),
			Body:       strings.TrimSpace(string(respBody)),
		}
	}

	return respBody, nil
}

func moviePath(id ID) string {
	return moviesPath + "/" + url.PathEscape(id.String())
}

// TestConnection checks that the collection endpoint answers
func (c *Client) TestConnection(ctx context.Context) error {
	_, err := c.doRequest(ctx, http.MethodGet, moviesPath, nil)
	return err
}

// ListMovies retrieves the full movie collection
func (c *Client) ListMovies(ctx context.Context) ([]Movie, error) {
	body, err := c.doRequest(ctx, http.MethodGet, moviesPath, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list movies: %w", err)
	}

	var movies []Movie
	if err := json.Unmarshal(body, &movies); err != nil {
		return nil, fmt.Errorf("failed to parse movie list: %w", err)
	}
	if movies == nil {
		movies = []Movie{}
	}

	c.logger.Debug().Int("count", len(movies)).Msg("Retrieved movies")
	return movies, nil
}

// CreateMovie adds a movie to the collection
func (c *Client) CreateMovie(ctx context.Context, input MovieInput) (*Movie, error) {
	body, err := c.doRequest(ctx, http.MethodPost, moviesPath, input)
	if err != nil {
		return nil, fmt.Errorf("failed to create movie: %w", err)
	}

	movie, err := decodeMovie(body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse created movie: %w", err)
	}

	c.logger.Info().Str("id", movie.ID.String()).Str("title", movie.Title).Msg("Created movie")
	return movie, nil
}

// ReplaceMovie overwrites a movie with the given field values
func (c *Client) ReplaceMovie(ctx context.Context, id ID, input MovieInput) (*Movie, error) {
	body, err := c.doRequest(ctx, http.MethodPut, moviePath(id), input)
	if err != nil {
		return nil, fmt.Errorf("failed to replace movie %s: %w", id, err)
	}

	movie, err := decodeMovie(body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse replaced movie: %w", err)
	}
	if movie.ID == "" {
		movie.ID = id
	}

	c.logger.Info().Str("id", id.String()).Str("title", movie.Title).Msg("Replaced movie")
	return movie, nil
}

// DeleteMovie removes a movie from the collection. The response body is ignored.
func (c *Client) DeleteMovie(ctx context.Context, id ID) error {
	if _, err := c.doRequest(ctx, http.MethodDelete, moviePath(id), nil); err != nil {
		return fmt.Errorf("failed to delete movie %s: %w", id, err)
	}

	c.logger.Info().Str("id", id.String()).Msg("Deleted movie")
	return nil
}

// decodeMovie tolerates an empty body, which some servers send on PUT
func decodeMovie(body []byte) (*Movie, error) {
	var movie Movie
	if len(bytes.TrimSpace(body)) == 0 {
		return &movie, nil
	}
	if err := json.Unmarshal(body, &movie); err != nil {
		return nil, err
	}
	return &movie, nil
}
