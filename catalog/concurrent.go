package catalog

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/s0up4200/cinelist/movieapi"
)

// deleteConcurrency caps in-flight DELETE requests in RemoveMany
const deleteConcurrency = 5

// BatchDeleteResult contains the results of a batch delete operation
type BatchDeleteResult struct {
	Requested  int
	Successful []movieapi.ID
	Failed     []DeleteError
}

// DeleteError contains information about a failed delete operation
type DeleteError struct {
	ID  movieapi.ID
	Err error
}

// Error implements the error interface
func (e DeleteError) Error() string {
	return fmt.Sprintf("failed to delete movie %s: %v", e.ID, e.Err)
}

// Unwrap returns the underlying request error
func (e DeleteError) Unwrap() error {
	return e.Err
}

// RemoveMany deletes several movies concurrently and then reloads once.
// Individual failures do not stop the others; each is logged and alerted.
func (c *Catalog) RemoveMany(ctx context.Context, ids []movieapi.ID) BatchDeleteResult {
	result := BatchDeleteResult{
		Requested: len(ids),
	}

	if len(ids) == 0 {
		return result
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(deleteConcurrency)

	var mu sync.Mutex
	for _, id := range ids {
		g.Go(func() error {
			err := c.api.DeleteMovie(gctx, id)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.Failed = append(result.Failed, DeleteError{ID: id, Err: err})
			} else {
				result.Successful = append(result.Successful, id)
			}
			return nil
		})
	}
	_ = g.Wait()

	c.logger.Info().
		Int("deleted", len(result.Successful)).
		Int("failed", len(result.Failed)).
		Msg("Deletion complete")

	for _, failure := range result.Failed {
		c.logger.Error().
			Err(failure.Err).
			Str("id", failure.ID.String()).
			Msg("Failed to delete movie")
		c.prompter.Alert(fmt.Sprintf("%s (%s)", msgDeleteFailed, failure.ID))
	}

	if len(result.Successful) > 0 {
		c.reload(ctx)
	}

	return result
}
