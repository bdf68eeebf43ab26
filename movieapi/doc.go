// Package movieapi provides a client for a movie catalog REST API.
//
// The API is a plain resource collection at /movies, as served by json-server
// or by the reference server in this repository (cinelist serve).
//
// # Usage
//
//	logger := zerolog.New(os.Stderr)
//	client, err := movieapi.NewClient(
//		"http://localhost:3000",
//		logger,
//		movieapi.WithTimeout(30*time.Second),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	movies, err := client.ListMovies(ctx)
//
// # Error Handling
//
// Any non-2xx response is returned as an *APIError carrying the status code
// and the response body:
//
//	var apiErr *movieapi.APIError
//	if errors.As(err, &apiErr) && apiErr.IsNotFound() {
//		// the movie was removed by someone else
//	}
//
// Transport failures are returned wrapped, so errors.Is works against
// context.Canceled and friends.
package movieapi
