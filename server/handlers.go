package server

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"

	"github.com/s0up4200/cinelist/movieapi"
)

const maxBodyBytes = 1 << 20

type envelope map[string]any

func (s *Server) healthcheckHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Ping(r.Context()); err != nil {
		s.errorResponse(w, r, http.StatusServiceUnavailable, "database unavailable")
		return
	}
	s.writeJSON(w, http.StatusOK, envelope{"status": "available"})
}

func (s *Server) listMoviesHandler(w http.ResponseWriter, r *http.Request) {
	movies, err := s.store.List(r.Context())
	if err != nil {
		s.serverErrorResponse(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, movies)
}

func (s *Server) showMovieHandler(w http.ResponseWriter, r *http.Request) {
	movie, err := s.store.Get(r.Context(), readID(r))
	if err != nil {
		s.storeErrorResponse(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, movie)
}

func (s *Server) createMovieHandler(w http.ResponseWriter, r *http.Request) {
	var input movieapi.MovieInput
	if err := s.readJSON(w, r, &input); err != nil {
		s.errorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	movie, err := s.store.Create(r.Context(), input)
	if err != nil {
		s.serverErrorResponse(w, r, err)
		return
	}

	w.Header().Set("Location", "/movies/"+movie.ID.String())
	s.writeJSON(w, http.StatusCreated, movie)
}

func (s *Server) replaceMovieHandler(w http.ResponseWriter, r *http.Request) {
	var input movieapi.MovieInput
	if err := s.readJSON(w, r, &input); err != nil {
		s.errorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	movie, err := s.store.Replace(r.Context(), readID(r), input)
	if err != nil {
		s.storeErrorResponse(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, movie)
}

func (s *Server) deleteMovieHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), readID(r)); err != nil {
		s.storeErrorResponse(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, envelope{})
}

func readID(r *http.Request) movieapi.ID {
	return movieapi.ID(httprouter.ParamsFromContext(r.Context()).ByName("id"))
}

// readJSON decodes a single JSON value from a size-limited body
func (s *Server) readJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("body must not be empty")
		}
		return errors.Wrap(err, "body contains badly-formed JSON")
	}

	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("body must only contain a single JSON value")
	}

	return nil
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	js, err := json.Marshal(data)
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to encode response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(append(js, '\n'))
}

func (s *Server) errorResponse(w http.ResponseWriter, r *http.Request, status int, message string) {
	s.writeJSON(w, status, envelope{"error": message})
}

func (s *Server) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	s.log.Error().Err(err).Str("method", r.Method).Str("path", r.URL.Path).Msg("Request failed")
	s.errorResponse(w, r, http.StatusInternalServerError, "the server encountered a problem and could not process your request")
}

func (s *Server) storeErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, ErrMovieNotFound) {
		s.notFoundResponse(w, r)
		return
	}
	s.serverErrorResponse(w, r, err)
}

func (s *Server) notFoundResponse(w http.ResponseWriter, r *http.Request) {
	s.errorResponse(w, r, http.StatusNotFound, "the requested resource could not be found")
}

func (s *Server) methodNotAllowedResponse(w http.ResponseWriter, r *http.Request) {
	s.errorResponse(w, r, http.StatusMethodNotAllowed, "the "+r.Method+" method is not supported for this resource")
}
