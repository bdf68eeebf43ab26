package movieapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ID is an opaque, server-assigned movie identifier.
//
// json-server hands out numeric ids while other backends use strings, so ID
// decodes from either and is always compared as a string.
type ID string

// String returns the identifier as text
func (id ID) String() string {
	return string(id)
}

// UnmarshalJSON accepts a JSON string or a JSON number
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}

	if data[0] == '"' {
		s, err := strconv.Unquote(string(data))
		if err != nil {
			return fmt.Errorf("%w: %s", ErrInvalidID, data)
		}
		*id = ID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidID, data)
	}
	*id = ID(n.String())
	return nil
}

// Movie is one catalog record as returned by the API
type Movie struct {
	ID    ID     `json:"id" yaml:"id,omitempty"`
	Title string `json:"title" yaml:"title"`
	Genre string `json:"genre" yaml:"genre"`
	Year  string `json:"year" yaml:"year"`
}

// Input returns the writable fields of the movie
func (m Movie) Input() MovieInput {
	return MovieInput{
		Title: m.Title,
		Genre: m.Genre,
		Year:  m.Year,
	}
}

// MovieInput is the request body for create and replace
type MovieInput struct {
	Title string `json:"title" yaml:"title"`
	Genre string `json:"genre" yaml:"genre"`
	Year  string `json:"year" yaml:"year"`
}
