package catalog

import (
	"strconv"
	"strings"

	"github.com/s0up4200/cinelist/movieapi"
)

const (
	// MinYear and MaxYear bound the accepted release year, inclusive
	MinYear = 1900
	MaxYear = 2025

	// DefaultGenre replaces a blank genre
	DefaultGenre = "Not specified"
)

// User-facing messages shown through the Prompter
const (
	msgRequired     = "Title and Year are required!"
	msgInvalidYear  = "Please enter a valid year between 1900 and 2025"
	msgNotFound     = "Movie not found!"
	msgConfirmDel   = "Are you sure you want to delete this movie?"
	msgAddFailed    = "Failed to add movie. Please try again."
	msgUpdateFailed = "Failed to update movie."
	msgDeleteFailed = "Failed to delete movie."
)

// Draft holds the raw form fields for a new or edited movie
type Draft struct {
	Title string
	Genre string
	Year  string
}

// Reset clears every field
func (d *Draft) Reset() {
	*d = Draft{}
}

// Validate trims the draft and turns it into a request body.
//
// Title and year are required, the year must be an integer in
// [MinYear, MaxYear] and is sent in canonical decimal form, and a blank genre
// becomes DefaultGenre.
func (d Draft) Validate() (movieapi.MovieInput, error) {
	title := strings.TrimSpace(d.Title)
	genre := strings.TrimSpace(d.Genre)
	year := strings.TrimSpace(d.Year)

	if title == "" {
		return movieapi.MovieInput{}, &ValidationError{Field: "title", Reason: msgRequired}
	}
	if year == "" {
		return movieapi.MovieInput{}, &ValidationError{Field: "year", Reason: msgRequired}
	}

	n, err := strconv.Atoi(year)
	if err != nil || n < MinYear || n > MaxYear {
		return movieapi.MovieInput{}, &ValidationError{Field: "year", Reason: msgInvalidYear}
	}

	if genre == "" {
		genre = DefaultGenre
	}

	return movieapi.MovieInput{
		Title: title,
		Genre: genre,
		Year:  strconv.Itoa(n),
	}, nil
}

// DraftFrom pre-fills a draft with a record's current values
func DraftFrom(m movieapi.Movie) Draft {
	return Draft{Title: m.Title, Genre: m.Genre, Year: m.Year}
}
