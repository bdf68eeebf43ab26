package catalog

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/s0up4200/cinelist/movieapi"
)

// Placeholders shown in place of the list
const (
	EmptyPlaceholder = "No movies found. Try a different search or add a new movie."
	ErrorPlaceholder = "Error loading movies. Please check if the movie API is running."
)

// Renderer projects records onto an output. Implementations must be pure
// functions of their input so rendering twice yields identical output.
type Renderer interface {
	Render(w io.Writer, records []movieapi.Movie) error
	RenderError(w io.Writer, message string) error
}

// ConsoleFormatter draws the list as a tree for terminal display. Every
// record carries edit and delete tags holding its ID.
type ConsoleFormatter struct{}

// NewConsoleFormatter creates a new console formatter
func NewConsoleFormatter() *ConsoleFormatter {
	return &ConsoleFormatter{}
}

// Render writes a fresh block for records, replacing whatever was shown before
func (f *ConsoleFormatter) Render(w io.Writer, records []movieapi.Movie) error {
	_, err := io.WriteString(w, f.Format(records))
	return err
}

// RenderError writes the load failure placeholder
func (f *ConsoleFormatter) RenderError(w io.Writer, message string) error {
	if message == "" {
		message = ErrorPlaceholder
	}
	_, err := fmt.Fprintf(w, "\n%s\n\n", message)
	return err
}

// Format returns the rendered block as a string
func (f *ConsoleFormatter) Format(records []movieapi.Movie) string {
	if len(records) == 0 {
		return "\n" + EmptyPlaceholder + "\n\n"
	}

	var sb strings.Builder

	sb.WriteString("\nMovie")
	if len(records) != 1 {
		sb.WriteString("s")
	}
	fmt.Fprintf(&sb, " (%d):\n\n", len(records))

	for i, movie := range records {
		isLast := i == len(records)-1
		f.formatMovie(&sb, movie, isLast)

		if !isLast {
			sb.WriteString("│\n")
		}
	}

	sb.WriteString("\n")
	return sb.String()
}

func (f *ConsoleFormatter) formatMovie(sb *strings.Builder, movie movieapi.Movie, isLast bool) {
	prefix := "├"
	indent := "│   "
	if isLast {
		prefix = "╰"
		indent = "    "
	}

	fmt.Fprintf(sb, "%s── %s\n", prefix, movie.Title)
	fmt.Fprintf(sb, "%sGenre: %s\n", indent, movie.Genre)
	fmt.Fprintf(sb, "%sYear: %s\n", indent, movie.Year)

	fmt.Fprintf(sb, "%s[edit %s] [delete %s]\n", indent, movie.ID, movie.ID)
}

// JSONFormatter renders records as an indented JSON array for scripting
type JSONFormatter struct{}

// Render writes records as JSON; an empty list is written as []
func (JSONFormatter) Render(w io.Writer, records []movieapi.Movie) error {
	if records == nil {
		records = []movieapi.Movie{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

// RenderError writes the failure as a JSON object
func (JSONFormatter) RenderError(w io.Writer, message string) error {
	if message == "" {
		message = ErrorPlaceholder
	}
	return json.NewEncoder(w).Encode(map[string]string{"error": message})
}
