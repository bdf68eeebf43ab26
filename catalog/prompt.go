package catalog

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Prompter provides the blocking dialogs the interaction layer relies on
type Prompter interface {
	// Alert shows a message and waits for nothing
	Alert(message string)
	// Confirm asks a yes/no question
	Confirm(message string) bool
	// Prompt asks for a line of text pre-filled with def. ok is false when
	// the user cancelled, which is distinct from submitting an empty string.
	Prompt(label, def string) (value string, ok bool)
}

// Inputs recognised by TerminalPrompter.Prompt
const (
	CancelInput = ":cancel"
	ClearInput  = ":clear"
)

// TerminalPrompter implements Prompter on a line-oriented terminal.
//
// In Prompt, an empty line keeps the default, ClearInput submits an empty
// string, and CancelInput or end of input cancels.
type TerminalPrompter struct {
	scanner *bufio.Scanner
	out     io.Writer

	// AssumeYes answers every confirmation with yes
	AssumeYes bool
}

// NewTerminalPrompter reads answers from in and writes questions to out
func NewTerminalPrompter(in io.Reader, out io.Writer) *TerminalPrompter {
	return &TerminalPrompter{
		scanner: bufio.NewScanner(in),
		out:     out,
	}
}

// Alert prints the message on its own line
func (p *TerminalPrompter) Alert(message string) {
	fmt.Fprintf(p.out, "✗ %s\n", message)
}

// Confirm asks a [y/N] question; anything but y or yes is a no
func (p *TerminalPrompter) Confirm(message string) bool {
	if p.AssumeYes {
		return true
	}

	fmt.Fprintf(p.out, "%s [y/N]: ", message)
	line, ok := p.readLine()
	if !ok {
		fmt.Fprintln(p.out)
		return false
	}

	response := strings.ToLower(strings.TrimSpace(line))
	return response == "y" || response == "yes"
}

// Prompt asks for a value, showing a non-empty def in brackets
func (p *TerminalPrompter) Prompt(label, def string) (string, bool) {
	if def == "" {
		fmt.Fprintf(p.out, "%s: ", label)
	} else {
		fmt.Fprintf(p.out, "%s [%s]: ", label, def)
	}
	line, ok := p.readLine()
	if !ok {
		fmt.Fprintln(p.out)
		return "", false
	}

	switch strings.TrimSpace(line) {
	case CancelInput:
		return "", false
	case ClearInput:
		return "", true
	case "":
		return def, true
	default:
		return line, true
	}
}

// ReadLine reads one raw line of input; ok is false at end of input
func (p *TerminalPrompter) ReadLine() (string, bool) {
	return p.readLine()
}

func (p *TerminalPrompter) readLine() (string, bool) {
	if !p.scanner.Scan() {
		return "", false
	}
	return p.scanner.Text(), true
}
