package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// ErrNoAnswer is returned by a Script that has run out of answers.
var ErrNoAnswer = errors.New("no scripted answer left")

// Option is one choice in a Select question.
type Option struct {
	Label string
	Value string
}

// Prompter asks the user questions. Implementations block until an answer
// is available.
type Prompter interface {
	Confirm(message string, def bool) (bool, error)
	Input(message, def string) (string, error)
	Select(message string, options []Option) (string, error)
}

// IsInteractive reports whether f is attached to a terminal.
func IsInteractive(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// Terminal asks questions on a line-oriented reader/writer pair.
type Terminal struct {
	reader *bufio.Reader
	w      io.Writer
}

// NewTerminal returns a Terminal prompter reading answers from r.
func NewTerminal(r io.Reader, w io.Writer) *Terminal {
	return &Terminal{reader: bufio.NewReader(r), w: w}
}

func (t *Terminal) readLine() (string, error) {
	line, err := t.reader.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("reading answer: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// Confirm asks a yes/no question. An empty answer selects def.
func (t *Terminal) Confirm(message string, def bool) (bool, error) {
	hint := "y/N"
	if def {
		hint = "Y/n"
	}
	for {
		fmt.Fprintf(t.w, "? %s (%s) ", message, hint)
		answer, err := t.readLine()
		if err != nil {
			return false, err
		}
		switch strings.ToLower(answer) {
		case "":
			return def, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		fmt.Fprintln(t.w, "  Please answer yes or no.")
	}
}

// Input asks for free text. An empty answer selects def.
func (t *Terminal) Input(message, def string) (string, error) {
	if def != "" {
		fmt.Fprintf(t.w, "? %s (%s) ", message, def)
	} else {
		fmt.Fprintf(t.w, "? %s ", message)
	}
	answer, err := t.readLine()
	if err != nil {
		return "", err
	}
	if answer == "" {
		return def, nil
	}
	return answer, nil
}

// Select presents a numbered list and returns the chosen option's value.
func (t *Terminal) Select(message string, options []Option) (string, error) {
	if len(options) == 0 {
		return "", fmt.Errorf("no options to choose from for %q", message)
	}

	fmt.Fprintf(t.w, "? %s\n", message)
	for i, o := range options {
		fmt.Fprintf(t.w, "  %d) %s\n", i+1, o.Label)
	}
	fmt.Fprintf(t.w, "Enter number [1-%d]: ", len(options))

	line, err := t.readLine()
	if err != nil {
		return "", err
	}

	num, err := strconv.Atoi(line)
	if err != nil || num < 1 || num > len(options) {
		return "", fmt.Errorf("invalid selection %q: choose 1-%d", line, len(options))
	}
	return options[num-1].Value, nil
}

// Defaults answers every question without user input: inputs take their
// default, selects take the first option, and confirmations are declined so
// nothing is downloaded without a human saying yes.
type Defaults struct{}

func (Defaults) Confirm(string, bool) (bool, error) { return false, nil }

func (Defaults) Input(_ string, def string) (string, error) { return def, nil }

func (Defaults) Select(message string, options []Option) (string, error) {
	if len(options) == 0 {
		return "", fmt.Errorf("no options to choose from for %q", message)
	}
	return options[0].Value, nil
}

// Script replays canned answers in order and records every question asked.
// Confirm answers are "y"/"n" ("" means the default), Input answers are the
// raw text ("" means the default) and Select answers are option values.
type Script struct {
	Answers []string
	Asked   []string
}

// NewScript returns a Script that will reply with answers in order.
func NewScript(answers ...string) *Script {
	return &Script{Answers: answers}
}

func (s *Script) next(message string) (string, error) {
	s.Asked = append(s.Asked, message)
	if len(s.Answers) == 0 {
		return "", fmt.Errorf("%w for %q", ErrNoAnswer, message)
	}
	a := s.Answers[0]
	s.Answers = s.Answers[1:]
	return a, nil
}

func (s *Script) Confirm(message string, def bool) (bool, error) {
	a, err := s.next(message)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(a) {
	case "":
		return def, nil
	case "y", "yes":
		return true, nil
	case "n", "no":
		return false, nil
	}
	return false, fmt.Errorf("scripted confirm answer %q is not y/n", a)
}

func (s *Script) Input(message, def string) (string, error) {
	a, err := s.next(message)
	if err != nil {
		return "", err
	}
	if a == "" {
		return def, nil
	}
	return a, nil
}

func (s *Script) Select(message string, options []Option) (string, error) {
	a, err := s.next(message)
	if err != nil {
		return "", err
	}
	for _, o := range options {
		if o.Value == a {
			return a, nil
		}
	}
	return "", fmt.Errorf("scripted selection %q is not one of the offered options", a)
}
