// Package prompt reads interactive answers from any line-oriented input.
package prompt

import (
	"bufio"
	stderrors "errors"
	"fmt"
	"io"
	"strings"
)

// ErrInputClosed is returned when input ends before a required answer is given.
var ErrInputClosed = stderrors.New("input closed")

// Kind selects how an answer is read.
type Kind int

const (
	// Line reads a single line.
	Line Kind = iota
	// Multiline reads lines until Terminator or end of input.
	Multiline
)

// Terminator ends a Multiline answer when entered alone on a line.
const Terminator = "."

// Field describes one question.
type Field struct {
	Name     string
	Label    string
	Kind     Kind
	Required bool   // re-ask until the trimmed answer is non-empty
	Default  string // used when the trimmed answer is empty
}

// Prompter asks questions on out and reads answers from in.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// New creates a Prompter.
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// Ask prints the field's label and returns its answer. Line answers are
// trimmed; Multiline answers keep their inner formatting.
func (p *Prompter) Ask(f Field) (string, error) {
	for {
		fmt.Fprint(p.out, label(f))

		var (
			answer string
			err    error
		)
		if f.Kind == Multiline {
			answer, err = p.readBlock()
		} else {
			answer, err = p.readLine()
			answer = strings.TrimSpace(answer)
		}
		closed := stderrors.Is(err, io.EOF)
		if err != nil && !closed {
			return "", err
		}

		if strings.TrimSpace(answer) == "" {
			if f.Required {
				if closed {
					return "", fmt.Errorf("%s: %w", f.Name, ErrInputClosed)
				}
				fmt.Fprintf(p.out, "%s is required.\n", f.Label)
				continue
			}
			return f.Default, nil
		}
		return answer, nil
	}
}

// Collect asks every field in order and returns answers keyed by Field.Name.
func (p *Prompter) Collect(fields []Field) (map[string]string, error) {
	answers := make(map[string]string, len(fields))
	for _, f := range fields {
		answer, err := p.Ask(f)
		if err != nil {
			return nil, err
		}
		answers[f.Name] = answer
	}
	return answers, nil
}

// readLine returns the next line without its line ending. io.EOF is returned
// only when nothing was read.
func (p *Prompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil && !(stderrors.Is(err, io.EOF) && line != "") {
		return line, err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// readBlock reads lines until Terminator or end of input.
func (p *Prompter) readBlock() (string, error) {
	var lines []string
	for {
		line, err := p.readLine()
		if err != nil {
			if stderrors.Is(err, io.EOF) && len(lines) > 0 {
				return strings.Join(lines, "\n"), nil
			}
			return strings.Join(lines, "\n"), err
		}
		if strings.TrimSpace(line) == Terminator {
			return strings.Join(lines, "\n"), nil
		}
		lines = append(lines, line)
	}
}

func label(f Field) string {
	switch {
	case f.Kind == Multiline:
		return fmt.Sprintf("%s (end with a line containing only %q):\n", f.Label, Terminator)
	case f.Default != "":
		return fmt.Sprintf("%s [%s]: ", f.Label, f.Default)
	default:
		return f.Label + ": "
	}
}
