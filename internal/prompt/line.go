package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Line implements Prompter over plain line-oriented streams. It is used when
// stdin is not a terminal (pipes, CI) where cursor-driven menus cannot draw.
type Line struct {
	in  *bufio.Reader
	out io.Writer
}

// NewLine returns a Line prompter reading answers from r and writing prompts to w.
func NewLine(r io.Reader, w io.Writer) *Line {
	return &Line{in: bufio.NewReader(r), out: w}
}

func (l *Line) Input(label, def string, validate func(string) error) (string, error) {
	for {
		if def != "" {
			fmt.Fprintf(l.out, "%s [%s]: ", label, def)
		} else {
			fmt.Fprintf(l.out, "%s: ", label)
		}
		answer, err := l.readLine("input")
		if err != nil {
			return "", err
		}
		if answer == "" {
			answer = def
		}
		if validate != nil {
			if verr := validate(answer); verr != nil {
				fmt.Fprintf(l.out, "  %v\n", verr)
				continue
			}
		}
		return answer, nil
	}
}

func (l *Line) Select(label string, items []string, defaultIndex int) (int, error) {
	if len(items) == 0 {
		return 0, ErrNoItems
	}
	defaultIndex = clampIndex(defaultIndex, len(items))
	for {
		fmt.Fprintln(l.out, label)
		for i, item := range items {
			marker := " "
			if i == defaultIndex {
				marker = "*"
			}
			fmt.Fprintf(l.out, " %s %d) %s\n", marker, i+1, item)
		}
		fmt.Fprintf(l.out, "Choose [%d]: ", defaultIndex+1)
		answer, err := l.readLine("select")
		if err != nil {
			return 0, err
		}
		if answer == "" {
			return defaultIndex, nil
		}
		n, convErr := strconv.Atoi(answer)
		if convErr == nil && n >= 1 && n <= len(items) {
			return n - 1, nil
		}
		if idx := matchItem(items, answer); idx >= 0 {
			return idx, nil
		}
		fmt.Fprintf(l.out, "  enter a number between 1 and %d\n", len(items))
	}
}

func (l *Line) Confirm(label string, def bool) (bool, error) {
	hint := "y/N"
	if def {
		hint = "Y/n"
	}
	for {
		fmt.Fprintf(l.out, "%s [%s]: ", label, hint)
		answer, err := l.readLine("confirm")
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
		fmt.Fprintln(l.out, "  answer yes or no")
	}
}

// readLine returns the trimmed next line. EOF before any input cancels.
func (l *Line) readLine(operation string) (string, error) {
	text, err := l.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && text != "" {
			return strings.TrimSpace(text), nil
		}
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(l.out)
			return "", cancelled(operation, err)
		}
		return "", err
	}
	return strings.TrimSpace(text), nil
}

func matchItem(items []string, answer string) int {
	for i, item := range items {
		if strings.EqualFold(item, answer) {
			return i
		}
	}
	return -1
}
