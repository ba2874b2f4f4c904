package prompt

import (
	"errors"
	"io"

	"github.com/manifoldco/promptui"
)

// Terminal implements Prompter with arrow-key menus drawn by promptui.
type Terminal struct {
	Stdin  io.ReadCloser
	Stdout io.WriteCloser
}

// NewTerminal returns a Terminal bound to the process stdin/stdout.
func NewTerminal() *Terminal {
	return &Terminal{}
}

func (t *Terminal) Input(label, def string, validate func(string) error) (string, error) {
	p := promptui.Prompt{
		Label:     label,
		Default:   def,
		AllowEdit: def != "",
		Stdin:     t.Stdin,
		Stdout:    t.Stdout,
	}
	if validate != nil {
		p.Validate = promptui.ValidateFunc(validate)
	}
	value, err := p.Run()
	if err != nil {
		return "", mapError("input", err)
	}
	return value, nil
}

func (t *Terminal) Select(label string, items []string, defaultIndex int) (int, error) {
	if len(items) == 0 {
		return 0, ErrNoItems
	}
	s := promptui.Select{
		Label:     label,
		Items:     items,
		CursorPos: clampIndex(defaultIndex, len(items)),
		Size:      len(items),
		HideHelp:  true,
		Stdin:     t.Stdin,
		Stdout:    t.Stdout,
	}
	idx, _, err := s.Run()
	if err != nil {
		return 0, mapError("select", err)
	}
	return idx, nil
}

func (t *Terminal) Confirm(label string, def bool) (bool, error) {
	items := []string{"Yes", "No"}
	cursor := 1
	if def {
		cursor = 0
	}
	idx, err := t.Select(label, items, cursor)
	if err != nil {
		return false, err
	}
	return idx == 0, nil
}

func mapError(operation string, err error) error {
	if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) || errors.Is(err, promptui.ErrAbort) {
		return cancelled(operation, err)
	}
	return err
}
