package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

type statusKind int

const (
	statusOK statusKind = iota
	statusWarn
	statusError
)

const statusLabelWidth = 16

// statusPainter renders "label: [OK] message" lines, colouring them on a TTY.
type statusPainter struct {
	ok   *color.Color
	warn *color.Color
	bad  *color.Color
}

func newStatusPainter(w io.Writer) statusPainter {
	p := statusPainter{
		ok:   color.New(color.FgGreen),
		warn: color.New(color.FgYellow),
		bad:  color.New(color.FgRed),
	}
	if !shouldColorize(w) {
		p.ok.DisableColor()
		p.warn.DisableColor()
		p.bad.DisableColor()
	}
	return p
}

func (p statusPainter) line(label string, kind statusKind, message string) string {
	var tag string
	var c *color.Color
	switch kind {
	case statusOK:
		tag, c = "OK", p.ok
	case statusWarn:
		tag, c = "WARN", p.warn
	default:
		tag, c = "MISSING", p.bad
	}
	text := fmt.Sprintf("  %-*s [%s]", statusLabelWidth, label+":", tag)
	if message != "" {
		text += " " + message
	}
	return c.Sprint(text)
}

func shouldColorize(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isTerminal(f)
}
