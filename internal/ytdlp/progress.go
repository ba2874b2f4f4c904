package ytdlp

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// Progress is a snapshot of a running download.
type Progress struct {
	Percent float64
	Item    int
	Items   int
	Message string
}

type eventKind int

const (
	eventNone eventKind = iota
	eventPercent
	eventItem
	eventDestination
	eventFile
	eventError
)

type event struct {
	kind    eventKind
	percent float64
	item    int
	items   int
	text    string
}

var (
	percentPattern     = regexp.MustCompile(`^\[download\]\s+(\d+(?:\.\d+)?)%\s*(.*)$`)
	itemPattern        = regexp.MustCompile(`^\[download\] Downloading (?:item|video) (\d+) of (\d+)`)
	destinationPattern = regexp.MustCompile(`^\[download\] Destination: (.+)$`)
	extractPattern     = regexp.MustCompile(`^\[ExtractAudio\] Destination: (.+)$`)
	unchangedPattern   = regexp.MustCompile(`^\[ExtractAudio\] Not converting audio (.+?); file is already in target format`)
)

func parseLine(line string) event {
	line = strings.TrimSpace(line)
	switch {
	case line == "":
		return event{}
	case strings.HasPrefix(line, "ERROR:"):
		return event{kind: eventError, text: line}
	}
	if m := percentPattern.FindStringSubmatch(line); m != nil {
		pct, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return event{}
		}
		return event{kind: eventPercent, percent: pct, text: strings.Join(strings.Fields(m[2]), " ")}
	}
	if m := itemPattern.FindStringSubmatch(line); m != nil {
		item, _ := strconv.Atoi(m[1])
		items, _ := strconv.Atoi(m[2])
		return event{kind: eventItem, item: item, items: items}
	}
	if m := extractPattern.FindStringSubmatch(line); m != nil {
		return event{kind: eventFile, text: m[1]}
	}
	if m := unchangedPattern.FindStringSubmatch(line); m != nil {
		return event{kind: eventFile, text: m[1]}
	}
	if m := destinationPattern.FindStringSubmatch(line); m != nil {
		return event{kind: eventDestination, text: filepath.Base(m[1])}
	}
	return event{}
}

// Describe renders the snapshot for the spinner line.
func (p Progress) Describe() string {
	var b strings.Builder
	if p.Items > 1 {
		b.WriteString("[")
		b.WriteString(strconv.Itoa(p.Item))
		b.WriteString("/")
		b.WriteString(strconv.Itoa(p.Items))
		b.WriteString("] ")
	}
	if p.Message != "" {
		b.WriteString(p.Message)
	} else {
		b.WriteString("Downloading...")
	}
	if p.Percent > 0 {
		b.WriteString(" ")
		b.WriteString(strconv.FormatFloat(p.Percent, 'f', 1, 64))
		b.WriteString("%")
	}
	return b.String()
}
