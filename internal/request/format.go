package request

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Format is a target audio format understood by the download tool.
type Format string

const (
	FormatMP3  Format = "mp3"
	FormatWAV  Format = "wav"
	FormatM4A  Format = "m4a"
	FormatAAC  Format = "aac"
	FormatFLAC Format = "flac"
)

// DefaultFormat is used when neither config nor flags pick one.
const DefaultFormat = FormatMP3

var allFormats = []Format{FormatMP3, FormatWAV, FormatM4A, FormatAAC, FormatFLAC}

var upper = cases.Upper(language.Und)

// Formats returns the supported formats in menu order.
func Formats() []Format {
	out := make([]Format, len(allFormats))
	copy(out, allFormats)
	return out
}

// ParseFormat resolves user input such as "MP3", ".flac" or " m4a ".
func ParseFormat(value string) (Format, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	normalized = strings.TrimPrefix(normalized, ".")
	for _, f := range allFormats {
		if string(f) == normalized {
			return f, nil
		}
	}
	return "", fmt.Errorf("unsupported audio format %q (choose one of %s)", value, strings.Join(FormatNames(), ", "))
}

// FormatNames lists the codec names of every supported format.
func FormatNames() []string {
	names := make([]string, 0, len(allFormats))
	for _, f := range allFormats {
		names = append(names, string(f))
	}
	return names
}

// Valid reports whether f is one of the supported formats.
func (f Format) Valid() bool {
	for _, candidate := range allFormats {
		if f == candidate {
			return true
		}
	}
	return false
}

// String returns the codec name passed to the download tool.
func (f Format) String() string {
	return string(f)
}

// Label returns the display name used in menus.
func (f Format) Label() string {
	return upper.String(string(f))
}

// Extension returns the file extension produced for the format.
func (f Format) Extension() string {
	return "." + string(f)
}

// SupportsThumbnail reports whether the transcoder can embed cover art into
// files of this format.
func (f Format) SupportsThumbnail() bool {
	switch f {
	case FormatMP3, FormatM4A, FormatFLAC:
		return true
	default:
		return false
	}
}
