package text

import (
	"errors"
	"strings"
)

// ErrEmptyText is returned when the input text is empty or whitespace-only.
var ErrEmptyText = errors.New("text is empty")

// PrepareSentence readies raw input for translation as a single sentence.
// Line breaks (CRLF, CR, LF) become spaces, surrounding whitespace is
// trimmed, and empty or whitespace-only input is rejected. Runs of inner
// spaces are kept as they are.
func PrepareSentence(s string) (string, error) {
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")
	s = strings.ReplaceAll(s, "\n", " ")

	s = strings.TrimSpace(s)

	if s == "" {
		return "", ErrEmptyText
	}

	return s, nil
}
