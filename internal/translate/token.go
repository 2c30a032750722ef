package translate

import "strings"

// punctuation is the set of marks split off a token.
const punctuation = ".,\\/#!?$%^&*;:{}=-_`~()"

// Token is one space-delimited piece of a sentence.
type Token struct {
	Raw         string
	Word        string
	Punctuation string
}

// Tokenize splits sentence on single spaces. Consecutive spaces produce
// empty tokens; nothing is trimmed.
func Tokenize(sentence string) []string {
	return strings.Split(sentence, " ")
}

// Split separates the first punctuation mark in raw from its word body.
// Every occurrence of that mark is removed from the body. When nothing but
// punctuation would remain, the whole token is kept as the body and no mark
// is reported, so the body is non-empty whenever raw is.
func Split(raw string) Token {
	i := strings.IndexAny(raw, punctuation)
	if i < 0 {
		return Token{Raw: raw, Word: raw}
	}

	// All marks are single-byte ASCII.
	mark := raw[i : i+1]
	body := strings.ReplaceAll(raw, mark, "")
	if body == "" {
		return Token{Raw: raw, Word: raw}
	}
	return Token{Raw: raw, Word: body, Punctuation: mark}
}
