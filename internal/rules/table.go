// Package rules holds the substitution data that drives a translation:
// the word dictionary, ordered suffix/prefix/substring rewrites, the ignore
// list and the punctuation pools.
//
// A Table is built once by one of the loaders (Parse, ParseTOML, Load,
// Default), validated, and then only read. It is safe to share a Table
// between goroutines.
package rules

import (
	"errors"
	"strings"
)

// ErrInvalidTable is wrapped by every validation failure.
var ErrInvalidTable = errors.New("invalid rule table")

// Rule is a single (pattern, replacement) rewrite.
type Rule struct {
	Pattern     string `json:"pattern"`
	Replacement string `json:"replacement"`
}

// PunctuationKind selects one of the punctuation pools.
type PunctuationKind int

const (
	Dot PunctuationKind = iota
	ExclamationMark
	QuestionMark
)

// KindOf maps a punctuation mark to its pool kind.
func KindOf(mark string) (PunctuationKind, bool) {
	switch mark {
	case ".":
		return Dot, true
	case "!":
		return ExclamationMark, true
	case "?":
		return QuestionMark, true
	default:
		return 0, false
	}
}

// Table is the immutable rule table. Fields must not be modified after a
// loader has returned it.
type Table struct {
	// Dictionary maps an exact, case-sensitive word to its candidates.
	Dictionary map[string][]string
	// Suffixes are applied to words ending with Pattern, in order.
	Suffixes []Rule
	// Twists replace every occurrence of Pattern, in order.
	Twists []Rule
	// Prefixes are scanned in order; only the first match applies.
	Prefixes []Rule
	// Ignored holds lower-cased words exempt from any rewriting.
	Ignored map[string]struct{}

	Dot             []string
	ExclamationMark []string
	QuestionMark    []string

	// QuotationMark replaces a leading double quote.
	QuotationMark string
	// Interlude is the optional fragment appended to random words.
	Interlude string
}

// Translations returns the dictionary candidates for word.
func (t *Table) Translations(word string) ([]string, bool) {
	c, ok := t.Dictionary[word]
	if !ok || len(c) == 0 {
		return nil, false
	}
	return c, true
}

// IsIgnored reports whether word is on the ignore list, ignoring case.
func (t *Table) IsIgnored(word string) bool {
	_, ok := t.Ignored[strings.ToLower(word)]
	return ok
}

// Pool returns the replacement pool for kind.
func (t *Table) Pool(kind PunctuationKind) []string {
	switch kind {
	case Dot:
		return t.Dot
	case ExclamationMark:
		return t.ExclamationMark
	case QuestionMark:
		return t.QuestionMark
	default:
		return nil
	}
}

// Stats summarises the size of each table section.
type Stats struct {
	Dictionary      int  `json:"dictionary"`
	Candidates      int  `json:"candidates"`
	Suffixes        int  `json:"suffixes"`
	Twists          int  `json:"twists"`
	Prefixes        int  `json:"prefixes"`
	Ignored         int  `json:"ignored"`
	Dot             int  `json:"dot"`
	ExclamationMark int  `json:"exclamation_mark"`
	QuestionMark    int  `json:"question_mark"`
	Interlude       bool `json:"interlude"`
}

// Stats returns section counts for t.
func (t *Table) Stats() Stats {
	s := Stats{
		Dictionary:      len(t.Dictionary),
		Suffixes:        len(t.Suffixes),
		Twists:          len(t.Twists),
		Prefixes:        len(t.Prefixes),
		Ignored:         len(t.Ignored),
		Dot:             len(t.Dot),
		ExclamationMark: len(t.ExclamationMark),
		QuestionMark:    len(t.QuestionMark),
		Interlude:       t.Interlude != "",
	}
	for _, c := range t.Dictionary {
		s.Candidates += len(c)
	}
	return s
}

// ShadowedPrefixes returns prefix rules that can never fire because an
// earlier rule's pattern is a prefix of theirs.
func (t *Table) ShadowedPrefixes() []Rule {
	var shadowed []Rule
	for i, r := range t.Prefixes {
		for _, earlier := range t.Prefixes[:i] {
			if strings.HasPrefix(r.Pattern, earlier.Pattern) {
				shadowed = append(shadowed, r)
				break
			}
		}
	}
	return shadowed
}
