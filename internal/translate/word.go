package translate

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/example/go-meddl/internal/rules"
)

// TransformWord rewrites a single word body:
//  1. a leading double quote becomes the table's quotation mark,
//  2. ignored words are returned as they are,
//  3. a dictionary hit replaces the word with a random candidate,
//  4. otherwise every matching suffix rule is applied in order,
//  5. the word is lower-cased,
//  6. the first matching prefix rule is applied,
//  7. every twist rule is applied to all occurrences, in order,
//  8. the first letter is upper-cased again if it was upper-case on input.
func (t *Translator) TransformWord(word string) string {
	if word == "" {
		return ""
	}
	first, _ := utf8.DecodeRuneInString(word)
	capitalized := unicode.IsUpper(first)

	if strings.HasPrefix(word, `"`) {
		word = strings.Replace(word, `"`, t.table.QuotationMark, 1)
	}

	if t.table.IsIgnored(word) {
		return word
	}

	if candidates, ok := t.table.Translations(word); ok {
		word = pick(t.src, candidates)
	} else {
		word = applySuffixes(word, t.table.Suffixes)
	}

	word = lower(t.lang, word)
	word = applyPrefix(word, t.table.Prefixes)
	word = t.applyTwists(word)

	if capitalized {
		word = capitalize(t.lang, word)
	}
	return word
}

// applySuffixes rewrites the trailing pattern of every matching rule, each
// rule seeing the result of the ones before it.
func applySuffixes(word string, suffixes []rules.Rule) string {
	for _, r := range suffixes {
		if strings.HasSuffix(word, r.Pattern) {
			word = word[:len(word)-len(r.Pattern)] + r.Replacement
		}
	}
	return word
}

// applyPrefix rewrites the first matching prefix and stops.
func applyPrefix(word string, prefixes []rules.Rule) string {
	for _, r := range prefixes {
		if strings.HasPrefix(word, r.Pattern) {
			return r.Replacement + word[len(r.Pattern):]
		}
	}
	return word
}

func (t *Translator) applyTwists(word string) string {
	for _, r := range t.twists {
		word = strings.ReplaceAll(word, r.Pattern, r.Replacement)
	}
	return word
}

// lowerRules lower-cases both sides of every rule.
func lowerRules(tag language.Tag, rs []rules.Rule) []rules.Rule {
	out := make([]rules.Rule, len(rs))
	for i, r := range rs {
		out[i] = rules.Rule{Pattern: lower(tag, r.Pattern), Replacement: lower(tag, r.Replacement)}
	}
	return out
}

// A cases.Caser keeps state, so each call gets its own.
func lower(tag language.Tag, s string) string {
	return cases.Lower(tag).String(s)
}

// capitalize upper-cases the first rune of s with full case mapping, which
// may expand it to several runes (ß → SS).
func capitalize(tag language.Tag, s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return cases.Upper(tag).String(string(r)) + s[size:]
}
