package rules

import (
	"errors"
	"fmt"
	"sort"
)

// Validate reports every configuration defect in t. The returned error
// wraps ErrInvalidTable and joins one error per defect.
func (t *Table) Validate() error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidTable}, args...)...))
	}

	if t.Dictionary == nil {
		fail("missing key %q", keyTranslations)
	}
	words := make([]string, 0, len(t.Dictionary))
	for w := range t.Dictionary {
		words = append(words, w)
	}
	sort.Strings(words)
	for _, w := range words {
		if len(t.Dictionary[w]) == 0 {
			fail("translation %q has no candidates", w)
		}
	}

	checkRules := func(key string, rs []Rule) {
		if rs == nil {
			fail("missing key %q", key)
		}
		for i, r := range rs {
			if r.Pattern == "" {
				fail("%s[%d] has empty pattern", key, i)
			}
		}
	}
	checkRules(keySuffixes, t.Suffixes)
	checkRules(keyTwists, t.Twists)
	checkRules(keyPrefixes, t.Prefixes)

	if t.Ignored == nil {
		fail("missing key %q", keyIgnored)
	}

	checkPool := func(key string, pool []string) {
		switch {
		case pool == nil:
			fail("missing key %q", key)
		case len(pool) == 0:
			fail("pool %q is empty", key)
		}
	}
	checkPool(keyDot, t.Dot)
	checkPool(keyExclamationMark, t.ExclamationMark)
	checkPool(keyQuestionMark, t.QuestionMark)

	return errors.Join(errs...)
}
