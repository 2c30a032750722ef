package rules

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

type tomlDocument struct {
	Translations    map[string][]string `toml:"translations"`
	Suffixes        map[string]string   `toml:"en"`
	Twists          map[string]string   `toml:"twistedChars"`
	Prefixes        map[string]string   `toml:"twistBeginning"`
	Ignored         []string            `toml:"ignored"`
	Dot             []string            `toml:"dot"`
	ExclamationMark []string            `toml:"exclamationMark"`
	QuestionMark    []string            `toml:"questionMark"`
	QuotationMark   string              `toml:"quotationMark"`
	Interlude       string              `toml:"interlude"`
}

// ParseTOML decodes and validates a rule table written as TOML. It uses the
// same keys as the JSON form; rewrite tables keep their order of appearance.
//
//	quotationMark = "„"
//	dot = [".", ". Meddl off."]
//
//	[twistBeginning]
//	ver = "fer"
func ParseTOML(data []byte) (*Table, error) {
	var doc tomlDocument
	md, err := toml.Decode(string(data), &doc)
	if err != nil {
		return nil, fmt.Errorf("%w: decode toml: %w", ErrInvalidTable, err)
	}

	var errs []error
	ordered := func(key string, m map[string]string) []Rule {
		if !md.IsDefined(key) {
			return nil
		}
		rs := make([]Rule, 0, len(m))
		for _, k := range md.Keys() {
			if len(k) == 2 && k[0] == key {
				rs = append(rs, Rule{Pattern: k[1], Replacement: m[k[1]]})
			}
		}
		return rs
	}

	t := &Table{
		Suffixes:        ordered(keySuffixes, doc.Suffixes),
		Twists:          ordered(keyTwists, doc.Twists),
		Prefixes:        ordered(keyPrefixes, doc.Prefixes),
		Ignored:         ignoreSet(doc.Ignored),
		Dot:             doc.Dot,
		ExclamationMark: doc.ExclamationMark,
		QuestionMark:    doc.QuestionMark,
		QuotationMark:   doc.QuotationMark,
		Interlude:       doc.Interlude,
	}
	if md.IsDefined(keyTranslations) {
		t.Dictionary = doc.Translations
		if t.Dictionary == nil {
			t.Dictionary = map[string][]string{}
		}
	}
	// Empty arrays may decode to nil; presence comes from the metadata.
	if md.IsDefined(keyIgnored) && t.Ignored == nil {
		t.Ignored = map[string]struct{}{}
	}
	for _, p := range []struct {
		key  string
		pool *[]string
	}{
		{keyDot, &t.Dot},
		{keyExclamationMark, &t.ExclamationMark},
		{keyQuestionMark, &t.QuestionMark},
	} {
		if md.IsDefined(p.key) && *p.pool == nil {
			*p.pool = []string{}
		}
	}
	if !md.IsDefined(keyQuotationMark) {
		errs = append(errs, fmt.Errorf("%w: missing key %q", ErrInvalidTable, keyQuotationMark))
	}

	return finish(t, errs)
}
