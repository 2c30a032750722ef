package rules

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Document keys.
const (
	keyTranslations    = "translations"
	keySuffixes        = "en"
	keyTwists          = "twistedChars"
	keyPrefixes        = "twistBeginning"
	keyIgnored         = "ignored"
	keyDot             = "dot"
	keyExclamationMark = "exclamationMark"
	keyQuestionMark    = "questionMark"
	keyQuotationMark   = "quotationMark"
	keyInterlude       = "interlude"
)

//go:embed data/de-oger.json
var defaultTable []byte

// DefaultName identifies the embedded table in logs and diagnostics.
const DefaultName = "embedded:de-oger.json"

type jsonDocument struct {
	Translations    map[string][]string `json:"translations"`
	Suffixes        json.RawMessage     `json:"en"`
	Twists          json.RawMessage     `json:"twistedChars"`
	Prefixes        json.RawMessage     `json:"twistBeginning"`
	Ignored         []string            `json:"ignored"`
	Dot             []string            `json:"dot"`
	ExclamationMark []string            `json:"exclamationMark"`
	QuestionMark    []string            `json:"questionMark"`
	QuotationMark   *string             `json:"quotationMark"`
	Interlude       string              `json:"interlude"`
}

// Parse decodes and validates a JSON rule table. The key order of the
// rewrite objects is preserved.
func Parse(data []byte) (*Table, error) {
	var doc jsonDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: decode json: %w", ErrInvalidTable, err)
	}

	var errs []error
	ordered := func(key string, raw json.RawMessage) []Rule {
		rs, err := decodeOrderedRules(raw)
		if err != nil {
			errs = append(errs, fmt.Errorf("%w: %s: %w", ErrInvalidTable, key, err))
		}
		return rs
	}

	t := &Table{
		Dictionary:      doc.Translations,
		Suffixes:        ordered(keySuffixes, doc.Suffixes),
		Twists:          ordered(keyTwists, doc.Twists),
		Prefixes:        ordered(keyPrefixes, doc.Prefixes),
		Ignored:         ignoreSet(doc.Ignored),
		Dot:             doc.Dot,
		ExclamationMark: doc.ExclamationMark,
		QuestionMark:    doc.QuestionMark,
		Interlude:       doc.Interlude,
	}
	if doc.QuotationMark == nil {
		errs = append(errs, fmt.Errorf("%w: missing key %q", ErrInvalidTable, keyQuotationMark))
	} else {
		t.QuotationMark = *doc.QuotationMark
	}

	return finish(t, errs)
}

// decodeOrderedRules reads a JSON object of string values into rules,
// keeping document order. A missing or null object yields nil.
func decodeOrderedRules(raw json.RawMessage) ([]Rule, error) {
	if len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("expected object, got %v", tok)
	}

	rs := []Rule{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected string key, got %v", tok)
		}
		var value string
		if err := dec.Decode(&value); err != nil {
			return nil, fmt.Errorf("value of %q: %w", key, err)
		}
		rs = append(rs, Rule{Pattern: key, Replacement: value})
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return rs, nil
}

func ignoreSet(words []string) map[string]struct{} {
	if words == nil {
		return nil
	}
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[strings.ToLower(w)] = struct{}{}
	}
	return set
}

func finish(t *Table, errs []error) (*Table, error) {
	if err := t.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return t, nil
}

// Load reads a rule table from path. Files ending in .toml are decoded as
// TOML, everything else as JSON.
func Load(path string) (*Table, error) {
	if path == "" {
		return nil, errors.New("rule table path is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rule table: %w", err)
	}

	var t *Table
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		t, err = ParseTOML(data)
	} else {
		t, err = Parse(data)
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return t, nil
}

// Default returns the rule table compiled into the binary.
func Default() (*Table, error) {
	t, err := Parse(defaultTable)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", DefaultName, err)
	}
	return t, nil
}

// LoadOrDefault loads path, or the embedded table when path is empty.
// The returned name identifies the source.
func LoadOrDefault(path string) (*Table, string, error) {
	if path == "" {
		t, err := Default()
		return t, DefaultName, err
	}
	t, err := Load(path)
	return t, path, err
}
