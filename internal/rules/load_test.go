package rules_test

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/example/go-meddl/internal/rules"
	"github.com/example/go-meddl/internal/testutil"
)

func TestParse_KeepsRuleOrder(t *testing.T) {
	table := testutil.RuleTable(t)

	wantSuffixes := []rules.Rule{{"chen", "la"}, {"en", "e"}, {"he", "ha"}}
	if !reflect.DeepEqual(table.Suffixes, wantSuffixes) {
		t.Errorf("Suffixes = %v; want %v", table.Suffixes, wantSuffixes)
	}

	wantTwists := []rules.Rule{{"ck", "gg"}, {"k", "g"}, {"t", "d"}, {"p", "b"}, {"bf", "f"}}
	if !reflect.DeepEqual(table.Twists, wantTwists) {
		t.Errorf("Twists = %v; want %v", table.Twists, wantTwists)
	}

	wantPrefixes := []rules.Rule{{"ver", "fer"}, {"ve", "we"}, {"ge", "g"}}
	if !reflect.DeepEqual(table.Prefixes, wantPrefixes) {
		t.Errorf("Prefixes = %v; want %v", table.Prefixes, wantPrefixes)
	}
}

func TestParse_Fields(t *testing.T) {
	table := testutil.RuleTable(t)

	if got := table.QuotationMark; got != "„" {
		t.Errorf("QuotationMark = %q", got)
	}
	if got := table.Interlude; got != " *schnauf*" {
		t.Errorf("Interlude = %q", got)
	}
	if got, ok := table.Translations("Leute"); !ok || len(got) != 3 {
		t.Errorf("Translations(Leute) = %v, %v", got, ok)
	}
	if _, ok := table.Translations("leute"); ok {
		t.Error("dictionary lookup should be case-sensitive")
	}
	if got := table.Pool(rules.ExclamationMark); !reflect.DeepEqual(got, []string{"!", "! Oida!"}) {
		t.Errorf("Pool(!) = %q", got)
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(string) string
		wantMsg string
	}{
		{
			name:    "malformed json",
			mutate:  func(s string) string { return s[:len(s)-1] },
			wantMsg: "decode json",
		},
		{
			name:    "missing translations",
			mutate:  func(s string) string { return strings.Replace(s, `"translations"`, `"unused"`, 1) },
			wantMsg: `missing key "translations"`,
		},
		{
			name:    "missing twistedChars",
			mutate:  func(s string) string { return strings.Replace(s, `"twistedChars"`, `"twisted"`, 1) },
			wantMsg: `missing key "twistedChars"`,
		},
		{
			name:    "missing quotationMark",
			mutate:  func(s string) string { return strings.Replace(s, `"quotationMark"`, `"quote"`, 1) },
			wantMsg: `missing key "quotationMark"`,
		},
		{
			name:    "empty dot pool",
			mutate:  func(s string) string { return strings.Replace(s, `". Meddl off.", "."`, ``, 1) },
			wantMsg: `pool "dot" is empty`,
		},
		{
			name:    "missing questionMark pool",
			mutate:  func(s string) string { return strings.Replace(s, `"questionMark"`, `"qm"`, 1) },
			wantMsg: `missing key "questionMark"`,
		},
		{
			name:    "rewrite value not a string",
			mutate:  func(s string) string { return strings.Replace(s, `"he": "ha"`, `"he": 1`, 1) },
			wantMsg: `value of "he"`,
		},
		{
			name:    "rewrite section not an object",
			mutate:  func(s string) string { return strings.Replace(s, `"en": {"chen": "la", "en": "e", "he": "ha"}`, `"en": ["la"]`, 1) },
			wantMsg: "expected object",
		},
		{
			name:    "empty rewrite pattern",
			mutate:  func(s string) string { return strings.Replace(s, `"ge": "g"`, `"": "g"`, 1) },
			wantMsg: "twistBeginning[2] has empty pattern",
		},
		{
			name:    "dictionary entry without candidates",
			mutate:  func(s string) string { return strings.Replace(s, `"Hallo": ["Meddl"]`, `"Hallo": []`, 1) },
			wantMsg: `translation "Hallo" has no candidates`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := rules.Parse([]byte(tt.mutate(testutil.RulesJSON)))
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, rules.ErrInvalidTable) {
				t.Errorf("error %v does not wrap ErrInvalidTable", err)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q does not mention %q", err, tt.wantMsg)
			}
		})
	}
}

func TestParse_ReportsEveryDefect(t *testing.T) {
	_, err := rules.Parse([]byte(`{"translations": {}, "quotationMark": ""}`))
	if err == nil {
		t.Fatal("expected error")
	}
	for _, key := range []string{"en", "twistedChars", "twistBeginning", "ignored", "dot", "exclamationMark", "questionMark"} {
		if !strings.Contains(err.Error(), `"`+key+`"`) {
			t.Errorf("error does not mention %q:\n%v", key, err)
		}
	}
}

func TestParse_EmptySectionsAllowed(t *testing.T) {
	doc := `{
  "translations": {},
  "en": {}, "twistedChars": {}, "twistBeginning": {},
  "ignored": [],
  "dot": ["."], "exclamationMark": ["!"], "questionMark": ["?"],
  "quotationMark": "",
  "unknownKey": 42
}`
	table, err := rules.Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if table.Interlude != "" {
		t.Errorf("Interlude = %q; want empty", table.Interlude)
	}
	if table.IsIgnored("anything") {
		t.Error("empty ignore list matched")
	}
}

func TestLoad_ByExtension(t *testing.T) {
	jsonPath := testutil.WriteRules(t, "rules.json", testutil.RulesJSON)
	tomlPath := testutil.WriteRules(t, "rules.toml", rulesTOML)

	fromJSON, err := rules.Load(jsonPath)
	if err != nil {
		t.Fatalf("Load json: %v", err)
	}
	fromTOML, err := rules.Load(tomlPath)
	if err != nil {
		t.Fatalf("Load toml: %v", err)
	}
	if !reflect.DeepEqual(fromJSON, fromTOML) {
		t.Errorf("json and toml tables differ:\n%+v\n%+v", fromJSON, fromTOML)
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := rules.Load(""); err == nil {
		t.Error("expected error for empty path")
	}
	if _, err := rules.Load(t.TempDir() + "/missing.json"); err == nil {
		t.Error("expected error for missing file")
	}

	bad := testutil.WriteRules(t, "bad.json", `{"translations": {}}`)
	_, err := rules.Load(bad)
	if !errors.Is(err, rules.ErrInvalidTable) {
		t.Fatalf("Load(bad) error = %v; want ErrInvalidTable", err)
	}
	if !strings.Contains(err.Error(), bad) {
		t.Errorf("error %q does not name the file", err)
	}
}

func TestDefault(t *testing.T) {
	table, err := rules.Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	if err := table.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
	if len(table.Dictionary) == 0 || len(table.Twists) == 0 {
		t.Error("embedded table looks empty")
	}
	if table.Prefixes[0] != (rules.Rule{Pattern: "ver", Replacement: "fer"}) {
		t.Errorf("first prefix = %v", table.Prefixes[0])
	}
}

func TestLoadOrDefault(t *testing.T) {
	table, name, err := rules.LoadOrDefault("")
	if err != nil || table == nil {
		t.Fatalf("LoadOrDefault(\"\") = %v, %v", table, err)
	}
	if name != rules.DefaultName {
		t.Errorf("name = %q; want %q", name, rules.DefaultName)
	}

	p := testutil.WriteRules(t, "r.json", testutil.RulesJSON)
	if _, name, err = rules.LoadOrDefault(p); err != nil || name != p {
		t.Errorf("LoadOrDefault(%q) = %q, %v", p, name, err)
	}
}
