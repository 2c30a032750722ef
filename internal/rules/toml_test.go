package rules_test

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/example/go-meddl/internal/rules"
	"github.com/example/go-meddl/internal/testutil"
	"github.com/example/go-meddl/internal/translate"
)

// rulesTOML mirrors testutil.RulesJSON.
const rulesTOML = `
ignored = ["Der", "und"]
dot = [". Meddl off.", "."]
exclamationMark = ["!", "! Oida!"]
questionMark = ["?", "? Gell?"]
quotationMark = "„"
interlude = " *schnauf*"

[translations]
Hallo = ["Meddl"]
Leute = ["Loide", "Leid", "Loiz"]
"Straße" = ["ßtraße"]

[en]
chen = "la"
en = "e"
he = "ha"

[twistedChars]
ck = "gg"
k = "g"
t = "d"
p = "b"
bf = "f"

[twistBeginning]
ver = "fer"
ve = "we"
ge = "g"
`

func TestParseTOML_KeepsRuleOrder(t *testing.T) {
	table, err := rules.ParseTOML([]byte(rulesTOML))
	if err != nil {
		t.Fatalf("ParseTOML: %v", err)
	}

	want := []rules.Rule{{Pattern: "ck", Replacement: "gg"}, {Pattern: "k", Replacement: "g"},
		{Pattern: "t", Replacement: "d"}, {Pattern: "p", Replacement: "b"}, {Pattern: "bf", Replacement: "f"}}
	if !reflect.DeepEqual(table.Twists, want) {
		t.Errorf("Twists = %v; want %v", table.Twists, want)
	}
}

func TestParseTOML_SameTranslationsAsJSON(t *testing.T) {
	fromTOML, err := rules.ParseTOML([]byte(rulesTOML))
	if err != nil {
		t.Fatalf("ParseTOML: %v", err)
	}
	fromJSON := testutil.RuleTable(t)

	a := translate.New(fromJSON, translate.WithSource(translate.NewSource(17)))
	b := translate.New(fromTOML, translate.WithSource(translate.NewSource(17)))
	const s = `Hallo Leute! "Kette verstehen? Der Apfel gehen. Straße`
	for range 20 {
		if x, y := a.Translate(s), b.Translate(s); x != y {
			t.Fatalf("json %q != toml %q", x, y)
		}
	}
}

func TestParseTOML_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantMsg string
	}{
		{"malformed", "dot = [", "decode toml"},
		{"missing quotation mark", strings.Replace(rulesTOML, `quotationMark = "„"`, "", 1), `missing key "quotationMark"`},
		{"missing translations", strings.Replace(rulesTOML, "[translations]", "[unused]", 1), `missing key "translations"`},
		{"empty pool", strings.Replace(rulesTOML, `questionMark = ["?", "? Gell?"]`, "questionMark = []", 1), `pool "questionMark" is empty`},
		{"missing prefixes", strings.Replace(rulesTOML, "[twistBeginning]", "[other]", 1), `missing key "twistBeginning"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := rules.ParseTOML([]byte(tt.doc))
			if !errors.Is(err, rules.ErrInvalidTable) {
				t.Fatalf("error = %v; want ErrInvalidTable", err)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q does not mention %q", err, tt.wantMsg)
			}
		})
	}
}

func TestParseTOML_EmptySections(t *testing.T) {
	doc := `
ignored = []
dot = ["."]
exclamationMark = ["!"]
questionMark = ["?"]
quotationMark = ""

[translations]
[en]
[twistedChars]
[twistBeginning]
`
	table, err := rules.ParseTOML([]byte(doc))
	if err != nil {
		t.Fatalf("ParseTOML: %v", err)
	}
	if table.Dictionary == nil || table.Ignored == nil {
		t.Error("defined empty sections should not be nil")
	}
	if table.Twists == nil || len(table.Twists) != 0 {
		t.Errorf("Twists = %#v; want empty", table.Twists)
	}
}
