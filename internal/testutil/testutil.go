// Package testutil provides shared fixtures for tests: a small rule table
// with known rewrite behaviour and a scripted random source.
//
// Typical usage:
//
//	func TestMyTranslation(t *testing.T) {
//	    table := testutil.RuleTable(t)
//	    tr := translate.New(table, translate.WithSource(testutil.Seq(0, 1)))
//	    ...
//	}
package testutil

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/example/go-meddl/internal/rules"
)

// RulesJSON is a compact rule table with predictable behaviour:
//
//	Kette  → Gedde  (k→g, t→d, case restored)
//	Apfel  → Afel   (p→b, then bf→f re-twists the result)
//	gehen  → gha    (en→e, he→ha, then prefix ge→g)
//	vegan  → wegan  (prefix ve→we; ver→fer is listed first but does not match)
//	Straße → SSdraße (dictionary candidate ßtraße, ß upper-cases to SS)
const RulesJSON = `{
  "translations": {
    "Hallo": ["Meddl"],
    "Leute": ["Loide", "Leid", "Loiz"],
    "Straße": ["ßtraße"]
  },
  "en": {"chen": "la", "en": "e", "he": "ha"},
  "twistedChars": {"ck": "gg", "k": "g", "t": "d", "p": "b", "bf": "f"},
  "twistBeginning": {"ver": "fer", "ve": "we", "ge": "g"},
  "ignored": ["Der", "und"],
  "dot": [". Meddl off.", "."],
  "exclamationMark": ["!", "! Oida!"],
  "questionMark": ["?", "? Gell?"],
  "quotationMark": "„",
  "interlude": " *schnauf*"
}`

// RuleTable parses RulesJSON and fails the test on error.
func RuleTable(tb testing.TB) *rules.Table {
	tb.Helper()

	t, err := rules.Parse([]byte(RulesJSON))
	if err != nil {
		tb.Fatalf("parse fixture rule table: %v", err)
	}
	return t
}

// WriteRules writes content to name inside a fresh temp dir and returns the
// full path.
func WriteRules(tb testing.TB, name, content string) string {
	tb.Helper()

	p := filepath.Join(tb.TempDir(), name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		tb.Fatalf("write %s: %v", p, err)
	}
	return p
}

// SeqSource replays Values in order, wrapping around, reducing each value
// modulo n. An empty SeqSource always returns 0.
type SeqSource struct {
	mu     sync.Mutex
	Values []int
	calls  int
}

// Seq returns a SeqSource replaying values.
func Seq(values ...int) *SeqSource {
	return &SeqSource{Values: values}
}

// IntN returns the next scripted value modulo n.
func (s *SeqSource) IntN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.Values) == 0 {
		s.calls++
		return 0
	}
	v := s.Values[s.calls%len(s.Values)]
	s.calls++
	return v % n
}

// Calls reports how many draws were made.
func (s *SeqSource) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}
