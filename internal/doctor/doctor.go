// Package doctor provides preflight checks for meddl: the rule table loads
// and is usable, and the surrounding configuration makes sense.
package doctor

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/text/language"

	"github.com/example/go-meddl/internal/rules"
)

// PassMark, WarnMark and FailMark are the prefix symbols printed for each
// check result.
const (
	PassMark = "✓"
	WarnMark = "!"
	FailMark = "✗"
)

// TableFunc loads a rule table and names its source.
type TableFunc func() (*rules.Table, string, error)

// Config holds injectable dependencies for each doctor check.
type Config struct {
	// LoadTable loads the configured rule table.
	LoadTable TableFunc
	// ConfigFile is the explicit config file, if any.
	ConfigFile string
	// Language is the BCP 47 tag used for case mapping.
	Language string
	// InterludeRate is the configured 1-in-N interlude chance.
	InterludeRate int
}

// Result collects the outcome of all checks.
type Result struct {
	failures []string
	warnings []string
}

// Failed returns true if any check failed.
func (r *Result) Failed() bool { return len(r.failures) > 0 }

// Failures returns the list of failure messages.
func (r *Result) Failures() []string { return append([]string(nil), r.failures...) }

// Warnings returns the list of warning messages. Warnings never fail a run.
func (r *Result) Warnings() []string { return append([]string(nil), r.warnings...) }

// AddFailure appends an external failure message to the result.
func (r *Result) AddFailure(msg string) { r.failures = append(r.failures, msg) }

func (r *Result) fail(msg string) { r.failures = append(r.failures, msg) }

func (r *Result) warn(msg string) { r.warnings = append(r.warnings, msg) }

// Run executes all configured checks and writes human-readable output to w.
// Each check line is prefixed with PassMark, WarnMark or FailMark.
func Run(cfg Config, w io.Writer) Result {
	var res Result

	// ---- config file -------------------------------------------------------
	if cfg.ConfigFile != "" {
		if _, err := os.Stat(cfg.ConfigFile); err != nil {
			res.fail(fmt.Sprintf("config file %q: %v", cfg.ConfigFile, err))
			fmt.Fprintf(w, "%s config file %s: not readable\n", FailMark, cfg.ConfigFile)
		} else {
			fmt.Fprintf(w, "%s config file: %s\n", PassMark, cfg.ConfigFile)
		}
	}

	// ---- language ------------------------------------------------------------
	if tag, err := language.Parse(cfg.Language); err != nil {
		res.fail(fmt.Sprintf("language %q: %v", cfg.Language, err))
		fmt.Fprintf(w, "%s language %q: %v\n", FailMark, cfg.Language, err)
	} else {
		fmt.Fprintf(w, "%s language: %s\n", PassMark, tag)
	}

	// ---- rule table ------------------------------------------------------------
	if cfg.LoadTable == nil {
		res.fail("rule table: no loader configured")
		fmt.Fprintf(w, "%s rule table: no loader configured\n", FailMark)
		return res
	}
	table, name, err := cfg.LoadTable()
	if err != nil {
		res.fail(fmt.Sprintf("rule table: %v", err))
		fmt.Fprintf(w, "%s rule table: %v\n", FailMark, err)
		return res
	}
	st := table.Stats()
	fmt.Fprintf(w, "%s rule table: %s (%d words, %d suffixes, %d twists, %d prefixes)\n",
		PassMark, name, st.Dictionary, st.Suffixes, st.Twists, st.Prefixes)

	// ---- punctuation pools ---------------------------------------------------
	for _, p := range []struct {
		name string
		kind rules.PunctuationKind
	}{
		{"dot", rules.Dot},
		{"exclamationMark", rules.ExclamationMark},
		{"questionMark", rules.QuestionMark},
	} {
		n := len(table.Pool(p.kind))
		if n == 0 {
			res.fail(fmt.Sprintf("pool %s is empty", p.name))
			fmt.Fprintf(w, "%s pool %s: empty\n", FailMark, p.name)
			continue
		}
		fmt.Fprintf(w, "%s pool %s: %d entries\n", PassMark, p.name, n)
	}

	// ---- prefix order ----------------------------------------------------------
	for _, r := range table.ShadowedPrefixes() {
		msg := fmt.Sprintf("prefix %q can never match; an earlier prefix covers it", r.Pattern)
		res.warn(msg)
		fmt.Fprintf(w, "%s %s\n", WarnMark, msg)
	}

	// ---- interlude -------------------------------------------------------------
	switch {
	case table.Interlude == "":
		fmt.Fprintf(w, "%s interlude: none in table\n", PassMark)
	case cfg.InterludeRate <= 0:
		fmt.Fprintf(w, "%s interlude: disabled\n", PassMark)
	default:
		fmt.Fprintf(w, "%s interlude: %q, 1 in %d words\n", PassMark, table.Interlude, cfg.InterludeRate)
	}

	return res
}
