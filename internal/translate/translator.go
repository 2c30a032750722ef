// Package translate turns a German sentence into Meddlfrängisch using a
// rules.Table. The pipeline is tokenize → split punctuation → rewrite word
// → re-render punctuation → maybe append the interlude → reassemble.
package translate

import (
	"log/slog"
	"strings"

	"golang.org/x/text/language"

	"github.com/example/go-meddl/internal/rules"
)

// DefaultInterludeRate is the default 1-in-N chance per word of appending
// the table's interlude.
const DefaultInterludeRate = 100

// Translator applies a rule table to sentences. It is safe for concurrent
// use as long as its Source is.
type Translator struct {
	table  *rules.Table
	twists []rules.Rule
	src    Source
	rate   int
	lang   language.Tag
	log    *slog.Logger
}

// Option configures a Translator.
type Option func(*Translator)

// WithSource sets the random source used for every draw.
func WithSource(src Source) Option {
	return func(t *Translator) { t.src = src }
}

// WithInterludeRate sets the 1-in-n chance per word of appending the
// interlude. n <= 0 disables it.
func WithInterludeRate(n int) Option {
	return func(t *Translator) { t.rate = n }
}

// WithLanguage sets the language used for case mapping.
func WithLanguage(tag language.Tag) Option {
	return func(t *Translator) { t.lang = tag }
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *slog.Logger) Option {
	return func(t *Translator) { t.log = l }
}

// New returns a Translator for table. table must have been produced by one
// of the rules loaders.
func New(table *rules.Table, opts ...Option) *Translator {
	t := &Translator{
		table: table,
		src:   globalSource{},
		rate:  DefaultInterludeRate,
		lang:  language.German,
		log:   slog.Default(),
	}
	for _, opt := range opts {
		opt(t)
	}
	t.twists = lowerRules(t.lang, table.Twists)
	return t
}

// Table returns the rule table t was built with.
func (t *Translator) Table() *rules.Table { return t.table }

// WithSource returns a copy of t that draws from src.
func (t *Translator) WithSource(src Source) *Translator {
	c := *t
	c.src = src
	return &c
}

// Translate rewrites sentence. Words keep their order and are joined by
// single spaces; only the ends of the result are trimmed.
func (t *Translator) Translate(sentence string) string {
	if sentence == "" {
		return ""
	}

	tokens := Tokenize(sentence)
	var b strings.Builder
	b.Grow(len(sentence) * 2)
	for _, raw := range tokens {
		tok := Split(raw)
		b.WriteString(t.interlude(t.TransformWord(tok.Word)))
		b.WriteString(t.TransformPunctuation(tok.Punctuation))
		b.WriteByte(' ')
	}

	out := strings.TrimSpace(b.String())
	t.log.Debug("translated sentence",
		slog.Int("tokens", len(tokens)),
		slog.Int("in_len", len(sentence)),
		slog.Int("out_len", len(out)),
	)
	return out
}

// TransformPunctuation replaces ".", "!" and "?" with a random entry of the
// matching pool. Any other mark, including "", is returned unchanged.
func (t *Translator) TransformPunctuation(mark string) string {
	kind, ok := rules.KindOf(mark)
	if !ok {
		return mark
	}
	return pick(t.src, t.table.Pool(kind))
}

// interlude appends the table's interlude to word with a 1-in-rate chance.
func (t *Translator) interlude(word string) string {
	if t.rate <= 0 || t.table.Interlude == "" {
		return word
	}
	if t.src.IntN(t.rate) != 0 {
		return word
	}
	return word + t.table.Interlude
}
